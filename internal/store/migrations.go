package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			user_id TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Daily wellness summaries (one row per calendar day)
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			date TEXT PRIMARY KEY,
			resting_hr INTEGER,
			avg_hr INTEGER,
			hrv_sdnn REAL,
			total_sleep_minutes REAL,
			sleep_score INTEGER,
			steps INTEGER,
			training_load REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_daily_metrics_date ON daily_metrics(date)`,

		// Workout summaries
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sport TEXT NOT NULL,
			start_time TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			avg_hr REAL,
			max_hr REAL,
			training_load REAL,
			has_hr INTEGER NOT NULL,
			samples_synced INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workouts_start_time ON workouts(start_time)`,

		// Per-workout heart rate samples
		`CREATE TABLE IF NOT EXISTS workout_samples (
			workout_id INTEGER NOT NULL,
			elapsed_seconds REAL NOT NULL,
			heart_rate INTEGER NOT NULL,
			PRIMARY KEY (workout_id, elapsed_seconds),
			FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workout_samples_workout ON workout_samples(workout_id)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Cached readiness narratives from the advisor
		`CREATE TABLE IF NOT EXISTS advice (
			date TEXT PRIMARY KEY,
			narrative TEXT NOT NULL,
			model TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
