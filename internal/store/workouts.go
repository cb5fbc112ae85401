package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertWorkout inserts or updates a workout summary
func (db *DB) UpsertWorkout(w *Workout) error {
	_, err := db.Exec(`
		INSERT INTO workouts (
			id, name, sport, start_time, duration_seconds,
			avg_hr, max_hr, training_load, has_hr, samples_synced, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			start_time = excluded.start_time,
			duration_seconds = excluded.duration_seconds,
			avg_hr = excluded.avg_hr,
			max_hr = excluded.max_hr,
			training_load = excluded.training_load,
			has_hr = excluded.has_hr,
			updated_at = CURRENT_TIMESTAMP
	`,
		w.ID, w.Name, w.Sport, w.StartTime.Format(time.RFC3339), w.DurationSeconds,
		w.AvgHR, w.MaxHR, w.TrainingLoad, boolToInt(w.HasHR), boolToInt(w.SamplesSynced),
	)
	return err
}

// GetWorkout retrieves a single workout by ID
func (db *DB) GetWorkout(id int64) (*Workout, error) {
	row := db.QueryRow(`
		SELECT id, name, sport, start_time, duration_seconds,
			avg_hr, max_hr, training_load, has_hr, samples_synced
		FROM workouts WHERE id = ?
	`, id)

	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetWorkouts retrieves workouts ordered by start time descending
func (db *DB) GetWorkouts(limit, offset int) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, name, sport, start_time, duration_seconds,
			avg_hr, max_hr, training_load, has_hr, samples_synced
		FROM workouts
		ORDER BY start_time DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}

	return workouts, rows.Err()
}

// GetWorkoutsNeedingSamples retrieves workouts with HR data whose samples
// have not been fetched yet
func (db *DB) GetWorkoutsNeedingSamples() ([]Workout, error) {
	rows, err := db.Query(`
		SELECT id, name, sport, start_time, duration_seconds,
			avg_hr, max_hr, training_load, has_hr, samples_synced
		FROM workouts
		WHERE has_hr = 1 AND samples_synced = 0
		ORDER BY start_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}

	return workouts, rows.Err()
}

// CountWorkouts returns the number of stored workouts
func (db *DB) CountWorkouts() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count)
	return count, err
}

// SaveWorkoutSamples replaces the heart rate samples for a workout and
// marks it as synced
func (db *DB) SaveWorkoutSamples(workoutID int64, samples []WorkoutSample) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM workout_samples WHERE workout_id = ?", workoutID); err != nil {
		return fmt.Errorf("deleting existing samples: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO workout_samples (workout_id, elapsed_seconds, heart_rate)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(workoutID, s.ElapsedSeconds, s.HeartRate); err != nil {
			return fmt.Errorf("inserting sample: %w", err)
		}
	}

	if _, err := tx.Exec("UPDATE workouts SET samples_synced = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", workoutID); err != nil {
		return fmt.Errorf("marking samples synced: %w", err)
	}

	return tx.Commit()
}

// GetWorkoutSamples retrieves a workout's heart rate samples ordered by
// elapsed time
func (db *DB) GetWorkoutSamples(workoutID int64) ([]WorkoutSample, error) {
	rows, err := db.Query(`
		SELECT workout_id, elapsed_seconds, heart_rate
		FROM workout_samples
		WHERE workout_id = ?
		ORDER BY elapsed_seconds ASC
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []WorkoutSample
	for rows.Next() {
		var s WorkoutSample
		if err := rows.Scan(&s.WorkoutID, &s.ElapsedSeconds, &s.HeartRate); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*Workout, error) {
	var w Workout
	var startTime string
	var hasHR, samplesSynced int

	err := row.Scan(
		&w.ID, &w.Name, &w.Sport, &startTime, &w.DurationSeconds,
		&w.AvgHR, &w.MaxHR, &w.TrainingLoad, &hasHR, &samplesSynced,
	)
	if err != nil {
		return nil, err
	}

	w.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time %q: %w", startTime, err)
	}
	w.HasHR = hasHR == 1
	w.SamplesSynced = samplesSynced == 1

	return &w, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
