package store

import "time"

// Auth represents OAuth tokens for the wellness API
type Auth struct {
	UserID       string    `db:"user_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// DailyMetric represents one day of wellness data
type DailyMetric struct {
	Date              time.Time `db:"date"`
	RestingHR         *int      `db:"resting_hr"`          // nullable
	AvgHR             *int      `db:"avg_hr"`              // nullable
	HRVSDNN           *float64  `db:"hrv_sdnn"`            // ms, nullable
	TotalSleepMinutes *float64  `db:"total_sleep_minutes"` // nullable
	SleepScore        *int      `db:"sleep_score"`         // 0-100, nullable
	Steps             *int      `db:"steps"`               // nullable
	TrainingLoad      *float64  `db:"training_load"`       // nullable
}

// Workout represents a workout summary
type Workout struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	Sport           string    `db:"sport"`
	StartTime       time.Time `db:"start_time"`
	DurationSeconds int       `db:"duration_seconds"`
	AvgHR           *float64  `db:"avg_hr"`        // nullable
	MaxHR           *float64  `db:"max_hr"`        // nullable
	TrainingLoad    *float64  `db:"training_load"` // nullable
	HasHR           bool      `db:"has_hr"`
	SamplesSynced   bool      `db:"samples_synced"`
}

// WorkoutSample represents a single heart rate sample within a workout
type WorkoutSample struct {
	WorkoutID      int64   `db:"workout_id"`
	ElapsedSeconds float64 `db:"elapsed_seconds"`
	HeartRate      int     `db:"heart_rate"`
}

// Advice represents a cached readiness narrative for one day
type Advice struct {
	Date      time.Time `db:"date"`
	Narrative string    `db:"narrative"`
	Model     string    `db:"model"`
	CreatedAt time.Time `db:"created_at"`
}
