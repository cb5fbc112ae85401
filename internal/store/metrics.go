package store

import (
	"time"
)

const dayFormat = "2006-01-02"

// UpsertDailyMetric inserts or updates one day of wellness data
func (db *DB) UpsertDailyMetric(m *DailyMetric) error {
	_, err := db.Exec(`
		INSERT INTO daily_metrics (
			date, resting_hr, avg_hr, hrv_sdnn, total_sleep_minutes,
			sleep_score, steps, training_load, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			resting_hr = excluded.resting_hr,
			avg_hr = excluded.avg_hr,
			hrv_sdnn = excluded.hrv_sdnn,
			total_sleep_minutes = excluded.total_sleep_minutes,
			sleep_score = excluded.sleep_score,
			steps = excluded.steps,
			training_load = excluded.training_load,
			updated_at = CURRENT_TIMESTAMP
	`,
		m.Date.Format(dayFormat), m.RestingHR, m.AvgHR, m.HRVSDNN,
		m.TotalSleepMinutes, m.SleepScore, m.Steps, m.TrainingLoad,
	)
	return err
}

// GetDailyMetrics retrieves daily metrics in [start, end], ordered by date ascending
func (db *DB) GetDailyMetrics(start, end time.Time) ([]DailyMetric, error) {
	rows, err := db.Query(`
		SELECT date, resting_hr, avg_hr, hrv_sdnn, total_sleep_minutes,
			sleep_score, steps, training_load
		FROM daily_metrics
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start.Format(dayFormat), end.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []DailyMetric
	for rows.Next() {
		var m DailyMetric
		var date string
		err := rows.Scan(
			&date, &m.RestingHR, &m.AvgHR, &m.HRVSDNN,
			&m.TotalSleepMinutes, &m.SleepScore, &m.Steps, &m.TrainingLoad,
		)
		if err != nil {
			return nil, err
		}
		m.Date, err = time.Parse(dayFormat, date)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}

// GetDailyLoads retrieves (date, training_load) pairs in [start, end] for
// days that have a load value, ordered by date ascending
func (db *DB) GetDailyLoads(start, end time.Time) ([]DailyMetric, error) {
	rows, err := db.Query(`
		SELECT date, training_load
		FROM daily_metrics
		WHERE date >= ? AND date <= ? AND training_load IS NOT NULL
		ORDER BY date ASC
	`, start.Format(dayFormat), end.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []DailyMetric
	for rows.Next() {
		var m DailyMetric
		var date string
		if err := rows.Scan(&date, &m.TrainingLoad); err != nil {
			return nil, err
		}
		var err error
		m.Date, err = time.Parse(dayFormat, date)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}

// CountDailyMetrics returns the number of stored days
func (db *DB) CountDailyMetrics() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM daily_metrics").Scan(&count)
	return count, err
}

// LatestMetricDate returns the most recent stored day, or the zero time
// when nothing is stored yet
func (db *DB) LatestMetricDate() (time.Time, error) {
	var date *string
	err := db.QueryRow("SELECT MAX(date) FROM daily_metrics").Scan(&date)
	if err != nil {
		return time.Time{}, err
	}
	if date == nil {
		return time.Time{}, nil
	}
	return time.Parse(dayFormat, *date)
}
