package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNoAdvice indicates no cached narrative exists for the requested day
var ErrNoAdvice = errors.New("no advice stored for date")

// GetAdvice retrieves the cached readiness narrative for a day
func (db *DB) GetAdvice(date time.Time) (*Advice, error) {
	row := db.QueryRow(`
		SELECT date, narrative, model, created_at
		FROM advice WHERE date = ?
	`, date.Format(dayFormat))

	var a Advice
	var day, createdAt string
	err := row.Scan(&day, &a.Narrative, &a.Model, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAdvice
	}
	if err != nil {
		return nil, err
	}

	a.Date, err = time.Parse(dayFormat, day)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		a.CreatedAt = t
	}
	return &a, nil
}

// SaveAdvice stores or replaces the readiness narrative for a day
func (db *DB) SaveAdvice(a *Advice) error {
	_, err := db.Exec(`
		INSERT INTO advice (date, narrative, model, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			narrative = excluded.narrative,
			model = excluded.model,
			created_at = CURRENT_TIMESTAMP
	`, a.Date.Format(dayFormat), a.Narrative, a.Model)
	return err
}
