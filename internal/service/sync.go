package service

import (
	"context"
	"fmt"
	"time"

	"garmin-trainer/internal/garmin"
	"garmin-trainer/internal/store"
)

// SyncService orchestrates syncing data from the wellness API
type SyncService struct {
	client *garmin.Client
	store  *store.DB
}

// NewSyncService creates a new sync service
func NewSyncService(client *garmin.Client, store *store.DB) *SyncService {
	return &SyncService{
		client: client,
		store:  store,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase          string // "dailies", "workouts", "samples"
	Total          int
	Completed      int
	CurrentWorkout string
	Error          error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	DaysFetched    int
	DaysStored     int
	WorkoutsStored int
	SamplesFetched int
	Errors         []error
}

// SyncAll performs a full sync: daily metrics -> workouts -> samples
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	if err := s.syncDailies(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing daily metrics: %w", err)
	}

	if err := s.syncWorkouts(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing workouts: %w", err)
	}

	if err := s.syncSamples(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing workout samples: %w", err)
	}

	return result, nil
}

// syncDailies fetches daily wellness summaries since the last sync
func (s *SyncService) syncDailies(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	start := s.syncStart("last_daily_sync")
	end := time.Now()

	if progress != nil {
		progress <- SyncProgress{Phase: "dailies"}
	}

	// The API caps ranges at 31 days, so page through month-sized chunks
	for chunkStart := start; !chunkStart.After(end); chunkStart = chunkStart.AddDate(0, 0, 31) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		chunkEnd := chunkStart.AddDate(0, 0, 30)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		summaries, err := s.client.GetDailySummaries(ctx, chunkStart, chunkEnd)
		if err != nil {
			return fmt.Errorf("fetching dailies %s: %w", chunkStart.Format("2006-01-02"), err)
		}

		result.DaysFetched += len(summaries)

		for _, d := range summaries {
			metric, err := convertDailySummary(d)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("converting day %s: %w", d.CalendarDate, err))
				continue
			}
			if err := s.store.UpsertDailyMetric(metric); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing day %s: %w", d.CalendarDate, err))
				continue
			}
			result.DaysStored++
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:     "dailies",
				Total:     result.DaysFetched,
				Completed: result.DaysStored,
			}
		}
	}

	s.store.SetSyncState("last_daily_sync", end.Format(time.RFC3339))

	return nil
}

// syncWorkouts fetches workout summaries since the last sync
func (s *SyncService) syncWorkouts(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	start := s.syncStart("last_workout_sync")
	end := time.Now()

	if progress != nil {
		progress <- SyncProgress{Phase: "workouts"}
	}

	for chunkStart := start; !chunkStart.After(end); chunkStart = chunkStart.AddDate(0, 0, 31) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		chunkEnd := chunkStart.AddDate(0, 0, 30)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		workouts, err := s.client.GetWorkouts(ctx, chunkStart, chunkEnd)
		if err != nil {
			return fmt.Errorf("fetching workouts %s: %w", chunkStart.Format("2006-01-02"), err)
		}

		for _, w := range workouts {
			workout, err := convertWorkoutSummary(w)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("converting workout %d: %w", w.WorkoutID, err))
				continue
			}
			if err := s.store.UpsertWorkout(workout); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing workout %d: %w", w.WorkoutID, err))
				continue
			}
			result.WorkoutsStored++
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:     "workouts",
				Completed: result.WorkoutsStored,
			}
		}
	}

	s.store.SetSyncState("last_workout_sync", end.Format(time.RFC3339))

	return nil
}

// syncSamples fetches heart rate samples for workouts that need them
func (s *SyncService) syncSamples(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	workouts, err := s.store.GetWorkoutsNeedingSamples()
	if err != nil {
		return fmt.Errorf("getting workouts needing samples: %w", err)
	}

	if len(workouts) > SampleBatchSize {
		workouts = workouts[:SampleBatchSize]
	}

	if len(workouts) == 0 {
		return nil
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "samples", Total: len(workouts)}
	}

	for i, workout := range workouts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:          "samples",
				Total:          len(workouts),
				Completed:      i,
				CurrentWorkout: workout.Name,
			}
		}

		series, err := s.client.GetWorkoutSamples(ctx, workout.ID)
		if err != nil {
			// Continue - some workouts may not expose samples
			result.Errors = append(result.Errors, fmt.Errorf("workout %d (%s): %w", workout.ID, workout.Name, err))
			continue
		}

		samples := convertHeartRateSeries(workout.ID, series)
		if err := s.store.SaveWorkoutSamples(workout.ID, samples); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving samples for %d: %w", workout.ID, err))
			continue
		}

		result.SamplesFetched++
	}

	if progress != nil {
		progress <- SyncProgress{
			Phase:     "samples",
			Total:     len(workouts),
			Completed: len(workouts),
		}
	}

	return nil
}

// syncStart determines where an incremental sync should resume
func (s *SyncService) syncStart(stateKey string) time.Time {
	lastSyncStr, _ := s.store.GetSyncState(stateKey)
	if lastSyncStr != "" {
		if last, err := time.Parse(time.RFC3339, lastSyncStr); err == nil {
			// Re-fetch the last synced day in case it was partial
			return last.AddDate(0, 0, -1)
		}
	}
	return time.Now().AddDate(0, 0, -InitialSyncDays)
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (minuteRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}

// convertDailySummary converts an API daily summary to a store metric
func convertDailySummary(d garmin.DailySummary) (*store.DailyMetric, error) {
	date, err := time.Parse("2006-01-02", d.CalendarDate)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar date %q: %w", d.CalendarDate, err)
	}

	metric := &store.DailyMetric{
		Date:         date,
		RestingHR:    d.RestingHeartRate,
		AvgHR:        d.AverageHeartRate,
		HRVSDNN:      d.HRVSDNN,
		SleepScore:   d.SleepScore,
		Steps:        d.Steps,
		TrainingLoad: d.TrainingLoad,
	}

	if d.TotalSleepSeconds != nil {
		minutes := float64(*d.TotalSleepSeconds) / 60
		metric.TotalSleepMinutes = &minutes
	}

	return metric, nil
}

// convertWorkoutSummary converts an API workout to a store workout
func convertWorkoutSummary(w garmin.WorkoutSummary) (*store.Workout, error) {
	start, err := time.Parse(time.RFC3339, w.StartTimeGMT)
	if err != nil {
		return nil, fmt.Errorf("parsing start time %q: %w", w.StartTimeGMT, err)
	}

	return &store.Workout{
		ID:              w.WorkoutID,
		Name:            w.WorkoutName,
		Sport:           w.Sport,
		StartTime:       start,
		DurationSeconds: w.DurationSeconds,
		AvgHR:           w.AverageHeartRate,
		MaxHR:           w.MaxHeartRate,
		TrainingLoad:    w.TrainingLoad,
		HasHR:           w.HasHeartRate,
	}, nil
}

// convertHeartRateSeries converts an API heart rate series to store samples
func convertHeartRateSeries(workoutID int64, s *garmin.HeartRateSeries) []store.WorkoutSample {
	if s.Len() == 0 {
		return nil
	}

	samples := make([]store.WorkoutSample, 0, s.Len())
	for i, hr := range s.HeartRates {
		elapsed := float64(i)
		if i < len(s.ElapsedSeconds) {
			elapsed = s.ElapsedSeconds[i]
		}
		samples = append(samples, store.WorkoutSample{
			WorkoutID:      workoutID,
			ElapsedSeconds: elapsed,
			HeartRate:      hr,
		})
	}

	return samples
}
