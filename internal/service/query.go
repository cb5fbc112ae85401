package service

import (
	"fmt"
	"time"

	"garmin-trainer/internal/analysis"
	"garmin-trainer/internal/config"
	"garmin-trainer/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store  *store.DB
	params analysis.AthleteParams
	method analysis.ZoneMethod
	engine *analysis.LoadEngine
	scorer *analysis.ReadinessScorer
}

// NewQueryService creates a new query service from athlete config
func NewQueryService(db *store.DB, athleteCfg config.AthleteConfig) *QueryService {
	return &QueryService{
		store: db,
		params: analysis.AthleteParams{
			MaxHR:     athleteCfg.MaxHR,
			RestingHR: athleteCfg.RestingHR,
		},
		method: analysis.ZoneMethod(athleteCfg.ZoneMethod),
		engine: analysis.NewLoadEngine(analysis.DefaultLoadConfig()),
		scorer: analysis.NewReadinessScorer(analysis.DefaultReadinessConfig()),
	}
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	Readiness *analysis.ReadinessResult
	Load      *analysis.LoadState

	// Today's wellness numbers
	Today *store.DailyMetric

	// Recent workouts
	RecentWorkouts []store.Workout

	// For charts
	FormHistory []float64
	LoadHistory []float64
	ChartDates  []time.Time
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData() (*DashboardData, error) {
	today := time.Now().Truncate(24 * time.Hour)

	readiness, load, err := q.ReadinessForDate(today)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Readiness: readiness,
		Load:      load,
	}

	// Today's raw metrics, if synced
	metrics, err := q.store.GetDailyMetrics(today, today)
	if err != nil {
		return nil, fmt.Errorf("getting today's metrics: %w", err)
	}
	if len(metrics) > 0 {
		data.Today = &metrics[0]
	}

	workouts, err := q.store.GetWorkouts(RecentWorkoutsLimit, 0)
	if err != nil {
		// Dashboard can show partial data
		workouts = nil
	}
	data.RecentWorkouts = workouts

	trend, err := q.LoadTrend(ChartWindowDays)
	if err == nil {
		for _, d := range trend {
			data.FormHistory = append(data.FormHistory, d.Form)
			data.LoadHistory = append(data.LoadHistory, d.Load)
			data.ChartDates = append(data.ChartDates, d.Date)
		}
	}

	return data, nil
}

// ReadinessForDate computes the readiness score and load state for a day
// from stored history
func (q *QueryService) ReadinessForDate(date time.Time) (*analysis.ReadinessResult, *analysis.LoadState, error) {
	date = date.Truncate(24 * time.Hour)

	loads, err := q.loadHistory(date)
	if err != nil {
		return nil, nil, err
	}
	load := q.engine.Compute(loads)

	windowStart := date.AddDate(0, 0, -(ReadinessBaselineDays - 1))
	metrics, err := q.store.GetDailyMetrics(windowStart, date)
	if err != nil {
		return nil, nil, fmt.Errorf("getting metrics window: %w", err)
	}

	window := make([]analysis.DailyMetrics, len(metrics))
	for i, m := range metrics {
		window[i] = convertStoredMetric(m)
	}

	readiness := q.scorer.Score(window, load)
	return &readiness, &load, nil
}

// LoadTrend returns the day-by-day load state over the trailing window
func (q *QueryService) LoadTrend(days int) ([]analysis.DailyLoadState, error) {
	today := time.Now().Truncate(24 * time.Hour)
	loads, err := q.loadHistory(today)
	if err != nil {
		return nil, err
	}

	trend := q.engine.Trend(loads)
	if len(trend) > days {
		trend = trend[len(trend)-days:]
	}
	return trend, nil
}

// WorkoutDetail combines a workout with its zone analysis
type WorkoutDetail struct {
	Workout  store.Workout
	Analysis *analysis.WorkoutAnalysis
}

// GetWorkoutDetail fetches a workout and analyzes its heart rate samples
func (q *QueryService) GetWorkoutDetail(id int64) (*WorkoutDetail, error) {
	workout, err := q.store.GetWorkout(id)
	if err != nil {
		return nil, err
	}

	detail := &WorkoutDetail{Workout: *workout}

	samples, err := q.store.GetWorkoutSamples(id)
	if err != nil {
		return nil, fmt.Errorf("getting samples for %d: %w", id, err)
	}
	if len(samples) == 0 {
		return detail, nil
	}

	hrs := make([]int, len(samples))
	elapsed := make([]float64, len(samples))
	for i, s := range samples {
		hrs[i] = s.HeartRate
		elapsed[i] = s.ElapsedSeconds
	}

	result, err := analysis.AnalyzeWorkoutWeighted(hrs, elapsed, q.params, q.method)
	if err != nil {
		return nil, fmt.Errorf("analyzing workout %d: %w", id, err)
	}
	detail.Analysis = &result

	return detail, nil
}

// GetWorkouts returns recent workouts for list views
func (q *QueryService) GetWorkouts(limit, offset int) ([]store.Workout, error) {
	return q.store.GetWorkouts(limit, offset)
}

// ZoneBoundaries returns the configured athlete's zone boundaries
func (q *QueryService) ZoneBoundaries() (analysis.ZoneBoundaries, error) {
	return analysis.ZoneBoundariesFor(q.params, q.method)
}

// loadHistory assembles the daily load series ending at date
func (q *QueryService) loadHistory(date time.Time) ([]analysis.DailyLoad, error) {
	start := date.AddDate(0, 0, -(LoadHistoryDays - 1))
	metrics, err := q.store.GetDailyLoads(start, date)
	if err != nil {
		return nil, fmt.Errorf("getting load history: %w", err)
	}

	loads := make([]analysis.DailyLoad, 0, len(metrics))
	for _, m := range metrics {
		if m.TrainingLoad == nil {
			continue
		}
		loads = append(loads, analysis.DailyLoad{Date: m.Date, Load: *m.TrainingLoad})
	}
	return loads, nil
}

// convertStoredMetric converts a store metric to an analysis metric
func convertStoredMetric(m store.DailyMetric) analysis.DailyMetrics {
	return analysis.DailyMetrics{
		Date:              m.Date,
		HRVSDNN:           m.HRVSDNN,
		RestingHR:         m.RestingHR,
		TotalSleepMinutes: m.TotalSleepMinutes,
		SleepScore:        m.SleepScore,
		Steps:             m.Steps,
	}
}
