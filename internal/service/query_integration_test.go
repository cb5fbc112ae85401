package service

import (
	"testing"
	"time"

	"garmin-trainer/internal/analysis"
	"garmin-trainer/internal/config"
	"garmin-trainer/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testAthleteConfig() config.AthleteConfig {
	return config.AthleteConfig{
		MaxHR:      180,
		RestingHR:  50,
		ZoneMethod: "percentage",
	}
}

// seedWellness stores n days of metrics ending today, with constant HRV
// except the final day, constant sleep and constant training load.
func seedWellness(t *testing.T, db *store.DB, n int, baselineHRV, todayHRV, load float64) {
	t.Helper()
	today := time.Now().Truncate(24 * time.Hour)
	for i := 0; i < n; i++ {
		date := today.AddDate(0, 0, -(n - 1 - i))
		hrv := baselineHRV
		if i%2 == 1 {
			hrv += 5
		}
		if i == n-1 {
			hrv = todayHRV
		}
		m := &store.DailyMetric{
			Date:              date,
			HRVSDNN:           &hrv,
			TotalSleepMinutes: floatPtr(480),
			TrainingLoad:      &load,
		}
		if err := db.UpsertDailyMetric(m); err != nil {
			t.Fatalf("seeding day %d: %v", i, err)
		}
	}
}

func TestReadinessForDateFromStore(t *testing.T) {
	db := openTestDB(t)
	seedWellness(t, db, 30, 60, 60, 100)

	q := NewQueryService(db, testAthleteConfig())
	today := time.Now().Truncate(24 * time.Hour)

	readiness, load, err := q.ReadinessForDate(today)
	if err != nil {
		t.Fatalf("ReadinessForDate() error = %v", err)
	}

	// 30 days of constant load 100: acute == chronic == 100, ACWR 1.0
	if load.ACWR == nil {
		t.Fatal("ACWR = nil, want ~1.0")
	}
	if *load.ACWR < 0.99 || *load.ACWR > 1.01 {
		t.Errorf("ACWR = %v, want ~1.0", *load.ACWR)
	}
	if load.Status != analysis.ACWROptimal {
		t.Errorf("Status = %q, want optimal", load.Status)
	}

	// All three factors present
	if readiness.HRVScore == nil || readiness.SleepScore == nil || readiness.LoadScore == nil {
		t.Fatalf("factor scores = %v/%v/%v, want all present",
			readiness.HRVScore, readiness.SleepScore, readiness.LoadScore)
	}
	if readiness.Score < 70 {
		t.Errorf("Score = %d, want good readiness for steady training", readiness.Score)
	}
}

func TestReadinessForDateEmptyStore(t *testing.T) {
	db := openTestDB(t)
	q := NewQueryService(db, testAthleteConfig())

	readiness, load, err := q.ReadinessForDate(time.Now())
	if err != nil {
		t.Fatalf("ReadinessForDate() error = %v", err)
	}
	if readiness.Score != 50 {
		t.Errorf("Score = %d, want neutral 50 with no data", readiness.Score)
	}
	if len(readiness.RedFlags) == 0 {
		t.Error("want an insufficient-data red flag")
	}
	if load.Status != analysis.ACWRUnknown {
		t.Errorf("Status = %q, want unknown", load.Status)
	}
}

func TestLoadTrendWindow(t *testing.T) {
	db := openTestDB(t)
	seedWellness(t, db, 60, 60, 60, 80)

	q := NewQueryService(db, testAthleteConfig())
	trend, err := q.LoadTrend(14)
	if err != nil {
		t.Fatalf("LoadTrend() error = %v", err)
	}
	if len(trend) != 14 {
		t.Fatalf("len = %d, want 14", len(trend))
	}
	// Fitness accumulates under constant load
	if trend[13].Fitness <= trend[0].Fitness {
		t.Errorf("fitness not increasing: %v -> %v", trend[0].Fitness, trend[13].Fitness)
	}
	for i := 1; i < len(trend); i++ {
		if !trend[i].Date.After(trend[i-1].Date) {
			t.Errorf("dates not ascending at %d", i)
		}
	}
}

func TestGetWorkoutDetail(t *testing.T) {
	db := openTestDB(t)

	w := &store.Workout{
		ID:              42,
		Name:            "Intervals",
		Sport:           "running",
		StartTime:       time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC),
		DurationSeconds: 180,
		HasHR:           true,
	}
	if err := db.UpsertWorkout(w); err != nil {
		t.Fatalf("UpsertWorkout() error = %v", err)
	}

	// Zone 2 is 108-126, zone 4 is 144-162 at max HR 180
	samples := []store.WorkoutSample{
		{WorkoutID: 42, ElapsedSeconds: 0, HeartRate: 115},
		{WorkoutID: 42, ElapsedSeconds: 60, HeartRate: 115},
		{WorkoutID: 42, ElapsedSeconds: 120, HeartRate: 155},
		{WorkoutID: 42, ElapsedSeconds: 180, HeartRate: 155},
	}
	if err := db.SaveWorkoutSamples(42, samples); err != nil {
		t.Fatalf("SaveWorkoutSamples() error = %v", err)
	}

	q := NewQueryService(db, testAthleteConfig())
	detail, err := q.GetWorkoutDetail(42)
	if err != nil {
		t.Fatalf("GetWorkoutDetail() error = %v", err)
	}
	if detail.Analysis == nil {
		t.Fatal("Analysis = nil, want zone analysis")
	}
	if detail.Analysis.Distribution[2] != 1 {
		t.Errorf("zone 2 minutes = %v, want 1", detail.Analysis.Distribution[2])
	}
	if detail.Analysis.Distribution[4] != 2 {
		t.Errorf("zone 4 minutes = %v, want 2", detail.Analysis.Distribution[4])
	}
	if detail.Analysis.DominantZone != 4 {
		t.Errorf("DominantZone = %d, want 4", detail.Analysis.DominantZone)
	}
}

func TestGetWorkoutDetailNoSamples(t *testing.T) {
	db := openTestDB(t)

	w := &store.Workout{
		ID:              7,
		Name:            "Strength",
		Sport:           "strength",
		StartTime:       time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC),
		DurationSeconds: 1800,
	}
	if err := db.UpsertWorkout(w); err != nil {
		t.Fatalf("UpsertWorkout() error = %v", err)
	}

	q := NewQueryService(db, testAthleteConfig())
	detail, err := q.GetWorkoutDetail(7)
	if err != nil {
		t.Fatalf("GetWorkoutDetail() error = %v", err)
	}
	if detail.Analysis != nil {
		t.Errorf("Analysis = %+v, want nil without samples", detail.Analysis)
	}
}

func TestGetDashboardData(t *testing.T) {
	db := openTestDB(t)
	seedWellness(t, db, 30, 60, 60, 100)

	w := &store.Workout{
		ID:              1,
		Name:            "Easy Run",
		Sport:           "running",
		StartTime:       time.Now().Add(-24 * time.Hour),
		DurationSeconds: 2400,
		HasHR:           true,
	}
	if err := db.UpsertWorkout(w); err != nil {
		t.Fatalf("UpsertWorkout() error = %v", err)
	}

	q := NewQueryService(db, testAthleteConfig())
	data, err := q.GetDashboardData()
	if err != nil {
		t.Fatalf("GetDashboardData() error = %v", err)
	}
	if data.Readiness == nil || data.Load == nil {
		t.Fatal("Readiness/Load missing")
	}
	if data.Today == nil {
		t.Error("Today = nil, want today's metrics")
	}
	if len(data.RecentWorkouts) != 1 {
		t.Errorf("RecentWorkouts = %d, want 1", len(data.RecentWorkouts))
	}
	if len(data.FormHistory) == 0 {
		t.Error("FormHistory empty, want chart data")
	}
	if len(data.FormHistory) != len(data.ChartDates) {
		t.Errorf("chart lengths differ: %d vs %d", len(data.FormHistory), len(data.ChartDates))
	}
}
