package service

// Lookback windows used when assembling analysis inputs from the store.
const (
	// ReadinessBaselineDays covers the HRV baseline plus the current day
	ReadinessBaselineDays = 30

	// LoadHistoryDays covers the chronic window with margin for trends
	LoadHistoryDays = 90

	// InitialSyncDays bounds the first backfill from the API
	InitialSyncDays = 180

	// SampleBatchSize bounds per-sync workout sample fetches
	SampleBatchSize = 50

	// RecentWorkoutsLimit bounds the dashboard workout list
	RecentWorkoutsLimit = 10

	// ChartWindowDays is the span of the dashboard trend charts
	ChartWindowDays = 42
)
