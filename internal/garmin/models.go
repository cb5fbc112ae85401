package garmin

// DailySummary represents one day of wellness data from the API
type DailySummary struct {
	CalendarDate      string   `json:"calendarDate"` // YYYY-MM-DD
	RestingHeartRate  *int     `json:"restingHeartRate"`
	AverageHeartRate  *int     `json:"averageHeartRate"`
	HRVSDNN           *float64 `json:"hrvSdnn"` // ms
	TotalSleepSeconds *int     `json:"totalSleepSeconds"`
	SleepScore        *int     `json:"sleepScore"` // 0-100
	Steps             *int     `json:"steps"`
	TrainingLoad      *float64 `json:"trainingLoad"`
}

// WorkoutSummary represents a workout from the API
type WorkoutSummary struct {
	WorkoutID        int64    `json:"workoutId"`
	WorkoutName      string   `json:"workoutName"`
	Sport            string   `json:"sport"`
	StartTimeGMT     string   `json:"startTimeGMT"` // RFC 3339
	DurationSeconds  int      `json:"durationSeconds"`
	AverageHeartRate *float64 `json:"averageHeartRate"`
	MaxHeartRate     *float64 `json:"maxHeartRate"`
	TrainingLoad     *float64 `json:"trainingLoad"`
	HasHeartRate     bool     `json:"hasHeartRate"`
}

// HeartRateSeries represents a workout's heart rate samples from the API.
// ElapsedSeconds and HeartRates are parallel arrays.
type HeartRateSeries struct {
	WorkoutID      int64     `json:"workoutId"`
	ElapsedSeconds []float64 `json:"elapsedSeconds"`
	HeartRates     []int     `json:"heartRates"`
}

// Len returns the number of samples, or 0 if nil
func (s *HeartRateSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.HeartRates)
}
