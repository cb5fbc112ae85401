package analysis

import (
	"math"
	"sort"
	"time"
)

// DailyLoad is one day's training load value.
type DailyLoad struct {
	Date time.Time
	Load float64
}

// ACWRStatus is the categorical banding of the acute:chronic workload ratio.
type ACWRStatus string

const (
	ACWRUnknown       ACWRStatus = "unknown"
	ACWRUndertraining ACWRStatus = "undertraining"
	ACWROptimal       ACWRStatus = "optimal"
	ACWRCaution       ACWRStatus = "caution"
	ACWRHighRisk      ACWRStatus = "high risk"
)

// LoadConfig holds the policy constants for the training load model.
type LoadConfig struct {
	// Rolling window lengths in calendar days.
	AcuteDays   int
	ChronicDays int

	// Impulse-response decay time constants in days.
	FitnessDecayDays float64
	FatigueDecayDays float64

	// ACWR band cutpoints. Below Undertraining is "undertraining",
	// up to OptimalMax is "optimal", up to CautionMax is "caution",
	// above that is "high risk".
	ACWRUndertrainingMin float64
	ACWROptimalMax       float64
	ACWRCautionMax       float64
}

// DefaultLoadConfig returns the standard model constants.
func DefaultLoadConfig() LoadConfig {
	return LoadConfig{
		AcuteDays:            7,
		ChronicDays:          28,
		FitnessDecayDays:     42,
		FatigueDecayDays:     7,
		ACWRUndertrainingMin: 0.8,
		ACWROptimalMax:       1.3,
		ACWRCautionMax:       1.5,
	}
}

// LoadState is the derived training load picture as of the most recent day
// in the supplied history. ACWR, Monotony and Strain are nil when their
// denominators degenerate to zero; that is a sentinel, never a fault.
type LoadState struct {
	Date        time.Time
	AcuteLoad   float64 // mean daily load over the acute window
	ChronicLoad float64 // mean daily load over the chronic window
	ACWR        *float64
	Status      ACWRStatus
	Monotony    *float64 // acute-window mean / population stddev
	Strain      *float64 // acute-window mean * monotony
	Fitness     float64
	Fatigue     float64
	Form        float64 // fitness - fatigue
}

// DailyLoadState is one day of the fitness/fatigue/form trend.
type DailyLoadState struct {
	Date    time.Time
	Load    float64
	Fitness float64
	Fatigue float64
	Form    float64
}

// LoadEngine computes rolling training load metrics over a caller-supplied
// daily load history. It holds only configuration; every call is pure.
type LoadEngine struct {
	cfg LoadConfig
}

// NewLoadEngine creates an engine with the given constants.
func NewLoadEngine(cfg LoadConfig) *LoadEngine {
	return &LoadEngine{cfg: cfg}
}

// Config returns the engine's constants.
func (e *LoadEngine) Config() LoadConfig {
	return e.cfg
}

// Compute derives the current LoadState from an ordered daily load history.
//
// Windows are calendar windows ending on the latest date in the history.
// Days with no record are treated as zero load, so acute and chronic means
// bias low on short histories rather than inflating the ratio. The
// fitness/fatigue recurrence folds over the full supplied history; with a
// short lookback the estimates carry a cold-start bias toward zero, which
// callers accept by supplying at least the chronic window of history.
func (e *LoadEngine) Compute(history []DailyLoad) LoadState {
	if len(history) == 0 {
		return LoadState{Status: ACWRUnknown}
	}

	days := fillDays(history)
	last := days[len(days)-1]

	state := LoadState{Date: last.Date}

	// Impulse-response fold, oldest day first. Each day depends on the
	// previous one, so this stays a single sequential pass.
	fitnessDecay := math.Exp(-1 / e.cfg.FitnessDecayDays)
	fatigueDecay := math.Exp(-1 / e.cfg.FatigueDecayDays)
	var fitness, fatigue float64
	for _, d := range days {
		fitness = fitness*fitnessDecay + d.Load
		fatigue = fatigue*fatigueDecay + d.Load
	}
	state.Fitness = fitness
	state.Fatigue = fatigue
	state.Form = fitness - fatigue

	acute := trailingWindow(days, e.cfg.AcuteDays)
	chronic := trailingWindow(days, e.cfg.ChronicDays)

	state.AcuteLoad = mean(acute)
	state.ChronicLoad = mean(chronic)

	if state.ChronicLoad > 0 {
		acwr := state.AcuteLoad / state.ChronicLoad
		state.ACWR = &acwr
		state.Status = e.acwrStatus(acwr)
	} else {
		state.Status = ACWRUnknown
	}

	if sd := populationStddev(acute); sd > 0 {
		monotony := state.AcuteLoad / sd
		state.Monotony = &monotony
		strain := state.AcuteLoad * monotony
		state.Strain = &strain
	}

	return state
}

// Trend returns the day-by-day fitness/fatigue/form series over the
// history's full date range, missing days zero-filled.
func (e *LoadEngine) Trend(history []DailyLoad) []DailyLoadState {
	if len(history) == 0 {
		return nil
	}

	days := fillDays(history)
	fitnessDecay := math.Exp(-1 / e.cfg.FitnessDecayDays)
	fatigueDecay := math.Exp(-1 / e.cfg.FatigueDecayDays)

	trend := make([]DailyLoadState, 0, len(days))
	var fitness, fatigue float64
	for _, d := range days {
		fitness = fitness*fitnessDecay + d.Load
		fatigue = fatigue*fatigueDecay + d.Load
		trend = append(trend, DailyLoadState{
			Date:    d.Date,
			Load:    d.Load,
			Fitness: fitness,
			Fatigue: fatigue,
			Form:    fitness - fatigue,
		})
	}
	return trend
}

func (e *LoadEngine) acwrStatus(acwr float64) ACWRStatus {
	switch {
	case acwr < e.cfg.ACWRUndertrainingMin:
		return ACWRUndertraining
	case acwr <= e.cfg.ACWROptimalMax:
		return ACWROptimal
	case acwr <= e.cfg.ACWRCautionMax:
		return ACWRCaution
	default:
		return ACWRHighRisk
	}
}

// fillDays sorts the history by date, sums same-day entries, and expands it
// into one entry per calendar day from the first to the last date.
func fillDays(history []DailyLoad) []DailyLoad {
	sorted := make([]DailyLoad, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	loadByDay := make(map[string]float64)
	for _, dl := range sorted {
		loadByDay[dayKey(dl.Date)] += dl.Load
	}

	start := truncateDay(sorted[0].Date)
	end := truncateDay(sorted[len(sorted)-1].Date)

	var days []DailyLoad
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DailyLoad{Date: d, Load: loadByDay[dayKey(d)]})
	}
	return days
}

// trailingWindow returns the last n days of loads, left-padded with zeros
// when the history is shorter than the window.
func trailingWindow(days []DailyLoad, n int) []float64 {
	window := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := len(days) - n + i
		if idx >= 0 {
			window[i] = days[idx].Load
		}
	}
	return window
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
