package analysis

import (
	"fmt"
	"math"
	"time"
)

// DailyMetrics is one day of biometric data handed in by the data layer.
// Nil fields mean the wearable did not report that metric.
type DailyMetrics struct {
	Date              time.Time
	HRVSDNN           *float64
	RestingHR         *int
	TotalSleepMinutes *float64
	SleepScore        *int // device-reported quality, 0-100
	Steps             *int
}

// ReadinessLevel is the categorical readiness band.
type ReadinessLevel string

const (
	LevelOptimal  ReadinessLevel = "optimal"
	LevelGood     ReadinessLevel = "good"
	LevelModerate ReadinessLevel = "moderate"
	LevelLow      ReadinessLevel = "low"
	LevelPoor     ReadinessLevel = "poor"
)

// TrainingRecommendation is the suggested session intensity for the day.
type TrainingRecommendation string

const (
	RecommendHighIntensity TrainingRecommendation = "high_intensity"
	RecommendModerate      TrainingRecommendation = "moderate"
	RecommendEasy          TrainingRecommendation = "easy"
	RecommendRest          TrainingRecommendation = "rest"
	RecommendRecovery      TrainingRecommendation = "recovery"
)

// ReadinessConfig holds the scoring policy constants.
type ReadinessConfig struct {
	// Factor weights. Must sum to 1.0; when a factor has no data its
	// weight is redistributed proportionally across the present ones.
	HRVWeight   float64
	SleepWeight float64
	LoadWeight  float64

	// HRV baseline.
	BaselineMinSamples int     // baseline days required before HRV is scored
	HRVZClip           float64 // z-scores are clipped to +-HRVZClip

	// Sleep scoring.
	SleepTargetMinutes float64

	// ACWR cutpoints for the load factor curve. These mirror the load
	// engine's bands; keep the two configs in agreement.
	ACWRUndertrainingMin float64
	ACWROptimalMax       float64
	ACWRCautionMax       float64

	// Concern thresholds for key factors / red flags.
	HRVLowZ           float64 // below this z the HRV red flag fires
	SleepShortMinutes float64
	MonotonyConcern   float64
}

// DefaultReadinessConfig returns the standard scoring constants.
func DefaultReadinessConfig() ReadinessConfig {
	return ReadinessConfig{
		HRVWeight:            0.4,
		SleepWeight:          0.3,
		LoadWeight:           0.3,
		BaselineMinSamples:   3,
		HRVZClip:             3.0,
		SleepTargetMinutes:   480,
		ACWRUndertrainingMin: 0.8,
		ACWROptimalMax:       1.3,
		ACWRCautionMax:       1.5,
		HRVLowZ:              -1.5,
		SleepShortMinutes:    360,
		MonotonyConcern:      2.0,
	}
}

// ReadinessResult is the per-day readiness assessment. It is recomputed
// from scratch on every call; nothing is cached here.
type ReadinessResult struct {
	Date           time.Time
	Score          int // 0-100
	Level          ReadinessLevel
	Recommendation TrainingRecommendation

	// Human-readable findings, emitted in fixed factor order
	// (HRV, sleep, load, monotony) so output is reproducible.
	KeyFactors []string
	RedFlags   []string

	// Sub-factor detail; nil when the factor had no data.
	HRVZScore  *float64
	HRVScore   *float64
	SleepScore *float64
	LoadScore  *float64
}

// ReadinessScorer combines HRV, sleep and training load signals into a
// single readiness score. Pure; holds only configuration.
type ReadinessScorer struct {
	cfg ReadinessConfig
}

// NewReadinessScorer creates a scorer with the given policy constants.
func NewReadinessScorer(cfg ReadinessConfig) *ReadinessScorer {
	return &ReadinessScorer{cfg: cfg}
}

// Config returns the scorer's constants.
func (s *ReadinessScorer) Config() ReadinessConfig {
	return s.cfg
}

// Score assesses readiness for the most recent day in the metrics window.
// The window must be ordered oldest-first; earlier days form the HRV
// baseline. An empty window is a valid new-user state and yields a
// moderate default with an explicit red flag rather than an error.
func (s *ReadinessScorer) Score(window []DailyMetrics, load LoadState) ReadinessResult {
	if len(window) == 0 {
		return ReadinessResult{
			Score:          50,
			Level:          LevelModerate,
			Recommendation: RecommendEasy,
			RedFlags:       []string{"Insufficient data to assess readiness - defaulting to a cautious moderate score"},
		}
	}

	today := window[len(window)-1]
	result := ReadinessResult{Date: today.Date}

	hrvScore, hrvZ := s.scoreHRV(window)
	sleepScore := s.scoreSleep(today)
	loadScore := s.scoreLoad(load)

	result.HRVScore = hrvScore
	result.HRVZScore = hrvZ
	result.SleepScore = sleepScore
	result.LoadScore = loadScore

	// Weighted composite over whichever factors have data. Weights of
	// absent factors redistribute proportionally instead of dragging the
	// score toward an arbitrary default.
	var weighted, weightSum float64
	if hrvScore != nil {
		weighted += *hrvScore * s.cfg.HRVWeight
		weightSum += s.cfg.HRVWeight
	}
	if sleepScore != nil {
		weighted += *sleepScore * s.cfg.SleepWeight
		weightSum += s.cfg.SleepWeight
	}
	if loadScore != nil {
		weighted += *loadScore * s.cfg.LoadWeight
		weightSum += s.cfg.LoadWeight
	}

	if weightSum == 0 {
		result.Score = 50
		result.RedFlags = append(result.RedFlags,
			"Insufficient data to assess readiness - defaulting to a cautious moderate score")
	} else {
		result.Score = int(math.Round(weighted / weightSum))
	}

	result.Level = levelForScore(result.Score)
	result.Recommendation = s.recommend(result.Level, load)
	s.collectFindings(&result, hrvZ, today, load)

	return result
}

// scoreHRV compares today's HRV to the trailing baseline built from the
// earlier days in the window. Returns nil when today has no HRV reading or
// the baseline is too thin or flat to produce a meaningful z-score.
func (s *ReadinessScorer) scoreHRV(window []DailyMetrics) (score, z *float64) {
	today := window[len(window)-1]
	if today.HRVSDNN == nil {
		return nil, nil
	}

	var baseline []float64
	for _, day := range window[:len(window)-1] {
		if day.HRVSDNN != nil {
			baseline = append(baseline, *day.HRVSDNN)
		}
	}
	if len(baseline) < s.cfg.BaselineMinSamples {
		return nil, nil
	}

	sd := populationStddev(baseline)
	if sd == 0 {
		return nil, nil
	}

	zval := (*today.HRVSDNN - mean(baseline)) / sd
	zval = clamp(zval, -s.cfg.HRVZClip, s.cfg.HRVZClip)

	// 50 at baseline, +-20 points per standard deviation, clipped to 0-100.
	sc := clamp(50+20*zval, 0, 100)
	return &sc, &zval
}

// scoreSleep scores sleep duration against the target, blended evenly with
// the device sleep quality score when one was reported.
func (s *ReadinessScorer) scoreSleep(today DailyMetrics) *float64 {
	if today.TotalSleepMinutes == nil {
		return nil
	}

	durationScore := clamp(*today.TotalSleepMinutes/s.cfg.SleepTargetMinutes*100, 0, 100)
	if today.SleepScore == nil {
		return &durationScore
	}

	blended := (durationScore + float64(*today.SleepScore)) / 2
	return &blended
}

// scoreLoad converts the ACWR into a 0-100 risk factor. Full marks inside
// the optimal band, a flat mild penalty for undertraining, and a
// monotonically decreasing score once the ratio leaves the optimal band.
// Nil when the chronic load was zero (ACWR undefined).
func (s *ReadinessScorer) scoreLoad(load LoadState) *float64 {
	if load.ACWR == nil {
		return nil
	}

	acwr := *load.ACWR
	cfg := s.cfg

	var sc float64
	switch {
	case acwr < cfg.ACWRUndertrainingMin:
		sc = 85
	case acwr <= cfg.ACWROptimalMax:
		sc = 100
	case acwr <= cfg.ACWRCautionMax:
		// 100 down to 60 across the caution band.
		span := cfg.ACWRCautionMax - cfg.ACWROptimalMax
		sc = 100 - (acwr-cfg.ACWROptimalMax)/span*40
	default:
		sc = math.Max(0, 60-(acwr-cfg.ACWRCautionMax)*80)
	}

	return &sc
}

// levelForScore maps the composite score to a readiness band.
func levelForScore(score int) ReadinessLevel {
	switch {
	case score >= 85:
		return LevelOptimal
	case score >= 70:
		return LevelGood
	case score >= 50:
		return LevelModerate
	case score >= 30:
		return LevelLow
	default:
		return LevelPoor
	}
}

// recommend maps the level to a session recommendation, gated by ACWR:
// even on a good day, hard sessions are not recommended while the load
// ratio sits above the optimal band.
func (s *ReadinessScorer) recommend(level ReadinessLevel, load LoadState) TrainingRecommendation {
	switch level {
	case LevelOptimal, LevelGood:
		if load.Status == ACWRCaution || load.Status == ACWRHighRisk {
			return RecommendModerate
		}
		return RecommendHighIntensity
	case LevelModerate:
		return RecommendEasy
	case LevelLow:
		return RecommendRecovery
	default:
		return RecommendRest
	}
}

// collectFindings appends key factors and red flags in fixed factor order:
// HRV, sleep, load, monotony.
func (s *ReadinessScorer) collectFindings(result *ReadinessResult, hrvZ *float64, today DailyMetrics, load LoadState) {
	if hrvZ != nil {
		switch {
		case *hrvZ < s.cfg.HRVLowZ:
			result.RedFlags = append(result.RedFlags,
				fmt.Sprintf("HRV is %.1f standard deviations below baseline - recovery is compromised", -*hrvZ))
		case *hrvZ < -0.5:
			result.KeyFactors = append(result.KeyFactors, "HRV slightly below baseline")
		case *hrvZ > 0.5:
			result.KeyFactors = append(result.KeyFactors, "HRV above baseline - good recovery signal")
		default:
			result.KeyFactors = append(result.KeyFactors, "HRV in line with baseline")
		}
	}

	if today.TotalSleepMinutes != nil {
		switch {
		case *today.TotalSleepMinutes < s.cfg.SleepShortMinutes:
			result.RedFlags = append(result.RedFlags,
				fmt.Sprintf("Only %.1f hours of sleep - well short of the %.0f hour target",
					*today.TotalSleepMinutes/60, s.cfg.SleepTargetMinutes/60))
		case *today.TotalSleepMinutes >= s.cfg.SleepTargetMinutes:
			result.KeyFactors = append(result.KeyFactors, "Sleep duration on target")
		default:
			result.KeyFactors = append(result.KeyFactors, "Sleep duration slightly under target")
		}
	}

	switch load.Status {
	case ACWRHighRisk:
		result.RedFlags = append(result.RedFlags,
			fmt.Sprintf("Acute:chronic workload ratio %.2f exceeds the high-risk threshold", *load.ACWR))
	case ACWRCaution:
		result.KeyFactors = append(result.KeyFactors, "Training load ramping quickly - approaching high-risk territory")
	case ACWROptimal:
		result.KeyFactors = append(result.KeyFactors, "Training load in the optimal band")
	case ACWRUndertraining:
		result.KeyFactors = append(result.KeyFactors, "Training load below maintenance - room to build")
	}

	if load.Monotony != nil && *load.Monotony > s.cfg.MonotonyConcern {
		result.RedFlags = append(result.RedFlags,
			fmt.Sprintf("Training monotony %.1f is high - vary the daily load", *load.Monotony))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
