package analysis

import (
	"math"
	"testing"
	"time"
)

func loadHistory(base time.Time, loads ...float64) []DailyLoad {
	history := make([]DailyLoad, len(loads))
	for i, l := range loads {
		history[i] = DailyLoad{Date: base.AddDate(0, 0, i), Load: l}
	}
	return history
}

func TestComputeEmptyHistory(t *testing.T) {
	engine := NewLoadEngine(DefaultLoadConfig())

	state := engine.Compute(nil)

	if state.Status != ACWRUnknown {
		t.Errorf("Status = %q, want %q", state.Status, ACWRUnknown)
	}
	if state.ACWR != nil {
		t.Errorf("ACWR = %v, want nil", *state.ACWR)
	}
	if state.Fitness != 0 || state.Fatigue != 0 || state.Form != 0 {
		t.Errorf("fitness/fatigue/form = %v/%v/%v, want zeros",
			state.Fitness, state.Fatigue, state.Form)
	}
}

func TestComputeConstantLoad(t *testing.T) {
	// 30 days of constant load: ACWR converges to 1.0 and monotony is
	// undefined because the window has zero variance.
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	state := engine.Compute(loadHistory(base,
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100))

	if state.ACWR == nil {
		t.Fatal("ACWR is nil, want ~1.0")
	}
	if math.Abs(*state.ACWR-1.0) > 1e-9 {
		t.Errorf("ACWR = %v, want 1.0", *state.ACWR)
	}
	if state.Status != ACWROptimal {
		t.Errorf("Status = %q, want %q", state.Status, ACWROptimal)
	}
	if state.Monotony != nil {
		t.Errorf("Monotony = %v, want nil (zero stddev)", *state.Monotony)
	}
	if state.Strain != nil {
		t.Errorf("Strain = %v, want nil", *state.Strain)
	}
	if math.Abs(state.AcuteLoad-100) > 1e-9 {
		t.Errorf("AcuteLoad = %v, want 100", state.AcuteLoad)
	}
	if math.Abs(state.ChronicLoad-100) > 1e-9 {
		t.Errorf("ChronicLoad = %v, want 100", state.ChronicLoad)
	}
}

func TestComputeZeroChronicLoad(t *testing.T) {
	// All-zero history: ACWR must be a nil sentinel, never a fault.
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	state := engine.Compute(loadHistory(base, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0))

	if state.ACWR != nil {
		t.Errorf("ACWR = %v, want nil", *state.ACWR)
	}
	if state.Status != ACWRUnknown {
		t.Errorf("Status = %q, want %q", state.Status, ACWRUnknown)
	}
}

func TestComputeShortHistoryBiasesLow(t *testing.T) {
	// Three days of history: missing days in the acute window count as
	// zero, so the acute mean is pulled down rather than inflated.
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	state := engine.Compute(loadHistory(base, 70, 70, 70))

	want := (70.0 * 3) / 7
	if math.Abs(state.AcuteLoad-want) > 1e-9 {
		t.Errorf("AcuteLoad = %v, want %v", state.AcuteLoad, want)
	}

	wantChronic := (70.0 * 3) / 28
	if math.Abs(state.ChronicLoad-wantChronic) > 1e-9 {
		t.Errorf("ChronicLoad = %v, want %v", state.ChronicLoad, wantChronic)
	}

	// Short histories make the ratio spike; that is the documented
	// zero-fill behavior, and here 30/7.5 = 4.0 lands in high risk.
	if state.ACWR == nil {
		t.Fatal("ACWR is nil")
	}
	if state.Status != ACWRHighRisk {
		t.Errorf("Status = %q, want %q", state.Status, ACWRHighRisk)
	}
}

func TestComputeACWRSpike(t *testing.T) {
	// Four low weeks then a heavy final week drives the ratio up.
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	loads := make([]float64, 35)
	for i := range loads {
		if i < 28 {
			loads[i] = 40
		} else {
			loads[i] = 160
		}
	}

	state := engine.Compute(loadHistory(base, loads...))

	if state.ACWR == nil {
		t.Fatal("ACWR is nil")
	}
	if *state.ACWR <= 1.5 {
		t.Errorf("ACWR = %v, want > 1.5 after a load spike", *state.ACWR)
	}
	if state.Status != ACWRHighRisk {
		t.Errorf("Status = %q, want %q", state.Status, ACWRHighRisk)
	}
}

func TestComputeMonotonyAndStrain(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	// Acute window [80 120 80 120 80 120 80]: mean 97.14, population
	// stddev 19.79 -> monotony ~4.91.
	state := engine.Compute(loadHistory(base, 80, 120, 80, 120, 80, 120, 80))

	if state.Monotony == nil {
		t.Fatal("Monotony is nil")
	}
	wantMean := (80.0*4 + 120.0*3) / 7
	if math.Abs(state.AcuteLoad-wantMean) > 1e-9 {
		t.Errorf("AcuteLoad = %v, want %v", state.AcuteLoad, wantMean)
	}
	if math.Abs(*state.Monotony-wantMean/19.79) > 0.05 {
		t.Errorf("Monotony = %v, want ~%v", *state.Monotony, wantMean/19.79)
	}

	if state.Strain == nil {
		t.Fatal("Strain is nil")
	}
	if math.Abs(*state.Strain-wantMean**state.Monotony) > 1e-9 {
		t.Errorf("Strain = %v, want mean*monotony = %v", *state.Strain, wantMean**state.Monotony)
	}
}

func TestComputeFillsMissingDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	// Records on day 0 and day 6 only; the gap days count as zero.
	history := []DailyLoad{
		{Date: base, Load: 70},
		{Date: base.AddDate(0, 0, 6), Load: 70},
	}

	state := engine.Compute(history)

	want := 140.0 / 7
	if math.Abs(state.AcuteLoad-want) > 1e-9 {
		t.Errorf("AcuteLoad = %v, want %v", state.AcuteLoad, want)
	}
}

func TestComputeSumsSameDayEntries(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	split := engine.Compute([]DailyLoad{
		{Date: base, Load: 60},
		{Date: base, Load: 40},
	})
	single := engine.Compute([]DailyLoad{{Date: base, Load: 100}})

	if math.Abs(split.AcuteLoad-single.AcuteLoad) > 1e-9 {
		t.Errorf("split AcuteLoad = %v, single = %v", split.AcuteLoad, single.AcuteLoad)
	}
	if math.Abs(split.Fitness-single.Fitness) > 1e-9 {
		t.Errorf("split Fitness = %v, single = %v", split.Fitness, single.Fitness)
	}
}

func TestComputeFitnessFatigueRecurrence(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	state := engine.Compute(loadHistory(base, 100, 100, 100))

	// Hand-rolled three-day fold.
	fitDecay := math.Exp(-1.0 / 42)
	fatDecay := math.Exp(-1.0 / 7)
	var fit, fat float64
	for i := 0; i < 3; i++ {
		fit = fit*fitDecay + 100
		fat = fat*fatDecay + 100
	}

	if math.Abs(state.Fitness-fit) > 1e-9 {
		t.Errorf("Fitness = %v, want %v", state.Fitness, fit)
	}
	if math.Abs(state.Fatigue-fat) > 1e-9 {
		t.Errorf("Fatigue = %v, want %v", state.Fatigue, fat)
	}
	if math.Abs(state.Form-(fit-fat)) > 1e-9 {
		t.Errorf("Form = %v, want %v", state.Form, fit-fat)
	}

	// Fatigue responds faster than fitness early on.
	if state.Fatigue <= state.Fitness {
		t.Errorf("Fatigue %v should exceed Fitness %v after 3 loaded days",
			state.Fatigue, state.Fitness)
	}
}

func TestTrend(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewLoadEngine(DefaultLoadConfig())

	trend := engine.Trend([]DailyLoad{
		{Date: base, Load: 100},
		{Date: base.AddDate(0, 0, 4), Load: 100},
	})

	if len(trend) != 5 {
		t.Fatalf("len(trend) = %d, want 5 (gap days filled)", len(trend))
	}
	for i, d := range trend {
		want := base.AddDate(0, 0, i)
		if !d.Date.Equal(want) {
			t.Errorf("trend[%d].Date = %v, want %v", i, d.Date, want)
		}
	}

	// Fitness decays through the rest days.
	if trend[3].Fitness >= trend[0].Fitness {
		t.Errorf("Fitness should decay over rest days: day 0 %v, day 3 %v",
			trend[0].Fitness, trend[3].Fitness)
	}

	// The trend's last day matches Compute on the same history.
	state := engine.Compute([]DailyLoad{
		{Date: base, Load: 100},
		{Date: base.AddDate(0, 0, 4), Load: 100},
	})
	last := trend[len(trend)-1]
	if math.Abs(last.Fitness-state.Fitness) > 1e-9 || math.Abs(last.Form-state.Form) > 1e-9 {
		t.Errorf("trend end (%v, %v) disagrees with Compute (%v, %v)",
			last.Fitness, last.Form, state.Fitness, state.Form)
	}
}

func TestTrendEmpty(t *testing.T) {
	engine := NewLoadEngine(DefaultLoadConfig())
	if trend := engine.Trend(nil); trend != nil {
		t.Errorf("Trend(nil) = %v, want nil", trend)
	}
}

func TestACWRStatusBands(t *testing.T) {
	engine := NewLoadEngine(DefaultLoadConfig())

	tests := []struct {
		acwr     float64
		expected ACWRStatus
	}{
		{0.5, ACWRUndertraining},
		{0.79, ACWRUndertraining},
		{0.8, ACWROptimal},
		{1.0, ACWROptimal},
		{1.3, ACWROptimal},
		{1.31, ACWRCaution},
		{1.5, ACWRCaution},
		{1.51, ACWRHighRisk},
		{2.5, ACWRHighRisk},
	}

	for _, tt := range tests {
		if got := engine.acwrStatus(tt.acwr); got != tt.expected {
			t.Errorf("acwrStatus(%v) = %q, want %q", tt.acwr, got, tt.expected)
		}
	}
}
