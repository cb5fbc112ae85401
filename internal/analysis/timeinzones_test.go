package analysis

import (
	"errors"
	"math"
	"testing"
)

func mustBoundaries(t *testing.T, params AthleteParams, method ZoneMethod) ZoneBoundaries {
	t.Helper()
	b, err := ZoneBoundariesFor(params, method)
	if err != nil {
		t.Fatalf("ZoneBoundariesFor() error = %v", err)
	}
	return b
}

func TestTimeInZones(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	tests := []struct {
		name     string
		samples  []int
		interval float64
		checkFn  func(t *testing.T, dist ZoneTimeDistribution)
	}{
		{
			name:     "empty samples yields all zeros",
			samples:  nil,
			interval: 1,
			checkFn: func(t *testing.T, dist ZoneTimeDistribution) {
				if dist.TotalMinutes() != 0 {
					t.Errorf("TotalMinutes() = %v, want 0", dist.TotalMinutes())
				}
			},
		},
		{
			name:     "single zone",
			samples:  []int{115, 115, 115, 115},
			interval: 60,
			checkFn: func(t *testing.T, dist ZoneTimeDistribution) {
				if dist[2] != 4 {
					t.Errorf("dist[2] = %v, want 4 minutes", dist[2])
				}
			},
		},
		{
			name:     "below zone 1 lands in zone 0",
			samples:  []int{60, 60},
			interval: 30,
			checkFn: func(t *testing.T, dist ZoneTimeDistribution) {
				if dist[0] != 1 {
					t.Errorf("dist[0] = %v, want 1 minute", dist[0])
				}
			},
		},
		{
			name:     "mixed zones",
			samples:  []int{95, 115, 135, 155, 175},
			interval: 60,
			checkFn: func(t *testing.T, dist ZoneTimeDistribution) {
				for zone := 1; zone <= 5; zone++ {
					if dist[zone] != 1 {
						t.Errorf("dist[%d] = %v, want 1 minute", zone, dist[zone])
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFn(t, TimeInZones(tt.samples, b, tt.interval))
		})
	}
}

func TestTimeInZonesTotalMatchesElapsed(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 185}, ZonePercentage)

	intervals := []float64{1, 5, 15, 60, 90}
	samples := make([]int, 500)
	for i := range samples {
		samples[i] = 60 + (i*7)%140 // spread across all zones
	}

	for _, interval := range intervals {
		dist := TimeInZones(samples, b, interval)
		want := float64(len(samples)) * interval / 60
		if math.Abs(dist.TotalMinutes()-want) > 1e-6 {
			t.Errorf("interval %v: TotalMinutes() = %v, want %v", interval, dist.TotalMinutes(), want)
		}
	}
}

func TestTimeInZonesWeighted(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	samples := []int{115, 115, 155, 155}
	timestamps := []float64{0, 60, 120, 180}

	dist, err := TimeInZonesWeighted(samples, timestamps, b)
	if err != nil {
		t.Fatalf("TimeInZonesWeighted() error = %v", err)
	}

	// First sample contributes nothing; samples 2-4 each carry 60s
	// credited backward. 115 -> zone 2, 155 -> zone 4.
	if math.Abs(dist[2]-1) > 1e-9 {
		t.Errorf("dist[2] = %v, want 1", dist[2])
	}
	if math.Abs(dist[4]-2) > 1e-9 {
		t.Errorf("dist[4] = %v, want 2", dist[4])
	}

	// Total equals the series' elapsed time.
	want := (timestamps[len(timestamps)-1] - timestamps[0]) / 60
	if math.Abs(dist.TotalMinutes()-want) > 1e-6 {
		t.Errorf("TotalMinutes() = %v, want %v", dist.TotalMinutes(), want)
	}
}

func TestTimeInZonesWeightedIrregularSampling(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	// Sensor dropouts leave uneven gaps; each gap is credited to the
	// sample that ends it.
	samples := []int{115, 115, 115, 155}
	timestamps := []float64{10, 40, 160, 190}

	dist, err := TimeInZonesWeighted(samples, timestamps, b)
	if err != nil {
		t.Fatalf("TimeInZonesWeighted() error = %v", err)
	}

	if math.Abs(dist[2]-2.5) > 1e-9 { // 30s + 120s
		t.Errorf("dist[2] = %v, want 2.5", dist[2])
	}
	if math.Abs(dist[4]-0.5) > 1e-9 { // trailing 30s
		t.Errorf("dist[4] = %v, want 0.5", dist[4])
	}
}

func TestTimeInZonesWeightedDimensionMismatch(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	_, err := TimeInZonesWeighted([]int{120, 130, 140}, []float64{0, 30}, b)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("TimeInZonesWeighted() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestTimeInZonesWeightedEmpty(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	dist, err := TimeInZonesWeighted(nil, nil, b)
	if err != nil {
		t.Fatalf("TimeInZonesWeighted() error = %v", err)
	}
	if dist.TotalMinutes() != 0 {
		t.Errorf("TotalMinutes() = %v, want 0", dist.TotalMinutes())
	}
}

func TestPercentagesSumTo100(t *testing.T) {
	b := mustBoundaries(t, AthleteParams{MaxHR: 180}, ZonePercentage)

	dist := TimeInZones([]int{95, 115, 135, 155, 175, 175}, b, 60)
	pct := dist.Percentages()

	var sum float64
	for _, p := range pct {
		sum += p
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("percentages sum = %v, want 100", sum)
	}
}
