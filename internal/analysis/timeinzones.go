package analysis

import "fmt"

// ZoneTimeDistribution holds minutes spent in each zone, indexed by zone
// number 0-5 (0 = below zone 1).
type ZoneTimeDistribution [6]float64

// TotalMinutes returns the summed time across all zones.
func (d ZoneTimeDistribution) TotalMinutes() float64 {
	var total float64
	for _, m := range d {
		total += m
	}
	return total
}

// Percentages returns each zone's share of the total time, 0-100.
// All zeros when the distribution is empty.
func (d ZoneTimeDistribution) Percentages() [6]float64 {
	var pct [6]float64
	total := d.TotalMinutes()
	if total == 0 {
		return pct
	}
	for i, m := range d {
		pct[i] = m / total * 100
	}
	return pct
}

// TimeInZones distributes uniformly sampled heart rates into zones.
// Each sample contributes intervalSeconds/60 minutes to its zone.
// Empty input yields an all-zero distribution.
func TimeInZones(samples []int, b ZoneBoundaries, intervalSeconds float64) ZoneTimeDistribution {
	var dist ZoneTimeDistribution
	minutes := intervalSeconds / 60
	for _, hr := range samples {
		dist[Classify(hr, b)] += minutes
	}
	return dist
}

// TimeInZonesWeighted distributes heart rates into zones using explicit
// timestamps. Sample i is credited with the time elapsed since sample i-1
// (backward-looking), so the first sample always contributes zero time.
// Timestamps are elapsed seconds and must be non-decreasing; that is the
// caller's contract and is not validated here.
func TimeInZonesWeighted(samples []int, elapsedSeconds []float64, b ZoneBoundaries) (ZoneTimeDistribution, error) {
	var dist ZoneTimeDistribution

	if len(samples) != len(elapsedSeconds) {
		return dist, fmt.Errorf("%w: %d samples vs %d timestamps",
			ErrDimensionMismatch, len(samples), len(elapsedSeconds))
	}

	for i, hr := range samples {
		var interval float64
		if i > 0 {
			interval = elapsedSeconds[i] - elapsedSeconds[i-1]
		}
		dist[Classify(hr, b)] += interval / 60
	}

	return dist, nil
}
