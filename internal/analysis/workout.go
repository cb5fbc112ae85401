package analysis

// WorkoutAnalysis summarizes one workout's heart rate data by training zone.
type WorkoutAnalysis struct {
	SampleCount  int
	TotalMinutes float64
	Distribution ZoneTimeDistribution
	Percentages  [6]float64

	AvgHR int
	MaxHR int
	MinHR int

	// DominantZone is the zone (1-5) with the most time; 0 when the
	// workout has no heart rate data. Zone 0 time never dominates.
	DominantZone   int
	Recommendation string
}

// zoneRecommendations maps the dominant zone to coaching text.
var zoneRecommendations = map[int]string{
	0: "Not enough heart rate data to assess this workout.",
	1: "Recovery effort. Good for active rest days; keep most easy days this light.",
	2: "Base-building effort. This aerobic work is where endurance is made - keep it up.",
	3: "Tempo effort. Useful in moderation; avoid living in this zone every day.",
	4: "Threshold effort. A strong stimulus - follow it with an easy day or two.",
	5: "High-intensity effort. Big fitness payoff, big recovery cost. Plan extra recovery.",
}

// AnalyzeWorkout classifies a uniformly sampled workout into zones and
// produces the full summary. An empty sample slice is a valid workout
// with no HR data, not an error.
func AnalyzeWorkout(samples []int, params AthleteParams, method ZoneMethod, intervalSeconds float64) (WorkoutAnalysis, error) {
	boundaries, err := ZoneBoundariesFor(params, method)
	if err != nil {
		return WorkoutAnalysis{}, err
	}

	analysis := WorkoutAnalysis{
		SampleCount:    len(samples),
		Recommendation: zoneRecommendations[0],
	}
	if len(samples) == 0 {
		return analysis, nil
	}

	analysis.Distribution = TimeInZones(samples, boundaries, intervalSeconds)
	analysis.TotalMinutes = analysis.Distribution.TotalMinutes()
	analysis.Percentages = analysis.Distribution.Percentages()

	sum := 0
	analysis.MinHR = samples[0]
	analysis.MaxHR = samples[0]
	for _, hr := range samples {
		sum += hr
		if hr < analysis.MinHR {
			analysis.MinHR = hr
		}
		if hr > analysis.MaxHR {
			analysis.MaxHR = hr
		}
	}
	analysis.AvgHR = sum / len(samples)

	analysis.DominantZone = dominantZone(analysis.Distribution)
	analysis.Recommendation = zoneRecommendations[analysis.DominantZone]

	return analysis, nil
}

// AnalyzeWorkoutWeighted is AnalyzeWorkout for irregularly sampled data.
// Each sample is weighted by the time elapsed since the previous one.
func AnalyzeWorkoutWeighted(samples []int, elapsedSeconds []float64, params AthleteParams, method ZoneMethod) (WorkoutAnalysis, error) {
	boundaries, err := ZoneBoundariesFor(params, method)
	if err != nil {
		return WorkoutAnalysis{}, err
	}

	analysis := WorkoutAnalysis{
		SampleCount:    len(samples),
		Recommendation: zoneRecommendations[0],
	}
	if len(samples) == 0 {
		return analysis, nil
	}

	dist, err := TimeInZonesWeighted(samples, elapsedSeconds, boundaries)
	if err != nil {
		return WorkoutAnalysis{}, err
	}
	analysis.Distribution = dist
	analysis.TotalMinutes = dist.TotalMinutes()
	analysis.Percentages = dist.Percentages()

	sum := 0
	analysis.MinHR = samples[0]
	analysis.MaxHR = samples[0]
	for _, hr := range samples {
		sum += hr
		if hr < analysis.MinHR {
			analysis.MinHR = hr
		}
		if hr > analysis.MaxHR {
			analysis.MaxHR = hr
		}
	}
	analysis.AvgHR = sum / len(samples)

	analysis.DominantZone = dominantZone(analysis.Distribution)
	analysis.Recommendation = zoneRecommendations[analysis.DominantZone]

	return analysis, nil
}

// dominantZone picks the zone 1-5 with the greatest time. Ascending scan
// with strict greater-than, so ties go to the lower zone. Returns 0 when
// no time landed in zones 1-5.
func dominantZone(dist ZoneTimeDistribution) int {
	zone := 0
	best := 0.0
	for z := 1; z <= 5; z++ {
		if dist[z] > best {
			best = dist[z]
			zone = z
		}
	}
	return zone
}
