package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams indicates physiologically impossible athlete parameters.
var ErrInvalidParams = errors.New("invalid athlete parameters")

// ErrDimensionMismatch indicates paired sample/timestamp slices of unequal length.
var ErrDimensionMismatch = errors.New("sample and timestamp counts differ")

// ZoneMethod selects how zone boundaries are derived from athlete parameters.
type ZoneMethod string

const (
	// ZonePercentage derives zones as fixed percentages of max HR.
	ZonePercentage ZoneMethod = "percentage"
	// ZoneKarvonen derives zones from heart rate reserve (max - resting).
	ZoneKarvonen ZoneMethod = "karvonen"
)

// AthleteParams holds the athlete's heart rate parameters.
// RestingHR of 0 means unknown; it is required for the Karvonen method.
type AthleteParams struct {
	MaxHR     int
	RestingHR int
}

// Validate checks the parameters for physiological sanity.
func (p AthleteParams) Validate() error {
	if p.MaxHR <= 0 {
		return fmt.Errorf("%w: max HR must be positive, got %d", ErrInvalidParams, p.MaxHR)
	}
	if p.RestingHR < 0 {
		return fmt.Errorf("%w: resting HR must not be negative, got %d", ErrInvalidParams, p.RestingHR)
	}
	if p.RestingHR > 0 && p.RestingHR >= p.MaxHR {
		return fmt.Errorf("%w: resting HR %d must be below max HR %d", ErrInvalidParams, p.RestingHR, p.MaxHR)
	}
	return nil
}

// ZoneRange is an inclusive bpm range for a single zone.
type ZoneRange struct {
	Min int
	Max int
}

// Contains reports whether hr falls inside the inclusive range.
func (r ZoneRange) Contains(hr int) bool {
	return hr >= r.Min && hr <= r.Max
}

// ZoneBoundaries holds the five training zone ranges, ordered zone 1 to 5.
type ZoneBoundaries [5]ZoneRange

// Zone returns the range for zone n (1-5).
func (b ZoneBoundaries) Zone(n int) ZoneRange {
	return b[n-1]
}

// zonePercents is the fixed percentage table for the five zones.
// Each zone's bounds are inclusive at both ends. Because each bound is
// rounded independently, adjacent zones can overlap by 1 bpm; the lower
// zone wins on classification. This mirrors how the boundaries have
// always been published to athletes, so it stays as-is.
var zonePercents = [5]struct{ Lo, Hi float64 }{
	{0.50, 0.60},
	{0.60, 0.70},
	{0.70, 0.80},
	{0.80, 0.90},
	{0.90, 1.00},
}

// ZoneBoundariesFor computes the five zone ranges for an athlete.
// Rounding is round-half-to-even.
func ZoneBoundariesFor(params AthleteParams, method ZoneMethod) (ZoneBoundaries, error) {
	var b ZoneBoundaries

	if err := params.Validate(); err != nil {
		return b, err
	}

	switch method {
	case ZonePercentage:
		for i, p := range zonePercents {
			b[i] = ZoneRange{
				Min: int(math.RoundToEven(float64(params.MaxHR) * p.Lo)),
				Max: int(math.RoundToEven(float64(params.MaxHR) * p.Hi)),
			}
		}
	case ZoneKarvonen:
		if params.RestingHR == 0 {
			return b, fmt.Errorf("%w: resting HR is required for the karvonen method", ErrInvalidParams)
		}
		reserve := float64(params.MaxHR - params.RestingHR)
		for i, p := range zonePercents {
			b[i] = ZoneRange{
				Min: params.RestingHR + int(math.RoundToEven(reserve*p.Lo)),
				Max: params.RestingHR + int(math.RoundToEven(reserve*p.Hi)),
			}
		}
	default:
		return b, fmt.Errorf("%w: unknown zone method %q", ErrInvalidParams, method)
	}

	return b, nil
}

// Classify maps a heart rate to a zone number 0-5.
// Zone 0 means below zone 1. Rates above zone 5's upper bound map to 5.
// Where rounding made adjacent ranges overlap, the lower zone wins.
func Classify(hr int, b ZoneBoundaries) int {
	if hr < b[0].Min {
		return 0
	}
	for i, r := range b {
		if r.Contains(hr) {
			return i + 1
		}
	}
	return 5
}
