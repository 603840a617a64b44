package units

import "github.com/quantatomai/normalize/internal/domain"

// ScaleFactor gives the multiplier each magnitude token represents.
var ScaleFactor = map[domain.Scale]float64{
	domain.ScaleOnes:            1,
	domain.ScaleHundreds:        1e2,
	domain.ScaleThousands:       1e3,
	domain.ScaleMillions:        1e6,
	domain.ScaleHundredMillions: 1e8,
	domain.ScaleBillions:        1e9,
	domain.ScaleTrillions:       1e12,
}

// PerYear gives how many of each period fit in a year.
var PerYear = map[domain.TimeScale]float64{
	domain.TimeYear:    1,
	domain.TimeQuarter: 4,
	domain.TimeMonth:   12,
	domain.TimeWeek:    52,
	domain.TimeDay:     365,
	domain.TimeHour:    8760,
}

// MagnitudeFactor returns the multiplier that converts a value reported
// in from-scale to to-scale. Unknown scales are treated as ones.
func MagnitudeFactor(from, to domain.Scale) float64 {
	f, ok := ScaleFactor[from]
	if !ok {
		f = 1
	}
	t, ok := ScaleFactor[to]
	if !ok {
		t = 1
	}
	return f / t
}

// RescaleMagnitude converts v from one magnitude to another.
func RescaleMagnitude(v float64, from, to domain.Scale) float64 {
	return v * MagnitudeFactor(from, to)
}

// TimeFactor returns the multiplier that converts a per-from value to a
// per-to value. A quarterly flow restated per month is divided by 3:
// PerYear[quarter]/PerYear[month] = 4/12.
func TimeFactor(from, to domain.TimeScale) float64 {
	f, ok := PerYear[from]
	if !ok {
		return 1
	}
	t, ok := PerYear[to]
	if !ok {
		return 1
	}
	return f / t
}

// RescaleTime converts v from one time basis to another.
func RescaleTime(v float64, from, to domain.TimeScale) float64 {
	return v * TimeFactor(from, to)
}
