// Package rules holds the per-indicator-type normalization semantics:
// which dimensions (magnitude, time, currency) may be converted for each
// of the 26 indicator types, how temporal aggregation constrains time
// conversion, and which type/aggregation pairs are incompatible.
package rules

import "github.com/quantatomai/normalize/internal/domain"

// Rules are the four normalization switches for one indicator type.
type Rules struct {
	AllowTimeDimension bool
	AllowMagnitude     bool
	AllowCurrency      bool
	// SkipTimeInUnit omits the "per <time>" suffix from rendered unit
	// strings even when a time basis is known (stocks are levels, not
	// flows).
	SkipTimeInUnit bool
}

// dimensionless indicators admit no conversion at all.
var dimensionless = Rules{SkipTimeInUnit: true}

// matrix is the process-wide rule table, immutable after init.
var matrix = map[domain.IndicatorType]Rules{
	domain.IndicatorFlow:     {AllowTimeDimension: true, AllowMagnitude: true, AllowCurrency: true},
	domain.IndicatorStock:    {AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true},
	domain.IndicatorBalance:  {AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true},
	domain.IndicatorCount:    {AllowTimeDimension: true, AllowMagnitude: true},
	domain.IndicatorVolume:   {AllowTimeDimension: true, AllowMagnitude: true},
	domain.IndicatorPrice:    {AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true},
	domain.IndicatorCapacity: {AllowMagnitude: true, SkipTimeInUnit: true},

	domain.IndicatorPercentage:  dimensionless,
	domain.IndicatorRatio:       dimensionless,
	domain.IndicatorIndex:       dimensionless,
	domain.IndicatorRate:        dimensionless,
	domain.IndicatorYield:       dimensionless,
	domain.IndicatorSpread:      dimensionless,
	domain.IndicatorShare:       dimensionless,
	domain.IndicatorVolatility:  dimensionless,
	domain.IndicatorCorrelation: dimensionless,
	domain.IndicatorElasticity:  dimensionless,
	domain.IndicatorMultiplier:  dimensionless,
	domain.IndicatorSentiment:   dimensionless,
	domain.IndicatorAllocation:  dimensionless,
	domain.IndicatorProbability: dimensionless,
	domain.IndicatorDuration:    dimensionless,
	domain.IndicatorIntensity:   dimensionless,
	domain.IndicatorScore:       dimensionless,
	domain.IndicatorGap:         dimensionless,

	domain.IndicatorOther: {AllowTimeDimension: true, AllowMagnitude: true, AllowCurrency: true},
}

// ForType returns the rules for an indicator type. Unknown or empty types
// fall back to the permissive "other" row.
func ForType(t domain.IndicatorType) Rules {
	if r, ok := matrix[t]; ok {
		return r
	}
	return matrix[domain.IndicatorOther]
}
