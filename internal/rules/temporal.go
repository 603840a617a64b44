package rules

import (
	"fmt"

	"github.com/quantatomai/normalize/internal/domain"
)

// TimePolicy is the temporal-aggregation override for time conversion.
type TimePolicy struct {
	Allowed bool
	Reason  string
}

// TimePolicyFor resolves whether a time conversion may run for an
// indicator type under a temporal aggregation. A cumulative (YTD) series
// must never be rescaled: multiplying a year-to-date value by 12 does not
// produce an annual figure.
func TimePolicyFor(t domain.IndicatorType, agg domain.TemporalAggregation) TimePolicy {
	if !ForType(t).AllowTimeDimension {
		return TimePolicy{Reason: fmt.Sprintf("Time conversion blocked (%s indicator)", typeOrOther(t))}
	}
	switch agg {
	case domain.AggPointInTime, domain.AggPeriodCumulative, domain.AggNotApplicable:
		return TimePolicy{Reason: fmt.Sprintf("Time conversion blocked (%s with %s)", typeOrOther(t), agg)}
	}
	if _, incompatible := Incompatible(t, agg); incompatible {
		return TimePolicy{Reason: fmt.Sprintf("Time conversion blocked (%s with %s)", typeOrOther(t), agg)}
	}
	return TimePolicy{Allowed: true}
}

// Incompatible reports whether the (type, aggregation) pair contradicts
// itself, with a human-readable reason. A stock has no period to total; a
// price has nothing to accumulate; dimensionless measures do not add up.
func Incompatible(t domain.IndicatorType, agg domain.TemporalAggregation) (string, bool) {
	switch t {
	case domain.IndicatorStock:
		if agg == domain.AggPeriodTotal {
			return "a stock level cannot be a period total", true
		}
	case domain.IndicatorPrice:
		if agg == domain.AggPeriodTotal || agg == domain.AggPeriodRate {
			return "a price cannot be accumulated over a period", true
		}
	case domain.IndicatorRatio, domain.IndicatorIndex, domain.IndicatorPercentage:
		if agg == domain.AggPeriodTotal || agg == domain.AggPeriodCumulative {
			return "dimensionless measures cannot be accumulated", true
		}
	case domain.IndicatorFlow, domain.IndicatorVolume, domain.IndicatorCount:
		if agg == domain.AggNotApplicable {
			return "a measured-over-period quantity needs a temporal aggregation", true
		}
	}
	return "", false
}

func typeOrOther(t domain.IndicatorType) domain.IndicatorType {
	if t == "" {
		return domain.IndicatorOther
	}
	return t
}
