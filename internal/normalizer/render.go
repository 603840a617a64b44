package normalizer

import (
	"strings"

	"github.com/quantatomai/normalize/internal/domain"
)

// unitComponents are the pieces a rendered unit string is built from.
type unitComponents struct {
	currency string
	scale    domain.Scale
	time     domain.TimeScale
}

func sourceComponents(st *state) unitComponents {
	return unitComponents{currency: st.currency, scale: st.scale, time: st.timeScale}
}

func resultComponents(st *state) unitComponents {
	c := unitComponents{currency: st.currency, scale: st.scale, time: st.timeScale}
	if st.fx != nil {
		c.currency = st.targetCur
	}
	if st.magnitude != nil {
		c.scale = st.magnitude.TargetScale
	}
	if st.periodicity != nil && st.periodicity.Adjusted {
		c.time = st.periodicity.Target
	}
	return c
}

// magnitudePrefix is the human label for a non-ones magnitude.
var magnitudePrefix = map[domain.Scale]string{
	domain.ScaleHundreds:        "Hundred",
	domain.ScaleThousands:       "Thousand",
	domain.ScaleMillions:        "Million",
	domain.ScaleHundredMillions: "Hundred Million",
	domain.ScaleBillions:        "Billion",
	domain.ScaleTrillions:       "Trillion",
}

// renderUnit builds the canonical unit string. The short form is the base
// measure plus its time basis; the full form also spells the magnitude.
// Time renders as "per <time>", never with a slash, and is omitted for
// skipTimeInUnit indicator types. Stock-like counts render as the bare
// noun. Per-capita measures never acquire a magnitude label.
func renderUnit(st *state, c unitComponents, full bool) string {
	switch st.parsed.Category {
	case domain.CategoryPercentage, domain.CategoryIndex, domain.CategoryRate,
		domain.CategoryRatio, domain.CategoryTime, domain.CategoryUnknown:
		return st.parsed.NormalizedLabel
	}

	if st.stockLike {
		return "units"
	}

	base := st.parsed.NormalizedLabel
	if c.currency != "" {
		base = c.currency
	} else if base == "" || st.parsed.Category == domain.CategoryCount {
		base = "units"
	}

	var parts []string
	withMagnitude := full && !st.perCapita && c.scale != "" && c.scale != domain.ScaleOnes
	if c.currency != "" {
		parts = append(parts, base)
		if withMagnitude {
			parts = append(parts, magnitudePrefix[c.scale])
		}
	} else {
		if withMagnitude {
			parts = append(parts, magnitudePrefix[c.scale])
		}
		parts = append(parts, base)
	}

	if c.time != "" && !st.typeRules.SkipTimeInUnit {
		parts = append(parts, "per", string(c.time))
	}
	return strings.Join(parts, " ")
}
