package normalizer

import (
	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/units"
)

// detectDomain picks the semantic tag for the explain record.
// Precedence: wages by indicator name, then domain-dictionary matches on
// the unit text, then the parsed category.
func detectDomain(st *state) domain.Domain {
	if d, ok := units.DomainFromName(st.opts.IndicatorName); ok {
		return d
	}
	if d, ok := units.DomainFromUnit(st.parsed.NormalizedLabel); ok {
		return d
	}
	if d, ok := units.DomainFromUnit(st.opts.IndicatorName); ok {
		return d
	}

	switch st.parsed.Category {
	case domain.CategoryPercentage:
		return domain.DomainPercentage
	case domain.CategoryCount, domain.CategoryPopulation:
		return domain.DomainCount
	case domain.CategoryEnergy:
		return domain.DomainEnergy
	}
	if st.indicatorType == domain.IndicatorCount || st.indicatorType == domain.IndicatorVolume {
		return domain.DomainCount
	}
	return ""
}
