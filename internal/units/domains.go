package units

import "github.com/quantatomai/normalize/internal/domain"

// DomainFromName tags an indicator by its name. Wage-style names win over
// anything the unit string suggests.
func DomainFromName(name string) (domain.Domain, bool) {
	norm := NormalizeText(name)
	if norm == "" {
		return "", false
	}
	if wagesPattern.MatchString(norm) {
		return domain.DomainWages, true
	}
	if monetaryPattern.MatchString(norm) {
		return domain.DomainMonetaryAggregate, true
	}
	return "", false
}

// DomainFromUnit tags a unit string by the domain dictionaries. Metals
// override the generic commodity vocabulary when both match.
func DomainFromUnit(unitText string) (domain.Domain, bool) {
	norm := NormalizeText(unitText)
	if norm == "" {
		return "", false
	}
	switch {
	case metalsPattern.MatchString(norm):
		return domain.DomainMetals, true
	case emissionsPattern.MatchString(norm):
		return domain.DomainEmissions, true
	case agriculturePattern.MatchString(norm):
		return domain.DomainAgriculture, true
	case commodityPattern.MatchString(norm):
		return domain.DomainCommodity, true
	}
	for _, token := range tokenize(norm) {
		if _, ok := energyUnits[token]; ok {
			return domain.DomainEnergy, true
		}
	}
	return "", false
}
