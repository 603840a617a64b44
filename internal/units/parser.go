package units

import (
	"strings"

	"github.com/quantatomai/normalize/internal/domain"
)

// Parse turns an arbitrary free-text unit string into a structured record.
// It is deterministic and never fails: unrecognized input comes back with
// CategoryUnknown and the normalized text as its label.
func Parse(text string) domain.ParsedUnit {
	norm := NormalizeText(text)
	if norm == "" {
		return domain.ParsedUnit{Category: domain.CategoryUnknown}
	}

	if percentagePattern.MatchString(norm) {
		return domain.ParsedUnit{Category: domain.CategoryPercentage, NormalizedLabel: "%"}
	}
	if indexPattern.MatchString(norm) {
		return domain.ParsedUnit{Category: domain.CategoryIndex, NormalizedLabel: "points"}
	}
	if ratePattern.MatchString(norm) {
		return domain.ParsedUnit{Category: domain.CategoryRate, NormalizedLabel: norm}
	}
	if isPriceQuote(norm) {
		return domain.ParsedUnit{Category: domain.CategoryRate, NormalizedLabel: norm}
	}
	if durationPattern.MatchString(norm) {
		return domain.ParsedUnit{Category: domain.CategoryTime, NormalizedLabel: norm}
	}
	if ratioPattern.MatchString(norm) {
		return domain.ParsedUnit{Category: domain.CategoryRatio, NormalizedLabel: "ratio"}
	}

	// Physical, energy and temperature measures keep their magnitude and
	// time basis in the record even though the normalizer never rescales
	// their magnitude.
	if p, ok := parseMeasured(norm); ok {
		return p
	}

	parsed := domain.ParsedUnit{}
	parsed.Currency = detectCurrency(norm)
	parsed.Scale = detectMagnitude(norm)
	parsed.TimeScale = detectTime(norm)

	switch {
	case parsed.Currency != "" && parsed.TimeScale != "":
		parsed.Category = domain.CategoryComposite
		parsed.IsComposite = true
		parsed.NormalizedLabel = parsed.Currency + " per " + string(parsed.TimeScale)
	case parsed.Currency != "":
		parsed.Category = domain.CategoryCurrency
		parsed.NormalizedLabel = parsed.Currency
	case populationPattern.MatchString(norm):
		parsed.Category = domain.CategoryPopulation
		parsed.NormalizedLabel = "population"
	case countPattern.MatchString(norm):
		parsed.Category = domain.CategoryCount
		parsed.NormalizedLabel = "units"
	case parsed.Scale != "":
		// A bare magnitude like "Thousands" counts things.
		parsed.Category = domain.CategoryCount
		parsed.NormalizedLabel = "units"
	default:
		parsed.Category = domain.CategoryUnknown
		parsed.NormalizedLabel = norm
	}

	return parsed
}

// parseMeasured handles physical, energy and temperature units by token
// lookup against the domain dictionaries.
func parseMeasured(norm string) (domain.ParsedUnit, bool) {
	for _, token := range tokenize(norm) {
		if label, ok := energyUnits[token]; ok {
			return measured(norm, domain.CategoryEnergy, label), true
		}
		if label, ok := temperatureUnits[token]; ok {
			return measured(norm, domain.CategoryTemperature, label), true
		}
		if label, ok := physicalUnits[token]; ok {
			return measured(norm, domain.CategoryPhysical, label), true
		}
	}
	return domain.ParsedUnit{}, false
}

func measured(norm string, category domain.UnitCategory, label string) domain.ParsedUnit {
	return domain.ParsedUnit{
		Category:        category,
		NormalizedLabel: label,
		Scale:           detectMagnitude(norm),
		TimeScale:       detectTime(norm),
	}
}

// detectCurrency scans ISO codes first, then symbols, then spelled-out
// currency names. The word-boundary ISO scan keeps codes embedded in
// longer words ("scr" inside "subscribers") from matching.
func detectCurrency(norm string) string {
	for _, m := range isoCodePattern.FindAllString(norm, -1) {
		code := strings.ToUpper(m)
		if KnownCurrency(code) {
			return code
		}
	}
	for _, s := range currencySymbols {
		if strings.Contains(norm, s.symbol) {
			return s.code
		}
	}
	for _, w := range currencyWords {
		if w.pattern.MatchString(norm) {
			return w.code
		}
	}
	return ""
}

func detectMagnitude(norm string) domain.Scale {
	for _, m := range magnitudePatterns {
		if m.pattern.MatchString(norm) {
			return m.scale
		}
	}
	return ""
}

func detectTime(norm string) domain.TimeScale {
	for _, t := range timePatterns {
		if t.pattern.MatchString(norm) {
			return t.scale
		}
	}
	return ""
}

// isPriceQuote matches "CODE/noun" quotes like "usd/liter". A time word
// after the slash is a composite flow, not a price.
func isPriceQuote(norm string) bool {
	m := pricePattern.FindString(norm)
	if m == "" {
		return false
	}
	parts := strings.SplitN(m, "/", 2)
	if len(parts) != 2 {
		return false
	}
	code := strings.ToUpper(strings.TrimSpace(parts[0]))
	if !KnownCurrency(code) {
		return false
	}
	denom := strings.TrimSpace(parts[1])
	return detectTime("/"+denom) == ""
}

// tokenize splits on whitespace, slashes and commas for dictionary scans.
func tokenize(norm string) []string {
	return strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '/' || r == ','
	})
}
