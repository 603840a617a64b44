// Package targets computes per-indicator-group normalization targets by
// majority vote over the parsed units of a population of observations.
package targets

import (
	"sort"
	"strings"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/units"
)

// Voting dimensions.
const (
	DimCurrency  = "currency"
	DimMagnitude = "magnitude"
	DimTime      = "time"
)

// Selection is the winning target per dimension for one indicator group,
// with the vote shares that produced it.
type Selection struct {
	Currency  string                        `json:"currency,omitempty"`
	Magnitude domain.Scale                  `json:"magnitude,omitempty"`
	Time      domain.TimeScale              `json:"time,omitempty"`
	Shares    map[string]map[string]float64 `json:"shares"`
	Reason    string                        `json:"reason"`
}

// Options configures tie-breaking.
type Options struct {
	// Incumbent targets win ties when supplied.
	Incumbent *domain.NormalizationTargets
}

// tie-break priority when no incumbent applies; anything unlisted ranks
// behind listed values, ties beyond that resolve lexicographically.
var (
	currencyPriority  = []string{"USD", "EUR"}
	magnitudePriority = []string{string(domain.ScaleMillions), string(domain.ScaleBillions), string(domain.ScaleThousands)}
	timePriority      = []string{string(domain.TimeMonth), string(domain.TimeQuarter), string(domain.TimeYear)}
)

// GroupKey normalizes an indicator name into its grouping key: lowercase,
// trimmed, internal whitespace collapsed. "Balance of Trade" and
// "BALANCE  OF  TRADE " map to the same key.
func GroupKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// Compute returns the majority-vote targets per indicator group. Groups
// derive from the observation name via GroupKey. Dimensions with no votes
// at all stay empty.
func Compute(observations []domain.Observation, opts Options) map[string]Selection {
	groups := make(map[string][]domain.ParsedUnit)
	for _, obs := range observations {
		key := GroupKey(obs.Name)
		parsed := units.Parse(obs.Unit)
		if obs.ExplicitCurrency != "" {
			parsed.Currency = strings.ToUpper(obs.ExplicitCurrency)
		}
		if obs.ExplicitScale != "" {
			parsed.Scale = obs.ExplicitScale
		}
		if obs.ExplicitTimeScale != "" {
			parsed.TimeScale = obs.ExplicitTimeScale
		}
		groups[key] = append(groups[key], parsed)
	}

	result := make(map[string]Selection, len(groups))
	for key, parsedUnits := range groups {
		result[key] = selectForGroup(parsedUnits, opts)
	}
	return result
}

func selectForGroup(parsedUnits []domain.ParsedUnit, opts Options) Selection {
	currencyVotes := make(map[string]int)
	magnitudeVotes := make(map[string]int)
	timeVotes := make(map[string]int)
	for _, p := range parsedUnits {
		if p.Currency != "" {
			currencyVotes[p.Currency]++
		}
		if p.Scale != "" {
			magnitudeVotes[string(p.Scale)]++
		}
		if p.TimeScale != "" {
			timeVotes[string(p.TimeScale)]++
		}
	}

	var incCurrency, incMagnitude, incTime string
	if opts.Incumbent != nil {
		incCurrency = opts.Incumbent.ToCurrency
		incMagnitude = string(opts.Incumbent.ToMagnitude)
		incTime = string(opts.Incumbent.ToTimeScale)
	}

	sel := Selection{
		Currency:  argmax(currencyVotes, incCurrency, currencyPriority),
		Magnitude: domain.Scale(argmax(magnitudeVotes, incMagnitude, magnitudePriority)),
		Time:      domain.TimeScale(argmax(timeVotes, incTime, timePriority)),
		Shares: map[string]map[string]float64{
			DimCurrency:  shares(currencyVotes),
			DimMagnitude: shares(magnitudeVotes),
			DimTime:      shares(timeVotes),
		},
		Reason: "majority vote across group observations",
	}
	return sel
}

// argmax picks the most frequent value. Ties prefer the incumbent, then
// the fixed priority order, then lexicographic order for determinism.
func argmax(votes map[string]int, incumbent string, priority []string) string {
	if len(votes) == 0 {
		return ""
	}

	best := 0
	for _, n := range votes {
		if n > best {
			best = n
		}
	}

	var tied []string
	for v, n := range votes {
		if n == best {
			tied = append(tied, v)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}

	if incumbent != "" {
		for _, v := range tied {
			if v == incumbent {
				return v
			}
		}
	}
	for _, p := range priority {
		for _, v := range tied {
			if v == p {
				return v
			}
		}
	}
	sort.Strings(tied)
	return tied[0]
}

func shares(votes map[string]int) map[string]float64 {
	total := 0
	for _, n := range votes {
		total += n
	}
	out := make(map[string]float64, len(votes))
	if total == 0 {
		return out
	}
	for v, n := range votes {
		out[v] = float64(n) / float64(total)
	}
	return out
}
