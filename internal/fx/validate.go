package fx

import (
	"fmt"
	"math"

	"github.com/quantatomai/normalize/internal/domain"
)

// plausibleRange bounds a currency's units-per-USD rate. The table is
// deliberately partial: codes not listed here are not checkable and are
// only rejected when the rate itself is invalid (<=0 or non-finite).
type plausibleRange struct {
	min, max float64
}

var plausibleRanges = map[string]plausibleRange{
	"XOF": {300, 900},
	"XAF": {300, 900},
	"JPY": {80, 250},
	"KRW": {800, 2000},
	"IDR": {9000, 25000},
	"VND": {15000, 35000},
	"IRR": {10000, 900000},
	"UGX": {2000, 6000},
	"TZS": {1500, 4000},
	"MGA": {2000, 6000},
	"GNF": {5000, 15000},
	"LBP": {1000, 150000},
	"COP": {2000, 6000},
	"CLP": {500, 1500},
	"PYG": {4000, 10000},
	"HUF": {200, 500},
	"ISK": {80, 250},
	"ARS": {50, 5000},
	"EUR": {0.5, 2},
	"GBP": {0.5, 2},
	"CHF": {0.5, 2},
}

// Issue is one problem found by ValidateRates.
type Issue struct {
	Code      string  `json:"code"`
	Rate      float64 `json:"rate"`
	Message   string  `json:"message"`
	Corrected bool    `json:"corrected,omitempty"`
	NewRate   float64 `json:"new_rate,omitempty"`
}

// ValidateOptions controls rate validation.
type ValidateOptions struct {
	// AutoCorrect multiplies a rate by 1000 when doing so brings it into
	// the plausible range. This repairs the common per-mille mislabeling
	// (XOF recorded as 0.56 instead of ~558).
	AutoCorrect bool
}

// ValidateRates checks a table for invalid and implausible rates. With
// AutoCorrect it fixes off-by-1000 entries in place; otherwise it only
// reports them.
func ValidateRates(table *domain.FXTable, opts ValidateOptions) []Issue {
	var issues []Issue
	if table == nil {
		return issues
	}

	for code, r := range table.Rates {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			issues = append(issues, Issue{
				Code:    code,
				Rate:    r,
				Message: fmt.Sprintf("invalid rate %v for %s", r, code),
			})
			continue
		}

		pr, ok := plausibleRanges[code]
		if !ok {
			continue // not checkable
		}
		if r >= pr.min && r <= pr.max {
			continue
		}

		issue := Issue{
			Code:    code,
			Rate:    r,
			Message: fmt.Sprintf("rate %v for %s outside plausible range [%v, %v]", r, code, pr.min, pr.max),
		}
		if opts.AutoCorrect {
			corrected := r * 1000
			if corrected >= pr.min && corrected <= pr.max {
				table.Rates[code] = corrected
				issue.Corrected = true
				issue.NewRate = corrected
				issue.Message = fmt.Sprintf("rate %v for %s corrected to %v", r, code, corrected)
			}
		}
		issues = append(issues, issue)
	}
	return issues
}
