package aggregate

import "fmt"

// CPITable maps year to CPI index level. Callers inject it; the engine
// never assumes a particular index series.
type CPITable map[int]float64

// AdjustForInflation restates value from fromYear money into toYear money
// using the index ratio. This is a plain CPI rebase; no interpolation or
// PPP adjustment happens here.
func AdjustForInflation(value float64, cpi CPITable, fromYear, toYear int) (float64, error) {
	from, ok := cpi[fromYear]
	if !ok {
		return 0, fmt.Errorf("no CPI index for year %d", fromYear)
	}
	to, ok := cpi[toYear]
	if !ok {
		return 0, fmt.Errorf("no CPI index for year %d", toYear)
	}
	if from <= 0 || to <= 0 {
		return 0, fmt.Errorf("CPI index must be positive (got %g, %g)", from, to)
	}
	return value * to / from, nil
}
