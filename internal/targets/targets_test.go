package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/domain"
)

func obs(name, unit string) domain.Observation {
	return domain.Observation{Name: name, Unit: unit}
}

func TestGroupKey(t *testing.T) {
	assert.Equal(t, "balance of trade", GroupKey("Balance of Trade"))
	assert.Equal(t, "balance of trade", GroupKey("  BALANCE   OF  TRADE "))
	assert.Equal(t, "", GroupKey("   "))
}

func TestCompute_MajorityWins(t *testing.T) {
	sels := Compute([]domain.Observation{
		obs("Balance of Trade", "USD Millions"),
		obs("Balance of Trade", "USD Millions"),
		obs("balance of trade", "EUR Billions"),
	}, Options{})

	require.Len(t, sels, 1)
	sel := sels["balance of trade"]
	assert.Equal(t, "USD", sel.Currency)
	assert.Equal(t, domain.ScaleMillions, sel.Magnitude)
	assert.InDelta(t, 2.0/3, sel.Shares[DimCurrency]["USD"], 1e-9)
	assert.InDelta(t, 1.0/3, sel.Shares[DimCurrency]["EUR"], 1e-9)
}

func TestCompute_GroupsAreIndependent(t *testing.T) {
	sels := Compute([]domain.Observation{
		obs("GDP", "USD Billions"),
		obs("Minimum Wage", "ARS/Month"),
	}, Options{})

	require.Len(t, sels, 2)
	assert.Equal(t, "USD", sels["gdp"].Currency)
	assert.Equal(t, "ARS", sels["minimum wage"].Currency)
	assert.Equal(t, domain.TimeMonth, sels["minimum wage"].Time)
}

func TestCompute_TieBreakPrefersIncumbent(t *testing.T) {
	sels := Compute([]domain.Observation{
		obs("Exports", "GBP Millions"),
		obs("Exports", "CHF Millions"),
	}, Options{Incumbent: &domain.NormalizationTargets{ToCurrency: "CHF"}})

	assert.Equal(t, "CHF", sels["exports"].Currency)
}

func TestCompute_TieBreakPriorityThenLexicographic(t *testing.T) {
	// USD outranks EUR in the priority list.
	sels := Compute([]domain.Observation{
		obs("Exports", "EUR Millions"),
		obs("Exports", "USD Millions"),
	}, Options{})
	assert.Equal(t, "USD", sels["exports"].Currency)

	// Neither code is prioritized: lexicographic order decides.
	sels = Compute([]domain.Observation{
		obs("Exports", "GBP Millions"),
		obs("Exports", "CHF Millions"),
	}, Options{})
	assert.Equal(t, "CHF", sels["exports"].Currency)
}

func TestCompute_ExplicitComponentsOverrideParsed(t *testing.T) {
	o := obs("Reserves", "Millions")
	o.ExplicitCurrency = "jpy"

	sels := Compute([]domain.Observation{o}, Options{})
	assert.Equal(t, "JPY", sels["reserves"].Currency)
}

func TestCompute_EmptyDimensionsStayEmpty(t *testing.T) {
	sels := Compute([]domain.Observation{obs("Unemployment Rate", "%")}, Options{})

	sel := sels["unemployment rate"]
	assert.Empty(t, sel.Currency)
	assert.Empty(t, sel.Magnitude)
	assert.Empty(t, sel.Time)
}
