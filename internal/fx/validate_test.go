package fx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/domain"
)

func TestValidateRatesClean(t *testing.T) {
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{
		"XOF": 558.16,
		"EUR": 0.92,
		"JPY": 147.3,
	}}
	assert.Empty(t, ValidateRates(table, ValidateOptions{}))
}

func TestValidateRatesInvalid(t *testing.T) {
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{
		"AAA": 0,
		"BBB": -2,
		"CCC": math.NaN(),
	}}
	issues := ValidateRates(table, ValidateOptions{})
	assert.Len(t, issues, 3)
	for _, is := range issues {
		assert.False(t, is.Corrected)
	}
}

func TestValidateRatesImplausible(t *testing.T) {
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{"XOF": 0.56}}

	issues := ValidateRates(table, ValidateOptions{})
	require.Len(t, issues, 1)
	assert.Equal(t, "XOF", issues[0].Code)
	assert.False(t, issues[0].Corrected)
	// Without AutoCorrect the table is untouched.
	assert.Equal(t, 0.56, table.Rates["XOF"])
}

func TestValidateRatesAutoCorrect(t *testing.T) {
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{"XOF": 0.56}}

	issues := ValidateRates(table, ValidateOptions{AutoCorrect: true})
	require.Len(t, issues, 1)
	assert.True(t, issues[0].Corrected)
	assert.InDelta(t, 560, issues[0].NewRate, 1e-9)
	assert.InDelta(t, 560, table.Rates["XOF"], 1e-9)
}

func TestValidateRatesAutoCorrectOnlyWhenItLands(t *testing.T) {
	// 2000 for EUR is implausible and ×1000 stays implausible; report only.
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{"EUR": 2000}}

	issues := ValidateRates(table, ValidateOptions{AutoCorrect: true})
	require.Len(t, issues, 1)
	assert.False(t, issues[0].Corrected)
	assert.Equal(t, 2000.0, table.Rates["EUR"])
}

func TestValidateRatesUncheckableCodesPass(t *testing.T) {
	table := &domain.FXTable{Base: "USD", Rates: map[string]float64{"ZZZ": 1e9}}
	assert.Empty(t, ValidateRates(table, ValidateOptions{}))
}

func TestValidateRatesNilTable(t *testing.T) {
	assert.Empty(t, ValidateRates(nil, ValidateOptions{}))
}
