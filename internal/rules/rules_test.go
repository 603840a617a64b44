package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantatomai/normalize/internal/domain"
)

func TestForType_DimensionalRows(t *testing.T) {
	tests := []struct {
		typ   domain.IndicatorType
		rules Rules
	}{
		{domain.IndicatorFlow, Rules{AllowTimeDimension: true, AllowMagnitude: true, AllowCurrency: true}},
		{domain.IndicatorStock, Rules{AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true}},
		{domain.IndicatorBalance, Rules{AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true}},
		{domain.IndicatorCount, Rules{AllowTimeDimension: true, AllowMagnitude: true}},
		{domain.IndicatorVolume, Rules{AllowTimeDimension: true, AllowMagnitude: true}},
		{domain.IndicatorPrice, Rules{AllowMagnitude: true, AllowCurrency: true, SkipTimeInUnit: true}},
		{domain.IndicatorCapacity, Rules{AllowMagnitude: true, SkipTimeInUnit: true}},
		{domain.IndicatorOther, Rules{AllowTimeDimension: true, AllowMagnitude: true, AllowCurrency: true}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.rules, ForType(tc.typ), string(tc.typ))
	}
}

// Every non-dimensional type must block all three conversions.
func TestForType_DimensionlessTypesBlockEverything(t *testing.T) {
	dimensional := map[domain.IndicatorType]bool{
		domain.IndicatorFlow: true, domain.IndicatorStock: true,
		domain.IndicatorBalance: true, domain.IndicatorCount: true,
		domain.IndicatorVolume: true, domain.IndicatorPrice: true,
		domain.IndicatorCapacity: true, domain.IndicatorOther: true,
	}
	for _, typ := range domain.AllIndicatorTypes {
		if dimensional[typ] {
			continue
		}
		r := ForType(typ)
		assert.False(t, r.AllowTimeDimension, string(typ))
		assert.False(t, r.AllowMagnitude, string(typ))
		assert.False(t, r.AllowCurrency, string(typ))
		assert.True(t, r.SkipTimeInUnit, string(typ))
	}
}

func TestForType_UnknownFallsBackToOther(t *testing.T) {
	assert.Equal(t, ForType(domain.IndicatorOther), ForType("made-up"))
	assert.Equal(t, ForType(domain.IndicatorOther), ForType(""))
}

func TestTimePolicyFor(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.IndicatorType
		agg     domain.TemporalAggregation
		allowed bool
	}{
		{"flow with period total", domain.IndicatorFlow, domain.AggPeriodTotal, true},
		{"flow with period average", domain.IndicatorFlow, domain.AggPeriodAverage, true},
		{"flow with empty aggregation", domain.IndicatorFlow, "", true},
		{"flow cumulative blocked", domain.IndicatorFlow, domain.AggPeriodCumulative, false},
		{"flow point-in-time blocked", domain.IndicatorFlow, domain.AggPointInTime, false},
		{"flow not-applicable blocked", domain.IndicatorFlow, domain.AggNotApplicable, false},
		{"stock blocked regardless", domain.IndicatorStock, domain.AggPeriodAverage, false},
		{"percentage blocked regardless", domain.IndicatorPercentage, domain.AggPeriodTotal, false},
		{"count with period total", domain.IndicatorCount, domain.AggPeriodTotal, true},
	}
	for _, tc := range tests {
		pol := TimePolicyFor(tc.typ, tc.agg)
		assert.Equal(t, tc.allowed, pol.Allowed, tc.name)
		if !tc.allowed {
			assert.NotEmpty(t, pol.Reason, tc.name)
		}
	}
}

func TestTimePolicyFor_CumulativeReason(t *testing.T) {
	pol := TimePolicyFor(domain.IndicatorFlow, domain.AggPeriodCumulative)
	assert.False(t, pol.Allowed)
	assert.Equal(t, "Time conversion blocked (flow with period-cumulative)", pol.Reason)
}

func TestIncompatible(t *testing.T) {
	_, bad := Incompatible(domain.IndicatorStock, domain.AggPeriodTotal)
	assert.True(t, bad)

	_, bad = Incompatible(domain.IndicatorPrice, domain.AggPeriodRate)
	assert.True(t, bad)

	_, bad = Incompatible(domain.IndicatorPercentage, domain.AggPeriodCumulative)
	assert.True(t, bad)

	_, bad = Incompatible(domain.IndicatorFlow, domain.AggNotApplicable)
	assert.True(t, bad)

	_, bad = Incompatible(domain.IndicatorFlow, domain.AggPeriodTotal)
	assert.False(t, bad)

	_, bad = Incompatible(domain.IndicatorStock, domain.AggPointInTime)
	assert.False(t, bad)
}
