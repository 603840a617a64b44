package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/pkg/logger"
)

func newTestProcessor() *Processor {
	return NewProcessor(logger.New(logger.Config{Level: "error"}))
}

func testFX() *domain.FXTable {
	return &domain.FXTable{Base: "USD", Rates: map[string]float64{"XOF": 558.16, "EUR": 0.92}}
}

func TestProcess_PreservesInputOrder(t *testing.T) {
	items := []domain.Observation{
		{ID: "one", Name: "GDP", Value: 1, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "two", Name: "GDP", Value: 2, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "three", Name: "GDP", Value: 3, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
	}

	res := newTestProcessor().Process(context.Background(), items, Options{
		Targets: domain.NormalizationTargets{ToMagnitude: domain.ScaleMillions},
		Workers: 2,
	})

	require.Len(t, res.Successful, 3)
	assert.Equal(t, "one", res.Successful[0].ID)
	assert.Equal(t, "two", res.Successful[1].ID)
	assert.Equal(t, "three", res.Successful[2].ID)
	assert.Empty(t, res.Failed)
}

func TestProcess_FailuresDoNotAbortBatch(t *testing.T) {
	items := []domain.Observation{
		{ID: "good", Name: "Trade", Value: 100, Unit: "USD Millions", IndicatorType: domain.IndicatorBalance},
		// No FX table entry for GBP: this item fails, the rest proceed.
		{ID: "bad", Name: "Trade", Value: 100, Unit: "GBP Millions", IndicatorType: domain.IndicatorBalance},
		{ID: "also-good", Name: "Trade", Value: 55.84, Unit: "XOF Billions", IndicatorType: domain.IndicatorBalance},
	}

	res := newTestProcessor().Process(context.Background(), items, Options{
		Targets: domain.NormalizationTargets{ToCurrency: "USD", ToMagnitude: domain.ScaleMillions},
		FX:      testFX(),
	})

	require.Len(t, res.Successful, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "bad", res.Failed[0].ID)
	assert.Equal(t, StageNormalize, res.Failed[0].Stage)
	assert.Contains(t, res.Failed[0].Error, "GBP")

	assert.Equal(t, 3, res.Stats.Total)
	assert.Equal(t, 2, res.Stats.Succeeded)
	assert.Equal(t, 1, res.Stats.Failed)
	assert.Equal(t, map[string]int{StageNormalize: 1}, res.Stats.FailuresByStage)
	assert.NotEmpty(t, res.Stats.RunID)
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []domain.Observation{
		{ID: "a", Value: 1, Unit: "USD"},
		{ID: "b", Value: 2, Unit: "USD"},
	}
	res := newTestProcessor().Process(ctx, items, Options{})

	assert.Empty(t, res.Successful)
	require.Len(t, res.Failed, 2)
	for _, f := range res.Failed {
		assert.Equal(t, StageCancelled, f.Stage)
	}
}

func TestProcess_AutoTargets(t *testing.T) {
	items := []domain.Observation{
		{ID: "a", Name: "Balance of Trade", Value: 1, Unit: "USD Millions", IndicatorType: domain.IndicatorBalance},
		{ID: "b", Name: "Balance of Trade", Value: 2, Unit: "USD Millions", IndicatorType: domain.IndicatorBalance},
		{ID: "c", Name: "Balance of Trade", Value: 3, Unit: "EUR Billions", IndicatorType: domain.IndicatorBalance},
	}

	res := newTestProcessor().Process(context.Background(), items, Options{
		FX:          testFX(),
		AutoTargets: true,
	})

	require.Len(t, res.Successful, 3)
	require.Contains(t, res.TargetSelections, "balance of trade")
	sel := res.TargetSelections["balance of trade"]
	assert.Equal(t, "USD", sel.Currency)
	assert.Equal(t, domain.ScaleMillions, sel.Magnitude)

	// The minority EUR/billions item was converted toward the group vote.
	c := res.Successful[2]
	assert.InDelta(t, 3*1000/0.92, c.NormalizedValue, 1e-6)
	require.NotNil(t, c.Explain.TargetSelection)
	assert.Equal(t, "auto", c.Explain.TargetSelection.Source)
}

func TestProcess_OutlierAnnotationAndQualityScore(t *testing.T) {
	items := []domain.Observation{
		{ID: "a", Name: "GDP", Value: 1200, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "b", Name: "GDP", Value: 3400, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "c", Name: "GDP", Value: 5600, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "d", Name: "GDP", Value: 8900, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "e", Name: "GDP", Value: 2.1, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
	}

	res := newTestProcessor().Process(context.Background(), items, Options{
		Targets:             domain.NormalizationTargets{ToMagnitude: domain.ScaleMillions},
		DetectScaleOutliers: true,
	})

	require.Len(t, res.Successful, 5)

	flagged := res.Successful[4]
	require.Len(t, flagged.Explain.QualityWarnings, 1)
	w := flagged.Explain.QualityWarnings[0]
	assert.Equal(t, domain.WarningScaleOutlier, w.Type)
	require.NotNil(t, w.Details)
	assert.Equal(t, 3, w.Details.MagnitudeDifference)

	// One plain warning costs 0.2; clean items stay at 1.
	assert.InDelta(t, 0.8, flagged.QualityScore, 1e-9)
	assert.InDelta(t, 1.0, res.Successful[0].QualityScore, 1e-9)
}

func TestProcess_Stats(t *testing.T) {
	items := []domain.Observation{
		{ID: "a", Name: "GDP", Value: 10, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "b", Name: "GDP", Value: 20, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
		{ID: "c", Name: "GDP", Value: 60, Unit: "USD Millions", IndicatorType: domain.IndicatorFlow},
	}
	res := newTestProcessor().Process(context.Background(), items, Options{})

	assert.Equal(t, 10.0, res.Stats.MinValue)
	assert.Equal(t, 60.0, res.Stats.MaxValue)
	assert.InDelta(t, 30, res.Stats.MeanValue, 1e-9)
	assert.GreaterOrEqual(t, res.Stats.Elapsed.Nanoseconds(), int64(0))
}

func TestProcess_EmptyBatch(t *testing.T) {
	res := newTestProcessor().Process(context.Background(), nil, Options{})
	assert.Empty(t, res.Successful)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 0, res.Stats.Total)
}
