package outliers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/domain"
)

func TestDetect_FlagsDistantValue(t *testing.T) {
	// Four countries report GDP around 10^3; one slipped in at raw ones.
	items := []Item{
		{ID: "a", Normalized: 1200},
		{ID: "b", Normalized: 3400},
		{ID: "c", Normalized: 5600},
		{ID: "d", Normalized: 8900},
		{ID: "e", Normalized: 2.1},
	}

	res := Detect(items, Options{IncludeDetails: true})
	assert.True(t, res.HasOutliers)
	require.Equal(t, []string{"e"}, res.OutlierIDs)
	assert.Equal(t, 3, res.DominantMagnitude)

	d := res.Details["e"]
	assert.Equal(t, 0, d.Magnitude)
	assert.Equal(t, 3, d.MagnitudeDifference)
	assert.Equal(t, map[int]int{3: 4, 0: 1}, d.Distribution)
}

func TestDetect_NoDominantCluster(t *testing.T) {
	// An even spread has no cluster to measure distance from.
	items := []Item{
		{ID: "a", Normalized: 5},
		{ID: "b", Normalized: 500},
		{ID: "c", Normalized: 50000},
	}
	res := Detect(items, Options{})
	assert.False(t, res.HasOutliers)
	assert.Empty(t, res.OutlierIDs)
}

func TestDetect_RequiresThreeUsableItems(t *testing.T) {
	items := []Item{
		{ID: "a", Normalized: 1000},
		{ID: "b", Normalized: 1},
	}
	res := Detect(items, Options{})
	assert.False(t, res.HasOutliers)

	// Zero and non-finite values do not count toward the minimum.
	items = append(items, Item{ID: "c", Normalized: 0}, Item{ID: "d", Normalized: math.NaN()})
	res = Detect(items, Options{})
	assert.False(t, res.HasOutliers)
}

func TestDetect_WithinThresholdNotFlagged(t *testing.T) {
	// One order of magnitude off is noise, not a unit error.
	items := []Item{
		{ID: "a", Normalized: 1000},
		{ID: "b", Normalized: 2000},
		{ID: "c", Normalized: 3000},
		{ID: "d", Normalized: 900},
	}
	res := Detect(items, Options{})
	assert.False(t, res.HasOutliers)
}

func TestDetect_NegativeValuesUseAbsoluteValue(t *testing.T) {
	items := []Item{
		{ID: "a", Normalized: -1200},
		{ID: "b", Normalized: -3400},
		{ID: "c", Normalized: 5600},
		{ID: "d", Normalized: -1.5},
	}
	res := Detect(items, Options{})
	assert.True(t, res.HasOutliers)
	assert.Equal(t, []string{"d"}, res.OutlierIDs)
}

func TestDetect_CustomThresholds(t *testing.T) {
	items := []Item{
		{ID: "a", Normalized: 1000},
		{ID: "b", Normalized: 2000},
		{ID: "c", Normalized: 3000},
		{ID: "d", Normalized: 900},
	}
	// Lowering the magnitude threshold to 1 flags the 10^2 value.
	res := Detect(items, Options{MagnitudeDifferenceThreshold: 1})
	assert.True(t, res.HasOutliers)
	assert.Equal(t, []string{"d"}, res.OutlierIDs)

	// Raising the cluster threshold above 3/4 disables detection here.
	res = Detect(items, Options{ClusterThreshold: 0.9})
	assert.False(t, res.HasOutliers)
}

func TestWarning(t *testing.T) {
	w := Warning("e", Detail{
		Value:               2.1,
		Magnitude:           0,
		DominantMagnitude:   3,
		MagnitudeDifference: 3,
		Distribution:        map[int]int{3: 4, 0: 1},
	})

	assert.Equal(t, domain.WarningScaleOutlier, w.Type)
	assert.Equal(t, domain.SeverityWarning, w.Severity)
	require.NotNil(t, w.Details)
	assert.Equal(t, 3, w.Details.MagnitudeDifference)
	assert.Contains(t, w.Message, "orders of magnitude")
}
