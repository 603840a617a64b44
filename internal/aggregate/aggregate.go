// Package aggregate combines normalized observations: sums, means,
// medians, weighted/geometric/harmonic means, and moving averages, with
// optional pre-normalization to a common unit.
package aggregate

import (
	"fmt"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/normalizer"
	"github.com/quantatomai/normalize/internal/units"
	"github.com/quantatomai/normalize/pkg/formulas"
)

// Method selects the aggregation function.
type Method string

const (
	MethodSum       Method = "sum"
	MethodMean      Method = "mean"
	MethodMedian    Method = "median"
	MethodWeighted  Method = "weighted"
	MethodGeometric Method = "geometric"
	MethodHarmonic  Method = "harmonic"
)

// Input is one value to aggregate. Weight only matters for MethodWeighted.
type Input struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Weight float64 `json:"weight,omitempty"`
}

// Options configures one aggregation call.
type Options struct {
	Method Method
	// WeightByValue uses |value| as each item's weight for MethodWeighted.
	WeightByValue bool
	// NormalizeFirst converts every input to the target unit before
	// aggregating. Without it, mixed units are an error.
	NormalizeFirst bool
	// Normalize carries the targets and FX snapshot for NormalizeFirst.
	Normalize normalizer.Options
}

// Meta is descriptive statistics over the aggregated values.
type Meta struct {
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
}

// Result is the aggregate value with the unit it is expressed in.
type Result struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Meta  Meta    `json:"meta"`
}

// Aggregate combines items per opts. It errors on empty input, on mixed
// units without NormalizeFirst, and on non-positive inputs to the
// geometric or harmonic mean.
func Aggregate(items []Input, opts Options) (Result, error) {
	if len(items) == 0 {
		return Result{}, domain.ErrAggregationEmpty
	}

	values := make([]float64, 0, len(items))
	weights := make([]float64, 0, len(items))
	unit := ""

	if opts.NormalizeFirst {
		for _, it := range items {
			res, err := normalizer.Normalize(it.Value, it.Unit, opts.Normalize)
			if err != nil {
				return Result{}, fmt.Errorf("failed to normalize %q: %w", it.Unit, err)
			}
			values = append(values, res.Value)
			weights = append(weights, it.Weight)
			if unit == "" {
				unit = res.FullUnit
			}
		}
	} else {
		for i, it := range items {
			if i == 0 {
				unit = it.Unit
			} else if units.NormalizeText(it.Unit) != units.NormalizeText(unit) {
				return Result{}, fmt.Errorf("%w: %q vs %q", domain.ErrUnitMismatch, unit, it.Unit)
			}
			values = append(values, it.Value)
			weights = append(weights, it.Weight)
		}
	}

	if opts.WeightByValue {
		for i, v := range values {
			if v < 0 {
				weights[i] = -v
			} else {
				weights[i] = v
			}
		}
	}

	value, err := apply(opts.Method, values, weights)
	if err != nil {
		return Result{}, err
	}

	min, max := formulas.MinMax(values)
	return Result{
		Value: value,
		Unit:  unit,
		Meta: Meta{
			Count:    len(values),
			Min:      min,
			Max:      max,
			Variance: formulas.Variance(values),
			StdDev:   formulas.StdDev(values),
		},
	}, nil
}

func apply(method Method, values, weights []float64) (float64, error) {
	switch method {
	case MethodSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum, nil
	case MethodMean, "":
		return formulas.Mean(values), nil
	case MethodMedian:
		return formulas.Median(values), nil
	case MethodWeighted:
		total := 0.0
		for _, w := range weights {
			if w < 0 {
				return 0, fmt.Errorf("negative weight %g", w)
			}
			total += w
		}
		if total == 0 {
			return 0, fmt.Errorf("weighted mean needs at least one positive weight")
		}
		return formulas.WeightedMean(values, weights), nil
	case MethodGeometric:
		for _, v := range values {
			if v <= 0 {
				return 0, fmt.Errorf("geometric mean requires strictly positive values, got %g", v)
			}
		}
		return formulas.GeometricMean(values), nil
	case MethodHarmonic:
		for _, v := range values {
			if v <= 0 {
				return 0, fmt.Errorf("harmonic mean requires strictly positive values, got %g", v)
			}
		}
		return formulas.HarmonicMean(values), nil
	default:
		return 0, fmt.Errorf("unknown aggregation method %q", method)
	}
}
