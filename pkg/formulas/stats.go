// Package formulas wraps the gonum statistics primitives used by the
// aggregation and batch layers.
package formulas

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// WeightedMean calculates the weighted arithmetic mean. Weights must be
// the same length as data.
func WeightedMean(data, weights []float64) float64 {
	if len(data) == 0 || len(data) != len(weights) {
		return 0
	}
	return stat.Mean(data, weights)
}

// GeometricMean calculates the geometric mean. All values must be
// strictly positive.
func GeometricMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.GeometricMean(data, nil)
}

// HarmonicMean calculates the harmonic mean. All values must be strictly
// positive.
func HarmonicMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.HarmonicMean(data, nil)
}

// Median calculates the 50th percentile of the values.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Variance(data, nil)
}

// MinMax returns the smallest and largest values in data.
func MinMax(data []float64) (min, max float64) {
	if len(data) == 0 {
		return 0, 0
	}
	min, max = data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
