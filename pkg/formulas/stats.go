// Package formulas provides small guarded wrappers around gonum statistics
// used by the demand profiler and analytics.
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

// StdDev calculates the population-style standard deviation of a slice of
// float64 values. Single-element slices return 0.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// CV calculates the coefficient of variation, 0 when the mean is 0.
func CV(data []float64) float64 {
	m := Mean(data)
	if m == 0 {
		return 0
	}
	return StdDev(data) / m
}

// Quantile returns the p-quantile (0..1) of the data, 0 on empty input.
// The input slice is not modified.
func Quantile(p float64, data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
