// Package stats wraps the slice aggregations used by every visualization:
// describe-style summaries, quantiles and IQR outlier bounds.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Describe is the usual five-number-ish summary of a group.
type Describe struct {
	N    int
	Mean float64
	Min  float64
	Max  float64
	Std  float64
}

// Summarize computes a Describe over xs. NaN entries are dropped first so
// coerced cells never poison a group. An empty (or all-NaN) group yields
// zero values with N == 0.
func Summarize(xs []float64) Describe {
	clean := DropNaN(xs)
	if len(clean) == 0 {
		return Describe{}
	}
	d := Describe{
		N:    len(clean),
		Mean: stat.Mean(clean, nil),
		Min:  clean[0],
		Max:  clean[0],
	}
	for _, v := range clean[1:] {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	if len(clean) > 1 {
		d.Std = stat.StdDev(clean, nil)
	}
	return d
}

// Mean of xs ignoring NaN; NaN when nothing remains.
func Mean(xs []float64) float64 {
	clean := DropNaN(xs)
	if len(clean) == 0 {
		return math.NaN()
	}
	return stat.Mean(clean, nil)
}

// Median of xs ignoring NaN; NaN when nothing remains.
func Median(xs []float64) float64 {
	return Quantile(xs, 0.5)
}

// Quantile returns the p-quantile (0 <= p <= 1) of xs ignoring NaN,
// linearly interpolated between order statistics.
func Quantile(xs []float64, p float64) float64 {
	clean := DropNaN(xs)
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	if p <= 0 {
		return clean[0]
	}
	if p >= 1 {
		return clean[len(clean)-1]
	}
	// 0-based linear interpolation, matching the conventional spreadsheet
	// definition used by the result files we mirror.
	pos := p * float64(len(clean)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return clean[lo]
	}
	frac := pos - float64(lo)
	return clean[lo]*(1-frac) + clean[hi]*frac
}

// Bounds are 1.5×IQR outlier fences for a group.
type Bounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// IQRBounds computes the standard 1.5×IQR fences.
func IQRBounds(xs []float64) Bounds {
	q1 := Quantile(xs, 0.25)
	q3 := Quantile(xs, 0.75)
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - 1.5*iqr,
		Upper: q3 + 1.5*iqr,
	}
}

// Outliers returns the indices of xs falling outside the 1.5×IQR fences.
// A constant-valued group has zero outliers by construction.
func Outliers(xs []float64) []int {
	b := IQRBounds(xs)
	var idx []int
	for i, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if v < b.Lower || v > b.Upper {
			idx = append(idx, i)
		}
	}
	return idx
}

// DropNaN returns a copy of xs without NaN entries.
func DropNaN(xs []float64) []float64 {
	clean := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return clean
}
