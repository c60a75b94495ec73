// Package nanstat provides reductions that treat NaN as a missing sample.
//
// NaN values count toward neither the numerator nor the divisor. A reduction
// over nothing but NaN returns NaN.
package nanstat

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Count returns the number of non-NaN values.
func Count(x []float64) int {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			n++
		}
	}

	return n
}

// Mean returns the mean of the non-NaN values of x. Infinite values propagate
// as in plain summation: +Inf and -Inf together give NaN.
func Mean(x []float64) float64 {
	// Kahan summation for numerical stability.
	var sum, c float64

	n := 0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}

		// Compensation is meaningless once the sum is infinite.
		if math.IsInf(sum, 0) || math.IsInf(v, 0) {
			sum += v
			n++
			continue
		}

		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		n++
	}

	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}

// Median returns the median of the non-NaN values of x, averaging the two
// middle values for an even count. scratch is reused if it has enough
// capacity; x is never reordered.
func Median(x, scratch []float64) float64 {
	vals := Finite(scratch[:0], x)

	n := len(vals)
	if n == 0 {
		return math.NaN()
	}

	slices.Sort(vals)

	if n%2 == 1 {
		return vals[n/2]
	}

	lo, hi := vals[n/2-1], vals[n/2]
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return (lo + hi) / 2
	}

	return lo + (hi-lo)/2
}

// MeanStdDev returns the mean and unbiased standard deviation of the non-NaN
// values of x. The standard deviation is NaN for fewer than two values.
func MeanStdDev(x []float64) (mean, std float64) {
	vals := Finite(nil, x)

	switch len(vals) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return vals[0], math.NaN()
	}

	return stat.MeanStdDev(vals, nil)
}

// Finite appends the non-NaN values of x to dst and returns it.
func Finite(dst, x []float64) []float64 {
	for _, v := range x {
		if !math.IsNaN(v) {
			dst = append(dst, v)
		}
	}

	return dst
}

// Columns accumulates a NaN-aware per-column mean over equal-length rows.
type Columns struct {
	sum   []float64
	count []int
}

// NewColumns returns an accumulator for rows of length n.
func NewColumns(n int) *Columns {
	return &Columns{
		sum:   make([]float64, n),
		count: make([]int, n),
	}
}

// Add accumulates one row. Its length must match the accumulator.
func (c *Columns) Add(row []float64) {
	sum := c.sum[:len(row)]
	for i, v := range row {
		if math.IsNaN(v) {
			continue
		}

		sum[i] += v
		c.count[i]++
	}
}

// Mean writes the per-column mean into dst. Columns without any non-NaN
// sample are NaN.
func (c *Columns) Mean(dst []float64) {
	for i := range dst {
		if c.count[i] == 0 {
			dst[i] = math.NaN()
			continue
		}

		dst[i] = c.sum[i] / float64(c.count[i])
	}
}
