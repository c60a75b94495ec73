// Package crosschannel measures how much signal channels of a recording share,
// to judge how well a reference has been removed.
package crosschannel

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/stats/nanstat"
)

// Summary holds per-channel statistics over the non-NaN samples.
type Summary struct {
	Finite int // non-NaN sample count
	Mean   float64
	StdDev float64 // unbiased
	RMS    float64
}

// Summarize returns one Summary per channel of a [channels, time] array.
func Summarize(x *ndarray.Array) []Summary {
	out := make([]Summary, x.Dim(0))
	for ch := range out {
		row := x.Row(ch)
		mean, std := nanstat.MeanStdDev(row)

		var sumSq float64
		n := 0
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}

			sumSq += v * v
			n++
		}

		rms := math.NaN()
		if n > 0 {
			rms = math.Sqrt(sumSq / float64(n))
		}

		out[ch] = Summary{Finite: n, Mean: mean, StdDev: std, RMS: rms}
	}

	return out
}

// Correlation returns the Pearson correlation between every pair of channels
// of a [channels, time] array, using only the samples where both channels are
// non-NaN. Pairs with fewer than two shared samples, or a constant channel,
// are NaN. The diagonal is 1 for channels that are not entirely NaN.
func Correlation(x *ndarray.Array) *mat.SymDense {
	n := x.Dim(0)
	if n == 0 {
		return &mat.SymDense{}
	}

	c := mat.NewSymDense(n, nil)

	a := make([]float64, 0, x.Dim(1))
	b := make([]float64, 0, x.Dim(1))
	for i := 0; i < n; i++ {
		diag := math.NaN()
		if nanstat.Count(x.Row(i)) > 0 {
			diag = 1
		}
		c.SetSym(i, i, diag)

		for j := i + 1; j < n; j++ {
			a, b = paired(a[:0], b[:0], x.Row(i), x.Row(j))
			c.SetSym(i, j, correlation(a, b))
		}
	}

	return c
}

// MeanCorrelation returns the mean off-diagonal correlation, ignoring NaN
// pairs. It is NaN for fewer than two channels.
func MeanCorrelation(x *ndarray.Array) float64 {
	n := x.Dim(0)
	if n < 2 {
		return math.NaN()
	}

	c := Correlation(x)
	vals := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			vals = append(vals, c.At(i, j))
		}
	}

	return nanstat.Mean(vals)
}

func paired(a, b, x, y []float64) ([]float64, []float64) {
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}

		a = append(a, x[i])
		b = append(b, y[i])
	}

	return a, b
}

func correlation(a, b []float64) float64 {
	if len(a) < 2 {
		return math.NaN()
	}

	r := stat.Correlation(a, b, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}

	return r
}
