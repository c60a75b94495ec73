package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/electrode"
)

// Recording builds a [channels, time] array from rows. It panics on ragged
// rows, which is a bug in the test itself.
func Recording(rows [][]float64) *ndarray.Array {
	a, err := ndarray.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return a
}

// Electrodes returns a table with one electrode per group name.
func Electrodes(groups ...string) electrode.Table {
	t := make(electrode.Table, len(groups))
	for i, g := range groups {
		t[i] = electrode.Electrode{GroupName: g}
	}
	return t
}

// Uniform returns a table of n electrodes in a single group.
func Uniform(n int, group string) electrode.Table {
	groups := make([]string, n)
	for i := range groups {
		groups[i] = group
	}
	return Electrodes(groups...)
}

// NoisyRecording returns channels x samples of independent white noise in
// [-1, 1] plus a shared sine of the given amplitude on every channel, with a
// fixed seed for reproducibility.
func NoisyRecording(seed int64, channels, samples int, shared float64) *ndarray.Array {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, channels)
	for c := range rows {
		rows[c] = make([]float64, samples)
		for i := range rows[c] {
			common := shared * math.Sin(2*math.Pi*float64(i)/32)
			rows[c][i] = rng.Float64()*2 - 1 + common
		}
	}
	return Recording(rows)
}
