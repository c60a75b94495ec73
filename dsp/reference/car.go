package reference

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/stats/nanstat"
)

// DefaultBlockSize is the channel count of one amplifier bank.
const DefaultBlockSize = 16

// SubtractCAR subtracts a common average reference computed within contiguous
// blocks of blockSize channels.
//
// Each full block has the per-sample mean across its channels removed. The
// trailing len%blockSize channels are handled according to WithRemainder;
// by default each of them has its own mean over time removed.
//
// With WithExcludeBad(true), channels flagged bad in the WithElectrodes table
// are treated as NaN when estimating references but are still corrected.
func SubtractCAR(x *ndarray.Array, blockSize int, opts ...Option) (*ndarray.Array, error) {
	refs, err := EstimateCAR(x, blockSize, opts...)
	if err != nil {
		return nil, err
	}

	return Apply(x, refs, opts...)
}

// EstimateCAR returns the reference signals SubtractCAR would remove, one per
// full block followed by the remainder references.
func EstimateCAR(x *ndarray.Array, blockSize int, opts ...Option) ([]Reference, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidParameter, blockSize)
	}

	if err := checkMatrix(x); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts...)
	if cfg.remainder != RemainderTemporalMean && cfg.remainder != RemainderBlockMean {
		return nil, fmt.Errorf("%w: unknown remainder policy %v", ErrInvalidParameter, cfg.remainder)
	}

	nCh := x.Dim(0)
	if err := cfg.checkElectrodes(nCh, false); err != nil {
		return nil, err
	}

	skip := cfg.skipMask()
	full := nCh / blockSize
	rem := nCh % blockSize

	refs := make([]Reference, 0, full+rem)
	for b := 0; b < full; b++ {
		refs = append(refs, Reference{Channels: span(b*blockSize, blockSize)})
	}

	if rem > 0 {
		start := full * blockSize
		switch cfg.remainder {
		case RemainderBlockMean:
			refs = append(refs, Reference{Channels: span(start, rem)})
		case RemainderTemporalMean:
			for ch := start; ch < nCh; ch++ {
				refs = append(refs, Reference{Channels: []int{ch}})
			}
		}
	}

	temporalFrom := len(refs)
	if rem > 0 && cfg.remainder == RemainderTemporalMean {
		temporalFrom = full
	}

	run(cfg.workers, len(refs), func(k int) {
		if k >= temporalFrom {
			refs[k].Signal = temporalMean(x, refs[k].Channels[0], skip)
			return
		}

		refs[k].Signal = channelMean(x, refs[k].Channels, skip)
	})

	return refs, nil
}

// channelMean returns the per-sample NaN-aware mean over channels, leaving
// out those marked in skip.
func channelMean(x *ndarray.Array, channels []int, skip []bool) []float64 {
	acc := nanstat.NewColumns(x.Dim(1))
	for _, ch := range channels {
		if skip != nil && skip[ch] {
			continue
		}

		acc.Add(x.Row(ch))
	}

	out := make([]float64, x.Dim(1))
	acc.Mean(out)

	return out
}

// temporalMean returns the channel's mean over time repeated for every sample.
// A skipped channel is fully masked, so its mean is NaN.
func temporalMean(x *ndarray.Array, ch int, skip []bool) []float64 {
	m := math.NaN()
	if skip == nil || !skip[ch] {
		m = nanstat.Mean(x.Row(ch))
	}

	out := make([]float64, x.Dim(1))
	for i := range out {
		out[i] = m
	}

	return out
}

func span(start, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = start + i
	}

	return idx
}
