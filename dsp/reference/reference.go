// Package reference removes shared reference and noise signals from
// multi-channel electrophysiology recordings.
//
// Recordings are rank-2 arrays of shape [channels, time]. Three re-referencing
// schemes are provided:
//
//   - SubtractCAR: common average reference over fixed-size contiguous blocks
//     of channels, as wired on amplifier banks.
//   - SubtractCARByDevice: common average reference per recording device, as
//     given by the electrode table's group names.
//   - SubtractCommonMedian: median reference across the whole channel axis of
//     an array of any rank.
//
// NaN samples are treated as missing and never contribute to a reference
// estimate. No function modifies its input; each returns a new array of the
// same shape.
package reference

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
)

var (
	ErrInvalidParameter = errors.New("reference: invalid parameter")
	ErrMissingMetadata  = errors.New("reference: missing electrode metadata")
	ErrShapeMismatch    = errors.New("reference: shape mismatch")
)

// Reference is one estimated reference signal and the channels it is
// subtracted from.
type Reference struct {
	// Name is the device group name for device references and empty for
	// block references.
	Name     string
	Channels []int
	// Signal holds one reference value per time sample.
	Signal []float64
}

// Apply subtracts each reference signal from its channels and returns the
// corrected copy of x. Channels listed in no reference pass through unchanged.
// A channel may belong to at most one reference.
func Apply(x *ndarray.Array, refs []Reference, opts ...Option) (*ndarray.Array, error) {
	if err := checkMatrix(x); err != nil {
		return nil, err
	}

	nCh, nT := x.Dim(0), x.Dim(1)
	owner := make([]int, nCh)
	for k, r := range refs {
		if len(r.Signal) != nT {
			return nil, fmt.Errorf("%w: reference %q has %d samples, recording has %d",
				ErrShapeMismatch, r.Name, len(r.Signal), nT)
		}

		for _, ch := range r.Channels {
			if ch < 0 || ch >= nCh {
				return nil, fmt.Errorf("%w: channel %d out of range [0, %d)", ErrShapeMismatch, ch, nCh)
			}

			if owner[ch] != 0 {
				return nil, fmt.Errorf("%w: channel %d in references %d and %d", ErrInvalidParameter, ch, owner[ch]-1, k)
			}
			owner[ch] = k + 1
		}
	}

	cfg := applyOptions(opts...)
	out := x.Clone()

	run(cfg.workers, len(refs), func(k int) {
		subtract(out, refs[k])
	})

	return out, nil
}

// subtract removes r.Signal from every channel of r in place.
func subtract(out *ndarray.Array, r Reference) {
	neg := make([]float64, len(r.Signal))
	vecmath.ScaleBlock(neg, r.Signal, -1)

	for _, ch := range r.Channels {
		vecmath.AddBlockInPlace(out.Row(ch), neg)
	}
}

func checkMatrix(x *ndarray.Array) error {
	if x == nil {
		return fmt.Errorf("%w: nil recording", ErrInvalidParameter)
	}

	if x.Rank() != 2 {
		return fmt.Errorf("%w: want [channels, time], got shape %v", ErrShapeMismatch, x.Shape())
	}

	return nil
}
