package reference

import (
	"fmt"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
	"github.com/cwbudde/algo-ecog/stats/nanstat"
)

// DefaultChannelAxis is the channel axis of a [..., channels, time] array.
const DefaultChannelAxis = -2

// SubtractCommonMedian subtracts the NaN-aware median taken along channelAxis
// from every element of x. Negative axes count from the end. x may have any
// rank, so batched recordings are referenced independently per batch entry.
//
// The median reference ignores electrode metadata. To exclude bad channels,
// mask them to NaN first, for example with electrode.MaskBad.
func SubtractCommonMedian(x *ndarray.Array, channelAxis int) (*ndarray.Array, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil array", ErrInvalidParameter)
	}

	axis, ok := ndarray.Axis(channelAxis, x.Rank())
	if !ok {
		return nil, fmt.Errorf("%w: channel axis %d out of range for rank %d", ErrInvalidParameter, channelAxis, x.Rank())
	}

	out := x.Clone()
	data := out.Data()
	outer, n, inner := x.Split(axis)

	col := make([]float64, n)
	scratch := make([]float64, 0, n)
	for o := 0; o < outer; o++ {
		base := o * n * inner
		for i := 0; i < inner; i++ {
			for k := range col {
				col[k] = data[base+k*inner+i]
			}

			med := nanstat.Median(col, scratch)
			for k := range col {
				data[base+k*inner+i] -= med
			}
		}
	}

	return out, nil
}
