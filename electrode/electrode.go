// Package electrode describes the per-channel metadata of a multi-channel
// recording: which physical device each electrode belongs to and whether it
// has been marked bad.
package electrode

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-ecog/dsp/ndarray"
)

// NullGroupPrefix marks electrodes that are not part of a real recording device.
const NullGroupPrefix = "null"

// ErrLengthMismatch is returned when a table does not describe exactly the
// channels of a signal matrix.
var ErrLengthMismatch = errors.New("electrode: table length does not match channel count")

// Electrode is one row of the electrode table.
type Electrode struct {
	Label     string
	GroupName string
	Bad       bool
	Location  [3]float64 // x, y, z in the recording's coordinate space
}

// Table is positional: entry i describes channel i of the signal matrix.
// A nil Table means no metadata is available.
type Table []Electrode

// Group is a set of channels sharing a GroupName.
type Group struct {
	Name    string
	Indices []int
}

// Null reports whether the group is the sentinel "not a device" group.
func (g Group) Null() bool {
	return IsNullGroup(g.Name)
}

// IsNullGroup reports whether name carries the null sentinel prefix.
func IsNullGroup(name string) bool {
	return strings.HasPrefix(name, NullGroupPrefix)
}

// Len returns the number of electrodes.
func (t Table) Len() int {
	return len(t)
}

// Validate checks that t describes exactly nChannels channels.
func (t Table) Validate(nChannels int) error {
	if len(t) != nChannels {
		return fmt.Errorf("%w: %d electrodes for %d channels", ErrLengthMismatch, len(t), nChannels)
	}

	return nil
}

// Groups returns the distinct groups in first-occurrence order. Null groups
// are included; use Group.Null to skip them.
func (t Table) Groups() []Group {
	var groups []Group

	pos := make(map[string]int)
	for i, e := range t {
		k, ok := pos[e.GroupName]
		if !ok {
			k = len(groups)
			pos[e.GroupName] = k
			groups = append(groups, Group{Name: e.GroupName})
		}

		groups[k].Indices = append(groups[k].Indices, i)
	}

	return groups
}

// BadMask returns one flag per electrode, true for bad ones.
func (t Table) BadMask() []bool {
	mask := make([]bool, len(t))
	for i, e := range t {
		mask[i] = e.Bad
	}

	return mask
}

// BadIndices returns the indices of bad electrodes in ascending order.
func (t Table) BadIndices() []int {
	var idx []int
	for i, e := range t {
		if e.Bad {
			idx = append(idx, i)
		}
	}

	return idx
}

// MaskBad returns a copy of a [channels, time] array in which every channel
// flagged bad in t is replaced with NaN. x is not modified.
func MaskBad(x *ndarray.Array, t Table) (*ndarray.Array, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil recording", ndarray.ErrBadShape)
	}

	if x.Rank() != 2 {
		return nil, fmt.Errorf("%w: want [channels, time], got shape %v", ndarray.ErrBadShape, x.Shape())
	}

	if err := t.Validate(x.Dim(0)); err != nil {
		return nil, err
	}

	out := x.Clone()
	nan := math.NaN()
	for _, i := range t.BadIndices() {
		row := out.Row(i)
		for j := range row {
			row[j] = nan
		}
	}

	return out, nil
}
