// Package ndarray provides a minimal row-major float64 array with an explicit
// shape, used to carry multi-channel recordings through the reference
// transforms.
//
// A recording is conventionally a rank-2 array of shape [channels, time].
// Batched recordings add leading dimensions: [..., channels, time].
package ndarray

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrBadShape is returned when a shape is invalid or does not match the data.
var ErrBadShape = errors.New("ndarray: invalid shape")

// Array is a dense row-major float64 array.
type Array struct {
	shape []int
	data  []float64
}

// New returns a zero-filled array with the given shape.
func New(shape ...int) (*Array, error) {
	n, err := size(shape)
	if err != nil {
		return nil, err
	}

	return &Array{shape: cloneInts(shape), data: make([]float64, n)}, nil
}

// FromSlice returns an array holding a copy of data with the given shape.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	n, err := size(shape)
	if err != nil {
		return nil, err
	}

	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrBadShape, len(data), shape)
	}

	out := make([]float64, n)
	copy(out, data)

	return &Array{shape: cloneInts(shape), data: out}, nil
}

// FromRows builds a rank-2 array from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Array, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadShape, i, len(r), cols)
		}

		data = append(data, r...)
	}

	return &Array{shape: []int{len(rows), cols}, data: data}, nil
}

// FromDense copies a gonum matrix into a rank-2 array.
func FromDense(m mat.Matrix) *Array {
	r, c := m.Dims()

	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}

	return &Array{shape: []int{r, c}, data: data}
}

// Dense copies a rank-2 array into a gonum matrix. Empty arrays cannot be
// represented by mat.Dense and are rejected.
func (a *Array) Dense() (*mat.Dense, error) {
	if a.Rank() != 2 {
		return nil, fmt.Errorf("%w: dense needs rank 2, got shape %v", ErrBadShape, a.shape)
	}

	if a.Len() == 0 {
		return nil, fmt.Errorf("%w: dense needs a non-empty array, got shape %v", ErrBadShape, a.shape)
	}

	return mat.NewDense(a.shape[0], a.shape[1], cloneFloats(a.data)), nil
}

// Shape returns a copy of the array shape.
func (a *Array) Shape() []int {
	return cloneInts(a.shape)
}

// Dim returns the length of one dimension.
func (a *Array) Dim(axis int) int {
	return a.shape[axis]
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Len returns the total number of elements.
func (a *Array) Len() int {
	return len(a.data)
}

// Data returns the backing slice. Writes through it modify the array.
func (a *Array) Data() []float64 {
	return a.data
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{shape: cloneInts(a.shape), data: cloneFloats(a.data)}
}

// Row returns row i of a rank-2 array. The slice aliases the array storage.
func (a *Array) Row(i int) []float64 {
	cols := a.shape[1]
	return a.data[i*cols : (i+1)*cols : (i+1)*cols]
}

// Rows copies a rank-2 array out as a slice of rows.
func (a *Array) Rows() [][]float64 {
	out := make([][]float64, a.shape[0])
	for i := range out {
		out[i] = cloneFloats(a.Row(i))
	}

	return out
}

// At returns the element at the given index. It panics on a bad index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index. It panics on a bad index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for rank %d", len(idx), len(a.shape)))
	}

	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d of size %d", i, d, a.shape[d]))
		}

		off = off*a.shape[d] + i
	}

	return off
}

// Axis normalizes a possibly negative axis against rank, where -1 is the last
// axis. ok is false if the axis is out of range.
func Axis(axis, rank int) (int, bool) {
	if axis < 0 {
		axis += rank
	}

	return axis, axis >= 0 && axis < rank
}

// Split returns the products of the dimensions before and after axis, plus the
// length of axis itself. Element (o, k, i) lives at (o*n+k)*inner+i.
func (a *Array) Split(axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for d, s := range a.shape {
		switch {
		case d < axis:
			outer *= s
		case d > axis:
			inner *= s
		}
	}

	return outer, a.shape[axis], inner
}

// SameShape reports whether a and b have identical shapes.
func SameShape(a, b *Array) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}

	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}

	return true
}

func size(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: rank 0", ErrBadShape)
	}

	n := 1
	for _, s := range shape {
		if s < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrBadShape, shape)
		}

		n *= s
	}

	return n, nil
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)

	return out
}

func cloneFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}
