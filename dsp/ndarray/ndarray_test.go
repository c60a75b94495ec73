package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}

	a, err := FromSlice(src, 2, 3)
	require.NoError(t, err)

	src[0] = 100
	assert.Equal(t, 1.0, a.At(0, 0))
	assert.Equal(t, 6.0, a.At(1, 2))
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 6, a.Len())
}

func TestFromSliceErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		shape []int
	}{
		{"rank zero", nil, nil},
		{"negative dim", nil, []int{-1, 2}},
		{"length mismatch", []float64{1, 2, 3}, []int{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSlice(tt.data, tt.shape...)
			require.ErrorIs(t, err, ErrBadShape)
		})
	}
}

func TestFromRows(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, a.Shape())
	assert.Equal(t, []float64{3, 4}, a.Row(1))
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, a.Rows())

	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrBadShape)

	empty, err := FromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, empty.Shape())
}

func TestRowAliasesStorage(t *testing.T) {
	a, err := New(2, 3)
	require.NoError(t, err)

	a.Row(1)[2] = 7
	assert.Equal(t, 7.0, a.At(1, 2))
	assert.Len(t, a.Row(0), 3)
}

func TestCloneIsIndependent(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	b := a.Clone()
	b.Set(9, 0, 0)

	assert.Equal(t, 1.0, a.At(0, 0))
	assert.True(t, SameShape(a, b))
}

func TestDenseRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	a := FromDense(m)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 5.0, a.At(1, 1))

	d, err := a.Dense()
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, d))

	b, err := New(2, 2, 2)
	require.NoError(t, err)
	_, err = b.Dense()
	require.ErrorIs(t, err, ErrBadShape)
}

func TestAxis(t *testing.T) {
	tests := []struct {
		axis, rank int
		want       int
		ok         bool
	}{
		{-1, 2, 1, true},
		{-2, 2, 0, true},
		{-3, 2, -1, false},
		{2, 2, 2, false},
		{0, 3, 0, true},
		{-2, 4, 2, true},
	}

	for _, tt := range tests {
		got, ok := Axis(tt.axis, tt.rank)
		assert.Equal(t, tt.ok, ok, "axis %d rank %d", tt.axis, tt.rank)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestSplit(t *testing.T) {
	a, err := New(2, 3, 4, 5)
	require.NoError(t, err)

	outer, n, inner := a.Split(2)
	assert.Equal(t, 6, outer)
	assert.Equal(t, 4, n)
	assert.Equal(t, 5, inner)

	a.Set(42, 1, 2, 3, 4)
	assert.Equal(t, 42.0, a.Data()[((1*3+2)*4+3)*5+4])
}

func TestAtPanicsOutOfRange(t *testing.T) {
	a, err := New(2, 2)
	require.NoError(t, err)

	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0) })
}
