package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffSkipsNaN(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, math.NaN(), 3}, []float64{1, 100, 3.5})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0.5 {
		t.Fatalf("MaxAbsDiff = %v, want 0.5", d)
	}
}

func TestRequireSliceNearlyEqualMatchesNaN(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{math.NaN(), 1}, []float64{math.NaN(), 1 + 1e-12}, 1e-9)
}

func TestRequireArrayNearlyEqual(t *testing.T) {
	a := Recording([][]float64{{1, 2}, {3, math.NaN()}})
	b := Recording([][]float64{{1, 2}, {3, math.NaN()}})
	RequireArrayNearlyEqual(t, a, b, 0)
}
