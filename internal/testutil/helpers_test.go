package testutil

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMatrixHelpers(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6 + 1e-12})

	AssertShape(t, a, 2, 3)
	AssertMatrixInDelta(t, a, b, 1e-9)
	AssertBitIdentical(t, a, mat.DenseCopyOf(a))

	row := Row(a, 1)
	if len(row) != 3 || row[0] != 4 || row[2] != 6 {
		t.Fatalf("Row(a, 1) = %v, want [4 5 6]", row)
	}
}

func TestSliceHelpers(t *testing.T) {
	s := []float64{0, 0.5, 0.5, 1}
	AssertMonotonic(t, s)
	AssertAllInRange(t, s, 0, 1)
	AssertNoNaNOrInf(t, s)
	AssertInRange(t, 0.3, 0, 1)
	AssertRelativeError(t, 100, 100.5, 0.01)
	AssertRelativeError(t, 0, 1e-12, 1e-9)
}
