// Package testutil provides reusable test helper functions for trajectory tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-10
	WaypointTolerance = 1e-9
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertShape verifies the dimensions of a matrix.
func AssertShape(t *testing.T, m mat.Matrix, rows, cols int) bool {
	t.Helper()
	r, c := m.Dims()
	return assert.Equal(t, rows, r, "row count") && assert.Equal(t, cols, c, "column count")
}

// AssertMatrixInDelta verifies two matrices have equal shape and that every
// element differs by at most tolerance.
func AssertMatrixInDelta(t *testing.T, expected, actual mat.Matrix, tolerance float64) bool {
	t.Helper()
	er, ec := expected.Dims()
	if !AssertShape(t, actual, er, ec) {
		return false
	}
	for i := range er {
		for j := range ec {
			e, a := expected.At(i, j), actual.At(i, j)
			if math.Abs(e-a) > tolerance {
				return assert.Fail(t, "matrices differ",
					"element (%d,%d): expected %v, actual %v (tolerance %v)", i, j, e, a, tolerance)
			}
		}
	}
	return true
}

// AssertBitIdentical verifies two matrices hold exactly the same values.
func AssertBitIdentical(t *testing.T, expected, actual mat.Matrix) bool {
	t.Helper()
	if !mat.Equal(expected, actual) {
		return assert.Fail(t, "matrices are not bit-identical")
	}
	return true
}

// Row returns a copy of row i of m.
func Row(m mat.Matrix, i int) []float64 {
	_, c := m.Dims()
	return mat.Row(make([]float64, c), i, m)
}
