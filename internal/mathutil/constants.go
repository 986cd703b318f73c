// Package mathutil provides numeric helpers shared by the trajectory profiles:
// control-tick counting, evenly spaced grids, and finite-difference
// derivative estimates.
package mathutil

import "math"

// Finite-difference constants
const (
	// Gradient needs two samples for a one-sided difference
	minGradientSamples = 2

	// Central differences span two sample intervals
	centralDifferenceSpan = 2.0
)

// Conversion limits
const (
	// float64(math.MaxInt) rounds up to 2^63, which no int can hold
	maxIntFloat = float64(math.MaxInt)
)
