package engine

// Profile names
const (
	constVelocityName = "const-velocity"
	trapezoidalName   = "trapezoidal"
	splineName        = "spline"
)

// Trapezoidal profile constants
const (
	// Ramp laws integrate constant acceleration: q = q0 + ½·a·t²
	rampHalf = 0.5
)

// Spline constants
const (
	// A clamped cubic needs both end points
	minSplineKnots = 2
)
