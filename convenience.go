package trajectory

import (
	"gonum.org/v1/gonum/mat"
)

// Common control frequencies for convenience.
const (
	// Rate100Hz is a typical rate for offline planning and simulation.
	Rate100Hz = 100

	// Rate125Hz matches the control loop of many industrial arms.
	Rate125Hz = 125

	// Rate250Hz is a common servo update rate.
	Rate250Hz = 250

	// Rate500Hz and Rate1kHz are high-rate torque and position loops.
	Rate500Hz = 500
	Rate1kHz  = 1000
)

// NewConstVelocity creates a constant-velocity generator.
func NewConstVelocity(frequency float64) (Generator, error) {
	return New(&Config{
		Frequency: frequency,
		Profile:   ProfileConstVelocity,
	})
}

// NewTrapezoidal creates a trapezoidal-velocity generator that spends
// dutyCycle of every segment on each ramp.
func NewTrapezoidal(frequency, dutyCycle float64) (Generator, error) {
	return New(&Config{
		Frequency: frequency,
		Profile:   ProfileTrapezoidal,
		DutyCycle: dutyCycle,
	})
}

// NewSpline creates a clamped cubic spline generator.
func NewSpline(frequency float64) (Generator, error) {
	return New(&Config{
		Frequency: frequency,
		Profile:   ProfileSpline,
	})
}

// ConstVelocity is a convenience function for one-shot constant-velocity
// generation. Each segment contributes floor(dt*frequency) samples starting
// at its own waypoint, and the final waypoint is appended once.
func ConstVelocity(waypoints mat.Matrix, times []float64, frequency float64) (*mat.Dense, error) {
	g, err := NewConstVelocity(frequency)
	if err != nil {
		return nil, err
	}
	return g.Generate(waypoints, times)
}

// TrapezoidalVelocity is a convenience function for one-shot trapezoidal
// generation. The sample layout is identical to ConstVelocity.
func TrapezoidalVelocity(waypoints mat.Matrix, times []float64, frequency, dutyCycle float64) (*mat.Dense, error) {
	g, err := NewTrapezoidal(frequency, dutyCycle)
	if err != nil {
		return nil, err
	}
	return g.Generate(waypoints, times)
}

// Spline is a convenience function for one-shot spline generation.
// The result has floor((times[last]-times[0])*frequency)+1 columns evenly
// spaced from the first to the last waypoint time inclusive.
func Spline(waypoints mat.Matrix, times []float64, frequency float64) (*mat.Dense, error) {
	g, err := NewSpline(frequency)
	if err != nil {
		return nil, err
	}
	return g.Generate(waypoints, times)
}

// Generate is a convenience function for one-shot generation with an
// explicit configuration.
func Generate(config *Config, waypoints mat.Matrix, times []float64) (*mat.Dense, error) {
	g, err := New(config)
	if err != nil {
		return nil, err
	}
	return g.Generate(waypoints, times)
}
