package engine

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/tphakala/go-joint-trajectory/internal/schedule"
)

// Spline is a clamped cubic spline through the waypoints of one joint:
// piecewise cubic, continuous in position, velocity and acceleration at
// interior waypoints, with zero velocity at the first and last waypoint.
type Spline struct {
	cubic interp.ClampedCubic
	start float64
	end   float64
}

// FitSpline fits a clamped cubic spline through (times[i], positions[i]).
// times must hold at least two strictly increasing values and positions
// must have the same length.
func FitSpline(times, positions []float64) (*Spline, error) {
	if len(times) != len(positions) {
		return nil, fmt.Errorf("%w: %d times for %d positions", ErrShapeMismatch, len(times), len(positions))
	}
	if len(times) < minSplineKnots {
		return nil, fmt.Errorf("%w: spline needs at least %d knots, got %d", ErrShapeMismatch, minSplineKnots, len(times))
	}

	s := &Spline{
		start: times[0],
		end:   times[len(times)-1],
	}
	if err := s.cubic.Fit(times, positions); err != nil {
		return nil, fmt.Errorf("fit clamped spline: %w", err)
	}
	return s, nil
}

// Position returns the spline value at t. Outside the knot range the end
// values are held.
func (s *Spline) Position(t float64) float64 {
	return s.cubic.Predict(t)
}

// Velocity returns the first derivative at t.
func (s *Spline) Velocity(t float64) float64 {
	return s.cubic.PredictDerivative(t)
}

// Span returns the first and last knot times.
func (s *Spline) Span() (start, end float64) {
	return s.start, s.end
}

// SplineProfile fits one clamped cubic spline per joint across all
// waypoints and samples it on the uniform grid of the plan.
type SplineProfile struct{}

// NewSplineProfile creates a spline profile.
func NewSplineProfile() *SplineProfile {
	return &SplineProfile{}
}

// Name returns the profile name.
func (p *SplineProfile) Name() string {
	return splineName
}

// Layout returns schedule.KindUniform.
func (p *SplineProfile) Layout() schedule.Kind {
	return schedule.KindUniform
}

// SampleJoint fits the joint's spline and evaluates it at every grid instant.
func (p *SplineProfile) SampleJoint(dst, positions []float64, plan *schedule.Plan) error {
	if err := checkShape(p, dst, positions, plan); err != nil {
		return err
	}

	spline, err := FitSpline(plan.Times, positions)
	if err != nil {
		return err
	}

	for i, t := range plan.Grid {
		dst[i] = spline.Position(t)
	}
	return nil
}
