// Package trajectory generates time-parameterized joint-space trajectories
// for robotic manipulators in pure Go.
//
// Given waypoints in joint space and the times at which each must be
// reached, a [Generator] produces a dense table of joint angles sampled at a
// fixed control frequency. Rows are joints and columns are control ticks,
// both stored in a gonum [mat.Dense].
//
// # Features
//
//   - Constant-velocity interpolation (position continuity)
//   - Trapezoidal velocity profiles with a configurable duty cycle
//     (velocity continuity inside each segment, rest at waypoints)
//   - Clamped cubic splines (globally C2, zero velocity at both ends)
//   - Optional concurrent sampling of joints with bit-identical output
//   - SIMD-accelerated segment kernels via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot generation:
//
//	waypoints := mat.NewDense(2, 3, []float64{
//	    0, 1, 0,
//	    0, 0.5, 1,
//	})
//	times := []float64{0, 1, 2}
//
//	traj, err := trajectory.TrapezoidalVelocity(waypoints, times, 100, 0.25)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated generation with a reusable generator:
//
//	g, err := trajectory.New(&trajectory.Config{
//	    Frequency:      trajectory.Rate250Hz,
//	    Profile:        trajectory.ProfileSpline,
//	    EnableParallel: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	traj, err := g.Generate(waypoints, times)
//
// # Sample Layout
//
// Constant-velocity and trapezoidal generators count samples per segment:
// a segment of duration dt receives floor(dt*frequency) samples, one
// control period apart, the first of which is its own start waypoint. The
// final waypoint is appended once, so the table has
// sum(floor(dt*frequency))+1 columns. A segment shorter
// than one control period contributes no samples. Layouts wider than
// [MaxSamples] columns are rejected.
//
// Spline generators count samples once over the whole trajectory:
// floor(T*frequency)+1 columns evenly spaced from the first to the last
// waypoint time inclusive.
//
// Use [SampleCount] to size buffers and [Generator.SampleTimes] to recover
// the instant of each column.
//
// # Profiles
//
//   - [ProfileConstVelocity]: q(t) = q0 + (qf-q0)*t/dt inside each segment.
//   - [ProfileTrapezoidal]: accelerate for DutyCycle*dt, cruise, then
//     decelerate for DutyCycle*dt. The cruise velocity is chosen so that the
//     segment ends exactly on the next waypoint. DutyCycle 0 reproduces
//     [ProfileConstVelocity]; 0.5 gives a triangular velocity profile.
//   - [ProfileSpline]: one clamped cubic spline per joint through all
//     waypoints.
//
// # Errors
//
// All validation failures wrap [ErrInvalidInput] and are reported before
// any output is allocated. Configuration errors from [New] wrap
// [ErrInvalidConfig], which itself wraps [ErrInvalidInput].
//
// # Thread Safety
//
// Generators hold no mutable state. A single [Generator] may be used by any
// number of goroutines.
package trajectory
