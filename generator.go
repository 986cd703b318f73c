package trajectory

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-joint-trajectory/internal/engine"
	"github.com/tphakala/go-joint-trajectory/internal/mathutil"
	"github.com/tphakala/go-joint-trajectory/internal/schedule"
	"github.com/tphakala/go-joint-trajectory/internal/simdops"
)

// generator implements Generator on top of a single-joint engine profile.
// Each joint is sampled independently into its own output row.
type generator struct {
	config  Config
	profile engine.JointProfile
	logger  *zap.Logger
}

// newGenerator creates a generator for a validated configuration.
func newGenerator(config *Config) (*generator, error) {
	profile, err := jointProfileFor(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &generator{
		config:  *config,
		profile: profile,
		logger:  logger.With(zap.String("profile", config.Profile.String())),
	}
	g.config.Logger = nil
	return g, nil
}

// Generate samples the trajectory through waypoints.
func (g *generator) Generate(waypoints mat.Matrix, times []float64) (*mat.Dense, error) {
	joints, err := validateWaypoints(waypoints, times)
	if err != nil {
		return nil, err
	}

	plan, err := planFor(g.config.Profile, times, g.config.Frequency)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(joints, plan.Total, nil)

	if !g.config.EnableParallel || joints <= 1 {
		for j := range joints {
			if err := g.sampleJoint(out, waypoints, plan, j); err != nil {
				return nil, err
			}
		}
	} else {
		// Rows are disjoint, so joints can be written concurrently.
		var eg errgroup.Group
		for j := range joints {
			eg.Go(func() error {
				return g.sampleJoint(out, waypoints, plan, j)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	g.logger.Debug("generated trajectory",
		zap.Int("joints", joints),
		zap.Int("waypoints", len(times)),
		zap.Int("samples", plan.Total),
		zap.Float64("frequency", g.config.Frequency),
		zap.Bool("parallel", g.config.EnableParallel))

	return out, nil
}

// sampleJoint fills row j of out.
func (g *generator) sampleJoint(out *mat.Dense, waypoints mat.Matrix, plan *schedule.Plan, j int) error {
	positions := mat.Row(nil, j, waypoints)
	if err := g.profile.SampleJoint(out.RawRowView(j), positions, plan); err != nil {
		return fmt.Errorf("joint %d: %w", j, err)
	}
	return nil
}

// SampleTimes returns the instant of every column Generate would emit.
func (g *generator) SampleTimes(times []float64) ([]float64, error) {
	if err := validateTimes(times); err != nil {
		return nil, err
	}
	plan, err := planFor(g.config.Profile, times, g.config.Frequency)
	if err != nil {
		return nil, err
	}
	return plan.SampleTimes(), nil
}

// Profile returns the interpolation profile.
func (g *generator) Profile() Profile {
	return g.config.Profile
}

// Frequency returns the control frequency in Hz.
func (g *generator) Frequency() float64 {
	return g.config.Frequency
}

// GetInfo returns information about the generator.
func (g *generator) GetInfo() Info {
	info := Info{
		Profile:   g.config.Profile.String(),
		Frequency: g.config.Frequency,
		Layout:    g.profile.Layout().String(),
		Parallel:  g.config.EnableParallel,
		SIMDType:  simdops.Info(),
	}
	if g.config.Profile == ProfileTrapezoidal {
		info.DutyCycle = g.config.DutyCycle
	}
	return info
}

// validateWaypoints checks waypoints and times against each other and
// returns the joint count.
func validateWaypoints(waypoints mat.Matrix, times []float64) (int, error) {
	if waypoints == nil {
		return 0, fmt.Errorf("%w: waypoints are nil", ErrInvalidInput)
	}
	if d, ok := waypoints.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return 0, fmt.Errorf("%w: waypoints are empty", ErrInvalidInput)
	}

	joints, count := waypoints.Dims()
	if joints < minJoints {
		return 0, fmt.Errorf("%w: waypoints need at least %d joint row", ErrInvalidInput, minJoints)
	}
	if count < minWaypoints {
		return 0, fmt.Errorf("%w: need at least %d waypoints, got %d", ErrInvalidInput, minWaypoints, count)
	}
	if len(times) != count {
		return 0, fmt.Errorf("%w: %d times for %d waypoints", ErrInvalidInput, len(times), count)
	}
	if err := validateTimes(times); err != nil {
		return 0, err
	}

	for j := range joints {
		for k := range count {
			if v := waypoints.At(j, k); !mathutil.IsFinite(v) {
				return 0, fmt.Errorf("%w: waypoint (%d,%d) is %v", ErrInvalidInput, j, k, v)
			}
		}
	}

	return joints, nil
}

// validateTimes checks the time sequence on its own.
func validateTimes(times []float64) error {
	if len(times) < minWaypoints {
		return fmt.Errorf("%w: need at least %d times, got %d", ErrInvalidInput, minWaypoints, len(times))
	}
	if !mathutil.AllFinite(times) {
		return fmt.Errorf("%w: times must be finite", ErrInvalidInput)
	}
	if !mathutil.StrictlyIncreasing(times) {
		return fmt.Errorf("%w: times must be strictly increasing", ErrInvalidInput)
	}
	return nil
}
