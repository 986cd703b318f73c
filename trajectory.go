package trajectory

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-joint-trajectory/internal/schedule"
)

// Generator turns joint-space waypoints into a dense trajectory table.
// Implementations hold no mutable state and are safe for concurrent use.
type Generator interface {
	// Generate samples the trajectory through waypoints.
	// waypoints has one row per joint and one column per waypoint, times
	// holds the instant each waypoint is reached. The result has one row per
	// joint and one column per control tick; a fresh matrix is returned on
	// every call and the inputs are never modified.
	Generate(waypoints mat.Matrix, times []float64) (*mat.Dense, error)

	// SampleTimes returns the instant of every column Generate would emit
	// for times.
	SampleTimes(times []float64) ([]float64, error)

	// Profile returns the interpolation profile in use.
	Profile() Profile

	// Frequency returns the control frequency in Hz.
	Frequency() float64
}

// Profile selects the interpolation law between waypoints.
type Profile int

const (
	// ProfileConstVelocity moves each joint at constant velocity within a
	// segment. Position is continuous, velocity jumps at waypoints.
	ProfileConstVelocity Profile = iota

	// ProfileTrapezoidal accelerates, cruises, then decelerates within each
	// segment, so every joint starts and stops each segment at rest.
	ProfileTrapezoidal

	// ProfileSpline fits one clamped cubic spline per joint through all
	// waypoints. The curve is C2 with zero velocity at both ends.
	ProfileSpline
)

// String returns the profile name used in files and on the command line.
func (p Profile) String() string {
	switch p {
	case ProfileConstVelocity:
		return "const-velocity"
	case ProfileTrapezoidal:
		return "trapezoidal"
	case ProfileSpline:
		return "spline"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile returns the profile with the given name. Matching ignores
// case, and a few aliases are accepted ("linear", "trapezoid", "cubic").
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "const-velocity", "constvelocity", "linear":
		return ProfileConstVelocity, nil
	case "trapezoidal", "trapezoidal-velocity", "trapezoid":
		return ProfileTrapezoidal, nil
	case "spline", "cubic", "cubic-spline":
		return ProfileSpline, nil
	default:
		return 0, fmt.Errorf("%w: unknown profile %q", ErrInvalidConfig, name)
	}
}

// Config holds trajectory generation settings.
type Config struct {
	// Frequency is the control frequency in Hz. Must be finite and at
	// least 5 Hz.
	Frequency float64

	// Profile selects the interpolation law.
	Profile Profile

	// DutyCycle is the fraction of each segment spent on each ramp of a
	// trapezoidal profile, in [0, 0.5]. Ignored by other profiles.
	// 0 degenerates to constant velocity, 0.5 leaves no cruise phase.
	DutyCycle float64

	// EnableParallel samples joints concurrently using goroutines.
	// The output is identical to sequential generation.
	// Has no effect on single-joint input.
	EnableParallel bool

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// Common errors returned by generators.
var (
	// ErrInvalidInput indicates waypoints, times, or settings that violate
	// the input contract. Every validation error wraps it.
	ErrInvalidInput = errors.New("invalid trajectory input")

	// ErrInvalidConfig indicates invalid generator configuration.
	ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", ErrInvalidInput)
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if math.IsNaN(c.Frequency) || math.IsInf(c.Frequency, 0) {
		return fmt.Errorf("%w: frequency must be finite", ErrInvalidConfig)
	}

	if c.Frequency < MinFrequency {
		return fmt.Errorf("%w: frequency %v Hz is below the %v Hz minimum",
			ErrInvalidConfig, c.Frequency, MinFrequency)
	}

	switch c.Profile {
	case ProfileConstVelocity, ProfileSpline:
	case ProfileTrapezoidal:
		if math.IsNaN(c.DutyCycle) || c.DutyCycle < MinDutyCycle || c.DutyCycle > MaxDutyCycle {
			return fmt.Errorf("%w: duty cycle %v must be in [%v, %v]",
				ErrInvalidConfig, c.DutyCycle, MinDutyCycle, MaxDutyCycle)
		}
	default:
		return fmt.Errorf("%w: unknown profile %d", ErrInvalidConfig, int(c.Profile))
	}

	return nil
}

// New creates a generator with the specified configuration.
// The configuration is copied; later changes to config have no effect.
func New(config *Config) (Generator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newGenerator(config)
}

// SampleCount returns the number of columns a profile emits for times at
// frequency, without generating the trajectory.
func SampleCount(profile Profile, times []float64, frequency float64) (int, error) {
	cfg := Config{Frequency: frequency, Profile: profile}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := validateTimes(times); err != nil {
		return 0, err
	}
	plan, err := planFor(profile, times, frequency)
	if err != nil {
		return 0, err
	}
	return plan.Total, nil
}

// Info describes a generator.
type Info struct {
	// Profile is the interpolation profile name.
	Profile string

	// Frequency is the control frequency in Hz.
	Frequency float64

	// DutyCycle is the ramp fraction of a trapezoidal generator.
	DutyCycle float64

	// Layout is the sample-count rule, "segmented" or "uniform".
	Layout string

	// Parallel reports whether joints are sampled concurrently.
	Parallel bool

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// infoProvider is an optional interface for generators that can describe
// themselves in detail.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a generator.
// Generators that do not implement infoProvider get a summary built from
// the Generator methods.
func GetInfo(g Generator) Info {
	if provider, ok := g.(infoProvider); ok {
		return provider.GetInfo()
	}

	return Info{
		Profile:   g.Profile().String(),
		Frequency: g.Frequency(),
		Layout:    layoutFor(g.Profile()).String(),
		SIMDType:  "unknown",
	}
}

// layoutFor returns the sample-count rule of a profile.
func layoutFor(p Profile) schedule.Kind {
	if p == ProfileSpline {
		return schedule.KindUniform
	}
	return schedule.KindSegmented
}

// planFor builds the column layout of profile p for validated times. Layouts
// wider than MaxSamples columns are rejected before anything is allocated.
func planFor(p Profile, times []float64, frequency float64) (*schedule.Plan, error) {
	kind := layoutFor(p)
	if n := columnEstimate(kind, times, frequency); !(n <= MaxSamples) {
		return nil, fmt.Errorf("%w: %.4g samples exceed the %d sample limit", ErrInvalidInput, n, MaxSamples)
	}
	if kind == schedule.KindUniform {
		return schedule.Uniform(times, frequency), nil
	}
	return schedule.Segmented(times, frequency), nil
}

// columnEstimate counts the columns of a layout in floating point, where a
// huge span cannot wrap around the way an int would.
func columnEstimate(kind schedule.Kind, times []float64, frequency float64) float64 {
	if kind == schedule.KindUniform {
		return math.Floor((times[len(times)-1]-times[0])*frequency) + 1
	}
	total := 1.0
	for s := 1; s < len(times); s++ {
		total += math.Floor((times[s] - times[s-1]) * frequency)
	}
	return total
}
