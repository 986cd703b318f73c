package trajectory

import (
	"fmt"

	"github.com/tphakala/go-joint-trajectory/internal/engine"
)

// jointProfileFor creates the single-joint engine profile for config.
func jointProfileFor(config *Config) (engine.JointProfile, error) {
	switch config.Profile {
	case ProfileConstVelocity:
		return engine.NewConstVelocityProfile(), nil
	case ProfileTrapezoidal:
		return engine.NewTrapezoidalProfile(config.DutyCycle), nil
	case ProfileSpline:
		return engine.NewSplineProfile(), nil
	default:
		return nil, fmt.Errorf("%w: unknown profile %d", ErrInvalidConfig, int(config.Profile))
	}
}
