package trajectory

// Input limits
const (
	// MinFrequency is the lowest accepted control frequency in Hz.
	MinFrequency = 5.0

	// MinDutyCycle and MaxDutyCycle bound the trapezoidal ramp fraction.
	MinDutyCycle = 0.0
	MaxDutyCycle = 0.5

	// DefaultDutyCycle is the ramp fraction used by the CLI when none is given.
	DefaultDutyCycle = 0.25

	// MaxSamples caps the columns of one generated trajectory. At 1 kHz it
	// allows a little over four and a half hours of motion.
	MaxSamples = 1 << 24

	minWaypoints = 2 // A trajectory needs at least one segment
	minJoints    = 1
)
