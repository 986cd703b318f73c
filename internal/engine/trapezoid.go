package engine

import (
	"math"

	"github.com/tphakala/go-joint-trajectory/internal/schedule"
)

// Phase identifies the part of a trapezoidal segment a sample falls in.
type Phase int

const (
	// PhaseRampUp is the constant-acceleration start of a segment.
	PhaseRampUp Phase = iota

	// PhaseCruise is the constant-velocity middle of a segment.
	PhaseCruise

	// PhaseRampDown is the constant-deceleration end of a segment.
	PhaseRampDown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRampUp:
		return "ramp-up"
	case PhaseCruise:
		return "cruise"
	case PhaseRampDown:
		return "ramp-down"
	default:
		return "unknown"
	}
}

// TrapezoidSegment is the closed-form motion of one joint over one segment
// under a trapezoidal velocity profile.
//
// The joint accelerates uniformly for RampTime, cruises at PeakVelocity,
// then decelerates uniformly for RampTime, arriving at Qf at Duration. The
// area under the velocity trapezoid is PeakVelocity*(Duration-RampTime),
// which equals the displacement Qf-Q0.
type TrapezoidSegment struct {
	Q0           float64 // start angle
	Qf           float64 // end angle
	Duration     float64 // segment duration dt
	RampTime     float64 // acceleration (and deceleration) time tr
	PeakVelocity float64 // cruise velocity vm
}

// NewTrapezoidSegment builds the segment model for a move from q0 to qf over
// duration, spending dutyCycle*duration on each ramp. duration must be
// positive and dutyCycle in [0, 0.5].
func NewTrapezoidSegment(q0, qf, duration, dutyCycle float64) TrapezoidSegment {
	rampTime := dutyCycle * duration
	return TrapezoidSegment{
		Q0:           q0,
		Qf:           qf,
		Duration:     duration,
		RampTime:     rampTime,
		PeakVelocity: (qf - q0) / (duration - rampTime),
	}
}

// Acceleration returns the signed acceleration magnitude used on the ramps,
// vm/tr, or 0 when the ramps vanish.
func (s TrapezoidSegment) Acceleration() float64 {
	if s.RampTime == 0 {
		return 0
	}
	return s.PeakVelocity / s.RampTime
}

// PhaseAt returns the phase containing segment-local time t.
func (s TrapezoidSegment) PhaseAt(t float64) Phase {
	switch {
	case t < s.RampTime:
		return PhaseRampUp
	case t < s.Duration-s.RampTime:
		return PhaseCruise
	default:
		return PhaseRampDown
	}
}

// Position returns the joint angle at segment-local time t. Times outside
// [0, Duration] are clamped, so Position(0) == Q0 and
// Position(Duration) == Qf exactly.
func (s TrapezoidSegment) Position(t float64) float64 {
	if t <= 0 {
		return s.Q0
	}
	if t >= s.Duration {
		return s.Qf
	}
	if s.RampTime == 0 {
		return s.cruise(t)
	}
	return s.positionIn(s.PhaseAt(t), t)
}

// Velocity returns the joint velocity at segment-local time t.
func (s TrapezoidSegment) Velocity(t float64) float64 {
	if t < 0 || t > s.Duration {
		return 0
	}
	if s.RampTime == 0 {
		return s.PeakVelocity
	}
	switch s.PhaseAt(t) {
	case PhaseRampUp:
		return s.Acceleration() * t
	case PhaseCruise:
		return s.PeakVelocity
	default:
		return s.Acceleration() * (s.Duration - t)
	}
}

// AccelerationAt returns the joint acceleration at segment-local time t.
func (s TrapezoidSegment) AccelerationAt(t float64) float64 {
	if t < 0 || t > s.Duration || s.RampTime == 0 {
		return 0
	}
	switch s.PhaseAt(t) {
	case PhaseRampUp:
		return s.Acceleration()
	case PhaseCruise:
		return 0
	default:
		return -s.Acceleration()
	}
}

// Displacement returns the area under the velocity trapezoid,
// PeakVelocity*(Duration-RampTime). It matches Qf-Q0 up to rounding.
func (s TrapezoidSegment) Displacement() float64 {
	return s.PeakVelocity * (s.Duration - s.RampTime)
}

// positionIn evaluates the law of the given phase at t, without clamping.
func (s TrapezoidSegment) positionIn(phase Phase, t float64) float64 {
	switch phase {
	case PhaseRampUp:
		return s.Q0 + rampHalf*s.Acceleration()*t*t
	case PhaseRampDown:
		remaining := s.Duration - t
		return s.Qf - rampHalf*s.Acceleration()*remaining*remaining
	default:
		return s.cruise(t)
	}
}

// cruise is the constant-velocity law q0 + vm*(t - tr/2).
func (s TrapezoidSegment) cruise(t float64) float64 {
	return s.Q0 + s.PeakVelocity*(t-rampHalf*s.RampTime)
}

// RampSamples returns floor(dutyCycle*samples), the number of samples given
// to each ramp of a segment.
func RampSamples(dutyCycle float64, samples int) int {
	return int(math.Floor(dutyCycle * float64(samples)))
}

// PhaseOf classifies sample i of a segment with the given sample and ramp
// counts. The split is by index: the first rampSamples samples ramp up, the
// last rampSamples ramp down, the rest cruise.
func PhaseOf(i, samples, rampSamples int) Phase {
	switch {
	case i < rampSamples:
		return PhaseRampUp
	case i >= samples-rampSamples:
		return PhaseRampDown
	default:
		return PhaseCruise
	}
}

// TrapezoidalProfile moves each joint with a ramp-up / cruise / ramp-down
// velocity profile inside every segment. Velocity is continuous inside a
// segment and returns to zero at interior waypoints whenever DutyCycle > 0.
// With DutyCycle == 0 the ramps vanish and the profile reduces to
// ConstVelocityProfile.
type TrapezoidalProfile struct {
	// DutyCycle is the fraction of each segment spent on each ramp, in [0, 0.5].
	DutyCycle float64
}

// NewTrapezoidalProfile creates a trapezoidal profile with the given duty cycle.
func NewTrapezoidalProfile(dutyCycle float64) *TrapezoidalProfile {
	return &TrapezoidalProfile{DutyCycle: dutyCycle}
}

// Name returns the profile name.
func (p *TrapezoidalProfile) Name() string {
	return trapezoidalName
}

// Layout returns schedule.KindSegmented.
func (p *TrapezoidalProfile) Layout() schedule.Kind {
	return schedule.KindSegmented
}

// SampleJoint fills dst segment by segment using the same column layout and
// sample instants as ConstVelocityProfile, including the terminal
// final-waypoint column. The phase law of each sample is picked by index.
func (p *TrapezoidalProfile) SampleJoint(dst, positions []float64, plan *schedule.Plan) error {
	if err := checkShape(p, dst, positions, plan); err != nil {
		return err
	}

	for _, seg := range plan.Segments {
		n := seg.Samples
		if n == 0 {
			continue
		}

		motion := NewTrapezoidSegment(positions[seg.Index], positions[seg.Index+1], seg.Duration(), p.DutyCycle)
		rampSamples := RampSamples(p.DutyCycle, n)

		row := dst[seg.Offset : seg.Offset+n]
		for i := range row {
			row[i] = motion.positionIn(PhaseOf(i, n, rampSamples), plan.LocalTime(i))
		}
	}

	dst[plan.Terminal()] = positions[len(positions)-1]
	return nil
}
