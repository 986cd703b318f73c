package engine

import (
	"github.com/tphakala/go-joint-trajectory/internal/mathutil"
	"github.com/tphakala/go-joint-trajectory/internal/schedule"
	"github.com/tphakala/go-joint-trajectory/internal/simdops"
)

// ConstVelocityProfile moves each joint at constant velocity between
// consecutive waypoints: q(t) = q0 + (qf-q0)*t/dt.
//
// Position is continuous at waypoints; velocity jumps.
type ConstVelocityProfile struct{}

// NewConstVelocityProfile creates a constant-velocity profile.
func NewConstVelocityProfile() *ConstVelocityProfile {
	return &ConstVelocityProfile{}
}

// Name returns the profile name.
func (p *ConstVelocityProfile) Name() string {
	return constVelocityName
}

// Layout returns schedule.KindSegmented.
func (p *ConstVelocityProfile) Layout() schedule.Kind {
	return schedule.KindSegmented
}

// SampleJoint fills dst segment by segment. Sample i of a segment is taken
// i control periods after its start, at fraction i/(frequency*dt) of the way
// to the next waypoint, so the first sample of every segment is exactly the
// start waypoint. The final waypoint is written once into the terminal
// column.
func (p *ConstVelocityProfile) SampleJoint(dst, positions []float64, plan *schedule.Plan) error {
	if err := checkShape(p, dst, positions, plan); err != nil {
		return err
	}

	for _, seg := range plan.Segments {
		if seg.Samples == 0 {
			continue
		}

		q0 := positions[seg.Index]
		qf := positions[seg.Index+1]

		row := dst[seg.Offset : seg.Offset+seg.Samples]
		mathutil.Fractions(row, seg.Ticks(plan.Frequency))
		simdops.Lerp(row, row, q0, qf-q0)
	}

	dst[plan.Terminal()] = positions[len(positions)-1]
	return nil
}
