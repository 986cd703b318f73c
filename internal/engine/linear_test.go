package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-joint-trajectory/internal/schedule"
	"github.com/tphakala/go-joint-trajectory/internal/testutil"
)

func TestConstVelocityProfile_RiseAndFall(t *testing.T) {
	plan := schedule.Segmented([]float64{0, 1, 2}, 10)
	dst := make([]float64, plan.Total)

	err := NewConstVelocityProfile().SampleJoint(dst, []float64{0, 1, 0}, plan)
	require.NoError(t, err)
	require.Len(t, dst, 21)

	for i := range 10 {
		assert.InDelta(t, float64(i)/10, dst[i], testutil.DefaultTolerance, "rising sample %d", i)
		assert.InDelta(t, 1-float64(i)/10, dst[10+i], testutil.DefaultTolerance, "falling sample %d", 10+i)
	}
	assert.Equal(t, 0.0, dst[0], "first sample is the first waypoint")
	assert.Equal(t, 1.0, dst[10], "second segment starts on its waypoint")
	assert.Equal(t, 0.0, dst[20], "terminal sample is the last waypoint")
}

func TestConstVelocityProfile_SegmentStartsHitWaypoints(t *testing.T) {
	times := []float64{0, 0.55, 1.3, 2.0}
	positions := []float64{-0.4, 1.2, 0.7, 2.5}
	plan := schedule.Segmented(times, 50)
	dst := make([]float64, plan.Total)

	require.NoError(t, NewConstVelocityProfile().SampleJoint(dst, positions, plan))

	for _, seg := range plan.Segments {
		assert.InDelta(t, positions[seg.Index], dst[seg.Offset], 1e-9, "segment %d start", seg.Index)
		// The sample after the segment is the next waypoint (next segment start or terminal)
		assert.InDelta(t, positions[seg.Index+1], dst[seg.Offset+seg.Samples], 1e-9, "segment %d end", seg.Index)
	}
}

func TestConstVelocityProfile_ConstantStepWithinSegment(t *testing.T) {
	plan := schedule.Segmented([]float64{0, 2}, 5)
	dst := make([]float64, plan.Total)
	require.NoError(t, NewConstVelocityProfile().SampleJoint(dst, []float64{1, 3}, plan))

	testutil.AssertMonotonic(t, dst)
	for i := 1; i < len(dst); i++ {
		assert.InDelta(t, 0.2, dst[i]-dst[i-1], 1e-12)
	}
}

func TestConstVelocityProfile_ZeroSampleSegment(t *testing.T) {
	// Middle segment is 0.05 s long, below one tick at 10 Hz
	plan := schedule.Segmented([]float64{0, 1, 1.05, 2}, 10)
	dst := make([]float64, plan.Total)

	require.NoError(t, NewConstVelocityProfile().SampleJoint(dst, []float64{0, 1, 5, 2}, plan))
	testutil.AssertNoNaNOrInf(t, dst)
	assert.Equal(t, 5.0, dst[plan.Segments[2].Offset], "third segment starts on its waypoint")
	assert.Equal(t, 2.0, dst[len(dst)-1])
}

func TestConstVelocityProfile_ShapeErrors(t *testing.T) {
	p := NewConstVelocityProfile()
	plan := schedule.Segmented([]float64{0, 1}, 10)

	err := p.SampleJoint(make([]float64, 3), []float64{0, 1}, plan)
	require.ErrorIs(t, err, ErrShapeMismatch)

	err = p.SampleJoint(make([]float64, plan.Total), []float64{0, 1, 2}, plan)
	require.ErrorIs(t, err, ErrShapeMismatch)

	err = p.SampleJoint(make([]float64, plan.Total), []float64{0, 1}, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)

	uniform := schedule.Uniform([]float64{0, 1}, 10)
	err = p.SampleJoint(make([]float64, uniform.Total), []float64{0, 1}, uniform)
	require.ErrorIs(t, err, ErrLayoutMismatch)
}
