// Package schedule lays out the sample columns of a trajectory: how many
// control ticks each segment receives, where they land in the output table,
// and at which instant every column is sampled.
//
// Two layouts exist. Segmented plans count ticks per segment,
// floor(dt*frequency), and append one terminal column for the final
// waypoint. Uniform plans count ticks once over the whole trajectory,
// floor(T*frequency)+1, for profiles whose curve is continuous across
// waypoints. The two rules are kept distinct on purpose: recorded reference
// trajectories are keyed to each profile's own rule.
//
// Plans assume validated input (at least two strictly increasing times and a
// positive frequency).
package schedule

import (
	"github.com/tphakala/go-joint-trajectory/internal/mathutil"
)

// Kind identifies how a plan distributes samples.
type Kind int

const (
	// KindSegmented counts samples per segment and appends a terminal sample.
	KindSegmented Kind = iota

	// KindUniform counts samples once across the whole trajectory.
	KindUniform
)

// String returns the layout name.
func (k Kind) String() string {
	switch k {
	case KindSegmented:
		return "segmented"
	case KindUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Segment describes the samples of the interval between waypoints Index and
// Index+1.
type Segment struct {
	// Index is the segment number (0-based).
	Index int

	// StartTime and EndTime are the waypoint times bounding the segment.
	StartTime float64
	EndTime   float64

	// Offset is the output column holding the segment's first sample.
	Offset int

	// Samples is the number of ticks allotted to the segment, floor(dt*f).
	Samples int
}

// Duration returns EndTime - StartTime.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Ticks returns Duration()*frequency, the segment length in control
// periods. Samples is its floor.
func (s Segment) Ticks(frequency float64) float64 {
	return s.Duration() * frequency
}

// Plan is the column layout of one trajectory.
type Plan struct {
	// Kind is the sample-count rule used.
	Kind Kind

	// Frequency is the control frequency in Hz.
	Frequency float64

	// Times is a copy of the waypoint times.
	Times []float64

	// Segments holds per-segment layout. Empty for uniform plans.
	Segments []Segment

	// Grid holds the evaluation instants of a uniform plan, evenly spaced
	// from the first to the last waypoint time inclusive. Nil for segmented
	// plans.
	Grid []float64

	// Total is the number of output columns.
	Total int
}

// Segmented builds a per-segment plan with a terminal column.
func Segmented(times []float64, frequency float64) *Plan {
	numSegments := len(times) - 1
	plan := &Plan{
		Kind:      KindSegmented,
		Frequency: frequency,
		Times:     append([]float64(nil), times...),
		Segments:  make([]Segment, 0, max(numSegments, 0)),
	}

	offset := 0
	for s := range numSegments {
		n := mathutil.SampleCount(times[s+1]-times[s], frequency)
		plan.Segments = append(plan.Segments, Segment{
			Index:     s,
			StartTime: times[s],
			EndTime:   times[s+1],
			Offset:    offset,
			Samples:   n,
		})
		offset += n
	}

	plan.Total = offset + terminalSamples
	return plan
}

// Uniform builds a whole-trajectory plan of floor(T*frequency)+1 columns.
func Uniform(times []float64, frequency float64) *Plan {
	total := 0
	if len(times) > 0 {
		total = mathutil.SampleCount(times[len(times)-1]-times[0], frequency) + uniformEndpointSamples
	}

	plan := &Plan{
		Kind:      KindUniform,
		Frequency: frequency,
		Times:     append([]float64(nil), times...),
		Total:     total,
	}
	if total > 0 {
		plan.Grid = mathutil.Span(make([]float64, total), times[0], times[len(times)-1])
	}
	return plan
}

// LocalTime returns the time since segment start of sample i of a segmented
// plan. Samples sit one control period apart, so when a segment is not a
// whole number of periods long its last sample falls more than one period
// short of the next waypoint.
func (p *Plan) LocalTime(i int) float64 {
	if p.Frequency <= 0 {
		return 0
	}
	return float64(i) / p.Frequency
}

// Terminal returns the column of the appended final waypoint for segmented
// plans, or -1 for uniform plans.
func (p *Plan) Terminal() int {
	if p.Kind != KindSegmented {
		return -1
	}
	return p.Total - 1
}

// SampleTimes returns the absolute instant of every output column.
func (p *Plan) SampleTimes() []float64 {
	out := make([]float64, p.Total)
	if p.Total == 0 {
		return out
	}

	if p.Kind == KindUniform {
		copy(out, p.Grid)
		return out
	}

	for _, seg := range p.Segments {
		for i := range seg.Samples {
			out[seg.Offset+i] = seg.StartTime + p.LocalTime(i)
		}
	}
	out[p.Total-1] = p.Times[len(p.Times)-1]
	return out
}

// Layout constants
const (
	// Segmented plans append the final waypoint once
	terminalSamples = 1

	// Uniform plans include both trajectory end points
	uniformEndpointSamples = 1
)
