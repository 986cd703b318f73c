// Package engine implements the per-joint trajectory sampling algorithms.
//
// Each profile fills one row of the output table from the waypoint angles of
// a single joint and a column layout produced by package schedule. Profiles
// hold no mutable state, so one value may sample any number of joints
// concurrently.
package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-joint-trajectory/internal/schedule"
)

// JointProfile samples the trajectory of a single joint.
type JointProfile interface {
	// Name identifies the profile.
	Name() string

	// Layout returns the column layout the profile expects.
	Layout() schedule.Kind

	// SampleJoint writes the samples of one joint into dst.
	// positions holds the joint angle at each plan time and dst must be
	// plan.Total long.
	SampleJoint(dst, positions []float64, plan *schedule.Plan) error
}

// Errors returned by profiles when handed inconsistent buffers.
var (
	// ErrLayoutMismatch indicates a plan built with the wrong sample-count rule.
	ErrLayoutMismatch = errors.New("plan layout does not match profile")

	// ErrShapeMismatch indicates dst or positions disagree with the plan.
	ErrShapeMismatch = errors.New("buffer shape does not match plan")
)

// checkShape verifies that the buffers agree with the plan.
func checkShape(p JointProfile, dst, positions []float64, plan *schedule.Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: nil plan", ErrShapeMismatch)
	}
	if plan.Kind != p.Layout() {
		return fmt.Errorf("%w: %s profile needs a %s plan, got %s",
			ErrLayoutMismatch, p.Name(), p.Layout(), plan.Kind)
	}
	if len(positions) != len(plan.Times) {
		return fmt.Errorf("%w: %d positions for %d waypoint times",
			ErrShapeMismatch, len(positions), len(plan.Times))
	}
	if len(dst) != plan.Total {
		return fmt.Errorf("%w: destination holds %d samples, plan needs %d",
			ErrShapeMismatch, len(dst), plan.Total)
	}
	return nil
}
