// Package validate compares generated trajectories against a reference
// dataset.
//
// Every case of a dataset is regenerated with the dataset's profile and
// frequency (or overrides) and compared joint by joint. When the generated
// and reference tables disagree on sample count, both are brought onto the
// reference grid, evenly spaced from the first to the last waypoint time,
// by piecewise-linear interpolation before computing errors.
package validate

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	trajectory "github.com/tphakala/go-joint-trajectory"
	"github.com/tphakala/go-joint-trajectory/internal/dataset"
	"github.com/tphakala/go-joint-trajectory/internal/mathutil"
	"github.com/tphakala/go-joint-trajectory/internal/simdops"
)

// DefaultTolerance is the largest accepted per-sample deviation in radians.
const DefaultTolerance = 1e-6

// Errors reported per case.
var (
	// ErrJointMismatch indicates generated and reference tables disagree on joint count.
	ErrJointMismatch = errors.New("joint count mismatch")

	// ErrToleranceExceeded indicates a case deviates from its reference.
	ErrToleranceExceeded = errors.New("trajectory deviates from reference")
)

// Options control a validation run. The zero value validates with the
// dataset's own settings and DefaultTolerance.
type Options struct {
	// Profile overrides the dataset profile when non-empty.
	Profile string

	// Frequency overrides the dataset frequency when non-zero.
	Frequency float64

	// DutyCycle overrides every case's duty cycle when non-nil.
	DutyCycle *float64

	// Tolerance is the largest accepted absolute error. Zero selects
	// DefaultTolerance.
	Tolerance float64

	// PlotDir receives one comparison chart per case when non-empty.
	PlotDir string

	// Concurrency bounds the number of cases validated at once.
	// Zero uses GOMAXPROCS.
	Concurrency int

	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// JointError summarizes the deviation of one joint.
type JointError struct {
	Joint  int
	MaxAbs float64
	RMS    float64

	// Bias is the mean signed error, generated minus reference.
	Bias float64
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	// Name is the case name, or its 1-based position when unnamed.
	Name string

	// Samples and ReferenceSamples are the column counts of the two tables.
	Samples          int
	ReferenceSamples int

	// Resampled reports whether the tables were interpolated onto a common grid.
	Resampled bool

	// Joints holds per-joint errors. Empty when generation failed.
	Joints []JointError

	// MaxAbs is the largest absolute error over all joints.
	MaxAbs float64

	// Passed reports whether MaxAbs is within tolerance.
	Passed bool

	// PlotPath is the chart written for the case, if any.
	PlotPath string

	// Err describes why the case failed.
	Err error
}

// Report is the outcome of a validation run.
type Report struct {
	Profile   string
	Frequency float64
	Tolerance float64

	// Cases holds one result per dataset case, in dataset order.
	Cases []CaseResult
}

// Passed returns the number of passing cases.
func (r *Report) Passed() int {
	n := 0
	for i := range r.Cases {
		if r.Cases[i].Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing cases.
func (r *Report) Failed() int {
	return len(r.Cases) - r.Passed()
}

// Run validates every case of d. A failing case does not stop the run: the
// report always covers every case, and the returned error combines the
// errors of all failing cases. Errors in the options themselves are
// returned with a nil report.
func Run(d *dataset.Dataset, opts Options) (*Report, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dataset", dataset.ErrInvalidDataset)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	profileName := d.Profile
	if opts.Profile != "" {
		profileName = opts.Profile
	}
	profile, err := trajectory.ParseProfile(profileName)
	if err != nil {
		return nil, err
	}

	frequency := d.Frequency
	if opts.Frequency != 0 {
		frequency = opts.Frequency
	}

	tolerance := opts.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	// Reject bad frequencies once rather than in every case.
	if err := (&trajectory.Config{Frequency: frequency, Profile: trajectory.ProfileConstVelocity}).Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Profile:   profile.String(),
		Frequency: frequency,
		Tolerance: tolerance,
		Cases:     make([]CaseResult, len(d.Cases)),
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Case failures are recorded in the report, so workers never return an
	// error and one bad case cannot cancel the others.
	var eg errgroup.Group
	eg.SetLimit(limit)
	for i := range d.Cases {
		eg.Go(func() error {
			c := &d.Cases[i]
			res, generated, genTimes := runCase(c, i, profile, frequency, tolerance, opts)
			// Charts are drawn for every case that could be compared.
			if opts.PlotDir != "" && len(res.Joints) > 0 {
				path, err := writeCasePlot(opts.PlotDir, i, res.Name, profile, generated, genTimes, c)
				res.PlotPath = path
				res.Err = multierr.Append(res.Err, err)
			}
			report.Cases[i] = res
			return nil
		})
	}
	_ = eg.Wait()

	var errs error
	for i := range report.Cases {
		res := &report.Cases[i]
		if res.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("case %s: %w", res.Name, res.Err))
		}
		logger.Debug("validated case",
			zap.String("case", res.Name),
			zap.Bool("passed", res.Passed),
			zap.Float64("max_abs", res.MaxAbs),
			zap.Bool("resampled", res.Resampled))
	}

	logger.Info("validation finished",
		zap.String("profile", report.Profile),
		zap.Float64("frequency", frequency),
		zap.Int("passed", report.Passed()),
		zap.Int("failed", report.Failed()))

	return report, errs
}

// caseName returns the display name of case i.
func caseName(c *dataset.Case, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

// generateCase regenerates the trajectory of a case.
func generateCase(c *dataset.Case, profile trajectory.Profile, frequency float64, duty *float64) (*mat.Dense, trajectory.Generator, error) {
	cfg := &trajectory.Config{Frequency: frequency, Profile: profile}
	switch {
	case duty != nil:
		cfg.DutyCycle = *duty
	case c.DutyCycle != nil:
		cfg.DutyCycle = *c.DutyCycle
	}

	g, err := trajectory.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	out, err := g.Generate(c.Waypoints(), c.Times)
	if err != nil {
		return nil, nil, err
	}
	return out, g, nil
}

// runCase regenerates one case and compares it with its reference. The
// generated table and its sample times are returned for charting when the
// comparison ran.
func runCase(c *dataset.Case, i int, profile trajectory.Profile, frequency, tolerance float64, opts Options) (CaseResult, *mat.Dense, []float64) {
	res := CaseResult{Name: caseName(c, i)}

	generated, g, err := generateCase(c, profile, frequency, opts.DutyCycle)
	if err != nil {
		res.Err = err
		return res, nil, nil
	}

	reference := c.Reference()
	_, res.Samples = generated.Dims()
	_, res.ReferenceSamples = reference.Dims()

	genTimes, err := g.SampleTimes(c.Times)
	if err != nil {
		res.Err = err
		return res, nil, nil
	}

	cmp, err := Compare(generated, genTimes, reference, c.Times)
	if err != nil {
		res.Err = err
		return res, nil, nil
	}

	res.Joints = cmp.Joints
	res.MaxAbs = cmp.MaxAbs
	res.Resampled = cmp.Resampled
	res.Passed = cmp.MaxAbs <= tolerance
	if !res.Passed {
		res.Err = fmt.Errorf("%w: max error %.3g exceeds tolerance %.3g", ErrToleranceExceeded, cmp.MaxAbs, tolerance)
	}
	return res, generated, genTimes
}

// Comparison holds the per-joint errors between two trajectory tables.
type Comparison struct {
	Joints    []JointError
	MaxAbs    float64
	Resampled bool
}

// Compare measures the deviation of generated from reference.
// genTimes holds the instant of every generated column; reference columns
// are taken to be evenly spaced from times[0] to times[len(times)-1].
// Tables with different column counts are compared on the reference grid.
func Compare(generated *mat.Dense, genTimes []float64, reference *mat.Dense, times []float64) (*Comparison, error) {
	gj, gn := generated.Dims()
	rj, rn := reference.Dims()
	if gj != rj {
		return nil, fmt.Errorf("%w: generated %d joints, reference %d", ErrJointMismatch, gj, rj)
	}
	if len(genTimes) != gn {
		return nil, fmt.Errorf("%d sample times for %d generated samples", len(genTimes), gn)
	}

	cmp := &Comparison{Joints: make([]JointError, gj), Resampled: gn != rn}

	var grid []float64
	if cmp.Resampled {
		if len(times) < 2 {
			return nil, fmt.Errorf("cannot resample without a time span")
		}
		grid = mathutil.Span(make([]float64, rn), times[0], times[len(times)-1])
	}

	diff := make([]float64, rn)
	for j := range gj {
		ref := reference.RawRowView(j)
		gen := generated.RawRowView(j)

		if cmp.Resampled {
			resampled, err := resample(gen, genTimes, grid)
			if err != nil {
				return nil, fmt.Errorf("joint %d: %w", j, err)
			}
			gen = resampled
		}

		maxAbs := 0.0
		for i := range diff {
			diff[i] = gen[i] - ref[i]
			maxAbs = math.Max(maxAbs, math.Abs(diff[i]))
		}

		cmp.Joints[j] = JointError{
			Joint:  j,
			MaxAbs: maxAbs,
			RMS:    math.Sqrt(simdops.MeanSquare(diff)),
			Bias:   simdops.Mean(diff),
		}
		cmp.MaxAbs = math.Max(cmp.MaxAbs, maxAbs)
	}

	return cmp, nil
}

// resample evaluates the piecewise-linear curve through (xs, ys) at grid.
// Grid points outside xs clamp to the nearest end value.
func resample(ys, xs, grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	if len(xs) == 1 {
		for i := range out {
			out[i] = ys[0]
		}
		return out, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("failed to fit interpolant: %w", err)
	}

	lo, hi := xs[0], xs[len(xs)-1]
	for i, x := range grid {
		out[i] = pl.Predict(math.Min(math.Max(x, lo), hi))
	}
	return out, nil
}
