// Package dataset reads and writes reference trajectory datasets.
//
// A dataset records, for one profile and control frequency, a list of cases:
// the waypoints and times given to a generator and the trajectory it was
// expected to produce. Datasets are stored as JSON:
//
//	{
//	  "profile": "spline",
//	  "frequency": 100,
//	  "cases": [
//	    {"name": "rise", "times": [0, 1], "waypoints": [[0, 1]], "trajectory": [[0, ...]]}
//	  ]
//	}
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-joint-trajectory/internal/config"
)

// MaxFileSize is the largest dataset file Load accepts.
const MaxFileSize = 64 * 1024 * 1024 // 64MB

// ErrInvalidDataset indicates a malformed dataset document.
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is a set of reference trajectories for one profile.
type Dataset struct {
	// Profile is the interpolation profile name that produced the cases.
	Profile string `json:"profile"`

	// Frequency is the control frequency in Hz.
	Frequency float64 `json:"frequency"`

	// Cases holds the reference trajectories in file order.
	Cases []Case `json:"cases"`
}

// Case is one reference trajectory.
type Case struct {
	// Name identifies the case in reports.
	Name string `json:"name"`

	// Times holds the instant each waypoint is reached.
	Times []float64 `json:"times"`

	// WaypointRows holds one row of angles per joint.
	WaypointRows [][]float64 `json:"waypoints"`

	// DutyCycle is the trapezoidal ramp fraction used, if any.
	DutyCycle *float64 `json:"duty_cycle,omitempty"`

	// TrajectoryRows holds the expected samples, one row per joint.
	TrajectoryRows [][]float64 `json:"trajectory"`
}

// NewCase builds a case from matrices.
func NewCase(name string, waypoints mat.Matrix, times []float64, dutyCycle *float64, traj mat.Matrix) Case {
	return Case{
		Name:           name,
		Times:          append([]float64(nil), times...),
		WaypointRows:   config.RowsFromDense(waypoints),
		DutyCycle:      dutyCycle,
		TrajectoryRows: config.RowsFromDense(traj),
	}
}

// Waypoints returns the case waypoints as a joints x waypoints matrix.
func (c *Case) Waypoints() *mat.Dense {
	return config.DenseFromRows(c.WaypointRows)
}

// Reference returns the expected trajectory as a joints x samples matrix.
func (c *Case) Reference() *mat.Dense {
	return config.DenseFromRows(c.TrajectoryRows)
}

// Joints returns the number of joint rows in the case waypoints.
func (c *Case) Joints() int {
	return len(c.WaypointRows)
}

// Validate checks the shape of a case.
func (c *Case) Validate() error {
	if len(c.WaypointRows) == 0 {
		return fmt.Errorf("%w: case %q has no joints", ErrInvalidDataset, c.Name)
	}
	if err := checkRows(c.WaypointRows, len(c.Times)); err != nil {
		return fmt.Errorf("%w: case %q waypoints: %w", ErrInvalidDataset, c.Name, err)
	}
	if len(c.TrajectoryRows) == 0 || len(c.TrajectoryRows[0]) == 0 {
		return fmt.Errorf("%w: case %q has an empty trajectory", ErrInvalidDataset, c.Name)
	}
	if len(c.TrajectoryRows) != len(c.WaypointRows) {
		return fmt.Errorf("%w: case %q trajectory has %d joints, waypoints have %d",
			ErrInvalidDataset, c.Name, len(c.TrajectoryRows), len(c.WaypointRows))
	}
	if err := checkRows(c.TrajectoryRows, len(c.TrajectoryRows[0])); err != nil {
		return fmt.Errorf("%w: case %q trajectory: %w", ErrInvalidDataset, c.Name, err)
	}
	return nil
}

// checkRows verifies every row holds n values.
func checkRows(rows [][]float64, n int) error {
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), n)
		}
	}
	return nil
}

// Validate checks the dataset and every case.
func (d *Dataset) Validate() error {
	if d.Profile == "" {
		return fmt.Errorf("%w: missing profile", ErrInvalidDataset)
	}
	if d.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive", ErrInvalidDataset)
	}
	for i := range d.Cases {
		if err := d.Cases[i].Validate(); err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
	}
	return nil
}

// Append adds a case, replacing any existing case with the same name.
func (d *Dataset) Append(c Case) {
	for i := range d.Cases {
		if d.Cases[i].Name == c.Name {
			d.Cases[i] = c
			return
		}
	}
	d.Cases = append(d.Cases, c)
}

// Load reads a dataset from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func Load(path string) (*Dataset, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("dataset file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset file: %w", err)
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("dataset file too large: %d bytes (max %d)", fileInfo.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// LoadOrNew loads the dataset at path, or returns an empty dataset for
// profile and frequency when the file does not exist.
func LoadOrNew(path, profile string, frequency float64) (*Dataset, error) {
	d, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Dataset{Profile: profile, Frequency: frequency}, nil
	}
	if err != nil {
		return nil, err
	}
	if d.Profile != profile || d.Frequency != frequency {
		return nil, fmt.Errorf("%w: dataset is %s at %v Hz, request is %s at %v Hz",
			ErrInvalidDataset, d.Profile, d.Frequency, profile, frequency)
	}
	return d, nil
}

// Save writes the dataset to path as JSON.
func Save(path string, d *Dataset) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return fmt.Errorf("dataset file must have .json extension, got %q", ext)
	}
	if err := d.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
