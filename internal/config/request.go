// Package config loads trajectory request files for the command-line tools.
//
// A request is a JSON document naming the profile, control frequency and
// waypoints of one trajectory:
//
//	{
//	  "profile": "trapezoidal",
//	  "frequency": 125,
//	  "duty_cycle": 0.25,
//	  "times": [0, 1, 2.5],
//	  "waypoints": [[0, 1, 0], [0, -0.5, 0.3]]
//	}
//
// waypoints holds one row per joint, each with one angle per entry of times.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	trajectory "github.com/tphakala/go-joint-trajectory"
)

// MaxFileSize is the largest request file LoadRequest accepts.
const MaxFileSize = 1 * 1024 * 1024 // 1MB

// ErrInvalidRequest indicates a malformed request document.
var ErrInvalidRequest = errors.New("invalid trajectory request")

// Request describes one trajectory to generate.
type Request struct {
	// Profile is the interpolation profile name, see trajectory.ParseProfile.
	Profile string `json:"profile"`

	// Frequency is the control frequency in Hz.
	Frequency float64 `json:"frequency"`

	// DutyCycle is the trapezoidal ramp fraction. Nil selects
	// trajectory.DefaultDutyCycle.
	DutyCycle *float64 `json:"duty_cycle,omitempty"`

	// Parallel samples joints concurrently.
	Parallel bool `json:"parallel,omitempty"`

	// Times holds the instant each waypoint is reached, in seconds.
	Times []float64 `json:"times"`

	// Waypoints holds one row of joint angles per joint, in radians.
	Waypoints [][]float64 `json:"waypoints"`
}

// LoadRequest loads a Request from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadRequest(path string) (*Request, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("request file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat request file: %w", err)
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("request file too large: %d bytes (max %d)", fileInfo.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	return &req, nil
}

// Validate checks the structure of the request. Numeric limits such as the
// minimum frequency are left to the trajectory package.
func (r *Request) Validate() error {
	if _, err := trajectory.ParseProfile(r.Profile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if len(r.Waypoints) == 0 {
		return fmt.Errorf("%w: waypoints must have at least one joint", ErrInvalidRequest)
	}
	for j, row := range r.Waypoints {
		if len(row) != len(r.Times) {
			return fmt.Errorf("%w: joint %d has %d waypoints for %d times",
				ErrInvalidRequest, j, len(row), len(r.Times))
		}
	}
	return nil
}

// Config returns the generator configuration of the request.
// logger may be nil.
func (r *Request) Config(logger *zap.Logger) (*trajectory.Config, error) {
	profile, err := trajectory.ParseProfile(r.Profile)
	if err != nil {
		return nil, err
	}

	duty := trajectory.DefaultDutyCycle
	if r.DutyCycle != nil {
		duty = *r.DutyCycle
	}

	cfg := &trajectory.Config{
		Frequency:      r.Frequency,
		Profile:        profile,
		DutyCycle:      duty,
		EnableParallel: r.Parallel,
		Logger:         logger,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WaypointMatrix returns the waypoints as a joints x waypoints matrix.
// The request must be valid.
func (r *Request) WaypointMatrix() *mat.Dense {
	return DenseFromRows(r.Waypoints)
}

// DenseFromRows copies equal-length rows into a new matrix.
func DenseFromRows(rows [][]float64) *mat.Dense {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

// RowsFromDense copies m into a slice of rows.
func RowsFromDense(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := range r {
		rows[i] = mat.Row(make([]float64, c), i, m)
	}
	return rows
}

// Save writes the request to path as indented JSON.
func (r *Request) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}
	return nil
}
