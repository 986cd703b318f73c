package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	trajectory "github.com/tphakala/go-joint-trajectory"
	"github.com/tphakala/go-joint-trajectory/internal/config"
	"github.com/tphakala/go-joint-trajectory/internal/validate"
)

// Output constants
const (
	csvFloatPrecision = -1  // Shortest representation that round-trips
	csvFloatFormat    = 'g' // strconv float format
	writerBufferSize  = 256 * 1024
)

// result holds a generated trajectory and how it was produced.
type result struct {
	Config      *trajectory.Config
	Info        trajectory.Info
	SampleTimes []float64
	Trajectory  *mat.Dense
}

// generate runs the request through a generator.
func generate(req *config.Request, logger *zap.Logger) (*result, error) {
	cfg, err := req.Config(logger)
	if err != nil {
		return nil, err
	}

	g, err := trajectory.New(cfg)
	if err != nil {
		return nil, err
	}

	traj, err := g.Generate(req.WaypointMatrix(), req.Times)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trajectory: %w", err)
	}

	times, err := g.SampleTimes(req.Times)
	if err != nil {
		return nil, err
	}

	return &result{
		Config:      cfg,
		Info:        trajectory.GetInfo(g),
		SampleTimes: times,
		Trajectory:  traj,
	}, nil
}

// outputFormat resolves the output format from the flag or the file extension.
func outputFormat(flag, path string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case formatCSV, formatJSON, formatWAV:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, formatCSV, formatJSON, formatWAV)
	}
}

// writeCSV writes one row per sample: the sample time followed by every
// joint angle.
func writeCSV(w io.Writer, res *result) error {
	joints, samples := res.Trajectory.Dims()

	cw := csv.NewWriter(w)
	header := make([]string, joints+1)
	header[0] = "t"
	for j := range joints {
		header[j+1] = "q" + strconv.Itoa(j)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, joints+1)
	for i := range samples {
		record[0] = strconv.FormatFloat(res.SampleTimes[i], csvFloatFormat, csvFloatPrecision, 64)
		for j := range joints {
			record[j+1] = strconv.FormatFloat(res.Trajectory.At(j, i), csvFloatFormat, csvFloatPrecision, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonTrajectory is the JSON output document.
type jsonTrajectory struct {
	Profile     string      `json:"profile"`
	Frequency   float64     `json:"frequency"`
	DutyCycle   float64     `json:"duty_cycle,omitempty"`
	SampleTimes []float64   `json:"sample_times"`
	Trajectory  [][]float64 `json:"trajectory"`
}

// writeJSON writes the trajectory as a JSON document.
func writeJSON(w io.Writer, res *result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTrajectory{
		Profile:     res.Info.Profile,
		Frequency:   res.Info.Frequency,
		DutyCycle:   res.Info.DutyCycle,
		SampleTimes: res.SampleTimes,
		Trajectory:  config.RowsFromDense(res.Trajectory),
	})
}

// writeFile creates path and streams write into it through a buffer.
func writeFile(path string, write func(io.Writer, *result) error, res *result) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	bw := bufio.NewWriterSize(f, writerBufferSize)
	if err := write(bw, res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return bw.Flush()
}

// writeCSVFile writes res to path as CSV.
func writeCSVFile(path string, res *result) error {
	return writeFile(path, writeCSV, res)
}

// writeJSONFile writes res to path as JSON.
func writeJSONFile(path string, res *result) error {
	return writeFile(path, writeJSON, res)
}

// printReport writes a per-case summary table.
func printReport(w io.Writer, report *validate.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Validating %s at %g Hz (tolerance %.3g)\n", report.Profile, report.Frequency, report.Tolerance)
	fmt.Fprintln(tw, "CASE\tSAMPLES\tMAX ERROR\tSTATUS\tPLOT")
	for _, c := range report.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		samples := strconv.Itoa(c.Samples)
		if c.Resampled {
			samples = fmt.Sprintf("%d->%d", c.Samples, c.ReferenceSamples)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3g\t%s\t%s\n", c.Name, samples, c.MaxAbs, status, c.PlotPath)
	}
	fmt.Fprintf(tw, "%d passed, %d failed\n", report.Passed(), report.Failed())
	return tw.Flush()
}
