package validate

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	trajectory "github.com/tphakala/go-joint-trajectory"
	"github.com/tphakala/go-joint-trajectory/internal/dataset"
	"github.com/tphakala/go-joint-trajectory/internal/mathutil"
)

// Chart styling
const (
	plotWidth       = 12 * vg.Inch
	plotHeight      = 4 * vg.Inch
	lineWidthPoints = 1
	dashOnPoints    = 4
	dashOffPoints   = 2
)

var (
	generatedColor = color.RGBA{A: 255}         // black
	referenceColor = color.RGBA{G: 160, A: 255} // green
	dashPattern    = []vg.Length{vg.Points(dashOnPoints), vg.Points(dashOffPoints)}
)

// writeCasePlot renders the generated table of case i against the case
// reference into dir and returns the chart path.
func writeCasePlot(dir string, i int, name string, profile trajectory.Profile, generated *mat.Dense, genTimes []float64, c *dataset.Case) (string, error) {
	p, err := CasePlot(name, profile, generated, genTimes, c.Reference(), c.Times)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create plot directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("case_%02d.png", i+1))
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", fmt.Errorf("failed to save plot: %w", err)
	}
	return path, nil
}

// CasePlot builds a chart with every joint of generated drawn as a solid
// black line and every joint of reference as a dashed green line.
// Generated columns are placed at genTimes, the instants they were sampled
// at. Reference columns are evenly spaced over the waypoint times, the grid
// Compare assumes for them.
func CasePlot(name string, profile trajectory.Profile, generated mat.Matrix, genTimes []float64, reference mat.Matrix, times []float64) (*plot.Plot, error) {
	if len(times) < 2 {
		return nil, fmt.Errorf("need at least two waypoint times, got %d", len(times))
	}
	if _, cols := generated.Dims(); cols != len(genTimes) {
		return nil, fmt.Errorf("%d sample times for %d generated samples", len(genTimes), cols)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s joint trajectory - %s", profile, name)
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "θ [rad]"
	p.X.Min = times[0]
	p.X.Max = times[len(times)-1]

	_, refCols := reference.Dims()
	series := []struct {
		label  string
		m      mat.Matrix
		ts     []float64
		color  color.Color
		dashes []vg.Length
	}{
		{"Generated", generated, genTimes, generatedColor, nil},
		{"Reference", reference, mathutil.Span(make([]float64, refCols), times[0], times[len(times)-1]), referenceColor, dashPattern},
	}

	for _, s := range series {
		rows, cols := s.m.Dims()

		for j := range rows {
			pts := make(plotter.XYs, cols)
			for k := range cols {
				pts[k] = plotter.XY{X: s.ts[k], Y: s.m.At(j, k)}
			}

			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, err
			}
			line.Color = s.color
			line.Width = vg.Points(lineWidthPoints)
			line.Dashes = s.dashes
			p.Add(line)

			if j == 0 {
				p.Legend.Add(s.label, line)
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}
