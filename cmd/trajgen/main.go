// Command trajgen generates and validates joint-space trajectories.
//
// Usage:
//
//	trajgen generate --request req.json --out traj.csv
//	trajgen generate --request req.json --out traj.wav --bit-depth 24
//	trajgen validate --dataset ref.json --tolerance 1e-6 --plots plots/
//	trajgen record --request req.json --dataset ref.json --name pick
//
// Request files are JSON documents naming the profile, control frequency,
// waypoint times and per-joint waypoint angles. Datasets hold reference
// trajectories for one profile and frequency.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	trajectory "github.com/tphakala/go-joint-trajectory"
	"github.com/tphakala/go-joint-trajectory/internal/config"
	"github.com/tphakala/go-joint-trajectory/internal/dataset"
	"github.com/tphakala/go-joint-trajectory/internal/validate"
	"github.com/tphakala/go-joint-trajectory/internal/wavtrack"
)

const (
	// Flags.
	flagDebug     = "debug"
	flagRequest   = "request"
	flagOut       = "out"
	flagFormat    = "format"
	flagBitDepth  = "bit-depth"
	flagFullScale = "full-scale"
	flagDataset   = "dataset"
	flagProfile   = "profile"
	flagFrequency = "frequency"
	flagDutyCycle = "duty-cycle"
	flagTolerance = "tolerance"
	flagPlots     = "plots"
	flagName      = "name"

	formatCSV  = "csv"
	formatJSON = "json"
	formatWAV  = "wav"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Reports are written to out.
func newApp(out io.Writer) *cli.App {
	logger := zap.NewNop()

	return &cli.App{
		Name:      "trajgen",
		Usage:     "generate joint-space trajectories for robotic manipulators",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			if c.Bool(flagDebug) {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		After: func(*cli.Context) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate a trajectory from a request file",
				UsageText: "trajgen generate --request req.json --out traj.csv [--format csv|json|wav]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagRequest,
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "request `FILE` (JSON)",
					},
					&cli.StringFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "output `FILE`",
					},
					&cli.StringFlag{
						Name:  flagFormat,
						Usage: "output format: csv, json or wav (default: from the output extension)",
					},
					&cli.IntFlag{
						Name:  flagBitDepth,
						Value: wavtrack.BitDepth16,
						Usage: "PCM bit depth for wav output: 16, 24 or 32",
					},
					&cli.Float64Flag{
						Name:  flagFullScale,
						Value: wavtrack.DefaultFullScale,
						Usage: "angle in radians mapped to full scale for wav output",
					},
				},
				Action: func(c *cli.Context) error {
					return generateAction(c, logger)
				},
			},
			{
				Name:      "validate",
				Usage:     "compare generated trajectories against a reference dataset",
				UsageText: "trajgen validate --dataset ref.json [--profile p] [--frequency f] [--tolerance e] [--plots dir]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagDataset,
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "reference dataset `FILE` (JSON)",
					},
					&cli.StringFlag{
						Name:  flagProfile,
						Usage: "override the dataset profile",
					},
					&cli.Float64Flag{
						Name:  flagFrequency,
						Usage: "override the dataset control frequency in Hz",
					},
					&cli.Float64Flag{
						Name:  flagDutyCycle,
						Value: -1,
						Usage: "override every case's trapezoidal duty cycle",
					},
					&cli.Float64Flag{
						Name:  flagTolerance,
						Value: validate.DefaultTolerance,
						Usage: "largest accepted absolute error in radians",
					},
					&cli.StringFlag{
						Name:  flagPlots,
						Usage: "write one comparison chart per case into `DIR`",
					},
				},
				Action: func(c *cli.Context) error {
					return validateAction(c, logger)
				},
			},
			{
				Name:      "record",
				Usage:     "generate a trajectory and store it in a reference dataset",
				UsageText: "trajgen record --request req.json --dataset ref.json [--name case]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagRequest,
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "request `FILE` (JSON)",
					},
					&cli.StringFlag{
						Name:     flagDataset,
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "dataset `FILE` to create or extend",
					},
					&cli.StringFlag{
						Name:  flagName,
						Usage: "case name (default: request file name)",
					},
				},
				Action: func(c *cli.Context) error {
					return recordAction(c, logger)
				},
			},
		},
	}
}

// generateAction implements the generate command.
func generateAction(c *cli.Context, logger *zap.Logger) error {
	req, err := config.LoadRequest(c.String(flagRequest))
	if err != nil {
		return err
	}

	res, err := generate(req, logger)
	if err != nil {
		return err
	}

	outPath := c.String(flagOut)
	format, err := outputFormat(c.String(flagFormat), outPath)
	if err != nil {
		return err
	}

	switch format {
	case formatCSV:
		err = writeCSVFile(outPath, res)
	case formatJSON:
		err = writeJSONFile(outPath, res)
	case formatWAV:
		err = wavtrack.WriteFile(outPath, res.Trajectory, res.Info.Frequency, wavtrack.Options{
			BitDepth:  c.Int(flagBitDepth),
			FullScale: c.Float64(flagFullScale),
		})
	}
	if err != nil {
		return err
	}

	joints, samples := res.Trajectory.Dims()
	logger.Info("wrote trajectory",
		zap.String("path", outPath),
		zap.String("format", format),
		zap.String("profile", res.Info.Profile),
		zap.Int("joints", joints),
		zap.Int("samples", samples))

	_, err = fmt.Fprintf(c.App.Writer, "Generated %s -> %s\n  %s profile at %g Hz: %d joints, %d samples (%s)\n",
		filepath.Base(c.String(flagRequest)), filepath.Base(outPath),
		res.Info.Profile, res.Info.Frequency, joints, samples, format)
	return err
}

// validateAction implements the validate command.
func validateAction(c *cli.Context, logger *zap.Logger) error {
	d, err := dataset.Load(c.String(flagDataset))
	if err != nil {
		return err
	}

	opts := validate.Options{
		Profile:   c.String(flagProfile),
		Frequency: c.Float64(flagFrequency),
		Tolerance: c.Float64(flagTolerance),
		PlotDir:   c.String(flagPlots),
		Logger:    logger,
	}
	if duty := c.Float64(flagDutyCycle); duty >= 0 {
		opts.DutyCycle = &duty
	}

	report, runErr := validate.Run(d, opts)
	if report == nil {
		return runErr
	}

	if err := printReport(c.App.Writer, report); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("%d of %d cases failed: %w", report.Failed(), len(report.Cases), runErr)
	}
	return nil
}

// recordAction implements the record command.
func recordAction(c *cli.Context, logger *zap.Logger) error {
	reqPath := c.String(flagRequest)
	req, err := config.LoadRequest(reqPath)
	if err != nil {
		return err
	}

	res, err := generate(req, logger)
	if err != nil {
		return err
	}

	dsPath := c.String(flagDataset)
	d, err := dataset.LoadOrNew(dsPath, res.Info.Profile, res.Info.Frequency)
	if err != nil {
		return err
	}

	name := c.String(flagName)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(reqPath), filepath.Ext(reqPath))
	}

	var duty *float64
	if res.Config.Profile == trajectory.ProfileTrapezoidal {
		v := res.Config.DutyCycle
		duty = &v
	}
	d.Append(dataset.NewCase(name, req.WaypointMatrix(), req.Times, duty, res.Trajectory))

	if err := dataset.Save(dsPath, d); err != nil {
		return err
	}

	logger.Info("recorded case", zap.String("dataset", dsPath), zap.String("case", name), zap.Int("cases", len(d.Cases)))
	_, err = fmt.Fprintf(c.App.Writer, "Recorded %q into %s (%d cases)\n", name, filepath.Base(dsPath), len(d.Cases))
	return err
}
