// Package wavtrack stores joint trajectories as multi-channel PCM WAV files.
//
// Each joint becomes one channel and each control tick one frame, so the
// WAV sample rate is the control frequency. Angles are mapped linearly onto
// the signed PCM range: +FullScale radians is the largest positive code and
// -FullScale the most negative. Values beyond full scale are clipped.
//
// Show-control and data-logger tools that replay audio tracks can drive a
// manipulator from these files directly.
package wavtrack

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-joint-trajectory/internal/simdops"
)

// Sample format constants
const (
	BitDepth16 = 16
	BitDepth24 = 24
	BitDepth32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
	maxChannels  = math.MaxUint16
)

// DefaultFullScale maps ±π radians onto the full PCM range.
const DefaultFullScale = math.Pi

// Errors returned by the encoder and decoder.
var (
	// ErrInvalidRate indicates a control frequency that is not a whole number of Hz.
	ErrInvalidRate = errors.New("sample rate must be a positive whole number of Hz")

	// ErrInvalidFormat indicates an unsupported bit depth or malformed file.
	ErrInvalidFormat = errors.New("unsupported track format")
)

// Options control track encoding.
type Options struct {
	// BitDepth is 16, 24 or 32. Zero selects 16.
	BitDepth int

	// FullScale is the angle in radians mapped to the largest PCM code.
	// Zero selects DefaultFullScale.
	FullScale float64
}

// withDefaults returns o with zero fields replaced.
func (o Options) withDefaults() Options {
	if o.BitDepth == 0 {
		o.BitDepth = BitDepth16
	}
	if o.FullScale == 0 {
		o.FullScale = DefaultFullScale
	}
	return o
}

// validate checks the options.
func (o Options) validate() error {
	if _, err := maxValue(o.BitDepth); err != nil {
		return err
	}
	if o.FullScale <= 0 || math.IsInf(o.FullScale, 0) || math.IsNaN(o.FullScale) {
		return fmt.Errorf("%w: full scale must be positive and finite, got %v", ErrInvalidFormat, o.FullScale)
	}
	return nil
}

// maxValue returns the largest PCM code for bitDepth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case BitDepth16:
		return maxInt16, nil
	case BitDepth24:
		return maxInt24, nil
	case BitDepth32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: bit depth %d", ErrInvalidFormat, bitDepth)
	}
}

// QuantizationStep returns the angle represented by one PCM code.
func QuantizationStep(opts Options) float64 {
	opts = opts.withDefaults()
	maxVal, err := maxValue(opts.BitDepth)
	if err != nil {
		return math.NaN()
	}
	return opts.FullScale / maxVal
}

// sampleRate converts a control frequency to a WAV sample rate.
func sampleRate(frequency float64) (int, error) {
	if frequency <= 0 || math.IsInf(frequency, 0) || math.IsNaN(frequency) || math.Trunc(frequency) != frequency {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidRate, frequency)
	}
	if frequency > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %v exceeds the WAV limit", ErrInvalidRate, frequency)
	}
	return int(frequency), nil
}

// Encode writes traj (joints x samples) to w as a PCM WAV track.
func Encode(w io.WriteSeeker, traj mat.Matrix, frequency float64, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}

	rate, err := sampleRate(frequency)
	if err != nil {
		return err
	}

	joints, samples := traj.Dims()
	if joints == 0 || samples == 0 {
		return fmt.Errorf("%w: empty trajectory", ErrInvalidFormat)
	}
	if joints > maxChannels {
		return fmt.Errorf("%w: %d joints exceed the channel limit", ErrInvalidFormat, joints)
	}

	maxVal, _ := maxValue(opts.BitDepth)
	gain := maxVal / opts.FullScale

	// Scale each joint into PCM units, then interleave frames.
	ops := simdops.Float64Ops()
	channels := make([][]float64, joints)
	for j := range joints {
		row := mat.Row(nil, j, traj)
		ops.Scale(row, row, gain)
		channels[j] = row
	}
	frames := make([]float64, joints*samples)
	simdops.Interleave(frames, channels)

	data := make([]int, len(frames))
	for i, v := range frames {
		data[i] = int(math.Round(math.Max(-maxVal, math.Min(maxVal, v))))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: joints, SampleRate: rate},
		Data:           data,
		SourceBitDepth: opts.BitDepth,
	}

	enc := wav.NewEncoder(w, rate, opts.BitDepth, joints, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// Decode reads a track written by Encode. fullScale must match the value
// used when encoding; zero selects DefaultFullScale. It returns the
// trajectory and the control frequency.
func Decode(r io.ReadSeeker, fullScale float64) (*mat.Dense, float64, error) {
	if fullScale == 0 {
		fullScale = DefaultFullScale
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: not a valid WAV file", ErrInvalidFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read samples: %w", err)
	}

	maxVal, err := maxValue(int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	joints := int(dec.NumChans)
	if joints == 0 || len(buf.Data)%joints != 0 {
		return nil, 0, fmt.Errorf("%w: %d samples do not fill %d channels", ErrInvalidFormat, len(buf.Data), joints)
	}
	samples := len(buf.Data) / joints
	if samples == 0 {
		return nil, 0, fmt.Errorf("%w: empty track", ErrInvalidFormat)
	}

	scale := fullScale / maxVal
	out := mat.NewDense(joints, samples, nil)
	for f := range samples {
		base := f * joints
		for j := range joints {
			out.Set(j, f, float64(buf.Data[base+j])*scale)
		}
	}

	return out, float64(dec.SampleRate), nil
}

// WriteFile encodes traj into a new file at path.
func WriteFile(path string, traj mat.Matrix, frequency float64, opts Options) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create track file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close track file: %w", cerr)
		}
	}()

	return Encode(f, traj, frequency, opts)
}

// ReadFile decodes the track at path.
func ReadFile(path string, fullScale float64) (*mat.Dense, float64, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open track file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, fullScale)
}
