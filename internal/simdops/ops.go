// Package simdops wraps the SIMD float64 kernels used by the trajectory
// engine and the track encoders.
//
// Calls go through a small function-pointer table so hot loops stay free of
// CPU feature checks; with Profile-Guided Optimization (Go 1.22+) these
// indirect calls can be devirtualized.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Ops provides SIMD-accelerated float64 operations.
type Ops struct {
	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// DotProduct returns Σ a[i]*b[i].
	DotProduct func(a, b []float64) float64

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float64)
}

// Pre-instantiated table, shared by every caller.
var ops64 = Ops{
	Scale:       f64.Scale,
	Sum:         f64.Sum,
	DotProduct:  f64.DotProduct,
	Interleave2: f64.Interleave2,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}

// Lerp writes q0 + delta*fractions[i] into dst[i].
// dst and fractions must have the same length; dst may alias fractions.
func Lerp(dst, fractions []float64, q0, delta float64) {
	if len(dst) == 0 {
		return
	}
	ops64.Scale(dst, fractions, delta)
	floats.AddConst(q0, dst)
}

// Mean returns Σ a[i] / len(a), or 0 for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return ops64.Sum(a) / float64(len(a))
}

// MeanSquare returns Σ a[i]² / len(a), or 0 for an empty slice.
func MeanSquare(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return ops64.DotProduct(a, a) / float64(len(a))
}

// Interleave writes the channels frame by frame into dst:
// dst[f*len(channels)+c] = channels[c][f]. All channels must share the same
// length and dst must hold len(channels)*frames values. Two channels take
// the SIMD Interleave2 path.
func Interleave(dst []float64, channels [][]float64) {
	numChannels := len(channels)
	if numChannels == 0 {
		return
	}
	if numChannels == stereoChannels {
		ops64.Interleave2(dst, channels[0], channels[1])
		return
	}

	frames := len(channels[0])
	for f := range frames {
		base := f * numChannels
		for c, ch := range channels {
			dst[base+c] = ch[f]
		}
	}
}

// Info describes the SIMD instruction set selected at runtime.
func Info() string {
	return cpu.Info()
}

// Two-channel fast path for Interleave.
const stereoChannels = 2
