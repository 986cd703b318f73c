package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SampleCount returns the number of whole control ticks that fit in duration
// at the given frequency: floor(duration * frequency).
//
// The product is truncated exactly as written, without any epsilon
// correction, so that sample counts match recorded reference trajectories
// that were produced with the same rule. Non-finite or negative products
// yield 0, and products beyond the int range saturate at math.MaxInt.
// Callers that allocate must bound the count first.
func SampleCount(duration, frequency float64) int {
	n := math.Floor(duration * frequency)
	switch {
	case math.IsNaN(n) || n < 0:
		return 0
	case n >= maxIntFloat:
		return math.MaxInt
	}
	return int(n)
}

// Span fills dst with len(dst) evenly spaced values from lo to hi, both
// inclusive, and returns dst. Unlike floats.Span it accepts short slices:
// a single-element dst receives lo and an empty dst is returned untouched.
func Span(dst []float64, lo, hi float64) []float64 {
	switch len(dst) {
	case 0:
		return dst
	case 1:
		dst[0] = lo
		return dst
	default:
		return floats.Span(dst, lo, hi)
	}
}

// Fractions fills dst with i/ticks for i in [0, len(dst)) and returns dst.
// For a segment ticks control periods long these are the normalized
// positions of samples taken once per period from its start waypoint.
// ticks need not be whole.
func Fractions(dst []float64, ticks float64) []float64 {
	if !(ticks > 0) || math.IsInf(ticks, 0) {
		return dst
	}
	inv := 1.0 / ticks
	for i := range dst {
		dst[i] = float64(i) * inv
	}
	return dst
}

// Gradient estimates the first derivative of uniformly spaced samples.
// Interior points use central differences, the two ends use one-sided
// differences. dst must be at least len(samples) long; it is returned
// resliced to len(samples). Fewer than two samples give a zero derivative.
func Gradient(dst, samples []float64, spacing float64) []float64 {
	n := len(samples)
	dst = dst[:n]
	if n < minGradientSamples || spacing == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return dst
	}

	dst[0] = (samples[1] - samples[0]) / spacing
	for i := 1; i < n-1; i++ {
		dst[i] = (samples[i+1] - samples[i-1]) / (centralDifferenceSpan * spacing)
	}
	dst[n-1] = (samples[n-1] - samples[n-2]) / spacing
	return dst
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AllFinite reports whether every element of s is finite.
func AllFinite(s []float64) bool {
	for _, v := range s {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// StrictlyIncreasing reports whether s[i] < s[i+1] for every i.
func StrictlyIncreasing(s []float64) bool {
	for i := 1; i < len(s); i++ {
		if !(s[i-1] < s[i]) {
			return false
		}
	}
	return true
}
