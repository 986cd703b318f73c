package mathutil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCount(t *testing.T) {
	tests := []struct {
		name      string
		duration  float64
		frequency float64
		expected  int
	}{
		{"Whole seconds", 1.0, 10, 10},
		{"Fractional product truncates", 0.55, 10, 5},
		{"Half second at 100 Hz", 0.5, 100, 50},
		{"Below one tick", 0.1, 5, 0},
		{"Zero duration", 0, 100, 0},
		{"Negative duration", -1, 100, 0},
		{"NaN duration", math.NaN(), 100, 0},
		{"Infinite duration saturates", math.Inf(1), 100, math.MaxInt},
		{"Beyond int range saturates", 1e19, 10, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SampleCount(tt.duration, tt.frequency))
		})
	}
}

func TestSpan(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, Span(nil, 0, 1))
	})

	t.Run("Single element gets lower bound", func(t *testing.T) {
		got := Span(make([]float64, 1), 2.5, 7)
		assert.Equal(t, []float64{2.5}, got)
	})

	t.Run("Inclusive bounds", func(t *testing.T) {
		got := Span(make([]float64, 5), 0, 2)
		want := []float64{0, 0.5, 1, 1.5, 2}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("Span mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFractions(t *testing.T) {
	got := Fractions(make([]float64, 4), 4)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, got)

	// A quarter-second segment at 10 Hz is 2.5 periods long
	got = Fractions(make([]float64, 2), 2.5)
	assert.InDeltaSlice(t, []float64{0, 0.4}, got, 1e-15)

	// Non-positive spans leave dst untouched
	dst := []float64{9, 9}
	assert.Equal(t, []float64{9, 9}, Fractions(dst, 0))
	assert.Equal(t, []float64{9, 9}, Fractions(dst, math.NaN()))
}

func TestGradient(t *testing.T) {
	t.Run("Linear ramp has constant slope", func(t *testing.T) {
		const spacing = 0.1
		samples := []float64{0, 0.3, 0.6, 0.9, 1.2}
		got := Gradient(make([]float64, len(samples)), samples, spacing)
		require.Len(t, got, len(samples))
		for i, v := range got {
			assert.InDelta(t, 3.0, v, 1e-9, "gradient[%d]", i)
		}
	})

	t.Run("Quadratic interior is exact", func(t *testing.T) {
		const spacing = 0.5
		samples := make([]float64, 6)
		for i := range samples {
			x := float64(i) * spacing
			samples[i] = x * x
		}
		got := Gradient(make([]float64, len(samples)), samples, spacing)
		for i := 1; i < len(samples)-1; i++ {
			assert.InDelta(t, 2*float64(i)*spacing, got[i], 1e-12)
		}
	})

	t.Run("Too few samples", func(t *testing.T) {
		got := Gradient(make([]float64, 1), []float64{4}, 0.1)
		assert.Equal(t, []float64{0}, got)
	})
}

func TestFiniteAndOrdering(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))

	assert.True(t, AllFinite([]float64{0, 1, -2}))
	assert.False(t, AllFinite([]float64{0, math.Inf(1)}))

	assert.True(t, StrictlyIncreasing([]float64{0, 1, 2.5}))
	assert.True(t, StrictlyIncreasing([]float64{3}))
	assert.False(t, StrictlyIncreasing([]float64{0, 1, 1}))
	assert.False(t, StrictlyIncreasing([]float64{0, 2, 1}))
	assert.False(t, StrictlyIncreasing([]float64{0, math.NaN()}))
}
