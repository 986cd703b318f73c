package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	fractions := []float64{0, 0.25, 0.5, 0.75}
	dst := make([]float64, len(fractions))

	Lerp(dst, fractions, 1.0, -2.0)

	want := []float64{1.0, 0.5, 0.0, -0.5}
	for i := range want {
		assert.InDelta(t, want[i], dst[i], 1e-12, "dst[%d]", i)
	}
}

func TestLerpInPlace(t *testing.T) {
	buf := []float64{0, 0.5, 1}
	Lerp(buf, buf, 10, 4)
	assert.InDeltaSlice(t, []float64{10, 12, 14}, buf, 1e-12)
}

func TestLerpEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Lerp(nil, nil, 1, 1) })
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 0.0, Mean(nil), 0)
}

func TestMeanSquare(t *testing.T) {
	assert.Zero(t, MeanSquare(nil))
	assert.InDelta(t, 15.625, MeanSquare([]float64{3, 4, -3, 4, 5, 5, 0, 5}), 1e-12)
}

func TestInterleave(t *testing.T) {
	t.Run("Two channels", func(t *testing.T) {
		a := []float64{1, 2, 3}
		b := []float64{10, 20, 30}
		dst := make([]float64, 6)
		Interleave(dst, [][]float64{a, b})
		assert.Equal(t, []float64{1, 10, 2, 20, 3, 30}, dst)
	})

	t.Run("Three channels", func(t *testing.T) {
		dst := make([]float64, 6)
		Interleave(dst, [][]float64{{1, 2}, {3, 4}, {5, 6}})
		assert.Equal(t, []float64{1, 3, 5, 2, 4, 6}, dst)
	})

	t.Run("No channels", func(t *testing.T) {
		assert.NotPanics(t, func() { Interleave(nil, nil) })
	})
}

func TestInfo(t *testing.T) {
	assert.NotEmpty(t, Info())
}
