package trajectory

import (
	"testing"
)

// BenchmarkGenerateSequential benchmarks sequential multi-joint generation.
func BenchmarkGenerateSequential(b *testing.B) {
	for _, p := range []Profile{ProfileConstVelocity, ProfileTrapezoidal, ProfileSpline} {
		b.Run(p.String(), func(b *testing.B) {
			benchmarkGenerate(b, p, false)
		})
	}
}

// BenchmarkGenerateParallel benchmarks parallel multi-joint generation.
func BenchmarkGenerateParallel(b *testing.B) {
	for _, p := range []Profile{ProfileConstVelocity, ProfileTrapezoidal, ProfileSpline} {
		b.Run(p.String(), func(b *testing.B) {
			benchmarkGenerate(b, p, true)
		})
	}
}

func benchmarkGenerate(b *testing.B, profile Profile, parallel bool) {
	b.Helper()

	const (
		joints    = 6 // Six-axis arm
		waypoints = 20
		frequency = Rate1kHz
	)

	config := &Config{
		Frequency:      frequency,
		Profile:        profile,
		DutyCycle:      0.25,
		EnableParallel: parallel,
	}

	g, err := New(config)
	if err != nil {
		b.Fatalf("Failed to create generator: %v", err)
	}

	wp, times := armWaypoints(joints, waypoints)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, err := g.Generate(wp, times)
		if err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}
