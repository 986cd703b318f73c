package trajectory

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// armWaypoints builds a deterministic multi-joint waypoint table.
func armWaypoints(joints, count int) (*mat.Dense, []float64) {
	data := make([]float64, joints*count)
	for j := range joints {
		// Use different phases for each joint to ensure they're sampled independently
		phase := float64(j) * math.Pi / 4
		for k := range count {
			data[j*count+k] = math.Sin(0.9*float64(k) + phase)
		}
	}

	times := make([]float64, count)
	for k := 1; k < count; k++ {
		times[k] = times[k-1] + 0.5 + 0.25*float64(k%3)
	}
	return mat.NewDense(joints, count, data), times
}

// TestGenerateParallel tests that parallel sampling produces the same table.
func TestGenerateParallel(t *testing.T) {
	const (
		joints    = 7
		waypoints = 9
		frequency = 500.0
	)

	wp, times := armWaypoints(joints, waypoints)

	for _, profile := range []Profile{ProfileConstVelocity, ProfileTrapezoidal, ProfileSpline} {
		t.Run(profile.String(), func(t *testing.T) {
			configSeq := &Config{
				Frequency:      frequency,
				Profile:        profile,
				DutyCycle:      0.2,
				EnableParallel: false,
			}
			configPar := &Config{
				Frequency:      frequency,
				Profile:        profile,
				DutyCycle:      0.2,
				EnableParallel: true,
			}

			genSeq, err := New(configSeq)
			if err != nil {
				t.Fatalf("Failed to create sequential generator: %v", err)
			}

			genPar, err := New(configPar)
			if err != nil {
				t.Fatalf("Failed to create parallel generator: %v", err)
			}

			outSeq, err := genSeq.Generate(wp, times)
			if err != nil {
				t.Fatalf("Sequential Generate failed: %v", err)
			}

			outPar, err := genPar.Generate(wp, times)
			if err != nil {
				t.Fatalf("Parallel Generate failed: %v", err)
			}

			rs, cs := outSeq.Dims()
			rp, cp := outPar.Dims()
			if rs != rp || cs != cp {
				t.Fatalf("Shape mismatch: seq=%dx%d, par=%dx%d", rs, cs, rp, cp)
			}

			// Verify outputs are identical (bit-exact)
			for j := range rs {
				for i := range cs {
					if outSeq.At(j, i) != outPar.At(j, i) {
						t.Errorf("Joint %d sample %d mismatch: seq=%v, par=%v",
							j, i, outSeq.At(j, i), outPar.At(j, i))
						break // Don't flood with errors
					}
				}
			}
		})
	}
}

// TestGenerateJointIndependence verifies joints are sampled independently.
func TestGenerateJointIndependence(t *testing.T) {
	const count = 6

	wp, times := armWaypoints(2, count)
	// Joint 0 holds still at zero
	for k := range count {
		wp.Set(0, k, 0)
	}

	g, err := New(&Config{Frequency: 100, Profile: ProfileSpline, EnableParallel: true})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	out, err := g.Generate(wp, times)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Verify joint 0 stays exactly at rest
	_, cols := out.Dims()
	for i := range cols {
		if v := out.At(0, i); math.Abs(v) > 1e-12 {
			t.Fatalf("Resting joint moved: sample %d = %v", i, v)
		}
	}

	// Verify joint 1 moves
	var maxAbs float64
	for i := range cols {
		maxAbs = math.Max(maxAbs, math.Abs(out.At(1, i)))
	}
	if maxAbs < 0.5 {
		t.Errorf("Moving joint has too little motion: max=%v", maxAbs)
	}
}

// TestGenerateSingleJointParallel verifies single-joint input works with parallel enabled.
func TestGenerateSingleJointParallel(t *testing.T) {
	g, err := New(&Config{
		Frequency:      50,
		Profile:        ProfileTrapezoidal,
		DutyCycle:      0.25,
		EnableParallel: true, // Falls back to sequential for one joint
	})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	out, err := g.Generate(mat.NewDense(1, 2, []float64{0, 1}), []float64{0, 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, cols := out.Dims(); cols != 101 {
		t.Errorf("Unexpected column count: got=%d, expected=101", cols)
	}
}

// TestGeneratorConcurrentUse verifies one generator can serve many goroutines.
func TestGeneratorConcurrentUse(t *testing.T) {
	wp, times := armWaypoints(3, 5)

	g, err := New(&Config{Frequency: 200, Profile: ProfileTrapezoidal, DutyCycle: 0.3})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	ref, err := g.Generate(wp, times)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	const workers = 8
	results := make([]*mat.Dense, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[w], errs[w] = g.Generate(wp, times)
		}()
	}
	wg.Wait()

	for w := range workers {
		if errs[w] != nil {
			t.Fatalf("Worker %d failed: %v", w, errs[w])
		}
		if !mat.Equal(ref, results[w]) {
			t.Errorf("Worker %d produced a different table", w)
		}
	}
}
