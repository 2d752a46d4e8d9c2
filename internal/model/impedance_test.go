package model

import (
	"math"
	"testing"

	"github.com/echem-lab/echemsim/internal/technique"
)

func TestLogFrequencySweep(t *testing.T) {
	p := noiselessParams(t, "eis", technique.Params{
		"startFrequency": 1e5,
		"endFrequency":   0.1,
	})
	m := ImpedanceSweep{}

	const n = 50
	prev := math.Inf(1)
	for i := 0; i < n; i++ {
		progress := float64(i) / (n - 1)
		pt := m.Point(progress, progress, p, nil)

		want := 1e5 * math.Pow(0.1/1e5, progress)
		if math.Abs(pt.Z-want)/want > 1e-12 {
			t.Fatalf("point %d: frequency %g, want %g", i, pt.Z, want)
		}
		if pt.Z >= prev {
			t.Fatalf("frequency not monotonically decreasing at point %d", i)
		}
		prev = pt.Z
	}
}

func TestLogInterpGeometricMean(t *testing.T) {
	got := LogInterpFrequency(1e5, 0.1, 0.5)
	want := math.Sqrt(1e5 * 0.1)
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("midpoint frequency %g, want geometric mean %g", got, want)
	}
}

func TestRandlesHighFrequencyLimit(t *testing.T) {
	// At high frequency the capacitor shorts Rct and the Warburg term
	// vanishes, leaving approximately the solution resistance.
	zr, zi := RandlesImpedance(10, 100, 50e-6, 20, 1e6)
	if math.Abs(zr-10) > 0.1 {
		t.Errorf("high-frequency Z' = %g, want ~10", zr)
	}
	if math.Abs(zi) > 1 {
		t.Errorf("high-frequency Z'' = %g, want ~0", zi)
	}
}

func TestRandlesLowFrequencyWarburg(t *testing.T) {
	// At low frequency the Warburg term dominates with equal real and
	// imaginary magnitude.
	zr, zi := RandlesImpedance(10, 100, 50e-6, 20, 0.01)
	w := 2 * math.Pi * 0.01
	warburg := 20 / math.Sqrt(w)

	if math.Abs((zr-10-100)-warburg) > 1.0 {
		t.Errorf("low-frequency Z' = %g, want ~%g", zr, 110+warburg)
	}
	if math.Abs(-zi-warburg) > 1.0 {
		t.Errorf("low-frequency -Z'' = %g, want ~%g", -zi, warburg)
	}
}

func TestImpedancePointChannels(t *testing.T) {
	p := noiselessParams(t, "eis", nil)
	m := ImpedanceSweep{}

	pt := m.Point(0.5, 2.5, p, nil)
	if pt.Y < 0 {
		t.Errorf("-Z'' should be positive for a capacitive cell, got %g", pt.Y)
	}
	wantPhase := math.Atan2(pt.Y, pt.X) * 180 / math.Pi
	if math.Abs(pt.Phase-wantPhase) > 1e-12 {
		t.Errorf("phase %g inconsistent with stored components (want %g)", pt.Phase, wantPhase)
	}
}
