package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

const (
	cottrellElectrons = 2.0
	faraday           = 96485.0
	bulkConc          = 1e-6 // mol/cm3, 1 mM

	// Samples before this time carry the capacitive charging
	// transient and are excluded from the Cottrell regression.
	cottrellCutoff = 1.0

	// Minimum R2 for the Cottrell fit to be reported.
	cottrellMinR2 = 0.8
)

func analyzeChrono(pts []series.Point, p technique.Params) *ChronoResult {
	n := len(pts)
	ys := make([]float64, n)
	ts := make([]float64, n)
	for i, pt := range pts {
		ys[i] = pt.Y
		ts[i] = pt.Time
	}

	tail := min(10, n/4)
	if tail < 1 {
		tail = 1
	}

	out := &ChronoResult{
		SteadyStateCurrent: stat.Mean(ys[n-tail:], nil),
		PeakCurrent:        floats.Max(ys),
		ChargeTransferred:  charge(ts, ys),
	}

	out.Cottrell = cottrellFit(pts, p)
	return out
}

// charge integrates current over time with the trapezoidal rule,
// converting uA*s to mC.
func charge(ts, ys []float64) float64 {
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return 0
		}
	}
	return integrate.Trapezoidal(ts, ys) / 1000
}

// cottrellFit regresses current against 1/sqrt(t) past the capacitive
// transient and inverts the slope to a diffusion coefficient. The fit
// is dropped unless it explains the data (R2 > 0.8).
func cottrellFit(pts []series.Point, p technique.Params) *CottrellFit {
	var xs, ys []float64
	for _, pt := range pts {
		if pt.Time <= cottrellCutoff {
			continue
		}
		xs = append(xs, 1/math.Sqrt(pt.Time))
		ys = append(ys, pt.Y)
	}
	if len(xs) < 3 {
		return nil
	}

	fit, ok := LinearFit(xs, ys)
	if !ok || fit.R2 <= cottrellMinR2 {
		return nil
	}

	area := p["electrodeArea"]
	if area == 0 {
		area = 1
	}

	// Slope arrives in uA s^1/2; the Cottrell inversion wants A s^1/2.
	slopeAmps := fit.Slope * 1e-6
	d := slopeAmps * math.Sqrt(math.Pi) / (cottrellElectrons * faraday * area * bulkConc)

	return &CottrellFit{
		Slope:                fit.Slope,
		Intercept:            fit.Intercept,
		R2:                   fit.R2,
		DiffusionCoefficient: d * d,
	}
}
