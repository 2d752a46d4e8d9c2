package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/echem-lab/echemsim/internal/series"
)

// analyzeImpedance reads the Randles quantities directly off the swept
// spectrum: the high-frequency intercept approximates the solution
// resistance and the full real-axis span stands in for the
// charge-transfer semicircle diameter. The characteristic frequency is
// taken at the -Z'' maximum. A least-squares circuit fit refines the
// geometric estimates when it converges.
func analyzeImpedance(pts []series.Point) *ImpedanceResult {
	n := len(pts)
	zr := make([]float64, n)
	for i, p := range pts {
		zr[i] = p.X
	}

	minZr := floats.Min(zr)
	maxZr := floats.Max(zr)

	peakIdx := 0
	for i := 1; i < n; i++ {
		if pts[i].Y > pts[peakIdx].Y {
			peakIdx = i
		}
	}

	out := &ImpedanceResult{
		SolutionResistance:       minZr,
		ChargeTransferResistance: maxZr - minZr,
		CharacteristicFrequency:  pts[peakIdx].Z,
	}

	if fit, err := FitRandles(pts, out.SolutionResistance, out.ChargeTransferResistance); err == nil {
		out.Fit = fit
	}
	return out
}
