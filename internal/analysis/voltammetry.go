package analysis

import (
	"math"

	"github.com/echem-lab/echemsim/internal/series"
)

// Peak separation above which a redox couple is reported as
// electrochemically irreversible, in V (59 mV at 25 C for n = 1).
const reversibleSeparation = 0.059

func analyzeVoltammetry(pts []series.Point) *VoltammetryResult {
	peaks := FindPeaks(pts, peakRelThreshold)

	out := &VoltammetryResult{
		PeakPotentials: make([]float64, 0, len(peaks)),
		PeakCurrents:   make([]float64, 0, len(peaks)),
	}
	for _, p := range peaks {
		out.PeakPotentials = append(out.PeakPotentials, p.X)
		out.PeakCurrents = append(out.PeakCurrents, p.Y)
	}

	if len(peaks) >= 2 {
		sep := math.Abs(peaks[0].X - peaks[1].X)
		out.PeakSeparation = sep
		out.HasSeparation = true
		out.Reversible = sep <= reversibleSeparation
	}
	return out
}
