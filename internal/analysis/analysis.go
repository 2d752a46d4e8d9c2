// Package analysis extracts scientific quantities from a completed or
// in-flight measurement series: peak lists, circuit resistances,
// diffusion coefficients and regression fits. Every entry point is a
// pure pass over a series snapshot; nothing here mutates the store.
package analysis

import (
	"fmt"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// Result is the technique-shaped outcome of one analysis pass. Exactly
// one of the branch fields is populated for a non-trivial series; all
// stay nil for an empty or single-point snapshot.
type Result struct {
	Technique string
	Points    int

	Voltammetry *VoltammetryResult
	Impedance   *ImpedanceResult
	Chrono      *ChronoResult
}

// VoltammetryResult covers CV, LSV and the pulse techniques.
type VoltammetryResult struct {
	PeakPotentials []float64
	PeakCurrents   []float64

	// Separation of the two largest peaks. Absent (HasSeparation
	// false) when fewer than two peaks were found. Separations above
	// 59 mV indicate an electrochemically irreversible couple.
	PeakSeparation float64
	HasSeparation  bool
	Reversible     bool
}

// ImpedanceResult holds the Randles-circuit quantities read off a
// Nyquist spectrum, plus an optional least-squares circuit fit.
type ImpedanceResult struct {
	SolutionResistance       float64
	ChargeTransferResistance float64
	CharacteristicFrequency  float64

	Fit *RandlesFit
}

// ChronoResult summarizes a chronoamperometric transient.
type ChronoResult struct {
	SteadyStateCurrent float64
	PeakCurrent        float64
	ChargeTransferred  float64 // mC

	// Cottrell regression over 1/sqrt(t); nil unless R2 > 0.8.
	Cottrell *CottrellFit
}

// CottrellFit is the linear fit of current against 1/sqrt(t) and the
// diffusion coefficient inverted from its slope.
type CottrellFit struct {
	Slope                float64 // uA s^1/2
	Intercept            float64
	R2                   float64
	DiffusionCoefficient float64 // cm2/s
}

// Analyze runs the technique-specific analysis branch over a series
// snapshot. An empty or single-point series yields a neutral result
// rather than an error; an unknown category is a configuration error.
func Analyze(d technique.Descriptor, pts []series.Point, p technique.Params) (Result, error) {
	res := Result{Technique: d.ID, Points: len(pts)}
	if len(pts) < 2 {
		return res, nil
	}

	switch d.Category {
	case technique.Voltammetry, technique.Pulse:
		res.Voltammetry = analyzeVoltammetry(pts)
	case technique.Impedance:
		res.Impedance = analyzeImpedance(pts)
	case technique.Chronometric:
		res.Chrono = analyzeChrono(pts, p)
	default:
		return Result{}, fmt.Errorf("no analysis for category %s", d.Category)
	}
	return res, nil
}
