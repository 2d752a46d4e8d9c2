// Package model implements the point generators for each technique
// family. Every model is a pure function of its inputs: the same
// progress, elapsed time, parameters and rng stream produce the same
// point, which keeps full simulation runs reproducible under a fixed
// seed.
package model

import (
	"fmt"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// Physical constants and internal units. Potentials are in V, currents
// in uA, impedances in Ohm, time in s, electrode area in cm2 and
// concentration in mol/cm3 (1 mM = 1e-6 mol/cm3).
const (
	faraday  = 96485.0 // C/mol
	gasConst = 8.314   // J/(mol K)

	// Bulk concentration of the redox mediator, 1 mM.
	bulkConc = 1e-6
)

// Model maps (progress in [0,1], elapsed simulated time, parameters)
// to one measurement point. The rng is the injected noise source; a
// nil rng or a zero noiseLevel parameter yields the noiseless signal.
type Model interface {
	Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point
}

// ForDescriptor selects the model implementing a technique. Unknown
// techniques are an error, never a silent fallback.
func ForDescriptor(d technique.Descriptor) (Model, error) {
	switch d.ID {
	case "cv":
		return CyclicVoltammetry{}, nil
	case "lsv":
		return LinearSweep{}, nil
	case "dpv", "swv":
		return PulseVoltammetry{}, nil
	case "eis":
		return ImpedanceSweep{}, nil
	case "ca":
		return Chronoamperometry{}, nil
	}
	return nil, fmt.Errorf("no model for technique: %s", d.ID)
}

// gaussNoise draws one sample of zero-mean noise with the given
// standard deviation. A nil rng disables noise entirely.
func gaussNoise(rng *rand.Rand, sigma float64) float64 {
	if rng == nil || sigma == 0 {
		return 0
	}
	return rng.NormFloat64() * sigma
}
