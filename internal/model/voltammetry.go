package model

import (
	"math"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// Heterogeneous rate constant of the biofilm-mediated electron
// transfer, cm/s. Deliberately sluggish compared to a bare electrode.
const rateConst = 1e-6

// CyclicVoltammetry drives a triangular potential waveform and models
// the current with a Butler-Volmer expression around the formal
// potential E0 = (start+end)/2, boosted near E0 by a biofilm factor.
type CyclicVoltammetry struct{}

func (CyclicVoltammetry) Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point {
	start := p["startPotential"]
	end := p["endPotential"]

	// Forward ramp over the first half of the sweep, reverse over the
	// second half.
	var potential float64
	if progress <= 0.5 {
		potential = start + (end-start)*progress*2
	} else {
		potential = end - (end-start)*(progress-0.5)*2
	}

	e0 := (start + end) / 2
	current := butlerVolmer(potential-e0, p)
	current += gaussNoise(rng, p["noiseLevel"]*math.Abs(current))

	return series.Point{X: potential, Y: current, Time: elapsed}
}

// butlerVolmer returns the faradaic current in uA at overpotential eta,
// with a symmetric transfer coefficient and a multiplicative biofilm
// factor 1 + 0.3*exp(-5|eta|) that boosts turnover near the formal
// potential.
func butlerVolmer(eta float64, p technique.Params) float64 {
	const (
		n     = 1.0
		alpha = 0.5
	)
	area := p["electrodeArea"]
	tempK := p["temperature"] + 273.15
	f := n * faraday / (gasConst * tempK)

	exchange := n * faraday * area * rateConst * bulkConc // A
	current := exchange * (math.Exp(alpha*f*eta) - math.Exp(-(1-alpha)*f*eta))

	biofilm := 1 + 0.3*math.Exp(-5*math.Abs(eta))
	return current * biofilm * 1e6
}

// LinearSweep is a single monotonic potential ramp with a sigmoidal
// single-sweep current response.
type LinearSweep struct{}

func (LinearSweep) Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point {
	start := p["startPotential"]
	end := p["endPotential"]
	potential := start + (end-start)*progress

	e0 := (start + end) / 2
	current := 25 * math.Tanh(10*(potential-e0))
	current += gaussNoise(rng, p["noiseLevel"]*25)

	return series.Point{X: potential, Y: current, Time: elapsed}
}
