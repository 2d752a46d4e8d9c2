package model

import (
	"math"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// PulseVoltammetry covers DPV and SWV. The potential ramps linearly and
// the current is a superposition of three Gaussian peaks at distinct
// formal potentials, modelling a multi-analyte response.
type PulseVoltammetry struct{}

// Peak centers relative to E0, amplitudes in uA, shared width in V.
var pulsePeaks = []struct {
	offset, amplitude float64
}{
	{0, 50},
	{-0.2, 30},
	{0.15, 20},
}

const pulseSigma = 0.05

func (PulseVoltammetry) Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point {
	start := p["startPotential"]
	end := p["endPotential"]
	potential := start + (end-start)*progress
	e0 := (start + end) / 2

	current := 0.0
	for _, pk := range pulsePeaks {
		d := (potential - (e0 + pk.offset)) / pulseSigma
		current += pk.amplitude * math.Exp(-0.5*d*d)
	}
	current += gaussNoise(rng, p["noiseLevel"]*pulsePeaks[0].amplitude)

	return series.Point{X: potential, Y: current, Time: elapsed}
}
