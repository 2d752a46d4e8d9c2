package model

import (
	"math"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

const (
	// Diffusion coefficient of the mediator used by the forward
	// simulation, cm2/s. Close to ferricyanide in water.
	DiffusionCoeff = 7.2e-6

	// Electrons transferred per mediator molecule.
	chronoElectrons = 2.0

	// Floor applied to elapsed time before computing 1/sqrt(t).
	timeFloor = 1e-6
)

// Chronoamperometry models the current transient after a potential
// step: a Cottrell diffusion term scaled by a slow logarithmic
// biofilm-growth factor, plus an exponentially decaying capacitive
// charging current.
type Chronoamperometry struct{}

func (Chronoamperometry) Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point {
	t := elapsed
	if t < timeFloor {
		t = timeFloor
	}

	diffusion := CottrellCurrent(p["electrodeArea"], DiffusionCoeff, t)
	growth := 1 + 0.1*math.Log(1+t/100)
	capacitive := 100 * math.Exp(-t/10)

	current := diffusion*growth + capacitive
	current += gaussNoise(rng, p["noiseLevel"]*diffusion)

	return series.Point{X: elapsed, Y: current, Time: elapsed}
}

// CottrellCurrent returns the diffusion-limited current in uA at time
// t for an electrode of the given area: i = nFAC * sqrt(D/(pi t)).
func CottrellCurrent(area, d, t float64) float64 {
	return chronoElectrons * faraday * area * bulkConc * math.Sqrt(d/(math.Pi*t)) * 1e6
}
