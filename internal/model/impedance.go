package model

import (
	"math"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// Randles equivalent circuit of the simulated cell: solution
// resistance in series with a charge-transfer resistance in parallel
// with the double-layer capacitance, plus a Warburg diffusion element.
const (
	SolutionResistance = 10.0  // Ohm
	ChargeTransferRes  = 100.0 // Ohm
	DoubleLayerCap     = 50e-6 // F
	WarburgCoefficient = 20.0  // Ohm s^-1/2
)

// ImpedanceSweep sweeps the excitation frequency logarithmically from
// startFrequency to endFrequency and evaluates the Randles circuit at
// each point. X/Y carry Z' and -Z'', Z the frequency and Phase the
// phase angle in degrees.
type ImpedanceSweep struct{}

func (ImpedanceSweep) Point(progress, elapsed float64, p technique.Params, rng *rand.Rand) series.Point {
	freq := LogInterpFrequency(p["startFrequency"], p["endFrequency"], progress)

	zr, zi := RandlesImpedance(SolutionResistance, ChargeTransferRes, DoubleLayerCap, WarburgCoefficient, freq)

	// Real and imaginary parts are perturbed independently, the
	// imaginary channel with twice the relative scale.
	nl := p["noiseLevel"]
	zr += gaussNoise(rng, nl*math.Abs(zr))
	zi += gaussNoise(rng, 2*nl*math.Abs(zi))

	negIm := -zi
	phase := math.Atan2(negIm, zr) * 180 / math.Pi

	return series.Point{X: zr, Y: negIm, Z: freq, Phase: phase, Time: elapsed}
}

// LogInterpFrequency interpolates logarithmically between the sweep
// bounds: progress 0 maps to start, 1 to end, 0.5 to their geometric
// mean.
func LogInterpFrequency(start, end, progress float64) float64 {
	return start * math.Pow(end/start, progress)
}

// RandlesImpedance evaluates the equivalent circuit at the given
// frequency and returns (Z', Z''). The Warburg term contributes
// sigma/sqrt(w) to both parts with opposite sign.
func RandlesImpedance(rs, rct, cdl, sigma, freq float64) (float64, float64) {
	w := 2 * math.Pi * freq

	parallel := 1 / complex(1/rct, w*cdl)
	warburg := complex(sigma/math.Sqrt(w), -sigma/math.Sqrt(w))
	z := complex(rs, 0) + parallel + warburg

	return real(z), imag(z)
}
