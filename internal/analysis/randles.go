package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"

	"github.com/echem-lab/echemsim/internal/model"
	"github.com/echem-lab/echemsim/internal/series"
)

// RandlesFit is the least-squares refinement of the equivalent-circuit
// parameters against a measured spectrum.
type RandlesFit struct {
	Rs      float64 // Ohm
	Rct     float64 // Ohm
	Cdl     float64 // F
	Warburg float64 // Ohm s^-1/2
	ChiSq   float64
}

// FitRandles fits (Rs, Rct, Cdl, sigma) to the spectrum with
// Levenberg-Marquardt under modulus weighting, seeded from the
// geometric extraction. Points without a positive frequency are
// skipped; the fit needs more points than parameters.
func FitRandles(pts []series.Point, rsInit, rctInit float64) (fit *RandlesFit, err error) {
	var freqs, obsRe, obsIm []float64
	for _, p := range pts {
		if p.Z <= 0 {
			continue
		}
		freqs = append(freqs, p.Z)
		obsRe = append(obsRe, p.X)
		obsIm = append(obsIm, -p.Y)
	}
	if len(freqs) <= 4 {
		return nil, errors.New("randles fit: not enough spectrum points")
	}

	residuals := func(dst, x []float64) {
		for i, f := range freqs {
			zr, zi := model.RandlesImpedance(x[0], x[1], x[2], x[3], f)
			d2 := (obsRe[i]-zr)*(obsRe[i]-zr) + (obsIm[i]-zi)*(obsIm[i]-zi)
			weight := obsRe[i]*obsRe[i] + obsIm[i]*obsIm[i]
			if weight == 0 {
				weight = 1
			}
			dst[i] = d2 / weight
		}
	}

	if rsInit <= 0 {
		rsInit = 1
	}
	if rctInit <= 0 {
		rctInit = 1
	}
	init := []float64{rsInit, rctInit, 1e-5, 10}

	jac := lm.NumJac{Func: residuals}
	problem := lm.LMProblem{
		Dim:        len(init),
		Size:       len(freqs),
		Func:       residuals,
		Jac:        jac.Jac,
		InitParams: init,
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	// The LM implementation panics on a singular normal matrix.
	defer func() {
		if r := recover(); r != nil {
			fit = nil
			err = fmt.Errorf("randles fit: %v", r)
		}
	}()

	res, err := lm.LM(problem, &lm.Settings{Iterations: 500, ObjectiveTol: 1e-12})
	if err != nil {
		return nil, fmt.Errorf("randles fit: %w", err)
	}

	chi := 0.0
	dst := make([]float64, len(freqs))
	residuals(dst, res.X)
	for _, v := range dst {
		chi += v
	}
	if math.IsNaN(chi) || math.IsInf(chi, 0) {
		return nil, errors.New("randles fit: diverged")
	}

	return &RandlesFit{
		Rs:      res.X[0],
		Rct:     res.X[1],
		Cdl:     res.X[2],
		Warburg: res.X[3],
		ChiSq:   chi,
	}, nil
}
