package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is an ordinary least squares line fit.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// LinearFit fits y = intercept + slope*x. It reports false when fewer
// than two samples are supplied or the fit degenerates (all x equal).
// A zero total variance short-circuits R2 to 1 when the residuals also
// vanish and 0 otherwise, so the result is never NaN.
func LinearFit(xs, ys []float64) (Fit, bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Fit{}, false
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return Fit{}, false
	}

	var ssRes, ssTot float64
	mean := stat.Mean(ys, nil)
	for i := range ys {
		pred := intercept + slope*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - mean) * (ys[i] - mean)
	}

	r2 := 0.0
	switch {
	case ssTot == 0 && ssRes == 0:
		r2 = 1
	case ssTot == 0:
		r2 = 0
	default:
		r2 = 1 - ssRes/ssTot
	}

	return Fit{Slope: slope, Intercept: intercept, R2: r2}, true
}
