package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/echem-lab/echemsim/internal/series"
)

const (
	// A sample is a peak when it strictly exceeds every neighbor
	// within this index window on each side.
	peakWindow = 2

	// Candidates closer than this to an accepted peak are discarded.
	minPeakSeparation = 5

	// Fraction of the global maximum a voltammetric peak must reach.
	peakRelThreshold = 0.10
)

// Peak is a local maximum of the Y channel.
type Peak struct {
	Index int
	X     float64
	Y     float64
}

// FindPeaks scans the Y channel for local maxima. A candidate must
// strictly dominate its +-2 neighborhood and clear relThreshold times
// the global maximum; candidates within minPeakSeparation indices of
// an already-accepted peak are dropped. The result is ordered by
// descending amplitude. The scan is deterministic, so repeated calls
// on the same snapshot return identical peak lists.
func FindPeaks(pts []series.Point, relThreshold float64) []Peak {
	n := len(pts)
	if n < 2*peakWindow+1 {
		return nil
	}

	ys := make([]float64, n)
	for i, p := range pts {
		ys[i] = p.Y
	}
	threshold := relThreshold * floats.Max(ys)

	var peaks []Peak
	for i := peakWindow; i < n-peakWindow; i++ {
		y := ys[i]
		if y < threshold {
			continue
		}
		if !dominates(ys, i) {
			continue
		}
		if tooClose(peaks, i) {
			continue
		}
		peaks = append(peaks, Peak{Index: i, X: pts[i].X, Y: y})
	}

	sort.SliceStable(peaks, func(a, b int) bool { return peaks[a].Y > peaks[b].Y })
	return peaks
}

func dominates(ys []float64, i int) bool {
	for j := i - peakWindow; j <= i+peakWindow; j++ {
		if j != i && ys[j] >= ys[i] {
			return false
		}
	}
	return true
}

func tooClose(accepted []Peak, i int) bool {
	for _, p := range accepted {
		if abs(i-p.Index) < minPeakSeparation {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
