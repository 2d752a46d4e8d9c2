package simulate

import (
	"fmt"
	"math"
	"time"

	"github.com/echem-lab/echemsim/internal/technique"
)

const (
	// DefaultInterval is the real-time tick interval at speed 1.
	DefaultInterval = 100 * time.Millisecond

	// Number of samples in an impedance frequency sweep.
	impedancePoints = 50
)

// RunConfig is derived from a (technique, parameter set) pair at run
// start, never supplied by the caller. Changing the technique or a
// shape-affecting parameter forces a recomputation and a new run.
type RunConfig struct {
	TotalTime      float64 // simulated seconds
	Points         int     // nominal samples over a full run at speed 1
	UpdateInterval time.Duration
	NoiseLevel     float64
}

// Derive computes the run configuration for a validated parameter set.
func Derive(d technique.Descriptor, p technique.Params) (RunConfig, error) {
	cfg := RunConfig{
		UpdateInterval: DefaultInterval,
		NoiseLevel:     p["noiseLevel"],
	}

	switch d.Category {
	case technique.Voltammetry, technique.Pulse:
		span := math.Abs(p["endPotential"] - p["startPotential"])
		total := span / p["scanRate"]
		if d.ID == "cv" {
			// Forward and reverse sweep.
			total *= 2
		}
		cfg.TotalTime = total
	case technique.Impedance:
		cfg.TotalTime = float64(impedancePoints) * cfg.UpdateInterval.Seconds()
	case technique.Chronometric:
		cfg.TotalTime = p["duration"]
	default:
		return RunConfig{}, fmt.Errorf("no run configuration for category %s", d.Category)
	}

	if cfg.TotalTime <= 0 {
		return RunConfig{}, fmt.Errorf("technique %s: derived run duration must be positive, got %g", d.ID, cfg.TotalTime)
	}
	cfg.Points = int(math.Round(cfg.TotalTime / cfg.UpdateInterval.Seconds()))
	return cfg, nil
}

// shapeFingerprint identifies the series-shaping inputs of a run.
// Start clears the series whenever it changes.
func shapeFingerprint(d technique.Descriptor, p technique.Params) string {
	return fmt.Sprintf("%s|%g|%g|%g|%g|%g|%g",
		d.ID,
		p["startPotential"], p["endPotential"], p["scanRate"],
		p["startFrequency"], p["endFrequency"], p["duration"])
}
