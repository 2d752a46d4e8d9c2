package config

var Presets = map[string]map[string]*Config{
	"cv": {
		"standard": {
			Technique: "cv", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startPotential": -0.5, "endPotential": 0.5, "scanRate": 0.05},
		},
		"fast-scan": {
			Technique: "cv", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startPotential": -0.5, "endPotential": 0.5, "scanRate": 0.5},
		},
		"wide-window": {
			Technique: "cv", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startPotential": -1.0, "endPotential": 1.0, "scanRate": 0.05},
		},
	},
	"lsv": {
		"standard": {
			Technique: "lsv", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startPotential": -0.5, "endPotential": 0.5, "scanRate": 0.05},
		},
	},
	"dpv": {
		"survey": {
			Technique: "dpv", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startPotential": -0.6, "endPotential": 0.6, "scanRate": 0.02},
		},
	},
	"eis": {
		"full-sweep": {
			Technique: "eis", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startFrequency": 1e5, "endFrequency": 0.1},
		},
		"kinetics": {
			Technique: "eis", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"startFrequency": 1e5, "endFrequency": 10},
		},
	},
	"ca": {
		"short-step": {
			Technique: "ca", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"duration": 30},
		},
		"biofilm-growth": {
			Technique: "ca", Seed: DefaultSeed, Speed: 1,
			Parameters: map[string]float64{"duration": 600, "noiseLevel": 0.01},
		},
	},
}

func GetPreset(techniqueID, preset string) *Config {
	m, ok := Presets[techniqueID]
	if !ok {
		return nil
	}
	cfg, ok := m[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(techniqueID string) []string {
	m, ok := Presets[techniqueID]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
