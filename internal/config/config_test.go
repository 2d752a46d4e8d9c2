package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Technique != "cv" {
		t.Errorf("expected technique cv, got %s", cfg.Technique)
	}
	if cfg.Speed <= 0 {
		t.Error("speed should be positive")
	}
	if cfg.Parameters == nil {
		t.Error("parameters map should be initialized")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cv", "standard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Parameters["scanRate"] != 0.05 {
		t.Errorf("expected scan rate 0.05, got %g", cfg.Parameters["scanRate"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("cv", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "standard"); cfg != nil {
		t.Error("expected nil for nonexistent technique")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("eis"); len(presets) == 0 {
		t.Error("expected presets for eis")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent technique")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := &Config{
		Technique: "eis",
		Seed:      99,
		Speed:     2,
		Parameters: map[string]float64{
			"startFrequency": 1e4,
			"endFrequency":   1,
		},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Technique != "eis" || loaded.Seed != 99 {
		t.Errorf("round trip mangled config: %+v", loaded)
	}
	if loaded.Parameters["startFrequency"] != 1e4 {
		t.Errorf("parameters lost in round trip: %+v", loaded.Parameters)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
