package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTechnique = "cv"
	DefaultSpeed     = 1.0
	DefaultSeed      = 42
)

// Config is the caller-facing run description loaded from YAML or
// built by the CLI. Parameters not listed fall back to the technique
// schema defaults; validation happens when the controller is
// configured, not here.
type Config struct {
	Technique  string             `yaml:"technique"`
	Seed       int64              `yaml:"seed"`
	Speed      float64            `yaml:"speed"`
	Parameters map[string]float64 `yaml:"parameters"`
}

func DefaultConfig() *Config {
	return &Config{
		Technique:  DefaultTechnique,
		Seed:       DefaultSeed,
		Speed:      DefaultSpeed,
		Parameters: map[string]float64{},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
