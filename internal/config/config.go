// Package config loads the harness configuration from harness.yaml.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// #region types

// SplitConfig controls the calibration/evaluation split.
type SplitConfig struct {
	Ratio float64 `yaml:"ratio"`
	Seed  int64   `yaml:"seed"`
}

// CalibrateConfig controls the grid search.
type CalibrateConfig struct {
	TopK    int `yaml:"top_k"`
	Workers int `yaml:"workers"`
}

// OutputConfig names the persisted artifacts.
type OutputConfig struct {
	Contract string `yaml:"contract"`
	Database string `yaml:"database"`
}

// Config is the top-level structure for harness.yaml.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Split     SplitConfig     `yaml:"split"`
	Calibrate CalibrateConfig `yaml:"calibrate"`
	Output    OutputConfig    `yaml:"output"`
}

// #endregion types

// #region defaults

// Default returns the configuration used when no harness.yaml exists.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Split:   SplitConfig{Ratio: 0.7, Seed: 42},
		Calibrate: CalibrateConfig{
			TopK:    2,
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Contract: "calibration.json",
			Database: "calibration.db",
		},
	}
}

// #endregion defaults

// #region loader

// Load reads and parses path, filling absent fields from Default. A
// missing file is not an error: the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Split.Ratio < 0 || cfg.Split.Ratio > 1 {
		return nil, fmt.Errorf("parse config: split ratio %v outside [0, 1]", cfg.Split.Ratio)
	}
	return cfg, nil
}

// #endregion loader
