package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the simulator binary.
type Config struct {
	Storage    Storage    `yaml:"storage"`
	Simulation Simulation `yaml:"simulation"`
	Report     Report     `yaml:"report"`
}

// Storage selects the price datasource: a Postgres URL, or a directory of
// per-symbol CSV files when no URL is set.
type Storage struct {
	DatabaseURL string `yaml:"database_url"`
	DataDir     string `yaml:"data_dir"`
}

// Simulation holds the cost parameters of a run.
type Simulation struct {
	StartingCash float64 `yaml:"starting_cash"`
	Commission   float64 `yaml:"commission"`
	Impact       float64 `yaml:"impact"`
}

// Report controls run output.
type Report struct {
	OutputCSV string `yaml:"output_csv"`
}

// Load reads the YAML configuration file at the given path and applies
// environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Simulation: Simulation{
			StartingCash: 1000000,
			Commission:   9.95,
			Impact:       0.005,
		},
		Storage: Storage{
			DataDir: "data",
		},
	}
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DatabaseURL = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
}
