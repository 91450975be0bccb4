// Package config loads the optional licenseid YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// SnapshotEnv overrides Config.Snapshot when set.
	SnapshotEnv = "LICENSEID_SNAPSHOT"

	defaultThreshold   = 0.8
	defaultHeaderLines = 40
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds user settings. Command-line flags take precedence.
type Config struct {
	// Snapshot is a corpus snapshot path; empty selects the embedded corpus.
	Snapshot    string   `yaml:"snapshot"`
	Threshold   float64  `yaml:"threshold"`
	HeaderLines int      `yaml:"header_lines"`
	Exclude     []string `yaml:"exclude"`
	CrossCheck  bool     `yaml:"crosscheck"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold:   defaultThreshold,
		HeaderLines: defaultHeaderLines,
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "licenseid", "config.yaml")
}

// Load reads the file at path on top of Default and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if s := os.Getenv(SnapshotEnv); s != "" {
		cfg.Snapshot = s
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v not in [0,1]", ErrInvalid, c.Threshold)
	}
	if c.HeaderLines < 0 {
		return fmt.Errorf("%w: header_lines %d is negative", ErrInvalid, c.HeaderLines)
	}
	return nil
}

// Save writes c to path as YAML, creating parent directories.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
