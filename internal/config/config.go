// Package config loads the optional .hookstorm.yaml file that gives the
// CLI its discovery defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/hookstorm/internal/discover"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".hookstorm.yaml"

// Config holds CLI defaults. Flags override every field.
type Config struct {
	// Roots are the directories walked for hook files.
	Roots []string `yaml:"roots"`

	// Suffix is the hook file suffix (without the .lua extension).
	Suffix string `yaml:"suffix"`

	// Verbose enables per-hook invocation tracing.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Suffix: discover.DefaultSuffix,
	}
}

// Load reads and validates a config file. Unknown keys are rejected so
// a typo does not silently fall back to defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Suffix == "" {
		cfg.Suffix = discover.DefaultSuffix
	}
	return cfg, nil
}

// LoadOrDefault loads DefaultFileName from dir when it exists, the
// built-in defaults otherwise. A malformed file is still an error.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
