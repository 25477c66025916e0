// Package config holds the engine constants and the funsel.yaml loader.
//
// funsel.yaml is optional: every field has a default, and a missing file is
// not an error. The file tunes resource bounds and the selection cache:
//
//	max_depth: 1024
//	cache: .funsel/selections.db
//	ranks:
//	  serialize.member: high
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level funsel.yaml configuration.
type Config struct {
	// MaxDepth is the recursion bound for the evaluator (numeric and list).
	// Zero means DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Cache is the path to the persistent selection cache database.
	// Empty disables persistence; resolutions are still memoized in-process.
	Cache string `yaml:"cache,omitempty"`

	// Ranks overrides the declared rank of guarded candidates, keyed by
	// candidate label ("<operation>.<name>"). Valid values: fallback,
	// low, normal, high.
	Ranks map[string]string `yaml:"ranks,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{MaxDepth: DefaultMaxDepth}
}

// Load reads and validates a funsel.yaml file.
// A missing file yields the defaults, not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses funsel.yaml contents.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and rank names.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must be non-negative, got %d", ConfigFileName, c.MaxDepth)
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	for key, rank := range c.Ranks {
		switch rank {
		case "fallback", "low", "normal", "high":
		default:
			return fmt.Errorf("%s: ranks[%s]: unknown rank %q", ConfigFileName, key, rank)
		}
	}
	return nil
}
