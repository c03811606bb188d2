package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a configuration from YAML bytes. Keys left out keep their
// zero values; apply defaults by merging over NewConfig.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Convert.Languages = slices.Clone(c.Convert.Languages)
	return &clone
}
