package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errInvalidConfig = errors.New("invalid query configuration")

// rangeConfig bounds a swept quantity. A zero range means "use the table
// bounds".
type rangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r rangeConfig) isZero() bool {
	return r.Min == 0 && r.Max == 0
}

// queryConfig is the driver configuration, read from YAML and overridden by
// flags.
type queryConfig struct {
	Table    string      `yaml:"table"`
	Shape    []int       `yaml:"shape"`
	Density  rangeConfig `yaml:"density"`
	Energy   rangeConfig `yaml:"energy"`
	Parallel bool        `yaml:"parallel"`
	Workers  int         `yaml:"workers"`
	SIMD     bool        `yaml:"simd"`
	Float32  bool        `yaml:"float32"`
	Repeat   int         `yaml:"repeat"`
}

func defaultQueryConfig() queryConfig {
	return queryConfig{
		Shape:    []int{defaultEdge, defaultEdge, defaultEdge},
		Parallel: true,
		Workers:  defaultWorkers,
		Repeat:   defaultRepeat,
	}
}

// loadConfig merges the YAML file at path into cfg.
func loadConfig(path string, cfg *queryConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// validate checks the merged configuration.
func (c *queryConfig) validate() error {
	if c.Table == "" {
		return fmt.Errorf("%w: no table file given", errInvalidConfig)
	}
	if n := len(c.Shape); n < minRank || n > maxRank {
		return fmt.Errorf("%w: shape %v must have 3 or 4 dimensions", errInvalidConfig, c.Shape)
	}
	for _, d := range c.Shape {
		if d < 1 {
			return fmt.Errorf("%w: shape %v has non-positive dimension", errInvalidConfig, c.Shape)
		}
	}
	if !c.Density.isZero() && (c.Density.Min <= 0 || c.Density.Max < c.Density.Min) {
		return fmt.Errorf("%w: density range [%g, %g]", errInvalidConfig, c.Density.Min, c.Density.Max)
	}
	if !c.Energy.isZero() && c.Energy.Max < c.Energy.Min {
		return fmt.Errorf("%w: energy range [%g, %g]", errInvalidConfig, c.Energy.Min, c.Energy.Max)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative", errInvalidConfig)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("%w: repeat must be at least 1", errInvalidConfig)
	}
	return nil
}
