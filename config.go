package eos

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Config holds query configuration of a Table.
type Config struct {
	// EnableParallel splits each query across goroutines.
	// Results are bit-identical to sequential evaluation.
	EnableParallel bool

	// Workers is the number of goroutines used when EnableParallel is set.
	// Set to 0 to use GOMAXPROCS.
	Workers int

	// MinChunk is the minimum number of elements per worker.
	// Set to 0 to use the default (4096).
	MinChunk int

	// EnableSIMD contracts cell coefficients with SIMD dot products.
	// Set to false to use the pure Go Horner evaluation.
	EnableSIMD bool

	// Logger receives load diagnostics. Nil uses the logrus standard logger.
	Logger *logrus.Logger
}

// Option modifies a Config.
type Option func(*Config)

// DefaultConfig returns the sequential, pure Go configuration.
func DefaultConfig() Config {
	return Config{
		MinChunk: defaultMinChunk,
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(dst *Config) {
		*dst = c
	}
}

// WithParallel enables parallel queries on the given number of workers
// (0 = GOMAXPROCS).
func WithParallel(workers int) Option {
	return func(c *Config) {
		c.EnableParallel = true
		c.Workers = workers
	}
}

// WithSIMD toggles SIMD coefficient contraction.
func WithSIMD(enabled bool) Option {
	return func(c *Config) {
		c.EnableSIMD = enabled
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}

	if c.MinChunk < 0 {
		return fmt.Errorf("%w: min chunk must be non-negative, got %d", ErrInvalidConfig, c.MinChunk)
	}

	return nil
}

// resolve fills in defaults for zero-valued fields.
func (c *Config) resolve() {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.MinChunk == 0 {
		c.MinChunk = defaultMinChunk
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
}
