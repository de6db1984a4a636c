package gen

import (
	"errors"

	"github.com/syssam/regen/registry"
)

// Option configures a generation run.
type Option func(*Config) error

// WithRoot sets the directory relative target paths are resolved against.
func WithRoot(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Root", nil, "root directory cannot be empty")
		}
		c.Root = dir
		return nil
	}
}

// WithVersion sets the game version recorded in each generated region.
func WithVersion(version string) Option {
	return func(c *Config) error {
		c.Version = version
		return nil
	}
}

// WithTargets adds target files.
func WithTargets(targets ...Target) Option {
	return func(c *Config) error {
		for _, t := range targets {
			if t.File == "" {
				return NewConfigError("Targets", nil, "target file cannot be empty")
			}
		}
		c.Targets = append(c.Targets, targets...)
		return nil
	}
}

// WithWorkers sets the number of files rewritten in parallel.
// Zero selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithMode sets the write mode.
func WithMode(m Mode) Option {
	return func(c *Config) error {
		if m < ModeWrite || m > ModeDryRun {
			return NewConfigError("Mode", m, "unknown mode")
		}
		c.Mode = m
		return nil
	}
}

// WithMirror enables the Go registry mirror, written to dir as package pkg.
// The package name defaults to the base name of dir.
func WithMirror(access *registry.Access, dir, pkg string, registries ...registry.Location) Option {
	return func(c *Config) error {
		if access == nil {
			return NewConfigError("Mirror", nil, "registry access cannot be nil")
		}
		if dir == "" {
			return NewConfigError("Mirror", nil, "mirror directory cannot be empty")
		}
		c.Mirror = &Mirror{
			Access:     access,
			Dir:        dir,
			Package:    pkg,
			Registries: registries,
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
