package config

import (
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/ui"
)

// Config is the complete application configuration
type Config struct {
	Registry Registry `koanf:"registry"`
	Logging  Logging  `koanf:"logging"`
	Output   Output   `koanf:"output"`
	Docs     Docs     `koanf:"docs"`
}

// Registry configures the name registries
type Registry struct {
	Duplicates string `koanf:"duplicates"`
}

// Logging configures the logger
type Logging struct {
	Verbosity int `koanf:"verbosity"`
}

// Output configures command output
type Output struct {
	Format string `koanf:"format"`
}

// Docs configures documentation rendering
type Docs struct {
	Style string `koanf:"style"`
	Width int    `koanf:"width"`
}

// DuplicatePolicy parses the configured duplicate policy
func (c *Config) DuplicatePolicy() (registry.DuplicatePolicy, error) {
	p, err := registry.ParsePolicy(c.Registry.Duplicates)
	if err != nil {
		return registry.Overwrite, errors.Wrapf(err, errors.ErrConfigValid, "invalid registry.duplicates").
			WithDetail("value", c.Registry.Duplicates)
	}
	return p, nil
}

// Validate checks values that the loader cannot type-check
func (c *Config) Validate() error {
	if _, err := c.DuplicatePolicy(); err != nil {
		return err
	}
	if _, err := ui.ParseFormat(c.Output.Format); err != nil {
		return errors.Newf(errors.ErrConfigValid, "invalid output.format %q", c.Output.Format).
			WithDetail("value", c.Output.Format)
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := load("", nil)
	if err != nil {
		// the embedded defaults are part of the binary
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}
