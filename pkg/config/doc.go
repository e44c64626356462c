// Package config handles application configuration for simreg.
// It layers the embedded defaults, an optional TOML user file,
// environment variables and explicit overrides, in that order.
package config
