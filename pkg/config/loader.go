package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/simreg/pkg/errors"
)

const (
	// EnvConfigFile points at an explicit user config file
	EnvConfigFile = "SIMREG_CONFIG"
	// EnvPrefix prefixes environment overrides, e.g. SIMREG_REGISTRY_DUPLICATES
	EnvPrefix = "SIMREG_"
)

// LoadConfiguration loads defaults, the user file, the environment and overrides
func LoadConfiguration(overrides map[string]interface{}) (*Config, error) {
	return load(UserConfigPath(), overrides)
}

// LoadFile loads defaults, the given file, the environment and overrides
func LoadFile(path string, overrides map[string]interface{}) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).
			WithDetail("path", path)
	}
	return load(path, overrides)
}

func load(userPath string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file, if present
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath).
					WithDetail("path", userPath)
			}
		}
	}

	// 3. Environment, SIMREG_REGISTRY_DUPLICATES -> registry.duplicates
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides, usually from command-line flags
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UserConfigPath returns SIMREG_CONFIG or $XDG_CONFIG_HOME/simreg/simreg.toml
func UserConfigPath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "simreg", "simreg.toml")
}
