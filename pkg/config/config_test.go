package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "overwrite", cfg.Registry.Duplicates)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Docs.Style)

	p, err := cfg.DuplicatePolicy()
	require.NoError(t, err)
	assert.Equal(t, registry.Overwrite, p)
}

func TestLoadUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simreg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[registry]\nduplicates = \"reject\"\n\n[docs]\nwidth = 72\n"), 0644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := LoadConfiguration(nil)
	require.NoError(t, err)

	p, err := cfg.DuplicatePolicy()
	require.NoError(t, err)
	assert.Equal(t, registry.Reject, p)
	assert.Equal(t, 72, cfg.Docs.Width)
	assert.Equal(t, "auto", cfg.Output.Format, "defaults survive for unset keys")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simreg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[registry]\nduplicates = \"reject\"\n"), 0644))
	t.Setenv("SIMREG_REGISTRY_DUPLICATES", "overwrite")

	cfg, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "overwrite", cfg.Registry.Duplicates)
}

func TestOverridesWin(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := LoadConfiguration(map[string]interface{}{
		"output.format":     "yaml",
		"logging.verbosity": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Logging.Verbosity)
}

func TestInvalidValues(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "absent.toml"))

	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"duplicate policy", map[string]interface{}{"registry.duplicates": "sometimes"}},
		{"output format", map[string]interface{}{"output.format": "json"}},
		{"verbosity", map[string]interface{}{"logging.verbosity": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(tt.overrides)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.toml"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[registry\n"), 0644))
	_, err = LoadFile(bad, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestUserConfigPath(t *testing.T) {
	t.Setenv(EnvConfigFile, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", UserConfigPath())

	t.Setenv(EnvConfigFile, "")
	assert.Equal(t, filepath.Join(xdg.ConfigHome, "simreg", "simreg.toml"), UserConfigPath())
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(func() { globalConfig = nil })

	globalConfig = nil
	assert.Equal(t, "overwrite", Get().Registry.Duplicates)

	custom := Default()
	custom.Output.Format = "text"
	Initialize(custom)
	assert.Same(t, custom, Get())
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, DefaultContent(), "[registry]")
}
