package core

import (
	"os"

	"github.com/arthur-debert/simreg/pkg/config"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/logging"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/startup"

	// Import the declaring packages so their init functions queue registrations
	_ "github.com/arthur-debert/simreg/pkg/functions/mathlib"
	_ "github.com/arthur-debert/simreg/pkg/models"
)

// Initialize runs the default startup queue against the default registries
func Initialize(cfg *config.Config) (*simreg.Registries, error) {
	reg := simreg.Default()
	if err := Bootstrap(startup.Default(), reg, cfg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Bootstrap applies the configured duplicate policy to reg, drains q and
// seals reg. Calling it again after a successful run only re-seals.
func Bootstrap(q *startup.Queue, reg *simreg.Registries, cfg *config.Config) error {
	logger := logging.GetLogger("core.init")
	done := logging.LogOperationStart(logger, "bootstrap")
	defer done()

	if cfg == nil {
		cfg = config.Get()
	}
	policy, err := cfg.DuplicatePolicy()
	if err != nil {
		return errors.Wrap(err, errors.ErrStartupFailed, "cannot bootstrap registries")
	}
	reg.SetPolicy(policy)

	if err := q.Run(); err != nil {
		if errors.IsErrorCode(err, errors.ErrStartupFailed) {
			return err
		}
		return errors.Wrap(err, errors.ErrStartupFailed, "startup queue failed")
	}
	reg.Seal()

	s := reg.Summary()
	logger.Debug().
		Str("duplicates", policy.String()).
		Int("classes", s.Classes).
		Int("functions", s.Functions).
		Int("modules", s.Modules).
		Int("channels", s.Channels).
		Int("networks", s.Networks).
		Int("interfaces", s.Interfaces).
		Msg("Registries sealed")
	return nil
}

// MustInitialize loads configuration and initializes the registries.
// Any failure is fatal for the process.
func MustInitialize() *simreg.Registries {
	logger := logging.GetLogger("core.init")

	cfg, err := config.LoadConfiguration(nil)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	config.Initialize(cfg)

	reg, err := Initialize(cfg)
	if err != nil {
		logger.Error().Err(err).Interface("details", errors.GetErrorDetails(err)).Msg("Registration failed")
		os.Exit(1)
	}
	return reg
}
