// Package launch turns a run configuration into instantiated objects. It is
// the consumer of the registries: every name it handles comes from the run
// file, and an unknown name ends the current run with an error naming the
// missing identifier instead of stopping the process.
package launch

import (
	"fmt"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/logging"
	"github.com/arthur-debert/simreg/pkg/runconfig"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/simtypes"
)

// GateProvider is implemented by modules that expose gates
type GateProvider interface {
	Gates() map[string]iface.Direction
}

// ParamDefaulter is implemented by modules with built-in parameter values
type ParamDefaulter interface {
	ParamDefaults() map[string]iface.Value
}

// Submodule is one instantiated module of the network
type Submodule struct {
	Type          string                 `yaml:"type"`
	InterfaceName string                 `yaml:"interface"`
	Params        map[string]iface.Value `yaml:"-"`
	Module        simtypes.Module        `yaml:"-"`
}

// Plan is the result of preparing one configuration
type Plan struct {
	Config        string           `yaml:"config"`
	Chain         []string         `yaml:"chain"`
	NetworkName   string           `yaml:"network"`
	InterfaceName string           `yaml:"interface"`
	Network       simtypes.Network `yaml:"-"`
	Submodules    []Submodule      `yaml:"submodules"`
}

// Prepare resolves the network configured for config, creates it and each
// of its submodules, and checks every submodule against its interface
// using the parameter values of the run file.
func Prepare(reg *simreg.Registries, run *runconfig.File, config string) (*Plan, error) {
	logger := logging.GetLogger("launch")
	done := logging.LogOperationStart(logger, "prepare")
	defer done()

	chain, err := run.SectionChain(config)
	if err != nil {
		return nil, err
	}
	networkName, ok := run.LookupConfig(chain, "network")
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "no network configured in %v", chain).
			WithDetail("name", config)
	}

	network, ifName, err := reg.CreateNetwork(networkName)
	if err != nil {
		logger.Error().Err(err).Str("network", networkName).Msg("Cannot create network")
		return nil, err
	}

	plan := &Plan{
		Config:        config,
		Chain:         chain,
		NetworkName:   networkName,
		InterfaceName: ifName,
		Network:       network,
	}

	for _, typeName := range network.Submodules() {
		sub, err := prepareSubmodule(reg, run, chain, typeName)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "network %s", networkName).
				WithDetails(errors.GetErrorDetails(err))
		}
		plan.Submodules = append(plan.Submodules, *sub)
	}

	logger.Info().
		Str("config", config).
		Str("network", networkName).
		Int("submodules", len(plan.Submodules)).
		Msg("Run prepared")
	return plan, nil
}

func prepareSubmodule(reg *simreg.Registries, run *runconfig.File, chain []string, typeName string) (*Submodule, error) {
	m, ifName, err := reg.CreateModule(typeName)
	if err != nil {
		return nil, err
	}

	desc, err := reg.Interfaces.Lookup(ifName)
	if err != nil {
		return nil, err
	}

	impl := iface.Implementation{
		Gates:  map[string]iface.Direction{},
		Params: map[string]iface.Value{},
	}
	if g, ok := m.(GateProvider); ok {
		impl.Gates = g.Gates()
	}
	if d, ok := m.(ParamDefaulter); ok {
		for name, v := range d.ParamDefaults() {
			impl.Params[name] = v
		}
	}

	for _, p := range desc.Params() {
		raw, _, found := run.LookupParam(chain, typeName, p.Name)
		if !found {
			continue
		}
		v, err := ToValue(raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeMismatch, "%s.%s", typeName, p.Name).
				WithDetail("name", typeName+"."+p.Name)
		}
		impl.Params[p.Name] = v
	}

	if err := reg.CheckConformance(typeName, impl); err != nil {
		return nil, err
	}

	return &Submodule{
		Type:          typeName,
		InterfaceName: ifName,
		Params:        impl.Params,
		Module:        m,
	}, nil
}

// ToValue converts a decoded TOML value into a parameter value
func ToValue(raw interface{}) (iface.Value, error) {
	switch v := raw.(type) {
	case int64:
		return iface.LongValue(v), nil
	case int:
		return iface.LongValue(int64(v)), nil
	case float64:
		return iface.DoubleValue(v), nil
	case bool:
		return iface.BoolValue(v), nil
	case string:
		return iface.ParseValue(v)
	default:
		return iface.Value{}, errors.Newf(errors.ErrTypeMismatch, "unsupported parameter value %v (%T)", raw, raw)
	}
}

// ParamStrings renders the parameter values of a submodule for display
func (s Submodule) ParamStrings() map[string]string {
	out := make(map[string]string, len(s.Params))
	for name, v := range s.Params {
		out[name] = fmt.Sprint(v)
	}
	return out
}
