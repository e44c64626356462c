package simreg

import (
	"sync"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/functions"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/simtypes"
)

// Registries holds one registry per entity kind
type Registries struct {
	Classes    *classes.Registry
	Functions  *functions.Registry
	Modules    *simtypes.Registry[simtypes.Module]
	Channels   *simtypes.Registry[simtypes.Channel]
	Networks   *simtypes.Registry[simtypes.Network]
	Interfaces *iface.Registry
}

// NewRegistries creates an empty set of registries sharing one duplicate policy
func NewRegistries(policy registry.DuplicatePolicy) *Registries {
	opt := registry.WithPolicy(policy)
	return &Registries{
		Classes:    classes.NewRegistry(opt),
		Functions:  functions.NewRegistry(opt),
		Modules:    simtypes.NewModuleRegistry(opt),
		Channels:   simtypes.NewChannelRegistry(opt),
		Networks:   simtypes.NewNetworkRegistry(opt),
		Interfaces: iface.NewRegistry(opt),
	}
}

var (
	defaultOnce       sync.Once
	defaultRegistries *Registries
)

// Default returns the process-wide registries, creating them on first use
func Default() *Registries {
	defaultOnce.Do(func() {
		defaultRegistries = NewRegistries(registry.Overwrite)
	})
	return defaultRegistries
}

// SetPolicy changes the duplicate policy of every registry
func (r *Registries) SetPolicy(p registry.DuplicatePolicy) {
	r.Classes.Table().SetPolicy(p)
	r.Functions.Table().SetPolicy(p)
	r.Modules.Table().SetPolicy(p)
	r.Channels.Table().SetPolicy(p)
	r.Networks.Table().SetPolicy(p)
	r.Interfaces.Table().SetPolicy(p)
}

// Seal ends the startup phase for every registry
func (r *Registries) Seal() {
	r.Classes.Table().Seal()
	r.Functions.Table().Seal()
	r.Modules.Table().Seal()
	r.Channels.Table().Seal()
	r.Networks.Table().Seal()
	r.Interfaces.Table().Seal()
}

// Reset empties every registry. Intended for tests.
func (r *Registries) Reset() {
	r.Classes.Table().Reset()
	r.Functions.Table().Reset()
	r.Modules.Table().Reset()
	r.Channels.Table().Reset()
	r.Networks.Table().Reset()
	r.Interfaces.Table().Reset()
}

// CreateOne instantiates a registered class
func (r *Registries) CreateOne(name string) (classes.Object, error) {
	return r.Classes.CreateOne(name)
}

// CreateModule instantiates a module type and reports the interface it implements
func (r *Registries) CreateModule(name string) (simtypes.Module, string, error) {
	m, e, err := r.Modules.Create(name)
	if err != nil {
		return nil, "", err
	}
	return m, e.InterfaceName, nil
}

// CreateChannel instantiates a channel type and reports the interface it implements
func (r *Registries) CreateChannel(name string) (simtypes.Channel, string, error) {
	c, e, err := r.Channels.Create(name)
	if err != nil {
		return nil, "", err
	}
	return c, e.InterfaceName, nil
}

// CreateNetwork instantiates a network type and reports the interface it implements
func (r *Registries) CreateNetwork(name string) (simtypes.Network, string, error) {
	n, e, err := r.Networks.Create(name)
	if err != nil {
		return nil, "", err
	}
	return n, e.InterfaceName, nil
}

// LookupFunction resolves a function called from an expression
func (r *Registries) LookupFunction(name string, arity int) (*functions.Function, error) {
	return r.Functions.Lookup(name, arity)
}

// CheckConformance verifies that module type name satisfies its interface
func (r *Registries) CheckConformance(name string, impl iface.Implementation) error {
	e, err := r.Modules.Lookup(name)
	if err != nil {
		return err
	}
	d, err := r.Interfaces.Lookup(e.InterfaceName)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNonconforming, "module type %s: no interface %s", name, e.InterfaceName).
			WithDetail("name", name).
			WithDetail("interface", e.InterfaceName)
	}
	if err := iface.Conform(d, impl); err != nil {
		return errors.Wrapf(err, errors.ErrNonconforming, "module type %s does not conform", name).
			WithDetail("name", name).
			WithDetail("interface", e.InterfaceName)
	}
	return nil
}

// Summary counts registered entries per kind
type Summary struct {
	Classes    int `yaml:"classes"`
	Functions  int `yaml:"functions"`
	Modules    int `yaml:"modules"`
	Channels   int `yaml:"channels"`
	Networks   int `yaml:"networks"`
	Interfaces int `yaml:"interfaces"`
}

// Summary returns the current entry counts
func (r *Registries) Summary() Summary {
	return Summary{
		Classes:    r.Classes.Len(),
		Functions:  r.Functions.Len(),
		Modules:    r.Modules.Len(),
		Channels:   r.Channels.Len(),
		Networks:   r.Networks.Len(),
		Interfaces: r.Interfaces.Len(),
	}
}
