package iface

import (
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
)

// Registry stores descriptors by class name
type Registry struct {
	descs *registry.Named[*Descriptor]
}

// NewRegistry creates an empty interface registry
func NewRegistry(opts ...registry.Option) *Registry {
	opts = append([]registry.Option{registry.WithMissCode(errors.ErrUnknownInterface)}, opts...)
	return &Registry{descs: registry.New[*Descriptor]("interface", opts...)}
}

// Register adds d under its own name
func (r *Registry) Register(d *Descriptor) error {
	if d == nil {
		return errors.New(errors.ErrInvalidInput, "nil interface descriptor")
	}
	return r.descs.Add(d.Name(), d)
}

// Lookup returns the descriptor registered under name
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	return r.descs.Lookup(name)
}

// Names lists registered interfaces in registration order
func (r *Registry) Names() []string { return r.descs.Names() }

// Len returns the number of registered interfaces
func (r *Registry) Len() int { return r.descs.Len() }

// Table exposes the underlying registry for sealing and policy changes
func (r *Registry) Table() *registry.Named[*Descriptor] { return r.descs }
