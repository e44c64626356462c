// Package simtypes holds the three top-level extensible entity kinds of the
// simulation framework: module types, channel types and network types.
//
// Each registered type couples a concrete factory with the name of the
// interface it implements. The interface name defaults to the registered
// name, but several concrete types may share one interface.
package simtypes

import (
	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
)

// Module is a simulation module instance
type Module interface {
	classes.Object
}

// Channel is a connection type between gates
type Channel interface {
	classes.Object
}

// Network is a top-level model; it names the module types it instantiates
type Network interface {
	classes.Object
	Submodules() []string
}

// Entry is one registered concrete type of kind T
type Entry[T classes.Object] struct {
	Name          string
	InterfaceName string
	Create        func() T
}

// ModuleType, ChannelType and NetworkType are the registry payloads
type (
	ModuleType  = Entry[Module]
	ChannelType = Entry[Channel]
	NetworkType = Entry[Network]
)

// Registry stores concrete types of one kind
type Registry[T classes.Object] struct {
	types *registry.Named[*Entry[T]]
}

func newRegistry[T classes.Object](kind string, miss errors.ErrorCode, opts []registry.Option) *Registry[T] {
	opts = append([]registry.Option{registry.WithMissCode(miss)}, opts...)
	return &Registry[T]{types: registry.New[*Entry[T]](kind, opts...)}
}

// NewModuleRegistry creates an empty module type registry
func NewModuleRegistry(opts ...registry.Option) *Registry[Module] {
	return newRegistry[Module]("module type", errors.ErrUnknownModule, opts)
}

// NewChannelRegistry creates an empty channel type registry
func NewChannelRegistry(opts ...registry.Option) *Registry[Channel] {
	return newRegistry[Channel]("channel type", errors.ErrUnknownChannel, opts)
}

// NewNetworkRegistry creates an empty network type registry
func NewNetworkRegistry(opts ...registry.Option) *Registry[Network] {
	return newRegistry[Network]("network type", errors.ErrUnknownNetwork, opts)
}

// Register adds a concrete type. An empty InterfaceName means the type
// implements the interface of its own name.
func (r *Registry[T]) Register(e Entry[T]) error {
	if e.Create == nil {
		return errors.Newf(errors.ErrInvalidInput, "%s %q registered with nil factory", r.types.Kind(), e.Name).
			WithDetail("name", e.Name)
	}
	if e.InterfaceName == "" {
		e.InterfaceName = e.Name
	}
	return r.types.Add(e.Name, &e)
}

// Lookup returns the registered entry
func (r *Registry[T]) Lookup(name string) (*Entry[T], error) {
	return r.types.Lookup(name)
}

// Create instantiates the type registered under name and returns it with
// its registry entry, whose InterfaceName drives conformance checks.
func (r *Registry[T]) Create(name string) (T, *Entry[T], error) {
	var zero T
	e, err := r.types.Lookup(name)
	if err != nil {
		return zero, nil, err
	}
	obj := e.Create()
	if any(obj) == nil {
		return zero, nil, errors.Newf(errors.ErrInternal, "factory for %s %q returned nil", r.types.Kind(), name).
			WithDetail("name", name)
	}
	return obj, e, nil
}

// Implementers lists the types coupled with interfaceName, in registration order
func (r *Registry[T]) Implementers(interfaceName string) []string {
	var out []string
	r.types.Each(func(name string, e *Entry[T]) bool {
		if e.InterfaceName == interfaceName {
			out = append(out, name)
		}
		return true
	})
	return out
}

// Entries returns all registered entries in registration order
func (r *Registry[T]) Entries() []*Entry[T] {
	out := make([]*Entry[T], 0, r.types.Len())
	r.types.Each(func(_ string, e *Entry[T]) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Names lists registered types in registration order
func (r *Registry[T]) Names() []string { return r.types.Names() }

// Len returns the number of registered types
func (r *Registry[T]) Len() int { return r.types.Len() }

// Table exposes the underlying registry for sealing and policy changes
func (r *Registry[T]) Table() *registry.Named[*Entry[T]] { return r.types }
