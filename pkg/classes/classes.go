// Package classes implements the class factory: polymorphic objects that can
// be created knowing only their registered class name.
package classes

import (
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
)

// Object is the capability every registered class shares
type Object interface {
	// ClassName identifies the concrete kind of the object
	ClassName() string
}

// Factory creates a fresh instance of one class
type Factory func() Object

// Registry maps class names to factories
type Registry struct {
	factories *registry.Named[Factory]
}

// NewRegistry creates an empty class registry
func NewRegistry(opts ...registry.Option) *Registry {
	opts = append([]registry.Option{registry.WithMissCode(errors.ErrUnknownClass)}, opts...)
	return &Registry{factories: registry.New[Factory]("class", opts...)}
}

// Register couples name with factory
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "class %q registered with nil factory", name).
			WithDetail("name", name)
	}
	return r.factories.Add(name, factory)
}

// CreateOne instantiates the class registered under name
func (r *Registry) CreateOne(name string) (Object, error) {
	factory, err := r.factories.Lookup(name)
	if err != nil {
		return nil, err
	}
	obj := factory()
	if obj == nil {
		return nil, errors.Newf(errors.ErrInternal, "factory for class %q returned nil", name).
			WithDetail("name", name)
	}
	return obj, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	return r.factories.Has(name)
}

// Names lists registered classes in registration order
func (r *Registry) Names() []string {
	return r.factories.Names()
}

// Len returns the number of registered classes
func (r *Registry) Len() int {
	return r.factories.Len()
}

// Table exposes the underlying registry for sealing and policy changes
func (r *Registry) Table() *registry.Named[Factory] {
	return r.factories
}
