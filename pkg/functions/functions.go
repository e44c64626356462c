// Package functions holds the numeric functions that modeling-language
// expressions may call. A function is identified by its name together with
// its arity, so "max/2" and "max/3" are distinct entries.
package functions

import (
	"fmt"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/registry"
)

// MaxArity is the largest supported argument count
const MaxArity = 3

// MathFunc is the uniform calling convention for registered functions
type MathFunc func(args ...float64) float64

// Function is one registered entry
type Function struct {
	Name  string
	Arity int
	Impl  MathFunc
}

// Call invokes the function after checking the argument count
func (f *Function) Call(args ...float64) (float64, error) {
	if len(args) != f.Arity {
		return 0, errors.Newf(errors.ErrInvalidArity, "function %s takes %d argument(s), got %d", f.Name, f.Arity, len(args)).
			WithDetail("name", f.Name).
			WithDetail("arity", f.Arity)
	}
	return f.Impl(args...), nil
}

// Key returns the registry key of the function
func (f *Function) Key() string {
	return key(f.Name, f.Arity)
}

func key(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// ValidArity reports whether arity is in 0..MaxArity
func ValidArity(arity int) bool {
	return arity >= 0 && arity <= MaxArity
}

// Registry stores functions by name and arity
type Registry struct {
	funcs *registry.Named[*Function]
}

// NewRegistry creates an empty function registry
func NewRegistry(opts ...registry.Option) *Registry {
	opts = append([]registry.Option{registry.WithMissCode(errors.ErrUnknownFunction)}, opts...)
	return &Registry{funcs: registry.New[*Function]("function", opts...)}
}

// Register adds fn under name with the given arity
func (r *Registry) Register(name string, fn MathFunc, arity int) error {
	if !ValidArity(arity) {
		return errors.Newf(errors.ErrInvalidArity, "function %q: arity %d outside 0..%d", name, arity, MaxArity).
			WithDetail("name", name).
			WithDetail("arity", arity)
	}
	if fn == nil {
		return errors.Newf(errors.ErrInvalidInput, "function %q registered with nil implementation", name).
			WithDetail("name", name)
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "function name cannot be empty")
	}
	return r.funcs.Add(key(name, arity), &Function{Name: name, Arity: arity, Impl: fn})
}

// Lookup returns the function matching both name and arity
func (r *Registry) Lookup(name string, arity int) (*Function, error) {
	f, err := r.funcs.Lookup(key(name, arity))
	if err != nil {
		return nil, errors.Newf(errors.ErrUnknownFunction, "function %q with %d argument(s) not found", name, arity).
			WithDetail("name", name).
			WithDetail("arity", arity).
			WithDetail("kind", "function")
	}
	return f, nil
}

// Arities lists the arities registered for name, ascending
func (r *Registry) Arities(name string) []int {
	var out []int
	for arity := 0; arity <= MaxArity; arity++ {
		if r.funcs.Has(key(name, arity)) {
			out = append(out, arity)
		}
	}
	return out
}

// All returns every registered function in registration order
func (r *Registry) All() []*Function {
	out := make([]*Function, 0, r.funcs.Len())
	r.funcs.Each(func(_ string, f *Function) bool {
		out = append(out, f)
		return true
	})
	return out
}

// Len returns the number of registered functions
func (r *Registry) Len() int {
	return r.funcs.Len()
}

// Table exposes the underlying registry for sealing and policy changes
func (r *Registry) Table() *registry.Named[*Function] {
	return r.funcs
}

// Func0 adapts a nullary function
func Func0(f func() float64) MathFunc {
	return func(_ ...float64) float64 { return f() }
}

// Func1 adapts a unary function such as math.Sin
func Func1(f func(float64) float64) MathFunc {
	return func(a ...float64) float64 { return f(a[0]) }
}

// Func2 adapts a binary function such as math.Pow
func Func2(f func(float64, float64) float64) MathFunc {
	return func(a ...float64) float64 { return f(a[0], a[1]) }
}

// Func3 adapts a ternary function
func Func3(f func(float64, float64, float64) float64) MathFunc {
	return func(a ...float64) float64 { return f(a[0], a[1], a[2]) }
}
