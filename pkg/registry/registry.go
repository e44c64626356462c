package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/logging"
)

// DuplicatePolicy decides what Add does with a name that is already present
type DuplicatePolicy int

const (
	// Overwrite replaces the earlier payload and keeps its position
	Overwrite DuplicatePolicy = iota
	// Reject fails the second Add with DUPLICATE_NAME
	Reject
)

// String returns the configuration spelling of the policy
func (p DuplicatePolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "overwrite" or "reject"
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return Overwrite, nil
	case "reject":
		return Reject, nil
	default:
		return Overwrite, errors.Newf(errors.ErrInvalidInput, "unknown duplicate policy %q", s).
			WithDetail("policy", s)
	}
}

// Option configures a Named registry
type Option func(*options)

type options struct {
	policy   DuplicatePolicy
	missCode errors.ErrorCode
}

// WithPolicy sets the duplicate-name policy
func WithPolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithMissCode sets the error code Lookup reports for an absent name
func WithMissCode(code errors.ErrorCode) Option {
	return func(o *options) { o.missCode = code }
}

// Named is a name-keyed table of payloads of one entity kind.
// Names are kept in insertion order for enumeration.
type Named[T any] struct {
	mu       sync.RWMutex
	kind     string
	policy   DuplicatePolicy
	missCode errors.ErrorCode
	items    map[string]T
	order    []string
	sealed   bool
}

// New creates an empty registry for the given entity kind
func New[T any](kind string, opts ...Option) *Named[T] {
	o := options{policy: Overwrite, missCode: errors.ErrUnknownName}
	for _, opt := range opts {
		opt(&o)
	}
	return &Named[T]{
		kind:     kind,
		policy:   o.policy,
		missCode: o.missCode,
		items:    make(map[string]T),
	}
}

// Kind returns the entity kind the registry holds
func (r *Named[T]) Kind() string {
	return r.kind
}

// Policy returns the duplicate-name policy
func (r *Named[T]) Policy() DuplicatePolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

// SetPolicy changes the duplicate-name policy. Only meaningful before startup runs.
func (r *Named[T]) SetPolicy(p DuplicatePolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

// Add inserts an entry under name
func (r *Named[T]) Add(name string, payload T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.Newf(errors.ErrRegistrySealed, "cannot add %s %q: registry is sealed", r.kind, name).
			WithDetail("name", name).
			WithDetail("kind", r.kind)
	}

	logger := logging.GetLogger("registry")

	if _, exists := r.items[name]; exists {
		if r.policy == Reject {
			return errors.Newf(errors.ErrDuplicateName, "%s %q is already registered", r.kind, name).
				WithDetail("name", name).
				WithDetail("kind", r.kind)
		}
		logger.Warn().
			Str("kind", r.kind).
			Str("name", name).
			Msg("Overwriting existing registration")
		r.items[name] = payload
		return nil
	}

	r.items[name] = payload
	r.order = append(r.order, name)
	logger.Trace().Str("kind", r.kind).Str("name", name).Msg("Registered")
	return nil
}

// Lookup retrieves the entry registered under name
func (r *Named[T]) Lookup(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.UnknownName(r.missCode, r.kind, name)
	}
	return item, nil
}

// Has checks if a name is registered
func (r *Named[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Len returns the number of registered entries
func (r *Named[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Names returns all registered names in insertion order
func (r *Named[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Each calls fn for every entry in insertion order until fn returns false.
// fn must not add to the registry.
func (r *Named[T]) Each(fn func(name string, payload T) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if !fn(name, r.items[name]) {
			return
		}
	}
}

// Seal ends the startup phase for this registry; later Adds fail
func (r *Named[T]) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called
func (r *Named[T]) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Reset empties and unseals the registry. Intended for tests.
func (r *Named[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]T)
	r.order = nil
	r.sealed = false
}

// MustAdd adds an entry and panics if that fails.
// Registration failures are programming errors, so init-time callers use this.
func MustAdd[T any](reg *Named[T], name string, payload T) {
	if err := reg.Add(name, payload); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
