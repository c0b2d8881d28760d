package entity

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zero-day-ai/obsgraph"
)

// Registry is the polymorphic factory: it maps discriminator strings to
// concrete entity constructors in both tree directions. Lookups are
// exact-match and case-sensitive after stripping a namespace prefix (any
// text before the first ':').
//
// Registration is expected at init time; all methods are safe for
// concurrent use afterwards.
type Registry struct {
	mu          sync.RWMutex
	ctors       map[string]Constructor
	impls       map[string]map[string]bool // abstract type-ref -> concrete discriminators
	rootDefault Constructor
}

// RegisterOption configures a single registration.
type RegisterOption func(*registration)

type registration struct {
	bases []string
}

// WithBase records that the discriminator implements the given abstract
// type reference. Fields declared with that reference become polymorphic
// and carry the discriminator on the wire.
func WithBase(base string) RegisterOption {
	return func(r *registration) {
		r.bases = append(r.bases, StripPrefix(base))
	}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
		impls: make(map[string]map[string]bool),
	}
}

// Register binds a discriminator to a constructor. Registering the same
// discriminator and constructor again is a no-op; re-registering a
// discriminator to a different constructor is a programmer error and
// panics at registration time rather than silently overriding.
func (r *Registry) Register(discriminator string, ctor Constructor, opts ...RegisterOption) {
	if ctor == nil {
		panic(fmt.Sprintf("entity: nil constructor for discriminator %q", discriminator))
	}
	disc := StripPrefix(discriminator)
	if disc == "" {
		panic("entity: empty discriminator")
	}

	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.ctors[disc]; ok {
		if reflect.ValueOf(existing).Pointer() != reflect.ValueOf(ctor).Pointer() {
			panic(fmt.Sprintf("entity: discriminator %q already registered to a different constructor", disc))
		}
	}
	r.ctors[disc] = ctor

	for _, base := range reg.bases {
		if r.impls[base] == nil {
			r.impls[base] = make(map[string]bool)
		}
		r.impls[base][disc] = true
	}
}

// Resolve returns the constructor for the discriminator, stripping any
// namespace prefix first. An unregistered discriminator is a hard error.
func (r *Registry) Resolve(discriminator string) (Constructor, error) {
	disc := StripPrefix(discriminator)

	r.mu.RLock()
	ctor, ok := r.ctors[disc]
	r.mu.RUnlock()

	if !ok {
		return nil, obsgraph.NewUnknownDiscriminatorError("Registry.Resolve", discriminator)
	}
	return ctor, nil
}

// SetRootDefault designates the fallback constructor used by ResolveRoot
// for unrecognized root discriminators. Which type serves as the default is
// a deployment decision, not something the registry infers.
func (r *Registry) SetRootDefault(ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rootDefault = ctor
}

// ResolveRoot is Resolve with the document-root fallback applied: an
// unrecognized discriminator resolves to the designated default type when
// one is set. With no default configured it behaves exactly like Resolve.
func (r *Registry) ResolveRoot(discriminator string) (Constructor, error) {
	ctor, err := r.Resolve(discriminator)
	if err == nil {
		return ctor, nil
	}

	r.mu.RLock()
	fallback := r.rootDefault
	r.mu.RUnlock()

	if fallback != nil {
		return fallback, nil
	}
	return nil, err
}

// IsAbstract reports whether the type reference is polymorphic on the
// write side: it has registered implementers and either no constructor of
// its own or more than one implementer. The generic writer emits the value's
// discriminator for abstract references and may omit it for monomorphic
// ones.
func (r *Registry) IsAbstract(typeRef string) bool {
	ref := StripPrefix(typeRef)

	r.mu.RLock()
	defer r.mu.RUnlock()

	impls := r.impls[ref]
	if len(impls) == 0 {
		return false
	}
	if _, concrete := r.ctors[ref]; !concrete {
		return true
	}
	return len(impls) > 1
}

// Implementers returns the concrete discriminators registered against an
// abstract type reference, in unspecified order.
func (r *Registry) Implementers(typeRef string) []string {
	ref := StripPrefix(typeRef)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.impls[ref]))
	for disc := range r.impls[ref] {
		out = append(out, disc)
	}
	return out
}

// StripPrefix removes a namespace prefix, the text up to and including the
// first ':', from a discriminator. Discriminators without a prefix are
// returned unchanged.
func StripPrefix(discriminator string) string {
	if i := strings.Index(discriminator, ":"); i >= 0 {
		return discriminator[i+1:]
	}
	return discriminator
}

// Global registry instance for package-level access.
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
	defaultRegistryMu   sync.RWMutex
)

// DefaultRegistry returns the process-wide registry, lazily initialized on
// first access. Concrete type packages (such as objects) register their
// constructors here on import.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistryMu.Lock()
		defer defaultRegistryMu.Unlock()
		if defaultRegistry == nil {
			defaultRegistry = NewRegistry()
		}
	})

	defaultRegistryMu.RLock()
	defer defaultRegistryMu.RUnlock()
	return defaultRegistry
}

// SetDefaultRegistry replaces the process-wide registry. Intended for tests
// that need a clean slate; call it before any use of DefaultRegistry.
func SetDefaultRegistry(r *Registry) {
	defaultRegistryOnce.Do(func() {})

	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	defaultRegistry = r
}
