package container

import (
	"errors"
	"fmt"
	"sync"
)

// Lifetime controls how a registration produces instances on resolution.
type Lifetime string

const (
	// LifetimeSingleton constructs at most once and caches the result for
	// the life of the process.
	LifetimeSingleton Lifetime = "singleton"
	// LifetimeTransient constructs a fresh instance on every resolution.
	LifetimeTransient Lifetime = "transient"
	// LifetimeFactory invokes the registered function on every resolution.
	// Factories are how multi-dependency components get wired: the closure
	// resolves its prerequisites from the registry first.
	LifetimeFactory Lifetime = "factory"
)

// Constructor builds a service instance. The registry never injects
// constructor arguments; dependency graphs are expressed inside factory
// closures at the composition root, leaf services first.
type Constructor func() any

// ErrNotRegistered is returned when resolving an unknown key.
var ErrNotRegistered = errors.New("service not registered")

type registration struct {
	lifetime  Lifetime
	construct Constructor
	instance  any
}

// Registry maps string keys to service registrations with three lifetimes.
// Registration happens sequentially at startup; resolution may run from
// concurrent request goroutines, so the map and lazy singleton caching are
// mutex-guarded. At most one registration exists per key.
type Registry struct {
	mu       sync.RWMutex
	services map[string]*registration
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{services: make(map[string]*registration)}
}

// Default is the process-wide registry shared by the composition root and
// the HTTP adapters. Prefer passing an explicit *Registry where practical.
var Default = New()

// RegisterSingleton records that resolving key should invoke construct at
// most once and cache the result.
func (r *Registry) RegisterSingleton(key string, construct Constructor) {
	r.set(key, &registration{lifetime: LifetimeSingleton, construct: construct})
}

// RegisterTransient records that resolving key always invokes construct,
// producing a fresh instance each call.
func (r *Registry) RegisterTransient(key string, construct Constructor) {
	r.set(key, &registration{lifetime: LifetimeTransient, construct: construct})
}

// RegisterFactory records a function invoked on every resolution. The
// registry caches nothing for factories; memoization, if wanted, lives in
// the closure.
func (r *Registry) RegisterFactory(key string, factory Constructor) {
	r.set(key, &registration{lifetime: LifetimeFactory, construct: factory})
}

// RegisterInstance pre-seeds a singleton slot with an already-built value,
// typically configuration or an externally constructed client.
func (r *Registry) RegisterInstance(key string, instance any) {
	r.set(key, &registration{lifetime: LifetimeSingleton, instance: instance})
}

func (r *Registry) set(key string, reg *registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[key] = reg
}

// Resolve returns the instance for key according to its lifetime. The
// constructor runs outside the lock so factory closures may resolve their
// prerequisites from the same registry; two goroutines racing the first
// resolution of a singleton may both construct, but the first cached
// instance wins and is returned to both.
func (r *Registry) Resolve(key string) (any, error) {
	r.mu.RLock()
	reg, ok := r.services[key]
	if !ok {
		r.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, key)
	}
	if reg.instance != nil {
		instance := reg.instance
		r.mu.RUnlock()
		return instance, nil
	}
	lifetime := reg.lifetime
	construct := reg.construct
	r.mu.RUnlock()

	switch lifetime {
	case LifetimeFactory, LifetimeTransient:
		return construct(), nil
	case LifetimeSingleton:
		instance := construct()
		r.mu.Lock()
		if reg.instance == nil {
			reg.instance = instance
		}
		instance = reg.instance
		r.mu.Unlock()
		return instance, nil
	}
	// Unreachable through the registration API.
	return nil, fmt.Errorf("unknown lifetime %q for service %q", lifetime, key)
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.services[key]
	return ok
}

// Unregister removes a registration.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.services, key)
}

// Clear drops every registration. Primarily for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = make(map[string]*registration)
}

// Resolve resolves key from r and type-asserts the result.
func Resolve[T any](r *Registry, key string) (T, error) {
	var zero T
	v, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, not %T", key, v, zero)
	}
	return t, nil
}

// MustResolve is Resolve for composition-root wiring, where a missing
// registration is a programmer error.
func MustResolve[T any](r *Registry, key string) T {
	v, err := Resolve[T](r, key)
	if err != nil {
		panic(err)
	}
	return v
}
