// Package registry lets modules share services with each other at startup.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/nfrund/learnhub/internal/config"
)

// Key names a service of type T, e.g. "quizzes.service".
type Key[T any] string

// Registry maps keys to services. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[string]any
	cfg      config.Provider
}

// New creates an empty registry carrying cfg.
func New(cfg config.Provider) *Registry {
	return &Registry{services: make(map[string]any), cfg: cfg}
}

// Config returns the configuration the server was started with.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Names returns the registered keys in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.services))
	for k := range r.services {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Set registers value under key, replacing any earlier value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[string(key)] = value
}

// Get returns the service under key. It reports false when nothing is
// registered or the value has another type.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	r.mu.RLock()
	val, ok := r.services[string(key)]
	r.mu.RUnlock()

	result, ok := val.(T)
	return result, ok
}

// MustGet is Get for services the caller cannot run without.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("registry: no %T registered under %q", val, string(key)))
	}
	return val
}
