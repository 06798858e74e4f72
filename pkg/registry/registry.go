// Package registry provides typed, concurrency-safe registries mapping
// names to constructors. The facility uses them for pluggable session
// stores and configuration builders; callers can reuse them for any
// extension point keyed by a short name.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a fresh T. It is invoked once per Build call, so
// implementations must not share mutable state between invocations
// unless they intend to.
type Constructor[T any] func() (T, error)

// NotFoundError is returned by Build when no constructor is registered
// under the requested name. Known lists the registered names to make
// configuration typos easy to spot.
type NotFoundError struct {
	Kind  string
	Name  string
	Known []string
}

func (e *NotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("no %s registered under %q (registry is empty)", e.Kind, e.Name)
	}
	return fmt.Sprintf("no %s registered under %q (registered: %v)", e.Kind, e.Name, e.Known)
}

// Registry maps names to constructors for a single kind of component.
// The kind label only appears in error messages.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	ctors map[string]Constructor[T]
}

// New creates an empty registry. kind names what the registry holds,
// e.g. "session store".
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:  kind,
		ctors: make(map[string]Constructor[T]),
	}
}

// Register adds a constructor under name. Registering the same name
// again overwrites the previous entry. Blank names and nil constructors
// are rejected here rather than surfacing later as a failed Build.
func (r *Registry[T]) Register(name string, ctor Constructor[T]) error {
	if name == "" {
		return fmt.Errorf("registering %s: name must not be empty", r.kind)
	}
	if ctor == nil {
		return fmt.Errorf("registering %s %q: constructor must not be nil", r.kind, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
	return nil
}

// Build looks up the constructor registered under name and invokes it.
func (r *Registry[T]) Build(name string) (T, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: r.kind, Name: name, Known: r.names()}
	}
	return ctor()
}

// Has reports whether a constructor is registered under name.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	return r.names()
}

func (r *Registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
