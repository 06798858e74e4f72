package container

import (
	"sort"
	"sync"
)

// Lifecycle controls how a registered component is instantiated.
type Lifecycle int

const (
	// Singleton components are built once and cached for the container's
	// lifetime. This is the default.
	Singleton Lifecycle = iota
	// Transient components are built on every resolution.
	Transient
)

// BuildFunc constructs a component. It receives a BuildContext giving
// access to the container, the component's key and its extended
// properties.
type BuildFunc func(BuildContext) (any, error)

// Definition describes a component registration. Exactly one of Instance
// or Build must be set: Instance registers a pre-built value, Build a
// constructor invoked on resolution. Lifecycle applies to Build
// registrations only; a pre-built Instance resolves as-is. Props carries
// extended properties that the build function can read.
type Definition struct {
	Key       string
	Instance  any
	Build     BuildFunc
	Lifecycle Lifecycle
	Props     map[string]any
}

// BuildContext is handed to build functions during resolution.
type BuildContext struct {
	// Key is the key the component was registered under.
	Key string
	// Props are the extended properties attached to the definition.
	Props map[string]any

	c        *Container
	visiting map[string]int
}

// Resolve resolves a dependency from within a build function. Using it
// (rather than a captured container) keeps circular references detectable
// across nested builds.
func (bc BuildContext) Resolve(key string) (any, error) {
	return bc.c.resolve(key, bc.visiting)
}

// Container returns the owning container.
func (bc BuildContext) Container() *Container {
	return bc.c
}

type entry struct {
	def Definition

	mu       sync.Mutex
	built    bool
	instance any
}

// Container is a register-by-key component registry with singleton
// caching. Safe for concurrent use after registration.
type Container struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New creates an empty container.
func New() *Container {
	return &Container{
		entries: make(map[string]*entry),
	}
}

// Register adds a component definition. It fails with a
// DuplicateKeyError when the key is already taken and an
// InvalidDefinitionError when the definition is incomplete.
func (c *Container) Register(def Definition) error {
	if def.Key == "" {
		return &InvalidDefinitionError{Key: def.Key, Reason: "key must not be empty"}
	}
	if def.Instance == nil && def.Build == nil {
		return &InvalidDefinitionError{Key: def.Key, Reason: "either Instance or Build must be set"}
	}
	if def.Instance != nil && def.Build != nil {
		return &InvalidDefinitionError{Key: def.Key, Reason: "Instance and Build are mutually exclusive"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[def.Key]; exists {
		return &DuplicateKeyError{Key: def.Key}
	}

	e := &entry{def: def}
	if def.Instance != nil {
		e.built = true
		e.instance = def.Instance
	}
	c.entries[def.Key] = e
	return nil
}

// Has reports whether a component is registered under key.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Keys returns all registered keys, sorted.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Definition returns the registered definition for key, if any. The
// returned value is a copy; mutating it does not affect the registration.
func (c *Container) Definition(key string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Definition{}, false
	}
	return e.def, true
}

// Resolve returns the component registered under key, building it first
// when necessary. Singletons are built once; concurrent resolutions of
// the same key wait for the first build.
func (c *Container) Resolve(key string) (any, error) {
	return c.resolve(key, make(map[string]int))
}

// MustResolve is Resolve that panics on error.
func (c *Container) MustResolve(key string) any {
	v, err := c.Resolve(key)
	if err != nil {
		panic(err)
	}
	return v
}

// resolve tracks the in-flight resolution path in visiting: each key maps
// to its position on the path, so cycle errors can replay the real order.
func (c *Container) resolve(key string, visiting map[string]int) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, &NotRegisteredError{Key: key}
	}

	if _, busy := visiting[key]; busy {
		return nil, &CircularDependencyError{Key: key, Chain: chainOf(visiting, key)}
	}
	visiting[key] = len(visiting)
	defer delete(visiting, key)

	if e.def.Instance != nil {
		return e.def.Instance, nil
	}

	bc := BuildContext{
		Key:      key,
		Props:    e.def.Props,
		c:        c,
		visiting: visiting,
	}

	if e.def.Lifecycle == Transient {
		v, err := e.def.Build(bc)
		if err != nil {
			return nil, &BuildError{Key: key, Err: err}
		}
		return v, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.built {
		return e.instance, nil
	}

	v, err := e.def.Build(bc)
	if err != nil {
		return nil, &BuildError{Key: key, Err: err}
	}
	e.built = true
	e.instance = v
	return v, nil
}

// chainOf reconstructs the resolution path in the order the keys were
// entered, closing with the key whose second visit completed the cycle.
func chainOf(visiting map[string]int, last string) []string {
	chain := make([]string, len(visiting))
	for k, pos := range visiting {
		chain[pos] = k
	}
	return append(chain, last)
}
