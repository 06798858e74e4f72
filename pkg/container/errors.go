package container

import (
	"fmt"
	"strings"
)

// NotRegisteredError reports a resolution attempt for an unknown key.
type NotRegisteredError struct {
	Key string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no component registered for key: %s", e.Key)
}

// DuplicateKeyError reports a second registration under an existing key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("component already registered for key: %s", e.Key)
}

// InvalidDefinitionError reports a definition that cannot be registered.
type InvalidDefinitionError struct {
	Key    string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid definition for key %q: %s", e.Key, e.Reason)
}

// BuildError wraps a failure from a component's build function.
type BuildError struct {
	Key string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building component %s: %v", e.Key, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// CircularDependencyError reports a resolution cycle.
type CircularDependencyError struct {
	Key   string
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected for key %s (chain: %s)", e.Key, strings.Join(e.Chain, " -> "))
}

// TypeMismatchError reports a component that does not satisfy the
// requested contract.
type TypeMismatchError struct {
	Key      string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("component %s: type mismatch: expected %s, got %s", e.Key, e.Expected, e.Got)
}
