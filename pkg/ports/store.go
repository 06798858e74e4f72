package ports

import (
	"context"
	"errors"

	"github.com/aretw0/arbor/pkg/orm"
)

// ErrNoScope is returned when a session store operation runs outside a
// scope opened with Scope.
var ErrNoScope = errors.New("no session scope in context")

// ErrNotBound is returned when no session is bound for the requested
// alias.
var ErrNotBound = errors.New("no session bound for alias")

// SessionStore keeps the current session per alias for one logical scope
// of work. The facility registers exactly one store; which one decides
// how "current" is delimited (ambient call scope, web request, or a
// custom adapter).
type SessionStore interface {
	// Scope returns a context carrying a fresh binding slot. Nested
	// calls shadow the outer slot.
	Scope(ctx context.Context) context.Context

	// Current returns the session bound to alias in the active scope.
	// Returns ErrNoScope outside a scope and ErrNotBound when the alias
	// has no session yet.
	Current(ctx context.Context, alias string) (*orm.Session, error)

	// Bind associates a session with alias in the active scope,
	// replacing any previous binding.
	Bind(ctx context.Context, alias string, s *orm.Session) error

	// Unbind removes and returns the session bound to alias.
	Unbind(ctx context.Context, alias string) (*orm.Session, error)

	// Drain removes and returns every session bound in the active
	// scope. Callers close drained sessions.
	Drain(ctx context.Context) ([]*orm.Session, error)
}
