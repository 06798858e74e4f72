package web

import (
	"context"

	"github.com/aretw0/arbor/internal/scope"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
)

var slotKey = scope.NewKey("web-request")

// Store implements ports.SessionStore with a binding slot seeded per
// HTTP request by Middleware. Operations on a context that did not pass
// through the middleware (or an explicit Scope call) fail with
// ports.ErrNoScope, which is how out-of-request access surfaces.
type Store struct{}

// NewStore creates a request-scoped session store.
func NewStore() *Store {
	return &Store{}
}

// Scope returns ctx carrying a fresh binding slot. The middleware calls
// this per request; non-HTTP callers can use it to emulate one.
func (s *Store) Scope(ctx context.Context) context.Context {
	return slotKey.With(ctx)
}

// Current returns the session bound to alias in the request slot.
func (s *Store) Current(ctx context.Context, alias string) (*orm.Session, error) {
	slot, ok := slotKey.From(ctx)
	if !ok {
		return nil, ports.ErrNoScope
	}
	sess, ok := slot.Get(alias)
	if !ok {
		return nil, ports.ErrNotBound
	}
	return sess, nil
}

// Bind associates a session with alias in the request slot.
func (s *Store) Bind(ctx context.Context, alias string, sess *orm.Session) error {
	slot, ok := slotKey.From(ctx)
	if !ok {
		return ports.ErrNoScope
	}
	slot.Put(alias, sess)
	return nil
}

// Unbind removes and returns the session bound to alias.
func (s *Store) Unbind(ctx context.Context, alias string) (*orm.Session, error) {
	slot, ok := slotKey.From(ctx)
	if !ok {
		return nil, ports.ErrNoScope
	}
	sess, ok := slot.Remove(alias)
	if !ok {
		return nil, ports.ErrNotBound
	}
	return sess, nil
}

// Drain removes and returns every session bound in the request slot.
func (s *Store) Drain(ctx context.Context) ([]*orm.Session, error) {
	slot, ok := slotKey.From(ctx)
	if !ok {
		return nil, ports.ErrNoScope
	}
	return slot.DrainAll(), nil
}
