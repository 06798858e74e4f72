package ambient

import (
	"context"

	"github.com/aretw0/arbor/internal/scope"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
)

var slotKey = scope.NewKey("ambient")

// Store implements ports.SessionStore with a binding slot carried on the
// context. Scope opens a slot for one logical unit of work; everything
// downstream of that context shares the same current sessions. This is
// the default store for non-web applications.
type Store struct{}

// NewStore creates an ambient session store.
func NewStore() *Store {
	return &Store{}
}

// Scope returns ctx carrying a fresh binding slot.
func (s *Store) Scope(ctx context.Context) context.Context {
	return slotKey.With(ctx)
}

// Current returns the session bound to alias in the active slot.
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

// Bind associates a session with alias in the active slot.
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

// Drain removes and returns every session bound in the active slot.
func (s *Store) Drain(ctx context.Context) ([]*orm.Session, error) {
	slot, ok := slotKey.From(ctx)
	if !ok {
		return nil, ports.ErrNoScope
	}
	return slot.DrainAll(), nil
}
