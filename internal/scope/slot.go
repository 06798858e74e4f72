package scope

import (
	"context"
	"sync"

	"github.com/aretw0/arbor/pkg/orm"
)

// Slot holds the sessions bound within one scope, keyed by alias.
// Safe for concurrent use.
type Slot struct {
	mu       sync.Mutex
	sessions map[string]*orm.Session
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{sessions: make(map[string]*orm.Session)}
}

// Get returns the session bound to alias.
func (s *Slot) Get(alias string) (*orm.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[alias]
	return sess, ok
}

// Put binds a session to alias, replacing any previous binding.
func (s *Slot) Put(alias string, sess *orm.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[alias] = sess
}

// Remove unbinds and returns the session for alias.
func (s *Slot) Remove(alias string) (*orm.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[alias]
	if ok {
		delete(s.sessions, alias)
	}
	return sess, ok
}

// DrainAll unbinds and returns every session in the slot.
func (s *Slot) DrainAll() []*orm.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*orm.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	s.sessions = make(map[string]*orm.Session)
	return out
}

// Key is a private context key carrying a slot. Each store adapter owns
// its own key so scopes never leak between adapters.
type Key struct {
	name string
}

// NewKey creates a context key. The name only shows up in debugging.
func NewKey(name string) *Key {
	return &Key{name: name}
}

// With returns ctx carrying a fresh slot under this key, shadowing any
// outer slot.
func (k *Key) With(ctx context.Context) context.Context {
	return context.WithValue(ctx, k, NewSlot())
}

// From extracts the slot bound under this key.
func (k *Key) From(ctx context.Context) (*Slot, bool) {
	slot, ok := ctx.Value(k).(*Slot)
	return slot, ok
}
