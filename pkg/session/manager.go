package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
)

// Manager is the public accessor for scoped sessions. Open returns the
// session bound to an alias in the active scope, opening and binding one
// on first use. Sessions opened inside an active transaction scope are
// enlisted so they follow the scope outcome.
type Manager struct {
	resolver *Resolver
	store    ports.SessionStore
	txm      ports.TransactionManager
	source   ports.FactorySource

	defaultFlush orm.FlushMode
	flushSet     bool
	logger       *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDefaultFlushMode sets the flush mode applied to every session the
// manager opens, overriding the factory default.
func WithDefaultFlushMode(mode orm.FlushMode) Option {
	return func(m *Manager) {
		m.defaultFlush = mode
		m.flushSet = true
	}
}

// NewManager creates a session manager over the given collaborators. The
// transaction manager may be nil, disabling enlistment.
func NewManager(resolver *Resolver, store ports.SessionStore, txm ports.TransactionManager, source ports.FactorySource, opts ...Option) *Manager {
	m := &Manager{
		resolver: resolver,
		store:    store,
		txm:      txm,
		source:   source,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolver returns the alias resolver.
func (m *Manager) Resolver() *Resolver {
	return m.resolver
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Open returns the current session for the default alias.
func (m *Manager) Open(ctx context.Context) (*orm.Session, error) {
	return m.OpenAlias(ctx, DefaultAlias)
}

// OpenAlias returns the session bound to alias in the active scope. On
// first use it resolves the alias to a factory, opens a session, enlists
// it in the active transaction scope if any, and binds it so later calls
// within the scope reuse it.
func (m *Manager) OpenAlias(ctx context.Context, alias string) (*orm.Session, error) {
	current, err := m.store.Current(ctx, alias)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, ports.ErrNotBound) {
		return nil, err
	}

	id, err := m.resolver.ComponentID(alias)
	if err != nil {
		return nil, err
	}

	factory, err := m.source.Factory(id)
	if err != nil {
		return nil, fmt.Errorf("resolving session factory %s: %w", id, err)
	}

	var opts []orm.SessionOption
	if m.flushSet {
		opts = append(opts, orm.WithFlushMode(m.defaultFlush))
	}
	s, err := factory.OpenSession(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening session on factory %s: %w", id, err)
	}

	if m.txm != nil && m.txm.Active(ctx) {
		if err := m.txm.Enlist(ctx, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	if err := m.store.Bind(ctx, alias, s); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	m.logger.Debug("session opened",
		"alias", alias,
		"factory", id,
		"session_id", s.ID(),
		"flush_mode", s.FlushMode().String(),
	)
	return s, nil
}

// Scope opens a session binding scope on ctx; Open calls under the
// returned context share sessions.
func (m *Manager) Scope(ctx context.Context) context.Context {
	return m.store.Scope(ctx)
}

// CloseScope drains the active scope and closes every session that was
// bound in it. The first close error is returned, the rest are logged.
func (m *Manager) CloseScope(ctx context.Context) error {
	sessions, err := m.store.Drain(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	for _, s := range sessions {
		if cerr := s.Close(ctx); cerr != nil {
			if firstErr == nil {
				firstErr = cerr
				continue
			}
			m.logger.Warn("closing scoped session",
				"session_id", s.ID(),
				"err", cerr,
			)
		}
	}
	return firstErr
}

// WithScope runs fn inside a fresh scope and closes the scope's sessions
// when fn returns.
func (m *Manager) WithScope(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	scoped := m.Scope(ctx)
	defer func() {
		if cerr := m.CloseScope(scoped); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(scoped)
}
