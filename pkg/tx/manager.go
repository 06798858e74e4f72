// Package tx provides the default transaction manager: transaction
// scopes are carried on the context and every session enlisted in a
// scope commits or rolls back together.
package tx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
)

type scopeKeyType struct{}

var scopeKey scopeKeyType

// txScope tracks the sessions enlisted in one Required invocation.
type txScope struct {
	mu       sync.Mutex
	sessions []*orm.Session
}

func (sc *txScope) enlisted() []*orm.Session {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return append([]*orm.Session(nil), sc.sessions...)
}

// Manager implements ports.TransactionManager. Commit order follows
// enlistment order; there is no two-phase coordination across factories,
// so a commit failure mid-way leaves earlier sessions committed and rolls
// back the rest.
type Manager struct {
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for rollback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a transaction manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active reports whether a transaction scope is bound to ctx.
func (m *Manager) Active(ctx context.Context) bool {
	_, ok := ctx.Value(scopeKey).(*txScope)
	return ok
}

// Enlist begins a transaction on the session and ties it to the active
// scope. Enlisting the same session twice is a no-op.
func (m *Manager) Enlist(ctx context.Context, s *orm.Session) error {
	sc, ok := ctx.Value(scopeKey).(*txScope)
	if !ok {
		return ports.ErrNoTransactionScope
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	for _, enlisted := range sc.sessions {
		if enlisted == s {
			return nil
		}
	}
	if err := s.Begin(ctx); err != nil {
		return fmt.Errorf("enlisting session %s: %w", s.ID(), err)
	}
	sc.sessions = append(sc.sessions, s)
	return nil
}

// Required runs fn inside the transaction scope bound to ctx. When no
// scope is active it starts one, commits every enlisted session after fn
// succeeds, and rolls all of them back when fn returns an error or
// panics (the panic is re-raised). A nested Required joins the existing
// scope and leaves the outcome to the outermost call.
func (m *Manager) Required(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Active(ctx) {
		return fn(ctx)
	}

	sc := &txScope{}
	ctx = context.WithValue(ctx, scopeKey, sc)

	var fnErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				m.rollback(ctx, sc)
				panic(r)
			}
		}()
		fnErr = fn(ctx)
	}()

	if fnErr != nil {
		m.rollback(ctx, sc)
		return fnErr
	}
	return m.commit(ctx, sc)
}

func (m *Manager) commit(ctx context.Context, sc *txScope) error {
	sessions := sc.enlisted()
	for i, s := range sessions {
		if err := s.Commit(ctx); err != nil {
			for _, rest := range sessions[i+1:] {
				if rbErr := rest.Rollback(ctx); rbErr != nil {
					m.logger.Warn("rolling back session after commit failure",
						"session_id", rest.ID(),
						"err", rbErr,
					)
				}
			}
			return fmt.Errorf("committing session %s: %w", s.ID(), err)
		}
	}
	return nil
}

func (m *Manager) rollback(ctx context.Context, sc *txScope) {
	for _, s := range sc.enlisted() {
		if err := s.Rollback(ctx); err != nil {
			m.logger.Warn("rolling back enlisted session",
				"session_id", s.ID(),
				"err", err,
			)
		}
	}
}
