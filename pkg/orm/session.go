package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// SessionOption configures a session at open time.
type SessionOption func(*Session)

// WithFlushMode overrides the factory's default flush mode for one
// session.
func WithFlushMode(m FlushMode) SessionOption {
	return func(s *Session) {
		s.flush = m
	}
}

type queuedStmt struct {
	query string
	args  []any
}

// Session is a unit of work over a factory's pool. Statements run against
// the active transaction when one is open, the pool otherwise. A session
// represents one logical scope of work; share it across goroutines only
// through the session manager.
type Session struct {
	id      string
	factory *Factory
	flush   FlushMode

	mu     sync.Mutex
	tx     *sqlx.Tx
	queue  []queuedStmt
	stmts  map[string]*sqlx.Stmt // nil unless the reflection optimizer is on
	closed bool
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// FlushMode returns the session's flush mode.
func (s *Session) FlushMode() FlushMode {
	return s.flush
}

// Factory returns the factory the session was opened from.
func (s *Session) Factory() *Factory {
	return s.factory
}

// Pending returns the number of queued, unflushed statements.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// InTx reports whether a transaction is active on the session.
func (s *Session) InTx() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx != nil
}

// Exec runs a statement immediately, bypassing the queue.
func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.exec(ctx, query, args...)
}

// Queue schedules a statement according to the flush mode: FlushAuto runs
// it immediately, FlushAlways appends and drains, FlushCommit and
// FlushManual only append.
func (s *Session) Queue(ctx context.Context, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	switch s.flush {
	case FlushAuto:
		_, err := s.exec(ctx, query, args...)
		return err
	case FlushAlways:
		s.queue = append(s.queue, queuedStmt{query: query, args: args})
		return s.drain(ctx)
	default:
		s.queue = append(s.queue, queuedStmt{query: query, args: args})
		return nil
	}
}

// Flush executes all queued statements in order.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return s.drain(ctx)
}

// Get runs a query expected to return one row into dest. Under
// FlushAlways the queue is drained first so reads observe queued writes.
func (s *Session) Get(ctx context.Context, dest any, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.flush == FlushAlways {
		if err := s.drain(ctx); err != nil {
			return err
		}
	}

	stmt, err := s.prepared(ctx, query)
	if err != nil {
		return err
	}

	start := time.Now()
	if stmt != nil {
		err = stmt.GetContext(ctx, dest, args...)
	} else {
		err = sqlx.GetContext(ctx, s.ext(), dest, query, args...)
	}
	s.observe(ctx, query, time.Since(start), err)
	return err
}

// Select runs a query returning any number of rows into dest, a pointer
// to a slice.
func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.flush == FlushAlways {
		if err := s.drain(ctx); err != nil {
			return err
		}
	}

	stmt, err := s.prepared(ctx, query)
	if err != nil {
		return err
	}

	start := time.Now()
	if stmt != nil {
		err = stmt.SelectContext(ctx, dest, args...)
	} else {
		err = sqlx.SelectContext(ctx, s.ext(), dest, query, args...)
	}
	s.observe(ctx, query, time.Since(start), err)
	return err
}

// Begin starts a transaction on the session.
func (s *Session) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.tx != nil {
		return ErrActiveTransaction
	}

	tx, err := s.factory.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// Commit drains the queue (except under FlushManual, where pending
// statements are an error) and commits the active transaction.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	if len(s.queue) > 0 {
		if s.flush == FlushManual {
			return ErrQueueNotFlushed
		}
		if err := s.drain(ctx); err != nil {
			return err
		}
	}

	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback aborts the active transaction and discards queued statements.
func (s *Session) Rollback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	s.queue = nil
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

// Close releases the session. An open transaction is rolled back and the
// prepared-statement cache is closed. When queued statements are dropped,
// Close still releases everything; the returned error carries
// ErrQueueNotFlushed joined with any release failure.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	dropped := len(s.queue)
	s.queue = nil

	var firstErr error
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil {
			firstErr = fmt.Errorf("rolling back open transaction: %w", err)
		}
		s.tx = nil
	}
	for _, stmt := range s.stmts {
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing prepared statement: %w", err)
		}
	}
	s.stmts = nil

	if ic := s.factory.cfg.Interceptor; ic != nil {
		ic.SessionClosed(ctx, s.factory.cfg.FactoryID, s.id)
	}

	if dropped > 0 {
		return errors.Join(ErrQueueNotFlushed, firstErr)
	}
	return firstErr
}

// exec runs one statement against the current execution target. Callers
// must hold s.mu.
func (s *Session) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	stmt, err := s.prepared(ctx, query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var res sql.Result
	if stmt != nil {
		res, err = stmt.ExecContext(ctx, args...)
	} else {
		res, err = s.ext().ExecContext(ctx, query, args...)
	}
	s.observe(ctx, query, time.Since(start), err)
	return res, err
}

// drain executes queued statements in order, removing each one as it
// completes. Callers must hold s.mu.
func (s *Session) drain(ctx context.Context) error {
	for len(s.queue) > 0 {
		next := s.queue[0]
		if _, err := s.exec(ctx, next.query, next.args...); err != nil {
			return fmt.Errorf("flushing queued statement: %w", err)
		}
		s.queue = s.queue[1:]
	}
	return nil
}

// prepared returns a cached prepared statement for query, or nil when the
// optimizer is off. Statements are prepared on the pool and rebound to
// the active transaction per call. Callers must hold s.mu.
func (s *Session) prepared(ctx context.Context, query string) (*sqlx.Stmt, error) {
	if s.stmts == nil {
		return nil, nil
	}

	stmt, ok := s.stmts[query]
	if !ok {
		var err error
		stmt, err = s.factory.db.PreparexContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("preparing statement: %w", err)
		}
		s.stmts[query] = stmt
	}

	if s.tx != nil {
		return s.tx.Stmtx(stmt), nil
	}
	return stmt, nil
}

func (s *Session) ext() sqlx.ExtContext {
	if s.tx != nil {
		return s.tx
	}
	return s.factory.db
}

func (s *Session) observe(ctx context.Context, query string, took time.Duration, err error) {
	if ic := s.factory.cfg.Interceptor; ic != nil {
		ic.StatementExecuted(ctx, s.factory.cfg.FactoryID, query, took, err)
	}
}
