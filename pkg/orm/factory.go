package orm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Factory owns one database connection pool and opens sessions against
// it. Opening a factory performs no I/O; the pool connects lazily on
// first use.
type Factory struct {
	cfg *Config
	db  *sqlx.DB

	mu     sync.Mutex
	closed bool
}

// NewFactory validates cfg and opens the underlying pool.
func NewFactory(cfg *Config) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s pool for factory %s: %w", cfg.Driver, cfg.FactoryID, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Factory{cfg: cfg, db: db}, nil
}

// ID returns the factory's component id.
func (f *Factory) ID() string {
	return f.cfg.FactoryID
}

// Config returns the factory's configuration.
func (f *Factory) Config() *Config {
	return f.cfg
}

// DB exposes the underlying pool for callers that need raw access.
func (f *Factory) DB() *sqlx.DB {
	return f.db
}

// Ping verifies the database is reachable.
func (f *Factory) Ping(ctx context.Context) error {
	return f.db.PingContext(ctx)
}

// LookupQuery returns the named query from the factory's catalog.
func (f *Factory) LookupQuery(name string) (string, error) {
	q, ok := f.cfg.Query(name)
	if !ok {
		return "", &UnknownQueryError{FactoryID: f.cfg.FactoryID, Name: name}
	}
	return q, nil
}

// OpenSession opens a new unit-of-work session. The session starts with
// the factory's default flush mode unless overridden by an option.
func (f *Factory) OpenSession(ctx context.Context, opts ...SessionOption) (*Session, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFactoryClosed
	}
	f.mu.Unlock()

	s := &Session{
		id:      uuid.NewString(),
		factory: f,
		flush:   f.cfg.DefaultFlush,
	}
	if f.cfg.UseReflectionOptimizer {
		s.stmts = make(map[string]*sqlx.Stmt)
	}
	for _, opt := range opts {
		opt(s)
	}

	if ic := f.cfg.Interceptor; ic != nil {
		ic.SessionOpened(ctx, f.cfg.FactoryID, s.id)
	}
	return s, nil
}

// Close shuts down the connection pool. Sessions opened earlier fail on
// their next statement.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.db.Close()
}
