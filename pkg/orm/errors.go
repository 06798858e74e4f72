package orm

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// ErrFactoryClosed is returned when opening a session on a closed factory.
var ErrFactoryClosed = errors.New("session factory is closed")

// ErrNoTransaction is returned by Commit/Rollback without an active
// transaction.
var ErrNoTransaction = errors.New("no active transaction")

// ErrActiveTransaction is returned by Begin when a transaction is already
// active on the session.
var ErrActiveTransaction = errors.New("transaction already active")

// ErrQueueNotFlushed is returned when a session still holds queued
// statements at a point where losing them would be silent.
var ErrQueueNotFlushed = errors.New("session has unflushed queued statements")

// UnknownQueryError reports a named-query lookup miss.
type UnknownQueryError struct {
	FactoryID string
	Name      string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("factory %s: no query named %q", e.FactoryID, e.Name)
}

// UnknownFlushModeError reports an unparseable flush mode value.
type UnknownFlushModeError struct {
	Value string
}

func (e *UnknownFlushModeError) Error() string {
	return fmt.Sprintf("unknown flush mode %q (expected auto, commit, manual or always)", e.Value)
}
