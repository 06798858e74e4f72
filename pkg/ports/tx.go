package ports

import (
	"context"
	"errors"

	"github.com/aretw0/arbor/pkg/orm"
)

// ErrNoTransactionScope is returned by Enlist when no transaction scope
// is bound to the context.
var ErrNoTransactionScope = errors.New("no active transaction scope")

// TransactionManager coordinates transaction scope boundaries. The
// session manager enlists the sessions it opens so their transactions
// follow the scope outcome.
type TransactionManager interface {
	// Required runs fn inside the transaction scope bound to ctx,
	// starting a new scope when none is active. On success every
	// enlisted session is flushed and committed; on error or panic all
	// are rolled back. A nested Required joins the existing scope.
	Required(ctx context.Context, fn func(ctx context.Context) error) error

	// Active reports whether a transaction scope is bound to ctx.
	Active(ctx context.Context) bool

	// Enlist registers a session with the active scope, beginning its
	// transaction. Returns ErrNoTransactionScope when ctx has no scope.
	Enlist(ctx context.Context, s *orm.Session) error
}
