package orm

import (
	"context"
	"time"
)

// Interceptor observes session lifecycle and statement execution. All
// hooks are synchronous; implementations should return quickly.
type Interceptor interface {
	// SessionOpened fires after a session is opened.
	SessionOpened(ctx context.Context, factoryID, sessionID string)

	// SessionClosed fires after a session is closed.
	SessionClosed(ctx context.Context, factoryID, sessionID string)

	// StatementExecuted fires after every statement, including failed
	// ones.
	StatementExecuted(ctx context.Context, factoryID, query string, took time.Duration, err error)
}

// Interceptors combines several interceptors into one that fans out every
// hook in order. Nil entries are skipped.
func Interceptors(ics ...Interceptor) Interceptor {
	kept := make(multiInterceptor, 0, len(ics))
	for _, ic := range ics {
		if ic != nil {
			kept = append(kept, ic)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return kept
}

type multiInterceptor []Interceptor

func (m multiInterceptor) SessionOpened(ctx context.Context, factoryID, sessionID string) {
	for _, ic := range m {
		ic.SessionOpened(ctx, factoryID, sessionID)
	}
}

func (m multiInterceptor) SessionClosed(ctx context.Context, factoryID, sessionID string) {
	for _, ic := range m {
		ic.SessionClosed(ctx, factoryID, sessionID)
	}
}

func (m multiInterceptor) StatementExecuted(ctx context.Context, factoryID, query string, took time.Duration, err error) {
	for _, ic := range m {
		ic.StatementExecuted(ctx, factoryID, query, took, err)
	}
}
