package web

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/arbor/internal/logging"
)

// MiddlewareOption configures the session middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for cleanup warnings.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.logger = logger
	}
}

// Middleware returns standard net/http middleware implementing
// session-per-request: it seeds a binding slot before the handler runs
// and closes every session still bound when the handler returns, panics
// included. Open transactions on leftover sessions are rolled back by
// Close.
func Middleware(store *Store, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := store.Scope(r.Context())

			defer func() {
				sessions, err := store.Drain(ctx)
				if err != nil {
					return
				}
				for _, s := range sessions {
					if err := s.Close(ctx); err != nil {
						cfg.logger.Warn("closing request session",
							"session_id", s.ID(),
							"err", err,
						)
					}
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
