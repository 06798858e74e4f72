package session

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
)

// DefaultAlias is the alias assigned to the first session factory when
// its configuration does not name one.
const DefaultAlias = "default"

// UnknownAliasError reports a lookup for an alias no factory was
// registered under.
type UnknownAliasError struct {
	Alias string
	Known []string
}

func (e *UnknownAliasError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("no session factory registered for alias %q", e.Alias)
	}
	return fmt.Sprintf("no session factory registered for alias %q (known: %s)", e.Alias, strings.Join(e.Known, ", "))
}

// Resolver maps session factory aliases to the component ids the
// factories are registered under. Many aliases may point at one id; each
// alias points at exactly one id, and the last registration wins.
type Resolver struct {
	mu      sync.RWMutex
	aliases map[string]string
	logger  *slog.Logger
}

// NewResolver creates an empty resolver. A nil logger disables logging.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		aliases: make(map[string]string),
		logger:  logger,
	}
}

// Register maps alias to componentID, overwriting any previous mapping
// for the alias. Remappings are logged since they usually mean two
// factory configurations claimed the same alias.
func (r *Resolver) Register(alias, componentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.aliases[alias]; ok && prev != componentID {
		r.logger.Warn("session factory alias remapped",
			"alias", alias,
			"previous", prev,
			"component_id", componentID,
		)
	}
	r.aliases[alias] = componentID
}

// ComponentID returns the component id mapped to alias.
func (r *Resolver) ComponentID(alias string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.aliases[alias]
	if !ok {
		return "", &UnknownAliasError{Alias: alias, Known: r.known()}
	}
	return id, nil
}

// Aliases returns a copy of the alias table.
func (r *Resolver) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// known returns sorted alias names. Callers must hold r.mu.
func (r *Resolver) known() []string {
	names := make([]string, 0, len(r.aliases))
	for a := range r.aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}
