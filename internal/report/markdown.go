// Package report generates human-readable views of an installed
// facility for the inspect command.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor"
)

// Generate renders a markdown report of the facility wiring: the
// selected store, the transaction manager, and one section per factory.
func Generate(result *arbor.Result) (string, error) {
	var b strings.Builder

	b.WriteString("# Facility Wiring\n\n")
	fmt.Fprintf(&b, "- **Session store**: `%T`\n", result.Store)
	fmt.Fprintf(&b, "- **Transaction manager**: `%T`\n", result.Tx)
	fmt.Fprintf(&b, "- **Configuration builder**: `%T`\n", result.Builder)
	fmt.Fprintf(&b, "- **Factories**: %d\n\n", len(result.FactoryIDs()))

	aliasesByID := make(map[string][]string)
	for alias, id := range result.Resolver.Aliases() {
		aliasesByID[id] = append(aliasesByID[id], alias)
	}

	b.WriteString("## Factories\n\n")
	for _, id := range result.FactoryIDs() {
		factory, err := result.Factory(id)
		if err != nil {
			return "", fmt.Errorf("inspecting factory %s: %w", id, err)
		}
		cfg := factory.Config()

		aliases := aliasesByID[id]
		sort.Strings(aliases)

		fmt.Fprintf(&b, "### %s\n\n", id)
		fmt.Fprintf(&b, "- aliases: %s\n", strings.Join(aliases, ", "))
		fmt.Fprintf(&b, "- driver: %s\n", cfg.Driver)
		fmt.Fprintf(&b, "- default flush mode: %s\n", cfg.DefaultFlush)
		fmt.Fprintf(&b, "- reflection optimizer: %t\n", cfg.UseReflectionOptimizer)
		fmt.Fprintf(&b, "- named queries: %d\n\n", len(cfg.Queries))
	}

	return b.String(), nil
}
