package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor"
)

// Mermaid produces a Mermaid flowchart of the facility wiring: the
// session manager, its collaborators, and one database node per
// factory with the aliases that reach it.
func Mermaid(result *arbor.Result) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sb.WriteString(fmt.Sprintf("    manager[[\"%s\"]]\n", arbor.KeySessionManager))
	sb.WriteString(fmt.Sprintf("    store[\"%s <br/> %T\"]\n", arbor.KeySessionStore, result.Store))
	sb.WriteString(fmt.Sprintf("    txm[\"%s <br/> %T\"]\n", arbor.KeyTransactionManager, result.Tx))
	sb.WriteString("    manager --> store\n")
	sb.WriteString("    manager --> txm\n")

	aliases := result.Resolver.Aliases()
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, id := range result.FactoryIDs() {
		// Cylinder shape for the persistence units
		sb.WriteString(fmt.Sprintf("    %s[(\"%s\")]\n", sanitizeMermaidID(id), id))
	}
	for _, alias := range names {
		id := aliases[alias]
		sb.WriteString(fmt.Sprintf("    manager -- \"%s\" --> %s\n", alias, sanitizeMermaidID(id)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
