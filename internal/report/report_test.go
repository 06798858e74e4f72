package report_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/report"
	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installFixture(t *testing.T) *arbor.Result {
	t.Helper()

	crm := testutils.SQLiteConfig(t, "crm")
	billing := testutils.SQLiteConfig(t, "billing")
	doc := fmt.Sprintf(`factory:
  - id: crm
    driver: sqlite3
    dsn: "%s"
    maxOpenConns: 1
  - id: billing
    alias: billing
    driver: sqlite3
    dsn: "%s"
    maxOpenConns: 1
`, crm.DSN, billing.DSN)

	node, err := conftree.FromYAML("arbor", []byte(doc))
	require.NoError(t, err)

	facility, err := arbor.New()
	require.NoError(t, err)

	result, err := facility.Install(container.New(), node)
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Close() })
	return result
}

func TestGenerate(t *testing.T) {
	result := installFixture(t)

	markdown, err := report.Generate(result)
	require.NoError(t, err)

	for _, want := range []string{
		"# Facility Wiring",
		"### crm",
		"### billing",
		"- driver: sqlite3",
		"- aliases: default",
		"- aliases: billing",
	} {
		assert.Contains(t, markdown, want)
	}
}

func TestMermaid(t *testing.T) {
	result := installFixture(t)

	out := report.Mermaid(result)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`manager[["arbor.sessionManager"]]`,
		"manager --> store",
		"manager --> txm",
		`crm[("crm")]`,
		`billing[("billing")]`,
		`manager -- "default" --> crm`,
		`manager -- "billing" --> billing`,
	} {
		assert.Contains(t, out, want)
	}
}
