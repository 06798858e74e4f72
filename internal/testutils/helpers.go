package testutils

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/orm"

	// Tests run against in-memory SQLite.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig returns a factory config backed by an in-memory SQLite
// database named after the running test. The pool is capped at a single
// connection so sequential statements and transactions observe the same
// database.
func SQLiteConfig(t *testing.T, id string) *orm.Config {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	return &orm.Config{
		FactoryID:    id,
		Driver:       "sqlite3",
		DSN:          "file:" + name + "_" + id + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}
