package conftree_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML_AttributesAndChildren(t *testing.T) {
	doc := []byte(`
isWeb: true
defaultFlushMode: commit
factory:
  - id: crm
    driver: sqlite3
    dsn: "file:crm.db?mode=memory"
    mapping:
      - name: findContact
        sql: SELECT * FROM contacts WHERE id = ?
  - id: billing
    alias: billing
    driver: sqlite3
    dsn: "file:billing.db?mode=memory"
`)

	node, err := conftree.FromYAML("facility", doc)
	require.NoError(t, err)

	assert.Equal(t, "facility", node.Name)
	assert.Equal(t, "true", node.AttrDefault("isWeb", ""))
	assert.Equal(t, "commit", node.AttrDefault("defaultFlushMode", ""))

	factories := node.ChildrenNamed("factory")
	require.Len(t, factories, 2)

	// Document order must survive parsing.
	assert.Equal(t, "crm", factories[0].AttrDefault("id", ""))
	assert.Equal(t, "billing", factories[1].AttrDefault("id", ""))

	mappings := factories[0].ChildrenNamed("mapping")
	require.Len(t, mappings, 1)
	assert.Equal(t, "findContact", mappings[0].AttrDefault("name", ""))
}

func TestFromYAML_NestedMappingBecomesChild(t *testing.T) {
	doc := []byte(`
id: main
pool:
  maxOpenConns: 8
`)

	node, err := conftree.FromYAML("factory", doc)
	require.NoError(t, err)

	pool := node.FirstChild("pool")
	require.NotNil(t, pool)
	assert.Equal(t, "8", pool.AttrDefault("maxOpenConns", ""))
}

func TestFromYAML_ScalarSequenceRejected(t *testing.T) {
	doc := []byte(`
tags:
  - one
  - two
`)

	_, err := conftree.FromYAML("facility", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a mapping")
}

func TestFromYAML_EmptyDocument(t *testing.T) {
	node, err := conftree.FromYAML("facility", nil)
	require.NoError(t, err)
	assert.Equal(t, "facility", node.Name)
	assert.Empty(t, node.Children)
}

func TestFromYAML_ResolvesAnchors(t *testing.T) {
	doc := []byte(`
dsn: &shared "file:shared.db"
copy: *shared
`)

	node, err := conftree.FromYAML("facility", doc)
	require.NoError(t, err)
	assert.Equal(t, "file:shared.db", node.AttrDefault("dsn", ""))
	assert.Equal(t, "file:shared.db", node.AttrDefault("copy", ""))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facility.yaml")
	require.NoError(t, os.WriteFile(path, []byte("factory:\n  - id: a\n"), 0o644))

	node, err := conftree.LoadFile("facility", path)
	require.NoError(t, err)
	require.Len(t, node.ChildrenNamed("factory"), 1)

	_, err = conftree.LoadFile("facility", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeAttrs(t *testing.T) {
	node := conftree.NewNode("factory")
	node.SetAttr("id", "crm")
	node.SetAttr("maxOpenConns", "12")
	node.SetAttr("useReflectionOptimizer", "true")
	node.SetAttr("connMaxLifetime", "90s")
	node.SetAttr("driver", "sqlite3") // no matching field, must be ignored

	var out struct {
		ID              string        `mapstructure:"id"`
		MaxOpenConns    int           `mapstructure:"maxOpenConns"`
		UseOptimizer    bool          `mapstructure:"useReflectionOptimizer"`
		ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	}
	require.NoError(t, node.DecodeAttrs(&out))

	assert.Equal(t, "crm", out.ID)
	assert.Equal(t, 12, out.MaxOpenConns)
	assert.True(t, out.UseOptimizer)
	assert.Equal(t, 90*time.Second, out.ConnMaxLifetime)
}

func TestDecodeAttrs_BadValue(t *testing.T) {
	node := conftree.NewNode("factory")
	node.SetAttr("maxOpenConns", "not-a-number")

	var out struct {
		MaxOpenConns int `mapstructure:"maxOpenConns"`
	}
	err := node.DecodeAttrs(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factory")
}
