package arbor

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/orm"
	"gopkg.in/yaml.v3"
)

// SQLBuilder is the default configuration builder. It turns a factory
// node into an orm.Config backed by database/sql drivers via sqlx.
//
// Recognized attributes: id, driver (required), dsn (required),
// maxOpenConns, maxIdleConns, connMaxLifetime (duration string),
// defaultFlushMode. Query catalogs come from "mapping" children, each
// either pointing at a YAML file of name-to-SQL pairs via a "file"
// attribute or carrying the pair inline as "name" and "sql" attributes.
type SQLBuilder struct{}

// NewSQLBuilder returns the default builder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

type sqlBuilderAttrs struct {
	ID               string `mapstructure:"id"`
	Driver           string `mapstructure:"driver"`
	DSN              string `mapstructure:"dsn"`
	MaxOpenConns     int    `mapstructure:"maxOpenConns"`
	MaxIdleConns     int    `mapstructure:"maxIdleConns"`
	ConnMaxLifetime  string `mapstructure:"connMaxLifetime"`
	DefaultFlushMode string `mapstructure:"defaultFlushMode"`
}

// Build implements ports.ConfigurationBuilder.
func (b *SQLBuilder) Build(node *conftree.Node) (*orm.Config, error) {
	var attrs sqlBuilderAttrs
	if err := node.DecodeAttrs(&attrs); err != nil {
		return nil, fmt.Errorf("decoding factory attributes: %w", err)
	}

	cfg := &orm.Config{
		FactoryID:    attrs.ID,
		Driver:       attrs.Driver,
		DSN:          attrs.DSN,
		MaxOpenConns: attrs.MaxOpenConns,
		MaxIdleConns: attrs.MaxIdleConns,
	}

	if attrs.ConnMaxLifetime != "" {
		d, err := time.ParseDuration(attrs.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("attribute connMaxLifetime: %w", err)
		}
		cfg.ConnMaxLifetime = d
	}

	if attrs.DefaultFlushMode != "" {
		mode, err := orm.ParseFlushMode(attrs.DefaultFlushMode)
		if err != nil {
			return nil, fmt.Errorf("attribute defaultFlushMode: %w", err)
		}
		cfg.DefaultFlush = mode
	}

	for _, mapping := range node.ChildrenNamed("mapping") {
		if err := b.applyMapping(cfg, mapping); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyMapping merges one mapping node into the config's query catalog.
func (b *SQLBuilder) applyMapping(cfg *orm.Config, node *conftree.Node) error {
	if cfg.Queries == nil {
		cfg.Queries = make(map[string]string)
	}

	if file, ok := node.Attr("file"); ok {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading query catalog %s: %w", file, err)
		}
		catalog := make(map[string]string)
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("parsing query catalog %s: %w", file, err)
		}
		for name, query := range catalog {
			cfg.Queries[name] = query
		}
		return nil
	}

	name, _ := node.Attr("name")
	query, _ := node.Attr("sql")
	if name == "" || query == "" {
		return fmt.Errorf("mapping node needs either a file attribute or both name and sql")
	}
	cfg.Queries[name] = query
	return nil
}
