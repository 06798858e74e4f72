package orm

import (
	"fmt"
	"time"
)

// Config holds everything needed to open and run one session factory.
// A configuration builder produces one Config per factory node.
type Config struct {
	// FactoryID is the component id the factory is registered under.
	FactoryID string

	// Driver is the database/sql driver name (e.g. "sqlite3").
	Driver string
	// DSN is the driver-specific data source name.
	DSN string

	// Connection pool settings. Zero values leave the driver defaults.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// UseReflectionOptimizer enables the prepared-statement cache on
	// sessions opened by this factory.
	UseReflectionOptimizer bool

	// DefaultFlush is the flush mode sessions start with.
	DefaultFlush FlushMode

	// Queries is the named query catalog assembled from mapping entries.
	Queries map[string]string

	// Interceptor observes session lifecycle and statement execution.
	// Optional.
	Interceptor Interceptor
}

// Validate checks that the config can open a factory.
func (c *Config) Validate() error {
	if c.FactoryID == "" {
		return fmt.Errorf("factory id is required")
	}
	if c.Driver == "" {
		return fmt.Errorf("factory %s: driver is required", c.FactoryID)
	}
	if c.DSN == "" {
		return fmt.Errorf("factory %s: dsn is required", c.FactoryID)
	}
	return nil
}

// Query returns the named query from the catalog.
func (c *Config) Query(name string) (string, bool) {
	q, ok := c.Queries[name]
	return q, ok
}
