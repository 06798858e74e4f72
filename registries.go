package arbor

import (
	"github.com/aretw0/arbor/pkg/adapters/ambient"
	"github.com/aretw0/arbor/pkg/adapters/web"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
)

// defaultStores returns a fresh store registry holding the built-in
// adapters. Each facility gets its own registry so WithStore never
// leaks entries between instances.
func defaultStores() *registry.Registry[ports.SessionStore] {
	r := registry.New[ports.SessionStore]("session store")
	_ = r.Register(StoreAmbient, func() (ports.SessionStore, error) {
		return ambient.NewStore(), nil
	})
	_ = r.Register(StoreWeb, func() (ports.SessionStore, error) {
		return web.NewStore(), nil
	})
	return r
}

func defaultBuilders() *registry.Registry[ports.ConfigurationBuilder] {
	r := registry.New[ports.ConfigurationBuilder]("configuration builder")
	_ = r.Register("sqlx", func() (ports.ConfigurationBuilder, error) {
		return NewSQLBuilder(), nil
	})
	return r
}
