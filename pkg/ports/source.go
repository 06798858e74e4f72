package ports

import "github.com/aretw0/arbor/pkg/orm"

// FactorySource resolves a registered session factory by its component
// id. The facility wires a container-backed source into the session
// manager; tests substitute a map.
type FactorySource interface {
	Factory(id string) (*orm.Factory, error)
}

// FactorySourceFunc adapts a function to FactorySource.
type FactorySourceFunc func(id string) (*orm.Factory, error)

// Factory calls f.
func (f FactorySourceFunc) Factory(id string) (*orm.Factory, error) {
	return f(id)
}
