package ports

import (
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/orm"
)

// ConfigurationBuilder turns one factory configuration node into a fully
// populated factory config. Builders must be deterministic: the same node
// always produces the same config.
type ConfigurationBuilder interface {
	Build(node *conftree.Node) (*orm.Config, error)
}

// ConfigurationBuilderFunc adapts a function to ConfigurationBuilder.
type ConfigurationBuilderFunc func(node *conftree.Node) (*orm.Config, error)

// Build calls f.
func (f ConfigurationBuilderFunc) Build(node *conftree.Node) (*orm.Config, error) {
	return f(node)
}
