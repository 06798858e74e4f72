package conftree

// Builder assembles a configuration tree programmatically, as an
// alternative to parsing YAML. Useful for tests and embedded setups.
type Builder struct {
	root *Node
}

// New creates a builder for a tree rooted at a node with the given name.
func New(name string) *Builder {
	return &Builder{root: NewNode(name)}
}

// Attr sets an attribute on the root node.
func (b *Builder) Attr(key, value string) *Builder {
	b.root.SetAttr(key, value)
	return b
}

// Child adds a child node to the root and returns its builder.
func (b *Builder) Child(name string) *ChildBuilder {
	c := NewNode(name)
	b.root.AddChild(c)
	return &ChildBuilder{node: c}
}

// Node returns the assembled tree.
func (b *Builder) Node() *Node {
	return b.root
}

// ChildBuilder provides a fluent API for configuring a child node.
type ChildBuilder struct {
	node *Node
}

// Attr sets an attribute on this node.
func (c *ChildBuilder) Attr(key, value string) *ChildBuilder {
	c.node.SetAttr(key, value)
	return c
}

// Child adds a nested child node and returns its builder.
func (c *ChildBuilder) Child(name string) *ChildBuilder {
	nested := NewNode(name)
	c.node.AddChild(nested)
	return &ChildBuilder{node: nested}
}

// Node returns the node under construction.
func (c *ChildBuilder) Node() *Node {
	return c.node
}
