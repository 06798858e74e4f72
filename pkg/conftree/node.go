package conftree

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Node is one element of a configuration tree: a name, a flat set of
// string attributes and an ordered list of children.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node
}

// NewNode creates an empty node with the given name.
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Attrs: make(map[string]string),
	}
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrDefault returns the named attribute, or def when it is absent.
func (n *Node) AttrDefault(key, def string) string {
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	return def
}

// SetAttr sets an attribute, overwriting any previous value.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// AddChild appends a child node, preserving document order.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// ChildrenNamed returns the children with the given name, in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child with the given name, or nil.
func (n *Node) FirstChild(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// DecodeAttrs decodes the node's attributes into out, a pointer to a
// struct with mapstructure tags. Decoding is weakly typed: "true" fills a
// bool field, "10" an int and "30s" a time.Duration. Attributes without a
// matching field are ignored so that several consumers can read the same
// node.
func (n *Node) DecodeAttrs(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("building attribute decoder: %w", err)
	}
	if err := dec.Decode(n.Attrs); err != nil {
		return fmt.Errorf("decoding attributes of %q: %w", n.Name, err)
	}
	return nil
}
