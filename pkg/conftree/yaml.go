package conftree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a YAML document into a configuration node named name.
//
// Scalar mapping entries become attributes (the raw scalar text, so
// booleans and numbers keep their literal form). A nested mapping becomes
// a single child node named after its key. A sequence of mappings becomes
// one child per item, each named after the key, so lists like
//
//	factory:
//	  - id: crm
//	  - id: billing
//
// produce two children named "factory" in document order.
func FromYAML(name string, data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	root := NewNode(name)
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document: a valid, attribute-less node.
		return root, nil
	}
	if err := fillNode(root, doc.Content[0]); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadFile reads path and parses it with FromYAML.
func LoadFile(name, path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromYAML(name, data)
}

func fillNode(n *Node, m *yaml.Node) error {
	m = resolved(m)
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("node %q: expected a mapping, got %s (line %d)", n.Name, kindName(m.Kind), m.Line)
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		key := resolved(m.Content[i])
		val := resolved(m.Content[i+1])

		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("node %q: mapping key must be a scalar (line %d)", n.Name, key.Line)
		}

		switch val.Kind {
		case yaml.ScalarNode:
			n.SetAttr(key.Value, val.Value)
		case yaml.MappingNode:
			child := NewNode(key.Value)
			if err := fillNode(child, val); err != nil {
				return err
			}
			n.AddChild(child)
		case yaml.SequenceNode:
			for idx, item := range val.Content {
				item = resolved(item)
				if item.Kind != yaml.MappingNode {
					return fmt.Errorf("node %q: item %d of %q must be a mapping, got %s (line %d)",
						n.Name, idx, key.Value, kindName(item.Kind), item.Line)
				}
				child := NewNode(key.Value)
				if err := fillNode(child, item); err != nil {
					return err
				}
				n.AddChild(child)
			}
		default:
			return fmt.Errorf("node %q: unsupported value for %q (line %d)", n.Name, key.Value, val.Line)
		}
	}
	return nil
}

// resolved follows YAML alias nodes to their anchor.
func resolved(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
