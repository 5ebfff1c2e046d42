package testutil

import (
	"regexp"

	"github.com/roach88/mockingbird/internal/ir"
)

// NodeOption adjusts a node built by Leaf, Object or Root.
type NodeOption func(*ir.Node)

// Required marks the node required.
func Required() NodeOption {
	return func(n *ir.Node) { n.Required = true }
}

// Array marks the node repeated.
func Array() NodeOption {
	return func(n *ir.Node) { n.Array = true }
}

// TypeName sets the source-format type name.
func TypeName(name string) NodeOption {
	return func(n *ir.Node) { n.TypeName = name }
}

// CustomScalar marks the node a custom scalar of the given type name.
func CustomScalar(typeName string) NodeOption {
	return func(n *ir.Node) {
		n.CustomScalar = true
		n.TypeName = typeName
	}
}

// Bounds sets intrinsic min and max constraints.
func Bounds(lo, hi float64) NodeOption {
	return func(n *ir.Node) {
		n.Constraints.Min = ir.Float(lo)
		n.Constraints.Max = ir.Float(hi)
	}
}

// Size sets an intrinsic size constraint.
func Size(size int) NodeOption {
	return func(n *ir.Node) { n.Constraints.Size = ir.Int(size) }
}

// Enum sets intrinsic enum values.
func Enum(values ...any) NodeOption {
	return func(n *ir.Node) { n.Constraints.Enum = values }
}

// Pattern sets an intrinsic pattern constraint.
func Pattern(expr string) NodeOption {
	return func(n *ir.Node) { n.Constraints.Pattern = regexp.MustCompile(expr) }
}

// Leaf builds a leaf node.
func Leaf(name string, t ir.FieldType, opts ...NodeOption) *ir.Node {
	n := &ir.Node{Name: name, Type: t}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Object builds a composite node. Options are applied before children are
// attached.
func Object(name string, children []*ir.Node, opts ...NodeOption) *ir.Node {
	n := &ir.Node{Name: name}
	for _, opt := range opts {
		opt(n)
	}
	n.Children = children
	return n
}

// Schema is a fixed node tree satisfying engine.Schema.
type Schema struct {
	root *ir.Node
}

// NewSchema wraps top-level nodes into a Schema.
func NewSchema(nodes ...*ir.Node) *Schema {
	return &Schema{root: &ir.Node{Children: nodes}}
}

// Root implements engine.Schema.
func (s *Schema) Root() *ir.Node {
	return s.root
}
