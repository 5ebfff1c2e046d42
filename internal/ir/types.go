package ir

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Delimiter separates path segments.
const Delimiter = "."

// Path identifies one node of a generated tree, e.g. "cart.items.price".
// Paths are produced by the engine while walking the schema.
type Path = string

// Pattern is a Path that may contain wildcards:
//   - "*"  matches one segment, or the rest of a segment ("field.is*")
//   - "**" matches zero or more whole segments
//   - "?"  matches exactly one character inside a segment
//
// Patterns key override maps, rule lists, exclude lists and relation maps.
type Pattern = string

// FieldType is the type tag the engine hands to the value generator.
type FieldType string

// Supported field types.
const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeFloat   FieldType = "float"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
	TypeBytes   FieldType = "bytes"
	TypeUUID    FieldType = "uuid"
	TypeID      FieldType = "id"     // 24 hex characters, object-id shaped
	TypeObject  FieldType = "object" // free-form JSON object
)

// ValidFieldTypes lists the field types a generator must support.
var ValidFieldTypes = map[FieldType]bool{
	TypeString:  true,
	TypeInt:     true,
	TypeFloat:   true,
	TypeBoolean: true,
	TypeDate:    true,
	TypeBytes:   true,
	TypeUUID:    true,
	TypeID:      true,
	TypeObject:  true,
}

// ParseFieldType converts a type name to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.ToLower(s))
	if !ValidFieldTypes[t] {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}

// IsNumeric reports whether values of this type compare numerically.
func (t FieldType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Constraints is a set of optional validity constraints (a "rule" body).
// All set fields combine conjunctively.
type Constraints struct {
	Required *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Size     *int           `json:"size,omitempty" yaml:"size,omitempty"`
	Min      *float64       `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64       `json:"max,omitempty" yaml:"max,omitempty"`
	Enum     []any          `json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern  *regexp.Regexp `json:"-" yaml:"-"`
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c.Required == nil && c.Size == nil && c.Min == nil && c.Max == nil &&
		len(c.Enum) == 0 && c.Pattern == nil
}

// IsRequired reports whether Required is set to true.
func (c Constraints) IsRequired() bool {
	return c.Required != nil && *c.Required
}

// Shapes reports whether any constraint restricts the shape of a generated
// value (enum, pattern, size or bounds).
func (c Constraints) Shapes() bool {
	return len(c.Enum) > 0 || c.Pattern != nil || c.Size != nil || c.Min != nil || c.Max != nil
}

// Clone returns a copy that shares no mutable state with c.
func (c Constraints) Clone() Constraints {
	out := Constraints{Pattern: c.Pattern}
	if c.Required != nil {
		out.Required = Bool(*c.Required)
	}
	if c.Size != nil {
		out.Size = Int(*c.Size)
	}
	if c.Min != nil {
		out.Min = Float(*c.Min)
	}
	if c.Max != nil {
		out.Max = Float(*c.Max)
	}
	if c.Enum != nil {
		out.Enum = slices.Clone(c.Enum)
	}
	return out
}

// String renders the set fields for diagnostics.
func (c Constraints) String() string {
	var parts []string
	if c.Required != nil {
		parts = append(parts, fmt.Sprintf("required=%t", *c.Required))
	}
	if c.Size != nil {
		parts = append(parts, fmt.Sprintf("size=%d", *c.Size))
	}
	if c.Min != nil {
		parts = append(parts, fmt.Sprintf("min=%v", *c.Min))
	}
	if c.Max != nil {
		parts = append(parts, fmt.Sprintf("max=%v", *c.Max))
	}
	if len(c.Enum) > 0 {
		parts = append(parts, fmt.Sprintf("enum=%v", c.Enum))
	}
	if c.Pattern != nil {
		parts = append(parts, fmt.Sprintf("pattern=%s", c.Pattern))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Rule attaches a constraint set to a pattern.
type Rule struct {
	Path        Pattern `json:"path" yaml:"path"`
	Constraints `yaml:",inline"`
}

// Node is one field of the schema tree exposed by an adapter.
//
// A node with children is a composite; Array marks a repeated composite or,
// for leaves, a list of scalars.
type Node struct {
	Name         string      `json:"name"`
	Type         FieldType   `json:"type,omitempty"`
	TypeName     string      `json:"type_name,omitempty"` // type name in the source format
	Required     bool        `json:"required"`
	Array        bool        `json:"array,omitempty"`
	CustomScalar bool        `json:"custom_scalar,omitempty"`
	Constraints  Constraints `json:"constraints"` // schema-intrinsic constraints
	Children     []*Node     `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Walk visits every descendant in depth-first declaration order, passing the
// node's path. Returning false from fn stops the walk below that node.
func (n *Node) Walk(fn func(path Path, node *Node) bool) {
	var walk func(parent Path, nodes []*Node)
	walk = func(parent Path, nodes []*Node) {
		for _, c := range nodes {
			p := c.Name
			if parent != "" {
				p = parent + Delimiter + c.Name
			}
			if fn(p, c) {
				walk(p, c.Children)
			}
		}
	}
	walk("", n.Children)
}

// Overrides maps patterns to literal values. The value Undefined forces a
// leaf to be absent from the output.
type Overrides map[Pattern]any

// Keys returns the override patterns in sorted order.
func (o Overrides) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Relations maps a source pattern to the target paths that copy its value.
type Relations map[Pattern][]Path

// Keys returns the relation sources in sorted order.
func (r Relations) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an explicitly absent value.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
