// Package jsonschema builds mockingbird schema trees from JSON Schema
// documents (draft 2020-12, as parsed by github.com/google/jsonschema-go).
//
// Properties are visited in sorted order. Local references into $defs and
// definitions are followed; remote references are rejected.
package jsonschema

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	js "github.com/google/jsonschema-go/jsonschema"

	"github.com/roach88/mockingbird/internal/ir"
)

// DefaultMaxDepth bounds recursion through self-referencing definitions.
const DefaultMaxDepth = 8

// Schema is a converted JSON Schema. It satisfies engine.Schema.
type Schema struct {
	root     *ir.Node
	source   *js.Schema
	resolved *js.Resolved
}

// Root returns the root node.
func (s *Schema) Root() *ir.Node { return s.root }

// Source returns the parsed JSON Schema.
func (s *Schema) Source() *js.Schema { return s.source }

// Validate checks an instance, typically a generated fixture, against the
// source document.
func (s *Schema) Validate(instance any) error {
	return s.resolved.Validate(instance)
}

type config struct {
	maxDepth int
}

// Option configures conversion.
type Option func(*config)

// WithMaxDepth sets how deep recursive definitions are expanded.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// Parse decodes and converts a JSON Schema document.
func Parse(data []byte, opts ...Option) (*Schema, error) {
	var s js.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}
	return FromSchema(&s, opts...)
}

// For infers a schema from the Go type T and converts it.
func For[T any](opts ...Option) (*Schema, error) {
	s, err := js.For[T](nil)
	if err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}
	return FromSchema(s, opts...)
}

// FromSchema converts an in-memory JSON Schema. The schema must describe
// an object.
func FromSchema(s *js.Schema, opts ...Option) (*Schema, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}

	c := &converter{root: s, maxDepth: cfg.maxDepth}
	eff, name, err := c.deref(s, "", 0)
	if err != nil {
		return nil, err
	}
	if t := typeOf(eff); t != "object" {
		return nil, &SchemaError{Message: fmt.Sprintf("root must be an object, got %q", t)}
	}
	children, err := c.properties(eff, "", 0)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = eff.Title
	}
	return &Schema{
		root:     &ir.Node{TypeName: name, Required: true, Children: children},
		source:   s,
		resolved: resolved,
	}, nil
}

type converter struct {
	root     *js.Schema
	maxDepth int
}

// properties converts the properties of an object schema, folding in allOf
// members.
func (c *converter) properties(s *js.Schema, ptr string, depth int) ([]*ir.Node, error) {
	props, required, err := c.collect(s, ptr, depth)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	nodes := make([]*ir.Node, 0, len(names))
	for _, name := range names {
		isRequired := slices.Contains(required, name)
		if depth >= c.maxDepth && !isRequired {
			continue
		}
		n, err := c.node(name, props[name], ptr+"/properties/"+name, isRequired, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (c *converter) collect(s *js.Schema, ptr string, depth int) (map[string]*js.Schema, []string, error) {
	props := make(map[string]*js.Schema, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}
	required := slices.Clone(s.Required)

	for i, member := range s.AllOf {
		mptr := fmt.Sprintf("%s/allOf/%d", ptr, i)
		eff, _, err := c.deref(member, mptr, depth)
		if err != nil {
			return nil, nil, err
		}
		mp, mr, err := c.collect(eff, mptr, depth)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range mp {
			if _, ok := props[k]; !ok {
				props[k] = v
			}
		}
		required = append(required, mr...)
	}
	return props, required, nil
}

func (c *converter) node(name string, s *js.Schema, ptr string, required bool, depth int) (*ir.Node, error) {
	eff, typeName, err := c.deref(s, ptr, depth)
	if err != nil {
		return nil, err
	}
	n := &ir.Node{Name: name, Required: required, TypeName: typeName}

	if typeOf(eff) == "array" {
		n.Array = true
		applyItemCount(eff, &n.Constraints)
		items := eff.Items
		if items == nil && len(eff.PrefixItems) > 0 {
			items = eff.PrefixItems[0]
		}
		if items == nil {
			items = &js.Schema{Type: "string"}
		}
		var itemName string
		eff, itemName, err = c.deref(items, ptr+"/items", depth)
		if err != nil {
			return nil, err
		}
		if itemName != "" {
			n.TypeName = itemName
		}
	}
	if n.TypeName == "" {
		n.TypeName = eff.Title
	}

	t := typeOf(eff)
	if t == "object" && depth+1 < c.maxDepth {
		children, err := c.properties(eff, ptr, depth+1)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			n.Children = children
			return n, nil
		}
	}

	ft, err := fieldType(t, eff)
	if err != nil {
		return nil, &SchemaError{Pointer: ptr, Message: err.Error()}
	}
	n.Type = ft
	if err := applyScalar(eff, t, &n.Constraints); err != nil {
		return nil, &SchemaError{Pointer: ptr, Message: err.Error()}
	}
	return n, nil
}

// deref follows local references and unwraps nullable anyOf/oneOf
// wrappers. It returns the effective schema and the name of the last
// definition followed.
func (c *converter) deref(s *js.Schema, ptr string, depth int) (*js.Schema, string, error) {
	var name string
	for hops := 0; ; hops++ {
		if hops > c.maxDepth+depth {
			return nil, "", &SchemaError{Pointer: ptr, Message: "reference cycle"}
		}
		switch {
		case s.Ref != "":
			target, defName, err := c.lookupRef(s.Ref)
			if err != nil {
				return nil, "", &SchemaError{Pointer: ptr, Message: err.Error()}
			}
			s, name = target, defName
		case len(s.AnyOf) > 0 && typeOf(s) == "":
			s = firstNonNull(s.AnyOf)
		case len(s.OneOf) > 0 && typeOf(s) == "":
			s = firstNonNull(s.OneOf)
		default:
			return s, name, nil
		}
	}
}

func (c *converter) lookupRef(ref string) (*js.Schema, string, error) {
	if ref == "#" {
		return c.root, c.root.Title, nil
	}
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		name, ok := strings.CutPrefix(ref, prefix)
		if !ok {
			continue
		}
		defs := c.root.Defs
		if prefix == "#/definitions/" {
			defs = c.root.Definitions
		}
		if target, ok := defs[name]; ok {
			return target, name, nil
		}
		return nil, "", fmt.Errorf("unknown definition %q", name)
	}
	return nil, "", fmt.Errorf("unsupported reference %q", ref)
}

func firstNonNull(alts []*js.Schema) *js.Schema {
	for _, a := range alts {
		if typeOf(a) != "null" {
			return a
		}
	}
	return alts[0]
}

// typeOf returns the declared type, ignoring "null" in type unions. A
// schema with properties and no type is an object.
func typeOf(s *js.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	for _, t := range s.Types {
		if t != "null" {
			return t
		}
	}
	switch {
	case len(s.Properties) > 0 || len(s.AllOf) > 0:
		return "object"
	case s.Items != nil:
		return "array"
	case len(s.Enum) > 0:
		return literalType(s.Enum[0])
	case s.Const != nil:
		return literalType(*s.Const)
	}
	return ""
}

func literalType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	}
	return ""
}

func fieldType(t string, s *js.Schema) (ir.FieldType, error) {
	switch t {
	case "string":
		switch {
		case s.Format == "uuid":
			return ir.TypeUUID, nil
		case s.Format == "date-time" || s.Format == "date":
			return ir.TypeDate, nil
		case s.ContentEncoding == "base64":
			return ir.TypeBytes, nil
		}
		return ir.TypeString, nil
	case "integer":
		return ir.TypeInt, nil
	case "number":
		return ir.TypeFloat, nil
	case "boolean":
		return ir.TypeBoolean, nil
	case "object":
		return ir.TypeObject, nil
	}
	return "", fmt.Errorf("unsupported type %q", t)
}

// applyScalar maps validation keywords to constraints. Length bounds on
// strings become Min and Max, which shape generated length.
func applyScalar(s *js.Schema, t string, c *ir.Constraints) error {
	switch t {
	case "integer", "number":
		if s.Minimum != nil {
			c.Min = ir.Float(*s.Minimum)
		}
		if s.Maximum != nil {
			c.Max = ir.Float(*s.Maximum)
		}
		if s.ExclusiveMinimum != nil {
			lo := *s.ExclusiveMinimum
			if t == "integer" {
				lo = math.Floor(lo) + 1
			}
			c.Min = ir.Float(lo)
		}
		if s.ExclusiveMaximum != nil {
			hi := *s.ExclusiveMaximum
			if t == "integer" {
				hi = math.Ceil(hi) - 1
			}
			c.Max = ir.Float(hi)
		}
	case "string":
		if s.MinLength != nil {
			c.Min = ir.Float(float64(*s.MinLength))
		}
		if s.MaxLength != nil {
			c.Max = ir.Float(float64(*s.MaxLength))
		}
		if s.Pattern != "" {
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				return fmt.Errorf("pattern %q: %w", s.Pattern, err)
			}
			c.Pattern = re
		}
	}

	switch {
	case s.Const != nil:
		c.Enum = []any{normalizeLiteral(*s.Const, t)}
	case len(s.Enum) > 0:
		c.Enum = make([]any, len(s.Enum))
		for i, v := range s.Enum {
			c.Enum[i] = normalizeLiteral(v, t)
		}
	}
	return nil
}

// normalizeLiteral turns decoded JSON integers into int.
func normalizeLiteral(v any, t string) any {
	if f, ok := v.(float64); ok && t == "integer" && f == math.Trunc(f) {
		return int(f)
	}
	return v
}

// applyItemCount sets Size when the item count is fixed or has a lower
// bound.
func applyItemCount(s *js.Schema, c *ir.Constraints) {
	switch {
	case s.MinItems != nil && s.MaxItems != nil && *s.MinItems == *s.MaxItems:
		c.Size = ir.Int(*s.MinItems)
	case s.MinItems != nil && *s.MinItems > 0:
		c.Size = ir.Int(*s.MinItems)
	}
}
