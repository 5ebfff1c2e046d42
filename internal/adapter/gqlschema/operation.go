package gqlschema

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/roach88/mockingbird/internal/ir"
)

// Root field names.
const (
	VariablesField = "variables"
	DataField      = "data"
)

// DefaultMaxDepth bounds expansion of recursive input objects.
const DefaultMaxDepth = 8

// ErrNoSchema is returned by Parse when no schema is given or registered.
var ErrNoSchema = errors.New("gqlschema: no schema given or registered")

// Operation is a parsed GraphQL operation. It satisfies engine.Schema.
type Operation struct {
	name string
	kind ast.Operation
	root *ir.Node
}

// Root returns the root node holding variables and data.
func (o *Operation) Root() *ir.Node { return o.root }

// Name returns the operation name, empty for anonymous operations.
func (o *Operation) Name() string { return o.name }

// Kind returns query, mutation or subscription.
func (o *Operation) Kind() ast.Operation { return o.kind }

type config struct {
	operation string
	maxDepth  int
}

// Option configures Parse.
type Option func(*config)

// WithOperation selects an operation by name when the document holds
// several. The default is the first one.
func WithOperation(name string) Option {
	return func(c *config) { c.operation = name }
}

// WithMaxDepth sets how deep recursive input objects are expanded.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// Parse validates query against schema and converts one operation. A nil
// schema means the registered one.
func Parse(schema *ast.Schema, query string, opts ...Option) (*Operation, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if schema == nil {
		schema = Registered()
	}
	if schema == nil {
		return nil, ErrNoSchema
	}

	doc, errs := gqlparser.LoadQuery(schema, query)
	if len(errs) > 0 {
		return nil, fmt.Errorf("gqlschema: %w", errs)
	}

	op, err := pickOperation(doc, cfg.operation)
	if err != nil {
		return nil, err
	}

	c := &converter{schema: schema, maxDepth: cfg.maxDepth}
	root := &ir.Node{Required: true}
	if len(op.VariableDefinitions) > 0 {
		variables := &ir.Node{Name: VariablesField, Required: true}
		for _, v := range op.VariableDefinitions {
			variables.Children = append(variables.Children, c.variable(v))
		}
		root.Children = append(root.Children, variables)
	}
	root.Children = append(root.Children, &ir.Node{
		Name:     DataField,
		Required: true,
		TypeName: rootTypeName(schema, op.Operation),
		Children: c.selection(op.SelectionSet, nil),
	})

	return &Operation{name: op.Name, kind: op.Operation, root: root}, nil
}

func pickOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, error) {
	if len(doc.Operations) == 0 {
		return nil, errors.New("gqlschema: document has no operation")
	}
	if name == "" {
		return doc.Operations[0], nil
	}
	if op := doc.Operations.ForName(name); op != nil {
		return op, nil
	}
	return nil, fmt.Errorf("gqlschema: operation %q not found", name)
}

func rootTypeName(schema *ast.Schema, kind ast.Operation) string {
	var def *ast.Definition
	switch kind {
	case ast.Query:
		def = schema.Query
	case ast.Mutation:
		def = schema.Mutation
	case ast.Subscription:
		def = schema.Subscription
	}
	if def == nil {
		return ""
	}
	return def.Name
}

type converter struct {
	schema   *ast.Schema
	maxDepth int
}

// selection converts a selection set. Fragments are inlined; a response key
// selected twice keeps its first occurrence.
func (c *converter) selection(set ast.SelectionSet, seen map[string]bool) []*ir.Node {
	if seen == nil {
		seen = make(map[string]bool)
	}
	var nodes []*ir.Node
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			key := s.Alias
			if key == "" {
				key = s.Name
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			nodes = append(nodes, c.field(key, s))
		case *ast.FragmentSpread:
			if s.Definition != nil {
				nodes = append(nodes, c.selection(s.Definition.SelectionSet, seen)...)
			}
		case *ast.InlineFragment:
			nodes = append(nodes, c.selection(s.SelectionSet, seen)...)
		}
	}
	return nodes
}

func (c *converter) field(key string, f *ast.Field) *ir.Node {
	if f.Name == "__typename" {
		n := &ir.Node{Name: key, Type: ir.TypeString, Required: true}
		if f.ObjectDefinition != nil && f.ObjectDefinition.Kind == ast.Object {
			n.Constraints.Enum = []any{f.ObjectDefinition.Name}
		}
		return n
	}

	if f.Definition == nil {
		return &ir.Node{Name: key, Type: ir.TypeObject}
	}
	t := f.Definition.Type
	n := &ir.Node{Name: key, Required: t.NonNull, Array: t.Elem != nil}
	named := t.Name()
	n.TypeName = named

	if len(f.SelectionSet) > 0 {
		n.Children = c.selection(f.SelectionSet, nil)
		return n
	}
	c.scalar(n, c.schema.Types[named])
	return n
}

func (c *converter) variable(v *ast.VariableDefinition) *ir.Node {
	return c.input(v.Variable, v.Type, 0)
}

// input converts an input value. Input objects expand into composites.
func (c *converter) input(name string, t *ast.Type, depth int) *ir.Node {
	named := t.Name()
	n := &ir.Node{Name: name, Required: t.NonNull, Array: t.Elem != nil, TypeName: named}

	def := c.schema.Types[named]
	if def != nil && def.Kind == ast.InputObject {
		if depth < c.maxDepth {
			for _, fd := range def.Fields {
				if depth+1 >= c.maxDepth && !fd.Type.NonNull {
					continue
				}
				n.Children = append(n.Children, c.input(fd.Name, fd.Type, depth+1))
			}
		}
		if len(n.Children) == 0 {
			n.Type = ir.TypeObject
		}
		return n
	}
	c.scalar(n, def)
	return n
}

// scalar sets the type of a leaf from its named definition.
func (c *converter) scalar(n *ir.Node, def *ast.Definition) {
	if def == nil {
		n.Type = ir.TypeObject
		return
	}
	switch def.Kind {
	case ast.Enum:
		n.Type = ir.TypeString
		for _, ev := range def.EnumValues {
			n.Constraints.Enum = append(n.Constraints.Enum, ev.Name)
		}
		return
	case ast.Scalar:
	default:
		n.Type = ir.TypeObject
		return
	}

	switch def.Name {
	case "String":
		n.Type = ir.TypeString
	case "Int":
		n.Type = ir.TypeInt
	case "Float":
		n.Type = ir.TypeFloat
	case "Boolean":
		n.Type = ir.TypeBoolean
	case "ID":
		n.Type = ir.TypeID
	case "Date", "DateTime":
		n.Type = ir.TypeDate
	case "JSON":
		n.Type = ir.TypeObject
	default:
		n.Type = ir.TypeString
		n.CustomScalar = true
	}
}
