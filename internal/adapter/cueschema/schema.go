package cueschema

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/mockingbird/internal/ir"
)

// DefaultMaxDepth bounds recursion through self-referencing definitions.
const DefaultMaxDepth = 8

// attrKey is the attribute carrying generation hints.
const attrKey = "mock"

// Schema is a compiled CUE schema. It satisfies engine.Schema.
type Schema struct {
	root  *ir.Node
	value cue.Value
}

// Root returns the root node.
func (s *Schema) Root() *ir.Node {
	return s.root
}

// Value returns the CUE value the schema was built from.
func (s *Schema) Value() cue.Value {
	return s.value
}

type config struct {
	root     string
	filename string
	maxDepth int
}

// Option configures compilation.
type Option func(*config)

// WithRoot selects the value to generate from, e.g. "#Order" or
// "schemas.user". The default is the whole file.
func WithRoot(path string) Option {
	return func(c *config) { c.root = path }
}

// WithFilename sets the file name reported in error positions.
func WithFilename(name string) Option {
	return func(c *config) { c.filename = name }
}

// WithMaxDepth sets how deep recursive definitions are expanded.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// Compile parses CUE source into a Schema.
//
//	s, err := cueschema.Compile(src, cueschema.WithRoot("#User"))
func Compile(src []byte, opts ...Option) (*Schema, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := cuecontext.New()
	var buildOpts []cue.BuildOption
	if cfg.filename != "" {
		buildOpts = append(buildOpts, cue.Filename(cfg.filename))
	}
	v := ctx.CompileBytes(src, buildOpts...)
	if err := v.Err(); err != nil {
		return nil, fromCUE(err)
	}

	if cfg.root == "" {
		return fromValue(v, cfg)
	}

	p := cue.ParsePath(cfg.root)
	v = v.LookupPath(p)
	if !v.Exists() {
		return nil, &CompileError{
			Field:   cfg.root,
			Message: "root not found",
		}
	}
	s, err := fromValue(v, cfg)
	if err != nil {
		return nil, err
	}
	if s.root.TypeName == "" {
		s.root.TypeName = lastSelector(p)
	}
	return s, nil
}

// FromValue builds a Schema from an already evaluated CUE value.
func FromValue(v cue.Value, opts ...Option) (*Schema, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return fromValue(v, cfg)
}

func fromValue(v cue.Value, cfg config) (*Schema, error) {
	if err := v.Err(); err != nil {
		return nil, fromCUE(err)
	}
	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{
			Field:   "root",
			Message: fmt.Sprintf("root must be a struct, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}

	b := &builder{maxDepth: cfg.maxDepth}
	children, err := b.fields(v, 0)
	if err != nil {
		return nil, err
	}
	return &Schema{
		root:  &ir.Node{TypeName: typeName(v), Required: true, Children: children},
		value: v,
	}, nil
}

type builder struct {
	maxDepth int
}

// fields converts the regular and optional fields of a struct, in
// declaration order.
func (b *builder) fields(v cue.Value, depth int) ([]*ir.Node, error) {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, fromCUE(err)
	}

	var nodes []*ir.Node
	for iter.Next() {
		name := iter.Selector().Unquoted()
		optional := iter.IsOptional()
		if depth >= b.maxDepth && optional {
			continue
		}
		n, err := b.node(name, iter.Value(), !optional, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *builder) node(name string, v cue.Value, required bool, depth int) (*ir.Node, error) {
	n := &ir.Node{Name: name, Required: required, TypeName: typeName(v)}

	hint, err := readHint(name, v)
	if err != nil {
		return nil, err
	}
	if hint.size != nil {
		n.Constraints.Size = hint.size
	}

	elem := v
	if v.IncompleteKind() == cue.ListKind {
		n.Array = true
		elem = listElement(v)
		if tn := typeName(elem); tn != "" {
			n.TypeName = tn
		}
	}

	kind := elem.IncompleteKind()
	if kind == cue.StructKind && depth+1 < b.maxDepth {
		children, err := b.fields(elem, depth+1)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			n.Children = children
			return n, nil
		}
	}

	t, err := fieldType(name, elem, kind)
	if err != nil {
		return nil, err
	}
	if hint.typ != "" {
		t = hint.typ
	}
	n.Type = t

	if err := collectConstraints(elem, &n.Constraints); err != nil {
		return nil, &CompileError{Field: name, Message: err.Error(), Pos: v.Pos()}
	}
	return n, nil
}

// listElement returns the element constraint of a list, falling back to the
// first element of a closed list.
func listElement(v cue.Value) cue.Value {
	if e := v.LookupPath(cue.MakePath(cue.AnyIndex)); e.Exists() {
		return e
	}
	return v.LookupPath(cue.MakePath(cue.Index(0)))
}

func fieldType(name string, v cue.Value, kind cue.Kind) (ir.FieldType, error) {
	switch kind {
	case cue.StringKind:
		return ir.TypeString, nil
	case cue.IntKind:
		return ir.TypeInt, nil
	case cue.FloatKind, cue.NumberKind:
		return ir.TypeFloat, nil
	case cue.BoolKind:
		return ir.TypeBoolean, nil
	case cue.BytesKind:
		return ir.TypeBytes, nil
	case cue.StructKind:
		return ir.TypeObject, nil
	}
	return "", &CompileError{
		Field:   name,
		Message: fmt.Sprintf("unsupported type kind: %v", kind),
		Pos:     v.Pos(),
	}
}

// typeName returns the definition name a value refers to, e.g. "#User"
// yields "User".
func typeName(v cue.Value) string {
	_, p := v.ReferencePath()
	return lastSelector(p)
}

func lastSelector(p cue.Path) string {
	sels := p.Selectors()
	if len(sels) == 0 {
		return ""
	}
	last := sels[len(sels)-1]
	s := last.String()
	if last.IsDefinition() && len(s) > 1 {
		return s[1:]
	}
	return s
}

type hint struct {
	typ  ir.FieldType
	size *int
}

// readHint parses @mock(<type>, size=<n>).
func readHint(name string, v cue.Value) (hint, error) {
	var h hint
	attr := v.Attribute(attrKey)
	if attr.Err() != nil {
		return h, nil
	}
	for i := range attr.NumArgs() {
		key, value := attr.Arg(i)
		switch {
		case value == "":
			t, err := ir.ParseFieldType(key)
			if err != nil {
				return h, &CompileError{Field: name, Message: err.Error(), Pos: v.Pos()}
			}
			h.typ = t
		case key == "size":
			size, err := strconv.Atoi(value)
			if err != nil || size < 0 {
				return h, &CompileError{Field: name, Message: fmt.Sprintf("invalid size %q", value), Pos: v.Pos()}
			}
			h.size = ir.Int(size)
		default:
			return h, &CompileError{Field: name, Message: fmt.Sprintf("unknown @%s argument %q", attrKey, key), Pos: v.Pos()}
		}
	}
	return h, nil
}
