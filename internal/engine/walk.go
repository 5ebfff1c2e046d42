package engine

import (
	"fmt"

	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
	"github.com/roach88/mockingbird/internal/resolve"
)

// walker holds the state of one generation call.
type walker struct {
	f         *Fixture
	opts      Options
	overrides ir.Overrides

	// generated records every value produced so far, keyed by path, for
	// relation lookup. Array elements share a path; the last one wins.
	generated map[ir.Path]any
}

// object builds the composite holding nodes. Absent values are omitted.
func (w *walker) object(parent ir.Path, nodes []*ir.Node) (map[string]any, error) {
	obj := make(map[string]any, len(nodes))
	for _, n := range nodes {
		p := pathmatch.Join(parent, n.Name)
		v, err := w.node(p, n)
		if err != nil {
			return nil, err
		}
		if !ir.IsUndefined(v) {
			obj[n.Name] = v
		}
	}
	return obj, nil
}

// node produces the value for one node, or ir.Undefined when it is absent.
func (w *walker) node(p ir.Path, n *ir.Node) (any, error) {
	schema := schemaConstraints(n)

	skip, err := w.excluded(p, n, schema)
	if err != nil || skip {
		return ir.Undefined, err
	}

	if v, ok, err := w.related(p); err != nil || ok {
		return v, err
	}

	merged := schema
	rule, err := resolve.FindRule(p, w.opts.Rules)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		if merged, err = resolve.Merge(p, schema, rule.Constraints); err != nil {
			return nil, err
		}
	}

	var v any
	if n.IsLeaf() {
		v, err = w.leaf(p, n, merged)
	} else {
		v, err = w.composite(p, n, merged)
	}
	if err != nil {
		return nil, err
	}

	if err := w.f.validator.Validate(p, v, merged); err != nil {
		return nil, err
	}
	if !ir.IsUndefined(v) {
		w.generated[p] = v
	}
	return v, nil
}

// excluded applies requiredOnly, custom scalar and exclude policies.
func (w *walker) excluded(p ir.Path, n *ir.Node, schema ir.Constraints) (bool, error) {
	required := schema.IsRequired()
	if w.opts.RequiredOnly && !required {
		return true, nil
	}
	if n.CustomScalar && w.opts.IgnoreCustomScalars {
		return true, nil
	}
	matched := pathmatch.FindAll(p, w.opts.Exclude)
	if len(matched) == 0 {
		return false, nil
	}
	if required {
		return false, &RequiredFieldExcludedError{Path: p, Pattern: matched[0]}
	}
	return true, nil
}

// related copies the value of p's relation source, if p is a relation
// target and the source resolves to exactly one generated path.
func (w *walker) related(p ir.Path) (any, bool, error) {
	source, ok, err := resolve.FindRelation(p, w.opts.Relations)
	if err != nil || !ok {
		return nil, false, err
	}

	var (
		found any
		count int
	)
	for gp, v := range w.generated {
		if pathmatch.Matches(gp, source) {
			found = v
			count++
		}
	}
	if count != 1 {
		warn := &UnresolvedRelationWarning{Path: p, Source: source, Candidates: count}
		w.f.logger.Warn("relation ignored",
			"code", warn.ErrorCode(),
			"path", p,
			"source", source,
			"reason", warn.Reason(),
		)
		return nil, false, nil
	}

	v := cloneValue(found)
	w.generated[p] = v
	return v, true, nil
}

// composite builds an object, or a list of objects for array nodes. The
// merged Size sets the element count (default 1).
func (w *walker) composite(p ir.Path, n *ir.Node, merged ir.Constraints) (any, error) {
	if !n.Array {
		return w.element(p, n)
	}

	size := repeatCount(merged)
	w.f.logger.Debug("generating array", "path", p, "size", size)
	list := make([]any, 0, size)
	for range size {
		obj, err := w.element(p, n)
		if err != nil {
			return nil, err
		}
		list = append(list, obj)
	}
	return list, nil
}

func (w *walker) element(p ir.Path, n *ir.Node) (map[string]any, error) {
	obj, err := w.object(p, n.Children)
	if err != nil {
		return nil, err
	}
	if w.opts.AddTypeName && n.TypeName != "" {
		obj[TypeNameKey] = n.TypeName
	}
	return obj, nil
}

// leaf returns the override for p, or a generated value.
func (w *walker) leaf(p ir.Path, n *ir.Node, merged ir.Constraints) (any, error) {
	v, found, err := resolve.Override(p, w.overrides)
	if err != nil {
		return nil, err
	}
	if found {
		return v, nil
	}

	typ, fallback, hasFallback := w.leafType(n)
	if hasFallback && typ == "" {
		return fallback, nil
	}

	gen := w.f.gen
	if n.Array {
		elem := merged.Clone()
		elem.Size = nil
		vals, err := gen.GenerateMany(n.Name, typ, repeatCount(merged), elem, w.opts.Accurate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		w.f.logger.Debug("generated leaf", "path", p, "type", typ, "count", len(vals))
		return vals, nil
	}

	v, err = gen.GenerateOne(n.Name, typ, merged, w.opts.Accurate)
	if err != nil {
		if hasFallback {
			return fallback, nil
		}
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	w.f.logger.Debug("generated leaf", "path", p, "type", typ)
	return v, nil
}

// leafType resolves the generated type of a leaf. Custom scalars with a
// definition use its type and default.
func (w *walker) leafType(n *ir.Node) (ir.FieldType, any, bool) {
	if !n.CustomScalar {
		return n.Type, nil, false
	}
	def, ok := w.opts.ScalarDefinitions[n.TypeName]
	if !ok {
		return n.Type, nil, false
	}
	return def.Type, def.Default, true
}

// schemaConstraints folds the node's required flag into its intrinsic
// constraints.
func schemaConstraints(n *ir.Node) ir.Constraints {
	c := n.Constraints.Clone()
	if c.Required == nil && n.Required {
		c.Required = ir.Bool(true)
	}
	return c
}

func repeatCount(c ir.Constraints) int {
	if c.Size != nil && *c.Size >= 0 {
		return *c.Size
	}
	return 1
}

// cloneValue deep copies generated maps and lists so a relation target
// never aliases its source.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
