package engine

import (
	"slices"

	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
	"github.com/roach88/mockingbird/internal/resolve"
)

// Report is the result of Check.
type Report struct {
	// Paths is the number of schema paths visited.
	Paths int

	// Errors holds every resolution failure, in schema order.
	Errors []error

	// Unused lists patterns that matched no schema path.
	Unused []ir.Pattern
}

// OK reports whether the check found no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Check resolves overrides and options against every schema path without
// generating values. Unlike Generate it does not stop at the first failure.
//
// Per path it applies the same order as generation: exclusion, relation,
// rule merge, then override validation for leaves. Malformed patterns are
// returned as the error since no path can be checked against them.
func (f *Fixture) Check(overrides ir.Overrides, opts ...Option) (*Report, error) {
	o := f.registry.Snapshot(opts...)
	if err := checkInputs(overrides, o); err != nil {
		return nil, err
	}

	report := &Report{}
	patterns := checkedPatterns(overrides, o)
	used := make(map[ir.Pattern]bool, len(patterns))

	root := f.schema.Root()
	if root == nil {
		report.Unused = patterns
		return report, nil
	}

	root.Walk(func(p ir.Path, n *ir.Node) bool {
		report.Paths++
		for _, pat := range patterns {
			if pathmatch.Matches(p, pat) {
				used[pat] = true
			}
		}
		return f.checkNode(report, p, n, overrides, o)
	})

	for _, pat := range patterns {
		if !used[pat] {
			report.Unused = append(report.Unused, pat)
		}
	}
	return report, nil
}

// checkNode records the errors for one path and reports whether its
// children are generated.
func (f *Fixture) checkNode(report *Report, p ir.Path, n *ir.Node, overrides ir.Overrides, o Options) bool {
	add := func(err error) {
		report.Errors = append(report.Errors, err)
	}
	schema := schemaConstraints(n)

	if o.RequiredOnly && !schema.IsRequired() {
		return false
	}
	if n.CustomScalar && o.IgnoreCustomScalars {
		return false
	}
	if matched := pathmatch.FindAll(p, o.Exclude); len(matched) > 0 {
		if schema.IsRequired() {
			add(&RequiredFieldExcludedError{Path: p, Pattern: matched[0]})
		}
		return false
	}

	_, related, err := resolve.FindRelation(p, o.Relations)
	if err != nil {
		add(err)
	}
	if related {
		return false
	}

	merged := schema
	rule, err := resolve.FindRule(p, o.Rules)
	if err != nil {
		add(err)
	} else if rule != nil {
		if m, err := resolve.Merge(p, schema, rule.Constraints); err != nil {
			add(err)
		} else {
			merged = m
		}
	}

	if !n.IsLeaf() {
		return true
	}
	v, found, err := resolve.Override(p, overrides)
	switch {
	case err != nil:
		add(err)
	case found:
		if err := f.validator.Validate(p, v, merged); err != nil {
			add(err)
		}
	}
	return false
}

// checkedPatterns returns every caller pattern once, sorted.
func checkedPatterns(overrides ir.Overrides, o Options) []ir.Pattern {
	var out []ir.Pattern
	out = append(out, overrides.Keys()...)
	out = append(out, o.Exclude...)
	for _, r := range o.Rules {
		out = append(out, r.Path)
	}
	for _, src := range o.Relations.Keys() {
		out = append(out, src)
		out = append(out, o.Relations[src]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
