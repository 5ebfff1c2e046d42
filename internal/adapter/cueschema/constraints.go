package cueschema

import (
	"fmt"
	"regexp"

	"cuelang.org/go/cue"

	"github.com/roach88/mockingbird/internal/ir"
)

// maxRefHops bounds how many definition references are followed when
// reading constraints.
const maxRefHops = 16

// collectConstraints reads bounds, enums and patterns from the expression
// tree of v into c.
func collectConstraints(v cue.Value, c *ir.Constraints) error {
	return walkExpr(v, v.IncompleteKind(), c, 0)
}

func walkExpr(v cue.Value, kind cue.Kind, c *ir.Constraints, hops int) error {
	if isConcreteScalar(v) {
		lit, err := scalar(v)
		if err != nil {
			return err
		}
		c.Enum = []any{lit}
		return nil
	}

	op, args := v.Expr()
	switch op {
	case cue.AndOp:
		for _, a := range args {
			if err := walkExpr(a, kind, c, hops); err != nil {
				return err
			}
		}
	case cue.OrOp:
		enum, ok, err := enumOf(args)
		if err != nil {
			return err
		}
		if ok {
			c.Enum = enum
		}
	case cue.GreaterThanEqualOp, cue.GreaterThanOp, cue.LessThanEqualOp, cue.LessThanOp:
		if len(args) != 1 {
			return nil
		}
		return bound(op, args[0], kind, c)
	case cue.RegexMatchOp:
		if len(args) != 1 {
			return nil
		}
		src, err := args[0].String()
		if err != nil {
			return fmt.Errorf("pattern: %w", err)
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", src, err)
		}
		c.Pattern = re
	case cue.SelectorOp:
		if hops >= maxRefHops {
			return nil
		}
		root, p := v.ReferencePath()
		if len(p.Selectors()) == 0 {
			return nil
		}
		if target := root.LookupPath(p); target.Exists() {
			return walkExpr(target, kind, c, hops+1)
		}
	}
	return nil
}

func isConcreteScalar(v cue.Value) bool {
	if !v.IsConcrete() {
		return false
	}
	switch v.Kind() {
	case cue.StringKind, cue.IntKind, cue.FloatKind, cue.NumberKind, cue.BoolKind:
		return true
	}
	return false
}

// enumOf returns the disjuncts as literals when every one is concrete.
func enumOf(args []cue.Value) ([]any, bool, error) {
	enum := make([]any, 0, len(args))
	for _, a := range args {
		if !isConcreteScalar(a) {
			return nil, false, nil
		}
		lit, err := scalar(a)
		if err != nil {
			return nil, false, err
		}
		enum = append(enum, lit)
	}
	return enum, true, nil
}

func scalar(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		n, err := v.Int64()
		return int(n), err
	default:
		return v.Float64()
	}
}

// bound applies a comparison. Strict integer bounds are tightened by one.
func bound(op cue.Op, arg cue.Value, kind cue.Kind, c *ir.Constraints) error {
	f, err := arg.Float64()
	if err != nil {
		return fmt.Errorf("bound: %w", err)
	}
	integral := kind == cue.IntKind
	switch op {
	case cue.GreaterThanOp:
		if integral {
			f++
		}
		c.Min = ir.Float(f)
	case cue.GreaterThanEqualOp:
		c.Min = ir.Float(f)
	case cue.LessThanOp:
		if integral {
			f--
		}
		c.Max = ir.Float(f)
	case cue.LessThanEqualOp:
		c.Max = ir.Float(f)
	}
	return nil
}
