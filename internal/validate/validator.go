// Package validate checks final values against constraint sets.
package validate

import (
	"github.com/roach88/mockingbird/internal/ir"
)

// Validator checks a value against the merged constraints of its path.
//
// A missing required value (ir.Undefined) fails immediately. Every other
// clause runs independently and all failures are reported together. Absent
// values and null are not checked further. Clauses only apply to the kinds
// they make sense for: enum to scalars, min and max to numbers, size to
// strings and lists, pattern to strings. Lists of scalars are checked
// element by element for enum, min, max and pattern.
type Validator struct{}

// New returns a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate returns a *ValidationFailedError when value violates c.
func (v *Validator) Validate(path ir.Path, value any, c ir.Constraints) error {
	if ir.IsUndefined(value) {
		if c.IsRequired() {
			return &ValidationFailedError{
				Path:       path,
				Violations: []Violation{{Code: CodeRequired}},
			}
		}
		return nil
	}
	if value == nil {
		return nil
	}

	var violations []Violation
	if c.Size != nil {
		if n, ok := ir.Length(value); ok && n != *c.Size {
			violations = append(violations, Violation{Code: CodeSize, Value: n, Bound: *c.Size})
		}
	}

	if elems, ok := ir.Elements(value); ok {
		for _, e := range elems {
			violations = append(violations, checkScalar(e, c)...)
		}
	} else {
		violations = append(violations, checkScalar(value, c)...)
	}

	if len(violations) > 0 {
		return &ValidationFailedError{Path: path, Violations: violations}
	}
	return nil
}

// checkScalar runs the enum, bound and pattern clauses for a single value.
func checkScalar(value any, c ir.Constraints) []Violation {
	var out []Violation

	if len(c.Enum) > 0 && ir.IsScalar(value) && !ir.ContainsScalar(c.Enum, value) {
		out = append(out, Violation{Code: CodeEnum, Value: value, Bound: c.Enum})
	}

	if f, ok := ir.AsFloat(value); ok {
		if c.Min != nil && f < *c.Min {
			out = append(out, Violation{Code: CodeMin, Value: value, Bound: *c.Min})
		}
		if c.Max != nil && f > *c.Max {
			out = append(out, Violation{Code: CodeMax, Value: value, Bound: *c.Max})
		}
	}

	if s, ok := value.(string); ok && c.Pattern != nil && !c.Pattern.MatchString(s) {
		out = append(out, Violation{Code: CodePattern, Value: s, Bound: c.Pattern.String()})
	}
	return out
}
