package resolve

import (
	"slices"

	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
)

// FindRule returns the single rule whose pattern matches path, or nil.
func FindRule(path ir.Path, rules []ir.Rule) (*ir.Rule, error) {
	var (
		found    *ir.Rule
		patterns []string
	)
	for i := range rules {
		if pathmatch.Matches(path, rules[i].Path) {
			if found == nil {
				found = &rules[i]
			}
			patterns = append(patterns, rules[i].Path)
		}
	}
	if len(patterns) > 1 {
		return nil, &AmbiguousRuleError{Path: path, Patterns: patterns}
	}
	return found, nil
}

// Merge combines the schema's intrinsic constraints for path with a caller
// rule. The caller wins field by field, but may only tighten:
//
//   - required true cannot become false
//   - min cannot drop below the schema min
//   - max cannot rise above the schema max
//   - every caller enum value must appear in the schema enum
//   - the merged min must not exceed the merged max
//   - size must not be negative
//
// Size and pattern are replaced outright when the caller sets them.
func Merge(path ir.Path, schema, caller ir.Constraints) (ir.Constraints, error) {
	merged := schema.Clone()

	if caller.Required != nil {
		if schema.IsRequired() && !*caller.Required {
			return ir.Constraints{}, &ConstraintConflictError{
				Path: path, Field: ConflictRequired, Schema: true, Caller: false,
			}
		}
		merged.Required = ir.Bool(*caller.Required)
	}

	if caller.Min != nil && caller.Max != nil && *caller.Min > *caller.Max {
		return ir.Constraints{}, &ConstraintConflictError{
			Path: path, Field: ConflictRange, Schema: *caller.Min, Caller: *caller.Max,
		}
	}

	if caller.Min != nil {
		if schema.Min != nil && *caller.Min < *schema.Min {
			return ir.Constraints{}, &ConstraintConflictError{
				Path: path, Field: ConflictMin, Schema: *schema.Min, Caller: *caller.Min,
			}
		}
		merged.Min = ir.Float(*caller.Min)
	}

	if caller.Max != nil {
		if schema.Max != nil && *caller.Max > *schema.Max {
			return ir.Constraints{}, &ConstraintConflictError{
				Path: path, Field: ConflictMax, Schema: *schema.Max, Caller: *caller.Max,
			}
		}
		merged.Max = ir.Float(*caller.Max)
	}

	if merged.Min != nil && merged.Max != nil && *merged.Min > *merged.Max {
		return ir.Constraints{}, &ConstraintConflictError{
			Path: path, Field: ConflictRange, Schema: *merged.Min, Caller: *merged.Max,
		}
	}

	if len(caller.Enum) > 0 {
		if len(schema.Enum) > 0 {
			for _, v := range caller.Enum {
				if !ir.ContainsScalar(schema.Enum, v) {
					return ir.Constraints{}, &ConstraintConflictError{
						Path: path, Field: ConflictEnum, Schema: schema.Enum, Caller: v,
					}
				}
			}
		}
		merged.Enum = slices.Clone(caller.Enum)
	}

	if caller.Size != nil {
		if *caller.Size < 0 {
			return ir.Constraints{}, &ConstraintConflictError{
				Path: path, Field: ConflictSize, Schema: schema.Size, Caller: *caller.Size,
			}
		}
		merged.Size = ir.Int(*caller.Size)
	}
	if caller.Pattern != nil {
		merged.Pattern = caller.Pattern
	}
	return merged, nil
}
