package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/mockingbird/internal/ir"
)

// AmbiguousOverrideError reports more than one override key matching a path.
type AmbiguousOverrideError struct {
	Path string
	Keys []string // sorted
}

// Error implements the error interface.
func (e *AmbiguousOverrideError) Error() string {
	return fmt.Sprintf("%s: path %q matches overrides [%s]",
		ir.ErrCodeAmbiguousOverride, e.Path, strings.Join(e.Keys, ", "))
}

// ErrorCode implements ir.Coded.
func (e *AmbiguousOverrideError) ErrorCode() ir.ErrorCode { return ir.ErrCodeAmbiguousOverride }

// AmbiguousRuleError reports more than one rule pattern matching a path.
type AmbiguousRuleError struct {
	Path     string
	Patterns []string
}

// Error implements the error interface.
func (e *AmbiguousRuleError) Error() string {
	return fmt.Sprintf("%s: path %q matches rules [%s]",
		ir.ErrCodeAmbiguousRule, e.Path, strings.Join(e.Patterns, ", "))
}

// ErrorCode implements ir.Coded.
func (e *AmbiguousRuleError) ErrorCode() ir.ErrorCode { return ir.ErrCodeAmbiguousRule }

// AmbiguousRelationError reports more than one relation targeting a path.
type AmbiguousRelationError struct {
	Path    string
	Sources []string
}

// Error implements the error interface.
func (e *AmbiguousRelationError) Error() string {
	return fmt.Sprintf("%s: path %q is the target of relations from [%s]",
		ir.ErrCodeAmbiguousRelation, e.Path, strings.Join(e.Sources, ", "))
}

// ErrorCode implements ir.Coded.
func (e *AmbiguousRelationError) ErrorCode() ir.ErrorCode { return ir.ErrCodeAmbiguousRelation }

// ConflictField names the constraint a caller rule tried to loosen.
type ConflictField string

const (
	ConflictRequired ConflictField = "required"
	ConflictMin      ConflictField = "min"
	ConflictMax      ConflictField = "max"
	ConflictEnum     ConflictField = "enum"
	ConflictRange    ConflictField = "range"
	ConflictSize     ConflictField = "size"
)

// ConstraintConflictError reports a caller rule that contradicts the schema's
// intrinsic constraints for a path. For ConflictRange, Schema holds the
// merged min and Caller the merged max.
type ConstraintConflictError struct {
	Path   string
	Field  ConflictField
	Schema any
	Caller any
}

// Error implements the error interface.
func (e *ConstraintConflictError) Error() string {
	switch e.Field {
	case ConflictRequired:
		return fmt.Sprintf("%s: %s is required by the schema and cannot be made optional",
			ir.ErrCodeConstraintConflict, e.Path)
	case ConflictMin:
		return fmt.Sprintf("%s: %s min %v is below the schema minimum %v",
			ir.ErrCodeConstraintConflict, e.Path, e.Caller, e.Schema)
	case ConflictMax:
		return fmt.Sprintf("%s: %s max %v is above the schema maximum %v",
			ir.ErrCodeConstraintConflict, e.Path, e.Caller, e.Schema)
	case ConflictSize:
		return fmt.Sprintf("%s: %s size %v is negative",
			ir.ErrCodeConstraintConflict, e.Path, e.Caller)
	case ConflictEnum:
		return fmt.Sprintf("%s: %s enum value %v is not allowed by the schema enum %v",
			ir.ErrCodeConstraintConflict, e.Path, e.Caller, e.Schema)
	default:
		return fmt.Sprintf("%s: %s merged range is empty (min %v > max %v)",
			ir.ErrCodeConstraintConflict, e.Path, e.Schema, e.Caller)
	}
}

// ErrorCode implements ir.Coded.
func (e *ConstraintConflictError) ErrorCode() ir.ErrorCode { return ir.ErrCodeConstraintConflict }

// IsAmbiguous returns true if err is or wraps any ambiguity error.
func IsAmbiguous(err error) bool {
	var (
		ao *AmbiguousOverrideError
		ar *AmbiguousRuleError
		al *AmbiguousRelationError
	)
	return errors.As(err, &ao) || errors.As(err, &ar) || errors.As(err, &al)
}

// IsConstraintConflict returns true if err is or wraps a ConstraintConflictError.
func IsConstraintConflict(err error) bool {
	var ce *ConstraintConflictError
	return errors.As(err, &ce)
}
