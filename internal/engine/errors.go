package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/mockingbird/internal/ir"
)

// RequiredFieldExcludedError reports an exclude pattern matching a required
// node.
type RequiredFieldExcludedError struct {
	// Path is the required node's path.
	Path string

	// Pattern is the exclude pattern that matched.
	Pattern string
}

// Error implements the error interface.
func (e *RequiredFieldExcludedError) Error() string {
	return fmt.Sprintf("%s: cannot exclude required field %s (matched %q)",
		ir.ErrCodeRequiredFieldExcluded, e.Path, e.Pattern)
}

// ErrorCode implements ir.Coded.
func (e *RequiredFieldExcludedError) ErrorCode() ir.ErrorCode {
	return ir.ErrCodeRequiredFieldExcluded
}

// UnresolvedRelationWarning describes a relation whose source value could
// not be found when its target was visited. It is logged, never returned.
type UnresolvedRelationWarning struct {
	// Path is the relation target being generated.
	Path string

	// Source is the relation's source pattern.
	Source string

	// Candidates is the number of generated paths the source matched.
	// Zero means the source was not generated yet; more than one means the
	// source is ambiguous.
	Candidates int
}

// Error implements the error interface.
func (w *UnresolvedRelationWarning) Error() string {
	return fmt.Sprintf("%s: %s: %s", ir.ErrCodeUnresolvedRelation, w.Path, w.Reason())
}

// ErrorCode implements ir.Coded.
func (w *UnresolvedRelationWarning) ErrorCode() ir.ErrorCode {
	return ir.ErrCodeUnresolvedRelation
}

// Reason explains why the relation was ignored.
func (w *UnresolvedRelationWarning) Reason() string {
	if w.Candidates == 0 {
		return fmt.Sprintf("source %q has not been generated", w.Source)
	}
	return fmt.Sprintf("source %q matches %d generated paths", w.Source, w.Candidates)
}

// IsRequiredFieldExcluded returns true if err is a RequiredFieldExcludedError.
// Uses errors.As to handle wrapped errors.
func IsRequiredFieldExcluded(err error) bool {
	var re *RequiredFieldExcludedError
	return errors.As(err, &re)
}

// ErrorCode extracts the code of a mockingbird error. Errors from outside
// mockingbird yield the empty code.
func ErrorCode(err error) ir.ErrorCode {
	var coded ir.Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}
