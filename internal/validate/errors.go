package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/mockingbird/internal/ir"
)

// Sentinel errors for each kind of violation. A *ValidationFailedError
// matches every sentinel of its violations through errors.Is.
var (
	ErrRequired        = errors.New("required value is missing")
	ErrNotInEnum       = errors.New("value is not one of the allowed values")
	ErrBelowMin        = errors.New("value is below the minimum")
	ErrAboveMax        = errors.New("value is above the maximum")
	ErrSizeMismatch    = errors.New("value length does not match the size")
	ErrPatternMismatch = errors.New("value does not match the pattern")
)

// ViolationCode names the clause a value failed.
type ViolationCode string

const (
	CodeRequired ViolationCode = "required"
	CodeEnum     ViolationCode = "enum"
	CodeMin      ViolationCode = "min"
	CodeMax      ViolationCode = "max"
	CodeSize     ViolationCode = "size"
	CodePattern  ViolationCode = "pattern"
)

var sentinels = map[ViolationCode]error{
	CodeRequired: ErrRequired,
	CodeEnum:     ErrNotInEnum,
	CodeMin:      ErrBelowMin,
	CodeMax:      ErrAboveMax,
	CodeSize:     ErrSizeMismatch,
	CodePattern:  ErrPatternMismatch,
}

// Violation is one failed clause.
type Violation struct {
	Code  ViolationCode `json:"code"`
	Value any           `json:"value,omitempty"`
	Bound any           `json:"bound,omitempty"`
}

// Error implements the error interface.
func (v Violation) Error() string {
	switch v.Code {
	case CodeRequired:
		return "required value is undefined"
	case CodeEnum:
		return fmt.Sprintf("value %v is not one of %v", v.Value, v.Bound)
	case CodeMin:
		return fmt.Sprintf("value %v is less than the minimum %v", v.Value, v.Bound)
	case CodeMax:
		return fmt.Sprintf("value %v exceeds the maximum %v", v.Value, v.Bound)
	case CodeSize:
		return fmt.Sprintf("length %v does not match the size %v", v.Value, v.Bound)
	case CodePattern:
		return fmt.Sprintf("value %q does not match %v", v.Value, v.Bound)
	}
	return string(v.Code)
}

// Unwrap returns the sentinel for the violation code.
func (v Violation) Unwrap() error {
	return sentinels[v.Code]
}

// ValidationFailedError reports every clause a final value failed.
type ValidationFailedError struct {
	Path       string
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%s: %s: %s", ir.ErrCodeValidationFailed, e.Path, strings.Join(msgs, "; "))
}

// ErrorCode implements ir.Coded.
func (e *ValidationFailedError) ErrorCode() ir.ErrorCode { return ir.ErrCodeValidationFailed }

// Unwrap exposes the violations to errors.Is and errors.As.
func (e *ValidationFailedError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// Has reports whether a violation with the given code was recorded.
func (e *ValidationFailedError) Has(code ViolationCode) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// IsValidationFailed returns true if err is or wraps a ValidationFailedError.
func IsValidationFailed(err error) bool {
	var ve *ValidationFailedError
	return errors.As(err, &ve)
}
