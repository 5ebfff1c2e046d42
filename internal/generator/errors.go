package generator

import (
	"errors"
	"fmt"

	"github.com/roach88/mockingbird/internal/ir"
)

// GeneratorFailedError reports a value the generator could not produce.
type GeneratorFailedError struct {
	Name   string
	Type   ir.FieldType
	Reason string
}

// Error implements the error interface.
func (e *GeneratorFailedError) Error() string {
	return fmt.Sprintf("%s: cannot generate %s value for %q: %s",
		ir.ErrCodeGeneratorFailed, e.Type, e.Name, e.Reason)
}

// ErrorCode implements ir.Coded.
func (e *GeneratorFailedError) ErrorCode() ir.ErrorCode { return ir.ErrCodeGeneratorFailed }

// IsGeneratorFailed returns true if err is or wraps a GeneratorFailedError.
func IsGeneratorFailed(err error) bool {
	var ge *GeneratorFailedError
	return errors.As(err, &ge)
}
