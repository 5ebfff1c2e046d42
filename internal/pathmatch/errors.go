package pathmatch

import (
	"errors"
	"fmt"

	"github.com/roach88/mockingbird/internal/ir"
)

// MalformedPathError reports a user-supplied path or pattern that fails the
// path grammar.
type MalformedPathError struct {
	// Path is the offending input.
	Path string

	// Source names where the path came from ("override", "exclude", "rule",
	// "relation").
	Source string
}

// Error implements the error interface.
func (e *MalformedPathError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: invalid %s path %q", ir.ErrCodeMalformedPath, e.Source, e.Path)
	}
	return fmt.Sprintf("%s: invalid path %q", ir.ErrCodeMalformedPath, e.Path)
}

// ErrorCode implements ir.Coded.
func (e *MalformedPathError) ErrorCode() ir.ErrorCode {
	return ir.ErrCodeMalformedPath
}

// IsMalformedPath returns true if err is or wraps a MalformedPathError.
func IsMalformedPath(err error) bool {
	var mp *MalformedPathError
	return errors.As(err, &mp)
}
