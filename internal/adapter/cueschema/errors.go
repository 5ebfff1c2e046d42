package cueschema

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError reports a CUE source that cannot be turned into a schema
// tree. Field names the root, field or attribute at fault.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos

	// Extra counts further CUE errors dropped in favor of the first one.
	Extra int
}

func (e *CompileError) Error() string {
	msg := e.Field + ": " + e.Message
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), msg)
	}
	if e.Extra > 0 {
		msg += fmt.Sprintf(" (and %d more)", e.Extra)
	}
	return msg
}

// fromCUE turns a CUE evaluation or build error into a *CompileError that
// points at the first reported position. Errors without a position are
// returned unchanged.
func fromCUE(err error) error {
	if err == nil {
		return nil
	}
	all := cueerrors.Errors(err)
	if len(all) == 0 {
		return err
	}
	pos := cueerrors.Positions(all[0])
	if len(pos) == 0 {
		return err
	}
	return &CompileError{
		Field:   "cue",
		Message: all[0].Error(),
		Pos:     pos[0],
		Extra:   len(all) - 1,
	}
}
