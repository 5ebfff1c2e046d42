package ir

// ErrorCode categorizes the errors raised while generating a fixture.
// Every error type in mockingbird exposes its code through Coded.
type ErrorCode string

const (
	// ErrCodeMalformedPath indicates a path or pattern fails the path grammar.
	ErrCodeMalformedPath ErrorCode = "MALFORMED_PATH"

	// ErrCodeAmbiguousOverride indicates more than one override key matches a path.
	ErrCodeAmbiguousOverride ErrorCode = "AMBIGUOUS_OVERRIDE"

	// ErrCodeAmbiguousRule indicates more than one rule matches a path.
	ErrCodeAmbiguousRule ErrorCode = "AMBIGUOUS_RULE"

	// ErrCodeAmbiguousRelation indicates more than one relation targets a path.
	ErrCodeAmbiguousRelation ErrorCode = "AMBIGUOUS_RELATION"

	// ErrCodeRequiredFieldExcluded indicates an exclude pattern matched a required node.
	ErrCodeRequiredFieldExcluded ErrorCode = "REQUIRED_FIELD_EXCLUDED"

	// ErrCodeConstraintConflict indicates a caller rule loosens a schema constraint.
	ErrCodeConstraintConflict ErrorCode = "CONSTRAINT_CONFLICT"

	// ErrCodeValidationFailed indicates a final value violates its constraints.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// ErrCodeUnresolvedRelation is the warning code for a relation whose
	// source value cannot be found. It never aborts a call.
	ErrCodeUnresolvedRelation ErrorCode = "UNRESOLVED_RELATION"

	// ErrCodeGeneratorFailed indicates the value generator could not produce a value.
	ErrCodeGeneratorFailed ErrorCode = "GENERATOR_FAILED"
)

// Coded is implemented by every mockingbird error type.
type Coded interface {
	error
	ErrorCode() ErrorCode
}
