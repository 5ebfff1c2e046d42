package jsonschema

import "fmt"

// SchemaError reports an unsupported or malformed schema location.
// Pointer is a JSON pointer into the source document.
type SchemaError struct {
	Pointer string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Pointer == "" {
		return "jsonschema: " + e.Message
	}
	return fmt.Sprintf("jsonschema: %s: %s", e.Pointer, e.Message)
}
