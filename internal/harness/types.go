package harness

import "github.com/roach88/mockingbird/internal/ir"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation held.
	Pass bool `json:"pass"`

	// Fixtures holds the generated fixtures in order. Empty when generation
	// failed.
	Fixtures []map[string]any `json:"fixtures"`

	// Code is the error code generation failed with, if any.
	Code ir.ErrorCode `json:"code,omitempty"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Fixtures: []map[string]any{},
		Errors:   []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
