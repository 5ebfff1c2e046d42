package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/mockingbird/internal/ir"
)

// ExpectationError is one failed expectation.
type ExpectationError struct {
	Kind     string // the Expect field that failed, e.g. "values"
	Path     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s[%s]: ", e.Kind, e.Path)
	fmt.Fprintf(&buf, "expected %s, got %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateExpect checks a flattened fixture against expect and returns the
// failures in a stable order.
func EvaluateExpect(flat map[string]any, expect Expect) []string {
	var errs []string
	add := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	for _, path := range ir.SortedKeys(expect.Values) {
		add(assertValue(flat, path, expect.Values[path]))
	}
	for _, path := range expect.Absent {
		add(assertAbsent(flat, path))
	}
	for _, path := range expect.Present {
		add(assertPresent(flat, path))
	}
	for _, path := range ir.SortedKeys(expect.Ranges) {
		add(assertRange(flat, path, expect.Ranges[path]))
	}
	for _, path := range ir.SortedKeys(expect.OneOf) {
		add(assertOneOf(flat, path, expect.OneOf[path]))
	}
	for _, path := range ir.SortedKeys(expect.Same) {
		add(assertSame(flat, path, expect.Same[path]))
	}
	return errs
}

func assertValue(flat map[string]any, path string, want any) error {
	got, ok := lookup(flat, path)
	if !ok {
		return &ExpectationError{Kind: "values", Path: path, Expected: fmt.Sprintf("%v", want), Actual: "absent"}
	}
	if !valuesEqual(got, want) {
		return &ExpectationError{Kind: "values", Path: path, Expected: fmt.Sprintf("%v", want), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

func assertAbsent(flat map[string]any, path string) error {
	if got, ok := lookup(flat, path); ok {
		return &ExpectationError{Kind: "absent", Path: path, Expected: "absent", Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

func assertPresent(flat map[string]any, path string) error {
	if _, ok := lookup(flat, path); !ok {
		return &ExpectationError{Kind: "present", Path: path, Expected: "a value", Actual: "absent"}
	}
	return nil
}

func assertRange(flat map[string]any, path string, r Range) error {
	got, ok := lookup(flat, path)
	if !ok {
		return &ExpectationError{Kind: "ranges", Path: path, Expected: r.String(), Actual: "absent"}
	}
	f, ok := ir.AsFloat(got)
	if !ok {
		return &ExpectationError{Kind: "ranges", Path: path, Expected: r.String(), Actual: fmt.Sprintf("non-number %v", got)}
	}
	if (r.Min != nil && f < *r.Min) || (r.Max != nil && f > *r.Max) {
		return &ExpectationError{Kind: "ranges", Path: path, Expected: r.String(), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

func assertOneOf(flat map[string]any, path string, allowed []any) error {
	got, ok := lookup(flat, path)
	if !ok {
		return &ExpectationError{Kind: "one_of", Path: path, Expected: fmt.Sprintf("one of %v", allowed), Actual: "absent"}
	}
	for _, a := range allowed {
		if valuesEqual(got, a) {
			return nil
		}
	}
	return &ExpectationError{Kind: "one_of", Path: path, Expected: fmt.Sprintf("one of %v", allowed), Actual: fmt.Sprintf("%v", got)}
}

func assertSame(flat map[string]any, path, other string) error {
	got, ok := lookup(flat, path)
	if !ok {
		return &ExpectationError{Kind: "same", Path: path, Expected: "value of " + other, Actual: "absent"}
	}
	want, ok := lookup(flat, other)
	if !ok {
		return &ExpectationError{Kind: "same", Path: path, Expected: other + " present", Actual: "absent"}
	}
	if !valuesEqual(got, want) {
		return &ExpectationError{Kind: "same", Path: path, Expected: fmt.Sprintf("%v (from %s)", want, other), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}

// lookup finds a flattened path. An empty list or object flattens to
// nothing, so a path naming a composite counts as present when any key
// lies below it.
func lookup(flat map[string]any, path string) (any, bool) {
	if v, ok := flat[path]; ok {
		return v, true
	}
	prefix := path + ir.Delimiter
	for k := range flat {
		if strings.HasPrefix(k, prefix) {
			return nil, true
		}
	}
	return nil, false
}

// String renders the range for messages.
func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = fmt.Sprintf("%v", *r.Min)
	}
	if r.Max != nil {
		hi = fmt.Sprintf("%v", *r.Max)
	}
	return "[" + lo + ", " + hi + "]"
}

// valuesEqual compares a generated value with an expected YAML value.
// Numbers compare by value regardless of their Go type.
func valuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}
	if ir.IsScalar(actual) && ir.IsScalar(expected) {
		return ir.ScalarEqual(actual, expected)
	}
	return reflect.DeepEqual(actual, expected)
}
