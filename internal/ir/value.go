package ir

import (
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// AsFloat converts any Go numeric value to float64.
// Values with a Float64() method (json.Number and friends) are accepted too.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// IsScalar reports whether v is a string, bool or number.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := AsFloat(v)
	return ok
}

// ScalarEqual compares two scalars. Numbers compare by value regardless of
// their Go type, so int64(3) equals float64(3).
func ScalarEqual(a, b any) bool {
	if fa, ok := AsFloat(a); ok {
		fb, ok := AsFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

// ContainsScalar reports whether list holds a value ScalarEqual to v.
func ContainsScalar(list []any, v any) bool {
	return slices.ContainsFunc(list, func(e any) bool { return ScalarEqual(e, v) })
}

// Elements returns the elements of a slice value. []byte is not a list.
func Elements(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte, string, nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Length returns the length used by size checks: runes for strings and
// elements for lists.
func Length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	if elems, ok := Elements(v); ok {
		return len(elems), true
	}
	return 0, false
}

// Flatten converts a generated tree into a map of dotted keys to leaf values.
// Array elements are addressed by index, e.g. "cart.items.0.price".
func Flatten(tree any) map[string]any {
	out := make(map[string]any)
	var walk func(v any, path string)
	walk = func(v any, path string) {
		join := func(seg string) string {
			if path == "" {
				return seg
			}
			return path + Delimiter + seg
		}
		switch t := v.(type) {
		case map[string]any:
			for k, child := range t {
				walk(child, join(k))
			}
			return
		case []any:
			for i, child := range t {
				walk(child, join(strconv.Itoa(i)))
			}
			return
		}
		if path != "" {
			out[path] = v
		}
	}
	walk(tree, "")
	return out
}

// SortedKeys returns the keys of m in RFC 8785 canonical order (UTF-16 code
// units).
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering.
// Go's default string comparison uses UTF-8 which produces a different order
// for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
