package ir

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for generated fixtures.
// Golden files and fixture comparisons rely on this being byte-stable.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (RFC 8785)
//  2. No HTML escaping
//  3. Strings are NFC normalized
//  4. time.Time renders as RFC 3339 with nanoseconds, []byte as base64
//  5. Undefined members are omitted; NaN and infinities are rejected
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case string:
		return writeCanonicalString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
		return nil
	case time.Time:
		return writeCanonicalString(buf, val.UTC().Format(time.RFC3339Nano))
	case []byte:
		return writeCanonicalString(buf, base64.StdEncoding.EncodeToString(val))
	case map[string]any:
		return writeCanonicalObject(buf, val)
	case []any:
		return writeCanonicalArray(buf, val)
	case fmt.Stringer:
		if IsUndefined(val) {
			return fmt.Errorf("undefined has no JSON representation")
		}
	}

	if f, ok := AsFloat(v); ok {
		return writeCanonicalNumber(buf, v, f)
	}
	if elems, ok := Elements(v); ok {
		return writeCanonicalArray(buf, elems)
	}
	return fmt.Errorf("unsupported type for canonical JSON: %T", v)
}

func writeCanonicalNumber(buf *bytes.Buffer, v any, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite number %v is forbidden in canonical JSON", f)
	}
	switch n := v.(type) {
	case int:
		buf.WriteString(strconv.FormatInt(int64(n), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(n), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(n, 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(n, 10))
	default:
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return nil
}

// writeCanonicalString writes a JSON string with NFC normalization and no
// HTML escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

func writeCanonicalArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	buf.WriteByte('{')
	first := true
	for _, k := range SortedKeys(obj) {
		if IsUndefined(obj[k]) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeCanonicalString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}
