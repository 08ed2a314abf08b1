package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON for golden snapshots.
//
// Key properties:
//  1. Object keys sorted (snapshot keys are ASCII, so byte order
//     suffices)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats serialized with fixed six-decimal precision
//  5. NaN and the infinities, which JSON numbers cannot carry, become
//     the strings "NaN", "Infinity" and "-Infinity"
//  6. No null (returns error)
//
// The pasta domain demands the float rules: paradox events carry a NaN
// confusion level by construction, and the sauce field strength is a
// float that must render identically across runs.
func MarshalCanonical(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case uint32:
		return []byte(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return []byte(strconv.FormatUint(val, 10)), nil
	case float64:
		return marshalCanonicalFloat(val)
	case []interface{}:
		return marshalCanonicalArray(val)
	case map[string]interface{}:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalFloat renders floats deterministically.
// Six decimals keep the representation stable against the ~1e-15 drift
// of repeated field-strength multiplications.
func marshalCanonicalFloat(f float64) ([]byte, error) {
	switch {
	case math.IsNaN(f):
		return marshalCanonicalString("NaN")
	case math.IsInf(f, 1):
		return marshalCanonicalString("Infinity")
	case math.IsInf(f, -1):
		return marshalCanonicalString("-Infinity")
	}
	return []byte(strconv.FormatFloat(f, 'f', 6, 64)), nil
}

// marshalCanonicalArray serializes array elements in order.
func marshalCanonicalArray(arr []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(encoded)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalCanonicalObject serializes an object with sorted keys.
func marshalCanonicalObject(obj map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", k, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalString produces a canonical JSON string with NFC
// normalization and without HTML escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	// NFC normalize at the serialization boundary.
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, > and & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028 and U+2029 for JavaScript
	// compatibility; canonical JSON keeps them literal.
	result = bytes.ReplaceAll(result, []byte(`\u2028`), []byte("\u2028"))
	result = bytes.ReplaceAll(result, []byte(`\u2029`), []byte("\u2029"))

	return result, nil
}
