// Package jsonutil decodes JSON that has been through one or more layers of
// string escaping, which generation services routinely produce (payloads
// arriving as quoted strings, or with double-escaped unicode such as
// "\\u003e" inside values).
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Unmarshal decodes raw into v, tolerating escape damage: a direct decode is
// tried first, then the payload is normalized (unwrapped and unescaped) and
// decoded again.
func Unmarshal(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm, err := Normalize(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(norm, v)
}

// Normalize parses raw, unwrapping up to two levels of string quoting, and
// re-encodes it with unicode escapes resolved and without HTML escaping.
func Normalize(raw []byte) ([]byte, error) {
	val, err := decodeUnwrapping(raw)
	if err != nil {
		return nil, err
	}
	return MarshalNoEscape(deepUnescape(val))
}

func decodeUnwrapping(raw []byte) (any, error) {
	var val any
	if err := json.Unmarshal(raw, &val); err == nil {
		if s, ok := val.(string); ok {
			// The whole payload is a quoted JSON string.
			var inner any
			if err := json.Unmarshal([]byte(s), &inner); err == nil {
				return inner, nil
			}
		}
		return val, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("jsonutil: payload is not parseable JSON")
	}
	var inner any
	if err := json.Unmarshal([]byte(s), &inner); err != nil {
		return nil, errors.New("jsonutil: quoted payload is not parseable JSON")
	}
	return inner, nil
}

// MarshalNoEscape encodes v without turning <, > and & into \u escapes.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unescapeString resolves residual unicode escapes (">" and the
// double-escaped "\\u003e") inside a plain string.
func unescapeString(s string) (string, error) {
	esc := strings.ReplaceAll(s, `\`, `\\`)
	esc = strings.ReplaceAll(esc, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

func deepUnescape(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeString(x); err == nil {
			return s
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepUnescape(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepUnescape(vv)
		}
		return out
	default:
		return v
	}
}
