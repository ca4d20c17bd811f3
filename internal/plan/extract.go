package plan

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrBadEnvelope is returned when the response envelope itself is not an
// object. "No JSON found" is not an error; it is reported via the ok result.
var ErrBadEnvelope = errors.New("plan: response envelope is not an object")

// likelyPaths are the vendor nesting conventions tried first, in order. A
// segment that parses as an integer indexes into an array. The response
// schema is not contractually stable, so these are best-effort shortcuts
// before the full graph search.
var likelyPaths = [][]string{
	{"candidates", "0", "content", "parts", "0", "text"},
	{"candidates", "0", "content", "text"},
	{"candidates", "0", "text"},
	{"candidates", "0", "output"},
	{"response", "text"},
	{"output_text"},
	{"text"},
}

// ExtractFromEnvelope locates the generated JSON payload inside a raw vendor
// response envelope. It first tries the known paths; a hit counts only when
// the string actually carries JSON (directly, or recoverable from a fenced
// block or surrounding prose). Otherwise it falls back to a depth-first
// search over the whole object graph for the first string that, trimmed,
// starts with '{' or '[' and is syntactically valid JSON. The search tracks
// visited maps and slices so self-referential envelopes terminate.
func ExtractFromEnvelope(env any) (string, bool, error) {
	obj, ok := env.(map[string]any)
	if !ok || obj == nil {
		return "", false, ErrBadEnvelope
	}
	for _, path := range likelyPaths {
		if s, ok := lookupPath(obj, path); ok {
			if payload, ok := jsonPayload(s); ok {
				return payload, true, nil
			}
		}
	}
	seen := make(map[uintptr]struct{})
	if s, ok := searchJSONString(obj, seen); ok {
		return s, true, nil
	}
	return "", false, nil
}

// jsonPayload reports whether s carries a JSON document: either directly
// (trims to '{' or '[' and parses) or buried in prose or a fenced code
// block, in which case the unwrapped document is returned.
func jsonPayload(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed)) {
		return trimmed, true
	}
	if inner, ok := ExtractFromText(trimmed); ok && json.Valid([]byte(inner)) {
		return inner, true
	}
	return "", false
}

func lookupPath(root any, path []string) (string, bool) {
	cur := root
	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return "", false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", false
			}
			cur = node[idx]
		default:
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// searchJSONString walks maps (in sorted key order, for determinism) and
// slices, returning the first string value that looks like and parses as
// JSON. Composite nodes are tracked by pointer to guard against cycles.
func searchJSONString(v any, seen map[uintptr]struct{}) (string, bool) {
	switch node := v.(type) {
	case string:
		trimmed := strings.TrimSpace(node)
		if len(trimmed) == 0 {
			return "", false
		}
		if trimmed[0] != '{' && trimmed[0] != '[' {
			return "", false
		}
		if json.Valid([]byte(trimmed)) {
			return trimmed, true
		}
		return "", false
	case map[string]any:
		ptr := reflect.ValueOf(node).Pointer()
		if _, visited := seen[ptr]; visited {
			return "", false
		}
		seen[ptr] = struct{}{}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := searchJSONString(node[k], seen); ok {
				return s, true
			}
		}
	case []any:
		ptr := reflect.ValueOf(node).Pointer()
		if _, visited := seen[ptr]; visited {
			return "", false
		}
		seen[ptr] = struct{}{}
		for _, item := range node {
			if s, ok := searchJSONString(item, seen); ok {
				return s, true
			}
		}
	}
	return "", false
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")
	braceSpanRe  = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractFromText recovers a JSON payload from free text: a fenced code
// block (```json ... ```) is unwrapped first; otherwise a greedy
// brace-to-brace span is taken. Used for responses that arrive as plain
// text rather than a structured envelope.
func ExtractFromText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if candidate != "" {
			return candidate, true
		}
	}
	if m := braceSpanRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
