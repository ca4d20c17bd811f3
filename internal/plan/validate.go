package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedJSON marks a payload that was located but is not valid JSON
// syntax. It is kept distinct from "nothing found" because it signals a
// truncated or corrupted upstream response and is monitored separately.
var ErrMalformedJSON = errors.New("plan: payload is not valid JSON")

// ValidationError reports a structural non-conformance in an otherwise
// well-formed payload. No repair is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan: invalid document: %s: %s", e.Field, e.Reason)
}

// CheckDocument parses the extracted payload and enforces the minimal
// structural contract: the root is an object, a plot summary is present,
// rooms is an array (possibly empty), and every room carries an identifier,
// a type, and numeric x/y. Geometry is deliberately not checked: rooms may
// overlap, exceed the plot, and doors/windows may reference unknown rooms;
// the client-side editor owns those corrections.
func CheckDocument(raw []byte) error {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		// Distinguish broken syntax from a non-object root.
		if !json.Valid(raw) {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return &ValidationError{Field: "(root)", Reason: "must be an object"}
	}

	if _, ok := root["plotDimensions"].(map[string]any); !ok {
		if _, alt := root["plotSummary"].(map[string]any); !alt {
			return &ValidationError{Field: "plotDimensions", Reason: "required object missing"}
		}
	}

	roomsVal, present := root["rooms"]
	if !present {
		return &ValidationError{Field: "rooms", Reason: "required array missing"}
	}
	rooms, ok := roomsVal.([]any)
	if !ok {
		return &ValidationError{Field: "rooms", Reason: "must be an array"}
	}
	for i, rv := range rooms {
		room, ok := rv.(map[string]any)
		if !ok {
			return &ValidationError{Field: fmt.Sprintf("rooms[%d]", i), Reason: "must be an object"}
		}
		if err := checkRoom(i, room); err != nil {
			return err
		}
	}
	return nil
}

func checkRoom(i int, room map[string]any) error {
	id, _ := room["id"].(string)
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: fmt.Sprintf("rooms[%d].id", i), Reason: "required string missing"}
	}
	typ, _ := room["type"].(string)
	if strings.TrimSpace(typ) == "" {
		return &ValidationError{Field: fmt.Sprintf("rooms[%d].type", i), Reason: "required string missing"}
	}
	for _, coord := range []string{"x", "y"} {
		v, present := room[coord]
		if !present {
			return &ValidationError{Field: fmt.Sprintf("rooms[%d].%s", i, coord), Reason: "required number missing"}
		}
		if _, ok := v.(float64); !ok {
			return &ValidationError{Field: fmt.Sprintf("rooms[%d].%s", i, coord), Reason: "must be a number"}
		}
	}
	return nil
}

// documentSchema is the strict JSON-Schema contract applied before a
// document is persisted or archived. It covers container types for every
// recognized key but keeps the same permissive stance on geometry.
const documentSchema = `{
  "type": "object",
  "required": ["plotDimensions", "rooms"],
  "properties": {
    "mapInfo": {"type": "object"},
    "plotDimensions": {
      "type": "object",
      "properties": {
        "width": {"type": "number"},
        "length": {"type": "number"},
        "setbacks": {"type": "object"}
      }
    },
    "rooms": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "x", "y"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "color": {"type": "string"}
        }
      }
    },
    "walls": {"type": "array"},
    "doors": {"type": "array"},
    "windows": {"type": "array"},
    "stairs": {"type": "array"},
    "fixtures": {"type": "array"}
  }
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)

// CheckStrict validates the full container shape of a document against the
// JSON-Schema contract. Fallback output always passes; service output that
// passed CheckDocument passes unless it abuses an optional key's type.
func CheckStrict(raw []byte) error {
	if !json.Valid(raw) {
		return ErrMalformedJSON
	}
	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("plan: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	return &ValidationError{Field: first.Field(), Reason: first.Description()}
}
