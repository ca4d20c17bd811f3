package plan

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCheckDocument_MinimalDocumentPasses(t *testing.T) {
	raw := []byte(`{"plotDimensions":{"width":30,"length":40},"rooms":[]}`)
	if err := CheckDocument(raw); err != nil {
		t.Fatalf("minimal document rejected: %v", err)
	}
}

func TestCheckDocument_PlotSummaryAliasAccepted(t *testing.T) {
	raw := []byte(`{"plotSummary":{"width":30},"rooms":[]}`)
	if err := CheckDocument(raw); err != nil {
		t.Fatalf("plotSummary alias rejected: %v", err)
	}
}

func TestCheckDocument_MalformedJSON(t *testing.T) {
	err := CheckDocument([]byte(`{"rooms": [`))
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("error = %v, want ErrMalformedJSON", err)
	}
}

func TestCheckDocument_NonObjectRoot(t *testing.T) {
	err := CheckDocument([]byte(`[1,2,3]`))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "(root)" {
		t.Fatalf("error = %v, want root validation error", err)
	}
}

func TestCheckDocument_StructuralFailures(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantField string
	}{
		{"missing plot", `{"rooms":[]}`, "plotDimensions"},
		{"missing rooms", `{"plotDimensions":{}}`, "rooms"},
		{"rooms not array", `{"plotDimensions":{},"rooms":{}}`, "rooms"},
		{"room not object", `{"plotDimensions":{},"rooms":[7]}`, "rooms[0]"},
		{"room missing id", `{"plotDimensions":{},"rooms":[{"type":"bedroom","x":0,"y":0}]}`, "rooms[0].id"},
		{"room blank type", `{"plotDimensions":{},"rooms":[{"id":"r1","type":" ","x":0,"y":0}]}`, "rooms[0].type"},
		{"room missing y", `{"plotDimensions":{},"rooms":[{"id":"r1","type":"bedroom","x":0}]}`, "rooms[0].y"},
		{"room string x", `{"plotDimensions":{},"rooms":[{"id":"r1","type":"bedroom","x":"0","y":0}]}`, "rooms[0].x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckDocument([]byte(tc.raw))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestCheckDocument_PermissiveOnGeometry(t *testing.T) {
	// Overlapping rooms, rooms outside the plot and dangling door
	// references are all accepted; geometry repair is out of scope.
	raw := []byte(`{
		"plotDimensions": {"width": 10, "length": 10},
		"rooms": [
			{"id": "r1", "type": "bedroom", "x": 0, "y": 0, "width": 500, "height": 500},
			{"id": "r2", "type": "bedroom", "x": 0, "y": 0, "width": 500, "height": 500}
		],
		"doors": [{"id": "d1", "roomId": "no-such-room"}]
	}`)
	if err := CheckDocument(raw); err != nil {
		t.Fatalf("geometry should not be checked: %v", err)
	}
}

func TestCheckStrict_FallbackOutputAlwaysPasses(t *testing.T) {
	for _, bedrooms := range []int{0, 1, 5} {
		doc := GenerateFallback(Normalize(Params{Bedrooms: bedrooms}))
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := CheckStrict(raw); err != nil {
			t.Fatalf("bedrooms=%d: fallback output rejected by schema: %v", bedrooms, err)
		}
	}
}

func TestCheckStrict_RejectsBadContainerTypes(t *testing.T) {
	err := CheckStrict([]byte(`{"plotDimensions":{},"rooms":[],"walls":"none"}`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if !strings.Contains(ve.Field, "walls") {
		t.Fatalf("field = %q, want walls", ve.Field)
	}
}

func TestCheckStrict_MalformedJSON(t *testing.T) {
	if err := CheckStrict([]byte(`{`)); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("error = %v, want ErrMalformedJSON", err)
	}
}
