package jsonutil

import (
	"strings"
	"testing"
)

type doc struct {
	Title string  `json:"title"`
	Width float64 `json:"width"`
}

func TestUnmarshal_Direct(t *testing.T) {
	var d doc
	if err := Unmarshal([]byte(`{"title":"plan","width":30}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Title != "plan" || d.Width != 30 {
		t.Fatalf("got %+v", d)
	}
}

func TestUnmarshal_QuotedPayload(t *testing.T) {
	// The whole document arrives as one JSON string.
	raw := []byte(`"{\"title\":\"plan\",\"width\":30}"`)
	var d doc
	if err := Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal quoted payload: %v", err)
	}
	if d.Title != "plan" || d.Width != 30 {
		t.Fatalf("got %+v", d)
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	var d doc
	if err := Unmarshal([]byte(`not json`), &d); err == nil {
		t.Fatal("expected error for unparseable payload")
	}
}

func TestNormalize_UnwrapsQuoting(t *testing.T) {
	out, err := Normalize([]byte(`"{\"a\":1}"`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if string(out) != `{"a":1}` {
		t.Fatalf("got %s", out)
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"op": "a > b & c < d"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	if strings.Contains(s, `>`) || strings.Contains(s, `&`) {
		t.Fatalf("HTML escaping not disabled: %s", s)
	}
	if strings.HasSuffix(s, "\n") {
		t.Fatal("trailing newline not trimmed")
	}
}
