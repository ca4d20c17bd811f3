package plan

import (
	"strings"
	"testing"
)

func TestBuildPrompt_RendersSections(t *testing.T) {
	req := Normalize(Params{Location: "Bengaluru", RoomNotes: "pooja room near entrance"})
	out := BuildPrompt(req)

	for _, sec := range []string{"[PURPOSE]", "[PLOT]", "[SETBACKS]", "[ROOMS]", "[OUTPUT]", "[OUTPUT_FORMAT]"} {
		if !strings.Contains(out, sec) {
			t.Fatalf("expected section %s in prompt:\n%s", sec, out)
		}
	}
	if !strings.Contains(out, "- location: Bengaluru") {
		t.Fatal("location line missing")
	}
	if !strings.Contains(out, "- additional requirements: pooja room near entrance") {
		t.Fatal("room notes missing")
	}
	if !strings.Contains(out, "- rooms (array, required)") {
		t.Fatal("schema field enumeration missing")
	}
}

func TestBuildPrompt_RulesOnlyWhenComplianceSet(t *testing.T) {
	plain := BuildPrompt(Normalize(Params{}))
	if strings.Contains(plain, "[RULES]") {
		t.Fatal("[RULES] present without compliance flag")
	}

	ruled := BuildPrompt(Normalize(Params{Compliance: true}))
	if !strings.Contains(ruled, "[RULES]") {
		t.Fatal("[RULES] missing with compliance flag")
	}
	if !strings.Contains(ruled, "southeast quadrant") {
		t.Fatal("compliance rule text missing")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Normalize(Params{PlotWidth: 33.5, PlotLength: 47.25, Bedrooms: 3, Compliance: true})
	a := BuildPrompt(req)
	b := BuildPrompt(req)
	if a != b {
		t.Fatal("same request produced different prompts")
	}
}

func TestBuildPrompt_TrimsFloatNoise(t *testing.T) {
	out := BuildPrompt(Normalize(Params{PlotWidth: 30, PlotLength: 42.5}))
	if !strings.Contains(out, "- width: 30 ft") {
		t.Fatalf("integral width not trimmed:\n%s", out)
	}
	if !strings.Contains(out, "- length: 42.5 ft") {
		t.Fatalf("fractional length mangled:\n%s", out)
	}
}
