package plan

import (
	"bytes"
	"fmt"
	"strings"
)

// promptField describes one field of the document schema enumerated in the
// prompt, so the service knows the exact names and types expected back.
type promptField struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

var documentFields = []promptField{
	{Name: "mapInfo", Type: "object", Required: false, Description: "title, author, date, scale, northDirection."},
	{Name: "plotDimensions", Type: "object", Required: true, Description: "width, length, unit, setbacks {front, rear, left, right}, entranceFacing."},
	{Name: "rooms", Type: "array", Required: true, Description: "each room: id (string), type (bedroom|bathroom|kitchen|living|dining|hallway|office|garage|balcony), name, x, y, width, height in feet, floor, color (hex)."},
	{Name: "walls", Type: "array", Required: true, Description: "each wall: id, start {x,y}, end {x,y}, thickness."},
	{Name: "doors", Type: "array", Required: true, Description: "each door: id, roomId, position {x,y}, width."},
	{Name: "windows", Type: "array", Required: true, Description: "each window: id, roomId, position {x,y}, width."},
	{Name: "stairs", Type: "array", Required: false, Description: "each stair: id, x, y, width, height, fromFloor, toFloor."},
	{Name: "fixtures", Type: "array", Required: false, Description: "each fixture: id, type, roomId, x, y."},
}

// Placement rules applied only when the compliance flag is set.
var complianceRules = []string{
	"Place the kitchen in the southeast quadrant of the plot.",
	"Bedrooms must not share a wall with the kitchen.",
	"Every bathroom must be reachable from a hallway or bedroom, not from the kitchen.",
	"Keep at least one window per habitable room on an exterior wall.",
	"The main entrance must open from the declared entrance side.",
}

// BuildPrompt renders the instruction text sent to the generation service.
// It is referentially transparent: the same request produces byte-identical
// output.
func BuildPrompt(req GenerationRequest) string {
	var buf bytes.Buffer

	writeSection(&buf, "PURPOSE",
		"Design a residential floor plan for the plot described below and return it as a single JSON document.")

	writeSection(&buf, "PLOT", strings.TrimRight(fmt.Sprintf(
		"- width: %s ft\n- length: %s ft\n- floors: %d\n- entrance facing: %s\n%s",
		trimFloat(req.PlotWidth), trimFloat(req.PlotLength), req.Floors, req.EntranceFacing,
		locationLine(req.Location)), "\n"))

	writeSection(&buf, "SETBACKS", fmt.Sprintf(
		"- front: %s ft\n- rear: %s ft\n- left: %s ft\n- right: %s ft\nNo construction may be placed inside the setback margins.",
		trimFloat(req.Setbacks.Front), trimFloat(req.Setbacks.Rear),
		trimFloat(req.Setbacks.Left), trimFloat(req.Setbacks.Right)))

	writeSection(&buf, "ROOMS", roomRequirements(req))

	writeSection(&buf, "OUTPUT", formatFields(documentFields))

	if req.Compliance {
		writeSection(&buf, "RULES", formatList(complianceRules))
	}

	writeSection(&buf, "OUTPUT_FORMAT",
		"Respond with the JSON document only. No prose, no markdown fences. All coordinates and sizes are in feet, measured from the top-left corner of the plot.")

	return strings.TrimSpace(buf.String()) + "\n"
}

func writeSection(buf *bytes.Buffer, name, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprintf(buf, "[%s]\n%s\n\n", name, body)
}

func roomRequirements(req GenerationRequest) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "- bedrooms: %d\n", req.Bedrooms)
	fmt.Fprintf(&buf, "- bathrooms: %d\n", req.Bathrooms)
	fmt.Fprintf(&buf, "- kitchen: %s\n", yesNo(req.Kitchen))
	fmt.Fprintf(&buf, "- living room: %s\n", yesNo(req.LivingRoom))
	if req.RoomNotes != "" {
		fmt.Fprintf(&buf, "- additional requirements: %s\n", req.RoomNotes)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatFields(fields []promptField) string {
	var buf strings.Builder
	for _, f := range fields {
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", f.Name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", f.Name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func locationLine(loc string) string {
	if loc == "" {
		return ""
	}
	return fmt.Sprintf("- location: %s\n", loc)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
