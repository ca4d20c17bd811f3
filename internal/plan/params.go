package plan

import (
	"fmt"
	"strings"
)

// Orientation values accepted for the entrance side.
const (
	FacingNorth = "north"
	FacingSouth = "south"
	FacingEast  = "east"
	FacingWest  = "west"
)

// Params is the caller-supplied, possibly partial parameter set for a
// generation. Numeric and string zero values are treated as absent and fall
// back to defaults, matching the historical behavior of the defaulting layer
// (an explicit floors: 0 silently becomes the default). The room toggles are
// pointers so that an explicit false survives normalization.
type Params struct {
	PlotWidth      float64  `json:"plotWidth"`
	PlotLength     float64  `json:"plotLength"`
	EntranceFacing string   `json:"entranceFacing"`
	Setbacks       Setbacks `json:"setbacks"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	Kitchen        *bool    `json:"kitchen"`
	LivingRoom     *bool    `json:"livingRoom"`
	RoomNotes      string   `json:"roomNotes"`
	Floors         int      `json:"floors"`
	Location       string   `json:"location"`
	Compliance     bool     `json:"compliance"`
}

// GenerationRequest is the fully populated, immutable input to the pipeline.
type GenerationRequest struct {
	PlotWidth      float64
	PlotLength     float64
	EntranceFacing string
	Setbacks       Setbacks
	Bedrooms       int
	Bathrooms      int
	Kitchen        bool
	LivingRoom     bool
	RoomNotes      string
	Floors         int
	Location       string
	Compliance     bool
}

// Defaults substituted for absent parameters.
var defaultRequest = GenerationRequest{
	PlotWidth:      30,
	PlotLength:     40,
	EntranceFacing: FacingNorth,
	Setbacks:       Setbacks{Front: 5, Rear: 5, Left: 3, Right: 3},
	Bedrooms:       2,
	Bathrooms:      2,
	Kitchen:        true,
	LivingRoom:     true,
	Floors:         1,
}

// Normalize fills every field of the request: caller values win, anything
// absent gets the default. It is pure and cannot fail; precondition checks
// live in Validate. Note that a zero setback is indistinguishable from an
// absent one and is kept as supplied only when any setback is non-zero.
func Normalize(p Params) GenerationRequest {
	req := defaultRequest

	if p.PlotWidth != 0 {
		req.PlotWidth = p.PlotWidth
	}
	if p.PlotLength != 0 {
		req.PlotLength = p.PlotLength
	}
	if facing := strings.ToLower(strings.TrimSpace(p.EntranceFacing)); facing != "" {
		req.EntranceFacing = facing
	}
	if p.Setbacks != (Setbacks{}) {
		req.Setbacks = p.Setbacks
	}
	if p.Bedrooms != 0 {
		req.Bedrooms = p.Bedrooms
	}
	if p.Bathrooms != 0 {
		req.Bathrooms = p.Bathrooms
	}
	if p.Kitchen != nil {
		req.Kitchen = *p.Kitchen
	}
	if p.LivingRoom != nil {
		req.LivingRoom = *p.LivingRoom
	}
	if notes := strings.TrimSpace(p.RoomNotes); notes != "" {
		req.RoomNotes = notes
	}
	if p.Floors != 0 {
		req.Floors = p.Floors
	}
	if loc := strings.TrimSpace(p.Location); loc != "" {
		req.Location = loc
	}
	req.Compliance = p.Compliance

	return req
}

// Validate reports precondition violations on the normalized request. These
// are the only errors the pipeline surfaces to its caller. Setbacks are not
// checked against the plot dimensions; oversized setbacks pass through.
func (r GenerationRequest) Validate() error {
	if r.PlotWidth <= 0 {
		return fmt.Errorf("plan: plot width must be positive, got %v", r.PlotWidth)
	}
	if r.PlotLength <= 0 {
		return fmt.Errorf("plan: plot length must be positive, got %v", r.PlotLength)
	}
	switch r.EntranceFacing {
	case FacingNorth, FacingSouth, FacingEast, FacingWest:
	default:
		return fmt.Errorf("plan: entrance facing must be north, south, east or west, got %q", r.EntranceFacing)
	}
	for _, sb := range []struct {
		name string
		v    float64
	}{
		{"front", r.Setbacks.Front},
		{"rear", r.Setbacks.Rear},
		{"left", r.Setbacks.Left},
		{"right", r.Setbacks.Right},
	} {
		if sb.v < 0 {
			return fmt.Errorf("plan: %s setback must be non-negative, got %v", sb.name, sb.v)
		}
	}
	if r.Bedrooms < 0 {
		return fmt.Errorf("plan: bedrooms must be non-negative, got %d", r.Bedrooms)
	}
	if r.Bathrooms < 0 {
		return fmt.Errorf("plan: bathrooms must be non-negative, got %d", r.Bathrooms)
	}
	if r.Floors < 1 {
		return fmt.Errorf("plan: floors must be at least 1, got %d", r.Floors)
	}
	return nil
}

// params converts the request back into a complete Params value, used by the
// idempotence guarantee: Normalize(r.params()) == r for valid requests.
func (r GenerationRequest) params() Params {
	kitchen, living := r.Kitchen, r.LivingRoom
	return Params{
		PlotWidth:      r.PlotWidth,
		PlotLength:     r.PlotLength,
		EntranceFacing: r.EntranceFacing,
		Setbacks:       r.Setbacks,
		Bedrooms:       r.Bedrooms,
		Bathrooms:      r.Bathrooms,
		Kitchen:        &kitchen,
		LivingRoom:     &living,
		RoomNotes:      r.RoomNotes,
		Floors:         r.Floors,
		Location:       r.Location,
		Compliance:     r.Compliance,
	}
}
