package plan

// Provenance records which branch of the generation pipeline produced a
// document. Callers use it to decide whether to surface a fallback warning.
type Provenance string

const (
	ProvenanceService  Provenance = "generated-by-service"
	ProvenanceFallback Provenance = "generated-by-fallback"
)

// Point is a planar coordinate in feet.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapInfo is descriptive document metadata. None of its fields are validated.
type MapInfo struct {
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	Date           string `json:"date,omitempty"`
	Scale          string `json:"scale,omitempty"`
	NorthDirection string `json:"northDirection,omitempty"`
}

// Setbacks are the mandated clearances between the plot boundary and any
// construction, per edge, in feet.
type Setbacks struct {
	Front float64 `json:"front"`
	Rear  float64 `json:"rear"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// PlotSummary echoes the plot inputs a document was generated from.
type PlotSummary struct {
	Width          float64  `json:"width"`
	Length         float64  `json:"length"`
	Unit           string   `json:"unit,omitempty"`
	Setbacks       Setbacks `json:"setbacks"`
	EntranceFacing string   `json:"entranceFacing,omitempty"`
	Floors         int      `json:"floors,omitempty"`
	Location       string   `json:"location,omitempty"`
}

// Room is a placed room. Position and extent are in feet from the plot's
// top-left corner. Polygon, when present, supersedes the rectangle.
type Room struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Name    string  `json:"name,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Floor   int     `json:"floor,omitempty"`
	Color   string  `json:"color,omitempty"`
	Polygon []Point `json:"polygon,omitempty"`
}

// Wall is a straight segment between two points.
type Wall struct {
	ID        string  `json:"id,omitempty"`
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Thickness float64 `json:"thickness,omitempty"`
}

// Door is an opening placed on a wall. RoomID is not checked against the
// rooms list; dangling references are accepted as-is.
type Door struct {
	ID       string  `json:"id,omitempty"`
	RoomID   string  `json:"roomId,omitempty"`
	Position Point   `json:"position"`
	Width    float64 `json:"width,omitempty"`
}

// Window mirrors Door.
type Window struct {
	ID       string  `json:"id,omitempty"`
	RoomID   string  `json:"roomId,omitempty"`
	Position Point   `json:"position"`
	Width    float64 `json:"width,omitempty"`
}

// Stair is an optional vertical connector between floors.
type Stair struct {
	ID        string  `json:"id,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	FromFloor int     `json:"fromFloor,omitempty"`
	ToFloor   int     `json:"toFloor,omitempty"`
}

// Fixture is an optional fixed furnishing (sink, counter, wardrobe, ...).
type Fixture struct {
	ID     string  `json:"id,omitempty"`
	Type   string  `json:"type,omitempty"`
	RoomID string  `json:"roomId,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// FloorPlanDocument is the canonical output of the generation pipeline,
// whether it came from the external service or the local fallback. Documents
// are never mutated in place; every edit produces a new stored version.
type FloorPlanDocument struct {
	MapInfo        MapInfo     `json:"mapInfo,omitempty"`
	PlotDimensions PlotSummary `json:"plotDimensions"`
	Rooms          []Room      `json:"rooms"`
	Walls          []Wall      `json:"walls"`
	Doors          []Door      `json:"doors"`
	Windows        []Window    `json:"windows"`
	Stairs         []Stair     `json:"stairs,omitempty"`
	Fixtures       []Fixture   `json:"fixtures,omitempty"`
}

// ensureArrays normalizes nil containers to empty slices so an encoded
// document always carries "walls": [] and friends rather than null.
func (d *FloorPlanDocument) ensureArrays() {
	if d.Rooms == nil {
		d.Rooms = []Room{}
	}
	if d.Walls == nil {
		d.Walls = []Wall{}
	}
	if d.Doors == nil {
		d.Doors = []Door{}
	}
	if d.Windows == nil {
		d.Windows = []Window{}
	}
}

// Result is what the pipeline hands back to callers. Warning is non-empty
// only on the fallback path; the document is always usable.
type Result struct {
	Document   FloorPlanDocument `json:"document"`
	Provenance Provenance        `json:"provenance"`
	Warning    string            `json:"warning,omitempty"`
}
