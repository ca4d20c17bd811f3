package plan

import "fmt"

// Room type palette used by the fallback layout so clients can render
// without their own color table.
var roomPalette = map[string]string{
	"living":   "#FFE4B5",
	"kitchen":  "#FFDAB9",
	"bedroom":  "#E6E6FA",
	"bathroom": "#B0E0E6",
}

// Vertical bands of the fallback layout, as fractions of plot length.
const (
	livingBand  = 0.40
	bedroomBand = 0.40
	bathBand    = 0.20
)

// GenerateFallback synthesizes a schema-conformant document from the request
// alone, with a fixed band layout: the top 40% of the plot length holds the
// living room (60% of the width) and the kitchen (remaining width), bedrooms
// tile the next 40% band evenly, bathrooms tile the final 20% band. It is
// pure and total, and deliberately simplistic: no walls, doors or windows
// are synthesized, and room geometry is not checked against setbacks.
func GenerateFallback(req GenerationRequest) FloorPlanDocument {
	w, l := req.PlotWidth, req.PlotLength

	rooms := make([]Room, 0, req.Bedrooms+req.Bathrooms+2)

	topH := l * livingBand
	if req.LivingRoom {
		rooms = append(rooms, Room{
			ID:     "living-1",
			Type:   "living",
			Name:   "Living Room",
			X:      0,
			Y:      0,
			Width:  w * 0.6,
			Height: topH,
			Floor:  1,
			Color:  roomPalette["living"],
		})
	}
	if req.Kitchen {
		rooms = append(rooms, Room{
			ID:     "kitchen-1",
			Type:   "kitchen",
			Name:   "Kitchen",
			X:      w * 0.6,
			Y:      0,
			Width:  w * 0.4,
			Height: topH,
			Floor:  1,
			Color:  roomPalette["kitchen"],
		})
	}

	midY := topH
	midH := l * bedroomBand
	if req.Bedrooms > 0 {
		bw := w / float64(req.Bedrooms)
		for i := 0; i < req.Bedrooms; i++ {
			rooms = append(rooms, Room{
				ID:     fmt.Sprintf("bedroom-%d", i+1),
				Type:   "bedroom",
				Name:   fmt.Sprintf("Bedroom %d", i+1),
				X:      bw * float64(i),
				Y:      midY,
				Width:  bw,
				Height: midH,
				Floor:  1,
				Color:  roomPalette["bedroom"],
			})
		}
	}

	lowY := midY + midH
	lowH := l * bathBand
	if req.Bathrooms > 0 {
		bw := w / float64(req.Bathrooms)
		for i := 0; i < req.Bathrooms; i++ {
			rooms = append(rooms, Room{
				ID:     fmt.Sprintf("bathroom-%d", i+1),
				Type:   "bathroom",
				Name:   fmt.Sprintf("Bathroom %d", i+1),
				X:      bw * float64(i),
				Y:      lowY,
				Width:  bw,
				Height: lowH,
				Floor:  1,
				Color:  roomPalette["bathroom"],
			})
		}
	}

	return FloorPlanDocument{
		MapInfo: MapInfo{
			Title:          "Floor Plan",
			Scale:          "1:100",
			NorthDirection: FacingNorth,
		},
		PlotDimensions: PlotSummary{
			Width:          w,
			Length:         l,
			Unit:           "feet",
			Setbacks:       req.Setbacks,
			EntranceFacing: req.EntranceFacing,
			Floors:         req.Floors,
			Location:       req.Location,
		},
		Rooms:   rooms,
		Walls:   []Wall{},
		Doors:   []Door{},
		Windows: []Window{},
	}
}
