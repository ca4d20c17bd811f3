// Package pricing estimates property prices with a fixed linear coefficient
// model. The model is intentionally simple: a base price plus weighted
// contributions per feature, with a ±10% market variance band.
package pricing

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	basePrice      = 50000
	perSqFt        = 100
	perBedroom     = 15000
	perBathroom    = 10000
	perYearOfAge   = -2000
	heuristicScore = 0.85
	variance       = 0.10
)

var locationPremium = map[string]int{
	"urban":    50000,
	"suburban": 30000,
	"rural":    10000,
}

var conditionAdjustment = map[string]int{
	"excellent": 40000,
	"good":      20000,
	"fair":      0,
	"poor":      -20000,
}

var amenityValue = map[string]int{
	"garage":   15000,
	"garden":   10000,
	"pool":     25000,
	"basement": 20000,
	"balcony":  8000,
}

// Features describes one property. Either YearBuilt or Age may be supplied;
// YearBuilt wins when both are present.
type Features struct {
	Area      float64  `json:"area"`
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms int      `json:"bathrooms"`
	Floors    int      `json:"floors"`
	YearBuilt int      `json:"yearBuilt,omitempty"`
	Age       int      `json:"age,omitempty"`
	Location  string   `json:"location,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Garage    bool     `json:"garage,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Breakdown itemizes each contribution to the estimate.
type Breakdown struct {
	BasePrice            int `json:"basePrice"`
	AreaContribution     int `json:"areaContribution"`
	BedroomContribution  int `json:"bedroomContribution"`
	BathroomContribution int `json:"bathroomContribution"`
	FloorsContribution   int `json:"floorsContribution"`
	AgeAdjustment        int `json:"ageAdjustment"`
	LocationPremium      int `json:"locationPremium"`
	ConditionAdjustment  int `json:"conditionAdjustment"`
	GarageContribution   int `json:"garageContribution"`
	OtherAmenities       int `json:"otherAmenitiesContribution"`
}

// Range is the min/max estimate band.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Prediction is the result for one property.
type Prediction struct {
	EstimatedPrice int       `json:"estimatedPrice"`
	PriceRange     Range     `json:"priceRange"`
	Confidence     float64   `json:"confidence"`
	Breakdown      Breakdown `json:"breakdown"`
}

// Estimate wraps a prediction with response metadata.
type Estimate struct {
	Prediction Prediction `json:"prediction"`
	ModelUsed  string     `json:"modelUsed"`
	Currency   string     `json:"currency"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Trends summarizes the coefficient tables for the market-trends endpoint.
type Trends struct {
	AveragePricePerSqFt  int            `json:"averagePricePerSqFt"`
	LocationPremiums     map[string]int `json:"locationPremiums"`
	ConditionAdjustments map[string]int `json:"conditionAdjustments"`
	AmenityValues        map[string]int `json:"amenityValues"`
}

// ErrNoProperties is returned by Batch for an empty input.
var ErrNoProperties = errors.New("pricing: no properties provided")

// Service evaluates the model. now is injectable for testing age math.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Predict evaluates the linear model for one property.
func (s *Service) Predict(f Features) Estimate {
	b := Breakdown{BasePrice: basePrice}

	b.AreaContribution = round(f.Area * perSqFt)
	b.BedroomContribution = f.Bedrooms * perBedroom
	b.BathroomContribution = f.Bathrooms * perBathroom
	if f.Floors > 1 {
		// Extra floors count at half a bedroom's weight.
		b.FloorsContribution = round(float64(f.Floors-1) * perBedroom * 0.5)
	}

	age := f.Age
	if f.YearBuilt > 0 {
		age = s.now().Year() - f.YearBuilt
	}
	b.AgeAdjustment = age * perYearOfAge

	b.LocationPremium = locationPremium[strings.ToLower(strings.TrimSpace(f.Location))]
	b.ConditionAdjustment = conditionAdjustment[strings.ToLower(strings.TrimSpace(f.Condition))]

	hasGarage := f.Garage
	for _, a := range f.Amenities {
		if strings.EqualFold(strings.TrimSpace(a), "garage") {
			hasGarage = true
		}
	}
	if hasGarage {
		b.GarageContribution = amenityValue["garage"]
	}
	for _, a := range f.Amenities {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "garage" {
			continue // already counted
		}
		b.OtherAmenities += amenityValue[key]
	}

	price := float64(basePrice +
		b.AreaContribution + b.BedroomContribution + b.BathroomContribution +
		b.FloorsContribution + b.AgeAdjustment + b.LocationPremium +
		b.ConditionAdjustment + b.GarageContribution + b.OtherAmenities)

	spread := price * variance
	return Estimate{
		Prediction: Prediction{
			EstimatedPrice: round(price),
			PriceRange: Range{
				Min: round(math.Max(0, price-spread)),
				Max: round(price + spread),
			},
			Confidence: heuristicScore,
			Breakdown:  b,
		},
		ModelUsed: "heuristic",
		Currency:  "INR",
		Timestamp: s.now().UTC(),
	}
}

// Batch predicts every property in order.
func (s *Service) Batch(props []Features) ([]Estimate, error) {
	if len(props) == 0 {
		return nil, ErrNoProperties
	}
	out := make([]Estimate, 0, len(props))
	for _, f := range props {
		out = append(out, s.Predict(f))
	}
	return out, nil
}

// MarketTrends reports the model's coefficient tables.
func (s *Service) MarketTrends() Trends {
	return Trends{
		AveragePricePerSqFt:  perSqFt,
		LocationPremiums:     locationPremium,
		ConditionAdjustments: conditionAdjustment,
		AmenityValues:        amenityValue,
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
