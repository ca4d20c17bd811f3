package pricing

import (
	"errors"
	"testing"
	"time"
)

func fixedNowService() *Service {
	return &Service{now: func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func TestPredict_Breakdown(t *testing.T) {
	s := fixedNowService()

	est := s.Predict(Features{
		Area:      1000,
		Bedrooms:  3,
		Bathrooms: 2,
		Floors:    2,
		Age:       10,
		Location:  "Urban",
		Condition: "good",
		Amenities: []string{"pool", "garden"},
	})

	b := est.Prediction.Breakdown
	if b.BasePrice != 50000 {
		t.Fatalf("base = %d", b.BasePrice)
	}
	if b.AreaContribution != 100000 {
		t.Fatalf("area = %d", b.AreaContribution)
	}
	if b.BedroomContribution != 45000 {
		t.Fatalf("bedrooms = %d", b.BedroomContribution)
	}
	if b.BathroomContribution != 20000 {
		t.Fatalf("bathrooms = %d", b.BathroomContribution)
	}
	if b.FloorsContribution != 7500 {
		t.Fatalf("floors = %d", b.FloorsContribution)
	}
	if b.AgeAdjustment != -20000 {
		t.Fatalf("age = %d", b.AgeAdjustment)
	}
	if b.LocationPremium != 50000 {
		t.Fatalf("location = %d", b.LocationPremium)
	}
	if b.ConditionAdjustment != 20000 {
		t.Fatalf("condition = %d", b.ConditionAdjustment)
	}
	if b.OtherAmenities != 35000 {
		t.Fatalf("amenities = %d", b.OtherAmenities)
	}

	want := 50000 + 100000 + 45000 + 20000 + 7500 - 20000 + 50000 + 20000 + 35000
	if est.Prediction.EstimatedPrice != want {
		t.Fatalf("price = %d, want %d", est.Prediction.EstimatedPrice, want)
	}
	if est.Prediction.Confidence != 0.85 {
		t.Fatalf("confidence = %v", est.Prediction.Confidence)
	}
	if est.ModelUsed != "heuristic" || est.Currency != "INR" {
		t.Fatalf("metadata: %q %q", est.ModelUsed, est.Currency)
	}
}

func TestPredict_YearBuiltWinsOverAge(t *testing.T) {
	s := fixedNowService()
	est := s.Predict(Features{Area: 500, YearBuilt: 2015, Age: 99})
	if est.Prediction.Breakdown.AgeAdjustment != -20000 {
		t.Fatalf("age adjustment = %d, want -20000 (10 years from yearBuilt)",
			est.Prediction.Breakdown.AgeAdjustment)
	}
}

func TestPredict_GarageNotDoubleCounted(t *testing.T) {
	s := fixedNowService()
	est := s.Predict(Features{Area: 500, Garage: true, Amenities: []string{"Garage", "balcony"}})
	b := est.Prediction.Breakdown
	if b.GarageContribution != 15000 {
		t.Fatalf("garage = %d", b.GarageContribution)
	}
	if b.OtherAmenities != 8000 {
		t.Fatalf("other amenities = %d, garage leaked in", b.OtherAmenities)
	}
}

func TestPredict_RangeIsTenPercentBand(t *testing.T) {
	s := fixedNowService()
	est := s.Predict(Features{Area: 1000})
	p := est.Prediction
	if p.PriceRange.Min != round(float64(p.EstimatedPrice)*0.9) {
		t.Fatalf("min = %d for price %d", p.PriceRange.Min, p.EstimatedPrice)
	}
	if p.PriceRange.Max != round(float64(p.EstimatedPrice)*1.1) {
		t.Fatalf("max = %d for price %d", p.PriceRange.Max, p.EstimatedPrice)
	}
}

func TestPredict_UnknownTablesContributeZero(t *testing.T) {
	s := fixedNowService()
	est := s.Predict(Features{Area: 100, Location: "moon", Condition: "haunted", Amenities: []string{"moat"}})
	b := est.Prediction.Breakdown
	if b.LocationPremium != 0 || b.ConditionAdjustment != 0 || b.OtherAmenities != 0 {
		t.Fatalf("unknown keys should contribute zero: %+v", b)
	}
}

func TestBatch(t *testing.T) {
	s := fixedNowService()

	if _, err := s.Batch(nil); !errors.Is(err, ErrNoProperties) {
		t.Fatalf("empty batch: error = %v, want ErrNoProperties", err)
	}

	out, err := s.Batch([]Features{{Area: 100}, {Area: 200}})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[1].Prediction.Breakdown.AreaContribution != 20000 {
		t.Fatalf("order not preserved: %+v", out[1].Prediction.Breakdown)
	}
}

func TestMarketTrends(t *testing.T) {
	tr := fixedNowService().MarketTrends()
	if tr.AveragePricePerSqFt != 100 {
		t.Fatalf("avg per sqft = %d", tr.AveragePricePerSqFt)
	}
	if tr.LocationPremiums["urban"] != 50000 || tr.AmenityValues["pool"] != 25000 {
		t.Fatalf("coefficient tables not exposed: %+v", tr)
	}
}
