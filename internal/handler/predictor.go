package handler

import (
	"net/http"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/metrics"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/pricing"
)

type predictRequest struct {
	Features pricing.Features `json:"features"`
}

type batchPredictRequest struct {
	Properties []pricing.Features `json:"properties"`
}

// HandlePredict estimates one property's price.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in predictRequest
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if in.Features.Area <= 0 {
		writeError(w, http.StatusBadRequest, "area is required and must be positive")
		return
	}
	if in.Features.YearBuilt == 0 && in.Features.Age == 0 {
		writeError(w, http.StatusBadRequest, "yearBuilt or age is required")
		return
	}
	est := h.Pricer.Predict(in.Features)
	metrics.PredictionsTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"prediction": est.Prediction,
		"modelUsed":  est.ModelUsed,
		"currency":   est.Currency,
		"timestamp":  est.Timestamp,
	})
}

// HandleBatchPredict estimates several properties in one call.
func (h *Handler) HandleBatchPredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in batchPredictRequest
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	estimates, err := h.Pricer.Batch(in.Properties)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	type item struct {
		PropertyID int                `json:"propertyId"`
		Features   pricing.Features   `json:"features"`
		Prediction pricing.Prediction `json:"prediction"`
	}
	out := make([]item, 0, len(estimates))
	for i, est := range estimates {
		out = append(out, item{
			PropertyID: i + 1,
			Features:   in.Properties[i],
			Prediction: est.Prediction,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"modelUsed":   "heuristic",
		"predictions": out,
	})
}

// HandleMarketTrends reports the pricing model's coefficient tables.
func (h *Handler) HandleMarketTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"trends":  h.Pricer.MarketTrends(),
	})
}
