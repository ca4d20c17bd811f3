package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/handler"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/middleware"
)

func NewMux(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	// Generation pipeline
	mux.HandleFunc("/api/plans/generate", h.HandleGenerate)

	// Projects and plan versions
	mux.HandleFunc("/api/projects", h.HandleProjects)
	mux.HandleFunc("/api/projects/", h.HandleProject)

	// Price estimation
	mux.HandleFunc("/api/predictor/predict", h.HandlePredict)
	mux.HandleFunc("/api/predictor/batch", h.HandleBatchPredict)
	mux.HandleFunc("/api/predictor/trends", h.HandleMarketTrends)

	// Operational surfaces
	mux.HandleFunc("/ws/generations", h.HandleEventsWS)
	mux.HandleFunc("/healthz", h.Healthz)
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.CORS(mux)
}
