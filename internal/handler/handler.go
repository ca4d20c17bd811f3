// Package handler implements the HTTP surface over the generation pipeline,
// the plan store, the price estimator and the event feed.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/plan"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/pricing"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/archive"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/planstore"
)

type Handler struct {
	Store    *planstore.Store
	Pipeline *plan.Pipeline
	Archive  *archive.Store // nil when archiving is not configured
	Pricer   *pricing.Service
	Events   *plan.Broker
	Log      *zap.Logger
}

func New(store *planstore.Store, pipeline *plan.Pipeline, arch *archive.Store, pricer *pricing.Service, events *plan.Broker, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:    store,
		Pipeline: pipeline,
		Archive:  arch,
		Pricer:   pricer,
		Events:   events,
		Log:      log,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
