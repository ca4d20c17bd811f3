package plan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/jsonutil"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/llmclient"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/metrics"
)

// Stage names the pipeline states. A generation walks them in order; any
// failure from CALLING_SERVICE onward takes the one-way edge to FALLBACK.
type Stage string

const (
	StageNormalizing    Stage = "NORMALIZING"
	StageBuildingPrompt Stage = "BUILDING_PROMPT"
	StageCallingService Stage = "CALLING_SERVICE"
	StageExtracting     Stage = "EXTRACTING"
	StageValidating     Stage = "VALIDATING"
	StageSucceeded      Stage = "SUCCEEDED"
	StageFallback       Stage = "FALLBACK"
	StageSucceededFB    Stage = "SUCCEEDED_WITH_FALLBACK"
)

// Fallback reasons, used for logging and metrics labels.
const (
	reasonMissingCredential = "missing_credential"
	reasonServiceError      = "service_error"
	reasonEmptyPayload      = "empty_payload"
	reasonNoJSONFound       = "no_json_found"
	reasonMalformedJSON     = "malformed_json"
	reasonInvalidDocument   = "invalid_document"
)

// Pipeline runs the full generation chain. It is stateless and
// request-scoped: concurrent Generate calls are independent.
type Pipeline struct {
	gen    llmclient.Generator
	log    *zap.Logger
	broker *Broker
}

// NewPipeline wires the orchestrator. broker may be nil.
func NewPipeline(gen llmclient.Generator, log *zap.Logger, broker *Broker) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{gen: gen, log: log, broker: broker}
}

// Generate always returns a valid document for a valid request: the only
// error it surfaces is a precondition violation on the request itself.
// Every service-path failure is recovered by the deterministic fallback and
// reported through the result's provenance and warning.
func (p *Pipeline) Generate(ctx context.Context, params Params) (Result, error) {
	reqID := uuid.NewString()
	start := time.Now()
	log := p.log.With(zap.String("request_id", reqID))

	p.emit(reqID, StageNormalizing, "", "")
	req := Normalize(params)
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	p.emit(reqID, StageBuildingPrompt, "", "")
	prompt := BuildPrompt(req)

	p.emit(reqID, StageCallingService, "", "")
	env, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		reason := classifyServiceFailure(err)
		log.Warn("generation service call failed",
			zap.String("stage", string(StageCallingService)),
			zap.String("reason", reason),
			zap.Error(err))
		return p.fallback(reqID, req, reason, start), nil
	}

	p.emit(reqID, StageExtracting, "", "")
	raw, found, err := ExtractFromEnvelope(env)
	if err != nil || !found {
		log.Warn("no JSON payload in service response",
			zap.String("stage", string(StageExtracting)),
			zap.Error(err))
		return p.fallback(reqID, req, reasonNoJSONFound, start), nil
	}

	p.emit(reqID, StageValidating, "", "")
	if err := CheckDocument([]byte(raw)); err != nil {
		if errors.Is(err, ErrMalformedJSON) {
			// Broken syntax implies a truncated upstream response;
			// logged at error level so it can be monitored apart
			// from ordinary shape mismatches.
			log.Error("service returned syntactically broken JSON",
				zap.String("stage", string(StageValidating)),
				zap.String("payload_head", head(raw, 200)),
				zap.Error(err))
			return p.fallback(reqID, req, reasonMalformedJSON, start), nil
		}
		log.Warn("service document failed validation",
			zap.String("stage", string(StageValidating)),
			zap.String("payload_head", head(raw, 200)),
			zap.Error(err))
		return p.fallback(reqID, req, reasonInvalidDocument, start), nil
	}

	var doc FloorPlanDocument
	if err := jsonutil.Unmarshal([]byte(raw), &doc); err != nil {
		log.Warn("service document did not decode",
			zap.String("stage", string(StageValidating)),
			zap.Error(err))
		return p.fallback(reqID, req, reasonInvalidDocument, start), nil
	}
	doc.ensureArrays()

	p.emit(reqID, StageSucceeded, ProvenanceService, "")
	metrics.GenerationsTotal.WithLabelValues(string(ProvenanceService)).Inc()
	metrics.GenerationDuration.WithLabelValues(string(ProvenanceService)).Observe(time.Since(start).Seconds())
	log.Info("floor plan generated by service",
		zap.String("service", p.gen.Name()),
		zap.Int("rooms", len(doc.Rooms)))
	return Result{Document: doc, Provenance: ProvenanceService}, nil
}

func (p *Pipeline) fallback(reqID string, req GenerationRequest, reason string, start time.Time) Result {
	p.emit(reqID, StageFallback, "", reason)
	doc := GenerateFallback(req)
	p.emit(reqID, StageSucceededFB, ProvenanceFallback, reason)

	metrics.GenerationsTotal.WithLabelValues(string(ProvenanceFallback)).Inc()
	metrics.GenerationFallbacks.WithLabelValues(reason).Inc()
	metrics.GenerationDuration.WithLabelValues(string(ProvenanceFallback)).Observe(time.Since(start).Seconds())

	p.log.Info("floor plan generated by fallback",
		zap.String("request_id", reqID),
		zap.String("reason", reason))
	return Result{
		Document:   doc,
		Provenance: ProvenanceFallback,
		Warning:    "floor plan was generated by the built-in layout engine (" + reason + "); the AI service result was unavailable",
	}
}

func (p *Pipeline) emit(reqID string, stage Stage, prov Provenance, reason string) {
	p.broker.Publish(Event{
		Time:       time.Now(),
		RequestID:  reqID,
		Stage:      stage,
		Provenance: prov,
		Reason:     reason,
	})
}

func classifyServiceFailure(err error) string {
	switch {
	case errors.Is(err, llmclient.ErrMissingCredential):
		return reasonMissingCredential
	case errors.Is(err, llmclient.ErrEmptyPayload):
		return reasonEmptyPayload
	default:
		return reasonServiceError
	}
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
