package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/plan"
)

type generateRequest struct {
	ProjectID string      `json:"projectId"`
	Params    plan.Params `json:"params"`
}

type generateResponse struct {
	ProjectID  string                 `json:"projectId,omitempty"`
	Version    int                    `json:"version,omitempty"`
	Document   plan.FloorPlanDocument `json:"document"`
	Provenance plan.Provenance        `json:"provenance"`
	Warning    string                 `json:"warning,omitempty"`
}

// HandleGenerate runs the generation pipeline. When a project id is given
// the document is persisted as the project's next active version and, if an
// archive is configured, snapshotted there best-effort.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in generateRequest
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := h.Pipeline.Generate(r.Context(), in.Params)
	if err != nil {
		// Only precondition violations reach here.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := generateResponse{
		Document:   result.Document,
		Provenance: result.Provenance,
		Warning:    result.Warning,
	}

	projectID := strings.TrimSpace(in.ProjectID)
	if projectID != "" {
		doc, err := json.Marshal(result.Document)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "encode document")
			return
		}
		if err := plan.CheckStrict(doc); err != nil {
			h.Log.Error("generated document failed strict schema before persist", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "document failed schema check")
			return
		}
		version, err := h.Store.AppendVersion(projectID, doc, string(result.Provenance), result.Warning)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		out.ProjectID = projectID
		out.Version = version.Version

		if h.Archive != nil {
			if _, err := h.Archive.Put(r.Context(), projectID, version.Version, doc); err != nil {
				h.Log.Warn("plan archive write failed",
					zap.String("project_id", projectID),
					zap.Int("version", version.Version),
					zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusOK, out)
}
