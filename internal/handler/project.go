package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/planstore"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
}

// HandleProjects serves GET (list) and POST (create) on /api/projects.
func (h *Handler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		owner := strings.TrimSpace(r.URL.Query().Get("owner"))
		projects := h.Store.ListProjects(owner)
		writeJSON(w, http.StatusOK, map[string]any{
			"projects": projects,
			"total":    len(projects),
		})
	case http.MethodPost:
		var in createProjectRequest
		if err := readJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		p := planstore.Project{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Owner:       in.Owner,
			Description: in.Description,
		}
		if err := h.Store.PutProject(p); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		created, _ := h.Store.GetProject(p.ID)
		writeJSON(w, http.StatusCreated, created)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleProject serves /api/projects/{id} and its subresources:
//
//	GET  /api/projects/{id}            project + active version
//	GET  /api/projects/{id}/versions   all versions
//	POST /api/projects/{id}/activate   ?version=N
func (h *Handler) HandleProject(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	id := strings.TrimSpace(parts[0])
	if id == "" {
		writeError(w, http.StatusBadRequest, "project id is required")
		return
	}
	sub := ""
	if len(parts) == 2 {
		sub = parts[1]
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		p, ok := h.Store.GetProject(id)
		if !ok {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		resp := map[string]any{"project": p}
		if active, ok := h.Store.ActiveVersion(id); ok {
			resp["activeVersion"] = active
		}
		writeJSON(w, http.StatusOK, resp)

	case sub == "versions" && r.Method == http.MethodGet:
		if _, ok := h.Store.GetProject(id); !ok {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"versions": h.Store.Versions(id)})

	case sub == "activate" && r.Method == http.MethodPost:
		version, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("version")))
		if err != nil || version < 1 {
			writeError(w, http.StatusBadRequest, "version query parameter is required")
			return
		}
		if err := h.Store.Activate(id, version); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		active, _ := h.Store.ActiveVersion(id)
		writeJSON(w, http.StatusOK, map[string]any{"activeVersion": active})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
