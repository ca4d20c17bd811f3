package planstore

import (
	"encoding/json"
	"strings"
	"time"
)

// Project is the unit of ownership for floor-plan versions.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Owner       string    `json:"owner,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlanVersion is one immutable generated document. Versions auto-increment
// per project; exactly one version per project is expected to be active, but
// activation is two sequential writes, not a transaction, so readers must
// tolerate transient states.
type PlanVersion struct {
	ProjectID  string          `json:"projectId"`
	Version    int             `json:"version"`
	Active     bool            `json:"active"`
	Provenance string          `json:"provenance,omitempty"`
	Warning    string          `json:"warning,omitempty"`
	Document   json.RawMessage `json:"document"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func normalizeProject(p Project) Project {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Owner = strings.TrimSpace(p.Owner)
	if p.Name == "" {
		p.Name = "Project"
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	return p
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, bool) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.Owner, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, false
	}
	return normalizeProject(p), true
}

func scanVersion(row rowScanner) (PlanVersion, bool) {
	var v PlanVersion
	var doc []byte
	err := row.Scan(&v.ProjectID, &v.Version, &v.Active, &v.Provenance, &v.Warning, &doc, &v.CreatedAt)
	if err != nil {
		return PlanVersion{}, false
	}
	v.Document = json.RawMessage(doc)
	return v, true
}
