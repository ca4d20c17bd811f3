package planstore

import (
	"sort"
	"strings"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS plan_projects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT 'Project',
  owner TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'draft',
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS plan_versions (
  project_id TEXT NOT NULL,
  version INTEGER NOT NULL,
  active BOOLEAN NOT NULL DEFAULT FALSE,
  provenance TEXT NOT NULL DEFAULT '',
  warning TEXT NOT NULL DEFAULT '',
  document JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  PRIMARY KEY (project_id, version)
);
CREATE INDEX IF NOT EXISTS idx_plan_versions_project_id ON plan_versions (project_id);
`)
	})
	return s.schemaErr
}

func (s *Store) putProjectDB(p Project) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO plan_projects (id, name, owner, description, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id)
DO UPDATE SET name=EXCLUDED.name,
  owner=EXCLUDED.owner,
  description=EXCLUDED.description,
  status=EXCLUDED.status,
  updated_at=EXCLUDED.updated_at`,
		p.ID, p.Name, p.Owner, p.Description, p.Status, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *Store) getProjectDB(id string) (Project, bool) {
	if err := s.ensureSchema(); err != nil {
		return Project{}, false
	}
	row := s.db.QueryRow(`SELECT id, name, owner, description, status, created_at, updated_at
FROM plan_projects WHERE id = $1`, id)
	return scanProject(row)
}

func (s *Store) listProjectsDB(owner string) []Project {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	q := `SELECT id, name, owner, description, status, created_at, updated_at FROM plan_projects`
	args := []any{}
	if strings.TrimSpace(owner) != "" {
		q += ` WHERE owner = $1`
		args = append(args, owner)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		if p, ok := scanProject(rows); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) appendVersionDB(v PlanVersion) (PlanVersion, error) {
	if err := s.ensureSchema(); err != nil {
		return PlanVersion{}, err
	}
	row := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) + 1 FROM plan_versions WHERE project_id = $1`, v.ProjectID)
	if err := row.Scan(&v.Version); err != nil {
		return PlanVersion{}, err
	}
	// Two sequential writes: insert the new active version, then clear the
	// siblings. Readers may briefly observe two active versions.
	_, err := s.db.Exec(`
INSERT INTO plan_versions (project_id, version, active, provenance, warning, document, created_at)
VALUES ($1,$2,TRUE,$3,$4,$5,$6)`,
		v.ProjectID, v.Version, v.Provenance, v.Warning, []byte(v.Document), v.CreatedAt)
	if err != nil {
		return PlanVersion{}, err
	}
	_, err = s.db.Exec(`UPDATE plan_versions SET active = FALSE WHERE project_id = $1 AND version <> $2`,
		v.ProjectID, v.Version)
	if err != nil {
		return PlanVersion{}, err
	}
	v.Active = true
	s.invalidateVersions(v.ProjectID)
	return v, nil
}

func (s *Store) versionsDB(projectID string) []PlanVersion {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	if s.versionCache != nil {
		if cached, ok := s.versionCache.Get(projectID); ok {
			out := make([]PlanVersion, len(cached))
			copy(out, cached)
			return out
		}
	}
	rows, err := s.db.Query(`SELECT project_id, version, active, provenance, warning, document, created_at
FROM plan_versions WHERE project_id = $1 ORDER BY version ASC`, projectID)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []PlanVersion
	for rows.Next() {
		if v, ok := scanVersion(rows); ok {
			out = append(out, v)
		}
	}
	if s.versionCache != nil {
		cached := make([]PlanVersion, len(out))
		copy(cached, out)
		s.versionCache.Add(projectID, cached)
	}
	return out
}

func (s *Store) activateDB(projectID string, version int) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE plan_versions SET active = TRUE WHERE project_id = $1 AND version = $2`,
		projectID, version)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(`UPDATE plan_versions SET active = FALSE WHERE project_id = $1 AND version <> $2`,
		projectID, version)
	s.invalidateVersions(projectID)
	return err
}

func (s *Store) invalidateVersions(projectID string) {
	if s.versionCache != nil {
		s.versionCache.Remove(projectID)
	}
}
