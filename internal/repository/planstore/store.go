// Package planstore persists projects and their versioned floor-plan
// documents. Two backends share one API: an in-memory map with optional JSON
// file persistence, and postgres. The caller picks the backend; the file
// backend is the default for local use.
package planstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound     = errors.New("planstore: not found")
	ErrEmptyProject = errors.New("planstore: project id is required")
)

const versionCacheSize = 1024

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	projects map[string]Project
	versions map[string][]PlanVersion

	schemaOnce sync.Once
	schemaErr  error

	versionCache *lru.Cache[string, []PlanVersion]
}

// New returns a memory/file-backed store. path may be empty for pure
// in-memory operation.
func New(path string) *Store {
	return &Store{
		path:     path,
		projects: make(map[string]Project),
		versions: make(map[string][]PlanVersion),
	}
}

// NewPostgres returns a postgres-backed store.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, []PlanVersion](versionCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, versionCache: cache}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutProject upserts a project.
func (s *Store) PutProject(p Project) error {
	p = normalizeProject(p)
	if p.ID == "" {
		return ErrEmptyProject
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if s.db != nil {
		return s.putProjectDB(p)
	}
	s.ensureLoaded()
	s.mu.Lock()
	if existing, ok := s.projects[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	s.projects[p.ID] = p
	s.mu.Unlock()
	return s.persist()
}

// GetProject looks a project up by id.
func (s *Store) GetProject(id string) (Project, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Project{}, false
	}
	if s.db != nil {
		return s.getProjectDB(id)
	}
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	return p, ok
}

// ListProjects returns projects for an owner, or all when owner is empty,
// sorted by id for stable pagination.
func (s *Store) ListProjects(owner string) []Project {
	owner = strings.TrimSpace(owner)
	if s.db != nil {
		return s.listProjectsDB(owner)
	}
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if owner != "" && p.Owner != owner {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AppendVersion stores doc as the next version of the project and activates
// it. Activation deactivates all sibling versions; the two steps are
// sequential writes, not one transaction.
func (s *Store) AppendVersion(projectID string, doc json.RawMessage, provenance, warning string) (PlanVersion, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return PlanVersion{}, ErrEmptyProject
	}
	if _, ok := s.GetProject(projectID); !ok {
		return PlanVersion{}, ErrNotFound
	}
	v := PlanVersion{
		ProjectID:  projectID,
		Active:     true,
		Provenance: provenance,
		Warning:    warning,
		Document:   doc,
		CreatedAt:  time.Now().UTC(),
	}
	if s.db != nil {
		return s.appendVersionDB(v)
	}

	s.ensureLoaded()
	s.mu.Lock()
	existing := s.versions[projectID]
	v.Version = nextVersion(existing)
	for i := range existing {
		existing[i].Active = false
	}
	s.versions[projectID] = append(existing, v)
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return PlanVersion{}, err
	}
	return v, nil
}

// Versions returns all versions of a project, oldest first.
func (s *Store) Versions(projectID string) []PlanVersion {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil
	}
	if s.db != nil {
		return s.versionsDB(projectID)
	}
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PlanVersion, len(s.versions[projectID]))
	copy(out, s.versions[projectID])
	return out
}

// ActiveVersion returns the currently active version of a project.
func (s *Store) ActiveVersion(projectID string) (PlanVersion, bool) {
	for _, v := range s.Versions(projectID) {
		if v.Active {
			return v, true
		}
	}
	return PlanVersion{}, false
}

// Activate marks one version active and its siblings inactive.
func (s *Store) Activate(projectID string, version int) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ErrEmptyProject
	}
	if s.db != nil {
		return s.activateDB(projectID, version)
	}
	s.ensureLoaded()
	s.mu.Lock()
	versions := s.versions[projectID]
	found := false
	for i := range versions {
		if versions[i].Version == version {
			found = true
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	for i := range versions {
		versions[i].Active = versions[i].Version == version
	}
	s.versions[projectID] = versions
	s.mu.Unlock()
	return s.persist()
}

func nextVersion(versions []PlanVersion) int {
	next := 1
	for _, v := range versions {
		if v.Version >= next {
			next = v.Version + 1
		}
	}
	return next
}
