package planstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// snapshot is the on-disk JSON layout of the file backend.
type snapshot struct {
	Projects []Project                `json:"projects"`
	Versions map[string][]PlanVersion `json:"versions"`
}

// ensureLoaded reads the snapshot file once. A missing or unreadable file
// leaves the store empty; it will be created on the first write.
func (s *Store) ensureLoaded() {
	if s.db != nil || s.path == "" {
		return
	}
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var snap snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, p := range snap.Projects {
			p = normalizeProject(p)
			if p.ID != "" {
				s.projects[p.ID] = p
			}
		}
		for id, vs := range snap.Versions {
			s.versions[id] = vs
		}
	})
}

// persist writes the whole snapshot atomically (temp file + rename).
func (s *Store) persist() error {
	if s.db != nil || s.path == "" {
		return nil
	}
	s.mu.RLock()
	snap := snapshot{
		Projects: make([]Project, 0, len(s.projects)),
		Versions: make(map[string][]PlanVersion, len(s.versions)),
	}
	for _, p := range s.projects {
		snap.Projects = append(snap.Projects, p)
	}
	for id, vs := range s.versions {
		out := make([]PlanVersion, len(vs))
		copy(out, vs)
		snap.Versions[id] = out
	}
	s.mu.RUnlock()

	// Compact encoding keeps the embedded raw documents byte-stable
	// across a reload.
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
