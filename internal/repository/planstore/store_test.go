package planstore

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

var testDoc = json.RawMessage(`{"plotDimensions":{"width":30,"length":40},"rooms":[]}`)

func TestPutProject_Defaults(t *testing.T) {
	s := New("")
	if err := s.PutProject(Project{ID: " p1 "}); err != nil {
		t.Fatalf("put: %v", err)
	}
	p, ok := s.GetProject("p1")
	if !ok {
		t.Fatal("project not found")
	}
	if p.Name != "Project" || p.Status != "draft" {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", p)
	}
}

func TestPutProject_UpdatePreservesCreatedAt(t *testing.T) {
	s := New("")
	if err := s.PutProject(Project{ID: "p1", Name: "First"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	created, _ := s.GetProject("p1")

	if err := s.PutProject(Project{ID: "p1", Name: "Renamed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, _ := s.GetProject("p1")
	if updated.Name != "Renamed" {
		t.Fatalf("name = %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update replaced CreatedAt")
	}
}

func TestPutProject_EmptyID(t *testing.T) {
	s := New("")
	if err := s.PutProject(Project{}); !errors.Is(err, ErrEmptyProject) {
		t.Fatalf("error = %v, want ErrEmptyProject", err)
	}
}

func TestListProjects_FiltersAndSorts(t *testing.T) {
	s := New("")
	for _, p := range []Project{
		{ID: "c", Owner: "alice"},
		{ID: "a", Owner: "bob"},
		{ID: "b", Owner: "alice"},
	} {
		if err := s.PutProject(p); err != nil {
			t.Fatalf("put %s: %v", p.ID, err)
		}
	}

	all := s.ListProjects("")
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unsorted or incomplete: %+v", all)
	}

	mine := s.ListProjects("alice")
	if len(mine) != 2 || mine[0].ID != "b" || mine[1].ID != "c" {
		t.Fatalf("owner filter: %+v", mine)
	}
}

func TestAppendVersion_AutoIncrementsAndActivates(t *testing.T) {
	s := New("")
	if err := s.PutProject(Project{ID: "p1"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	v1, err := s.AppendVersion("p1", testDoc, "generated-by-service", "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if v1.Version != 1 || !v1.Active {
		t.Fatalf("first version: %+v", v1)
	}

	v2, err := s.AppendVersion("p1", testDoc, "generated-by-fallback", "fallback used")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if v2.Version != 2 || !v2.Active {
		t.Fatalf("second version: %+v", v2)
	}

	versions := s.Versions("p1")
	if len(versions) != 2 {
		t.Fatalf("len = %d", len(versions))
	}
	if versions[0].Active {
		t.Fatal("appending did not deactivate the prior version")
	}

	active, ok := s.ActiveVersion("p1")
	if !ok || active.Version != 2 {
		t.Fatalf("active = %+v (%v)", active, ok)
	}
	if active.Provenance != "generated-by-fallback" || active.Warning == "" {
		t.Fatalf("provenance/warning not stored: %+v", active)
	}
}

func TestAppendVersion_UnknownProject(t *testing.T) {
	s := New("")
	if _, err := s.AppendVersion("ghost", testDoc, "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestActivate(t *testing.T) {
	s := New("")
	if err := s.PutProject(Project{ID: "p1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.AppendVersion("p1", testDoc, "generated-by-service", ""); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	if err := s.Activate("p1", 1); err != nil {
		t.Fatalf("activate: %v", err)
	}
	active, ok := s.ActiveVersion("p1")
	if !ok || active.Version != 1 {
		t.Fatalf("active = %+v (%v)", active, ok)
	}
	for _, v := range s.Versions("p1") {
		if v.Version != 1 && v.Active {
			t.Fatalf("sibling still active: %+v", v)
		}
	}

	if err := s.Activate("p1", 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown version: error = %v, want ErrNotFound", err)
	}
}

func TestFileBackend_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planstore.json")

	s := New(path)
	if err := s.PutProject(Project{ID: "p1", Name: "House"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.AppendVersion("p1", testDoc, "generated-by-service", ""); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A fresh store over the same path must see the persisted state.
	reopened := New(path)
	p, ok := reopened.GetProject("p1")
	if !ok || p.Name != "House" {
		t.Fatalf("project not persisted: %+v (%v)", p, ok)
	}
	versions := reopened.Versions("p1")
	if len(versions) != 1 || versions[0].Version != 1 {
		t.Fatalf("versions not persisted: %+v", versions)
	}
	if string(versions[0].Document) != string(testDoc) {
		t.Fatalf("document mangled: %s", versions[0].Document)
	}
}

func TestNewPostgres_InvalidDSN(t *testing.T) {
	// A DSN that cannot be parsed must surface the error to the caller
	// so it can decide on a fallback; nothing here touches the network.
	if _, err := NewPostgres("postgres://u@localhost:notaport/db"); err == nil {
		t.Fatal("expected an error for an unparseable DSN")
	}
}

func TestFileBackend_MissingFileIsEmptyStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if got := s.ListProjects(""); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
}
