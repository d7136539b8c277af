package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amterp/cards/internal/config"
	kanerr "github.com/amterp/cards/internal/errors"
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/version"
)

func setupTestCardStore(t *testing.T) (*FileCardStore, *config.Paths) {
	t.Helper()

	paths := config.NewPaths(t.TempDir())
	store, err := NewCardStore(paths)
	if err != nil {
		t.Fatalf("NewCardStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, paths
}

func writeRawDocument(t *testing.T, paths *config.Paths, contents string) {
	t.Helper()
	if err := os.WriteFile(paths.DocumentPath(), []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
}

func TestFileCardStore_CreatesEmptyDocument(t *testing.T) {
	_, paths := setupTestCardStore(t)

	data, err := os.ReadFile(paths.DocumentPath())
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	if raw["_v"] != float64(version.CurrentDBVersion) {
		t.Errorf("_v = %v, want %d", raw["_v"], version.CurrentDBVersion)
	}
	if raw["last_id"] != float64(0) {
		t.Errorf("last_id = %v, want 0", raw["last_id"])
	}
}

func TestFileCardStore_OpenIsIdempotent(t *testing.T) {
	store, paths := setupTestCardStore(t)
	if _, err := store.Insert(model.NewCard("persisted", "", "")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	again, err := NewCardStore(paths)
	if err != nil {
		t.Fatalf("second NewCardStore failed: %v", err)
	}
	defer again.Close()

	n, err := again.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("reopening must not reset the document, Count = %d", n)
	}
}

func TestFileCardStore_NoTempFilesLeftBehind(t *testing.T) {
	store, paths := setupTestCardStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Insert(model.NewCard("task", "", "")); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	entries, err := os.ReadDir(paths.DBDir())
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileCardStore_CounterClampedToHighestID(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"_v":1,"last_id":1,"cards":[
		{"id":5,"summary":"hand edited","state":"todo"},
		{"id":2,"summary":"older","state":"done"}
	]}`)

	store, err := NewCardStore(paths)
	if err != nil {
		t.Fatalf("NewCardStore failed: %v", err)
	}
	defer store.Close()

	listed, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != 2 || listed[1].ID != 5 {
		t.Errorf("cards not sorted by id: %+v", listed)
	}

	id, err := store.Insert(model.NewCard("new", "", ""))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id != 6 {
		t.Errorf("id = %d, want 6", id)
	}
}

func TestFileCardStore_RejectsMissingVersion(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"last_id":0,"cards":[]}`)

	_, err := NewCardStore(paths)
	var sve *version.SchemaVersionError
	if !errors.As(err, &sve) {
		t.Fatalf("expected SchemaVersionError, got %v", err)
	}
	if sve.Found != "missing" {
		t.Errorf("Found = %q, want missing", sve.Found)
	}
}

func TestFileCardStore_RejectsNewerVersion(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"_v":99,"last_id":0,"cards":[]}`)

	_, err := NewCardStore(paths)
	var sve *version.SchemaVersionError
	if !errors.As(err, &sve) {
		t.Fatalf("expected SchemaVersionError, got %v", err)
	}
}

func TestFileCardStore_RejectsInvalidStoredState(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"_v":1,"last_id":1,"cards":[{"id":1,"state":"blocked"}]}`)

	_, err := NewCardStore(paths)
	if !kanerr.IsInvalidState(err) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
}

func TestFileCardStore_RejectsDuplicateIDs(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"_v":1,"last_id":1,"cards":[
		{"id":1,"state":"todo"},{"id":1,"state":"done"}
	]}`)

	if _, err := NewCardStore(paths); err == nil {
		t.Fatal("expected error for duplicate ids")
	}
}

func TestFileCardStore_RejectsMalformedJSON(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writeRawDocument(t, paths, `{"_v":1,`)

	_, err := NewCardStore(paths)
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("expected invalid JSON error, got %v", err)
	}
}

func TestFileCardStore_PersistsOwnerAndSummary(t *testing.T) {
	store, paths := setupTestCardStore(t)

	if _, err := store.Insert(model.NewCard("write docs", "bob", model.StateInProg)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(paths.DBDir(), config.DocumentFileName))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	for _, want := range []string{`"summary": "write docs"`, `"owner": "bob"`, `"state": "in prog"`, `"last_id": 1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("document missing %s:\n%s", want, data)
		}
	}
}
