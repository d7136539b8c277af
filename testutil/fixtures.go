package testutil

import (
	"path/filepath"
	"testing"

	"github.com/amterp/cards/internal/config"
	"github.com/amterp/cards/internal/model"
)

// TestCard returns an unsaved card with sensible test defaults.
func TestCard(summary string) *model.Card {
	return model.NewCard(summary, "tester", model.StateTodo)
}

// TempDBDir returns a storage directory path inside a fresh temp dir.
// The directory itself does not exist yet, so Open has to create it.
func TempDBDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), config.DefaultDBDirName)
}
