package config

import (
	"fmt"
	"path/filepath"

	"github.com/amterp/cards/internal/model"
)

// Backend names a persistence backend.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// DefaultBackend is used when nothing else selects one.
const DefaultBackend = BackendJSON

// ParseBackend validates a backend name. Empty selects DefaultBackend.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "":
		return DefaultBackend, nil
	case BackendJSON, BackendSQLite:
		return Backend(name), nil
	}
	return "", fmt.Errorf("unknown backend %q (expected %q or %q)", name, BackendJSON, BackendSQLite)
}

// Settings is the fully resolved storage configuration handed to the repository.
type Settings struct {
	DBDir   string
	Backend Backend
}

// Overrides are values given explicitly on the command line.
type Overrides struct {
	DBDir   string
	Backend string
}

// Resolve picks the storage location and backend.
// Priority: explicit override, environment, user config file, default.
// fileCfg may be nil.
func Resolve(overrides Overrides, environment Env, fileCfg *model.UserConfig) (Settings, error) {
	dir := firstNonEmpty(overrides.DBDir, environment.DBDir)
	backendName := firstNonEmpty(overrides.Backend, environment.Backend)
	if fileCfg != nil {
		dir = firstNonEmpty(dir, fileCfg.DBDir)
		backendName = firstNonEmpty(backendName, fileCfg.Backend)
	}
	if dir == "" {
		dir = DefaultDBDir()
	}

	backend, err := ParseBackend(backendName)
	if err != nil {
		return Settings{}, err
	}

	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	return Settings{DBDir: abs, Backend: backend}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
