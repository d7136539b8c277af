package store

import (
	"fmt"

	"github.com/amterp/cards/internal/config"
)

// Open returns the CardStore for the given backend.
func Open(backend config.Backend, paths *config.Paths) (CardStore, error) {
	switch backend {
	case config.BackendJSON, "":
		return NewCardStore(paths)
	case config.BackendSQLite:
		return NewSQLiteCardStore(paths)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
