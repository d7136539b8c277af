package store

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amterp/cards/internal/config"
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/version"
)

// FileConfigStore implements ConfigStore using a TOML file.
type FileConfigStore struct {
	path string
}

// NewConfigStore creates a config store at the default user config path.
func NewConfigStore() *FileConfigStore {
	return &FileConfigStore{path: config.UserConfigPath()}
}

// NewConfigStoreAt creates a config store at an explicit path.
func NewConfigStoreAt(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

// Path returns the config file location ("" if home is unknown).
func (s *FileConfigStore) Path() string {
	return s.path
}

// Load reads the user config from disk.
// Returns an empty config if the file doesn't exist.
func (s *FileConfigStore) Load() (*model.UserConfig, error) {
	if s.path == "" {
		return &model.UserConfig{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.UserConfig{}, nil
		}
		return nil, err
	}

	var cfg model.UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Strict version validation (only if file exists)
	if cfg.CardsSchema == "" {
		return nil, version.MissingConfigSchema(s.path)
	}
	if cfg.CardsSchema != version.CurrentConfigSchema() {
		return nil, version.InvalidConfigSchema(s.path, cfg.CardsSchema)
	}

	return &cfg, nil
}

// Save writes the user config to disk.
func (s *FileConfigStore) Save(cfg *model.UserConfig) error {
	// Stamp current schema version
	cfg.CardsSchema = version.CurrentConfigSchema()

	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data, 0644)
}

var _ ConfigStore = (*FileConfigStore)(nil)
