package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultDBDirName = "cards_db"
	DocumentFileName = "cards.json"
	LockFileName     = "cards.lock"
	SQLiteFileName   = "cards.db"
	ConfigFileName   = "config.toml"
	UserConfigDir    = ".config/cards"
)

// Paths provides path resolution for card data files.
type Paths struct {
	dbDir string
}

// NewPaths creates a new Paths resolver rooted at the given storage directory.
func NewPaths(dbDir string) *Paths {
	return &Paths{dbDir: dbDir}
}

// DBDir returns the storage directory.
func (p *Paths) DBDir() string {
	return p.dbDir
}

// DocumentPath returns the JSON document holding cards and the id counter.
func (p *Paths) DocumentPath() string {
	return filepath.Join(p.dbDir, DocumentFileName)
}

// LockPath returns the advisory lock file guarding the document.
func (p *Paths) LockPath() string {
	return filepath.Join(p.dbDir, LockFileName)
}

// SQLitePath returns the SQLite database file.
func (p *Paths) SQLitePath() string {
	return filepath.Join(p.dbDir, SQLiteFileName)
}

// DefaultDBDir returns ~/cards_db, or a relative cards_db if home is unknown.
func DefaultDBDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDBDirName
	}
	return filepath.Join(home, DefaultDBDirName)
}

// UserConfigPath returns the path to the user config file.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, ConfigFileName)
}
