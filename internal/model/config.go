package model

// UserConfig represents the user's cards configuration.
// Stored at ~/.config/cards/config.toml
// Schema changes require a version bump in internal/version/version.go.
type UserConfig struct {
	CardsSchema string `toml:"cards_schema"`
	DBDir       string `toml:"db_dir,omitempty"`
	Backend     string `toml:"backend,omitempty"`
}
