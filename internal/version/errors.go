package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType    string // "card db", "config"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "2", "config/2")
	Expected    string // What was expected (e.g., "1", "config/1")
	MinRequired string // Minimum cards version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires cards >= %s (file: %s, found: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Found, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf("%s has no schema version (file: %s)", e.FileType, e.FilePath)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// MissingDBVersion creates an error for a card document missing the _v field.
func MissingDBVersion(path string) error {
	return &SchemaVersionError{
		FileType: "card db",
		FilePath: path,
		Found:    "missing",
		Expected: fmt.Sprintf("%d", CurrentDBVersion),
	}
}

// InvalidDBVersion creates an error for a card document with an unsupported version.
func InvalidDBVersion(path string, found int) error {
	e := &SchemaVersionError{
		FileType: "card db",
		FilePath: path,
		Found:    fmt.Sprintf("%d", found),
		Expected: fmt.Sprintf("%d", CurrentDBVersion),
	}
	// If the found version is newer, look up the min required cards version
	if found > CurrentDBVersion {
		key := fmt.Sprintf("db/%d", found)
		if minCards, ok := MinCardsVersion[key]; ok {
			e.MinRequired = minCards
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}

// MissingConfigSchema creates an error for a config file missing cards_schema.
func MissingConfigSchema(path string) error {
	return &SchemaVersionError{
		FileType: "config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentConfigSchema(),
	}
}

// InvalidConfigSchema creates an error for a config file with unsupported schema.
func InvalidConfigSchema(path, found string) error {
	e := &SchemaVersionError{
		FileType: "config",
		FilePath: path,
		Found:    found,
		Expected: CurrentConfigSchema(),
	}
	// Check if it's a future version
	if v, err := ParseConfigVersion(found); err == nil && v > CurrentConfigVersion {
		if minCards, ok := MinCardsVersion[found]; ok {
			e.MinRequired = minCards
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
