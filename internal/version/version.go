package version

import (
	"fmt"
	"strconv"
	"strings"
)

// AppVersion is the version reported by `cards version`.
var AppVersion = "0.1.0"

// Current schema versions - bump these when making breaking changes.
//
// CHECKLIST when bumping a version:
//  1. Update the constant below
//  2. Add entry to MinCardsVersion map (tested by TestMinCardsVersionCompleteness)
//  3. Teach the stores to read the previous version
const (
	CurrentDBVersion     = 1
	CurrentConfigVersion = 1
)

// Schema type prefix for the user config file.
const ConfigSchemaPrefix = "config/"

// MinCardsVersion maps schema identifiers to the minimum cards version required.
// Used to provide helpful upgrade messages when encountering newer schemas.
var MinCardsVersion = map[string]string{
	"db/1":     "0.1.0",
	"config/1": "0.1.0",
}

// FormatConfigSchema creates a config schema string from a version number.
// Example: FormatConfigSchema(1) returns "config/1"
func FormatConfigSchema(v int) string {
	return fmt.Sprintf("%s%d", ConfigSchemaPrefix, v)
}

// ParseConfigVersion extracts the version number from a config schema string.
// Returns an error if the format is invalid.
func ParseConfigVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, ConfigSchemaPrefix) {
		return 0, fmt.Errorf("invalid config schema format: %q (expected %sN)", schema, ConfigSchemaPrefix)
	}
	versionStr := strings.TrimPrefix(schema, ConfigSchemaPrefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid config schema version: %q", versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid config schema version: %d (must be >= 1)", v)
	}
	return v, nil
}

// CurrentConfigSchema returns the current config schema string.
func CurrentConfigSchema() string {
	return FormatConfigSchema(CurrentConfigVersion)
}
