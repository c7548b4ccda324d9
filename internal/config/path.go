// Package config loads and validates the ledger configuration from flags,
// LEDGER_ environment variables, an optional .env file and a YAML file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

// DefaultConfigPath returns where the config file is looked up when --config
// is not given.
func DefaultConfigPath() string {
	return ExpandPath(filepath.Join("~", ".config", "ledger", "config.yaml"))
}
