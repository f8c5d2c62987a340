package config

import (
	"os"
	"path/filepath"
)

// RootPath returns the root directory for todobrain data.
// It uses $TODOBRAIN_PATH if set, otherwise defaults to ~/.todobrain.
func RootPath() string {
	if v := os.Getenv("TODOBRAIN_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".todobrain")
	}
	return filepath.Join(home, ".todobrain")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(RootPath(), "config.jsonc")
}

// DotenvPaths returns the .env files to load, in priority order:
// the working directory first, then the data root.
func DotenvPaths() []string {
	return []string{".env", filepath.Join(RootPath(), ".env")}
}
