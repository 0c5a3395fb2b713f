// Package paths provides XDG-compliant path resolution for spoolview.
//
// Resolution order:
// 1. SPOOLVIEW_HOME (portable root) → $SPOOLVIEW_HOME/{config,data,state}
// 2. XDG env vars → $XDG_*_HOME/spoolview
// 3. Platform defaults → ~/.config/spoolview, ~/.local/share/spoolview, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "spoolview"

// base resolves one XDG base directory.
func base(portable, xdgVar string, fallback ...string) string {
	if home := os.Getenv("SPOOLVIEW_HOME"); home != "" {
		return filepath.Join(home, portable)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, append(fallback, appName)...)...)
	}
	return ""
}

// ConfigDir returns the directory holding the global spoolview.yml.
func ConfigDir() string {
	return base("config", "XDG_CONFIG_HOME", ".config")
}

// DataDir returns the directory catalogs are seeded into by default.
func DataDir() string {
	return base("data", "XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the directory for logs and other runtime state.
func StateDir() string {
	return base("state", "XDG_STATE_HOME", ".local", "state")
}

// LogDir returns the default directory for file log sinks.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// DefaultCatalogPath is used when neither the config nor the command line
// names a catalog.
func DefaultCatalogPath() string {
	data := DataDir()
	if data == "" {
		return ""
	}
	return filepath.Join(data, "catalog.db")
}

// EnsureDirs creates all spoolview directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), DataDir(), StateDir(), LogDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
