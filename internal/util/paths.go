package util

import (
	"os"
	"path/filepath"
)

// DataDir returns the per-user data directory for the app, honoring
// XDG_DATA_HOME when set.
func DataDir(app string) string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, app)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + app
	}
	return filepath.Join(home, ".local", "share", app)
}
