// Package appdir resolves the per-user directories BreadTasks keeps its
// data, configuration and logs in.
package appdir

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/breadtasks/breadtasks/types"
)

// env is swapped in tests
var (
	getenv  = os.Getenv
	homeDir = os.UserHomeDir
	goos    = runtime.GOOS
)

// DataDir returns the application data directory:
//   - %LOCALAPPDATA%\BreadTasks on Windows
//   - ~/Library/Application Support/BreadTasks on macOS
//   - $XDG_DATA_HOME/BreadTasks or ~/.local/share/BreadTasks elsewhere
func DataDir() string {
	if local := getenv("LOCALAPPDATA"); local != "" {
		return filepath.Join(local, types.AppName)
	}
	if xdg := getenv("XDG_DATA_HOME"); xdg != "" && goos != "darwin" {
		return filepath.Join(xdg, types.AppName)
	}

	home, err := homeDir()
	if err != nil {
		// Last resort - use the working directory
		return types.AppName
	}

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", types.AppName)
	case "windows":
		return filepath.Join(home, "AppData", "Local", types.AppName)
	default:
		return filepath.Join(home, ".local", "share", types.AppName)
	}
}

// ConfigDir returns the directory searched for breadtasks.{yaml,json,toml}
func ConfigDir() string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "breadtasks")
	}

	home, err := homeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "breadtasks")
	}
	return filepath.Join(home, ".config", "breadtasks")
}

// CacheDir returns the directory log files are written to
func CacheDir() string {
	// First check XDG_CACHE_HOME
	if xdgCache := getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "breadtasks")
	}

	// Fall back to default based on OS
	home, err := homeDir()
	if err != nil {
		// Last resort - use temp directory
		return filepath.Join(os.TempDir(), "breadtasks")
	}

	if goos == "darwin" {
		// macOS uses ~/Library/Caches
		return filepath.Join(home, "Library", "Caches", "breadtasks")
	}

	// Linux and others use ~/.cache
	return filepath.Join(home, ".cache", "breadtasks")
}
