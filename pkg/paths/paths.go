// Package paths resolves the locations fast uses on disk.
// It follows the XDG Base Directory specification for configuration and
// state, while the stores keep their historical dotfile locations in $HOME.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/fast/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for fast
	EnvConfigDir = "FAST_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for fast
	EnvStateDir = "FAST_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "fast"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// EnvFileName is the name of the optional dotenv file next to the config
	EnvFileName = "fast.env"

	// LogFileName is the name of the log file
	LogFileName = "fast.log"

	// FastDirStore is the default store file for fast dirs, relative to $HOME
	FastDirStore = ".fd_storage"

	// FastLinkStore is the default store file for fast links, relative to $HOME
	FastLinkStore = ".fl_storage"
)

// ConfigDir returns the directory holding config.toml and fast.env.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path of the user configuration file.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// EnvFilePath returns the path of the optional dotenv file.
func EnvFilePath() string {
	return filepath.Join(ConfigDir(), EnvFileName)
}

// StateDir returns the directory used for logs.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// HomeDir returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// DefaultStorePath returns $HOME/<name>, or <name> when no home is known.
func DefaultStorePath(name string) string {
	home, err := HomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := HomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
