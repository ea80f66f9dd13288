package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file, following
// the XDG Base Directory Specification:
// - Linux: ~/.config/thedoc/config.yml
// - macOS: ~/Library/Application Support/thedoc/config.yml
// - Windows: %APPDATA%\thedoc\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "thedoc", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "thedoc"), nil
}

// ProjectConfigPath returns the project-level config file, relative to the
// current directory.
func ProjectConfigPath() string {
	return "thedoc.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return "thedoc.json"
}
