// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global Cinder directory.
	GlobalDirName = ".cinder"
)

// File names under the global directory.
const (
	SettingsFileName = "settings.yaml"
	WindowFileName   = "window.yaml"
)

// GlobalDir returns the path to the global Cinder directory (~/.cinder/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// EnsureGlobalDir creates the global directory if it does not exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalWindowFile returns the path to the window.yaml geometry file.
func GlobalWindowFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, WindowFileName), nil
}
