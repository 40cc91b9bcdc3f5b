package config

import (
	"github.com/cinder-app/cinder/internal/models"
)

// LoadSettings loads the global settings from ~/.cinder/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to ~/.cinder/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// EnsureSettings performs first-run setup: creates the global directory
// and persists default settings if no settings file exists yet. Returns
// the effective settings.
func EnsureSettings() (*models.Settings, error) {
	if err := EnsureGlobalDir(); err != nil {
		return nil, err
	}
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		if err := SaveYAML(path, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}
