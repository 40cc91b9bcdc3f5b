package config

import (
	"github.com/cinder-app/cinder/internal/models"
)

// LoadGeometry returns the persisted geometry for the named window, or
// nil if none has been saved yet.
func LoadGeometry(name string) (*models.WindowGeometry, error) {
	path, err := GlobalWindowFile()
	if err != nil {
		return nil, err
	}
	state, err := LoadYAMLOrDefault(path, func() *models.WindowState {
		s := models.WindowState{}
		return &s
	})
	if err != nil {
		return nil, err
	}
	return (*state)[name], nil
}

// SaveGeometry persists the geometry for the named window, preserving
// entries for other windows.
func SaveGeometry(name string, g *models.WindowGeometry) error {
	path, err := GlobalWindowFile()
	if err != nil {
		return err
	}
	state, err := LoadYAMLOrDefault(path, func() *models.WindowState {
		s := models.WindowState{}
		return &s
	})
	if err != nil {
		return err
	}
	// An empty or null window.yaml unmarshals to a nil map.
	if *state == nil {
		*state = models.WindowState{}
	}
	(*state)[name] = g
	return SaveYAML(path, state)
}
