// Package models defines the persisted data structures for Cinder.
package models

import "github.com/google/uuid"

// Settings represents global application settings.
// This corresponds to ~/.cinder/settings.yaml.
//
// JSON tags are the wire names used by the IPC layer; YAML tags are the
// on-disk names.
type Settings struct {
	Version        int    `yaml:"version" json:"version"`
	Frame          bool   `yaml:"frame" json:"frame"`
	MinimiseToTray bool   `yaml:"minimise_to_tray" json:"minimiseToTray"`
	DiscordRPC     bool   `yaml:"discord_rpc" json:"discordRPC"`
	StartMinimised bool   `yaml:"start_minimised" json:"startMinimised"`
	AutoUpdate     bool   `yaml:"auto_update" json:"autoUpdate"`
	AutoStart      bool   `yaml:"auto_start" json:"autoStart"`
	Telemetry      bool   `yaml:"telemetry" json:"telemetry"`
	ZoomLevel      int    `yaml:"zoom_level" json:"zoomLevel"`
	DevURL         string `yaml:"dev_url" json:"devURL"`
	InstallID      string `yaml:"install_id" json:"installID"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:        1,
		Frame:          true,
		MinimiseToTray: true,
		DiscordRPC:     true,
		StartMinimised: false,
		AutoUpdate:     true,
		AutoStart:      false,
		Telemetry:      false,
		ZoomLevel:      0,
		DevURL:         "http://localhost:5173",
		InstallID:      uuid.NewString(),
	}
}

// SettingsPatch is a partial update to Settings as sent by the UI over IPC.
// Nil fields are left unchanged by ApplyPatch.
type SettingsPatch struct {
	Frame          *bool   `json:"frame,omitempty"`
	MinimiseToTray *bool   `json:"minimiseToTray,omitempty"`
	DiscordRPC     *bool   `json:"discordRPC,omitempty"`
	StartMinimised *bool   `json:"startMinimised,omitempty"`
	AutoUpdate     *bool   `json:"autoUpdate,omitempty"`
	AutoStart      *bool   `json:"autoStart,omitempty"`
	Telemetry      *bool   `json:"telemetry,omitempty"`
	ZoomLevel      *int    `json:"zoomLevel,omitempty"`
	DevURL         *string `json:"devURL,omitempty"`
}

// ApplyPatch merges a partial patch into old and returns the result.
// Keys absent from the patch are preserved unchanged; this is never a
// full overwrite. Version and InstallID are not patchable over IPC.
func ApplyPatch(old Settings, patch SettingsPatch) Settings {
	merged := old
	if patch.Frame != nil {
		merged.Frame = *patch.Frame
	}
	if patch.MinimiseToTray != nil {
		merged.MinimiseToTray = *patch.MinimiseToTray
	}
	if patch.DiscordRPC != nil {
		merged.DiscordRPC = *patch.DiscordRPC
	}
	if patch.StartMinimised != nil {
		merged.StartMinimised = *patch.StartMinimised
	}
	if patch.AutoUpdate != nil {
		merged.AutoUpdate = *patch.AutoUpdate
	}
	if patch.AutoStart != nil {
		merged.AutoStart = *patch.AutoStart
	}
	if patch.Telemetry != nil {
		merged.Telemetry = *patch.Telemetry
	}
	if patch.ZoomLevel != nil {
		merged.ZoomLevel = *patch.ZoomLevel
	}
	if patch.DevURL != nil {
		merged.DevURL = *patch.DevURL
	}
	return merged
}
