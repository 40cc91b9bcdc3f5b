// Package autostart manages the OS auto-launch-on-login registration.
package autostart

import (
	"fmt"
	"os"

	"github.com/emersion/go-autostart"
)

// Entry is the login-item registration for this executable.
type Entry struct {
	app *autostart.App
}

// New builds the registration entry for the current executable.
func New() (*Entry, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return &Entry{
		app: &autostart.App{
			Name:        "cinder",
			DisplayName: "Cinder",
			Exec:        []string{exe, "--minimized"},
		},
	}, nil
}

// IsEnabled reports whether auto-launch is currently registered.
func (e *Entry) IsEnabled() bool {
	return e.app.IsEnabled()
}

// Enable registers the application to launch on login.
func (e *Entry) Enable() error {
	if e.app.IsEnabled() {
		return nil
	}
	return e.app.Enable()
}

// Disable removes the login registration.
func (e *Entry) Disable() error {
	if !e.app.IsEnabled() {
		return nil
	}
	return e.app.Disable()
}
