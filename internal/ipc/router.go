// Package ipc routes named commands from the rendered UI to host actions.
//
// Commands are one-directional requests from the loaded content; the
// host answers by pushing named events back to the content. The command
// set is fixed at construction.
package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/cinder-app/cinder/internal/models"
)

// Host is the set of shell actions the router can invoke. It is
// implemented by the shell's event loop, so every call runs on the
// single controller goroutine.
type Host interface {
	// QueryAutoStart reads the OS auto-launch-on-login state.
	QueryAutoStart() (bool, error)
	// SetAutoStart enables or disables auto-launch and returns the
	// resulting state.
	SetAutoStart(enabled bool) (bool, error)
	// ApplySettings merges a partial patch into the persisted settings.
	ApplySettings(patch models.SettingsPatch) error
	// Reload reloads the window content from the build URL.
	Reload()
	// Relaunch records relaunch intent and closes the window.
	Relaunch()
	// Minimize minimizes the window.
	Minimize()
	// ToggleMaximize maximizes the window, or restores it when it is
	// already maximized.
	ToggleMaximize()
	// CloseWindow requests a window close, subject to the
	// minimise-to-tray interceptor.
	CloseWindow()
	// ZoomIn increases the content zoom level by one step.
	ZoomIn()
	// OpenExternal routes a new-window URL through the navigation policy.
	OpenExternal(url string)
	// Push sends a named event with a payload to the loaded content.
	Push(event string, data interface{})
}

// Handler executes one named command against the host.
type Handler func(host Host, payload json.RawMessage) error

// Router dispatches named commands to their handlers.
type Router struct {
	handlers map[string]Handler
}

// NewRouter creates a router with the fixed command set registered.
func NewRouter() *Router {
	r := &Router{handlers: make(map[string]Handler)}
	r.handlers["query-auto-start"] = handleQueryAutoStart
	r.handlers["set-auto-start"] = handleSetAutoStart
	r.handlers["set"] = handleSet
	r.handlers["reload"] = handleReload
	r.handlers["relaunch"] = handleRelaunch
	r.handlers["minimize"] = handleMinimize
	r.handlers["maximize-toggle"] = handleMaximizeToggle
	r.handlers["close"] = handleClose
	r.handlers["zoom-in"] = handleZoomIn
	r.handlers["open-external"] = handleOpenExternal
	return r
}

// Dispatch runs the named command. Host-API failures are returned to the
// caller unhandled; the router never swallows them.
func (r *Router) Dispatch(host Host, name string, payload json.RawMessage) error {
	handler, ok := r.handlers[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return handler(host, payload)
}

func handleQueryAutoStart(host Host, _ json.RawMessage) error {
	enabled, err := host.QueryAutoStart()
	if err != nil {
		return err
	}
	host.Push("auto-start", enabled)
	return nil
}

func handleSetAutoStart(host Host, payload json.RawMessage) error {
	var enabled bool
	if err := json.Unmarshal(payload, &enabled); err != nil {
		return fmt.Errorf("set-auto-start: %w", err)
	}
	state, err := host.SetAutoStart(enabled)
	if err != nil {
		return err
	}
	host.Push("auto-start", state)
	return nil
}

func handleSet(host Host, payload json.RawMessage) error {
	var patch models.SettingsPatch
	if err := json.Unmarshal(payload, &patch); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	return host.ApplySettings(patch)
}

func handleReload(host Host, _ json.RawMessage) error {
	host.Reload()
	return nil
}

func handleRelaunch(host Host, _ json.RawMessage) error {
	host.Relaunch()
	return nil
}

func handleMinimize(host Host, _ json.RawMessage) error {
	host.Minimize()
	return nil
}

func handleMaximizeToggle(host Host, _ json.RawMessage) error {
	host.ToggleMaximize()
	return nil
}

func handleClose(host Host, _ json.RawMessage) error {
	host.CloseWindow()
	return nil
}

func handleZoomIn(host Host, _ json.RawMessage) error {
	host.ZoomIn()
	return nil
}

func handleOpenExternal(host Host, payload json.RawMessage) error {
	var url string
	if err := json.Unmarshal(payload, &url); err != nil {
		return fmt.Errorf("open-external: %w", err)
	}
	host.OpenExternal(url)
	return nil
}
