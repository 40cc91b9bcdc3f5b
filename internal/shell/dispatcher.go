package shell

import (
	"encoding/json"
	"log"

	"github.com/cinder-app/cinder/internal/models"
	"github.com/cinder-app/cinder/internal/navigation"
	"github.com/cinder-app/cinder/internal/tray"
)

// Event is the tagged union consumed by the shell's event loop. Window
// and tray state are owned by that single loop goroutine, so handlers
// never share mutable state across threads.
type Event interface {
	isEvent()
}

// ShowRequested asks for the window to be shown and focused.
type ShowRequested struct{}

// HideRequested asks for the window to be hidden to the tray.
type HideRequested struct{}

// ActivationReceived is a forwarded invocation from a second launch
// attempt: restore the existing window, never create another.
type ActivationReceived struct {
	Args []string
}

// TrayToggled is a click on the tray menu's Show/Hide/Focus item.
type TrayToggled struct{}

// QuitRequested is the tray menu's Quit item.
type QuitRequested struct{}

// CloseRequested is the host's window-close interception point. The
// handler replies whether the close may proceed.
type CloseRequested struct {
	Allow chan<- bool
}

// ContentLoaded fires when the window content finished loading.
type ContentLoaded struct{}

// FocusChanged mirrors the native window's focus state.
type FocusChanged struct {
	Focused bool
}

// CommandReceived is a named IPC command from the rendered UI. Err
// receives the dispatch result so host-API rejections propagate to the
// caller unhandled.
type CommandReceived struct {
	Name    string
	Payload json.RawMessage
	Err     chan<- error
}

// SettingsFileChanged fires after an external edit to settings.yaml.
type SettingsFileChanged struct{}

func (ShowRequested) isEvent()       {}
func (HideRequested) isEvent()       {}
func (ActivationReceived) isEvent()  {}
func (TrayToggled) isEvent()         {}
func (QuitRequested) isEvent()       {}
func (CloseRequested) isEvent()      {}
func (ContentLoaded) isEvent()       {}
func (FocusChanged) isEvent()        {}
func (CommandReceived) isEvent()     {}
func (SettingsFileChanged) isEvent() {}

// post delivers an event to the loop, dropping it once the shell is
// shutting down.
func (s *Shell) post(ev Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Shell) loop() {
	for {
		select {
		case ev := <-s.events:
			s.handle(ev)
		case <-s.done:
			return
		}
	}
}

func (s *Shell) handle(ev Event) {
	switch ev := ev.(type) {
	case ShowRequested:
		s.showWindow()

	case HideRequested:
		s.hideWindow()

	case ActivationReceived:
		if s.native.IsMinimised() {
			s.native.Unminimise()
		}
		s.showWindow()

	case TrayToggled:
		switch tray.Activate(s.win.visible, s.win.focused) {
		case tray.ActionShow:
			s.showWindow()
		case tray.ActionHide:
			s.hideWindow()
		case tray.ActionFocus:
			s.win.focus()
			s.refreshTray(s.win.visible, s.win.focused)
		}

	case QuitRequested:
		s.intent.Store(IntentQuit)
		s.captureGeometry()
		s.persistGeometry()
		s.native.Terminate()

	case CloseRequested:
		// The callback may be blocking the host's UI thread on this
		// reply; answer from settings and intent alone, then do the
		// window work. Any window call before the reply can deadlock.
		allowed := s.decideClose()
		ev.Allow <- allowed
		if allowed {
			s.persistGeometry()
		} else {
			s.win.hide()
			s.refreshTray(false, false)
			s.persistGeometry()
		}

	case ContentLoaded:
		s.captureGeometry()
		s.native.Emit("config", s.settings)

	case FocusChanged:
		s.win.focused = ev.Focused
		s.captureGeometry()
		s.refreshTray(s.win.visible, s.win.focused)

	case CommandReceived:
		err := s.router.Dispatch(s, ev.Name, ev.Payload)
		if ev.Err != nil {
			ev.Err <- err
		}

	case SettingsFileChanged:
		s.reloadSettings()
	}
}

func (s *Shell) showWindow() {
	s.win.show()
	s.captureGeometry()
	s.refreshTray(true, true)
}

func (s *Shell) hideWindow() {
	s.captureGeometry()
	s.persistGeometry()
	s.win.hide()
	s.refreshTray(false, false)
}

// decideClose reports whether a close may proceed: with minimise-to-tray
// enabled and no quit or relaunch pending, it may not. Pure on purpose:
// the close callback can hold the host's UI thread hostage until it gets
// an answer, so the answer must not depend on a window call.
func (s *Shell) decideClose() bool {
	return !(s.settings.MinimiseToTray && s.intent.Load() == IntentContinue)
}

// captureGeometry samples the window geometry. Called only on paths
// where the host thread is free to answer; teardown paths persist the
// last sample instead of querying a window that may be going away.
func (s *Shell) captureGeometry() {
	x, y := s.native.Position()
	width, height := s.native.Size()
	s.lastGeom = &models.WindowGeometry{
		X:      models.IntPtr(x),
		Y:      models.IntPtr(y),
		Width:  models.IntPtr(width),
		Height: models.IntPtr(height),
	}
}

func (s *Shell) persistGeometry() {
	if s.lastGeom == nil {
		return
	}
	if err := s.saveGeometry(MainWindowName, s.lastGeom); err != nil {
		log.Printf("failed to save window geometry: %v", err)
	}
}

// reloadSettings re-reads settings.yaml after an external edit and
// pushes the fresh snapshot to the UI.
func (s *Shell) reloadSettings() {
	fresh, err := s.loadSettings()
	if err != nil {
		log.Printf("failed to reload settings: %v", err)
		return
	}
	if fresh.DiscordRPC != s.settings.DiscordRPC {
		if fresh.DiscordRPC {
			s.presence.Connect()
		} else {
			s.presence.Drop()
		}
	}
	s.settings = fresh
	s.native.Emit("config", s.settings)
}

// --- ipc.Host implementation; every method runs on the event loop. ---

// QueryAutoStart reads the OS auto-launch registration state.
func (s *Shell) QueryAutoStart() (bool, error) {
	return s.autostart.IsEnabled(), nil
}

// SetAutoStart flips the OS auto-launch registration and returns the
// resulting state.
func (s *Shell) SetAutoStart(enabled bool) (bool, error) {
	var err error
	if enabled {
		err = s.autostart.Enable()
	} else {
		err = s.autostart.Disable()
	}
	if err != nil {
		return s.autostart.IsEnabled(), err
	}
	return s.autostart.IsEnabled(), nil
}

// ApplySettings merges a partial patch into the persisted settings. A
// discordRPC toggle connects or disconnects presence before the merge is
// persisted. Creation-only options (frame) take effect after a reload or
// relaunch; they are never applied field-by-field to the live window.
func (s *Shell) ApplySettings(patch models.SettingsPatch) error {
	old := *s.settings
	merged := models.ApplyPatch(old, patch)

	if patch.DiscordRPC != nil && *patch.DiscordRPC != old.DiscordRPC {
		if *patch.DiscordRPC {
			s.presence.Connect()
		} else {
			s.presence.Drop()
		}
	}

	s.settings = &merged
	return s.saveSettings(&merged)
}

// Reload reloads the window content from the build URL.
func (s *Shell) Reload() {
	s.native.Reload()
}

// Relaunch records relaunch intent, then closes the window. The intent
// is stored before the close request so the interceptor cannot swallow
// it; both run on this goroutine in issue order.
func (s *Shell) Relaunch() {
	s.intent.Store(IntentRelaunch)
	s.CloseWindow()
}

// Minimize minimizes the window.
func (s *Shell) Minimize() {
	s.native.Minimise()
}

// ToggleMaximize maximizes or restores based on the current state.
func (s *Shell) ToggleMaximize() {
	if s.native.IsMaximised() {
		s.native.Unmaximise()
	} else {
		s.native.Maximise()
	}
}

// CloseWindow requests a window close through the interceptor: with
// minimise-to-tray enabled it becomes a hide instead.
func (s *Shell) CloseWindow() {
	if s.decideClose() {
		s.captureGeometry()
		s.persistGeometry()
		s.native.Terminate()
		return
	}
	s.hideWindow()
}

// ZoomIn increases the content zoom by one step and persists it.
func (s *Shell) ZoomIn() {
	s.win.zoom++
	s.settings.ZoomLevel = s.win.zoom
	if err := s.saveSettings(s.settings); err != nil {
		log.Printf("failed to persist zoom level: %v", err)
	}
	s.native.Emit("zoom-changed", s.win.zoom)
}

// OpenExternal routes a new-window URL through the policy: safe schemes
// go to the OS default handler off this goroutine, everything else is
// silently dropped.
func (s *Shell) OpenExternal(url string) {
	if navigation.RoutePopup(url) == navigation.PopupOpenExternal {
		s.deferOpen(url)
	}
}

// Push sends a named event to the loaded content.
func (s *Shell) Push(event string, data interface{}) {
	s.native.Emit(event, data)
}
