package shell

import (
	"encoding/json"
	"testing"

	"github.com/cinder-app/cinder/internal/ipc"
	"github.com/cinder-app/cinder/internal/models"
	"github.com/cinder-app/cinder/internal/navigation"
	"github.com/cinder-app/cinder/internal/tray"
)

type emitted struct {
	event string
	data  interface{}
}

// fakeNative records every host window operation.
type fakeNative struct {
	shows       int
	hides       int
	focuses     int
	minimises   int
	unminimises int
	maximises   int
	unmaximises int
	reloads     int
	terminates  int
	positions   int
	sizes       int

	minimised bool
	maximised bool

	onHide func()

	emits  []emitted
	opened []string
}

func (n *fakeNative) Show() { n.shows++ }
func (n *fakeNative) Hide() {
	if n.onHide != nil {
		n.onHide()
	}
	n.hides++
}
func (n *fakeNative) Focus()               { n.focuses++ }
func (n *fakeNative) Minimise()            { n.minimises++ }
func (n *fakeNative) Unminimise()          { n.unminimises++; n.minimised = false }
func (n *fakeNative) IsMinimised() bool    { return n.minimised }
func (n *fakeNative) Maximise()            { n.maximises++; n.maximised = true }
func (n *fakeNative) Unmaximise()          { n.unmaximises++; n.maximised = false }
func (n *fakeNative) IsMaximised() bool    { return n.maximised }
func (n *fakeNative) Reload()              { n.reloads++ }
func (n *fakeNative) Terminate()           { n.terminates++ }
func (n *fakeNative) OpenBrowser(u string) { n.opened = append(n.opened, u) }
func (n *fakeNative) Emit(event string, data interface{}) {
	n.emits = append(n.emits, emitted{event: event, data: data})
}
func (n *fakeNative) Position() (int, int) { n.positions++; return 10, 20 }
func (n *fakeNative) Size() (int, int)     { n.sizes++; return 1280, 720 }
func (n *fakeNative) SetPosition(int, int) {}

type fakePresence struct {
	log []string
}

func (p *fakePresence) Connect() { p.log = append(p.log, "connect") }
func (p *fakePresence) Drop()    { p.log = append(p.log, "drop") }

type fakeAutostart struct {
	enabled bool
}

func (a *fakeAutostart) IsEnabled() bool { return a.enabled }
func (a *fakeAutostart) Enable() error   { a.enabled = true; return nil }
func (a *fakeAutostart) Disable() error  { a.enabled = false; return nil }

type trayRefresh struct {
	visible bool
	focused bool
}

type testShell struct {
	*Shell
	native     *fakeNative
	presence   *fakePresence
	trayState  []trayRefresh
	saved      []models.Settings
	geometries []models.WindowGeometry
	external   []string
}

func newTestShell(t *testing.T, settings models.Settings) *testShell {
	t.Helper()

	policy, err := navigation.New("https://app.cinder.chat")
	if err != nil {
		t.Fatalf("navigation.New: %v", err)
	}

	native := &fakeNative{}
	pres := &fakePresence{}
	ts := &testShell{native: native, presence: pres}

	s := &Shell{
		settings:  &settings,
		policy:    policy,
		router:    ipc.NewRouter(),
		native:    native,
		win:       newWindowSession(native, true, settings.ZoomLevel),
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
		presence:  pres,
		autostart: &fakeAutostart{},
		refreshTray: func(visible, focused bool) {
			ts.trayState = append(ts.trayState, trayRefresh{visible: visible, focused: focused})
		},
		saveSettings: func(v *models.Settings) error {
			ts.saved = append(ts.saved, *v)
			return nil
		},
		saveGeometry: func(_ string, g *models.WindowGeometry) error {
			ts.geometries = append(ts.geometries, *g)
			return nil
		},
		loadSettings: func() (*models.Settings, error) { return &settings, nil },
	}
	s.deferOpen = func(url string) { ts.external = append(ts.external, url) }

	ts.Shell = s
	return ts
}

// dispatch runs one IPC command synchronously through the loop handler.
func (ts *testShell) dispatch(t *testing.T, name, payload string) error {
	t.Helper()
	errCh := make(chan error, 1)
	ts.handle(CommandReceived{Name: name, Payload: json.RawMessage(payload), Err: errCh})
	return <-errCh
}

// requestClose runs the close interceptor and returns whether the close
// may proceed.
func (ts *testShell) requestClose(t *testing.T) bool {
	t.Helper()
	allow := make(chan bool, 1)
	ts.handle(CloseRequested{Allow: allow})
	return <-allow
}

func TestTrayMenuTracksEveryVisibilityTransition(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	sequence := []Event{
		HideRequested{}, ShowRequested{}, TrayToggled{},
		TrayToggled{}, HideRequested{}, ShowRequested{},
	}
	for i, ev := range sequence {
		ts.handle(ev)
		if len(ts.trayState) != i+1 {
			t.Fatalf("step %d: tray not rebuilt", i)
		}
		got := ts.trayState[len(ts.trayState)-1]
		if got.visible != ts.win.visible || got.focused != ts.win.focused {
			t.Errorf("step %d: tray rebuilt with %+v, window visible=%v focused=%v",
				i, got, ts.win.visible, ts.win.focused)
		}
		label := tray.BuildMenu(got.visible, got.focused).ToggleLabel
		if ts.win.visible && label != "Hide" {
			t.Errorf("step %d: label = %q, want Hide", i, label)
		}
		if !ts.win.visible && label != "Show" {
			t.Errorf("step %d: label = %q, want Show", i, label)
		}
	}
}

func TestCloseBecomesHideWithMinimiseToTray(t *testing.T) {
	settings := *models.NewSettings()
	settings.MinimiseToTray = true
	ts := newTestShell(t, settings)

	if ts.requestClose(t) {
		t.Fatal("close should have been intercepted")
	}
	if ts.native.terminates != 0 {
		t.Error("window must survive an intercepted close")
	}
	if ts.win.visible {
		t.Error("intercepted close should hide the window")
	}

	// The window stays usable: showing it again works.
	ts.handle(ShowRequested{})
	if !ts.win.visible || ts.native.shows == 0 {
		t.Error("window should be visible after show")
	}
}

func TestClosePassesWithoutMinimiseToTray(t *testing.T) {
	settings := *models.NewSettings()
	settings.MinimiseToTray = false
	ts := newTestShell(t, settings)

	if !ts.requestClose(t) {
		t.Fatal("close should proceed when minimise-to-tray is off")
	}
}

func TestCloseReplyPrecedesWindowCalls(t *testing.T) {
	// The close callback can block the host's UI thread until it gets
	// the reply; any window call issued before it would wait on that
	// same thread. The reply must come first.
	settings := *models.NewSettings()
	settings.MinimiseToTray = true
	ts := newTestShell(t, settings)

	allow := make(chan bool, 1)
	ts.native.onHide = func() {
		if len(allow) == 0 {
			t.Error("window hidden before the close reply was sent")
		}
	}

	ts.handle(CloseRequested{Allow: allow})
	if <-allow {
		t.Fatal("close should have been intercepted")
	}
	if ts.native.hides != 1 {
		t.Errorf("hides = %d, want 1", ts.native.hides)
	}
}

func TestCloseUsesLastKnownGeometry(t *testing.T) {
	// Close handling must never query the window for its geometry; it
	// persists the sample taken on the last safe transition.
	settings := *models.NewSettings()
	settings.MinimiseToTray = true
	ts := newTestShell(t, settings)

	ts.handle(FocusChanged{Focused: true})
	queriesBefore := ts.native.positions + ts.native.sizes

	if ts.requestClose(t) {
		t.Fatal("close should have been intercepted")
	}

	if got := ts.native.positions + ts.native.sizes; got != queriesBefore {
		t.Errorf("geometry queries during close = %d, want 0", got-queriesBefore)
	}
	if len(ts.geometries) != 1 {
		t.Fatalf("geometry saves = %d, want 1", len(ts.geometries))
	}
	if g := ts.geometries[0]; *g.Width != 1280 || *g.Height != 720 {
		t.Errorf("persisted geometry = %+v, want the last sample", g)
	}
}

func TestCloseWithoutGeometrySampleSavesNothing(t *testing.T) {
	settings := *models.NewSettings()
	settings.MinimiseToTray = false
	ts := newTestShell(t, settings)

	if !ts.requestClose(t) {
		t.Fatal("close should proceed")
	}
	if len(ts.geometries) != 0 {
		t.Errorf("geometry saves = %d, want none before any sample", len(ts.geometries))
	}
}

func TestRelaunchDefeatsCloseInterceptor(t *testing.T) {
	settings := *models.NewSettings()
	settings.MinimiseToTray = true
	ts := newTestShell(t, settings)

	if err := ts.dispatch(t, "relaunch", ""); err != nil {
		t.Fatalf("relaunch: %v", err)
	}

	if ts.intent.Load() != IntentRelaunch {
		t.Errorf("intent = %v, want relaunch", ts.intent.Load())
	}
	if ts.native.terminates != 1 {
		t.Errorf("terminates = %d, want 1: relaunch must destroy the window", ts.native.terminates)
	}
	// A late host close callback must not flip the decision back.
	if !ts.requestClose(t) {
		t.Error("interceptor must not re-trigger once relaunch intent is set")
	}
}

func TestTrayQuitSetsIntentBeforeTerminating(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	ts.handle(QuitRequested{})

	if ts.intent.Load() != IntentQuit {
		t.Errorf("intent = %v, want quit", ts.intent.Load())
	}
	if ts.native.terminates != 1 {
		t.Errorf("terminates = %d, want 1", ts.native.terminates)
	}
}

func TestDiscordRPCToggleConnectsThenDisconnectsOnce(t *testing.T) {
	settings := *models.NewSettings()
	settings.DiscordRPC = false
	ts := newTestShell(t, settings)

	if err := ts.dispatch(t, "set", `{"discordRPC":true}`); err != nil {
		t.Fatalf("set true: %v", err)
	}
	if err := ts.dispatch(t, "set", `{"discordRPC":false}`); err != nil {
		t.Fatalf("set false: %v", err)
	}

	if len(ts.presence.log) != 2 || ts.presence.log[0] != "connect" || ts.presence.log[1] != "drop" {
		t.Errorf("presence log = %v, want [connect drop]", ts.presence.log)
	}
	if ts.settings.DiscordRPC {
		t.Error("persisted discordRPC should end false")
	}
	if len(ts.saved) != 2 || ts.saved[1].DiscordRPC {
		t.Errorf("saved snapshots = %+v, want final discordRPC=false", ts.saved)
	}
}

func TestSetPreservesUntouchedKeys(t *testing.T) {
	settings := *models.NewSettings()
	settings.MinimiseToTray = true
	ts := newTestShell(t, settings)

	if err := ts.dispatch(t, "set", `{"discordRPC":false}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !ts.settings.MinimiseToTray {
		t.Error("minimiseToTray must survive an unrelated patch")
	}
}

func TestOpenExternalHTTPSOpensExactlyOnce(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "open-external", `"https://example.com"`); err != nil {
		t.Fatalf("open-external: %v", err)
	}

	if len(ts.external) != 1 || ts.external[0] != "https://example.com" {
		t.Errorf("external opens = %v, want exactly [https://example.com]", ts.external)
	}
	if ts.native.shows != 0 {
		t.Error("no window may be created or shown for a popup")
	}
}

func TestOpenExternalUnknownSchemeIsDropped(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "open-external", `"ftp://example.com"`); err != nil {
		t.Fatalf("open-external: %v", err)
	}

	if len(ts.external) != 0 {
		t.Errorf("external opens = %v, want none for ftp", ts.external)
	}
}

func TestActivationRestoresAndFocuses(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())
	ts.native.minimised = true
	ts.handle(HideRequested{})

	ts.handle(ActivationReceived{Args: []string{"--dev"}})

	if ts.native.unminimises != 1 {
		t.Errorf("unminimises = %d, want 1", ts.native.unminimises)
	}
	if !ts.win.visible || !ts.win.focused {
		t.Error("activation should show and focus the existing window")
	}
	if ts.native.terminates != 0 {
		t.Error("activation must never tear the window down")
	}
}

func TestTrayToggleFocusesVisibleUnfocusedWindow(t *testing.T) {
	// The toggle item carries the three-way decision: a visible window
	// that merely lost focus is brought to the front, not hidden.
	ts := newTestShell(t, *models.NewSettings())
	ts.handle(FocusChanged{Focused: false})

	ts.handle(TrayToggled{})

	if ts.native.focuses != 1 {
		t.Errorf("focuses = %d, want 1", ts.native.focuses)
	}
	if ts.native.hides != 0 {
		t.Error("a visible unfocused window must be focused, not hidden")
	}
	if got := ts.trayState[len(ts.trayState)-1]; !got.visible || !got.focused {
		t.Errorf("tray rebuilt with %+v after focus, want visible+focused", got)
	}
}

func TestTrayToggleHidesFocusedWindow(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	ts.handle(TrayToggled{})

	if ts.native.hides != 1 {
		t.Errorf("hides = %d, want 1", ts.native.hides)
	}
}

func TestTrayToggleShowsHiddenWindow(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())
	ts.handle(HideRequested{})

	ts.handle(TrayToggled{})

	if !ts.win.visible {
		t.Error("hidden window should be shown")
	}
}

func TestContentLoadedPushesConfigOnce(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	ts.handle(ContentLoaded{})

	var configs int
	for _, e := range ts.native.emits {
		if e.event == "config" {
			configs++
		}
	}
	if configs != 1 {
		t.Errorf("config pushes = %d, want 1", configs)
	}
}

func TestMaximizeToggleInspectsCurrentState(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "maximize-toggle", ""); err != nil {
		t.Fatalf("maximize-toggle: %v", err)
	}
	if ts.native.maximises != 1 {
		t.Errorf("maximises = %d, want 1", ts.native.maximises)
	}

	if err := ts.dispatch(t, "maximize-toggle", ""); err != nil {
		t.Fatalf("maximize-toggle: %v", err)
	}
	if ts.native.unmaximises != 1 {
		t.Errorf("unmaximises = %d, want 1", ts.native.unmaximises)
	}
}

func TestZoomInStepsAndPersists(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "zoom-in", ""); err != nil {
		t.Fatalf("zoom-in: %v", err)
	}
	if err := ts.dispatch(t, "zoom-in", ""); err != nil {
		t.Fatalf("zoom-in: %v", err)
	}

	if ts.win.zoom != 2 {
		t.Errorf("zoom = %d, want 2", ts.win.zoom)
	}
	if ts.settings.ZoomLevel != 2 {
		t.Errorf("persisted zoomLevel = %d, want 2", ts.settings.ZoomLevel)
	}
}

func TestReloadCommand(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "reload", ""); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if ts.native.reloads != 1 {
		t.Errorf("reloads = %d, want 1", ts.native.reloads)
	}
}

func TestAutoStartRoundTrip(t *testing.T) {
	ts := newTestShell(t, *models.NewSettings())

	if err := ts.dispatch(t, "set-auto-start", "true"); err != nil {
		t.Fatalf("set-auto-start: %v", err)
	}
	if err := ts.dispatch(t, "query-auto-start", ""); err != nil {
		t.Fatalf("query-auto-start: %v", err)
	}

	var last emitted
	for _, e := range ts.native.emits {
		if e.event == "auto-start" {
			last = e
		}
	}
	if last.data != true {
		t.Errorf("auto-start push = %+v, want true", last)
	}
}
