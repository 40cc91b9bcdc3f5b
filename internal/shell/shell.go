// Package shell is the desktop-shell controller: it owns the native
// window's lifecycle, the tray icon, the IPC command router and the
// navigation policy, and coordinates single-instance startup and the
// relaunch protocol.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	goruntime "runtime"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/cinder-app/cinder/internal/config"
	"github.com/cinder-app/cinder/internal/instance"
	"github.com/cinder-app/cinder/internal/ipc"
	"github.com/cinder-app/cinder/internal/models"
	"github.com/cinder-app/cinder/internal/navigation"
	"github.com/cinder-app/cinder/internal/presence"
	"github.com/cinder-app/cinder/internal/telemetry"
	"github.com/cinder-app/cinder/internal/tray"
	"github.com/cinder-app/cinder/internal/updater"
)

// Options configure one shell launch.
type Options struct {
	// Assets is the bundled web client served in normal mode.
	Assets fs.FS
	// DevMode loads the remote dev URL instead of the bundle.
	DevMode bool
	// Minimized starts with the window hidden to the tray.
	Minimized bool
	// Relaunched marks a process spawned by the relaunch protocol.
	Relaunched bool
	// Args is the original argv[1:], preserved for the relaunch
	// protocol and forwarded to a resident instance.
	Args []string
}

// presenceClient is the presence-broadcast collaborator surface.
type presenceClient interface {
	Connect()
	Drop()
}

// autoStarter is the auto-launch-on-login collaborator surface.
type autoStarter interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// Shell wires the window, tray, IPC router and policy together. All
// mutable state is owned by the event loop goroutine.
type Shell struct {
	opts     Options
	settings *models.Settings
	policy   *navigation.Policy
	router   *ipc.Router

	native   Native
	win      *WindowSession
	intent   intentFlag
	lastGeom *models.WindowGeometry

	events chan Event
	done   chan struct{}

	presence  presenceClient
	autostart autoStarter

	// Collaborator seams, overridable in tests.
	refreshTray  func(visible, focused bool)
	saveSettings func(*models.Settings) error
	saveGeometry func(name string, g *models.WindowGeometry) error
	loadSettings func() (*models.Settings, error)
	deferOpen    func(url string)
}

// BuildURL resolves the URL the window loads: the remote dev server in
// dev mode, otherwise the bundled asset-server origin.
func BuildURL(settings *models.Settings, devMode bool) string {
	if devMode {
		return settings.DevURL
	}
	if goruntime.GOOS == "windows" {
		return "http://wails.localhost"
	}
	return "wails://wails"
}

// Run acquires the single-instance lock and drives one complete shell
// lifecycle. It returns once the user quits; on relaunch intent a
// replacement process has been spawned by then.
func Run(opts Options) error {
	lock, err := instance.Acquire()
	if errors.Is(err, instance.ErrAlreadyRunning) {
		// Expected early-exit path, not an error: forward this
		// invocation so the resident instance can focus its window.
		log.Println("another instance is running, forwarding invocation")
		return instance.Forward(opts.Args)
	}
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	defer lock.Close()

	// First-run setup is fatal when it fails: no window is created.
	settings, err := config.EnsureSettings()
	if err != nil {
		return fmt.Errorf("first-run setup: %w", err)
	}

	policy, err := navigation.New(BuildURL(settings, opts.DevMode))
	if err != nil {
		return fmt.Errorf("navigation policy: %w", err)
	}

	autoStart, err := newAutoStart()
	if err != nil {
		return err
	}

	s := &Shell{
		opts:         opts,
		settings:     settings,
		policy:       policy,
		router:       ipc.NewRouter(),
		events:       make(chan Event, 64),
		done:         make(chan struct{}),
		presence:     presence.NewClient(),
		autostart:    autoStart,
		refreshTray:  tray.Refresh,
		saveSettings: config.SaveSettings,
		saveGeometry: config.SaveGeometry,
		loadSettings: config.LoadSettings,
	}
	s.deferOpen = func(url string) {
		go s.native.OpenBrowser(url)
	}

	tel := telemetry.New(settings.InstallID, settings.Telemetry)
	defer tel.Close()
	if opts.Relaunched {
		tel.Capture("app_relaunched")
	} else {
		tel.Capture("app_launched")
	}

	// One-shot startup collaborators.
	if settings.AutoUpdate {
		go func() {
			if updater.AutoUpdate() {
				tel.Capture("update_applied")
			}
		}()
	}
	if settings.DiscordRPC {
		s.presence.Connect()
	}

	if err := s.runWindow(lock); err != nil {
		return fmt.Errorf("window creation: %w", err)
	}

	s.presence.Drop()

	// The loop has stopped with the host; consume the intent exactly
	// once.
	if s.intent.Load() == IntentRelaunch {
		log.Println("relaunching")
		if err := Respawn(opts.Args); err != nil {
			return fmt.Errorf("relaunch: %w", err)
		}
	}
	return nil
}

// runWindow builds the native window and blocks until the host quits.
// Window creation failures are fatal to this launch attempt; there is no
// retry.
func (s *Shell) runWindow(lock *instance.Lock) error {
	geometry, err := config.LoadGeometry(MainWindowName)
	if err != nil {
		log.Printf("failed to load window geometry: %v", err)
	}

	width, height := DefaultWidth, DefaultHeight
	if geometry != nil && geometry.Width != nil {
		width = *geometry.Width
	}
	if geometry != nil && geometry.Height != nil {
		height = *geometry.Height
	}

	startHidden := s.opts.Minimized || s.settings.StartMinimised
	bridge := &Bridge{shell: s}

	var watcher *settingsWatcher

	return wails.Run(&options.App{
		Title:            "Cinder",
		Width:            width,
		Height:           height,
		MinWidth:         MinWidth,
		MinHeight:        MinHeight,
		Frameless:        !s.settings.Frame,
		StartHidden:      startHidden,
		BackgroundColour: &options.RGBA{R: BackgroundR, G: BackgroundG, B: BackgroundB, A: 255},
		AssetServer:      s.assetServer(),
		Bind:             []interface{}{bridge},
		OnStartup: func(ctx context.Context) {
			s.native = &wailsNative{ctx: ctx}
			s.win = newWindowSession(s.native, !startHidden, s.settings.ZoomLevel)

			if geometry != nil && geometry.X != nil && geometry.Y != nil {
				s.native.SetPosition(*geometry.X, *geometry.Y)
			}

			go s.loop()
			go tray.Run(trayHooks{shell: s}, func() {
				s.refreshTray(!startHidden, !startHidden)
			}, nil)
			go s.forwardActivations(lock)

			w, werr := watchSettings(s.post)
			if werr != nil {
				log.Printf("settings watcher unavailable: %v", werr)
			} else {
				watcher = w
			}
		},
		OnDomReady: func(ctx context.Context) {
			s.post(ContentLoaded{})
		},
		OnBeforeClose: func(ctx context.Context) bool {
			allow := make(chan bool, 1)
			s.post(CloseRequested{Allow: allow})
			select {
			case allowed := <-allow:
				return !allowed
			case <-s.done:
				// The loop is gone; never hold the host thread, let
				// the close proceed.
				return false
			}
		},
		OnShutdown: func(ctx context.Context) {
			close(s.done)
			if watcher != nil {
				watcher.Close()
			}
			tray.Quit()
		},
	})
}

// assetServer serves the bundled client, or proxies the remote dev
// server in dev mode.
func (s *Shell) assetServer() *assetserver.Options {
	if s.opts.DevMode {
		return &assetserver.Options{
			Assets:  s.opts.Assets,
			Handler: devProxy(s.settings.DevURL),
		}
	}
	return &assetserver.Options{Assets: s.opts.Assets}
}

// forwardActivations relays second-instance notifications into the
// event loop until the lock closes.
func (s *Shell) forwardActivations(lock *instance.Lock) {
	for act := range lock.Activations() {
		s.post(ActivationReceived{Args: act.Args})
	}
}

// trayHooks posts tray interactions to the event loop.
type trayHooks struct {
	shell *Shell
}

func (h trayHooks) OnToggle() { h.shell.post(TrayToggled{}) }
func (h trayHooks) OnQuit()   { h.shell.post(QuitRequested{}) }
