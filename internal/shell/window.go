package shell

// Native is the set of host window and application operations the shell
// drives. The production implementation wraps the webview runtime; tests
// substitute a recording fake.
type Native interface {
	Show()
	Hide()
	Focus()
	Minimise()
	Unminimise()
	IsMinimised() bool
	Maximise()
	Unmaximise()
	IsMaximised() bool
	// Reload reloads the window content from the build URL.
	Reload()
	// Terminate quits the host application.
	Terminate()
	// OpenBrowser opens a URL with the OS default handler.
	OpenBrowser(url string)
	// Emit pushes a named event with a payload to the loaded content.
	Emit(event string, data interface{})
	Position() (x, y int)
	Size() (width, height int)
	SetPosition(x, y int)
}

// Window defaults and floor.
const (
	MainWindowName = "main"

	DefaultWidth  = 1280
	DefaultHeight = 720
	MinWidth      = 300
	MinHeight     = 300
)

// Fixed window background, dark slate to avoid a white flash while the
// content loads.
const (
	BackgroundR = 0x1e
	BackgroundG = 0x1f
	BackgroundB = 0x22
)

// WindowSession tracks the single native window: its visibility and
// focus state plus the current content zoom level. Owned exclusively by
// the shell's event loop.
type WindowSession struct {
	native  Native
	visible bool
	focused bool
	zoom    int
}

func newWindowSession(native Native, visible bool, zoom int) *WindowSession {
	return &WindowSession{
		native:  native,
		visible: visible,
		focused: visible,
		zoom:    zoom,
	}
}

func (w *WindowSession) show() {
	w.native.Show()
	w.visible = true
	w.focused = true
}

func (w *WindowSession) hide() {
	w.native.Hide()
	w.visible = false
	w.focused = false
}

func (w *WindowSession) focus() {
	w.native.Focus()
	w.focused = true
}

// Visible reports whether the window is currently shown.
func (w *WindowSession) Visible() bool { return w.visible }

// Focused reports whether the window currently has input focus.
func (w *WindowSession) Focused() bool { return w.focused }
