package shell

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/cinder-app/cinder/internal/autostart"
)

// wailsNative implements Native over the webview runtime. The runtime
// marshals every call onto the host's UI thread, so these are safe to
// invoke from the event loop.
type wailsNative struct {
	ctx context.Context
}

func (n *wailsNative) Show()  { runtime.WindowShow(n.ctx) }
func (n *wailsNative) Hide()  { runtime.WindowHide(n.ctx) }
func (n *wailsNative) Focus() { runtime.WindowShow(n.ctx) }

func (n *wailsNative) Minimise()         { runtime.WindowMinimise(n.ctx) }
func (n *wailsNative) Unminimise()       { runtime.WindowUnminimise(n.ctx) }
func (n *wailsNative) IsMinimised() bool { return runtime.WindowIsMinimised(n.ctx) }

func (n *wailsNative) Maximise()         { runtime.WindowMaximise(n.ctx) }
func (n *wailsNative) Unmaximise()       { runtime.WindowUnmaximise(n.ctx) }
func (n *wailsNative) IsMaximised() bool { return runtime.WindowIsMaximised(n.ctx) }

func (n *wailsNative) Reload()    { runtime.WindowReload(n.ctx) }
func (n *wailsNative) Terminate() { runtime.Quit(n.ctx) }

func (n *wailsNative) OpenBrowser(url string) { runtime.BrowserOpenURL(n.ctx, url) }

func (n *wailsNative) Emit(event string, data interface{}) {
	runtime.EventsEmit(n.ctx, event, data)
}

func (n *wailsNative) Position() (int, int) { return runtime.WindowGetPosition(n.ctx) }
func (n *wailsNative) Size() (int, int)     { return runtime.WindowGetSize(n.ctx) }

func (n *wailsNative) SetPosition(x, y int) { runtime.WindowSetPosition(n.ctx, x, y) }

// newAutoStart builds the login-item collaborator for this executable.
func newAutoStart() (autoStarter, error) {
	return autostart.New()
}

// devProxy forwards asset requests to the remote dev server so dev mode
// loads the live frontend instead of the bundle.
func devProxy(devURL string) http.Handler {
	target, err := url.Parse(devURL)
	if err != nil {
		return http.NotFoundHandler()
	}
	return httputil.NewSingleHostReverseProxy(target)
}
