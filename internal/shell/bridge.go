package shell

import (
	"encoding/json"
)

// Bridge is the surface bound into the rendered UI. Method calls arrive
// on host worker threads and are forwarded to the event loop; Invoke
// blocks until its command has been processed so host-API rejections
// propagate to the caller.
type Bridge struct {
	shell *Shell
}

// Invoke runs a named IPC command with a JSON payload. Commands posted
// during shutdown are dropped.
func (b *Bridge) Invoke(name string, payload string) error {
	errCh := make(chan error, 1)
	ev := CommandReceived{
		Name:    name,
		Payload: json.RawMessage(payload),
		Err:     errCh,
	}
	select {
	case b.shell.events <- ev:
	case <-b.shell.done:
		return nil
	}
	select {
	case err := <-errCh:
		return err
	case <-b.shell.done:
		return nil
	}
}

// WindowFocusChanged mirrors the content's focus state into the shell.
func (b *Bridge) WindowFocusChanged(focused bool) {
	b.shell.post(FocusChanged{Focused: focused})
}

// AllowNavigation reports whether an in-page navigation may proceed.
// The policy is immutable after startup, so this needs no loop hop.
func (b *Bridge) AllowNavigation(target string) bool {
	return b.shell.policy.AllowNavigation(target)
}
