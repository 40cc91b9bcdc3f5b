// Package tray implements the system tray icon and its context menu.
package tray

// Hooks receives tray interactions. Implementations post the interaction
// to the shell's event loop; the tray itself never mutates window state.
type Hooks interface {
	// OnToggle is fired by the Show/Hide/Focus menu item.
	OnToggle()
	// OnQuit is fired by the Quit menu item. The handler must record
	// quit intent before terminating the application.
	OnQuit()
}
