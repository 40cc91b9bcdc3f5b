package tray

import (
	"github.com/getlantern/systray"
)

var (
	hooks  Hooks
	onExit func()

	titleItem  *systray.MenuItem
	toggleItem *systray.MenuItem
	quitItem   *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine.
// onReadyFn is called once the icon exists (apply the initial menu here).
// onExitFn is called when the tray exits.
func Run(h Hooks, onReadyFn, onExitFn func()) {
	hooks = h
	onExit = onExitFn
	systray.Run(func() {
		onReady()
		if onReadyFn != nil {
			onReadyFn()
		}
	}, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// Refresh replaces the menu with the model for the given window state.
// Called on initial window-ready and on every visibility or focus
// transition.
func Refresh(visible, focused bool) {
	if toggleItem == nil {
		return
	}
	m := BuildMenu(visible, focused)
	titleItem.SetTitle(m.Title)
	toggleItem.SetTitle(m.ToggleLabel)
	quitItem.SetTitle(m.QuitLabel)
	systray.SetTooltip(m.Title)
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)

	m := BuildMenu(false, false)
	titleItem = systray.AddMenuItem(m.Title, "")
	titleItem.Disable()
	systray.AddSeparator()
	toggleItem = systray.AddMenuItem(m.ToggleLabel, "")
	quitItem = systray.AddMenuItem(m.QuitLabel, "")

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-toggleItem.ClickedCh:
			if hooks != nil {
				hooks.OnToggle()
			}
		case <-quitItem.ClickedCh:
			if hooks != nil {
				hooks.OnQuit()
			}
		}
	}
}
