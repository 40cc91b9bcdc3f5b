package tray

// ToggleAction is what a tray interaction should do to the window.
type ToggleAction int

const (
	// ActionShow makes the window visible and focused.
	ActionShow ToggleAction = iota
	// ActionHide hides the window to the tray.
	ActionHide
	// ActionFocus brings an already-visible window to the front.
	ActionFocus
)

// MenuModel is the full context-menu definition. It is a pure function
// of window visibility and focus; the controller replaces the whole
// model on every visibility or focus transition rather than editing
// items in place.
type MenuModel struct {
	Title       string
	ToggleLabel string
	Toggle      ToggleAction
	QuitLabel   string
}

// BuildMenu returns the menu for the given window state. The toggle
// item carries the Activate decision for that state, labelled with what
// it will do.
func BuildMenu(visible, focused bool) MenuModel {
	m := MenuModel{
		Title:     "Cinder",
		QuitLabel: "Quit Cinder",
	}
	m.Toggle = Activate(visible, focused)
	switch m.Toggle {
	case ActionHide:
		m.ToggleLabel = "Hide"
	case ActionFocus:
		m.ToggleLabel = "Focus"
	default:
		m.ToggleLabel = "Show"
	}
	return m
}

// Activate resolves a tray activation. Hidden windows are shown,
// visible focused windows are hidden, and visible unfocused windows are
// brought to the front without hiding. A plain two-way toggle here
// would steal the window from a user who merely lost focus.
func Activate(visible, focused bool) ToggleAction {
	switch {
	case !visible:
		return ActionShow
	case focused:
		return ActionHide
	default:
		return ActionFocus
	}
}
