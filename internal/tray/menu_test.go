package tray

import "testing"

func TestBuildMenuToggleCarriesActivateDecision(t *testing.T) {
	tests := []struct {
		name    string
		visible bool
		focused bool
		label   string
		action  ToggleAction
	}{
		{name: "hidden offers show", visible: false, focused: false, label: "Show", action: ActionShow},
		{name: "hidden focused still offers show", visible: false, focused: true, label: "Show", action: ActionShow},
		{name: "visible focused offers hide", visible: true, focused: true, label: "Hide", action: ActionHide},
		{name: "visible unfocused offers focus", visible: true, focused: false, label: "Focus", action: ActionFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMenu(tt.visible, tt.focused)
			if m.ToggleLabel != tt.label {
				t.Errorf("toggle label = %q, want %q", m.ToggleLabel, tt.label)
			}
			if m.Toggle != tt.action {
				t.Errorf("toggle action = %v, want %v", m.Toggle, tt.action)
			}
			if m.Toggle != Activate(tt.visible, tt.focused) {
				t.Error("menu toggle must match the Activate decision for the same state")
			}
		})
	}
}

func TestBuildMenuLabelTracksStateSequence(t *testing.T) {
	// For any sequence of transitions the toggle label must describe
	// what a click will do in the current state.
	sequence := []struct {
		visible bool
		focused bool
	}{
		{true, true}, {false, false}, {true, false},
		{true, true}, {false, false}, {true, true},
	}

	for i, st := range sequence {
		m := BuildMenu(st.visible, st.focused)
		switch {
		case !st.visible && m.ToggleLabel != "Show":
			t.Errorf("step %d: hidden, toggle = %q, want Show", i, m.ToggleLabel)
		case st.visible && st.focused && m.ToggleLabel != "Hide":
			t.Errorf("step %d: visible+focused, toggle = %q, want Hide", i, m.ToggleLabel)
		case st.visible && !st.focused && m.ToggleLabel != "Focus":
			t.Errorf("step %d: visible+unfocused, toggle = %q, want Focus", i, m.ToggleLabel)
		}
	}
}

func TestActivateThreeWayBranch(t *testing.T) {
	tests := []struct {
		name     string
		visible  bool
		focused  bool
		expected ToggleAction
	}{
		{name: "hidden is shown", visible: false, focused: false, expected: ActionShow},
		{name: "hidden focused is still shown", visible: false, focused: true, expected: ActionShow},
		{name: "visible and focused is hidden", visible: true, focused: true, expected: ActionHide},
		{name: "visible but unfocused is focused", visible: true, focused: false, expected: ActionFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Activate(tt.visible, tt.focused); got != tt.expected {
				t.Errorf("Activate(%v, %v) = %v, want %v", tt.visible, tt.focused, got, tt.expected)
			}
		})
	}
}
