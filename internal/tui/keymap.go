package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the board bindings. The d key appears twice because its
// meaning depends on the focused pane: delete on tasks, details on the plan.
type keyMap struct {
	focusNext   key.Binding
	up          key.Binding
	down        key.Binding
	toggle      key.Binding
	newItem     key.Binding
	editItem    key.Binding
	deleteTask  key.Binding
	planDetails key.Binding
	deleteStep  key.Binding
	yankID      key.Binding
	toggleNotes key.Binding
	quit        key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		focusNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		toggle:      key.NewBinding(key.WithKeys("enter", "space", " "), key.WithHelp("enter", "toggle")),
		newItem:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		editItem:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		deleteTask:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		planDetails: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		deleteStep:  key.NewBinding(key.WithKeys("D", "shift+d"), key.WithHelp("D", "delete step")),
		yankID:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		toggleNotes: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "notes")),
		quit:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp feeds the footer line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.focusNext, k.toggle, k.newItem, k.editItem, k.deleteTask, k.toggleNotes, k.quit,
	}
}

// FullHelp groups bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.focusNext, k.up, k.down, k.toggleNotes, k.quit},
		{k.toggle, k.newItem, k.editItem, k.deleteTask, k.deleteStep, k.planDetails, k.yankID},
	}
}
