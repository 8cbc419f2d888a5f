package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the terminal cull mode.
// It lives in pkg/types so the model and its handlers share one definition.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding

	// Actions
	Mark       key.Binding // Mark/unmark the current image for trashing
	TrashMarks key.Binding // Send marked images to the trash
	Rename     key.Binding
	DateRename key.Binding
	Refresh    key.Binding
}

// DefaultKeyMap returns the standard cull-mode bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous image"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next image"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first image"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last image"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "mark for trash"),
		),
		TrashMarks: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "trash marked"),
		),
		Rename: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "rename"),
		),
		DateRename: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "rename with date"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan directory"),
		),
	}
}
