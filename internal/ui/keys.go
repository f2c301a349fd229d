package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Top     key.Binding
	Bottom  key.Binding

	// Job actions
	Pause      key.Binding
	StartNow   key.Binding
	Verify     key.Binding
	Reannounce key.Binding
	Rename     key.Binding
	Add        key.Binding
	Remove     key.Binding
	Columns    key.Binding

	// File tree
	PriorityUp   key.Binding
	PriorityDown key.Binding

	// Overlays
	Toggle       key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	SortBy       key.Binding
	TogglePaused key.Binding
	ToggleDelete key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Back / collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Open / expand"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / close"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Job actions
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pause / resume"),
		),
		StartNow: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Start now"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Verify data"),
		),
		Reannounce: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Reannounce"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add torrent"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Columns & sort"),
		),

		// File tree
		PriorityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Raise priority"),
		),
		PriorityDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Lower priority"),
		),

		// Overlays
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Toggle"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Move column up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Move column down"),
		),
		SortBy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by column"),
		),
		TogglePaused: key.NewBinding(
			key.WithKeys("p", " ", "space"),
			key.WithHelp("p", "Toggle start paused"),
		),
		ToggleDelete: key.NewBinding(
			key.WithKeys("d", " ", "space"),
			key.WithHelp("d", "Toggle delete data"),
		),
	}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Back, k.Top, k.Bottom},
		// Jobs
		{k.Pause, k.StartNow, k.Verify, k.Reannounce, k.Rename, k.Add, k.Remove, k.Columns},
		// Files
		{k.PriorityUp, k.PriorityDown},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
