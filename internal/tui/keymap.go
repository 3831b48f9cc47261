package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	NextView  key.Binding
	PrevView  key.Binding
	Home      key.Binding
	History   key.Binding
	Stats     key.Binding
	Reference key.Binding
	Up        key.Binding
	Down      key.Binding

	// Actions
	Submit   key.Binding
	Select   key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Refresh  key.Binding
	Reset    key.Binding

	// Statistics timeframes
	Week  key.Binding
	Month key.Binding
	All   key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous view"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "classify"),
		),
		History: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "history"),
		),
		Stats: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "statistics"),
		),
		Reference: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "environmental impact"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "classify selection"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select/classify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete entry"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/Esc", "cancel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "clear selection"),
		),

		Week: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "last 7 days"),
		),
		Month: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "last 30 days"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all time"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Help, k.ForceQuit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.PrevView, k.Home, k.History, k.Stats, k.Reference},
		{k.Select, k.Submit, k.Reset, k.Up, k.Down},
		{k.Delete, k.ClearAll, k.Confirm, k.Cancel, k.Refresh},
		{k.Week, k.Month, k.All},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
