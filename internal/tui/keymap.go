package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Categories
	Recruit      key.Binding
	Order        key.Binding
	Work         key.Binding
	NextCategory key.Binding

	// Actions
	Submit     key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	Detail     key.Binding
	FocusInput key.Binding
	FocusList  key.Binding

	// Application
	Quit       key.Binding
	ForceQuit  key.Binding
	ToggleHelp key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),

		Recruit: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "채용"),
		),
		Order: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "예약"),
		),
		Work: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "업무"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next category"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "analyze & register"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete event"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "toggle detail"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit text"),
		),
		FocusList: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "leave input"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextCategory, k.FocusInput, k.Delete, k.ToggleHelp, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Recruit, k.Order, k.Work, k.NextCategory},
		{k.Up, k.Down, k.Detail},
		{k.FocusInput, k.FocusList, k.Submit},
		{k.Delete, k.Refresh},
		{k.ToggleHelp, k.Quit, k.ForceQuit},
	}
}

// inputKeyMap limits the bindings that apply while the text input has focus.
func (k KeyMap) inputKeyMap() KeyMap {
	return KeyMap{
		NextCategory: k.NextCategory,
		Submit:       k.Submit,
		FocusList:    k.FocusList,
		ForceQuit:    k.ForceQuit,
	}
}
