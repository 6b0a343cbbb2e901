package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer bindings.
type KeyMap struct {
	Quit       key.Binding
	ToggleView key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Copy       key.Binding
	Save       key.Binding
	Help       key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleView: key.NewBinding(key.WithKeys("t", "tab"), key.WithHelp("t", "switch view")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl-b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("ctrl+f", "pgdown", " "), key.WithHelp("ctrl-f", "page down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy document")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save results")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.ToggleView, k.Down, k.Up, k.PageDown, k.PageUp, k.Top, k.Bottom, k.Copy, k.Save, k.Help, k.Quit}
}
