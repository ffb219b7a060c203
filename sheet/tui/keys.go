package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keys a Model reacts to.
type KeyMap struct {
	Open       key.Binding
	Close      key.Binding
	Fullscreen key.Binding
}

// DefaultKeyMap returns the default sheet bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open sheet"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc/c", "close sheet"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Fullscreen}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
