package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Malloc   key.Binding
	Calloc   key.Binding
	Free     key.Binding
	Realloc  key.Binding
	Step     key.Binding
	Burst    key.Binding
	Validate key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Malloc: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "malloc"),
		),
		Calloc: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "calloc"),
		),
		Free: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "free"),
		),
		Realloc: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "realloc"),
		),
		Step: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "random op"),
		),
		Burst: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "burst x50"),
		),
		Validate: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "validate"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
