package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	start key.Binding
	stop  key.Binding
	clear key.Binding
	up    key.Binding
	down  key.Binding
	enter key.Binding
	rate  key.Binding
	esc   key.Binding
	quit  key.Binding
}

var defaultKeymap = keymap{
	start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	stop: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "stop"),
	),
	clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	rate: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5"),
		key.WithHelp("0-5", "rate"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
