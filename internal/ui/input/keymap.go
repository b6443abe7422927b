package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit       key.Binding
	Config     key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	Accept     key.Binding
	Back       key.Binding
	NextPlayer key.Binding
	PrevPlayer key.Binding
}

// TODO make configurable.
var Default = Map{
	Help: key.NewBinding(
		key.WithKeys("?", "H"),
		key.WithHelp("?", "Help"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Config: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Endpoint"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "Down"),
	),
	NextPlayer: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "Next player"),
	),
	PrevPlayer: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift tab", "Prev player"),
	),
}
