package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Notify  key.Binding
	Send    key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("→/n", "next app"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("←/p", "previous app"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Notify: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "message"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Notify, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Refresh},
		{k.Notify, k.Help, k.Quit},
	}
}

// composeKeys is the help shown while typing a message
type composeKeys struct{ keyMap }

func (k composeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Cancel}
}

func (k composeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
