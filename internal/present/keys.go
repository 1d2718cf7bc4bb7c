package present

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Previous  key.Binding
	First     key.Binding
	Last      key.Binding
	Section   key.Binding
	ClearNum  key.Binding
	ToggleTOC key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " ", "pgdown"),
			key.WithHelp("→/l/space", "next slide"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "p", "backspace", "pgup"),
			key.WithHelp("←/h", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("[n]g", "first slide or slide n"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last slide"),
		),
		Section: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("n⏎", "jump to section n"),
		),
		ClearNum: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear number"),
		),
		ToggleTOC: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table of contents"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.ToggleTOC, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Section, k.ClearNum, k.ToggleTOC},
		{k.Help, k.Quit},
	}
}
