package panel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Suspend   key.Binding
	Resume    key.Binding
	DarkMode  key.Binding
	Focus     key.Binding
	Save      key.Binding
	Blur      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Suspend: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suspend now"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume all"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark mode"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Suspend, k.Resume, k.Focus, k.Save, k.DarkMode, k.Quit}
}
