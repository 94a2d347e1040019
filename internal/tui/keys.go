package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Jump      key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	ClearPage key.Binding
	Focus     key.Binding
	Deselect  key.Binding
	Filter    key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next page")),
		Jump:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to page")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle row")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		ClearPage: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear page")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Deselect:  key.NewBinding(key.WithKeys("d", "enter", "delete", "backspace"), key.WithHelp("d", "deselect")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter selection")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PrevPage, k.NextPage, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Jump},
		{k.Toggle, k.SelectAll, k.ClearPage},
		{k.Focus, k.Deselect, k.Filter, k.Back},
		{k.Help, k.Quit},
	}
}
