package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	nextPage key.Binding
	prevPage key.Binding
	analyze  key.Binding
	refresh  key.Binding
	create   key.Binding
	submit   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		nextPage: key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]", "next page")),
		prevPage: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[", "prev page")),
		analyze:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyze")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new ticket")),
		submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.nextPage, k.prevPage},
		{k.analyze, k.refresh, k.create},
		{k.submit, k.quit},
	}
}
