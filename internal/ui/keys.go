package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the presenter's key bindings.
type KeyMap struct {
	Quit      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Execute   key.Binding
	Sort      key.Binding
	LimitUp   key.Binding
	LimitDown key.Binding
	History   key.Binding
	Delete    key.Binding
	Help      key.Binding
	Close     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect / select")),
		Execute:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "execute query")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by column")),
		LimitUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more rows")),
		LimitDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "fewer rows")),
		History:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "query history")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete history entry")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show this help")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close popup")),
	}
}
