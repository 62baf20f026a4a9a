package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Save   key.Binding
	Load   key.Binding
	Theme  key.Binding
	Quit   key.Binding
	Exit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Delete: key.NewBinding(key.WithKeys("d", "delete", "ctrl+d"), key.WithHelp("d", "delete")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Load:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "load")),
		Theme:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Exit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q", "esc"), key.WithHelp("esc", "save & quit")),
	}
}

// inputHelp and listHelp are the bindings shown in the footer for each focus.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Add, k.Focus, k.Save, k.Load, k.Theme, k.Exit}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, k.Focus, k.Save, k.Load, k.Theme, k.Quit}
}
