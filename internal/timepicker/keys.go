package timepicker

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the picker's keybindings. Digits and editing keys go to the
// focused field and are not listed here.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Open      key.Binding
	Up        key.Binding
	Down      key.Binding
	ListUp    key.Binding
	ListDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Now       key.Binding
	Confirm   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "minute")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "hour")),
		Open:      key.NewBinding(key.WithKeys("alt+down", "ctrl+o"), key.WithHelp("ctrl+o", "open list")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		ListUp:    key.NewBinding(key.WithKeys("k")),
		ListDown:  key.NewBinding(key.WithKeys("j")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		Now:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "now")),
		Confirm:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Open, k.Up, k.Down, k.Now, k.Confirm}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Open},
		{k.Up, k.Down, k.Left},
		{k.Now, k.Confirm},
	}
}
