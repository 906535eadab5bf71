package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Down        key.Binding
	Up          key.Binding
	MoveDown    key.Binding
	MoveUp      key.Binding
	Left        key.Binding
	Right       key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	New         key.Binding
	Delete      key.Binding
	Category    key.Binding
	Default     key.Binding
	AddTag      key.Binding
	DeleteTag   key.Binding
	Edit        key.Binding
	Rename      key.Binding
	Save        key.Binding
	Yank        key.Binding
	ToggleHelp  key.Binding
	Quit        key.Binding
	Complete    key.Binding
	Submit      key.Binding
	CancelInput key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev column")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next column")),
		MoveLeft:    key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move left")),
		MoveRight:   key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move right")),
		New:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new card")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Category:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category view")),
		Default:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "default view")),
		AddTag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add tag")),
		DeleteTag:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove tag")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename board")),
		Save:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		ToggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Complete:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		CancelInput: key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp is the footer line in normal mode.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.AddTag, k.Category, k.Default, k.ToggleHelp, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Left, k.Right},
		{k.MoveDown, k.MoveUp, k.MoveLeft, k.MoveRight},
		{k.New, k.Delete, k.Edit, k.Yank},
		{k.AddTag, k.DeleteTag, k.Category, k.Default},
		{k.Rename, k.Save, k.ToggleHelp, k.Quit},
	}
}
