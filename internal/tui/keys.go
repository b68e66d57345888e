package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding

	// Navigation
	Start     key.Binding
	Dashboard key.Binding

	// Invoice actions
	Select    key.Binding
	New       key.Binding
	Print     key.Binding
	Edit      key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Deny      key.Binding

	// Editor
	NextField  key.Binding
	PrevField  key.Binding
	AddItem    key.Binding
	RemoveItem key.Binding
	Template   key.Binding
	Preview    key.Binding
	Save       key.Binding

	// Preview
	ExportPDF  key.Binding
	ExportHTML key.Binding
	ExportText key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Start:      key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("enter", "get started")),
	Dashboard:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "print")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Print:      key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p", "print")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Duplicate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
	Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Confirm:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	Deny:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	NextField:  key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next field")),
	PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	AddItem:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add item")),
	RemoveItem: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove item")),
	Template:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "template")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Preview:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "toggle preview")),
	ExportPDF:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "export pdf")),
	ExportHTML: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "export html")),
	ExportText: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "export text")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
