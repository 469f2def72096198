package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextFld   key.Binding
	PrevFld   key.Binding
	Submit    key.Binding
	Logout    key.Binding
	Switch    key.Binding
	Process   key.Binding
	NewLoan   key.Binding
	Search    key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		NextFld:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevFld:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Logout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
		Switch:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "loans/payments")),
		Process:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "process payment")),
		NewLoan:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new loan")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
