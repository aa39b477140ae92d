package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Prev   key.Binding
	Next   key.Binding
	Yes    key.Binding
	No     key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel")),
	Prev:   key.NewBinding(key.WithKeys("up", "left", "k", "h"), key.WithHelp("↑/k", "previous")),
	Next:   key.NewBinding(key.WithKeys("down", "right", "j", "l"), key.WithHelp("↓/j", "next")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
}

// activateMsg is sent once by every prompt's Init and moves it out of PhaseInitial.
type activateMsg struct{}

func activate() tea.Msg {
	return activateMsg{}
}
