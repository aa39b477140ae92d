package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

type ConfirmOptions struct {
	Message  string
	Active   string // label of the true answer, "Yes" when empty
	Inactive string // label of the false answer, "No" when empty

	// InitialValue is the preselected answer. nil means true.
	InitialValue *bool
}

// Bool returns a pointer to v, for ConfirmOptions.InitialValue.
func Bool(v bool) *bool {
	return &v
}

// ConfirmModel is a yes/no question.
type ConfirmModel struct {
	opts    ConfirmOptions
	value   bool
	state   State
	symbols ui.Symbols
}

func NewConfirmModel(opts ConfirmOptions, symbols ui.Symbols) ConfirmModel {
	if opts.Active == "" {
		opts.Active = "Yes"
	}
	if opts.Inactive == "" {
		opts.Inactive = "No"
	}
	value := true
	if opts.InitialValue != nil {
		value = *opts.InitialValue
	}
	return ConfirmModel{opts: opts, value: value, symbols: symbols}
}

func (m ConfirmModel) Init() tea.Cmd {
	return activate
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state.Phase().Done() {
		return m, nil
	}

	switch msg := msg.(type) {
	case activateMsg:
		m.state.Activate()
	case tea.KeyMsg:
		m.state.Activate()
		switch {
		case key.Matches(msg, keys.Cancel):
			m.state.Cancel()
			return m, tea.Quit
		case key.Matches(msg, keys.Yes):
			m.value = true
			m.state.Submit()
			return m, tea.Quit
		case key.Matches(msg, keys.No):
			m.value = false
			m.state.Submit()
			return m, tea.Quit
		case key.Matches(msg, keys.Prev), key.Matches(msg, keys.Next):
			m.value = !m.value
		case key.Matches(msg, keys.Submit):
			m.state.Submit()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	phase := m.state.Phase()
	f := newFrame(phase, m.symbols, m.opts.Message)

	switch phase {
	case PhaseSubmit:
		return f.line(ui.DimStyle.Render(m.label())).String()
	case PhaseCancel:
		return f.line(ui.StrikeStyle.Render(m.label())).line("").String()
	default:
		return f.line(m.radio(m.opts.Active, m.value) + " " + ui.DimStyle.Render("/") + " " + m.radio(m.opts.Inactive, !m.value)).end("").String()
	}
}

func (m ConfirmModel) radio(label string, selected bool) string {
	if selected {
		return ui.SuccessStyle.Render(m.symbols.RadioActive) + " " + label
	}
	return ui.DimStyle.Render(m.symbols.RadioInact) + " " + ui.DimStyle.Render(label)
}

func (m ConfirmModel) label() string {
	if m.value {
		return m.opts.Active
	}
	return m.opts.Inactive
}

func (m ConfirmModel) Phase() Phase {
	return m.state.Phase()
}

func (m ConfirmModel) Value() bool {
	return m.value
}
