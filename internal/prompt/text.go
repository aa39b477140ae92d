package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

// TextOptions configures a free-form text question.
type TextOptions struct {
	Message      string
	Placeholder  string
	DefaultValue string // submitted when the input is left empty
	InitialValue string

	// Validate returns a non-empty message to reject the submitted value.
	Validate func(value string) string
}

// TextModel is a single-line text question.
type TextModel struct {
	opts    TextOptions
	input   textinput.Model
	state   State
	symbols ui.Symbols
	value   string
}

func NewTextModel(opts TextOptions, symbols ui.Symbols) TextModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder
	ti.SetValue(opts.InitialValue)
	ti.Focus()

	return TextModel{
		opts:    opts,
		input:   ti,
		symbols: symbols,
	}
}

func (m TextModel) Init() tea.Cmd {
	return activate
}

func (m TextModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state.Phase().Done() {
		return m, nil
	}

	switch msg := msg.(type) {
	case activateMsg:
		m.state.Activate()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Cancel) {
			m.state.Cancel()
			return m, tea.Quit
		}

		// any key leaves initial and error behind
		m.state.Activate()

		if key.Matches(msg, keys.Submit) {
			value := m.input.Value()
			if value == "" {
				value = m.opts.DefaultValue
			}
			if m.opts.Validate != nil {
				if problem := m.opts.Validate(value); problem != "" {
					m.state.Fail(problem)
					return m, nil
				}
			}
			m.value = value
			m.state.Submit()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TextModel) View() string {
	phase := m.state.Phase()
	f := newFrame(phase, m.symbols, m.opts.Message)

	switch phase {
	case PhaseSubmit:
		return f.line(ui.DimStyle.Render(m.value)).String()
	case PhaseCancel:
		value := m.input.Value()
		f.line(ui.StrikeStyle.Render(value))
		if value != "" {
			f.line("")
		}
		return f.String()
	case PhaseError:
		return f.line(withCursor(m.input.Value(), m.input.Position())).end(m.state.ErrorMessage()).String()
	default:
		content := withCursor(m.input.Value(), m.input.Position())
		if m.input.Value() == "" && m.opts.Placeholder != "" {
			content = placeholderWithCursor(m.opts.Placeholder)
		}
		return f.line(content).end("").String()
	}
}

// Phase implements model.
func (m TextModel) Phase() Phase {
	return m.state.Phase()
}

// ErrorMessage is the current validation message, if any.
func (m TextModel) ErrorMessage() string {
	return m.state.ErrorMessage()
}

// Value is the submitted value, or the text typed so far while the prompt is open.
func (m TextModel) Value() string {
	if m.state.Phase() == PhaseSubmit {
		return m.value
	}
	return m.input.Value()
}

// Cursor is the caret position in runes.
func (m TextModel) Cursor() int {
	return m.input.Position()
}
