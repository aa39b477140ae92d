package prompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

// SelectOption is one choice of a select prompt. Label falls back to the
// formatted Value; Hint is only shown next to the highlighted option.
type SelectOption[V comparable] struct {
	Value V
	Label string
	Hint  string
}

func (o SelectOption[V]) label() string {
	if o.Label != "" {
		return o.Label
	}
	return fmt.Sprint(o.Value)
}

type SelectOptions[V comparable] struct {
	Message string
	Options []SelectOption[V]

	// InitialValue preselects the first option with an equal Value.
	InitialValue V

	// MaxItems limits the visible rows, 0 for as many as the terminal fits.
	MaxItems int
}

// SelectModel is a single-choice list with a windowed view for long lists.
type SelectModel[V comparable] struct {
	opts    SelectOptions[V]
	cursor  int
	state   State
	symbols ui.Symbols
	rows    int
	width   int
}

// NewSelectModel builds a select prompt for a terminal of the given height (0 when unknown).
func NewSelectModel[V comparable](opts SelectOptions[V], symbols ui.Symbols, rows int) SelectModel[V] {
	cursor := 0
	for i, o := range opts.Options {
		if o.Value == opts.InitialValue {
			cursor = i
			break
		}
	}
	return SelectModel[V]{
		opts:    opts,
		cursor:  cursor,
		symbols: symbols,
		rows:    rows,
	}
}

func (m SelectModel[V]) Init() tea.Cmd {
	return activate
}

func (m SelectModel[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state.Phase().Done() {
		return m, nil
	}

	n := len(m.opts.Options)
	switch msg := msg.(type) {
	case activateMsg:
		m.state.Activate()
	case tea.WindowSizeMsg:
		m.rows = msg.Height
		m.width = msg.Width
	case tea.KeyMsg:
		m.state.Activate()
		switch {
		case key.Matches(msg, keys.Cancel):
			m.state.Cancel()
			return m, tea.Quit
		case key.Matches(msg, keys.Prev) && n > 0:
			m.cursor = (m.cursor - 1 + n) % n
		case key.Matches(msg, keys.Next) && n > 0:
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, keys.Submit) && n > 0:
			m.state.Submit()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SelectModel[V]) View() string {
	phase := m.state.Phase()
	f := newFrame(phase, m.symbols, m.opts.Message)

	switch phase {
	case PhaseSubmit:
		return f.line(ui.DimStyle.Render(m.current().label())).String()
	case PhaseCancel:
		return f.line(ui.StrikeStyle.Render(m.current().label())).line("").String()
	}

	rows := LimitOptions(m.opts.Options, m.cursor, MaxItems(m.opts.MaxItems, m.rows), m.symbols.Ellipsis, m.renderOption)
	for _, row := range rows {
		f.line(row)
	}
	return f.end("").String()
}

func (m SelectModel[V]) renderOption(o SelectOption[V], active bool) string {
	label := o.label()
	if m.width > 0 {
		label = ansi.Truncate(label, max(m.width-6, 1), "…")
	}
	if !active {
		return ui.DimStyle.Render(m.symbols.RadioInact) + " " + ui.DimStyle.Render(label)
	}
	row := ui.SuccessStyle.Render(m.symbols.RadioActive) + " " + label
	if o.Hint != "" {
		row += " " + ui.DimStyle.Render("("+o.Hint+")")
	}
	return row
}

func (m SelectModel[V]) current() SelectOption[V] {
	if len(m.opts.Options) == 0 {
		return SelectOption[V]{}
	}
	return m.opts.Options[m.cursor]
}

func (m SelectModel[V]) Phase() Phase {
	return m.state.Phase()
}

// Cursor is the index of the highlighted option.
func (m SelectModel[V]) Cursor() int {
	return m.cursor
}

// Value is the highlighted option's value.
func (m SelectModel[V]) Value() V {
	return m.current().Value
}
