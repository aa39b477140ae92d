package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

// phaseStyle is the color of the step glyph and the bar for a phase.
func phaseStyle(p Phase) lipgloss.Style {
	switch p {
	case PhaseCancel:
		return ui.ErrorStyle
	case PhaseError:
		return ui.WarningStyle
	case PhaseSubmit:
		return ui.SuccessStyle
	default:
		return ui.ActiveStyle
	}
}

func stepSymbol(p Phase, sym ui.Symbols) string {
	var glyph string
	switch p {
	case PhaseCancel:
		glyph = sym.StepCancel
	case PhaseError:
		glyph = sym.StepError
	case PhaseSubmit:
		glyph = sym.StepSubmit
	default:
		glyph = sym.StepActive
	}
	return phaseStyle(p).Render(glyph)
}

// frameBuilder accumulates the lines of one prompt frame.
type frameBuilder struct {
	phase Phase
	sym   ui.Symbols
	b     strings.Builder
}

// newFrame starts a frame with the gray connector bar and the step title.
func newFrame(p Phase, sym ui.Symbols, message string) *frameBuilder {
	f := &frameBuilder{phase: p, sym: sym}
	f.b.WriteString(ui.DimStyle.Render(sym.Bar))
	f.b.WriteString("\n")
	f.b.WriteString(stepSymbol(p, sym))
	f.b.WriteString("  ")
	f.b.WriteString(message)
	f.b.WriteString("\n")
	return f
}

// line writes content behind the bar. Finished prompts use a gray bar.
func (f *frameBuilder) line(content string) *frameBuilder {
	bar := ui.DimStyle.Render(f.sym.Bar)
	if !f.phase.Done() {
		bar = phaseStyle(f.phase).Render(f.sym.Bar)
	}
	f.b.WriteString(bar)
	if content != "" {
		f.b.WriteString("  ")
		f.b.WriteString(content)
	}
	f.b.WriteString("\n")
	return f
}

// end closes an open prompt with the bar end glyph and an optional note.
func (f *frameBuilder) end(note string) *frameBuilder {
	style := phaseStyle(f.phase)
	f.b.WriteString(style.Render(f.sym.BarEnd))
	if note != "" {
		f.b.WriteString("  ")
		f.b.WriteString(style.Render(note))
	}
	f.b.WriteString("\n")
	return f
}

func (f *frameBuilder) String() string {
	return f.b.String()
}

// withCursor draws value with a reverse-video block at rune position pos.
func withCursor(value string, pos int) string {
	runes := []rune(value)
	if pos >= len(runes) {
		return value + ui.CursorStyle.Render(" ")
	}
	return string(runes[:pos]) + ui.CursorStyle.Render(string(runes[pos])) + string(runes[pos+1:])
}

// placeholderWithCursor puts the block on the first placeholder rune and dims the rest.
func placeholderWithCursor(placeholder string) string {
	runes := []rune(placeholder)
	if len(runes) == 0 {
		return ui.CursorStyle.Render(" ")
	}
	return ui.CursorStyle.Render(string(runes[0])) + ui.DimStyle.Render(string(runes[1:]))
}
