package ui

import "github.com/charmbracelet/lipgloss"

// Palette used by prompts, the spinner and plain output.
// High-contrast shades picked for dark terminal backgrounds.
const (
	ColorGray400 = "#9FA7B2"
	ColorGray500 = "#6C7585"
	ColorGray600 = "#4E5560"

	ColorBlue300 = "#97C1FF"
	ColorBlue400 = "#639CFF"
	ColorBlue500 = "#2E7BFF"

	ColorCyan400 = "#51C8E3"

	ColorGreen400 = "#63D78E"
	ColorGreen500 = "#3CC274"

	ColorRed400 = "#F87171"
	ColorRed500 = "#EF4444"

	ColorYellow300 = "#F8D34C"
	ColorYellow400 = "#F9C424"

	ColorPurple400 = "#A787FF"
)

var (
	// TitleStyle - prompt titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorBlue500))

	// ActiveStyle - the phase color of a prompt waiting for input
	ActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorCyan400))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen400))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorRed400))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorYellow400))

	// DimStyle - secondary text, hints, the prompt bar
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray500))

	// FaintStyle - inactive options and cancelled values
	FaintStyle = lipgloss.NewStyle().
			Faint(true)

	StrikeStyle = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// CursorStyle - the block caret in text input
	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBlue300))

	// SpinnerStyle - the animated frame glyph
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPurple400))
)
