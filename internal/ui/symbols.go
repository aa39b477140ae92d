package ui

import (
	"os"
	"runtime"
	"strings"
)

// Symbols is the glyph set used to draw prompts and the spinner.
type Symbols struct {
	StepActive   string
	StepCancel   string
	StepError    string
	StepSubmit   string
	Bar          string
	BarEnd       string
	RadioActive  string
	RadioInact   string
	Ellipsis     string
	Check        string
	Cross        string
	SpinnerDelay int // milliseconds between frames
	SpinnerFrame []string
}

var unicodeSymbols = Symbols{
	StepActive:   "◆",
	StepCancel:   "■",
	StepError:    "▲",
	StepSubmit:   "◇",
	Bar:          "│",
	BarEnd:       "└",
	RadioActive:  "●",
	RadioInact:   "○",
	Ellipsis:     "...",
	Check:        "✔",
	Cross:        "×",
	SpinnerDelay: 80,
	SpinnerFrame: []string{"◒", "◐", "◓", "◑"},
}

var asciiSymbols = Symbols{
	StepActive:   "*",
	StepCancel:   "x",
	StepError:    "x",
	StepSubmit:   "o",
	Bar:          "|",
	BarEnd:       "—",
	RadioActive:  ">",
	RadioInact:   " ",
	Ellipsis:     "...",
	Check:        "v",
	Cross:        "x",
	SpinnerDelay: 120,
	SpinnerFrame: []string{"•", "o", "O", "0"},
}

// SymbolsFor returns the unicode glyph set when unicode is true and the ASCII fallback otherwise.
func SymbolsFor(unicode bool) Symbols {
	if unicode {
		return unicodeSymbols
	}
	return asciiSymbols
}

// DefaultSymbols returns the glyph set matching the current terminal.
func DefaultSymbols() Symbols {
	return SymbolsFor(IsUnicodeSupported())
}

// IsUnicodeSupported reports whether the terminal is expected to render the unicode glyph set.
func IsUnicodeSupported() bool {
	return unicodeSupported(runtime.GOOS, os.Getenv)
}

func unicodeSupported(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return getenv("TERM") != "linux"
	}

	if getenv("WT_SESSION") != "" || getenv("TERMINUS_SUBLIME") != "" || getenv("ConEmuTask") == "{cmd::Cmder}" {
		return true
	}

	switch getenv("TERM_PROGRAM") {
	case "Terminus-Sublime", "vscode":
		return true
	}

	switch getenv("TERM") {
	case "xterm-256color", "alacritty", "rxvt-unicode", "rxvt-unicode-256color":
		return true
	}

	return strings.HasPrefix(getenv("TERMINAL_EMULATOR"), "JetBrains")
}
