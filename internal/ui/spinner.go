package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrInterrupted is the cancellation cause recorded when the process receives SIGINT or SIGTERM.
var ErrInterrupted = fmt.Errorf("interrupted: %w", context.Canceled)

// dotsCycle is the number of ticks before the "..." suffix starts over.
// The suffix grows by one dot every 8 ticks and is capped at three.
const dotsCycle = 33

// Spinner draws a single animated status line for a long-running operation.
//
// Only one spinner should be active at a time; prompts and spinners share the
// same output stream.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	isTTY   bool
	symbols Symbols

	active  bool
	message string
	program *tea.Program
	doneCh  chan struct{}
	release func() bool
}

type SpinnerOption func(*Spinner)

// WithSpinnerOutput redirects the spinner. Animation is only used when w is a terminal.
func WithSpinnerOutput(w io.Writer) SpinnerOption {
	return func(s *Spinner) {
		s.out = w
		s.isTTY = IsTTY(w)
	}
}

func WithSymbols(symbols Symbols) SpinnerOption {
	return func(s *Spinner) {
		s.symbols = symbols
	}
}

// NewSpinner creates an inactive spinner writing to stdout.
func NewSpinner(opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		out:     os.Stdout,
		isTTY:   IsTTY(os.Stdout),
		symbols: DefaultSymbols(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Start activates the spinner with message. When ctx is cancelled before
// Stop is called, the spinner stops itself with a code derived from the
// cancellation cause (see StopReason).
func (s *Spinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.message = strings.TrimRight(message, ".")
		if s.program != nil {
			go s.program.Send(spinnerMessageMsg(s.message))
		}
		return
	}

	s.active = true
	s.message = strings.TrimRight(message, ".")

	fmt.Fprintln(s.out, DimStyle.Render(s.symbols.Bar))

	if ctx != nil {
		s.release = context.AfterFunc(ctx, func() {
			msg, code := StopReason(context.Cause(ctx))
			s.Stop(msg, code)
		})
	}

	if !s.isTTY {
		s.doneCh = nil
		fmt.Fprintf(s.out, "%s  %s\n", SpinnerStyle.Render(s.symbols.SpinnerFrame[0]), s.message)
		return
	}

	s.doneCh = make(chan struct{})
	s.program = tea.NewProgram(
		newSpinnerModel(s.message, s.symbols),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.doneCh)
}

// Message replaces the text next to the animation.
func (s *Spinner) Message(message string) {
	s.mu.Lock()
	s.message = strings.TrimRight(message, ".")
	p := s.program
	msg := s.message
	s.mu.Unlock()

	if p != nil {
		p.Send(spinnerMessageMsg(msg))
	}
}

// Stop ends the animation and writes a final status line. code 0 renders a
// success glyph, 1 a cancellation glyph and anything else an error glyph.
// An empty message keeps the current one. Stop on an inactive spinner only
// waits for the final line of the previous run to be drawn.
func (s *Spinner) Stop(message string, code int) {
	s.mu.Lock()
	if !s.active {
		done := s.doneCh
		s.mu.Unlock()
		if done != nil {
			<-done
		}
		return
	}

	s.active = false
	if s.release != nil {
		s.release()
		s.release = nil
	}
	if message == "" {
		message = s.message
	}
	line := s.finalLine(message, code)

	p, done := s.program, s.doneCh
	s.program = nil
	if p == nil {
		fmt.Fprintln(s.out, line)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	p.Send(spinnerStopMsg(line))
	<-done
}

// IsActive reports whether the spinner is between Start and Stop.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Spinner) finalLine(message string, code int) string {
	var glyph string
	switch code {
	case 0:
		glyph = SuccessStyle.Render(s.symbols.StepSubmit)
	case 1:
		glyph = ErrorStyle.Render(s.symbols.StepCancel)
	default:
		glyph = ErrorStyle.Render(s.symbols.StepError)
	}
	return fmt.Sprintf("%s  %s", glyph, message)
}

// StopReason maps a cancellation cause to the message and code used to stop an active spinner.
func StopReason(cause error) (string, int) {
	if cause == nil || errors.Is(cause, context.Canceled) {
		return "Canceled", 1
	}
	return "Something went wrong", 2
}

type spinnerMessageMsg string
type spinnerStopMsg string

type spinnerModel struct {
	spinner spinner.Model
	message string
	dots    int
	final   string
	done    bool
}

func newSpinnerModel(message string, symbols Symbols) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: symbols.SpinnerFrame,
		FPS:    time.Duration(symbols.SpinnerDelay) * time.Millisecond,
	}
	s.Style = SpinnerStyle
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerMessageMsg:
		m.message = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		m.final = string(msg)
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		m.dots = (m.dots + 1) % dotsCycle
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return m.final + "\n"
	}
	return fmt.Sprintf("%s  %s%s", m.spinner.View(), m.message, strings.Repeat(".", min(m.dots/8, 3)))
}
