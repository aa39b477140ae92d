package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartcontractkit/create-starter/internal/ui"
)

// ErrCanceled is returned after the exit func ran for a cancelled prompt.
// With the default exit func the process is gone before it can be observed.
var ErrCanceled = errors.New("operation canceled")

const cancelNotice = "Operation canceled."

type model interface {
	tea.Model
	Phase() Phase
}

// Runner runs prompts one at a time against a terminal.
//
// A cancelled prompt (ctrl+c, esc or a cancelled context) prints a notice
// and ends the process with exit code 1.
type Runner struct {
	input   io.Reader
	output  io.Writer
	exit    func(code int)
	symbols ui.Symbols
	rows    func() int
}

type RunnerOption func(*Runner)

// WithInput reads keystrokes from r instead of the controlling terminal.
func WithInput(r io.Reader) RunnerOption {
	return func(runner *Runner) {
		runner.input = r
	}
}

func WithOutput(w io.Writer) RunnerOption {
	return func(runner *Runner) {
		runner.output = w
	}
}

// WithExit replaces os.Exit for cancelled prompts.
func WithExit(exit func(code int)) RunnerOption {
	return func(runner *Runner) {
		runner.exit = exit
	}
}

func WithSymbols(symbols ui.Symbols) RunnerOption {
	return func(runner *Runner) {
		runner.symbols = symbols
	}
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		output:  os.Stdout,
		exit:    os.Exit,
		symbols: ui.DefaultSymbols(),
		rows:    TerminalRows,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Text asks for a line of text.
func (r *Runner) Text(ctx context.Context, opts TextOptions) (string, error) {
	final, err := r.run(ctx, NewTextModel(opts, r.symbols))
	if err != nil {
		return "", err
	}
	return final.(TextModel).Value(), nil
}

// Confirm asks a yes/no question.
func (r *Runner) Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	final, err := r.run(ctx, NewConfirmModel(opts, r.symbols))
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Value(), nil
}

// SelectString is Select for string values.
func (r *Runner) SelectString(ctx context.Context, opts SelectOptions[string]) (string, error) {
	return Select(ctx, r, opts)
}

// Select asks the user to pick one of opts.Options.
func Select[V comparable](ctx context.Context, r *Runner, opts SelectOptions[V]) (V, error) {
	var zero V
	if len(opts.Options) == 0 {
		return zero, fmt.Errorf("select %q: no options", opts.Message)
	}
	final, err := r.run(ctx, NewSelectModel(opts, r.symbols, r.rows()))
	if err != nil {
		return zero, err
	}
	return final.(SelectModel[V]).Value(), nil
}

func (r *Runner) run(ctx context.Context, m model) (tea.Model, error) {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(r.output),
		tea.WithoutSignalHandler(),
	}
	if r.input != nil {
		opts = append(opts, tea.WithInput(r.input))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) || ctx.Err() != nil {
			return nil, r.cancel()
		}
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}

	if final.(model).Phase() == PhaseCancel {
		return nil, r.cancel()
	}
	return final, nil
}

func (r *Runner) cancel() error {
	fmt.Fprintf(r.output, "%s  %s\n\n", ui.DimStyle.Render(r.symbols.BarEnd), ui.ErrorStyle.Render(cancelNotice))
	r.exit(1)
	return ErrCanceled
}
