package packagemanager

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// CommandRunner runs an install command in cwd and reports its exit code.
// A command that could not be started at all is an error.
type CommandRunner interface {
	RunInstallCommand(ctx context.Context, command []string, cwd string) (int, error)
}

// ExecRunner runs commands as subprocesses. Output is captured so that it
// does not tear the spinner line; it is logged when the command fails.
type ExecRunner struct {
	logger *zerolog.Logger
}

func NewExecRunner(logger *zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) RunInstallCommand(ctx context.Context, command []string, cwd string) (int, error) {
	if len(command) == 0 {
		return 0, errors.New("empty install command")
	}
	r.logger.Debug().Msgf("Running command: %s in directory: %s", strings.Join(command, " "), cwd)

	// #nosec G204 -- command comes from the known manager table
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = cwd

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Error().Err(err).Msgf("Command failed: %s\nOutput:\n%s", strings.Join(command, " "), output)
			// -1 means the process was killed by a signal, e.g. on Ctrl+C.
			if code := exitErr.ExitCode(); code > 0 {
				return code, nil
			}
			return 1, nil
		}
		return 0, fmt.Errorf("failed to run %s: %w", command[0], err)
	}

	r.logger.Debug().Msgf("Command succeeded: %s", strings.Join(command, " "))
	return 0, nil
}
