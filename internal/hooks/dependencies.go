// Package hooks holds the hook handlers a create run registers with the
// pipeline: the dependency interview and install, and the after-create file
// rewrites.
package hooks

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/packagemanager"
	"github.com/smartcontractkit/create-starter/internal/pipeline"
	"github.com/smartcontractkit/create-starter/internal/prompt"
)

const (
	installMessage       = "Installing project dependencies"
	installedMessage     = "Installed project dependencies"
	installFailedMessage = "Failed to install project dependencies"
)

// Asker asks the dependency interview questions. *prompt.Runner implements it.
type Asker interface {
	Confirm(ctx context.Context, opts prompt.ConfirmOptions) (bool, error)
	SelectString(ctx context.Context, opts prompt.SelectOptions[string]) (string, error)
}

// Detector lists the package managers available on the machine.
type Detector interface {
	Installed(ctx context.Context) []string
}

// Spinner shows progress while the install command runs. *ui.Spinner implements it.
type Spinner interface {
	Start(ctx context.Context, message string)
	Stop(message string, code int)
}

// InstallError is returned when the install command exits non-zero. The
// process exits with the same code.
type InstallError struct {
	Command []string
	Code    int
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command[0], e.Code)
}

// ExitCode implements pipeline.ExitCoder.
func (e *InstallError) ExitCode() int {
	return e.Code
}

// Dependencies configures the dependency interview and install hooks.
type Dependencies struct {
	Logger *zerolog.Logger

	// Install answers the install question when set.
	Install *bool
	// PackageManager answers the package manager question when set.
	PackageManager string
	// UserAgent is npm_config_user_agent, used to preselect a package manager.
	UserAgent string

	Asker    Asker
	Detector Detector
	Runner   packagemanager.CommandRunner
	Spinner  Spinner
}

// RegisterDependencies adds the interview as a pre-fetch hook and the install
// as a dependencies hook of template. Templates that need no install step
// get neither.
func RegisterDependencies(o *pipeline.Orchestrator, template string, deps Dependencies) {
	if slices.Contains(constants.TemplatesWithoutDependencies, template) {
		deps.Logger.Debug().Str("template", template).Msg("Template has no dependency step")
		return
	}

	o.PreFetchHooks().AddHook(deps.interview, template)
	o.DependencyHooks().AddHook(deps.install, template)
}

func (d Dependencies) interview(ctx context.Context, _ pipeline.PreFetchOptions) (pipeline.Decision, error) {
	installed := d.Detector.Installed(ctx)
	if len(installed) == 0 {
		d.Logger.Debug().Msg("No package manager installed, skipping dependency installation")
		return pipeline.Decision{}, nil
	}

	install := true
	if d.Install != nil {
		install = *d.Install
	} else {
		var err error
		install, err = d.Asker.Confirm(ctx, prompt.ConfirmOptions{
			Message:      "Do you want to install project dependencies?",
			InitialValue: prompt.Bool(true),
		})
		if err != nil {
			return pipeline.Decision{}, err
		}
	}
	if !install {
		return pipeline.Decision{}, nil
	}

	pm := d.PackageManager
	if pm == "" {
		options := make([]prompt.SelectOption[string], 0, len(installed))
		for _, name := range installed {
			options = append(options, prompt.SelectOption[string]{Value: name})
		}

		var err error
		pm, err = d.Asker.SelectString(ctx, prompt.SelectOptions[string]{
			Message:      "Which package manager do you want to use?",
			Options:      options,
			InitialValue: packagemanager.Current(d.UserAgent),
		})
		if err != nil {
			return pipeline.Decision{}, err
		}
	}

	return pipeline.Decision{InstallRequested: true, PackageManager: pm}, nil
}

func (d Dependencies) install(ctx context.Context, opts pipeline.InstallOptions) (struct{}, error) {
	if !opts.InstallRequested {
		return struct{}{}, nil
	}

	manager, ok := packagemanager.Lookup(opts.PackageManager)
	if !ok {
		return struct{}{}, fmt.Errorf("unknown package manager %q", opts.PackageManager)
	}
	d.Logger.Debug().Stringer("pm", manager).Str("dir", opts.DirectoryPath).Msg("Installing dependencies")

	d.Spinner.Start(ctx, installMessage)
	code, err := d.Runner.RunInstallCommand(ctx, manager.InstallCommand, opts.DirectoryPath)
	if err != nil {
		d.Spinner.Stop(installFailedMessage, 2)
		return struct{}{}, err
	}
	if code != 0 {
		d.Spinner.Stop(installFailedMessage, 2)
		return struct{}{}, &InstallError{Command: manager.InstallCommand, Code: code}
	}

	d.Spinner.Stop(installedMessage, 0)
	return struct{}{}, nil
}
