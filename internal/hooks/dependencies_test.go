package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/create-starter/internal/pipeline"
	"github.com/smartcontractkit/create-starter/internal/prompt"
	"github.com/smartcontractkit/create-starter/internal/testutil"
)

type fakeAsker struct {
	confirm    bool
	pm         string
	confirms   []prompt.ConfirmOptions
	selections []prompt.SelectOptions[string]
}

func (f *fakeAsker) Confirm(_ context.Context, opts prompt.ConfirmOptions) (bool, error) {
	f.confirms = append(f.confirms, opts)
	return f.confirm, nil
}

func (f *fakeAsker) SelectString(_ context.Context, opts prompt.SelectOptions[string]) (string, error) {
	f.selections = append(f.selections, opts)
	return f.pm, nil
}

type fakeDetector []string

func (f fakeDetector) Installed(context.Context) []string { return f }

type fakeRunner struct {
	code  int
	err   error
	calls []runCall
}

type runCall struct {
	command []string
	cwd     string
}

func (f *fakeRunner) RunInstallCommand(_ context.Context, command []string, cwd string) (int, error) {
	f.calls = append(f.calls, runCall{command: command, cwd: cwd})
	return f.code, f.err
}

type spinnerEvent struct {
	message string
	code    int
	stop    bool
}

type fakeSpinner struct {
	events []spinnerEvent
}

func (f *fakeSpinner) Start(_ context.Context, message string) {
	f.events = append(f.events, spinnerEvent{message: message})
}

func (f *fakeSpinner) Stop(message string, code int) {
	f.events = append(f.events, spinnerEvent{message: message, code: code, stop: true})
}

type fixture struct {
	asker   *fakeAsker
	runner  *fakeRunner
	spinner *fakeSpinner
	deps    Dependencies
}

func newFixture(installed ...string) *fixture {
	f := &fixture{
		asker:   &fakeAsker{confirm: true, pm: "pnpm"},
		runner:  &fakeRunner{},
		spinner: &fakeSpinner{},
	}
	f.deps = Dependencies{
		Logger:   testutil.NewTestLogger(),
		Asker:    f.asker,
		Detector: fakeDetector(installed),
		Runner:   f.runner,
		Spinner:  f.spinner,
	}
	return f
}

func newOrchestrator(t *testing.T, template string) *pipeline.Orchestrator {
	t.Helper()
	fetch := pipeline.FetcherFunc(func(context.Context, pipeline.FetchRequest) error { return nil })
	return pipeline.New(testutil.NewTestLogger(), fetch, pipeline.Context{
		ProjectName:         "my-app",
		TargetDirectoryPath: t.TempDir(),
		TemplateName:        template,
	})
}

func TestInstallAfterInterview(t *testing.T) {
	f := newFixture("npm", "pnpm", "yarn")
	f.deps.UserAgent = "yarn/1.22.19 npm/? node/v18.0.0 darwin arm64"
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	require.NoError(t, o.Run(context.Background(), pipeline.FetchRequest{Source: "gh:honojs/starter/templates/nodejs"}))
	assert.Equal(t, pipeline.PhaseCompleted, o.Phase())

	require.Len(t, f.asker.confirms, 1)
	assert.Equal(t, "Do you want to install project dependencies?", f.asker.confirms[0].Message)
	assert.True(t, *f.asker.confirms[0].InitialValue)

	require.Len(t, f.asker.selections, 1)
	sel := f.asker.selections[0]
	assert.Equal(t, "Which package manager do you want to use?", sel.Message)
	assert.Equal(t, "yarn", sel.InitialValue)
	require.Len(t, sel.Options, 3)
	assert.Equal(t, "npm", sel.Options[0].Value)

	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"pnpm", "install"}, f.runner.calls[0].command)
	assert.Equal(t, o.Context().TargetDirectoryPath, f.runner.calls[0].cwd)

	assert.Equal(t, []spinnerEvent{
		{message: "Installing project dependencies"},
		{message: "Installed project dependencies", code: 0, stop: true},
	}, f.spinner.events)
	assert.Equal(t, "pnpm", o.Context().PackageManager)
}

func TestFlagsSkipQuestions(t *testing.T) {
	f := newFixture("npm", "bun")
	install := true
	f.deps.Install = &install
	f.deps.PackageManager = "bun"
	o := newOrchestrator(t, "bun")
	RegisterDependencies(o, "bun", f.deps)

	require.NoError(t, o.Run(context.Background(), pipeline.FetchRequest{}))
	assert.Empty(t, f.asker.confirms)
	assert.Empty(t, f.asker.selections)
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"bun", "install"}, f.runner.calls[0].command)
}

func TestDeclinedInstall(t *testing.T) {
	f := newFixture("npm")
	f.asker.confirm = false
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	require.NoError(t, o.Run(context.Background(), pipeline.FetchRequest{}))
	assert.Len(t, f.asker.confirms, 1)
	assert.Empty(t, f.asker.selections)
	assert.Empty(t, f.runner.calls)
	assert.Empty(t, f.spinner.events)
	assert.False(t, o.Context().InstallRequested)
}

func TestNoInstalledManagers(t *testing.T) {
	f := newFixture()
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	require.NoError(t, o.Run(context.Background(), pipeline.FetchRequest{}))
	assert.Empty(t, f.asker.confirms)
	assert.Empty(t, f.runner.calls)
}

func TestTemplatesWithoutDependencies(t *testing.T) {
	for _, template := range []string{"deno", "netlify"} {
		t.Run(template, func(t *testing.T) {
			f := newFixture("npm")
			o := newOrchestrator(t, template)
			RegisterDependencies(o, template, f.deps)

			assert.Equal(t, 0, o.PreFetchHooks().Len(template))
			assert.Equal(t, 0, o.DependencyHooks().Len(template))
		})
	}
}

func TestInstallFailurePropagatesExitCode(t *testing.T) {
	f := newFixture("npm")
	f.runner.code = 127
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	err := o.Run(context.Background(), pipeline.FetchRequest{})
	require.Error(t, err)
	assert.Equal(t, pipeline.PhaseFailed, o.Phase())
	assert.Equal(t, 127, pipeline.ExitCode(err))

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, "pnpm exited with code 127", installErr.Error())
	assert.Contains(t, err.Error(), "dependencies hook")

	require.Len(t, f.spinner.events, 2)
	assert.Equal(t, spinnerEvent{message: "Failed to install project dependencies", code: 2, stop: true}, f.spinner.events[1])
}

func TestInstallCommandNotStarted(t *testing.T) {
	f := newFixture("npm")
	f.runner.err = errors.New("exec: \"pnpm\": executable file not found in $PATH")
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	err := o.Run(context.Background(), pipeline.FetchRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, pipeline.ExitCode(err))
	assert.True(t, f.spinner.events[len(f.spinner.events)-1].stop)
}

func TestUnknownPackageManager(t *testing.T) {
	f := newFixture("npm")
	f.asker.pm = "cargo"
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	err := o.Run(context.Background(), pipeline.FetchRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown package manager "cargo"`)
	assert.Empty(t, f.runner.calls)
}

func TestInstallWaitsForFetch(t *testing.T) {
	f := newFixture("npm")
	o := newOrchestrator(t, "nodejs")
	RegisterDependencies(o, "nodejs", f.deps)

	ctx := context.Background()
	require.NoError(t, o.RunPreFetch(ctx))
	require.NoError(t, o.TriggerDependencies(ctx))
	require.NoError(t, o.BeginFetch())
	assert.Empty(t, f.runner.calls, "install must wait for the fetch")

	require.NoError(t, o.CompleteFetch(ctx, nil))
	assert.Len(t, f.runner.calls, 1)
}
