// Package pipeline sequences the side effects of a scaffolding run: the
// pre-fetch interview, the template fetch, dependency installation and the
// after-create rewrites.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smartcontractkit/create-starter/internal/hook"
)

// Hook event names, used in PhaseError.
const (
	HookPreFetch     = "pre-fetch"
	HookDependencies = "dependencies"
	HookAfterCreate  = "after-create"
)

// Orchestrator owns the phase state machine of one run and the hook
// registries it applies. Every registry is keyed by template name.
//
// Dependency hooks never start before the template is fetched: a dependency
// trigger that arrives earlier is queued and released by CompleteFetch.
type Orchestrator struct {
	log     *zerolog.Logger
	fetcher Fetcher

	preFetch     *hook.Registry[PreFetchOptions, Decision]
	dependencies *hook.Registry[InstallOptions, struct{}]
	afterCreate  *hook.Registry[AfterCreateOptions, struct{}]

	phase       Phase
	pctx        Context
	depsQueued  bool
	err         error
	onCompleted []func(Context)
}

func New(log *zerolog.Logger, fetcher Fetcher, pctx Context) *Orchestrator {
	return &Orchestrator{
		log:          log,
		fetcher:      fetcher,
		preFetch:     hook.NewRegistry[PreFetchOptions, Decision](),
		dependencies: hook.NewRegistry[InstallOptions, struct{}](),
		afterCreate:  hook.NewRegistry[AfterCreateOptions, struct{}](),
		phase:        PhaseFetchPending,
		pctx:         pctx,
	}
}

func (o *Orchestrator) PreFetchHooks() *hook.Registry[PreFetchOptions, Decision] {
	return o.preFetch
}

func (o *Orchestrator) DependencyHooks() *hook.Registry[InstallOptions, struct{}] {
	return o.dependencies
}

func (o *Orchestrator) AfterCreateHooks() *hook.Registry[AfterCreateOptions, struct{}] {
	return o.afterCreate
}

// OnCompleted registers fn to run once every phase finished without error.
func (o *Orchestrator) OnCompleted(fn func(Context)) {
	o.onCompleted = append(o.onCompleted, fn)
}

func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Context returns a copy of the accumulated context.
func (o *Orchestrator) Context() Context {
	return o.pctx
}

// Err returns the failure that moved the pipeline to PhaseFailed.
func (o *Orchestrator) Err() error {
	return o.err
}

// RunPreFetch applies the pre-fetch hooks of the template and merges their
// decisions into the context.
func (o *Orchestrator) RunPreFetch(ctx context.Context) error {
	if o.phase != PhaseFetchPending {
		return fmt.Errorf("%w: pre-fetch hooks in %s", ErrInvalidTransition, o.phase)
	}

	decisions, err := o.preFetch.ApplyHook(ctx, o.pctx.TemplateName, PreFetchOptions{
		TemplateName:  o.pctx.TemplateName,
		DirectoryPath: o.pctx.TargetDirectoryPath,
	})
	if err != nil {
		return o.fail(HookPreFetch, err)
	}

	for _, d := range decisions {
		if d.InstallRequested {
			o.pctx.InstallRequested = true
		}
		if d.PackageManager != "" {
			o.pctx.PackageManager = d.PackageManager
		}
	}
	o.log.Debug().EmbedObject(o.pctx).Msg("Pre-fetch hooks applied")
	return nil
}

// BeginFetch marks the template download as started.
func (o *Orchestrator) BeginFetch() error {
	return o.transition(PhaseFetching)
}

// CompleteFetch records the outcome of the download. On success any queued
// dependency trigger runs now; on failure no post-fetch hook ever runs.
func (o *Orchestrator) CompleteFetch(ctx context.Context, fetchErr error) error {
	if o.phase != PhaseFetching {
		return fmt.Errorf("%w: fetch completed in %s", ErrInvalidTransition, o.phase)
	}
	if fetchErr != nil {
		o.depsQueued = false
		return o.fail("", fetchErr)
	}
	if err := o.transition(PhaseFetched); err != nil {
		return err
	}

	if o.depsQueued {
		o.depsQueued = false
		return o.install(ctx)
	}
	return nil
}

// TriggerDependencies requests dependency installation followed by the
// after-create rewrites. Before the fetch completed the request is queued.
func (o *Orchestrator) TriggerDependencies(ctx context.Context) error {
	switch o.phase {
	case PhaseFetchPending, PhaseFetching:
		if !o.depsQueued {
			o.log.Debug().Stringer("phase", o.phase).Msg("Dependencies queued until the template is fetched")
		}
		o.depsQueued = true
		return nil
	case PhaseFetched:
		return o.install(ctx)
	default:
		return fmt.Errorf("%w: dependencies triggered in %s", ErrInvalidTransition, o.phase)
	}
}

// Run drives a whole run: pre-fetch hooks, the fetch, dependency hooks,
// after-create hooks. Installation is requested up front and held back by
// the fetch barrier.
func (o *Orchestrator) Run(ctx context.Context, req FetchRequest) error {
	if err := o.RunPreFetch(ctx); err != nil {
		return err
	}
	if err := o.TriggerDependencies(ctx); err != nil {
		return err
	}
	if err := o.BeginFetch(); err != nil {
		return err
	}

	if req.Destination == "" {
		req.Destination = o.pctx.TargetDirectoryPath
	}
	return o.CompleteFetch(ctx, o.fetcher.FetchTemplate(ctx, req))
}

func (o *Orchestrator) install(ctx context.Context) error {
	if err := o.transition(PhaseInstalling); err != nil {
		return err
	}
	_, err := o.dependencies.ApplyHook(ctx, o.pctx.TemplateName, InstallOptions{
		DirectoryPath:    o.pctx.TargetDirectoryPath,
		PackageManager:   o.pctx.PackageManager,
		InstallRequested: o.pctx.InstallRequested,
	})
	if err != nil {
		return o.fail(HookDependencies, err)
	}

	if err := o.transition(PhaseRewriting); err != nil {
		return err
	}
	_, err = o.afterCreate.ApplyHook(ctx, o.pctx.TemplateName, AfterCreateOptions{
		ProjectName:    o.pctx.ProjectName,
		DirectoryPath:  o.pctx.TargetDirectoryPath,
		PackageManager: o.pctx.PackageManager,
	})
	if err != nil {
		return o.fail(HookAfterCreate, err)
	}

	if err := o.transition(PhaseCompleted); err != nil {
		return err
	}
	for _, fn := range o.onCompleted {
		fn(o.pctx)
	}
	return nil
}

func (o *Orchestrator) transition(to Phase) error {
	if !canTransition(o.phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.phase, to)
	}
	o.log.Debug().Stringer("from", o.phase).Stringer("to", to).EmbedObject(o.pctx).Msg("Pipeline transition")
	o.phase = to
	return nil
}

func (o *Orchestrator) fail(hookName string, err error) error {
	pe := &PhaseError{Phase: o.phase, Hook: hookName, Err: err}
	o.log.Debug().Err(err).Stringer("phase", o.phase).Str("hook", hookName).Msg("Pipeline failed")
	o.phase = PhaseFailed
	o.err = pe
	return pe
}
