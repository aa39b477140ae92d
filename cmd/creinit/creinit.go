package creinit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/hooks"
	"github.com/smartcontractkit/create-starter/internal/packagemanager"
	"github.com/smartcontractkit/create-starter/internal/pipeline"
	"github.com/smartcontractkit/create-starter/internal/prompt"
	"github.com/smartcontractkit/create-starter/internal/runtime"
	"github.com/smartcontractkit/create-starter/internal/settings"
	"github.com/smartcontractkit/create-starter/internal/templateconfig"
	"github.com/smartcontractkit/create-starter/internal/templaterepo"
	"github.com/smartcontractkit/create-starter/internal/transformation"
	"github.com/smartcontractkit/create-starter/internal/ui"
	"github.com/smartcontractkit/create-starter/internal/validation"
)

// ErrDirectoryNotEmpty is returned when the user declines to write into a
// non-empty target directory.
var ErrDirectoryNotEmpty = errors.New("target directory is not empty")

type Inputs struct {
	Target         string
	ProjectName    string `validate:"project_name" cli:"project name"`
	Template       string `validate:"omitempty,template_name" cli:"--template"`
	PackageManager string `validate:"omitempty,package_manager" cli:"--pm"`
	Install        *bool
	Offline        bool
}

// flagInputs are the Inputs that come from flags alone, checked before the
// interview starts.
type flagInputs struct {
	Template       string `validate:"omitempty,template_name" cli:"--template"`
	PackageManager string `validate:"omitempty,package_manager" cli:"--pm"`
}

// Asker is the prompt surface of a create run. *prompt.Runner implements it.
type Asker interface {
	hooks.Asker
	Text(ctx context.Context, opts prompt.TextOptions) (string, error)
}

// New returns the create command. The root command runs the same flow.
func New(runtimeContext *runtime.Context) *cobra.Command {
	createCmd := &cobra.Command{
		Use:     "create [target]",
		Aliases: []string{"init"},
		Short:   "Create a new project from a starter template",
		Long: `Create a new project from a starter template.

The template is downloaded into the target directory, the project name is
written into package.json and, if requested, dependencies are installed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunE(runtimeContext),
	}

	settings.AddCreateFlags(createCmd)

	return createCmd
}

// RunE resolves, validates and executes a create run.
func RunE(runtimeContext *runtime.Context) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return newHandler(runtimeContext).run(cmd.Context(), args, runtimeContext.Viper)
	}
}

type handler struct {
	log       *zerolog.Logger
	version   string
	templates templateconfig.Config
	userAgent string

	asker    Asker
	detector hooks.Detector
	runner   packagemanager.CommandRunner
	spinner  hooks.Spinner
	fetcher  pipeline.Fetcher
	exit     func(code int)
	getwd    func() (string, error)
}

func newHandler(ctx *runtime.Context) *handler {
	h := &handler{
		log:       ctx.Logger,
		version:   ctx.Version,
		templates: ctx.Templates,
		asker:     prompt.NewRunner(),
		detector:  packagemanager.NewDetector(ctx.Logger),
		runner:    packagemanager.NewExecRunner(ctx.Logger),
		spinner:   ui.NewSpinner(),
		exit:      os.Exit,
		getwd:     os.Getwd,
	}
	if ctx.Settings != nil {
		h.userAgent = ctx.Settings.UserAgent
	}
	return h
}

func (h *handler) run(ctx context.Context, args []string, v *viper.Viper) error {
	inputs, err := h.ResolveInputs(args, v)
	if err != nil {
		return err
	}
	if err := h.ValidateFlags(inputs); err != nil {
		return err
	}
	return h.Execute(ctx, inputs)
}

func (h *handler) ResolveInputs(args []string, v *viper.Viper) (Inputs, error) {
	inputs := Inputs{
		Template:       v.GetString(settings.Flags.Template.Name),
		PackageManager: v.GetString(settings.Flags.PackageManager.Name),
		Offline:        v.GetBool(settings.Flags.Offline.Name),
	}
	if len(args) > 0 {
		inputs.Target = args[0]
	}

	// Left nil when the flag is absent so the interview asks.
	if v.IsSet(settings.Flags.Install.Name) {
		install := v.GetBool(settings.Flags.Install.Name)
		inputs.Install = &install
	}

	return inputs, nil
}

// ValidateFlags checks --template and --pm. The project name is only known
// once the target is resolved and is checked by ValidateInputs.
func (h *handler) ValidateFlags(inputs Inputs) error {
	return validateStruct(flagInputs{
		Template:       inputs.Template,
		PackageManager: inputs.PackageManager,
	})
}

func (h *handler) ValidateInputs(inputs Inputs) error {
	return validateStruct(inputs)
}

func validateStruct(s any) error {
	validator, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	if err := validator.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

func (h *handler) Execute(ctx context.Context, inputs Inputs) error {
	ui.Dim(fmt.Sprintf("%s version %s", constants.CLIName, h.version))

	target, err := h.resolveTarget(ctx, inputs.Target)
	if err != nil {
		return err
	}

	cwd, err := h.getwd()
	if err != nil {
		return fmt.Errorf("unable to get working directory: %w", err)
	}
	targetDirectoryPath, err := transformation.ResolveTargetDirectory(cwd, target)
	if err != nil {
		return err
	}
	inputs.Target = target
	// The base of the resolved path, so "." and ".." name the directories
	// they point at.
	inputs.ProjectName = filepath.Base(targetDirectoryPath)

	if inputs.Template == "" {
		inputs.Template, err = h.asker.SelectString(ctx, prompt.SelectOptions[string]{
			Message: "Which template do you want to use?",
			Options: templateOptions(),
		})
		if err != nil {
			return err
		}
	}

	if err := h.ValidateInputs(inputs); err != nil {
		return err
	}

	if err := h.prepareDirectory(ctx, targetDirectoryPath); err != nil {
		return err
	}

	pctx := newPipelineContext(inputs, targetDirectoryPath)
	h.log.Debug().Object("context", pctx).Msg("Starting create run")

	fetcher, err := h.templateFetcher()
	if err != nil {
		return err
	}

	o := pipeline.New(h.log, h.withSpinner(fetcher), pctx)
	hooks.RegisterDependencies(o, inputs.Template, hooks.Dependencies{
		Logger:         h.log,
		Install:        inputs.Install,
		PackageManager: inputs.PackageManager,
		UserAgent:      h.userAgent,
		Asker:          h.asker,
		Detector:       h.detector,
		Runner:         h.runner,
		Spinner:        h.spinner,
	})
	hooks.RegisterAfterCreate(o, h.log)
	o.OnCompleted(func(pipeline.Context) {
		ui.Bold("🎉 Copied project files")
		ui.Print(ui.RenderDim("Get started with: ") + ui.RenderBold("cd "+target))
	})

	return o.Run(ctx, pipeline.FetchRequest{
		Source:  h.templates.Source(inputs.Template).String(),
		Offline: inputs.Offline,
		// The user already agreed to write into a non-empty directory.
		Force: true,
	})
}

func (h *handler) resolveTarget(ctx context.Context, target string) (string, error) {
	if target != "" {
		ui.Success(fmt.Sprintf("Using target directory … %s", ui.RenderBold(target)))
		return target, nil
	}

	return h.asker.Text(ctx, prompt.TextOptions{
		Message:      "Target directory",
		Placeholder:  constants.DefaultProjectName,
		DefaultValue: constants.DefaultProjectName,
	})
}

func (h *handler) prepareDirectory(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create target directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read target directory: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	proceed, err := h.asker.Confirm(ctx, prompt.ConfirmOptions{
		Message:      "Directory not empty. Continue?",
		InitialValue: prompt.Bool(false),
	})
	if err != nil {
		return err
	}
	if !proceed {
		h.exit(1)
		return ErrDirectoryNotEmpty
	}
	return nil
}

func (h *handler) templateFetcher() (pipeline.Fetcher, error) {
	if h.fetcher != nil {
		return h.fetcher, nil
	}

	cache, err := templaterepo.NewCache(h.log)
	if err != nil {
		return nil, err
	}
	return templaterepo.NewFetcher(h.log, templaterepo.NewClient(h.log), cache), nil
}

func (h *handler) withSpinner(fetcher pipeline.Fetcher) pipeline.Fetcher {
	return pipeline.FetcherFunc(func(ctx context.Context, req pipeline.FetchRequest) error {
		h.spinner.Start(ctx, "Cloning the template")
		if err := fetcher.FetchTemplate(ctx, req); err != nil {
			if ctx.Err() != nil {
				h.spinner.Stop(ui.StopReason(context.Cause(ctx)))
			} else {
				h.spinner.Stop("Failed to clone the template", 2)
			}
			return err
		}
		h.spinner.Stop("Cloned the template", 0)
		return nil
	})
}

// newPipelineContext seeds the run context. The package manager starts at
// --pm or the default and is replaced by the dependencies hook's answer.
func newPipelineContext(inputs Inputs, targetDirectoryPath string) pipeline.Context {
	pm := inputs.PackageManager
	if pm == "" {
		pm = packagemanager.Default
	}
	return pipeline.Context{
		ProjectName:         inputs.ProjectName,
		TargetDirectoryPath: targetDirectoryPath,
		TemplateName:        inputs.Template,
		PackageManager:      pm,
	}
}

func templateOptions() []prompt.SelectOption[string] {
	options := make([]prompt.SelectOption[string], 0, len(constants.Templates))
	for _, name := range constants.Templates {
		options = append(options, prompt.SelectOption[string]{Value: name})
	}
	return options
}
