package list

import (
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/hooks"
	"github.com/smartcontractkit/create-starter/internal/runtime"
	"github.com/smartcontractkit/create-starter/internal/templateconfig"
	"github.com/smartcontractkit/create-starter/internal/templaterepo"
	"github.com/smartcontractkit/create-starter/internal/ui"
)

// DirectoryLister lists the subdirectories of a repository directory.
// *templaterepo.Client implements it.
type DirectoryLister interface {
	ListDirectories(ctx context.Context, owner, repo, dir, ref string) ([]string, error)
}

type handler struct {
	log     *zerolog.Logger
	config  templateconfig.Config
	lister  DirectoryLister
	spinner hooks.Spinner
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists available templates",
		Long:  `Fetches and displays the template directories of the configured repository. These can be created with create-starter --template.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &handler{
				log:     runtimeContext.Logger,
				config:  runtimeContext.Templates,
				lister:  templaterepo.NewClient(runtimeContext.Logger),
				spinner: ui.NewSpinner(),
			}
			return h.Execute(cmd.Context())
		},
	}

	return cmd
}

func (h *handler) Execute(ctx context.Context) error {
	collection := h.config.Collection()

	h.spinner.Start(ctx, "Fetching templates")
	dirs, err := h.lister.ListDirectories(ctx, collection.Owner, collection.Repo, collection.Directory, collection.Ref)
	if err != nil {
		h.spinner.Stop("Failed to fetch templates", 2)
		return fmt.Errorf("failed to list templates: %w", err)
	}
	h.spinner.Stop(fmt.Sprintf("Fetched %d templates", len(dirs)), 0)

	if len(dirs) == 0 {
		ui.Line()
		ui.Warning(fmt.Sprintf("No templates found in %s", collection))
		ui.Line()
		return nil
	}

	ui.Line()
	ui.Print(FormatTemplatesTable(h.config, dirs))
	ui.Line()
	ui.Dim("Create a project with:")
	ui.Command(fmt.Sprintf("  %s <target> --template=<name>", constants.CLIName))
	ui.Line()

	return nil
}

// FormatTemplatesTable renders one row per template directory. Dependencies
// is "no" for templates that skip the install step.
func FormatTemplatesTable(cfg templateconfig.Config, dirs []string) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Template", "Dependencies", "Source"})

	for _, dir := range dirs {
		name := path.Base(dir)
		deps := "yes"
		if slices.Contains(constants.TemplatesWithoutDependencies, name) {
			deps = "no"
		}
		t.AppendRow(table.Row{name, deps, cfg.Source(name).String()})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft},
	})

	t.SortBy([]table.SortBy{
		{Name: "Template", Mode: table.Asc},
	})

	return t.Render()
}
