package templates

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/create-starter/cmd/templates/list"
	"github.com/smartcontractkit/create-starter/internal/runtime"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspects the starter template repository",
		Long: `Inspects the starter template repository that create-starter downloads templates from.

The repository, directory and ref can be overridden in ~/.create-starter/config.yaml.`,
	}

	templatesCmd.AddCommand(list.New(runtimeContext))

	return templatesCmd
}
