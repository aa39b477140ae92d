package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/runtime"
)

// Default placeholder value
var Version = "development"

func New(runtimeContext *runtime.Context) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the create-starter version",
		Long:  "This command prints the current version of create-starter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), constants.CLIName, Version)
			return nil
		},
	}

	return versionCmd
}
