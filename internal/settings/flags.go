package settings

import (
	"github.com/spf13/cobra"
)

type Flag struct {
	Name  string
	Short string
}

type flagNames struct {
	Install        Flag
	PackageManager Flag
	Template       Flag
	Offline        Flag
	Verbose        Flag
	CliEnvFile     Flag
}

var Flags = flagNames{
	Install:        Flag{"install", "i"},
	PackageManager: Flag{"pm", "p"},
	Template:       Flag{"template", "t"},
	Offline:        Flag{"offline", "o"},
	Verbose:        Flag{"verbose", "v"},
	CliEnvFile:     Flag{"env", "e"},
}

// AddCreateFlags registers the flags of the create command.
func AddCreateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(Flags.Install.Name, Flags.Install.Short, false, "Install dependencies without asking")
	cmd.Flags().StringP(Flags.PackageManager.Name, Flags.PackageManager.Short, "", "Package manager to use (npm, bun, deno, pnpm, yarn)")
	cmd.Flags().StringP(Flags.Template.Name, Flags.Template.Short, "", "Template to use")
	cmd.Flags().BoolP(Flags.Offline.Name, Flags.Offline.Short, false, "Use the local template cache instead of downloading")
}
