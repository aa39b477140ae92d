package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/create-starter/cmd/creinit"
	"github.com/smartcontractkit/create-starter/cmd/templates"
	"github.com/smartcontractkit/create-starter/cmd/version"
	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/logger"
	"github.com/smartcontractkit/create-starter/internal/pipeline"
	"github.com/smartcontractkit/create-starter/internal/prompt"
	creruntime "github.com/smartcontractkit/create-starter/internal/runtime"
	"github.com/smartcontractkit/create-starter/internal/settings"
	"github.com/smartcontractkit/create-starter/internal/update"
)

// RootCmd represents the base command. Called without a subcommand it creates a project.
var RootCmd = newRootCommand()

func Execute() {
	ctx, stop := creruntime.WithInterrupt(context.Background())
	err := RootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		// Cancelled prompts and interrupted spinners already printed their notice.
		if !errors.Is(err, prompt.ErrCanceled) && !interrupted {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(pipeline.ExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	rootLogger := createLogger()
	rootViper := createViper()
	runtimeContext := creruntime.NewContext(rootLogger, rootViper, version.Version)

	rootCmd := &cobra.Command{
		Use:   constants.CLIName + " [target]",
		Short: "Create a new project from a starter template",
		Long: `A command line tool that creates a new project from a starter template.

It asks for a target directory and a template, downloads the template, names
the project after its directory and optionally installs its dependencies.`,
		Example: `  create-starter my-app
  create-starter my-app --template cloudflare-workers --pm pnpm --install
  create-starter . -t bun -o`,
		Args:              cobra.MaximumNArgs(1),
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              creinit.RunE(runtimeContext),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := runtimeContext.Viper

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if verbose := v.GetBool(settings.Flags.Verbose.Name); verbose {
				runtimeContext.Logger = logger.Verbose(runtimeContext.Logger)
			}

			if err := runtimeContext.AttachSettings(); err != nil {
				return err
			}

			return runtimeContext.AttachTemplateConfig()
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if skipUpdateCheck(cmd, runtimeContext) {
				return
			}
			update.NewChecker(runtimeContext.Logger).Check(cmd.Context(), version.Version)
		},
	}

	cobra.AddTemplateFunc("wrappedFlagUsages", func(fs *pflag.FlagSet) string {
		// 100 = wrap width
		return strings.TrimRight(fs.FlagUsagesWrapped(100), "\n")
	})

	rootCmd.SetHelpTemplate(`
{{- with (or .Long .Short)}}{{.}}{{end}}

Usage:
{{- if .Runnable}}
  {{.UseLine}}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]
{{- end}}

{{- if .HasAvailableSubCommands}}

Available Commands:
{{- range .Commands}}
  {{- if (and (not .Hidden) (.IsAvailableCommand))}}
  {{rpad .Name .NamePadding}}  {{.Short}}
  {{- end}}
{{- end}}
{{- end}}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end}}

{{- $local := (wrappedFlagUsages .LocalFlags) -}}
{{- if $local}}

Flags:
{{$local}}
{{- end}}

{{- $inherited := (wrappedFlagUsages .InheritedFlags) -}}
{{- if $inherited}}

Global Flags:
{{$inherited}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end}}
`)

	// env file flag is present for every subcommand
	rootCmd.PersistentFlags().StringP(
		settings.Flags.CliEnvFile.Name,
		settings.Flags.CliEnvFile.Short,
		constants.DefaultEnvFileName,
		fmt.Sprintf("Path to %s file which contains %s", constants.DefaultEnvFileName, constants.EnvVarGitHubToken),
	)

	// verbose flag is present in every subcommand
	rootCmd.PersistentFlags().BoolP(
		settings.Flags.Verbose.Name,
		settings.Flags.Verbose.Short,
		false,
		"Run command in VERBOSE mode",
	)

	settings.AddCreateFlags(rootCmd)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.AddCommand(
		creinit.New(runtimeContext),
		templates.New(runtimeContext),
		version.New(runtimeContext),
	)

	return rootCmd
}

func skipUpdateCheck(cmd *cobra.Command, runtimeContext *creruntime.Context) bool {
	switch cmd.Name() {
	case "bash", "zsh", "fish", "powershell", "help", "completion", "version":
		return true
	}
	return runtimeContext.Settings == nil || runtimeContext.Settings.NoUpdateCheck
}

func createLogger() *zerolog.Logger {
	return logger.NewConsoleLogger()
}

func createViper() *viper.Viper {
	return viper.New() //nolint:forbidigo
}
