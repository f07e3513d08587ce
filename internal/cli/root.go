// Package cli provides the command-line interface for powerjson.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/powerjson/powerjson/internal/cli/commands"
	"github.com/powerjson/powerjson/internal/cli/plugins"
	"github.com/powerjson/powerjson/internal/log"

	// Converters register themselves at init.
	_ "github.com/powerjson/powerjson/pkg/upower"
	_ "github.com/powerjson/powerjson/pkg/upsc"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					// Plugin found - execute it with remaining args
					return plugins.Execute(pluginPath, os.Args[2:])
				}
				// Plugin not found - will fall through to Cobra which will show error
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(os.Args) > 1 {
			potentialCommand := os.Args[1]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "powerjson",
		Short: "Convert power-device reports to structured records",
		Long: `powerjson converts the human-readable output of power-device inspection
utilities into structured JSON or YAML records.

Each supported utility has its own converter:
  upower   upower -d / upower -i <device-path> reports
  upsc     NUT upsc variable dumps

Feed a capture file or pipe the command output directly:

  upower -d | powerjson convert upower
  powerjson convert --raw upower capture.txt
  powerjson detect capture.txt

PLUGINS:
  powerjson supports plugins for out-of-tree converters. Plugins are
  standalone binaries named powerjson-<command> that are automatically
  discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the powerjson binary
    2. ~/.powerjson/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Init(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace|debug|info|warn|error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewPublishCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
