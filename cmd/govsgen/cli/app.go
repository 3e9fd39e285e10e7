// cmd/govsgen/cli/app.go
package cli

import (
	"github.com/spf13/cobra"

	"govsgen/cmd/govsgen/output"
)

var rootCmd = &cobra.Command{
	Use:   "govsgen",
	Short: "Visual Studio solution and project file generator",
	Long: `govsgen generates Visual Studio solution (.sln) and project files
from a declarative suite description, so build configurations are defined
once and rendered into the exact on-disk format the IDE expects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help when no command is provided
		_ = cmd.Help()
	},
}

// Console is the global console for CLI commands
var Console *output.Console

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	Console = output.DefaultConsole()

	rootCmd.PersistentFlags().StringP("verbosity", "", "normal", "Display verbosity (quiet, normal, detailed)")
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
