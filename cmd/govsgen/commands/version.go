package commands

import (
	"github.com/spf13/cobra"

	"govsgen/cmd/govsgen/cli"
	"govsgen/cmd/govsgen/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(console *output.Console) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			console.Println(cli.GetFullVersion())
		},
	}
}
