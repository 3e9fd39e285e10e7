// cmd/govsgen/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"govsgen/cmd/govsgen/cli"
	"govsgen/cmd/govsgen/commands"
)

// Version information (set via ldflags during build)
var (
	version = "0.0.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date
	cli.SetupVersion()

	cli.AddCommand(commands.NewGenerateCommand(cli.Console))
	cli.AddCommand(commands.NewVersionCommand(cli.Console))

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		os.Exit(130) // 128 + SIGINT
	}()

	if err := cli.Execute(); err != nil {
		// SilenceErrors is set on the root command; report here so the
		// message lands on stderr exactly once.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
