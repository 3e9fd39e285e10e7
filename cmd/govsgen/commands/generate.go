// Package commands implements the govsgen CLI commands.
package commands

import (
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"govsgen/cmd/govsgen/config"
	"govsgen/cmd/govsgen/output"
	"govsgen/model"
	"govsgen/observability"
	"govsgen/writer"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(console *output.Console) *cobra.Command {
	var (
		workers       int
		logLevel      string
		metricsAddr   string
		traceExporter string
		traceEndpoint string
	)

	cmd := &cobra.Command{
		Use:   "generate <suite-file>",
		Short: "Generate solution and project files from a suite description",
		Long: `Generate reads a YAML suite description, builds the solution graph,
validates it, and writes the solution and project files. Validation failures
abort the run before any file is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyVerbosity(cmd, console)

			shutdown, err := observability.SetupTracing(cmd.Context(), observability.TracingConfig{
				Exporter: traceExporter,
				Endpoint: traceEndpoint,
				Version:  cmd.Root().Version,
			})
			if err != nil {
				return err
			}
			defer func() { _ = shutdown(cmd.Context()) }()

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", observability.MetricsHandler())
				metricsSrv := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						console.Warning("metrics server: %v", err)
					}
				}()
				defer func() { _ = metricsSrv.Close() }()
			}

			solutions, err := config.Load(args[0])
			if err != nil {
				return err
			}

			w := writer.New(
				writer.WithLogger(newLogger(logLevel)),
				writer.WithMaxWorkers(workers),
			)

			for _, sln := range solutions {
				if err := w.Generate(cmd.Context(), sln); err != nil {
					reportGenerateError(console, sln, err)
					return err
				}
				console.Success("Generated solution %s (%d projects) -> %s",
					sln.Name(), len(sln.Projects()), sln.OutputPath())
				for _, p := range sln.Projects() {
					console.Detail("  %s -> %s", p.Name(), sln.ProjectFilePath(p))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent renders and writes (0 = CPU count)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (verbose, debug, info, warn, error)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. 127.0.0.1:9090)")
	cmd.Flags().StringVar(&traceExporter, "trace-exporter", "none", "Trace exporter (none, stdout, otlp)")
	cmd.Flags().StringVar(&traceEndpoint, "trace-endpoint", "localhost:4317", "OTLP collector endpoint")
	return cmd
}

// reportGenerateError adds a locating hint for structural errors; the error
// itself is printed once by main.
func reportGenerateError(console *output.Console, sln *model.Solution, err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	if p := sln.Project(verr.EntityID); p != nil {
		console.Warning("offending entity: project %q (%s)", p.Name(), p.ID())
	}
}

func applyVerbosity(cmd *cobra.Command, console *output.Console) {
	verbosity, _ := cmd.Flags().GetString("verbosity")
	switch verbosity {
	case "quiet":
		console.SetVerbosity(output.VerbosityQuiet)
	case "detailed":
		console.SetVerbosity(output.VerbosityDetailed)
	default:
		console.SetVerbosity(output.VerbosityNormal)
	}
}

func newLogger(level string) observability.Logger {
	levels := map[string]observability.LogLevel{
		"verbose": observability.VerboseLevel,
		"debug":   observability.DebugLevel,
		"info":    observability.InfoLevel,
		"warn":    observability.WarnLevel,
		"error":   observability.ErrorLevel,
	}
	l, ok := levels[level]
	if !ok {
		l = observability.InfoLevel
	}
	return observability.NewLogger(os.Stderr, l)
}
