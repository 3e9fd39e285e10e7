// Package writer orchestrates a generation run: whole-graph validation,
// in-memory rendering of every document, then the file writes. Rendering is
// all-or-nothing; no file is touched until every document rendered.
package writer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"govsgen/model"
	"govsgen/observability"
)

// Writer generates the full set of output files for one solution graph.
type Writer struct {
	log        observability.Logger
	maxWorkers int
}

// Option configures a Writer
type Option func(*Writer)

// WithLogger sets the structured logger used during generation.
func WithLogger(log observability.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// WithMaxWorkers caps how many documents render or write concurrently.
func WithMaxWorkers(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.maxWorkers = n
		}
	}
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		log:        observability.NewNullLogger(),
		maxWorkers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// document is one fully rendered output file awaiting the write phase.
type document struct {
	path string
	kind string
	data []byte
}

// Generate validates the solution graph, renders every document in memory,
// and only then writes the files. On a validation or render failure nothing
// is written. Write-phase I/O failures are reported per file; files already
// written in that phase are not rolled back.
func (w *Writer) Generate(ctx context.Context, sln *model.Solution) error {
	start := time.Now()
	defer func() {
		observability.GenerationDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span := observability.StartSpan(ctx, "govsgen.generate",
		attribute.String("solution", sln.Name()),
		attribute.Int("projects", len(sln.Projects())),
	)
	defer span.End()

	if err := w.validate(ctx, sln); err != nil {
		observability.GenerationRunsTotal.WithLabelValues("validation_error").Inc()
		observability.ValidationFailuresTotal.WithLabelValues(errorKind(err)).Inc()
		observability.RecordError(ctx, err)
		return err
	}

	docs, err := w.renderAll(ctx, sln)
	if err != nil {
		observability.GenerationRunsTotal.WithLabelValues("render_error").Inc()
		observability.RecordError(ctx, err)
		return err
	}

	if err := w.writeAll(ctx, docs); err != nil {
		observability.GenerationRunsTotal.WithLabelValues("write_error").Inc()
		observability.RecordError(ctx, err)
		return err
	}

	observability.GenerationRunsTotal.WithLabelValues("success").Inc()
	w.log.Info("Generated {Files} files for solution {Solution} in {Elapsed}",
		len(docs), sln.Name(), time.Since(start))
	return nil
}

func (w *Writer) validate(ctx context.Context, sln *model.Solution) error {
	_, span := observability.StartSpan(ctx, "govsgen.validate")
	defer span.End()

	if err := sln.Validate(); err != nil {
		return fmt.Errorf("validate solution %q: %w", sln.Name(), err)
	}
	w.log.Debug("Validated solution {Solution} with {Projects} projects",
		sln.Name(), len(sln.Projects()))
	return nil
}

// renderAll renders the solution document and every project document fully
// in memory. Projects render in parallel under the worker cap; a failure
// cancels the remaining renders, and the surfaced error is selected by
// ascending project identifier among the failures, not by arrival time.
func (w *Writer) renderAll(ctx context.Context, sln *model.Solution) ([]document, error) {
	ctx, span := observability.StartSpan(ctx, "govsgen.render")
	defer span.End()

	renderStart := time.Now()
	slnData, err := sln.Render()
	if err != nil {
		return nil, fmt.Errorf("render solution %q: %w", sln.Name(), err)
	}
	observability.RenderDuration.WithLabelValues("solution").Observe(time.Since(renderStart).Seconds())

	// Identifier order, so the first error is deterministic under parallelism.
	projects := sln.SortedProjects()

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	docs := make([]document, len(projects))
	errs := make([]error, len(projects))
	semaphore := make(chan struct{}, w.maxWorkers)

	var wg sync.WaitGroup
	for i, p := range projects {
		wg.Add(1)
		go func(index int, p model.Project) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-renderCtx.Done():
				errs[index] = renderCtx.Err()
				return
			}
			if renderCtx.Err() != nil {
				errs[index] = renderCtx.Err()
				return
			}

			start := time.Now()
			data, err := p.Render(sln)
			if err != nil {
				errs[index] = fmt.Errorf("render project %q (%s): %w", p.Name(), p.ID(), err)
				cancel()
				return
			}
			observability.RenderDuration.WithLabelValues(string(p.Kind())).Observe(time.Since(start).Seconds())

			docs[index] = document{
				path: sln.ProjectFilePath(p),
				kind: string(p.Kind()),
				data: data,
			}
			w.log.Verbose("Rendered {Project} ({Bytes} bytes)", p.Name(), len(data))
		}(i, p)
	}
	wg.Wait()

	// First real error in identifier order wins; cancellations (from the
	// failing render or the caller) never mask it.
	var firstCancel error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			if firstCancel == nil {
				firstCancel = err
			}
			continue
		}
		return nil, err
	}
	if firstCancel != nil {
		return nil, firstCancel
	}

	out := make([]document, 0, len(projects)+1)
	out = append(out, document{path: sln.OutputPath(), kind: "solution", data: slnData})
	out = append(out, docs...)
	return out, nil
}

// writeAll flushes every rendered document, overwriting existing files.
// Writes are independent per path and run in parallel; errors are collected
// per file and joined.
func (w *Writer) writeAll(ctx context.Context, docs []document) error {
	_, span := observability.StartSpan(ctx, "govsgen.write")
	defer span.End()

	errs := make([]error, len(docs))
	semaphore := make(chan struct{}, w.maxWorkers)

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(index int, doc document) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := writeFile(doc.path, doc.data); err != nil {
				errs[index] = err
				return
			}
			observability.FilesWrittenTotal.WithLabelValues(doc.kind).Inc()
			observability.BytesWrittenTotal.WithLabelValues(doc.kind).Add(float64(len(doc.data)))
			w.log.Debug("Wrote {Path} ({Bytes} bytes)", doc.path, len(doc.data))
		}(i, doc)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// errorKind maps a validation failure to its metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrDuplicateIdentifier):
		return "duplicate_identifier"
	case errors.Is(err, model.ErrAlreadyParented):
		return "already_parented"
	case errors.Is(err, model.ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, model.ErrDuplicateConfiguration):
		return "duplicate_configuration"
	case errors.Is(err, model.ErrMissingOutputPath):
		return "missing_output_path"
	case errors.Is(err, model.ErrDuplicateOutputPath):
		return "duplicate_output_path"
	case errors.Is(err, model.ErrUnresolvedDependency):
		return "unresolved_dependency"
	case errors.Is(err, model.ErrDependencyCycle):
		return "dependency_cycle"
	case errors.Is(err, model.ErrContainmentCycle):
		return "containment_cycle"
	case errors.Is(err, model.ErrUnmappedProjectConfiguration):
		return "unmapped_project_configuration"
	default:
		return "other"
	}
}
