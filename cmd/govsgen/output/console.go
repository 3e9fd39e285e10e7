// Package output provides console output formatting and colorization for
// the govsgen CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Verbosity levels
type Verbosity int

const (
	// VerbosityQuiet shows errors only
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal shows errors, warnings, and key operations (default)
	VerbosityNormal
	// VerbosityDetailed shows above + per-file progress
	VerbosityDetailed
)

// Color schemes
var (
	colorSuccess = color.New(color.FgGreen)
	colorError   = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
	colorInfo    = color.New(color.FgCyan)
)

// Console serializes CLI output and applies the color scheme.
type Console struct {
	mu        sync.Mutex
	out       io.Writer
	err       io.Writer
	verbosity Verbosity
}

// NewConsole creates a console writing to the given streams.
func NewConsole(out, err io.Writer, verbosity Verbosity) *Console {
	return &Console{out: out, err: err, verbosity: verbosity}
}

// DefaultConsole creates a console on stdout/stderr with normal verbosity.
func DefaultConsole() *Console {
	if !isColorCapable(os.Stdout) {
		color.NoColor = true
	}
	return NewConsole(os.Stdout, os.Stderr, VerbosityNormal)
}

// SetVerbosity sets the verbosity level.
func (c *Console) SetVerbosity(v Verbosity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbosity = v
}

// Println writes a line to output.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

// Success writes a success message (green).
func (c *Console) Success(format string, a ...any) {
	if c.verbosity < VerbosityNormal {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	colorSuccess.Fprintf(c.out, format+"\n", a...)
}

// Error writes an error message (red) to stderr.
func (c *Console) Error(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	colorError.Fprintf(c.err, "Error: "+format+"\n", a...)
}

// Warning writes a warning message (yellow).
func (c *Console) Warning(format string, a ...any) {
	if c.verbosity < VerbosityNormal {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	colorWarning.Fprintf(c.out, "Warning: "+format+"\n", a...)
}

// Info writes an informational message (cyan).
func (c *Console) Info(format string, a ...any) {
	if c.verbosity < VerbosityNormal {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	colorInfo.Fprintf(c.out, format+"\n", a...)
}

// Detail writes a per-file progress message.
func (c *Console) Detail(format string, a ...any) {
	if c.verbosity < VerbosityDetailed {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", a...)
}

// isColorCapable checks whether the stream is a terminal that wants color.
func isColorCapable(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if term := os.Getenv("TERM"); term == "dumb" {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
