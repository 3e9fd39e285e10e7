package model

import (
	"errors"
	"fmt"
	"strings"

	"govsgen/identity"
)

// Structural error kinds surfaced by graph validation. These indicate a
// defect in the caller-supplied model and are never retried.
var (
	// ErrDuplicateIdentifier indicates two entities share an identifier.
	// Shared with the identity registry so callers match either source.
	ErrDuplicateIdentifier = identity.ErrDuplicateIdentifier

	// ErrAlreadyParented indicates a child was added under two parents
	ErrAlreadyParented = errors.New("entity already has a parent")

	// ErrInvalidConfiguration indicates a malformed configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDuplicateConfiguration indicates two configurations share a (build-type, platform) pair
	ErrDuplicateConfiguration = errors.New("duplicate configuration")

	// ErrMissingOutputPath indicates a project has no output path
	ErrMissingOutputPath = errors.New("missing output path")

	// ErrDuplicateOutputPath indicates two projects share an output path
	ErrDuplicateOutputPath = errors.New("duplicate output path")

	// ErrUnresolvedDependency indicates a referenced project is not in the solution
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrDependencyCycle indicates a cycle in the project dependency relation
	ErrDependencyCycle = errors.New("dependency cycle")

	// ErrContainmentCycle indicates a cycle in the folder containment tree
	ErrContainmentCycle = errors.New("containment cycle")

	// ErrUnmappedProjectConfiguration indicates a solution configuration with
	// no matching project configuration (and no platform fallback)
	ErrUnmappedProjectConfiguration = errors.New("unmapped project configuration")
)

// ValidationError carries the structural error kind together with the
// offending entity and, for cycles, the full identifier chain.
type ValidationError struct {
	// Kind is one of the sentinel errors above
	Kind error

	// EntityID identifies the offending entity
	EntityID identity.Identifier

	// Chain holds the offending identifier chain for cycle errors
	Chain []identity.Identifier

	// Detail describes what went wrong
	Detail string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.EntityID != "" {
		fmt.Fprintf(&b, " (%s)", e.EntityID)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Chain) > 0 {
		ids := make([]string, len(e.Chain))
		for i, id := range e.Chain {
			ids[i] = string(id)
		}
		fmt.Fprintf(&b, ": %s", strings.Join(ids, " -> "))
	}
	return b.String()
}

// Unwrap exposes the sentinel kind for errors.Is
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func validationErr(kind error, id identity.Identifier, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:     kind,
		EntityID: id,
		Detail:   fmt.Sprintf(format, args...),
	}
}
