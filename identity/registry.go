// Package identity provides unique identifier allocation for one generation run.
package identity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Identifier is a GUID-like token in Visual Studio brace form,
// e.g. "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}".
type Identifier string

// ErrDuplicateIdentifier indicates an identifier was issued or registered twice
var ErrDuplicateIdentifier = fmt.Errorf("duplicate identifier")

// NewIdentifier generates a fresh identifier without registering it anywhere.
func NewIdentifier() Identifier {
	return Identifier("{" + strings.ToUpper(uuid.NewString()) + "}")
}

// Registry tracks every identifier issued within a single generation run.
// Each run owns exactly one Registry; no state is shared across runs.
type Registry struct {
	mu        sync.Mutex
	allocated map[Identifier]struct{}
}

// NewRegistry creates an empty registry for a new generation run.
func NewRegistry() *Registry {
	return &Registry{
		allocated: make(map[Identifier]struct{}),
	}
}

// Allocate issues a new identifier guaranteed distinct from every identifier
// previously allocated or registered in this registry.
func (r *Registry) Allocate() Identifier {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		id := NewIdentifier()
		if _, taken := r.allocated[id]; taken {
			continue
		}
		r.allocated[id] = struct{}{}
		return id
	}
}

// Register records a caller-supplied identifier.
// Returns ErrDuplicateIdentifier if the identifier is already present.
func (r *Registry) Register(id Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.allocated[id]; taken {
		return fmt.Errorf("register %s: %w", id, ErrDuplicateIdentifier)
	}
	r.allocated[id] = struct{}{}
	return nil
}

// Contains reports whether the identifier has been issued or registered.
func (r *Registry) Contains(id Identifier) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.allocated[id]
	return ok
}

// Len returns the number of identifiers tracked by the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.allocated)
}
