// Package model defines the solution object graph: configurations, projects
// (polymorphic over kind), folders, and the root solution aggregate, plus the
// validation and rendering rules that keep the graph consistent and make
// generation deterministic.
package model

import "govsgen/identity"

// Entity is implemented by every node in the solution graph.
type Entity interface {
	// ID returns the stable identifier of the entity
	ID() identity.Identifier

	// Name returns the display name of the entity
	Name() string
}

// ItemKind classifies a source/item reference within a project.
type ItemKind int

const (
	// ItemCompile marks a file compiled or executed by the project
	ItemCompile ItemKind = iota
	// ItemContent marks a file carried by the project without compilation
	ItemContent
)

// Item is one source/item reference in a project. Items render in insertion
// order so re-generation from an unchanged model is byte-identical.
type Item struct {
	// Path is the file path, relative to the project home
	Path string

	// Kind classifies the item
	Kind ItemKind
}
