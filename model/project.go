package model

import (
	"path/filepath"
	"strings"

	"govsgen/identity"
)

// ProjectKind tags the concrete project flavor.
type ProjectKind string

const (
	// KindNative is a native-compiled (MSBuild C++) project
	KindNative ProjectKind = "native"
	// KindScript is an interpreted/scripted (Python Tools) project
	KindScript ProjectKind = "script"
	// KindShared is a shared-items template imported by other projects
	KindShared ProjectKind = "shared"
)

// DependencyStyle describes how a project kind expresses its dependencies.
type DependencyStyle int

const (
	// DependencyBuildOrder expresses dependencies as build-order hints in the
	// solution file's ProjectDependencies section
	DependencyBuildOrder DependencyStyle = iota
	// DependencyLinked expresses dependencies as ProjectReference entries
	// inside the project document; no solution-level section is emitted
	DependencyLinked
)

// Project is one buildable unit. Each kind knows its own file extension and
// document schema; solution and writer logic never inspects the kind beyond
// this surface.
type Project interface {
	Entity

	// Kind returns the project kind tag
	Kind() ProjectKind

	// TypeGUID returns the solution-file project type GUID for this kind
	TypeGUID() identity.Identifier

	// FileExtension returns the project file extension, including the dot
	FileExtension() string

	// OutputPath returns the project file path, relative to the solution
	// output directory unless absolute
	OutputPath() string

	// Configurations returns the project configurations in insertion order
	Configurations() []*Configuration

	// Dependencies returns the identifiers of projects this project depends
	// on, in insertion order
	Dependencies() []identity.Identifier

	// DependencyStyle reports how dependencies are expressed for this kind
	DependencyStyle() DependencyStyle

	// Validate checks the project against the owning solution's flat map
	Validate(owner *Solution) error

	// Render produces the kind-specific project document. Owner is consulted
	// for read-only lookups only (resolving dependency paths).
	Render(owner *Solution) ([]byte, error)
}

// parented is satisfied by graph nodes that track their containing folder.
// All built-in project kinds satisfy it through ProjectCore.
type parented interface {
	parentFolder() *Folder
	setParentFolder(f *Folder)
}

// ProjectCore carries the state shared by every project kind. Concrete kinds
// embed it and supply kind-specific schema knowledge.
type ProjectCore struct {
	id             identity.Identifier
	name           string
	outputPath     string
	configurations []*Configuration
	items          []Item
	dependencies   []identity.Identifier
	dependencySet  map[identity.Identifier]struct{}
	parent         *Folder
}

func newProjectCore(reg *identity.Registry, name string) ProjectCore {
	return ProjectCore{
		id:            reg.Allocate(),
		name:          name,
		dependencySet: make(map[identity.Identifier]struct{}),
	}
}

// ID implements Entity
func (p *ProjectCore) ID() identity.Identifier { return p.id }

// Name implements Entity
func (p *ProjectCore) Name() string { return p.name }

// OutputPath returns the declared project file path.
func (p *ProjectCore) OutputPath() string { return p.outputPath }

// SetOutputPath declares where the project document is written.
func (p *ProjectCore) SetOutputPath(path string) { p.outputPath = path }

// Configurations returns the project configurations in insertion order.
func (p *ProjectCore) Configurations() []*Configuration { return p.configurations }

// AddConfiguration appends a configuration.
func (p *ProjectCore) AddConfiguration(c *Configuration) {
	p.configurations = append(p.configurations, c)
}

// Items returns the item references in insertion order.
func (p *ProjectCore) Items() []Item { return p.items }

// AddItem appends a source/item reference.
func (p *ProjectCore) AddItem(path string, kind ItemKind) {
	p.items = append(p.items, Item{Path: path, Kind: kind})
}

// Dependencies returns dependency identifiers in insertion order.
func (p *ProjectCore) Dependencies() []identity.Identifier { return p.dependencies }

// AddDependency records a dependency on another project. Duplicates are
// ignored so the dependency set stays a set while keeping insertion order.
func (p *ProjectCore) AddDependency(id identity.Identifier) {
	if _, ok := p.dependencySet[id]; ok {
		return
	}
	p.dependencySet[id] = struct{}{}
	p.dependencies = append(p.dependencies, id)
}

func (p *ProjectCore) parentFolder() *Folder     { return p.parent }
func (p *ProjectCore) setParentFolder(f *Folder) { p.parent = f }

// validateCore runs the kind-independent project checks.
func (p *ProjectCore) validateCore(owner *Solution) error {
	if p.outputPath == "" {
		return validationErr(ErrMissingOutputPath, p.id, "project %q has no output path", p.name)
	}

	seen := make(map[string]bool, len(p.configurations))
	for _, c := range p.configurations {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Pair()] {
			return validationErr(ErrDuplicateConfiguration, p.id, "project %q declares %q twice", p.name, c.Pair())
		}
		seen[c.Pair()] = true
	}

	for _, dep := range p.dependencies {
		if owner == nil || owner.Project(dep) == nil {
			return validationErr(ErrUnresolvedDependency, p.id, "project %q depends on unknown project %s", p.name, dep)
		}
	}
	return nil
}

// dependencyPath resolves the path from this project's document to a
// dependency's document, in MSBuild backslash form.
func (p *ProjectCore) dependencyPath(owner *Solution, dep identity.Identifier) string {
	target := owner.Project(dep)
	if target == nil {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(p.outputPath), target.OutputPath())
	if err != nil {
		rel = target.OutputPath()
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}
