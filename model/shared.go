package model

import (
	"govsgen/identity"
)

// sharedTypeGUID is the solution-file type GUID for shared-items projects.
const sharedTypeGUID = identity.Identifier("{D954291E-2A0B-460D-934E-DC6B0785DB48}")

// SharedProject is a shared-items template rendered as .projitems. Its items
// are imported into consuming projects; it builds nothing of its own, so it
// carries no configuration property groups beyond the shared-GUID globals.
// Dependencies are build-order hints only.
type SharedProject struct {
	ProjectCore
}

// NewSharedProject creates a shared project with a freshly allocated identifier.
func NewSharedProject(reg *identity.Registry, name string) *SharedProject {
	return &SharedProject{ProjectCore: newProjectCore(reg, name)}
}

// Kind implements Project
func (p *SharedProject) Kind() ProjectKind { return KindShared }

// TypeGUID implements Project
func (p *SharedProject) TypeGUID() identity.Identifier { return sharedTypeGUID }

// FileExtension implements Project
func (p *SharedProject) FileExtension() string { return ".projitems" }

// DependencyStyle implements Project
func (p *SharedProject) DependencyStyle() DependencyStyle { return DependencyBuildOrder }

// Validate implements Project
func (p *SharedProject) Validate(owner *Solution) error {
	return p.validateCore(owner)
}

// Render implements Project
func (p *SharedProject) Render(_ *Solution) ([]byte, error) {
	children := []any{
		propertyGroupXML{
			Props: propertyList{
				{Key: "MSBuildAllProjects", Value: `$(MSBuildAllProjects);$(MSBuildThisFileFullPath)`},
				{Key: "HasSharedItems", Value: "true"},
				{Key: "SharedGUID", Value: string(p.id)},
			},
		},
		propertyGroupXML{
			Label: "Configuration",
			Props: propertyList{
				{Key: "Import_RootNamespace", Value: p.name},
			},
		},
	}
	if g := itemGroupFor(p.items, ItemCompile, "Compile"); g != nil {
		children = append(children, g)
	}
	if g := itemGroupFor(p.items, ItemContent, "Content"); g != nil {
		children = append(children, g)
	}

	return marshalProjectXML(msbuildProjectAttrs("", ""), children)
}
