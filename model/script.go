package model

import (
	"strings"

	"govsgen/identity"
)

// scriptTypeGUID is the solution-file type GUID for Python Tools projects.
const scriptTypeGUID = identity.Identifier("{888888A8-9F3D-457C-B088-3A5042F75D52}")

// pythonToolsTargets is the targets import resolving the Python Tools build.
const pythonToolsTargets = `$(MSBuildExtensionsPath32)\Microsoft\VisualStudio\v$(VisualStudioVersion)\Python Tools\Microsoft.PythonTools.targets`

// ScriptProject is an interpreted project rendered as .pyproj in the Python
// Tools schema. Compile items render as Compile, content items as Content.
// Dependencies are build-order hints only and surface in the solution file
// rather than in the project document.
type ScriptProject struct {
	ProjectCore

	// StartupFile is the script launched when the project runs
	StartupFile string

	// SearchPaths are module lookup roots, rendered semicolon-joined
	SearchPaths []string

	// WorkingDirectory is the run-time working directory
	WorkingDirectory string

	// InterpreterArguments are extra arguments passed to the interpreter
	InterpreterArguments []string

	// RootNamespace overrides the default namespace (project name)
	RootNamespace string
}

// NewScriptProject creates a script project with a freshly allocated identifier.
func NewScriptProject(reg *identity.Registry, name string) *ScriptProject {
	return &ScriptProject{ProjectCore: newProjectCore(reg, name)}
}

// Kind implements Project
func (p *ScriptProject) Kind() ProjectKind { return KindScript }

// TypeGUID implements Project
func (p *ScriptProject) TypeGUID() identity.Identifier { return scriptTypeGUID }

// FileExtension implements Project
func (p *ScriptProject) FileExtension() string { return ".pyproj" }

// DependencyStyle implements Project
func (p *ScriptProject) DependencyStyle() DependencyStyle { return DependencyBuildOrder }

// Validate implements Project
func (p *ScriptProject) Validate(owner *Solution) error {
	return p.validateCore(owner)
}

// Render implements Project
func (p *ScriptProject) Render(_ *Solution) ([]byte, error) {
	rootNamespace := p.RootNamespace
	if rootNamespace == "" {
		rootNamespace = p.name
	}
	workingDirectory := p.WorkingDirectory
	if workingDirectory == "" {
		workingDirectory = "."
	}

	globals := propertyList{
		{Key: "SchemaVersion", Value: "2.0"},
		{Key: "ProjectGuid", Value: string(p.id)},
		{Key: "ProjectHome", Value: "."},
	}
	if p.StartupFile != "" {
		globals = append(globals, Property{Key: "StartupFile", Value: p.StartupFile})
	}
	if len(p.SearchPaths) > 0 {
		globals = append(globals, Property{Key: "SearchPath", Value: strings.Join(p.SearchPaths, ";")})
	}
	globals = append(globals,
		Property{Key: "WorkingDirectory", Value: workingDirectory},
		Property{Key: "Name", Value: p.name},
		Property{Key: "RootNamespace", Value: rootNamespace},
	)
	if len(p.InterpreterArguments) > 0 {
		globals = append(globals, Property{Key: "InterpreterArguments", Value: strings.Join(p.InterpreterArguments, " ")})
	}

	children := []any{
		propertyGroupXML{Props: globals},
		configurationPropertyGroups(p.configurations),
	}
	if g := itemGroupFor(p.items, ItemCompile, "Compile"); g != nil {
		children = append(children, g)
	}
	if g := itemGroupFor(p.items, ItemContent, "Content"); g != nil {
		children = append(children, g)
	}
	children = append(children, importXML{Project: pythonToolsTargets})

	return marshalProjectXML(msbuildProjectAttrs("Build", "4.0"), children)
}
