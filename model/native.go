package model

import (
	"encoding/xml"

	"govsgen/identity"
)

// nativeTypeGUID is the solution-file type GUID for native C++ projects.
const nativeTypeGUID = identity.Identifier("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}")

// NativeProject is a native-compiled MSBuild project rendered as .vcxproj.
// Compile items render as ClCompile, content items as ClInclude, and
// dependencies are linked into the document as ProjectReference entries
// rather than solution-level build-order hints.
type NativeProject struct {
	ProjectCore

	// RootNamespace overrides the default namespace (project name)
	RootNamespace string
}

// NewNativeProject creates a native project with a freshly allocated identifier.
func NewNativeProject(reg *identity.Registry, name string) *NativeProject {
	return &NativeProject{ProjectCore: newProjectCore(reg, name)}
}

// Kind implements Project
func (p *NativeProject) Kind() ProjectKind { return KindNative }

// TypeGUID implements Project
func (p *NativeProject) TypeGUID() identity.Identifier { return nativeTypeGUID }

// FileExtension implements Project
func (p *NativeProject) FileExtension() string { return ".vcxproj" }

// DependencyStyle implements Project
func (p *NativeProject) DependencyStyle() DependencyStyle { return DependencyLinked }

// Validate implements Project
func (p *NativeProject) Validate(owner *Solution) error {
	return p.validateCore(owner)
}

type projectConfigurationXML struct {
	XMLName       xml.Name `xml:"ProjectConfiguration"`
	Include       string   `xml:"Include,attr"`
	Configuration string   `xml:"Configuration"`
	Platform      string   `xml:"Platform"`
}

type projectConfigurationsXML struct {
	XMLName xml.Name `xml:"ItemGroup"`
	Label   string   `xml:"Label,attr"`
	Configs []projectConfigurationXML
}

// Render implements Project
func (p *NativeProject) Render(owner *Solution) ([]byte, error) {
	rootNamespace := p.RootNamespace
	if rootNamespace == "" {
		rootNamespace = p.name
	}

	projectConfigs := projectConfigurationsXML{Label: "ProjectConfigurations"}
	for _, c := range p.configurations {
		projectConfigs.Configs = append(projectConfigs.Configs, projectConfigurationXML{
			Include:       c.Pair(),
			Configuration: c.BuildType,
			Platform:      c.Platform,
		})
	}

	children := []any{
		projectConfigs,
		propertyGroupXML{
			Label: "Globals",
			Props: propertyList{
				{Key: "ProjectGuid", Value: string(p.id)},
				{Key: "RootNamespace", Value: rootNamespace},
				{Key: "Keyword", Value: "Win32Proj"},
			},
		},
		importXML{Project: `$(VCTargetsPath)\Microsoft.Cpp.Default.props`},
		configurationPropertyGroups(p.configurations),
		importXML{Project: `$(VCTargetsPath)\Microsoft.Cpp.props`},
	}
	if g := itemGroupFor(p.items, ItemCompile, "ClCompile"); g != nil {
		children = append(children, g)
	}
	if g := itemGroupFor(p.items, ItemContent, "ClInclude"); g != nil {
		children = append(children, g)
	}
	if len(p.dependencies) > 0 {
		refs := referenceGroupXML{}
		for _, dep := range p.dependencies {
			target := owner.Project(dep)
			if target == nil {
				return nil, validationErr(ErrUnresolvedDependency, p.id, "project %q depends on unknown project %s", p.name, dep)
			}
			refs.References = append(refs.References, projectReferenceXML{
				Include: p.dependencyPath(owner, dep),
				Project: string(dep),
				Name:    target.Name(),
			})
		}
		children = append(children, refs)
	}
	children = append(children, importXML{Project: `$(VCTargetsPath)\Microsoft.Cpp.targets`})

	return marshalProjectXML(msbuildProjectAttrs("Build", "4.0"), children)
}
