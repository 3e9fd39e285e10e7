package model

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// msbuildNamespace is the MSBuild 2003 schema namespace shared by every
// project document kind.
const msbuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// xmlDeclaration matches the lowercase utf-8 form Visual Studio writes.
const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// marshalProjectXML encodes a project document: the declaration, a root
// <Project> element carrying the given attributes, and the child elements in
// the given order. Children are encoded one by one as tokens under the root,
// so a document may repeat an element name (multiple ItemGroups, multiple
// Imports) freely. Output depends only on the inputs, so re-rendering an
// unchanged model is byte-identical.
func marshalProjectXML(attrs []xml.Attr, children []any) ([]byte, error) {
	var buf strings.Builder
	buf.WriteString(xmlDeclaration)

	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "Project"}, Attr: attrs}
	if err := encoder.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("encode project document: %w", err)
	}
	for _, child := range children {
		if err := encoder.Encode(child); err != nil {
			return nil, fmt.Errorf("encode project document: %w", err)
		}
	}
	if err := encoder.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("encode project document: %w", err)
	}
	if err := encoder.Flush(); err != nil {
		return nil, fmt.Errorf("encode project document: %w", err)
	}
	buf.WriteString("\n")

	return []byte(buf.String()), nil
}

// msbuildProjectAttrs builds the root element attributes for an MSBuild
// project document. Empty values are omitted (.projitems carries only the
// namespace).
func msbuildProjectAttrs(defaultTargets, toolsVersion string) []xml.Attr {
	var attrs []xml.Attr
	if defaultTargets != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "DefaultTargets"}, Value: defaultTargets})
	}
	if toolsVersion != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "ToolsVersion"}, Value: toolsVersion})
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: msbuildNamespace})
}

// propertyList renders each property as its own element, named by key,
// preserving insertion order.
type propertyList []Property

// MarshalXML implements xml.Marshaler
func (pl propertyList) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, p := range pl {
		el := xml.StartElement{Name: xml.Name{Local: p.Key}}
		if err := e.EncodeElement(p.Value, el); err != nil {
			return err
		}
	}
	return nil
}

// propertyGroupXML is a <PropertyGroup>, optionally scoped to one
// configuration by a Condition attribute.
type propertyGroupXML struct {
	XMLName   xml.Name `xml:"PropertyGroup"`
	Condition string   `xml:"Condition,attr,omitempty"`
	Label     string   `xml:"Label,attr,omitempty"`
	Props     propertyList
}

// configurationCondition builds the MSBuild condition selecting one
// (build-type, platform) pair.
func configurationCondition(c *Configuration) string {
	return fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s'", c.Pair())
}

// configurationPropertyGroups renders one conditioned property group per
// configuration, in insertion order.
func configurationPropertyGroups(configs []*Configuration) []propertyGroupXML {
	groups := make([]propertyGroupXML, 0, len(configs))
	for _, c := range configs {
		groups = append(groups, propertyGroupXML{
			Condition: configurationCondition(c),
			Props:     propertyList(c.Properties()),
		})
	}
	return groups
}

// itemList renders each path as <Tag Include="path"/>, preserving order.
type itemList struct {
	Tag   string
	Paths []string
}

// MarshalXML implements xml.Marshaler
func (il itemList) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, path := range il.Paths {
		start := xml.StartElement{
			Name: xml.Name{Local: il.Tag},
			Attr: []xml.Attr{{Name: xml.Name{Local: "Include"}, Value: path}},
		}
		if err := e.EncodeToken(start); err != nil {
			return err
		}
		if err := e.EncodeToken(start.End()); err != nil {
			return err
		}
	}
	return nil
}

// itemGroupXML is an <ItemGroup> holding one item vocabulary tag.
type itemGroupXML struct {
	XMLName xml.Name `xml:"ItemGroup"`
	Label   string   `xml:"Label,attr,omitempty"`
	Items   itemList
}

// itemGroupFor collects the project items of one kind under the given tag.
// Returns nil when the project has no items of that kind, so the group is
// omitted from the document entirely.
func itemGroupFor(items []Item, kind ItemKind, tag string) *itemGroupXML {
	var paths []string
	for _, it := range items {
		if it.Kind == kind {
			paths = append(paths, it.Path)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return &itemGroupXML{Items: itemList{Tag: tag, Paths: paths}}
}

// importXML is an <Import Project="..."/> element.
type importXML struct {
	XMLName xml.Name `xml:"Import"`
	Project string   `xml:"Project,attr"`
}

// projectReferenceXML links a dependency into the project document itself.
type projectReferenceXML struct {
	XMLName xml.Name `xml:"ProjectReference"`
	Include string   `xml:"Include,attr"`
	Project string   `xml:"Project"`
	Name    string   `xml:"Name"`
}

// referenceGroupXML is an <ItemGroup> of project references.
type referenceGroupXML struct {
	XMLName    xml.Name `xml:"ItemGroup"`
	References []projectReferenceXML
}
