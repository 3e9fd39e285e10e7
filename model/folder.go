package model

import (
	"fmt"
	"strings"

	"govsgen/identity"
)

// folderTypeGUID is the solution-file type GUID marking a solution folder.
const folderTypeGUID = identity.Identifier("{2150E333-8FDC-42A3-9474-1A3956D46DE8}")

// Folder is a purely organizational grouping node in the solution's display
// tree. Folders nest projects and other folders; they produce no output file
// of their own, only nesting declarations inside the solution document.
type Folder struct {
	id       identity.Identifier
	name     string
	parent   *Folder
	children []Entity
	root     bool
}

// NewFolder creates a folder with a freshly allocated identifier.
func NewFolder(reg *identity.Registry, name string) *Folder {
	return &Folder{
		id:   reg.Allocate(),
		name: name,
	}
}

// newRootFolder creates the implicit top-level container of a solution. The
// root is not rendered as a folder; its direct children are top-level.
func newRootFolder(reg *identity.Registry, name string) *Folder {
	f := NewFolder(reg, name)
	f.root = true
	return f
}

// ID implements Entity
func (f *Folder) ID() identity.Identifier { return f.id }

// Name implements Entity
func (f *Folder) Name() string { return f.name }

// IsRoot reports whether this is a solution's implicit top-level container.
func (f *Folder) IsRoot() bool { return f.root }

// Children returns the folder's direct children in insertion order.
func (f *Folder) Children() []Entity { return f.children }

// AddFolder nests a child folder. Fails with ErrAlreadyParented if the child
// already sits elsewhere in a tree.
func (f *Folder) AddFolder(child *Folder) error {
	if child.root {
		return validationErr(ErrAlreadyParented, child.id, "folder %q is a solution root", child.name)
	}
	if child.parent != nil {
		return validationErr(ErrAlreadyParented, child.id, "folder %q is already under %q", child.name, child.parent.name)
	}
	child.parent = f
	f.children = append(f.children, child)
	return nil
}

// AddProject places a project under this folder. Fails with
// ErrAlreadyParented if the project already sits elsewhere in a tree.
func (f *Folder) AddProject(p Project) error {
	if node, ok := p.(parented); ok {
		if existing := node.parentFolder(); existing != nil {
			return validationErr(ErrAlreadyParented, p.ID(), "project %q is already under %q", p.Name(), existing.name)
		}
		node.setParentFolder(f)
	}
	f.children = append(f.children, p)
	return nil
}

func (f *Folder) parentFolder() *Folder      { return f.parent }
func (f *Folder) setParentFolder(pf *Folder) { f.parent = pf }

// Render emits the nesting declaration for this folder's direct children:
// one "{child} = {parent}" line per child, consumed verbatim by the solution
// serializer's NestedProjects section. The root container renders nothing
// because its children are top-level.
func (f *Folder) Render() []byte {
	if f.root {
		return nil
	}
	var b strings.Builder
	for _, child := range f.children {
		fmt.Fprintf(&b, "\t\t%s = %s\r\n", child.ID(), f.id)
	}
	return []byte(b.String())
}
