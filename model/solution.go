package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"govsgen/identity"
)

// slnFormatVersion is the solution file format version (VS 2013 and later).
const slnFormatVersion = "12.00"

// platformAny is the platform wildcard used by the configuration fallback:
// a solution configuration with no exact project match maps to the project
// configuration with the same build type and this platform.
const platformAny = "Any CPU"

// Solution is the root aggregate: a flat registry of projects by identifier,
// a folder tree organizing them for display, and the solution-level
// configuration matrix. The solution owns all projects and folders
// transitively and renders as a Visual Studio .sln document.
type Solution struct {
	id        identity.Identifier
	name      string
	outputDir string
	root      *Folder

	projects map[identity.Identifier]Project
	order    []identity.Identifier

	configurations []*Configuration
}

// NewSolution creates an empty solution writing to the given output directory.
func NewSolution(reg *identity.Registry, name, outputDir string) *Solution {
	return &Solution{
		id:        reg.Allocate(),
		name:      name,
		outputDir: outputDir,
		root:      newRootFolder(reg, name),
		projects:  make(map[identity.Identifier]Project),
	}
}

// ID implements Entity
func (s *Solution) ID() identity.Identifier { return s.id }

// Name implements Entity
func (s *Solution) Name() string { return s.name }

// OutputDir returns the directory receiving the solution document.
func (s *Solution) OutputDir() string { return s.outputDir }

// OutputPath returns the solution document path.
func (s *Solution) OutputPath() string {
	return filepath.Join(s.outputDir, s.name+".sln")
}

// Root returns the implicit top-level container. Projects and folders added
// to it appear at the top level of the IDE's solution tree.
func (s *Solution) Root() *Folder { return s.root }

// AddConfiguration appends a solution-level configuration.
func (s *Solution) AddConfiguration(c *Configuration) {
	s.configurations = append(s.configurations, c)
}

// Configurations returns the solution configurations in insertion order.
func (s *Solution) Configurations() []*Configuration { return s.configurations }

// AddProject records a project in the flat map. Placement in the display
// tree is separate (Folder.AddProject); a project not placed in any folder
// is top-level. Fails with ErrDuplicateIdentifier if the identifier is taken.
func (s *Solution) AddProject(p Project) error {
	if _, exists := s.projects[p.ID()]; exists {
		return validationErr(ErrDuplicateIdentifier, p.ID(), "project %q", p.Name())
	}
	s.projects[p.ID()] = p
	s.order = append(s.order, p.ID())
	return nil
}

// Project resolves an identifier in the flat map, or nil.
func (s *Solution) Project(id identity.Identifier) Project {
	return s.projects[id]
}

// Projects returns all projects in insertion order.
func (s *Solution) Projects() []Project {
	out := make([]Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id])
	}
	return out
}

// SortedProjects returns all projects ordered by ascending identifier. Used
// wherever reporting must be deterministic regardless of insertion order.
func (s *Solution) SortedProjects() []Project {
	out := s.Projects()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// resolvePath resolves a project output path against the solution output
// directory unless it is already absolute.
func (s *Solution) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.outputDir, path)
}

// ProjectFilePath returns the on-disk path for a project's document.
func (s *Solution) ProjectFilePath(p Project) string {
	return s.resolvePath(p.OutputPath())
}

// Validate performs the whole-graph checks: folder-tree references resolve,
// containment is a tree, the dependency relation is acyclic, output paths
// are distinct, and the solution configuration matrix covers every project.
func (s *Solution) Validate() error {
	if err := s.validateConfigurations(); err != nil {
		return err
	}
	if err := s.validateTree(); err != nil {
		return err
	}
	if err := s.validateProjects(); err != nil {
		return err
	}
	if err := s.validateDependencies(); err != nil {
		return err
	}
	return s.validateConfigurationCoverage()
}

func (s *Solution) validateConfigurations() error {
	seen := make(map[string]bool, len(s.configurations))
	for _, c := range s.configurations {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Pair()] {
			return validationErr(ErrDuplicateConfiguration, s.id, "solution %q declares %q twice", s.name, c.Pair())
		}
		seen[c.Pair()] = true
	}
	return nil
}

// validateTree walks the containment tree iteratively with an explicit
// visited set, so adversarial input cannot overflow the stack. It rejects
// folder cycles, nodes reachable through two parents, and tree references
// that do not resolve in the flat map.
func (s *Solution) validateTree() error {
	type frame struct {
		folder *Folder
		next   int
	}

	onPath := map[identity.Identifier]int{s.root.id: 0}
	path := []identity.Identifier{s.root.id}
	doneFolders := make(map[identity.Identifier]bool)
	seenProjects := make(map[identity.Identifier]bool)

	stack := []frame{{folder: s.root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := top.folder.Children()

		if top.next >= len(children) {
			doneFolders[top.folder.id] = true
			delete(onPath, top.folder.id)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		child := children[top.next]
		top.next++

		switch c := child.(type) {
		case *Folder:
			if at, cyclic := onPath[c.id]; cyclic {
				return &ValidationError{
					Kind:     ErrContainmentCycle,
					EntityID: c.id,
					Chain:    append(append([]identity.Identifier{}, path[at:]...), c.id),
				}
			}
			if doneFolders[c.id] {
				return validationErr(ErrAlreadyParented, c.id, "folder %q is reachable through two parents", c.name)
			}
			onPath[c.id] = len(path)
			path = append(path, c.id)
			stack = append(stack, frame{folder: c})

		case Project:
			if seenProjects[c.ID()] {
				return validationErr(ErrAlreadyParented, c.ID(), "project %q is reachable through two parents", c.Name())
			}
			seenProjects[c.ID()] = true
			if s.projects[c.ID()] == nil {
				return validationErr(ErrUnresolvedDependency, c.ID(), "folder %q references project %q not registered in the solution", top.folder.name, c.Name())
			}
		}
	}
	return nil
}

func (s *Solution) validateProjects() error {
	pathOwner := make(map[string]Project, len(s.order))
	for _, p := range s.SortedProjects() {
		if err := p.Validate(s); err != nil {
			return err
		}
		resolved := filepath.Clean(s.ProjectFilePath(p))
		if other, taken := pathOwner[resolved]; taken {
			return validationErr(ErrDuplicateOutputPath, p.ID(), "projects %q and %q both write %s", other.Name(), p.Name(), resolved)
		}
		pathOwner[resolved] = p
	}
	return nil
}

// validateDependencies runs an iterative color-marking DFS over the project
// dependency relation and reports the full offending identifier chain on the
// first cycle, visiting roots in ascending identifier order so the reported
// cycle is stable.
func (s *Solution) validateDependencies() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[identity.Identifier]int, len(s.order))

	roots := make([]identity.Identifier, len(s.order))
	copy(roots, s.order)
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	type frame struct {
		id   identity.Identifier
		next int
	}

	for _, rootID := range roots {
		if color[rootID] != white {
			continue
		}

		stack := []frame{{id: rootID}}
		color[rootID] = gray
		path := []identity.Identifier{rootID}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := s.projects[top.id].Dependencies()

			if top.next >= len(deps) {
				color[top.id] = black
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			if s.projects[dep] == nil {
				// Reported per-project by validateProjects; skip here.
				continue
			}
			switch color[dep] {
			case gray:
				at := 0
				for i, id := range path {
					if id == dep {
						at = i
						break
					}
				}
				return &ValidationError{
					Kind:     ErrDependencyCycle,
					EntityID: dep,
					Chain:    append(append([]identity.Identifier{}, path[at:]...), dep),
				}
			case white:
				color[dep] = gray
				path = append(path, dep)
				stack = append(stack, frame{id: dep})
			}
		}
	}
	return nil
}

// validateConfigurationCoverage checks the solution configuration matrix
// against every project: project pairs may not exceed the solution's set,
// and every solution configuration must map onto each buildable project,
// exactly or through the platform fallback.
func (s *Solution) validateConfigurationCoverage() error {
	solutionPairs := make(map[string]bool, len(s.configurations))
	solutionBuildTypes := make(map[string]bool, len(s.configurations))
	for _, c := range s.configurations {
		solutionPairs[c.Pair()] = true
		solutionBuildTypes[c.BuildType] = true
	}

	for _, p := range s.SortedProjects() {
		configs := p.Configurations()
		for _, c := range configs {
			if solutionPairs[c.Pair()] {
				continue
			}
			// An any-platform pair is the fallback target for every solution
			// platform of the same build type, so it is covered whenever that
			// build type exists in the solution matrix.
			if isAnyPlatform(c.Platform) && solutionBuildTypes[c.BuildType] {
				continue
			}
			return validationErr(ErrUnmappedProjectConfiguration, p.ID(), "project %q configuration (%s, %s) is not offered by the solution", p.Name(), c.BuildType, c.Platform)
		}
		if len(configs) == 0 {
			// Nothing to map for non-buildable kinds.
			continue
		}
		for _, sc := range s.configurations {
			if _, ok := s.matchConfiguration(p, sc); !ok {
				return validationErr(ErrUnmappedProjectConfiguration, p.ID(), "project %q has no configuration for (%s, %s)", p.Name(), sc.BuildType, sc.Platform)
			}
		}
	}
	return nil
}

// matchConfiguration resolves which project configuration is active for a
// solution configuration: an exact (build-type, platform) match wins,
// otherwise a configuration with the same build type on the "Any CPU"
// platform. There is no silent default beyond that.
func (s *Solution) matchConfiguration(p Project, sc *Configuration) (*Configuration, bool) {
	var fallback *Configuration
	for _, c := range p.Configurations() {
		if c.BuildType != sc.BuildType {
			continue
		}
		if c.Platform == sc.Platform {
			return c, true
		}
		if fallback == nil && isAnyPlatform(c.Platform) {
			fallback = c
		}
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}

func isAnyPlatform(platform string) bool {
	return platform == platformAny || platform == "AnyCPU"
}

// foldersPreOrder returns every non-root folder in deterministic pre-order.
func (s *Solution) foldersPreOrder() []*Folder {
	var out []*Folder
	stack := []*Folder{s.root}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.root {
			out = append(out, f)
		}
		children := f.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if sub, ok := children[i].(*Folder); ok {
				stack = append(stack, sub)
			}
		}
	}
	return out
}

// Render emits the solution document: the project header lines, the
// configuration matrix, the per-project configuration mapping, and the
// folder nesting block. Lines use CRLF as the IDE's loader expects; all
// ordering is insertion order so re-rendering an unchanged model is
// byte-identical.
func (s *Solution) Render() ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Microsoft Visual Studio Solution File, Format Version %s\r\n", slnFormatVersion)
	b.WriteString("# Visual Studio 15\r\n")

	slnDir := s.outputDir
	for _, p := range s.Projects() {
		fmt.Fprintf(&b, "Project(\"%s\") = \"%s\", \"%s\", \"%s\"\r\n",
			p.TypeGUID(), p.Name(), s.projectRelPath(slnDir, p), p.ID())
		if deps := p.Dependencies(); len(deps) > 0 && p.DependencyStyle() == DependencyBuildOrder {
			b.WriteString("\tProjectSection(ProjectDependencies) = postProject\r\n")
			for _, dep := range deps {
				fmt.Fprintf(&b, "\t\t%s = %s\r\n", dep, dep)
			}
			b.WriteString("\tEndProjectSection\r\n")
		}
		b.WriteString("EndProject\r\n")
	}

	folders := s.foldersPreOrder()
	for _, f := range folders {
		fmt.Fprintf(&b, "Project(\"%s\") = \"%s\", \"%s\", \"%s\"\r\n",
			folderTypeGUID, f.Name(), f.Name(), f.ID())
		b.WriteString("EndProject\r\n")
	}

	b.WriteString("Global\r\n")

	b.WriteString("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\r\n")
	for _, c := range s.configurations {
		fmt.Fprintf(&b, "\t\t%s = %s\r\n", c.Pair(), c.Pair())
	}
	b.WriteString("\tEndGlobalSection\r\n")

	b.WriteString("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution\r\n")
	for _, p := range s.Projects() {
		if len(p.Configurations()) == 0 {
			continue
		}
		for _, sc := range s.configurations {
			active, ok := s.matchConfiguration(p, sc)
			if !ok {
				return nil, validationErr(ErrUnmappedProjectConfiguration, p.ID(), "project %q has no configuration for (%s, %s)", p.Name(), sc.BuildType, sc.Platform)
			}
			fmt.Fprintf(&b, "\t\t%s.%s.ActiveCfg = %s\r\n", p.ID(), sc.Pair(), active.Pair())
			fmt.Fprintf(&b, "\t\t%s.%s.Build.0 = %s\r\n", p.ID(), sc.Pair(), active.Pair())
		}
	}
	b.WriteString("\tEndGlobalSection\r\n")

	b.WriteString("\tGlobalSection(SolutionProperties) = preSolution\r\n")
	b.WriteString("\t\tHideSolutionNode = FALSE\r\n")
	b.WriteString("\tEndGlobalSection\r\n")

	var nesting []byte
	for _, f := range folders {
		nesting = append(nesting, f.Render()...)
	}
	if len(nesting) > 0 {
		b.WriteString("\tGlobalSection(NestedProjects) = preSolution\r\n")
		b.Write(nesting)
		b.WriteString("\tEndGlobalSection\r\n")
	}

	b.WriteString("EndGlobal\r\n")
	return []byte(b.String()), nil
}

// projectRelPath renders a project's path relative to the solution directory
// in backslash form for the Project header line.
func (s *Solution) projectRelPath(slnDir string, p Project) string {
	full := s.ProjectFilePath(p)
	rel, err := filepath.Rel(slnDir, full)
	if err != nil {
		rel = full
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}
