// Package config loads a YAML suite description into the solution object
// model. This is the thin collaborator in front of the core: it only
// constructs the graph; all consistency checking happens in the writer's
// validation phase.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"govsgen/identity"
	"govsgen/model"
	"govsgen/scan"
)

// Suite is the top-level YAML document: one or more solutions sharing a
// generation run.
type Suite struct {
	// Root is the base directory for relative output and scan paths,
	// resolved against the suite file's directory
	Root string `yaml:"root"`

	Solutions []SolutionConfig `yaml:"solutions"`
}

// SolutionConfig describes one solution.
type SolutionConfig struct {
	Name           string                `yaml:"name"`
	Output         string                `yaml:"output"`
	Configurations []ConfigurationConfig `yaml:"configurations"`
	Projects       []ProjectConfig       `yaml:"projects"`
	Folders        []FolderConfig        `yaml:"folders"`
}

// ConfigurationConfig describes one (build-type, platform) pair.
type ConfigurationConfig struct {
	BuildType  string            `yaml:"build_type"`
	Platform   string            `yaml:"platform"`
	Properties map[string]string `yaml:"properties"`
}

// ProjectConfig describes one project of any kind. Kind-specific fields are
// ignored by kinds that do not use them.
type ProjectConfig struct {
	Name                 string                `yaml:"name"`
	Kind                 string                `yaml:"kind"`
	Output               string                `yaml:"output"`
	RootNamespace        string                `yaml:"root_namespace"`
	StartupFile          string                `yaml:"startup_file"`
	SearchPaths          []string              `yaml:"search_paths"`
	WorkingDirectory     string                `yaml:"working_directory"`
	InterpreterArguments []string              `yaml:"interpreter_arguments"`
	Configurations       []ConfigurationConfig `yaml:"configurations"`
	DependsOn            []string              `yaml:"depends_on"`
	CompileFiles         []string              `yaml:"compile_files"`
	ContentFiles         []string              `yaml:"content_files"`
	Scan                 *ScanConfig           `yaml:"scan"`
}

// ScanConfig discovers items on disk with include/exclude glob filters.
type ScanConfig struct {
	Root           string   `yaml:"root"`
	CompileInclude []string `yaml:"compile_include"`
	CompileExclude []string `yaml:"compile_exclude"`
	ContentInclude []string `yaml:"content_include"`
	ContentExclude []string `yaml:"content_exclude"`
}

// FolderConfig describes one display folder and its contents.
type FolderConfig struct {
	Name     string         `yaml:"name"`
	Projects []string       `yaml:"projects"`
	Folders  []FolderConfig `yaml:"folders"`
}

// Load reads a suite file and builds the solution graphs for one generation
// run. All solutions share one identity registry.
func Load(path string) ([]*model.Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse builds the solution graphs from suite YAML. Relative paths resolve
// against baseDir (then the suite's root, if set).
func Parse(data []byte, baseDir string) ([]*model.Solution, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var suite Suite
	if err := dec.Decode(&suite); err != nil {
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if len(suite.Solutions) == 0 {
		return nil, fmt.Errorf("suite declares no solutions")
	}

	root := baseDir
	if suite.Root != "" {
		root = resolve(baseDir, suite.Root)
	}

	reg := identity.NewRegistry()
	solutions := make([]*model.Solution, 0, len(suite.Solutions))
	for _, sc := range suite.Solutions {
		sln, err := buildSolution(reg, root, sc)
		if err != nil {
			return nil, fmt.Errorf("solution %q: %w", sc.Name, err)
		}
		solutions = append(solutions, sln)
	}
	return solutions, nil
}

func buildSolution(reg *identity.Registry, root string, sc SolutionConfig) (*model.Solution, error) {
	if sc.Name == "" {
		return nil, fmt.Errorf("solution has no name")
	}

	sln := model.NewSolution(reg, sc.Name, resolve(root, sc.Output))
	for _, cc := range sc.Configurations {
		sln.AddConfiguration(buildConfiguration(cc))
	}

	byName := make(map[string]model.Project, len(sc.Projects))
	for _, pc := range sc.Projects {
		p, err := buildProject(reg, root, sc, pc)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", pc.Name, err)
		}
		if _, dup := byName[pc.Name]; dup {
			return nil, fmt.Errorf("project name %q used twice", pc.Name)
		}
		byName[pc.Name] = p
		if err := sln.AddProject(p); err != nil {
			return nil, err
		}
	}

	// Dependencies resolve by project name once every project exists.
	for _, pc := range sc.Projects {
		p := byName[pc.Name]
		core := projectCore(p)
		for _, depName := range pc.DependsOn {
			dep, ok := byName[depName]
			if !ok {
				return nil, fmt.Errorf("project %q depends on unknown project %q", pc.Name, depName)
			}
			core.AddDependency(dep.ID())
		}
	}

	for _, fc := range sc.Folders {
		if err := buildFolder(reg, sln.Root(), byName, fc); err != nil {
			return nil, err
		}
	}
	return sln, nil
}

func buildFolder(reg *identity.Registry, parent *model.Folder, byName map[string]model.Project, fc FolderConfig) error {
	folder := model.NewFolder(reg, fc.Name)
	if err := parent.AddFolder(folder); err != nil {
		return err
	}
	for _, name := range fc.Projects {
		p, ok := byName[name]
		if !ok {
			return fmt.Errorf("folder %q references unknown project %q", fc.Name, name)
		}
		if err := folder.AddProject(p); err != nil {
			return err
		}
	}
	for _, sub := range fc.Folders {
		if err := buildFolder(reg, folder, byName, sub); err != nil {
			return err
		}
	}
	return nil
}

func buildProject(reg *identity.Registry, root string, sc SolutionConfig, pc ProjectConfig) (model.Project, error) {
	var p model.Project
	switch model.ProjectKind(pc.Kind) {
	case model.KindNative:
		np := model.NewNativeProject(reg, pc.Name)
		np.RootNamespace = pc.RootNamespace
		p = np
	case model.KindScript:
		sp := model.NewScriptProject(reg, pc.Name)
		sp.RootNamespace = pc.RootNamespace
		sp.StartupFile = pc.StartupFile
		sp.SearchPaths = pc.SearchPaths
		sp.WorkingDirectory = pc.WorkingDirectory
		sp.InterpreterArguments = pc.InterpreterArguments
		p = sp
	case model.KindShared:
		p = model.NewSharedProject(reg, pc.Name)
	default:
		return nil, fmt.Errorf("unknown project kind %q (supported: native, script, shared)", pc.Kind)
	}

	core := projectCore(p)
	core.SetOutputPath(pc.Output)

	configs := pc.Configurations
	if len(configs) == 0 && p.Kind() != model.KindShared {
		// Buildable projects without explicit configurations take the
		// solution's pairs, without properties.
		for _, cc := range sc.Configurations {
			configs = append(configs, ConfigurationConfig{BuildType: cc.BuildType, Platform: cc.Platform})
		}
	}
	for _, cc := range configs {
		core.AddConfiguration(buildConfiguration(cc))
	}

	for _, path := range pc.CompileFiles {
		core.AddItem(path, model.ItemCompile)
	}
	for _, path := range pc.ContentFiles {
		core.AddItem(path, model.ItemContent)
	}
	if pc.Scan != nil {
		err := scan.Apply(core, scan.Options{
			Root:    resolve(root, pc.Scan.Root),
			Compile: scan.Ruleset{Include: pc.Scan.CompileInclude, Exclude: pc.Scan.CompileExclude},
			Content: scan.Ruleset{Include: pc.Scan.ContentInclude, Exclude: pc.Scan.ContentExclude},
		})
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func buildConfiguration(cc ConfigurationConfig) *model.Configuration {
	c := model.NewConfiguration(cc.BuildType, cc.Platform)
	// YAML maps are unordered; sort keys so generation stays deterministic.
	keys := make([]string, 0, len(cc.Properties))
	for k := range cc.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.SetProperty(k, cc.Properties[k])
	}
	return c
}

// projectCore exposes the shared mutation surface of any built-in kind.
func projectCore(p model.Project) *model.ProjectCore {
	switch v := p.(type) {
	case *model.NativeProject:
		return &v.ProjectCore
	case *model.ScriptProject:
		return &v.ProjectCore
	case *model.SharedProject:
		return &v.ProjectCore
	}
	panic(fmt.Sprintf("unsupported project type %T", p))
}

func resolve(base, path string) string {
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
