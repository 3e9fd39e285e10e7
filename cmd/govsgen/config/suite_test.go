package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govsgen/model"
)

const demoSuite = `
root: build
solutions:
  - name: demo
    output: vs
    configurations:
      - build_type: Debug
        platform: x64
      - build_type: Release
        platform: x64
        properties:
          WholeProgramOptimization: "true"
    projects:
      - name: core
        kind: native
        output: core/core.vcxproj
        compile_files: [src/main.cpp]
        content_files: [include/core.h]
      - name: tools
        kind: script
        output: tools/tools.pyproj
        startup_file: main.py
        search_paths: [src, vendor]
        depends_on: [core]
      - name: common
        kind: shared
        output: common/common.projitems
    folders:
      - name: Libs
        projects: [core]
        folders:
          - name: Internal
            projects: [common]
`

func TestParseBuildsSolutionGraph(t *testing.T) {
	solutions, err := Parse([]byte(demoSuite), "/suite")
	require.NoError(t, err)
	require.Len(t, solutions, 1)

	sln := solutions[0]
	assert.Equal(t, "demo", sln.Name())
	assert.Equal(t, filepath.Join("/suite", "build", "vs"), sln.OutputDir())
	require.Len(t, sln.Configurations(), 2)
	assert.Equal(t, "Release|x64", sln.Configurations()[1].Pair())
	assert.Equal(t, []model.Property{{Key: "WholeProgramOptimization", Value: "true"}},
		sln.Configurations()[1].Properties())

	projects := sln.Projects()
	require.Len(t, projects, 3)
	core, tools, common := projects[0], projects[1], projects[2]

	assert.Equal(t, model.KindNative, core.Kind())
	assert.Equal(t, "core/core.vcxproj", core.OutputPath())

	assert.Equal(t, model.KindScript, tools.Kind())
	require.Len(t, tools.Dependencies(), 1)
	assert.Equal(t, core.ID(), tools.Dependencies()[0])
	sp, ok := tools.(*model.ScriptProject)
	require.True(t, ok)
	assert.Equal(t, "main.py", sp.StartupFile)
	assert.Equal(t, []string{"src", "vendor"}, sp.SearchPaths)

	assert.Equal(t, model.KindShared, common.Kind())

	require.NoError(t, sln.Validate())
}

func TestParseInheritsSolutionConfigurations(t *testing.T) {
	solutions, err := Parse([]byte(demoSuite), "/suite")
	require.NoError(t, err)

	sln := solutions[0]
	core := sln.Projects()[0]
	require.Len(t, core.Configurations(), 2)
	assert.Equal(t, "Debug|x64", core.Configurations()[0].Pair())
	// Inherited pairs carry no properties.
	assert.Empty(t, core.Configurations()[1].Properties())

	// Shared projects build nothing and inherit none.
	common := sln.Projects()[2]
	assert.Empty(t, common.Configurations())
}

func TestParsePlacesProjectsInFolders(t *testing.T) {
	solutions, err := Parse([]byte(demoSuite), "/suite")
	require.NoError(t, err)

	sln := solutions[0]
	root := sln.Root().Children()
	require.Len(t, root, 1)

	libs, ok := root[0].(*model.Folder)
	require.True(t, ok)
	assert.Equal(t, "Libs", libs.Name())

	children := libs.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "core", children[0].Name())

	internal, ok := children[1].(*model.Folder)
	require.True(t, ok)
	assert.Equal(t, "Internal", internal.Name())
	require.Len(t, internal.Children(), 1)
	assert.Equal(t, "common", internal.Children()[0].Name())
}

func TestParseRejectsUnknownKind(t *testing.T) {
	const suite = `
solutions:
  - name: demo
    projects:
      - name: core
        kind: managed
        output: core/core.csproj
`
	_, err := Parse([]byte(suite), "/suite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown project kind "managed"`)
}

func TestParseRejectsUnknownDependency(t *testing.T) {
	const suite = `
solutions:
  - name: demo
    projects:
      - name: app
        kind: native
        output: app/app.vcxproj
        depends_on: [ghost]
`
	_, err := Parse([]byte(suite), "/suite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `depends on unknown project "ghost"`)
}

func TestParseRejectsDuplicateProjectName(t *testing.T) {
	const suite = `
solutions:
  - name: demo
    projects:
      - name: core
        kind: native
        output: a/a.vcxproj
      - name: core
        kind: native
        output: b/b.vcxproj
`
	_, err := Parse([]byte(suite), "/suite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project name "core" used twice`)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	const suite = `
solutions:
  - name: demo
    colour: blue
`
	_, err := Parse([]byte(suite), "/suite")
	require.Error(t, err)
}

func TestParseRejectsEmptySuite(t *testing.T) {
	_, err := Parse([]byte("solutions: []"), "/suite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solutions")
}

func TestParseFolderReferencesUnknownProject(t *testing.T) {
	const suite = `
solutions:
  - name: demo
    projects:
      - name: core
        kind: native
        output: core/core.vcxproj
    folders:
      - name: Libs
        projects: [ghost]
`
	_, err := Parse([]byte(suite), "/suite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `references unknown project "ghost"`)
}
