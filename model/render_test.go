package model

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestSolutionRenderNestingAndConfigurations(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	core := addNative(t, reg, sln, "core", "core/core.vcxproj", [2]string{"Debug", "x64"})

	libs := NewFolder(reg, "Libs")
	if err := sln.Root().AddFolder(libs); err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	if err := libs.AddProject(core); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}

	if err := sln.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	data, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(data)

	wantLines := []string{
		"Microsoft Visual Studio Solution File, Format Version 12.00",
		fmt.Sprintf("Project(\"%s\") = \"core\", \"core\\core.vcxproj\", \"%s\"", core.TypeGUID(), core.ID()),
		fmt.Sprintf("Project(\"%s\") = \"Libs\", \"Libs\", \"%s\"", folderTypeGUID, libs.ID()),
		"\t\tDebug|x64 = Debug|x64",
		fmt.Sprintf("\t\t%s.Debug|x64.ActiveCfg = Debug|x64", core.ID()),
		fmt.Sprintf("\t\t%s.Debug|x64.Build.0 = Debug|x64", core.ID()),
		fmt.Sprintf("\t\t%s = %s", core.ID(), libs.ID()),
	}
	for _, line := range wantLines {
		if !strings.Contains(text, line+"\r\n") {
			t.Errorf("solution output missing line %q\n%s", line, text)
		}
	}
}

func TestSolutionRenderEmitsDependencySections(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	core := addNative(t, reg, sln, "core", "core/core.vcxproj", [2]string{"Debug", "x64"})

	tools := NewScriptProject(reg, "tools")
	tools.SetOutputPath("tools/tools.pyproj")
	tools.AddConfiguration(NewConfiguration("Debug", "x64"))
	tools.AddDependency(core.ID())
	if err := sln.AddProject(tools); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}

	data, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "\tProjectSection(ProjectDependencies) = postProject\r\n") {
		t.Errorf("solution output missing ProjectDependencies section\n%s", text)
	}
	if !strings.Contains(text, fmt.Sprintf("\t\t%s = %s\r\n", core.ID(), core.ID())) {
		t.Errorf("solution output missing dependency pair for %s", core.ID())
	}
}

func TestSolutionRenderOmitsDependencySectionForLinkedKinds(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	core := addNative(t, reg, sln, "core", "core/core.vcxproj", [2]string{"Debug", "x64"})
	app := addNative(t, reg, sln, "app", "app/app.vcxproj", [2]string{"Debug", "x64"})
	app.AddDependency(core.ID())

	data, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(data), "ProjectSection(ProjectDependencies)") {
		t.Errorf("linked-style dependencies must stay out of the solution file\n%s", data)
	}
}

func TestSolutionRenderUsesCRLFOnly(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	addNative(t, reg, sln, "core", "core/core.vcxproj", [2]string{"Debug", "x64"})

	data, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	stripped := bytes.ReplaceAll(data, []byte("\r\n"), nil)
	if bytes.ContainsAny(stripped, "\r\n") {
		t.Error("solution output contains bare CR or LF line endings")
	}
}

func TestNativeProjectRender(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	core := addNative(t, reg, sln, "core", "core/core.vcxproj", [2]string{"Debug", "x64"})
	core.Configurations()[0].SetProperty("UseDebugLibraries", "true")
	core.AddItem("src/main.cpp", ItemCompile)
	core.AddItem("src/util.cpp", ItemCompile)
	core.AddItem("include/util.h", ItemContent)

	app := addNative(t, reg, sln, "app", "app/app.vcxproj", [2]string{"Debug", "x64"})
	app.AddDependency(core.ID())

	data, err := core.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`xmlns="http://schemas.microsoft.com/developer/msbuild/2003"`,
		`<ProjectConfiguration Include="Debug|x64">`,
		fmt.Sprintf("<ProjectGuid>%s</ProjectGuid>", core.ID()),
		`<PropertyGroup Condition="&#39;$(Configuration)|$(Platform)&#39;==&#39;Debug|x64&#39;">`,
		"<UseDebugLibraries>true</UseDebugLibraries>",
		`<ClCompile Include="src/main.cpp">`,
		`<ClInclude Include="include/util.h">`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("native output missing %q\n%s", want, text)
		}
	}

	// Configuration blocks appear once per configuration.
	if got := strings.Count(text, "<PropertyGroup Condition="); got != 1 {
		t.Errorf("native output has %d configuration blocks, want 1", got)
	}

	// The dependent renders a linked reference, the dependency does not.
	appData, err := app.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(appData), fmt.Sprintf("<Project>%s</Project>", core.ID())) {
		t.Errorf("app output missing linked reference to core\n%s", appData)
	}
	if strings.Contains(text, "<ProjectReference") {
		t.Error("core output has a ProjectReference but declares no dependencies")
	}
}

func TestScriptProjectRender(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"})
	p := NewScriptProject(reg, "tools")
	p.SetOutputPath("tools/tools.pyproj")
	p.StartupFile = "main.py"
	p.SearchPaths = []string{"src", "vendor"}
	p.InterpreterArguments = []string{"-B", "-u"}
	p.AddConfiguration(NewConfiguration("Debug", "x64"))
	p.AddItem("main.py", ItemCompile)
	p.AddItem("data/config.json", ItemContent)
	if err := sln.AddProject(p); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}

	data, err := p.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"<StartupFile>main.py</StartupFile>",
		"<SearchPath>src;vendor</SearchPath>",
		"<InterpreterArguments>-B -u</InterpreterArguments>",
		`<Compile Include="main.py">`,
		`<Content Include="data/config.json">`,
		"Microsoft.PythonTools.targets",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("script output missing %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "<ProjectReference") {
		t.Error("script output must not carry linked references")
	}
}

func TestSharedProjectRender(t *testing.T) {
	reg, sln := newTestSolution(t)
	p := NewSharedProject(reg, "common")
	p.SetOutputPath("common/common.projitems")
	p.AddItem("common/strings.py", ItemCompile)
	if err := sln.AddProject(p); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}

	data, err := p.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"<HasSharedItems>true</HasSharedItems>",
		fmt.Sprintf("<SharedGUID>%s</SharedGUID>", p.ID()),
		"<Import_RootNamespace>common</Import_RootNamespace>",
		`<Compile Include="common/strings.py">`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("shared output missing %q\n%s", want, text)
		}
	}
}

func TestRenderIsByteIdentical(t *testing.T) {
	reg, sln := newTestSolution(t, [2]string{"Debug", "x64"}, [2]string{"Release", "x64"})
	core := addNative(t, reg, sln, "core", "core/core.vcxproj",
		[2]string{"Debug", "x64"}, [2]string{"Release", "x64"})
	core.AddItem("src/main.cpp", ItemCompile)

	libs := NewFolder(reg, "Libs")
	if err := sln.Root().AddFolder(libs); err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	if err := libs.AddProject(core); err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}

	first, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := sln.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("solution render is not byte-identical across runs")
	}

	p1, err := core.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	p2, err := core.Render(sln)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(p1, p2) {
		t.Error("project render is not byte-identical across runs")
	}
}
