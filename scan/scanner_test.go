package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govsgen/model"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

func TestScanSelectsByPattern(t *testing.T) {
	root := writeTree(t,
		"src/main.py",
		"src/util/helpers.py",
		"src/util/helpers_test.py",
		"data/config.json",
		"README.md",
	)

	items, err := Scan(Options{
		Root: root,
		Compile: Ruleset{
			Include: []string{"src/**/*.py"},
			Exclude: []string{"**/*_test.py"},
		},
		Content: Ruleset{
			Include: []string{"data/**"},
		},
	})
	require.NoError(t, err)

	want := []model.Item{
		{Path: "src/main.py", Kind: model.ItemCompile},
		{Path: "src/util/helpers.py", Kind: model.ItemCompile},
		{Path: "data/config.json", Kind: model.ItemContent},
	}
	assert.Equal(t, want, items)
}

func TestScanCompileWinsOverContent(t *testing.T) {
	root := writeTree(t, "src/main.py")

	items, err := Scan(Options{
		Root:    root,
		Compile: Ruleset{Include: []string{"**/*.py"}},
		Content: Ruleset{Include: []string{"**"}},
	})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, model.ItemCompile, items[0].Kind)
}

func TestScanEmptyIncludeSelectsNothing(t *testing.T) {
	root := writeTree(t, "src/main.py")

	items, err := Scan(Options{Root: root})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScanRejectsInvalidPattern(t *testing.T) {
	root := writeTree(t, "src/main.py")

	_, err := Scan(Options{
		Root:    root,
		Compile: Ruleset{Include: []string{"src/[.py"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestScanRequiresRoot(t *testing.T) {
	_, err := Scan(Options{Compile: Ruleset{Include: []string{"**"}}})
	require.Error(t, err)
}

func TestScanIsDeterministic(t *testing.T) {
	root := writeTree(t,
		"b.py", "a.py", "c.py",
		"docs/z.md", "docs/a.md",
	)

	opts := Options{
		Root:    root,
		Compile: Ruleset{Include: []string{"*.py"}},
		Content: Ruleset{Include: []string{"docs/*.md"}},
	}

	first, err := Scan(opts)
	require.NoError(t, err)
	second, err := Scan(opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a.py", first[0].Path)
	assert.Equal(t, "docs/a.md", first[3].Path)
}

func TestApplyAppendsItems(t *testing.T) {
	root := writeTree(t, "src/main.py", "data/cfg.json")

	p := &collector{}
	err := Apply(p, Options{
		Root:    root,
		Compile: Ruleset{Include: []string{"src/**/*.py"}},
		Content: Ruleset{Include: []string{"data/**"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Item{
		{Path: "src/main.py", Kind: model.ItemCompile},
		{Path: "data/cfg.json", Kind: model.ItemContent},
	}, p.items)
}

type collector struct {
	items []model.Item
}

func (c *collector) AddItem(path string, kind model.ItemKind) {
	c.items = append(c.items, model.Item{Path: path, Kind: kind})
}
