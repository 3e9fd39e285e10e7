// Package scan discovers source items on disk for inclusion in a project,
// filtered by include/exclude glob patterns.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"govsgen/model"
)

// Ruleset selects files of one item kind. Patterns use doublestar syntax
// ("src/**/*.py"). An empty Include list selects nothing; Exclude wins over
// Include.
type Ruleset struct {
	Include []string
	Exclude []string
}

// Options configures a scan of one directory tree.
type Options struct {
	// Root is the directory the patterns are evaluated against. Discovered
	// paths are reported relative to it.
	Root string

	// Compile selects files recorded as compile items
	Compile Ruleset

	// Content selects files recorded as content items
	Content Ruleset
}

// Scan walks the tree under opts.Root once and returns the matching items,
// compile items first, each group sorted by path so repeated scans of an
// unchanged tree produce identical item lists.
func Scan(opts Options) ([]model.Item, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("scan: root directory not set")
	}
	for _, pattern := range append(append([]string{}, opts.Compile.Include...), opts.Content.Include...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("scan: invalid pattern %q", pattern)
		}
	}

	var compile, content []string
	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(opts.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if opts.Compile.matches(rel) {
			compile = append(compile, rel)
		} else if opts.Content.matches(rel) {
			content = append(content, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	sort.Strings(compile)
	sort.Strings(content)

	items := make([]model.Item, 0, len(compile)+len(content))
	for _, path := range compile {
		items = append(items, model.Item{Path: path, Kind: model.ItemCompile})
	}
	for _, path := range content {
		items = append(items, model.Item{Path: path, Kind: model.ItemContent})
	}
	return items, nil
}

// Apply scans the tree and appends every discovered item to the project.
func Apply(p interface {
	AddItem(path string, kind model.ItemKind)
}, opts Options) error {
	items, err := Scan(opts)
	if err != nil {
		return err
	}
	for _, it := range items {
		p.AddItem(it.Path, it.Kind)
	}
	return nil
}

func (r Ruleset) matches(rel string) bool {
	matched := false
	for _, pattern := range r.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, pattern := range r.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}
