package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExcludedDirs are subtrees skipped during enumeration: dependency
// and public-asset directories that may sit inside the content root.
var DefaultExcludedDirs = []string{"node_modules", "public", ".git"}

// LocalDir serves documents from a directory on disk.
type LocalDir struct {
	root     string
	excluded map[string]bool
}

// NewLocalDir creates a local directory source rooted at root. excludedDirs
// overrides DefaultExcludedDirs when non-nil; directories with these names
// are skipped at any depth.
func NewLocalDir(root string, excludedDirs []string) *LocalDir {
	if excludedDirs == nil {
		excludedDirs = DefaultExcludedDirs
	}
	excluded := make(map[string]bool, len(excludedDirs))
	for _, name := range excludedDirs {
		excluded[name] = true
	}
	return &LocalDir{root: root, excluded: excluded}
}

// List walks the tree and returns the relative paths of all documents,
// sorted for stable processing order.
func (l *LocalDir) List(ctx context.Context) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.root && l.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), DocExtension) {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Fetch reads one document by its relative path.
func (l *LocalDir) Fetch(ctx context.Context, relPath string) (*Document, error) {
	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}
	return &Document{Path: relPath, Content: string(data)}, nil
}
