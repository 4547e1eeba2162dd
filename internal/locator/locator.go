// Package locator finds the source file declaring a given class or type.
package locator

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tracelens/tracelens/internal/contract"
)

// skipDirs are directory names that never contain first-party sources.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"testdata":     {},
	"dist":         {},
	"out":          {},
	"build":        {},
	"target":       {},
	"coverage":     {},
}

// Locator scans a workspace for type declarations.
type Locator struct {
	workspacePath string
}

var _ contract.SourceLocator = &Locator{} // Compile-time check

// New creates a Locator rooted at the given workspace path.
func New(workspacePath string) *Locator {
	return &Locator{workspacePath: workspacePath}
}

// FindClass walks the workspace looking for the Go source file that declares
// the named type. It returns the file path and true on a hit, or empty and
// false when no declaration exists anywhere under the root.
func (l *Locator) FindClass(className string) (string, bool, error) {
	var found string
	err := filepath.WalkDir(l.workspacePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name(), path, l.workspacePath) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil // unreadable files are skipped, not fatal
		}
		if containsTypeDecl(string(content), className) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return found, found != "", nil
}

// shouldSkipDir filters out dependency, build and hidden directories.
func shouldSkipDir(name, path, root string) bool {
	if path == root {
		return false
	}
	if _, ok := skipDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// containsTypeDecl checks for a top-level type declaration with the given
// name. Plain string matching keeps the scan cheap; the syntax-level check
// happens later in srcparse once a candidate file is chosen.
func containsTypeDecl(content, className string) bool {
	patterns := []string{
		"type " + className + " struct",
		"type " + className + " interface",
		"type " + className + " ",
	}
	for _, pattern := range patterns {
		if strings.Contains(content, pattern) {
			return true
		}
	}
	return false
}
