// Package project reads the on-disk artifacts of the target Python project:
// the version marker, the canonical dependency declaration in setup.py, and
// the workspace file layout. It only parses; policy lives in the checks.
package project

import (
	"os"
	"path/filepath"
	"strings"
)

// Layout locates the project files the gate reads and writes.
type Layout struct {
	// Dir is the project root.
	Dir string
	// Package is the importable package name, e.g. "tphate".
	Package string
	// TestDir is the test directory handed to the test runner, relative to Dir.
	TestDir string
}

func NewLayout(dir, pkg, testDir string) Layout {
	if pkg == "" {
		pkg = InferPackage(dir)
	}
	if testDir == "" {
		testDir = "test"
	}
	return Layout{Dir: dir, Package: pkg, TestDir: testDir}
}

func (l Layout) SetupFile() string      { return filepath.Join(l.Dir, "setup.py") }
func (l Layout) PyprojectFile() string  { return filepath.Join(l.Dir, "pyproject.toml") }
func (l Layout) VersionFile() string    { return filepath.Join(l.Dir, l.Package, "version.py") }
func (l Layout) InitFile() string       { return filepath.Join(l.Dir, l.Package, "__init__.py") }
func (l Layout) TestPath() string       { return filepath.Join(l.Dir, l.TestDir) }
func (l Layout) RequirementsTxt() string { return filepath.Join(l.Dir, "requirements.txt") }

// RequiredFiles is the default set of files the workspace check expects,
// relative to the project root.
func (l Layout) RequiredFiles() []string {
	return []string{
		"setup.py",
		filepath.Join(l.Package, "__init__.py"),
		filepath.Join(l.Package, "version.py"),
		filepath.Join("docs", "CHANGELOG.md"),
		filepath.Join("docs", "RELEASE_GUIDE.md"),
		"requirements.txt",
	}
}

// InferPackage guesses the importable package name: the unique subdirectory
// holding both __init__.py and version.py, falling back to the lowercased
// project directory name.
func InferPackage(dir string) string {
	fallback := strings.ToLower(filepath.Base(dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fallback
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if fileExists(filepath.Join(sub, "__init__.py")) && fileExists(filepath.Join(sub, "version.py")) {
			found = append(found, e.Name())
		}
	}
	if len(found) == 1 {
		return found[0]
	}
	return fallback
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
