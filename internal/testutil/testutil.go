// Package testutil provides testing utilities for tourline tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Project layout used by SetupProject.
const (
	ProjectRoot      = "/repo"
	ToursDir         = "/repo/.tours"
	SearchStringsDir = "/repo/.tours/search-strings"
)

// SetupProject creates an in-memory project with the tours and
// search-strings directories, plus the given files. Paths in files are
// relative to ProjectRoot.
func SetupProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, dir := range []string{ToursDir, SearchStringsDir} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	WriteFiles(t, fs, ProjectRoot, files)
	return fs
}

// SetupProjectOnDisk is SetupProject on a real temporary directory. It
// returns the project root.
func SetupProjectOnDisk(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{".tours", filepath.Join(".tours", "search-strings")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	WriteFiles(t, afero.NewOsFs(), root, files)
	return root
}

// WriteFiles writes each file under root, creating parent directories.
func WriteFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		fullPath := filepath.Join(root, path)
		if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := afero.WriteFile(fs, fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
