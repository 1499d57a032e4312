package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/lff/internal/models"
)

// fixtureRoot is the directory name the walk tests start from after
// changing into the fixture's parent, so record names stay short and stable.
const fixtureRoot = "test_resources"

// fixtureFiles maps relative paths to sizes:
//
//	test_resources/
//	  .hidden                (0)
//	  .hidden_dir/spider.txt (1183)
//	  LICENCE                (27)
//	  snow.txt               (544)
//	  visible/mud.md         (329)
var fixtureFiles = map[string]int{
	".hidden":                0,
	".hidden_dir/spider.txt": 1183,
	"LICENCE":                27,
	"snow.txt":               544,
	"visible/mud.md":         329,
}

// setupFixture creates the standard tree in a temp dir and changes into it.
func setupFixture(t *testing.T) {
	t.Helper()
	parent := t.TempDir()
	writeTree(t, filepath.Join(parent, fixtureRoot), fixtureFiles)
	t.Chdir(parent)
}

// writeTree creates files of the given sizes below root.
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// fixturePath returns the record name the walker produces for rel.
func fixturePath(rel string) string {
	return filepath.Join(fixtureRoot, filepath.FromSlash(rel))
}

// names extracts record names in order.
func names(records []models.FileRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Name
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// skipIfRoot skips tests that rely on permission bits, which root ignores.
func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
}
