package models

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileRecord represents one regular file found during a walk.
// Records are built once by the inspector and never modified afterwards.
type FileRecord struct {
	Name         string // Path as supplied to the inspector, or its canonical absolute form
	Extension    string // Suffix after the last '.' of the final path segment
	HasExtension bool   // False when the final segment carries no extension at all
	Size         uint64 // Byte count from symlink metadata (the link itself, never its target)
	Hidden       bool   // Final path segment starts with '.'
}

// IsHiddenPath reports whether the final segment of path starts with '.'.
// Names that are not valid UTF-8 are never hidden, and neither are the
// special segments "." and "..".
func IsHiddenPath(path string) bool {
	name := finalSegment(path)
	if name == "" || name == "." || name == ".." {
		return false
	}
	if !utf8.ValidString(name) {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// PathExtension returns the suffix after the last '.' in the final segment of path.
// A leading dot does not start an extension, so ".hidden" has none while
// "file." has an empty one.
func PathExtension(path string) (string, bool) {
	name := finalSegment(path)
	if name == "" || name == ".." {
		return "", false
	}
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return "", false
	}
	return name[idx+1:], true
}

// finalSegment returns the last element of path without trailing separators.
// Unlike filepath.Base it returns "" for an empty path.
func finalSegment(path string) string {
	if path == "" {
		return ""
	}
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" {
		return ""
	}
	return filepath.Base(trimmed)
}
