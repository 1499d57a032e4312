package fileutil

import (
	"os"
	"path/filepath"

	"github.com/harrison/lff/internal/models"
)

// Inspect builds the FileRecord for a single path.
//
// The size comes from os.Lstat so symbolic links are measured themselves and
// never followed. When opts.Absolute is set the recorded name is the
// canonical absolute path; otherwise it is path exactly as given. Failures
// are returned as *WalkError tagged with path.
func Inspect(path string, opts *models.WalkOptions) (models.FileRecord, error) {
	name := path
	if opts != nil && opts.Absolute {
		abs, err := canonicalize(path)
		if err != nil {
			return models.FileRecord{}, &WalkError{Kind: ErrCanonicalize, Path: path, Err: err}
		}
		name = abs
	}

	info, err := os.Lstat(path)
	if err != nil {
		return models.FileRecord{}, &WalkError{Kind: ErrMetadata, Path: path, Err: err}
	}

	ext, hasExt := models.PathExtension(path)

	return models.FileRecord{
		Name:         name,
		Extension:    ext,
		HasExtension: hasExt,
		Size:         uint64(info.Size()),
		Hidden:       models.IsHiddenPath(path),
	}, nil
}

// canonicalize resolves path to an absolute path with every symlink evaluated.
// It fails for broken links and for files that no longer exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
