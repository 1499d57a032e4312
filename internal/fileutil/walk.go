package fileutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/harrison/lff/internal/models"
)

// Logger receives diagnostic messages from a walk.
// Implementations must be safe for concurrent use.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

type nopLogger struct{}

func (nopLogger) LogTrace(string) {}
func (nopLogger) LogDebug(string) {}

// walker holds the state shared by every goroutine of one walk.
type walker struct {
	id      string
	opts    *models.WalkOptions
	matcher glob.Glob
	logger  Logger

	// io bounds concurrent filesystem calls. It is only held around a call,
	// never while waiting on child goroutines.
	io *semaphore.Weighted

	// retained counts records kept so far across the whole tree.
	retained atomic.Int64
}

// Walk recursively collects the regular files under dir that satisfy opts.
//
// Entries of every directory are handled concurrently and subdirectories are
// descended in parallel. The result is flat and unordered. Subdirectories
// that cannot be opened are skipped; any other failure (the root itself,
// file metadata, canonicalization, an invalid name pattern) ends the walk
// with the first error observed.
//
// When opts.Limit is set and no sort is requested, the walk stops producing
// records once Limit have been retained. The bound is best effort: goroutines
// running concurrently may overshoot it, so callers truncate afterwards.
func Walk(dir string, opts *models.WalkOptions, logger Logger) ([]models.FileRecord, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	matcher, err := CompilePattern(opts.NamePattern)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	w := &walker{
		id:      uuid.NewString(),
		opts:    opts,
		matcher: matcher,
		logger:  logger,
		io:      semaphore.NewWeighted(int64(workers)),
	}

	w.logger.LogDebug(fmt.Sprintf("walk %s: starting at %s (workers: %d)", w.id, dir, workers))

	entries, _, err := w.listDir(dir)
	if err != nil {
		return nil, &WalkError{Kind: ErrRootUnreadable, Path: dir, Err: err}
	}

	records, err := w.fanOut(dir, entries)
	if err != nil {
		w.logger.LogDebug(fmt.Sprintf("walk %s: failed: %v", w.id, err))
		return nil, err
	}

	w.logger.LogDebug(fmt.Sprintf("walk %s: finished with %d records", w.id, len(records)))
	return records, nil
}

// fanOut handles the entries of dir concurrently and merges their records.
// The first error returned by any entry becomes the error of the level.
func (w *walker) fanOut(dir string, entries []os.DirEntry) ([]models.FileRecord, error) {
	// Each entry writes only its own slot, so no locking is needed.
	fragments := make([][]models.FileRecord, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		g.Go(func() error {
			records, err := w.handleEntry(filepath.Join(dir, entry.Name()), entry)
			if err != nil {
				return err
			}
			fragments[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, fragment := range fragments {
		total += len(fragment)
	}
	records := make([]models.FileRecord, 0, total)
	for _, fragment := range fragments {
		records = append(records, fragment...)
	}
	return records, nil
}

// handleEntry classifies one directory entry and returns its contribution.
func (w *walker) handleEntry(path string, entry os.DirEntry) ([]models.FileRecord, error) {
	if w.limitReached() {
		return nil, nil
	}

	// Type comes from the directory listing and does not follow symlinks.
	mode := entry.Type()
	switch {
	case mode.IsRegular():
		return w.handleFile(path)
	case mode.IsDir():
		return w.handleSubdir(path)
	default:
		w.logger.LogTrace(fmt.Sprintf("walk %s: ignoring %s (%s)", w.id, path, mode.Type()))
		return nil, nil
	}
}

func (w *walker) handleFile(path string) ([]models.FileRecord, error) {
	if err := w.io.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	rec, err := Inspect(path, w.opts)
	w.io.Release(1)
	if err != nil {
		return nil, err
	}

	if !Matches(rec, w.opts, w.matcher) {
		return nil, nil
	}
	w.retained.Add(1)
	return []models.FileRecord{rec}, nil
}

func (w *walker) handleSubdir(path string) ([]models.FileRecord, error) {
	if w.opts.ExcludeHidden && models.IsHiddenPath(path) {
		w.logger.LogTrace(fmt.Sprintf("walk %s: pruning hidden directory %s", w.id, path))
		return nil, nil
	}

	entries, opened, err := w.listDir(path)
	if !opened {
		w.logger.LogDebug(fmt.Sprintf("walk %s: skipping unreadable directory %s: %v", w.id, path, err))
		return nil, nil
	}
	if err != nil {
		return nil, &WalkError{Kind: ErrReadDir, Path: path, Err: err}
	}
	return w.fanOut(path, entries)
}

// limitReached reports whether the best-effort early exit applies now.
func (w *walker) limitReached() bool {
	if !w.opts.EarlyExitAllowed() {
		return false
	}
	return w.retained.Load() >= int64(*w.opts.Limit)
}

// listDir opens and enumerates dir while holding a single I/O slot.
// opened is false when the directory could not be opened at all, which
// callers treat differently from a failure halfway through enumeration.
func (w *walker) listDir(dir string) (entries []os.DirEntry, opened bool, err error) {
	if err := w.io.Acquire(context.Background(), 1); err != nil {
		return nil, false, err
	}
	defer w.io.Release(1)

	f, err := os.Open(dir)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	entries, err = f.ReadDir(-1)
	if err != nil {
		return nil, true, err
	}
	return entries, true, nil
}
