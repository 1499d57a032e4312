package fileutil

import (
	"github.com/gobwas/glob"

	"github.com/harrison/lff/internal/models"
)

// CompilePattern compiles an optional name pattern.
// A nil pattern yields a nil matcher, which matches every name.
// No separators are declared, so '*' and '?' also match path separators.
func CompilePattern(pattern *string) (glob.Glob, error) {
	if pattern == nil {
		return nil, nil
	}
	g, err := glob.Compile(*pattern)
	if err != nil {
		return nil, &PatternError{Pattern: *pattern, Err: err}
	}
	return g, nil
}

// Matches reports whether rec satisfies every active filter in opts.
// matcher must be the compiled form of opts.NamePattern.
func Matches(rec models.FileRecord, opts *models.WalkOptions, matcher glob.Glob) bool {
	if rec.Size < opts.MinSizeBytes {
		return false
	}
	if opts.Extension != nil && (!rec.HasExtension || rec.Extension != *opts.Extension) {
		return false
	}
	if matcher != nil && !matcher.Match(rec.Name) {
		return false
	}
	if opts.ExcludeHidden && rec.Hidden {
		return false
	}
	return true
}
