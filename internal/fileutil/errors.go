package fileutil

import (
	"errors"
	"fmt"
)

// Sentinel kinds for walk failures. Match them with errors.Is.
var (
	// ErrRootUnreadable indicates the start directory could not be opened.
	ErrRootUnreadable = errors.New("start directory unreadable")

	// ErrReadDir indicates an opened directory could not be enumerated.
	ErrReadDir = errors.New("directory enumeration failed")

	// ErrMetadata indicates file metadata could not be retrieved.
	ErrMetadata = errors.New("file metadata unavailable")

	// ErrCanonicalize indicates an absolute path could not be generated.
	ErrCanonicalize = errors.New("path canonicalization failed")

	// ErrInvalidPattern indicates the name pattern is not a valid glob.
	ErrInvalidPattern = errors.New("invalid name pattern")
)

// WalkError is a fatal walk failure tagged with the path it originated at.
// Error returns the top-level message only; the underlying cause is
// available through Unwrap.
type WalkError struct {
	Kind error
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	switch e.Kind {
	case ErrRootUnreadable:
		return fmt.Sprintf("invalid supplied start directory: %q", e.Path)
	case ErrReadDir:
		return fmt.Sprintf("could not read entries of %q", e.Path)
	case ErrMetadata:
		return fmt.Sprintf("could not retrieve metadata for %q", e.Path)
	case ErrCanonicalize:
		return fmt.Sprintf("could not generate absolute path for %q", e.Path)
	default:
		return fmt.Sprintf("walk failed at %q", e.Path)
	}
}

func (e *WalkError) Unwrap() error { return e.Err }

// Is matches the error's kind so callers can test errors.Is(err, ErrMetadata).
func (e *WalkError) Is(target error) bool { return e.Kind == target }

// PatternError reports a name pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob from name pattern flag: '%s'", e.Pattern)
}

func (e *PatternError) Unwrap() error { return e.Err }

func (e *PatternError) Is(target error) bool { return target == ErrInvalidPattern }
