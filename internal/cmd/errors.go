package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/lff/internal/fileutil"
)

// Exit codes returned by the lff binary.
const (
	ExitSuccess          = 0  // listing printed, possibly empty
	ExitGeneralError     = 1  // unclassified failure
	ExitUsageError       = 2  // bad arguments or flag values
	ExitConfigError      = 10 // config file or merged options invalid, bad glob
	ExitRootUnreadable   = 11 // start directory cannot be listed
	ExitInspectionFailed = 12 // a file or directory failed mid-walk
)

var (
	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig marks configuration that could not be loaded or is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UsageError wraps an argument or flag problem reported by cobra.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// ConfigError reports a configuration problem; the details are its cause.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string { return e.Message }
func (e *ConfigError) Unwrap() error { return e.Err }
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// ExitCodeForError returns the process exit code for an error returned by
// the root command. nil maps to ExitSuccess.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, fileutil.ErrInvalidPattern):
		return ExitConfigError
	case errors.Is(err, fileutil.ErrRootUnreadable):
		return ExitRootUnreadable
	case errors.Is(err, fileutil.ErrMetadata),
		errors.Is(err, fileutil.ErrCanonicalize),
		errors.Is(err, fileutil.ErrReadDir):
		return ExitInspectionFailed
	}

	return ExitGeneralError
}

// RenderError writes err as
//
//	Error: <message>
//
//	Caused by:
//	    <cause>
//
// Causes are the messages of the unwrap chain that the message above them
// does not already contain. Several causes are numbered.
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())

	causes := causeChain(err)
	if len(causes) == 0 {
		return
	}

	fmt.Fprint(w, "\nCaused by:\n")
	if len(causes) == 1 {
		fmt.Fprintf(w, "    %s\n", causes[0])
		return
	}
	for i, cause := range causes {
		fmt.Fprintf(w, "    %d: %s\n", i, cause)
	}
}

func causeChain(err error) []string {
	var causes []string
	shown := err.Error()
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		msg := cause.Error()
		if msg != "" && !strings.Contains(shown, msg) {
			causes = append(causes, msg)
		}
		shown = msg
	}
	return causes
}
