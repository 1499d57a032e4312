package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning in yellow unless color output is disabled
// (NO_COLOR set or stdout not a terminal).
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.Render(!color.NoColor))
}

// Render formats the warning, wrapped in yellow when colored is true.
func (w Warning) Render(colored bool) string {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colored {
		return b.String()
	}
	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	return yellow.Sprint(b.String())
}

// WarnUnsortedLimit explains that an unsorted, limited search stops early and
// shows whichever matches were found first rather than the largest ones.
func WarnUnsortedLimit(limit int) Warning {
	noun := "files"
	if limit == 1 {
		noun = "file"
	}
	return Warning{
		Title:      fmt.Sprintf("Showing the first %d matching %s found", limit, noun),
		Message:    "Without a sort method the search stops early, so the selection depends on traversal order.",
		Suggestion: "Add --sort-method size to list the largest files instead",
	}
}
