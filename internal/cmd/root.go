package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for lff
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lff <directory>",
		Short: "List the large files under a directory",
		Long: `lff walks a directory tree in parallel and lists the files that pass
its filters: a minimum size, an exact extension, a name glob, and
optionally the exclusion of hidden files and directories.

Defaults are read from $LFF_HOME/config.yaml (or the lff directory inside
the user config directory) when present. Flags override the config file.

Examples:
  # Files of 50 MiB or more, largest first
  lff ~/Downloads --sort-method size

  # The ten largest videos, with human-readable sizes
  lff /media -e mp4 -l 10 -s size -p

  # Everything over 1 MiB under any "cache" directory, as absolute paths
  lff . -m 1 -n '*/cache/*' -a

  # Write the listing to a file instead of stdout
  lff /srv -s size -o /tmp/large-files.txt`,
		Version: Version,
		Args:    exactlyOneDirectory,
		RunE:    runFind,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main renders errors with their causes
		SilenceErrors: true,
	}

	addFindFlags(cmd)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return cmd
}

func exactlyOneDirectory(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}
