package main

import (
	"os"

	"github.com/harrison/lff/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		cmd.RenderError(os.Stderr, err)
		os.Exit(cmd.ExitCodeForError(err))
	}
}
