package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the lff home directory.
const HomeEnv = "LFF_HOME"

// GetLffHome returns the directory holding lff's config file.
// Priority order:
//  1. LFF_HOME environment variable (if set)
//  2. <user config dir>/lff
//
// The directory is not created; a missing config file is not an error.
func GetLffHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, "lff"), nil
}

// ResolveConfigPath returns explicit when it is non-empty, otherwise
// config.yaml inside the lff home directory.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	home, err := GetLffHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
