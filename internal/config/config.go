package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/harrison/lff/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultMinSizeMiB is the size threshold used when neither a flag nor the
// config file sets one.
const DefaultMinSizeMiB = 50.0

// Config represents lff configuration options
type Config struct {
	// MinSizeMiB is the smallest file size reported, in mebibytes
	MinSizeMiB float64 `yaml:"min_size_mib"`

	// Extension keeps only files with this exact extension (empty = any)
	Extension string `yaml:"extension"`

	// NamePattern keeps only files whose name matches this glob (empty = any)
	NamePattern string `yaml:"name_pattern"`

	// ExcludeHidden skips hidden files and does not descend into hidden directories
	ExcludeHidden bool `yaml:"exclude_hidden"`

	// Limit caps the number of listed files (nil = unlimited)
	Limit *int `yaml:"limit"`

	// Absolute prints canonical absolute paths
	Absolute bool `yaml:"absolute"`

	// Pretty prints sizes with units
	Pretty bool `yaml:"pretty"`

	// BaseTen uses 1000-based units with Pretty
	BaseTen bool `yaml:"base_ten"`

	// SortMethod is one of none, size, name
	SortMethod string `yaml:"sort_method"`

	// Workers bounds concurrent filesystem calls (0 = number of CPUs)
	Workers int `yaml:"workers"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir, when set, additionally writes a per-run log file there
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		MinSizeMiB: DefaultMinSizeMiB,
		SortMethod: "none",
		Workers:    0, // number of CPUs
		LogLevel:   "warn",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or has unknown keys, returns an error.
// Keys present in the file override the defaults; absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Overrides holds values given on the command line.
// A nil field means the flag was not set.
type Overrides struct {
	MinSizeMiB    *float64
	Extension     *string
	NamePattern   *string
	ExcludeHidden *bool
	Limit         *int
	Absolute      *bool
	Pretty        *bool
	BaseTen       *bool
	SortMethod    *string
	Workers       *int
	LogLevel      *string
	LogDir        *string
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.MinSizeMiB != nil {
		c.MinSizeMiB = *o.MinSizeMiB
	}
	if o.Extension != nil {
		c.Extension = *o.Extension
	}
	if o.NamePattern != nil {
		c.NamePattern = *o.NamePattern
	}
	if o.ExcludeHidden != nil {
		c.ExcludeHidden = *o.ExcludeHidden
	}
	if o.Limit != nil {
		limit := *o.Limit
		c.Limit = &limit
	}
	if o.Absolute != nil {
		c.Absolute = *o.Absolute
	}
	if o.Pretty != nil {
		c.Pretty = *o.Pretty
	}
	if o.BaseTen != nil {
		c.BaseTen = *o.BaseTen
	}
	if o.SortMethod != nil {
		c.SortMethod = *o.SortMethod
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if math.IsNaN(c.MinSizeMiB) || c.MinSizeMiB < 0 {
		return fmt.Errorf("min_size_mib must be >= 0, got %v", c.MinSizeMiB)
	}
	if c.Limit != nil && *c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", *c.Limit)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if _, err := models.ParseSortMethod(c.SortMethod); err != nil {
		return fmt.Errorf("invalid sort_method: %w", err)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// WalkOptions converts a validated Config into the options the walker uses.
// Empty Extension and NamePattern mean the filter is not active.
func (c *Config) WalkOptions() (*models.WalkOptions, error) {
	sortMethod, err := models.ParseSortMethod(c.SortMethod)
	if err != nil {
		return nil, err
	}

	opts := &models.WalkOptions{
		MinSizeBytes:  models.MiBToBytes(c.MinSizeMiB),
		ExcludeHidden: c.ExcludeHidden,
		Absolute:      c.Absolute,
		Sort:          sortMethod,
		Workers:       c.Workers,
	}
	if c.Extension != "" {
		ext := c.Extension
		opts.Extension = &ext
	}
	if c.NamePattern != "" {
		pattern := c.NamePattern
		opts.NamePattern = &pattern
	}
	if c.Limit != nil {
		limit := *c.Limit
		opts.Limit = &limit
	}
	return opts, nil
}
