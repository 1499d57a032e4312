package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/harrison/lff/internal/config"
	"github.com/harrison/lff/internal/display"
	"github.com/harrison/lff/internal/filelock"
	"github.com/harrison/lff/internal/fileutil"
	"github.com/harrison/lff/internal/logger"
	"github.com/harrison/lff/internal/models"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addFindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolP("absolute", "a", false, "Print canonical absolute paths")
	f.Bool("base-ten", false, "Use 1000-based units (kB, MB) with --pretty")
	f.Bool("exclude-hidden", false, "Skip hidden files and do not descend into hidden directories")
	f.StringP("extension", "e", "", "Only list files with this exact extension (without the dot)")
	f.UintP("limit", "l", 0, "List at most this many files")
	f.Float64P("min-size-mib", "m", config.DefaultMinSizeMiB, "Smallest file size to list, in MiB")
	f.StringP("name-pattern", "n", "", "Only list files whose path matches this glob")
	f.BoolP("pretty", "p", false, "Print sizes with units")
	f.StringP("sort-method", "s", "none", "Order of the listing: none, size or name")
	f.Uint("workers", 0, "Maximum concurrent filesystem calls (0 = number of CPUs)")
	f.String("config", "", "Path to config file (default: $LFF_HOME/config.yaml)")
	f.String("log-level", "warn", "Log verbosity: trace, debug, info, warn or error")
	f.String("log-dir", "", "Also write a per-run log file into this directory")
	f.StringP("output", "o", "", "Write the listing to this file instead of stdout")
}

// runFind implements the root command: resolve options, walk, print.
func runFind(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, cfgPath, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	overrides, err := overridesFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return &ConfigError{Message: "invalid configuration", Err: err}
	}
	opts, err := cfg.WalkOptions()
	if err != nil {
		return &ConfigError{Message: "invalid configuration", Err: err}
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if cfgPath != "" {
		log.LogDebug(fmt.Sprintf("Using config file %s", cfgPath))
	}

	start := time.Now()
	records, err := fileutil.Find(dir, opts, log)
	if err != nil {
		log.LogDebug(fmt.Sprintf("Search under %q failed after %s", dir, time.Since(start).Round(time.Millisecond)))
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	var out io.Writer = cmd.OutOrStdout()
	var pending *filelock.Output
	if outputPath != "" {
		pending = filelock.NewOutput(outputPath)
		out = pending
	}

	format := display.SizeFormat{Pretty: cfg.Pretty, BaseTen: cfg.BaseTen}
	display.RenderListing(records, format, display.WriterPrinter{W: out})

	if pending != nil {
		if err := pending.Commit(); err != nil {
			return err
		}
		log.LogInfo(fmt.Sprintf("Wrote listing to %s", outputPath))
	}

	if opts.EarlyExitAllowed() && *opts.Limit > 0 && len(records) == *opts.Limit {
		warnUnsortedLimit(cmd.ErrOrStderr(), log, *opts.Limit)
	}

	log.LogSummary(logger.Summary{Root: dir, Shown: len(records), Duration: time.Since(start)})
	return nil
}

// loadConfig reads the config file named by --config, or the default one
// in the lff home directory. It returns the path that was considered.
func loadConfig(flags *pflag.FlagSet) (*config.Config, string, error) {
	explicit, _ := flags.GetString("config")

	path, err := config.ResolveConfigPath(explicit)
	if err != nil {
		// no home directory to look in: defaults only
		return config.DefaultConfig(), "", nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, "", &ConfigError{Message: fmt.Sprintf("could not load config file %q", path), Err: err}
	}
	return cfg, path, nil
}

// overridesFromFlags collects the flags the user set explicitly.
func overridesFromFlags(flags *pflag.FlagSet) (config.Overrides, error) {
	var o config.Overrides

	if flags.Changed("min-size-mib") {
		v, _ := flags.GetFloat64("min-size-mib")
		o.MinSizeMiB = &v
	}
	if flags.Changed("extension") {
		v, _ := flags.GetString("extension")
		o.Extension = &v
	}
	if flags.Changed("name-pattern") {
		v, _ := flags.GetString("name-pattern")
		o.NamePattern = &v
	}
	if flags.Changed("exclude-hidden") {
		v, _ := flags.GetBool("exclude-hidden")
		o.ExcludeHidden = &v
	}
	if flags.Changed("limit") {
		v, _ := flags.GetUint("limit")
		if v > math.MaxInt {
			return o, &UsageError{Err: fmt.Errorf("invalid argument %d for \"-l, --limit\" flag: value out of range", v)}
		}
		limit := int(v)
		o.Limit = &limit
	}
	if flags.Changed("absolute") {
		v, _ := flags.GetBool("absolute")
		o.Absolute = &v
	}
	if flags.Changed("pretty") {
		v, _ := flags.GetBool("pretty")
		o.Pretty = &v
	}
	if flags.Changed("base-ten") {
		v, _ := flags.GetBool("base-ten")
		o.BaseTen = &v
	}
	if flags.Changed("sort-method") {
		v, _ := flags.GetString("sort-method")
		if _, err := models.ParseSortMethod(v); err != nil {
			return o, &UsageError{Err: fmt.Errorf("invalid argument %q for \"-s, --sort-method\" flag: must be one of none, size, name", v)}
		}
		o.SortMethod = &v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetUint("workers")
		if v > math.MaxInt {
			return o, &UsageError{Err: fmt.Errorf("invalid argument %d for \"--workers\" flag: value out of range", v)}
		}
		workers := int(v)
		o.Workers = &workers
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		o.LogDir = &v
	}

	return o, nil
}

// newLogger builds the console logger on w, plus a file logger when a log
// directory is configured. The returned func closes whatever was opened.
func newLogger(cfg *config.Config, w io.Writer) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(w, cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fl, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log directory %q: %w", cfg.LogDir, err)
	}
	return logger.Multi{console, fl}, func() { fl.Close() }, nil
}

// warnUnsortedLimit tells the user the listing is an arbitrary subset.
// Terminals get the full warning block; otherwise a single log line.
func warnUnsortedLimit(w io.Writer, log logger.Logger, limit int) {
	warning := display.WarnUnsortedLimit(limit)
	if isTerminal(w) {
		warning.Display(w)
		return
	}
	log.LogWarn(warning.Title + ". " + warning.Suggestion)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
