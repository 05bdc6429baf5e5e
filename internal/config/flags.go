package config

import "flag"

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"sort":           "default_sort",
	"confirm-delete": "confirm_delete",
	"color":          "color",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-file":       "log_file",
	"log-dir":        "log_dir",
}

// parseFlags defines the config flags on fs, bound to the values loaded so
// far, and parses args. If sources is non-nil, it records SourceFlag for
// every flag given on the command line.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Menu behavior
	fs.StringVar(&cfg.DefaultSort, "sort", cfg.DefaultSort, "Default task order (priority, due_date, created_at)")
	fs.BoolVar(&cfg.ConfirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting a task")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Colored output (auto, always, never)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.BoolVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write a JSONL session log under --log-dir")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToSource[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
