package config

import "os"

// envBindings maps TASKTRACK_* variables to config fields.
var envBindings = []struct {
	env   string
	field string
}{
	{"TASKTRACK_SORT", "default_sort"},
	{"TASKTRACK_CONFIRM_DELETE", "confirm_delete"},
	{"TASKTRACK_COLOR", "color"},
	{"TASKTRACK_LOG_LEVEL", "log_level"},
	{"TASKTRACK_LOG_FORMAT", "log_format"},
	{"TASKTRACK_LOG_TIMESTAMPS", "log_timestamps"},
	{"TASKTRACK_LOG_CALLER", "log_caller"},
	{"TASKTRACK_LOG_FILE", "log_file"},
	{"TASKTRACK_LOG_DIR", "log_dir"},
}

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it records SourceEnv for every variable that was set.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, b := range envBindings {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		switch b.field {
		case "default_sort":
			cfg.DefaultSort = v
		case "confirm_delete":
			cfg.ConfirmDelete = boolFromString(v)
		case "color":
			cfg.Color = v
		case "log_level":
			cfg.LogLevel = v
		case "log_format":
			cfg.LogFormat = v
		case "log_timestamps":
			cfg.LogTimestamps = boolFromString(v)
		case "log_caller":
			cfg.LogCaller = boolFromString(v)
		case "log_file":
			cfg.LogFile = boolFromString(v)
		case "log_dir":
			cfg.LogDir = v
		}
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
}
