package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nibzard/tasktrack/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were applied, lowest priority first.
	Files []string
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default values.
const (
	DefaultSort          = string(todo.SortByPriority)
	DefaultConfirmDelete = true
	DefaultColor         = ColorAuto
	DefaultLogDir        = "~/.tasktrack/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for tasktrack.
type Config struct {
	// Menu behavior
	DefaultSort   string `toml:"default_sort" yaml:"default_sort"`
	ConfirmDelete bool   `toml:"confirm_delete" yaml:"confirm_delete"`
	Color         string `toml:"color" yaml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogFormat     string `toml:"log_format" yaml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" yaml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" yaml:"log_caller"`
	LogFile       bool   `toml:"log_file" yaml:"log_file"`
	LogDir        string `toml:"log_dir" yaml:"log_dir"`

	// Working directory (computed)
	WorkDir string `toml:"-" yaml:"-"`
}

// SortKey returns the configured default ordering for task lists.
func (c *Config) SortKey() todo.SortKey {
	return todo.ParseSortKey(c.DefaultSort)
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"default_sort",
		"confirm_delete",
		"color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
		"log_dir",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DefaultSort = DefaultSort
	cfg.ConfirmDelete = DefaultConfirmDelete
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogDir = DefaultLogDir
}

// Value returns the current value of a field as text.
func (c *Config) Value(field string) string {
	switch field {
	case "default_sort":
		return c.DefaultSort
	case "confirm_delete":
		return fmt.Sprint(c.ConfirmDelete)
	case "color":
		return c.Color
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	case "log_file":
		return fmt.Sprint(c.LogFile)
	case "log_dir":
		return c.LogDir
	}
	return ""
}

// Describe renders every field with its value and source, one per line,
// sorted by field name.
func (cws *ConfigWithSources) Describe() string {
	fields := configFields()
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		source := cws.Sources[field]
		if source == "" {
			source = SourceDefault
		}
		fmt.Fprintf(&b, "%-15s = %-20q (%s)\n", field, cws.Config.Value(field), source)
	}
	for _, f := range cws.Files {
		fmt.Fprintf(&b, "# loaded %s\n", f)
	}
	return b.String()
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
