package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasktrack configuration file
# Values can be overridden by TASKTRACK_* environment variables or CLI flags

# Default order for task lists: priority, due_date or created_at
default_sort = "priority"

# Ask for confirmation before deleting a task
confirm_delete = true

# Colored output: auto, always or never
color = "auto"

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false

# Write a JSONL session log (supports ~ expansion)
log_file = false
log_dir = "~/.tasktrack/logs"
`
}
