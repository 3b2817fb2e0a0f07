package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskcal configuration file
# Values can be overridden by TASKCAL_* environment variables or CLI flags.

# Pause after the welcome banner, in milliseconds (0-60000)
banner_delay_ms = 2000

# Front end for the default command: "console" or "tui"
ui = "console"

# Diagnostics are written to stderr and never mixed into the task prompts.
# log_level: debug, info, warn, error
log_level = "warn"
# log_format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
