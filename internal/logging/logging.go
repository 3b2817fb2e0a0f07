// Package logging builds the diagnostics logger used across taskcal.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskcal/internal/config"
)

// DefaultPrefix is prepended to every log line.
const DefaultPrefix = "taskcal"

// Options holds logger configuration.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns options for a quiet console logger.
// Only warnings and errors reach the terminal, so a normal session
// shows nothing but the task prompts.
func DefaultOptions() Options {
	return Options{
		Level:           log.WarnLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          DefaultPrefix,
	}
}

// OptionsFromConfig converts the log_* config keys into Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return opts, err
	}
	formatter, err := ParseFormatter(cfg.LogFormat)
	if err != nil {
		return opts, err
	}

	opts.Level = level
	opts.Formatter = formatter
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	return opts, nil
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// WithSession tags logger with a fresh session ID and returns both.
func WithSession(logger *log.Logger) (*log.Logger, string) {
	id := uuid.NewString()
	return logger.With("session", id), id
}

// ParseLevel parses a level name. An empty name selects the default level.
func ParseLevel(name string) (log.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultOptions().Level, nil
	}
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// ParseFormatter parses a formatter name (text, json, logfmt).
func ParseFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format %q, must be one of: text, json, logfmt", name)
	}
}
