package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnvFile  ConfigSource = "config file (TASKCAL_CONFIG)"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// File is the config file that was read, if any.
	File string
}

// UI modes.
const (
	UIConsole = "console"
	UITUI     = "tui"
)

// Default values.
const (
	DefaultBannerDelayMS = 2000
	DefaultUI            = UIConsole
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for taskcal.
type Config struct {
	// Pause after the welcome banner, in milliseconds
	BannerDelayMS int `toml:"banner_delay_ms" json:"banner_delay_ms"`

	// Front end used by the default command (console or tui)
	UI string `toml:"ui" json:"ui"`

	// Logging configuration
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`
}

// WriteTOML writes the configuration as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// WriteSources writes one "key = source" line per field, sorted by key.
func (cws *ConfigWithSources) WriteSources(w io.Writer) error {
	keys := make([]string, 0, len(cws.Sources))
	for k := range cws.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "# %s: %s\n", k, cws.Sources[k]); err != nil {
			return err
		}
	}
	return nil
}
