package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadWithSources loads configuration from multiple sources in priority order
// and tracks the source of each value:
// 1. Defaults
// 2. User config file (~/.taskcal/taskcal.toml or OS-specific config dir)
// 3. Project config file (taskcal.toml or .taskcal.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2/3. Config files. An explicit TASKCAL_CONFIG replaces the lookup.
	if explicit := explicitConfigFile(); explicit != "" {
		if err := loadConfigFileWithSources(cfg, explicit, sources, SourceEnvFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
		cws.File = explicit
	} else {
		if userConfigFile := findUserConfigFile(); userConfigFile != "" {
			if err := loadConfigFileWithSources(cfg, userConfigFile, sources, SourceUserFile); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
			}
			cws.File = userConfigFile
		}
		if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
			if err := loadConfigFileWithSources(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
			}
			cws.File = projectConfigFile
		}
	}

	// 4. Override from environment
	if err := loadFromEnvWithSources(cfg, sources); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlagsWithSources(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Normalise and validate
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"banner_delay_ms",
		"ui",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFileWithSources loads TOML config and marks every key the file
// defines with source. Unknown keys are rejected.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if sources != nil {
		for _, field := range configFields() {
			if meta.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}

// finalizeConfig normalises enum-like values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	return Validate(cfg)
}
