package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnvWithSources loads environment variables and updates source tracking.
// If sources is nil, no tracking is done.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) error {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKCAL_BANNER_DELAY_MS"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TASKCAL_BANNER_DELAY_MS: %w", err)
		}
		cfg.BannerDelayMS = i
		mark("banner_delay_ms")
	}
	if v := os.Getenv("TASKCAL_UI"); v != "" {
		cfg.UI = v
		mark("ui")
	}

	// Logging configuration
	if v := os.Getenv("TASKCAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("TASKCAL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("TASKCAL_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("TASKCAL_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
	return nil
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
