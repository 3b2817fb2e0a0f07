package config

import "flag"

// flagToSource maps CLI flag names to config field names.
var flagToSource = map[string]string{
	"banner-delay-ms": "banner_delay_ms",
	"ui":              "ui",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
// Flags are bound directly to cfg, with the current values as defaults,
// so only flags present in args change anything.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskcal", flag.ContinueOnError)
	}

	fs.IntVar(&cfg.BannerDelayMS, "banner-delay-ms", cfg.BannerDelayMS, "Pause after the welcome banner (milliseconds)")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Front end for the default command (console|tui)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log lines")

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
