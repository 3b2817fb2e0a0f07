// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskcal/taskcal.toml or OS-specific config directory)
// 3. Project config file (taskcal.toml or .taskcal.toml in the working directory)
// 4. Environment variables (TASKCAL_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// TASKCAL_CONFIG names an explicit file that replaces both file lookups.
//
// The merged configuration is validated against an embedded JSON Schema
// before it is returned.
//
// User-level config locations:
// - ~/.taskcal/taskcal.toml (preferred)
// - Windows: %APPDATA%\taskcal\taskcal.toml
// - macOS: ~/Library/Application Support/taskcal/taskcal.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskcal/taskcal.toml or ~/.config/taskcal/taskcal.toml
package config
