// Package cmd implements the CLI command structure for taskcal.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskcal/internal/config"
	"github.com/nibzard/taskcal/internal/logging"
	"github.com/nibzard/taskcal/internal/loop"
	"github.com/nibzard/taskcal/internal/todo"
	"github.com/nibzard/taskcal/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, swapped out by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskcal CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskcal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// If no args, use the default command
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cws.Config, remainingArgs)
	case "tui":
		cws.Config.UI = config.UITUI
		return runCommand(ctx, cws.Config, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand runs one interactive session over a fresh, empty task store.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger, sessionID := logging.WithSession(logger)
	logger.Debug("session started", "ui", cfg.UI, "banner_delay_ms", cfg.BannerDelayMS)

	store := todo.NewStore()
	l := loop.New(store,
		loop.WithLogger(logger),
		loop.WithBannerDelay(time.Duration(cfg.BannerDelayMS)*time.Millisecond),
	)

	if cfg.UI == config.UITUI {
		err = ui.RunTUI(ctx, l, stdout)
	} else {
		err = l.Run(ctx, stdin, stdout)
	}
	if err != nil {
		logger.Debug("session aborted", "session", sessionID, "err", err)
		return err
	}
	return nil
}

// newLogger builds the diagnostics logger. In TUI mode diagnostics would
// draw over the alternate screen, so they are dropped.
func newLogger(cfg *config.Config) (*log.Logger, error) {
	opts, err := logging.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	if cfg.UI == config.UITUI {
		return logging.New(io.Discard, opts), nil
	}
	return logging.New(stderr, opts), nil
}

// configCommand prints the effective configuration, the example file, or
// the JSON Schema used for validation.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskcal config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config JSON Schema")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *example:
		_, err := io.WriteString(stdout, config.ExampleConfig())
		return err
	case *schema:
		_, err := stdout.Write(config.Schema())
		return err
	}

	if cws.File != "" {
		fmt.Fprintf(stdout, "# config file: %s\n", cws.File)
	}
	if err := cws.WriteSources(stdout); err != nil {
		return err
	}
	return cws.Config.WriteTOML(stdout)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "taskcal version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	var b strings.Builder
	b.WriteString("taskcal - an in-memory task list for the terminal\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  taskcal [options] [command]\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("  run           Start an interactive session (default command)\n")
	b.WriteString("  tui           Start an interactive session in the terminal UI\n")
	b.WriteString("  config        Show the effective configuration (--example, --schema)\n")
	b.WriteString("  version       Show version information\n")
	b.WriteString("  help          Show this help message\n\n")
	b.WriteString("Options:\n")
	io.WriteString(w, b.String())
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks live only for the length of a session; nothing is saved on exit.")
}
