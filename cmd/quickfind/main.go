// Package main is the entry point for quickfind.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/quickfind/internal/app"
	"github.com/dshills/quickfind/internal/plugin/lua"
	"github.com/dshills/quickfind/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app     app.Options
	script  string
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cli.script != "" {
		return runScript(ctx, cli)
	}
	return runInteractive(ctx, cli)
}

// runScript executes a Lua script against a headless application.
func runScript(ctx context.Context, cli cliOptions) int {
	logOut, closeLog, err := openLog(cli.logFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	cli.app.LogOutput = logOut

	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	state := lua.NewState(lua.WithOutput(os.Stdout))
	defer state.Close()
	lua.Register(state, application)

	if err := state.DoFile(ctx, cli.script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runInteractive runs the terminal editor.
func runInteractive(ctx context.Context, cli cliOptions) int {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal; use -script to run headless")
		return 1
	}

	// Log lines would corrupt the screen, so they go to -log-file or nowhere.
	logOut, closeLog, err := openLog(cli.logFile, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	cli.app.LogOutput = logOut

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	cli.app.Backend = terminal
	cli.app.Watch = true

	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLog opens path for appending, or returns fallback when path is empty.
func openLog(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.app.ConfigPath, "config", "", "Path to settings file")
	flag.StringVar(&cli.app.ConfigPath, "c", "", "Path to settings file (shorthand)")
	flag.BoolVar(&cli.app.Debug, "debug", false, "Enable debug logging and invariant checks")
	flag.BoolVar(&cli.app.Debug, "d", false, "Enable debug logging and invariant checks (shorthand)")
	flag.StringVar(&cli.app.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides log_level")
	flag.StringVar(&cli.logFile, "log-file", "", "Append log lines to this file")
	flag.StringVar(&cli.script, "script", "", "Run a Lua script headlessly instead of the terminal editor")
	flag.StringVar(&cli.script, "s", "", "Run a Lua script headlessly (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quickfind - step through exact matches of the selected word\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quickfind [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quickfind notes.txt               Edit a file\n")
		fmt.Fprintf(os.Stderr, "  quickfind -script walk.lua a.txt  Run a script with a.txt open\n")
		fmt.Fprintf(os.Stderr, "\nCommands: %s\n", strings.Join(app.CommandNames(), ", "))
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("quickfind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch strings.ToLower(cli.app.LogLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be trace, debug, info, warn, or error)\n", cli.app.LogLevel)
		os.Exit(1)
	}

	cli.app.Files = flag.Args()
	return cli
}
