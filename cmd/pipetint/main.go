// Package main provides the pipetint command. It reads lines from stdin,
// colors the parts matching a regular expression and writes them to stdout,
// keeping colors added by earlier pipetint stages in the same pipeline.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"

	"github.com/isseis/go-pipetint/internal/bootstrap"
	"github.com/isseis/go-pipetint/internal/cli"
	"github.com/isseis/go-pipetint/internal/config"
	"github.com/isseis/go-pipetint/internal/logging"
	"github.com/isseis/go-pipetint/internal/terminal"
)

// app is one invocation of the command.
type app struct {
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	runID  string

	// isTerminal replaces the real terminal check; nil uses it
	isTerminal func(terminal.Stream) bool

	session *bootstrap.Session
}

func main() {
	// Generate run ID early for error handling
	runID := logging.GenerateRunID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// a closed stdout surfaces as EPIPE from Write instead of killing the process
	sigpipe := make(chan os.Signal, 1)
	signal.Notify(sigpipe, syscall.SIGPIPE)

	a := &app{
		args:   os.Args[1:],
		stdin:  os.Stdin,
		stdout: colorable.NewColorable(os.Stdout),
		stderr: colorable.NewColorable(os.Stderr),
		runID:  runID,
	}
	code := a.run(ctx)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code. Failures are
// reported on stderr before the run log is closed.
func (a *app) run(ctx context.Context) int {
	defer func() {
		if a.session != nil {
			_ = a.session.Close()
		}
	}()

	if err := a.execute(ctx); err != nil {
		logging.HandleStartupError(a.stderr, err, a.runID)
		return 1
	}
	return 0
}

func (a *app) capabilities(mode terminal.ColorMode) terminal.Capabilities {
	return terminal.NewCapabilities(terminal.Options{
		PreferenceOptions: mode.PreferenceOptions(),
		DetectorOptions:   terminal.DetectorOptions{IsTerminal: a.isTerminal},
	})
}

func (a *app) execute(ctx context.Context) error {
	started := time.Now()

	opts, err := cli.ParseArgs(a.args, a.stderr)
	if errors.Is(err, cli.ErrHelpRequested) {
		caps := a.capabilities(terminal.ColorAuto)
		return a.printHelp(caps)
	}
	if err != nil {
		return logging.NewStartupError(logging.ErrorTypeInvalidArgument, "cli", "cannot parse arguments", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return logging.NewStartupError(logging.ErrorTypeConfigParsing, "config", "cannot load configuration", err)
	}

	settings, err := cli.Resolve(opts, cfg)
	if err != nil {
		return err
	}

	caps := a.capabilities(settings.ColorMode)
	a.session, err = bootstrap.SetupLogger(bootstrap.LoggerConfig{
		Level:         settings.LogLevel,
		LogDir:        settings.LogDir,
		RunID:         a.runID,
		Started:       started,
		ConsoleWriter: a.stderr,
		Capabilities:  caps,
	})
	if err != nil {
		return err
	}
	logger := a.session.Logger

	logger.Debug("Settings resolved", "settings", settings, "config", cfg.Path)
	if a.session.LogPath != "" {
		logger.Debug("Writing run log", "path", a.session.LogPath)
	}

	if opts.Filter != "" && !opts.ListColors {
		return logging.NewStartupError(logging.ErrorTypeInvalidArgument, "cli", "cannot use --filter", cli.ErrFilterWithoutList)
	}
	if opts.ListColors {
		err := cli.ListColors(a.stdout, cli.CatalogOptions{
			Filter: opts.Filter,
			Color:  settings.ColorMode.Enabled(caps),
		})
		if errors.Is(err, cli.ErrInvalidArguments) {
			return logging.NewStartupError(logging.ErrorTypeInvalidArgument, "cli", "cannot list colors", err)
		}
		return a.outputError(err)
	}

	// a bare invocation at a terminal would wait for typed input
	if caps.IsTerminal(terminal.Stdin) && opts.AllDefaults() {
		return a.printHelp(caps)
	}

	proc, err := cli.NewProcessor(settings, cli.ProcessorOptions{
		Plain:   !settings.ColorMode.Enabled(caps),
		Logger:  logger,
		Verbose: settings.Verbose,
	})
	if err != nil {
		return err
	}

	stats, err := cli.Run(ctx, a.stdin, a.stdout, proc, settings.Unbuffered)
	logger.Debug("Run finished", "stats", stats)
	return a.outputError(err)
}

func (a *app) printHelp(caps terminal.Capabilities) error {
	return a.outputError(cli.PrintHelp(a.stdout, caps.StreamSupportsColor(terminal.Stdout)))
}

// outputError classifies a failure of the line loop. A reader that went away
// is a normal way for a pipeline to end.
func (a *app) outputError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.EPIPE):
		slog.Debug("Output closed by reader")
		return nil
	case errors.Is(err, context.Canceled):
		return logging.NewStartupError(logging.ErrorTypeUserInterrupted, "main", "interrupted", err)
	default:
		return logging.NewStartupError(logging.ErrorTypeIO, "main", "cannot copy input to output", err)
	}
}
