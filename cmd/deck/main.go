// Package main is the entry point for deck, a host telemetry deck with an
// asynchronous command console. It loads configuration, probes the metrics
// source, starts the sampler and runs either the terminal UI or the headless
// line console.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/Guliveer/vitalis/deck/internal/collector"
	"github.com/Guliveer/vitalis/deck/internal/config"
	"github.com/Guliveer/vitalis/deck/internal/console"
	"github.com/Guliveer/vitalis/deck/internal/models"
	"github.com/Guliveer/vitalis/deck/internal/rate"
	"github.com/Guliveer/vitalis/deck/internal/sampler"
	"github.com/Guliveer/vitalis/deck/internal/session"
	"github.com/Guliveer/vitalis/deck/internal/ui"
)

// shutdownGrace bounds how long running commands get to exit on quit.
const shutdownGrace = 3 * time.Second

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	interval    = flag.Duration("interval", 0, "Sampling interval, e.g. 250ms (overrides config)")
	headless    = flag.Bool("headless", false, "Run the line console instead of the terminal UI")
	once        = flag.Bool("once", false, "Print one telemetry summary and exit")
	writeConfig = flag.String("write-config", "", "Write the effective configuration to this path and exit")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("deck %s\n", version)
		os.Exit(0)
	}

	cli := config.CLIOverrides{Interval: *interval, Headless: *headless}
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadLayered(cli, embeddedConfig, *configPath)
	} else {
		cfg, err = config.LoadLayered(cli, embeddedConfig)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := config.WriteConfig(cfg, *writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *writeConfig)
		return
	}

	interactive := !cfg.UI.Headless && !*once &&
		term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	// The terminal UI owns the screen, so it only logs to the file.
	logger := initLogger(cfg, !interactive)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src := collector.NewHost(logger)
	if err := collector.Verify(ctx, src); err != nil {
		logger.Fatal("No usable metrics source", zap.Error(err))
	}

	smp := sampler.New(src, cfg, logger)
	label := rate.Label(cfg.Collection.RateUnit)

	logger.Info("Starting deck",
		zap.String("version", version),
		zap.Duration("interval", cfg.Collection.Interval.Duration),
		zap.String("shell", cfg.Shell.Path),
		zap.Bool("interactive", interactive))

	if *once {
		if err := runOnce(ctx, smp, cfg.Collection.Interval.Duration, label); err != nil {
			logger.Fatal("Summary failed", zap.Error(err))
		}
		return
	}

	mgr := session.NewManager(cfg.Shell, logger)
	if interactive {
		err = runTUI(ctx, smp, mgr, label)
	} else {
		err = runHeadless(ctx, smp, mgr, label, logger)
	}
	if err != nil {
		logger.Error("Front end stopped", zap.Error(err))
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownGrace)
	defer stop()
	if err := mgr.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Commands still running at exit", zap.Error(err))
	}
	logger.Info("Deck stopped")
}

// runOnce primes the counter baselines with one cycle, waits one interval so
// rates can be derived, then prints the second cycle.
func runOnce(ctx context.Context, smp *sampler.Sampler, wait time.Duration, label string) error {
	smp.Cycle(ctx)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	return console.WriteSummary(os.Stdout, smp.Cycle(ctx), label)
}

func runTUI(ctx context.Context, smp *sampler.Sampler, mgr *session.Manager, label string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(ui.New(mgr, label), tea.WithAltScreen(), tea.WithContext(ctx))
	smp.OnSnapshot(func(snap models.Snapshot) {
		prog.Send(ui.SnapshotMsg(snap))
	})
	go smp.Run(ctx)

	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

// runHeadless relays commands from stdin and keeps sampling until a signal
// arrives, even after stdin is exhausted.
func runHeadless(ctx context.Context, smp *sampler.Sampler, mgr *session.Manager, label string, logger *zap.Logger) error {
	con := console.New(mgr, os.Stdout, label, logger)
	smp.OnSnapshot(con.OnSnapshot)
	go smp.Run(ctx)

	if err := con.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debug("Command input closed, sampling until interrupted")
	<-ctx.Done()
	return nil
}

// initLogger creates a zap logger based on the configuration.
// It outputs to stderr (human-readable) when withConsole is set and
// optionally to a JSON log file.
func initLogger(cfg *config.Config, withConsole bool) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	// stdout carries command output in headless mode.
	if withConsole {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			))
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
