// Package main provides the entry point for gradient-go, an animated
// multi-stop gradient that cycles through configured frames in a window,
// in the terminal or headless.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gg"

	"github.com/opd-ai/go-gradient/internal/config"
	"github.com/opd-ai/go-gradient/internal/profiling"
	"github.com/opd-ai/go-gradient/pkg/gradient"
)

// Version is the current version of gradient-go.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// defaultConfigName is the built-in configuration used without -c.
const defaultConfigName = "default.yaml"

//go:embed default.yaml
var defaultConfig embed.FS

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("gradient-go", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("c", "", "Path to configuration file (Lua or YAML); built-in frames when empty")
	version := flags.Bool("v", false, "Print version and exit")
	termMode := flags.Bool("term", false, "Draw in the terminal instead of a window")
	headless := flags.Bool("headless", false, "Run the animation without drawing")
	watch := flags.Bool("watch", false, "Reload the configuration file when it changes")
	debug := flags.Bool("debug", false, "Enable debug logging")
	list := flags.Bool("list", false, "Print the resolved frames as a table and exit")
	title := flags.String("title", "", "Override the window title")
	duration := flags.Duration("duration", 0, "Override the cross-fade duration")
	logFile := flags.String("logfile", "", "Write logs to this file instead of stderr")
	cpuProfile := flags.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := flags.String("memprofile", "", "Write memory profile to file")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "gradient-go version %s\n", Version)
		return 0
	}

	if *list {
		return runList(*configPath, stdout, stderr)
	}

	// The terminal host owns the tty, so logs there go to a file or nowhere.
	logOut := stderr
	if *termMode {
		logOut = io.Discard
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	sl := newSlogLogger(logOut, *debug)
	logger := gradient.NewSlogAdapter(sl)
	if *debug {
		gg.SetLogger(sl)
	}

	profConfig := profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
	}
	if profConfig.Enabled() {
		profiler := profiling.New(profConfig)
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	if *configPath != "" {
		if _, err := os.Stat(*configPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(stderr, "Configuration file not found: %s\n", *configPath)
			} else {
				fmt.Fprintf(stderr, "Error accessing configuration file %s: %v\n", *configPath, err)
			}
			return 1
		}
	} else if *watch {
		logger.Warn("-watch needs a configuration file, ignoring")
	}

	metrics := gradient.DefaultMetrics()
	metrics.RegisterExpvar()
	defer logSummary(logger, metrics)

	opts := &gradient.Options{
		Headless:    *headless,
		Terminal:    *termMode,
		WindowTitle: *title,
		Duration:    *duration,
		Logger:      logger,
		Metrics:     metrics,
		WatchConfig: *watch,
	}
	a, err := newAnimator(*configPath, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating animator: %v\n", err)
		return 1
	}

	stopped := make(chan struct{}, 1)
	a.SetErrorHandler(func(err error) {
		logger.Warn("runtime error", "error", err)
	})
	a.SetEventHandler(func(e gradient.Event) {
		logger.Info("lifecycle event", "type", e.Type.String(), "message", e.Message)
		if e.Type == gradient.EventStopped {
			select {
			case stopped <- struct{}{}:
			default:
			}
		}
	})

	logger.Info("gradient-go starting", "version", Version, "config", configLabel(*configPath))
	if err := a.Start(); err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading configuration")
				if err := a.ReloadConfig(); err != nil {
					logger.Warn("reload failed", "error", err)
				}
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
			if err := a.Stop(); err != nil {
				fmt.Fprintf(stderr, "Stop error: %v\n", err)
				return 1
			}
			return 0
		case <-stopped:
			// The window was closed or the quit key pressed.
			if err := a.Stop(); err != nil {
				fmt.Fprintf(stderr, "Stop error: %v\n", err)
				return 1
			}
			return 0
		}
	}
}

// newAnimator loads path, or the built-in configuration when path is empty.
func newAnimator(path string, opts *gradient.Options) (gradient.Animator, error) {
	if path == "" {
		return gradient.NewFromFS(defaultConfig, defaultConfigName, opts)
	}
	return gradient.New(path, opts)
}

// loadConfig parses and validates path, or the built-in configuration.
func loadConfig(path string) (*config.Config, error) {
	parser, err := config.NewParser()
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	var cfg *config.Config
	if path == "" {
		cfg, err = parser.ParseFromFS(defaultConfig, defaultConfigName)
	} else {
		cfg, err = parser.ParseFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runList prints the rotation table for -list.
func runList(path string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	table, err := frameTable(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error resolving frames: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%s, %v per cycle\n%s\n", configLabel(path), cfg.Animation.Duration, table)
	return 0
}

// logSummary reports what the run did once the host has stopped.
func logSummary(logger gradient.Logger, m *gradient.Metrics) {
	snap := m.Snapshot()
	logger.Info("animation summary",
		"cycles_started", snap.CyclesStarted,
		"cycles_completed", snap.CyclesCompleted,
		"cycles_cancelled", snap.CyclesCancelled,
		"frames", snap.Frames,
		"reloads", snap.ConfigReloads,
		"errors", snap.ErrorsTotal,
	)
}

func configLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func newSlogLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
