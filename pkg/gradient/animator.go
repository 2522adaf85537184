package gradient

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"

	"github.com/opd-ai/go-gradient/internal/config"
)

// Configuration format constants for use with NewFromReader.
const (
	// FormatLua indicates the Lua configuration format.
	FormatLua = config.FormatLua
	// FormatYAML indicates the YAML configuration format.
	FormatYAML = config.FormatYAML
)

// Animator is an embedded gradient animation with full lifecycle control.
// It is safe for concurrent use from multiple goroutines.
type Animator interface {
	// Start opens the host (window, terminal or headless ticker) and returns
	// immediately; the animation runs in a background goroutine.
	// Returns an error if already running or if initialization fails.
	Start() error

	// Stop shuts the host down and waits for it, bounded by the shutdown
	// timeout. Safe to call multiple times; subsequent calls are no-ops.
	Stop() error

	// Restart stops, reloads the configuration from its source and starts
	// again with a fresh view.
	Restart() error

	// ReloadConfig re-reads the configuration and applies it to the running
	// view without interrupting the transition in flight. Frame changes take
	// effect from the next cycle. On error the previous config stays active.
	ReloadConfig() error

	// IsRunning returns true if the animator is currently running.
	IsRunning() bool

	// Status returns detailed status information about the animator.
	Status() Status

	// StartAnimating cancels any transition in flight and starts one to the
	// next frame.
	StartAnimating() error

	// StopAnimating cancels the transition in flight; the view shows the
	// last committed frame.
	StopAnimating() error

	// Snapshot renders the current frame at the view's size.
	Snapshot(ctx context.Context) (*image.RGBA, error)

	// SetErrorHandler registers a callback for runtime errors.
	// The handler is invoked asynchronously and panics in it are recovered.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle events.
	SetEventHandler(handler EventHandler)

	// Health returns a health check result for the animator.
	Health() HealthCheck

	// Metrics returns the metrics collector for this animator.
	Metrics() *Metrics
}

// New creates an Animator from a Lua or YAML configuration file on disk.
// The animator is created but not started; call Start() to begin.
//
//	a, err := gradient.New("sunset.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Stop()
//	if err := a.Start(); err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (Animator, error) {
	load := configLoader(func(p *config.Parser) (*config.Config, error) {
		return p.ParseFile(configPath)
	})
	a, err := newAnimator(configPath, load, opts)
	if err != nil {
		return nil, err
	}
	a.watchPath = configPath
	return a, nil
}

// NewFromFS creates an Animator from a configuration file inside fsys,
// typically an embed.FS bundled with the binary.
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	a, err := gradient.NewFromFS(configFS, "configs/sunset.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Animator, error) {
	load := configLoader(func(p *config.Parser) (*config.Config, error) {
		return p.ParseFromFS(fsys, configPath)
	})
	return newAnimator("embedded:"+configPath, load, opts)
}

// NewFromReader creates an Animator from configuration content in format
// FormatLua or FormatYAML. The content is read once and kept for reloads.
//
//	cfg := strings.NewReader(`
//	frames:
//	  - colors: [red, blue]
//	    direction: down
//	`)
//	a, err := gradient.NewFromReader(cfg, gradient.FormatYAML, nil)
func NewFromReader(r io.Reader, format string, opts *Options) (Animator, error) {
	if format != FormatLua && format != FormatYAML {
		return nil, fmt.Errorf("invalid format: %s (expected '%s' or '%s')", format, FormatLua, FormatYAML)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	load := configLoader(func(p *config.Parser) (*config.Config, error) {
		return p.ParseReader(bytes.NewReader(content), format)
	})
	return newAnimator("reader", load, opts)
}

// configLoader wraps a parse step with a fresh parser and validation.
func configLoader(parse func(*config.Parser) (*config.Config, error)) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, fmt.Errorf("parser init: %w", err)
		}
		defer p.Close()

		cfg, err := parse(p)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
}

func newAnimator(source string, load func() (*config.Config, error), opts *Options) (*animator, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}

	return &animator{
		cfg:          cfg,
		opts:         *opts,
		configSource: source,
		configLoader: load,
		metrics:      metrics,
		logger:       logger,
		errors:       newErrorTracker(),
	}, nil
}
