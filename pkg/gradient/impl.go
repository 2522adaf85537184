package gradient

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gradient/internal/config"
	"github.com/opd-ai/go-gradient/internal/render"
	"github.com/opd-ai/go-gradient/internal/term"
	"github.com/opd-ai/go-gradient/internal/view"
)

// Host modes reported by Health.
const (
	hostWindow   = "window"
	hostTerminal = "terminal"
	hostHeadless = "headless"
)

// animator is the private implementation of the Animator interface.
type animator struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	configLoader func() (*config.Config, error)
	watchPath    string

	// Components, replaced on every Start. The compositor and view are only
	// touched from the host goroutine; other goroutines go through Post.
	compositor *render.Compositor
	view       *view.View
	game       *render.Game
	watcher    *configWatcher
	metrics    *Metrics
	logger     Logger
	errors     *errorTracker

	// newScreen opens the terminal for the terminal host.
	newScreen func() (tcell.Screen, error)

	// State
	running   atomic.Bool
	animating atomic.Bool
	cycle     atomic.Int64
	startTime time.Time
	lastError atomic.Value

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	// Synchronization
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Verify interface implementation at compile time.
var _ Animator = (*animator)(nil)

// Start opens the host and begins animating.
func (a *animator) Start() error {
	a.mu.Lock()

	if a.running.Load() {
		a.mu.Unlock()
		return errors.New("animator already running")
	}

	a.ctx, a.cancel = context.WithCancel(context.Background())
	ctx, cancel := a.ctx, a.cancel

	if err := a.initComponents(); err != nil {
		cancel()
		a.mu.Unlock()
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Set running state before starting the goroutine to avoid a race with Stop.
	a.running.Store(true)
	a.startTime = time.Now()
	a.animating.Store(false)
	watcher := a.watcher

	a.metrics.IncrementStarts()
	a.metrics.SetRunning(true)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.metrics.SetRunning(false)
		defer a.running.Store(false)
		defer a.cleanup()

		a.runHost(ctx)

		// The host may exit on its own (window closed, quit key), so the
		// context is cancelled here as well.
		cancel()
		a.emitEvent(EventStopped, "animator stopped")
	}()

	a.mu.Unlock()

	if watcher != nil {
		watcher.Start()
	}
	a.logger.Info("animator started", "source", a.configSource, "host", a.hostMode())
	a.emitEvent(EventStarted, "animator started")
	return nil
}

// Stop shuts the host down and waits for it.
func (a *animator) Stop() error {
	if !a.running.Load() {
		return nil
	}

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	timeout := a.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		a.metrics.IncrementStops()
		a.logger.Info("animator stopped")
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("shutdown timeout after %v: host did not stop", timeout)
		a.notifyError(ErrorCategoryLifecycle, err)
		return err
	}
}

// Restart performs a stop, a config reload and a start.
func (a *animator) Restart() error {
	if err := a.Stop(); err != nil {
		wrappedErr := fmt.Errorf("stop failed: %w", err)
		a.notifyError(ErrorCategoryLifecycle, wrappedErr)
		return wrappedErr
	}

	cfg, err := a.configLoader()
	if err != nil {
		wrappedErr := fmt.Errorf("config reload failed: %w", err)
		a.notifyError(ErrorCategoryConfig, wrappedErr)
		return wrappedErr
	}
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	a.emitEvent(EventConfigReloaded, "configuration reloaded")

	if err := a.Start(); err != nil {
		wrappedErr := fmt.Errorf("start failed: %w", err)
		a.notifyError(ErrorCategoryLifecycle, wrappedErr)
		return wrappedErr
	}

	a.metrics.IncrementRestarts()
	a.emitEvent(EventRestarted, "animator restarted")
	return nil
}

// ReloadConfig reloads the configuration in place.
func (a *animator) ReloadConfig() error {
	if !a.running.Load() {
		return ErrNotRunning
	}
	if err := a.reload(); err != nil {
		a.notifyError(ErrorCategoryConfig, err)
		return err
	}
	return nil
}

// reload loads the configuration and hands it to the host goroutine.
func (a *animator) reload() error {
	newCfg, err := a.configLoader()
	if err != nil {
		return fmt.Errorf("config reload failed: %w", err)
	}
	a.logWarnings(newCfg)

	a.mu.Lock()
	a.cfg = newCfg
	comp, v := a.compositor, a.view
	a.mu.Unlock()

	if comp != nil && v != nil {
		comp.Post(func() {
			if err := a.applyConfig(v, newCfg); err != nil {
				a.notifyError(ErrorCategoryConfig, err)
				return
			}
			a.applyWindowConfig(newCfg)
		})
	}

	a.metrics.IncrementConfigReloads()
	a.logger.Info("configuration reloaded", "source", a.configSource)
	a.emitEvent(EventConfigReloaded, "configuration reloaded in place")
	return nil
}

// applyConfig pushes cfg into v. Every value is parsed before the first
// setter runs so a bad config leaves the view untouched.
func (a *animator) applyConfig(v *view.View, cfg *config.Config) error {
	frames, err := cfg.GradientFrames()
	if err != nil {
		return err
	}
	dir, err := cfg.Animation.ParsedDirection()
	if err != nil {
		return err
	}
	kind, err := cfg.Animation.ParsedType()
	if err != nil {
		return err
	}
	gridColor, err := render.ParseColor(cfg.Grid.Color)
	if err != nil {
		return fmt.Errorf("grid color: %w", err)
	}

	duration := cfg.Animation.Duration
	if a.opts.Duration > 0 {
		duration = a.opts.Duration
	}

	v.SetAutoAnimate(cfg.Animation.AutoAnimate)
	v.SetAutoRepeat(cfg.Animation.AutoRepeat)
	v.SetDuration(duration)
	v.SetDirection(dir)
	v.SetType(kind)
	v.SetDrawsAsynchronously(cfg.Animation.DrawsAsynchronously)
	v.SetFrames(frames)
	v.SetPalette(cfg.Palette)
	v.SetGridLineColor(gridColor)
	v.SetGridLineOpacity(cfg.Grid.Opacity)
	v.ShowGrid(cfg.Grid.Divisions)
	return nil
}

// applyWindowConfig updates the window of a running Game. It runs on the
// host goroutine.
func (a *animator) applyWindowConfig(cfg *config.Config) {
	a.mu.RLock()
	game := a.game
	a.mu.RUnlock()
	if game == nil {
		return
	}
	rc, err := a.renderConfig(cfg)
	if err != nil {
		a.notifyError(ErrorCategoryConfig, err)
		return
	}
	game.SetConfig(rc)
}

// renderConfig derives the window config, applying option overrides.
func (a *animator) renderConfig(cfg *config.Config) (render.Config, error) {
	rc, err := cfg.RenderConfig()
	if err != nil {
		return render.Config{}, err
	}
	if a.opts.WindowTitle != "" {
		rc.Title = a.opts.WindowTitle
	}
	return rc, nil
}

// IsRunning returns true if the animator is currently running.
func (a *animator) IsRunning() bool {
	return a.running.Load()
}

// Status returns detailed status information about the animator.
func (a *animator) Status() Status {
	a.mu.RLock()
	startTime := a.startTime
	configSource := a.configSource
	comp := a.compositor
	a.mu.RUnlock()

	var frames int64
	if comp != nil {
		frames = comp.Stats().Frames()
	}

	return Status{
		Running:        a.running.Load(),
		StartTime:      startTime,
		Animating:      a.animating.Load(),
		Cycle:          int(a.cycle.Load()),
		FramesRendered: frames,
		LastError:      a.getError(),
		ConfigSource:   configSource,
	}
}

// StartAnimating starts a transition to the next frame.
func (a *animator) StartAnimating() error {
	return a.post(func(v *view.View) { v.StartAnimating() })
}

// StopAnimating cancels the transition in flight.
func (a *animator) StopAnimating() error {
	return a.post(func(v *view.View) { v.StopAnimating() })
}

// post runs fn against the view on the host goroutine.
func (a *animator) post(fn func(*view.View)) error {
	if !a.running.Load() {
		return ErrNotRunning
	}
	a.mu.RLock()
	comp, v := a.compositor, a.view
	a.mu.RUnlock()
	if comp == nil || v == nil {
		return ErrNotRunning
	}
	comp.Post(func() { fn(v) })
	return nil
}

// Snapshot renders the view on the host goroutine and returns a copy.
func (a *animator) Snapshot(ctx context.Context) (*image.RGBA, error) {
	if !a.running.Load() {
		return nil, ErrNotRunning
	}
	a.mu.RLock()
	comp, v, hostCtx := a.compositor, a.view, a.ctx
	a.mu.RUnlock()
	if comp == nil || v == nil {
		return nil, ErrNotRunning
	}

	result := make(chan *image.RGBA, 1)
	comp.Post(func() {
		b := v.Bounds()
		frame := comp.Render(b.Dx(), b.Dy())
		out := image.NewRGBA(frame.Bounds())
		draw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, draw.Src)
		result <- out
	})

	select {
	case img := <-result:
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-hostCtx.Done():
		return nil, ErrNotRunning
	}
}

// SetErrorHandler registers a callback for runtime errors.
func (a *animator) SetErrorHandler(handler ErrorHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (a *animator) SetEventHandler(handler EventHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eventHandler = handler
}

// Metrics returns the metrics collector for this animator.
func (a *animator) Metrics() *Metrics {
	return a.metrics
}

// initComponents builds the compositor, the view and the watcher. Called
// with a.mu held.
func (a *animator) initComponents() error {
	if a.cfg == nil {
		return errors.New("configuration is nil")
	}
	a.logWarnings(a.cfg)

	bg, err := render.ParseColor(a.cfg.Window.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	a.compositor = render.NewCompositor(render.WithBackground(bg))
	a.view = view.New(a.compositor, view.WithLogger(a.logger), view.WithObserver(cycleObserver{a}))
	a.game = nil
	if err := a.applyConfig(a.view, a.cfg); err != nil {
		return err
	}
	a.metrics.SetFrameStats(a.compositor.Stats())

	a.watcher = nil
	if a.opts.WatchConfig && a.watchPath != "" {
		w, err := newConfigWatcher(a.watchPath, a.opts.WatchDebounce, a.reload, func(err error) {
			a.notifyError(ErrorCategoryWatch, err)
		})
		if err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
		a.watcher = w
	}
	return nil
}

// logWarnings reports validation warnings, which do not stop loading.
func (a *animator) logWarnings(cfg *config.Config) {
	for _, w := range config.NewValidator().Validate(cfg).Warnings {
		a.logger.Warn("config warning", "field", w.Field, "message", w.Message)
	}
}

// cleanup releases the components. It runs on the host goroutine after the
// host loop has returned.
func (a *animator) cleanup() {
	a.mu.Lock()
	watcher, v, comp := a.watcher, a.view, a.compositor
	a.game = nil
	a.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
	if v != nil {
		v.Close()
	}
	if comp != nil {
		if err := comp.Close(); err != nil {
			a.logger.Debug("compositor close failed", "error", err)
		}
	}
	a.animating.Store(false)
	a.metrics.SetAnimating(false)
}

// runHost blocks in the selected host until ctx is cancelled or the host quits.
func (a *animator) runHost(ctx context.Context) {
	switch a.hostMode() {
	case hostHeadless:
		a.runHeadless(ctx)
	case hostTerminal:
		a.runTerminal(ctx)
	default:
		a.runWindow(ctx)
	}
}

func (a *animator) hostMode() string {
	switch {
	case a.opts.Headless:
		return hostHeadless
	case a.opts.Terminal:
		return hostTerminal
	default:
		return hostWindow
	}
}

// runHeadless lays the view out at the configured size and ticks the
// compositor without drawing.
func (a *animator) runHeadless(ctx context.Context) {
	a.mu.RLock()
	comp, v := a.compositor, a.view
	w, h, fps := a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.FPS
	a.mu.RUnlock()

	if fps <= 0 {
		fps = config.DefaultFPS
	}
	v.Layout(image.Rect(0, 0, w, h))

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			comp.Advance()
		}
	}
}

// runTerminal hosts the view in the terminal with half-block cells.
func (a *animator) runTerminal(ctx context.Context) {
	open := a.newScreen
	if open == nil {
		open = term.NewScreen
	}
	screen, err := open()
	if err != nil {
		a.notifyError(ErrorCategoryRender, fmt.Errorf("terminal init: %w", err))
		return
	}

	a.mu.RLock()
	comp, v, fps := a.compositor, a.view, a.cfg.Window.FPS
	a.mu.RUnlock()

	host := term.New(screen, comp)
	host.SetLogger(slogFor(a.logger))
	host.SetTPS(fps)
	host.SetLayoutHandler(func(w, h int) { v.Layout(image.Rect(0, 0, w, h)) })
	host.SetToggleHandler(v.Toggle)

	if err := host.Run(ctx); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		a.notifyError(ErrorCategoryRender, fmt.Errorf("terminal loop error: %w", err))
	}
}

// cycleObserver feeds view cycle boundaries into status and metrics.
type cycleObserver struct{ a *animator }

func (o cycleObserver) CycleStarted(index int) {
	o.a.cycle.Store(int64(index))
	o.a.animating.Store(true)
	o.a.metrics.SetAnimating(true)
	o.a.metrics.IncrementCyclesStarted()
}

func (o cycleObserver) CycleCompleted(index int, finished bool) {
	o.a.animating.Store(false)
	o.a.metrics.SetAnimating(false)
	if finished {
		o.a.metrics.IncrementCyclesCompleted()
	} else {
		o.a.metrics.IncrementCyclesCancelled()
	}
}

// getError retrieves the last error.
func (a *animator) getError() error {
	if v := a.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// notifyError records err under category and invokes the error handler.
func (a *animator) notifyError(category ErrorCategory, err error) {
	var ce *CategorizedError
	if !errors.As(err, &ce) {
		ce = NewCategorizedError(err, category)
	}

	a.lastError.Store(error(ce))
	a.errors.Record(ce)
	a.metrics.IncrementErrors()
	a.logger.Error("animator error", "category", ce.Category.String(), "error", ce.Err)

	a.mu.RLock()
	handler := a.errorHandler
	a.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(ce)
		}()
	}

	a.emitEvent(EventError, ce.Error())
}

// emitEvent sends an event to the event handler if configured.
func (a *animator) emitEvent(eventType EventType, message string) {
	a.metrics.IncrementEventsEmitted()

	a.mu.RLock()
	handler := a.eventHandler
	a.mu.RUnlock()

	if handler == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.mu.RLock()
				errHandler := a.errorHandler
				a.mu.RUnlock()
				if errHandler != nil {
					errHandler(NewCategorizedError(fmt.Errorf("panic in event handler: %v", r), ErrorCategoryHandler))
				}
			}
		}()

		handler(Event{
			Type:      eventType,
			Timestamp: time.Now(),
			Message:   message,
		})
	}()
}

// Health returns a health check result for the animator.
func (a *animator) Health() HealthCheck {
	now := time.Now()
	components := make(map[string]ComponentHealth)
	running := a.running.Load()

	var uptime time.Duration
	a.mu.RLock()
	if running && !a.startTime.IsZero() {
		uptime = now.Sub(a.startTime)
	}
	comp, watcher := a.compositor, a.watcher
	a.mu.RUnlock()

	if running {
		components["instance"] = ComponentHealth{Status: HealthOK, Message: "Animator is running", LastUpdated: now}
	} else {
		components["instance"] = ComponentHealth{Status: HealthUnhealthy, Message: "Animator is not running", LastUpdated: now}
	}

	switch {
	case comp != nil && running:
		stats := comp.Stats()
		components["host"] = ComponentHealth{
			Status:      HealthOK,
			Message:     fmt.Sprintf("%s host, %d frames rendered, %.1f fps", a.hostMode(), stats.Frames(), stats.FPS()),
			LastUpdated: now,
		}
	case comp != nil:
		components["host"] = ComponentHealth{Status: HealthDegraded, Message: "Host initialized but not active", LastUpdated: now}
	default:
		components["host"] = ComponentHealth{Status: HealthUnhealthy, Message: "Host not initialized", LastUpdated: now}
	}

	if running {
		msg := "Idle"
		if a.animating.Load() {
			msg = fmt.Sprintf("Animating cycle %d", a.cycle.Load())
		}
		components["animation"] = ComponentHealth{Status: HealthOK, Message: msg, LastUpdated: now}
	}

	if a.opts.WatchConfig {
		if watcher != nil && running {
			components["watcher"] = ComponentHealth{Status: HealthOK, Message: "Watching " + a.watchPath, LastUpdated: now}
		} else {
			components["watcher"] = ComponentHealth{Status: HealthDegraded, Message: "Config watching requested but inactive", LastUpdated: now}
		}
	}

	recent := a.errors.CountSince(healthErrorWindow)
	if recent > 0 {
		components["errors"] = ComponentHealth{
			Status:      HealthDegraded,
			Message:     fmt.Sprintf("%d errors in the last %v, last: %v", recent, healthErrorWindow, a.getError()),
			LastUpdated: now,
		}
	} else {
		components["errors"] = ComponentHealth{Status: HealthOK, Message: "No recent errors", LastUpdated: now}
	}

	overallStatus := HealthOK
	var message string
	switch {
	case !running:
		overallStatus = HealthUnhealthy
		message = "Animator is not running"
	case recent > 0:
		overallStatus = HealthDegraded
		message = "Running with recent errors"
	default:
		message = "All components healthy"
	}

	return HealthCheck{
		Status:     overallStatus,
		Timestamp:  now,
		Uptime:     uptime,
		Components: components,
		Message:    message,
	}
}
