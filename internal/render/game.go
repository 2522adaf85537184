// Package render provides the layer compositor for go-gradient and an
// Ebiten host that drives it: gradient and shape layers rasterized with gg,
// property animations stepped once per tick, and window integration.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrGameTerminated is returned when the game loop is terminated via context
// cancellation or the quit key.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// LayoutHandler is told the drawable size whenever it changes, starting
// with the first layout.
type LayoutHandler func(width, height int)

// Game implements ebiten.Game on top of a Compositor.
type Game struct {
	config       Config
	compositor   *Compositor
	onLayout     LayoutHandler
	onToggle     func()
	errorHandler ErrorHandler
	logger       *slog.Logger
	width        int
	height       int
	hintsApplied bool
	mu           sync.RWMutex
	running      bool
	ctx          context.Context
}

// NewGame creates a Game that renders comp.
func NewGame(config Config, comp *Compositor) *Game {
	return &Game{
		config:       config,
		compositor:   comp,
		errorHandler: DefaultErrorHandler,
		logger:       slog.Default(),
	}
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetLogger sets the logger used for startup warnings.
func (g *Game) SetLogger(l *slog.Logger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l != nil {
		g.logger = l
	}
}

// SetLayoutHandler registers the callback for drawable size changes.
func (g *Game) SetLayoutHandler(h LayoutHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLayout = h
}

// SetToggleHandler registers the callback for the space key.
func (g *Game) SetToggleHandler(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onToggle = fn
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// Update implements ebiten.Game.Update.
// It is called every tick (60 times per second unless Config.TPS says otherwise).
func (g *Game) Update() error {
	g.mu.RLock()
	ctx := g.ctx
	toggle := g.onToggle
	g.mu.RUnlock()

	if ctx != nil {
		select {
		case <-ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrGameTerminated
	}
	if toggle != nil && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		toggle()
	}

	g.compositor.Advance()
	return nil
}

// Draw implements ebiten.Game.Draw.
// It rasterizes the layer tree and copies it into the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	img := g.compositor.Render(b.Dx(), b.Dy())
	if len(img.Pix) == 4*b.Dx()*b.Dy() && len(img.Pix) > 0 {
		screen.WritePixels(img.Pix)
	}

	g.mu.Lock()
	apply := !g.hintsApplied
	g.hintsApplied = true
	hints := g.config.Hints
	handler := g.errorHandler
	g.mu.Unlock()

	// The native window only exists once the first frame is drawn.
	if apply {
		if err := ApplyWindowHints(hints); err != nil && handler != nil {
			handler(fmt.Errorf("applying window hints: %w", err))
		}
	}
}

// Layout implements ebiten.Game.Layout.
// The logical screen follows the window size so the gradient always fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	w, h := outsideWidth, outsideHeight
	if w <= 0 || h <= 0 {
		w, h = g.config.Width, g.config.Height
	}
	changed := w != g.width || h != g.height
	g.width, g.height = w, h
	handler := g.onLayout
	g.mu.Unlock()

	if changed && handler != nil {
		handler(w, h)
	}
	return w, h
}

// Size returns the last laid out drawable size.
func (g *Game) Size() (width, height int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width, g.height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the game configuration in-place.
// Window size and title changes are pushed to the window immediately.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	running := g.running
	old := g.config
	g.config = config
	g.mu.Unlock()

	if !running {
		return
	}
	if config.Width != old.Width || config.Height != old.Height {
		ebiten.SetWindowSize(config.Width, config.Height)
	}
	if config.Title != old.Title {
		ebiten.SetWindowTitle(config.Title)
	}
	if config.TPS > 0 && config.TPS != old.TPS {
		ebiten.SetTPS(config.TPS)
	}
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	g.mu.Lock()
	cfg := g.config
	logger := g.logger
	g.running = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.running = false
		g.mu.Unlock()
		CloseWindowHints()
	}()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	if cfg.Transparent {
		if warning := CheckTransparencySupport(cfg.Transparent); warning != "" {
			logger.Warn(warning)
		}
	}

	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Transparent,
	})
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
