// Package term hosts the compositor in a terminal. Each cell shows two
// vertically stacked pixels using the upper half block, so a terminal of
// cols x rows cells is a cols x rows*2 pixel surface.
package term

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gradient/internal/render"
)

// upperHalf is drawn with the upper pixel as foreground and the lower
// pixel as background.
const upperHalf = '▀'

// DefaultTPS is the tick rate used when none is set.
const DefaultTPS = 30

// Screen drives a Compositor on a tcell.Screen.
type Screen struct {
	screen     tcell.Screen
	compositor *render.Compositor
	onLayout   render.LayoutHandler
	onToggle   func()
	logger     *slog.Logger
	tps        int

	cols, rows int
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps an initialized tcell screen. The Screen takes ownership and
// finalizes it when Run returns.
func New(screen tcell.Screen, comp *render.Compositor) *Screen {
	return &Screen{
		screen:     screen,
		compositor: comp,
		logger:     slog.Default(),
		tps:        DefaultTPS,
	}
}

// SetLayoutHandler sets the function told the pixel size on start and on
// every terminal resize.
func (s *Screen) SetLayoutHandler(h render.LayoutHandler) { s.onLayout = h }

// SetToggleHandler sets the function called when space is pressed.
func (s *Screen) SetToggleHandler(fn func()) { s.onToggle = fn }

// SetLogger sets the logger.
func (s *Screen) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetTPS sets the tick rate. Non-positive values restore DefaultTPS.
func (s *Screen) SetTPS(tps int) {
	if tps <= 0 {
		tps = DefaultTPS
	}
	s.tps = tps
}

// PixelSize returns the drawable size in pixels.
func (s *Screen) PixelSize() (width, height int) {
	return s.cols, s.rows * 2
}

// Run ticks and draws until the context is cancelled or a quit key is
// pressed. Either way it returns render.ErrGameTerminated.
func (s *Screen) Run(ctx context.Context) error {
	defer s.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	s.resize()
	s.Draw()

	ticker := time.NewTicker(time.Second / time.Duration(s.tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return render.ErrGameTerminated
		case ev, ok := <-events:
			if !ok {
				return render.ErrGameTerminated
			}
			if s.HandleEvent(ev) {
				s.logger.Debug("terminal host quit requested")
				return render.ErrGameTerminated
			}
		case <-ticker.C:
			s.compositor.Advance()
			s.Draw()
		}
	}
}

// HandleEvent reacts to one terminal event and reports whether it asks to quit.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case ' ':
				if s.onToggle != nil {
					s.onToggle()
				}
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
		s.resize()
		s.Draw()
	}
	return false
}

// resize re-reads the terminal size and reports changes to the layout handler.
func (s *Screen) resize() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.logger.Debug("terminal resized", "cols", cols, "rows", rows)
	if s.onLayout != nil {
		w, h := s.PixelSize()
		s.onLayout(w, h)
	}
}

// Draw renders one frame and paints it as half-block cells.
func (s *Screen) Draw() {
	w, h := s.PixelSize()
	if w <= 0 || h <= 0 {
		return
	}
	img := s.compositor.Render(w, h)
	Paint(s.screen, img)
	s.screen.Show()
}

// Paint writes img to screen, two pixel rows per cell row.
func Paint(screen tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			upper := cellColor(img, x, y)
			lower := upper
			if y+1 < b.Max.Y {
				lower = cellColor(img, x, y+1)
			}
			style := tcell.StyleDefault.Foreground(upper).Background(lower)
			screen.SetContent(x-b.Min.X, (y-b.Min.Y)/2, upperHalf, nil, style)
		}
	}
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
