package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/gogpu/gg"
)

// Capabilities describes what the compositor can draw. It is resolved once
// when the compositor is created.
type Capabilities struct {
	// Conic reports support for conic (sweep) gradients.
	Conic bool
}

// DefaultCapabilities reports everything the gg rasterizer supports.
func DefaultCapabilities() Capabilities {
	return Capabilities{Conic: true}
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithCapabilities overrides the rasterizer capabilities.
func WithCapabilities(caps Capabilities) CompositorOption {
	return func(c *Compositor) { c.caps = caps }
}

// WithClock replaces time.Now as the compositor's time source.
func WithClock(now func() time.Time) CompositorOption {
	return func(c *Compositor) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithBackground sets the color the target is cleared to before drawing.
func WithBackground(bg color.RGBA) CompositorOption {
	return func(c *Compositor) { c.background = bg }
}

// Compositor owns a layer tree, steps its animations and rasterizes it.
//
// Tick, Render and every layer mutation must happen on a single goroutine
// (the UI goroutine). Other goroutines hand work over with Post.
type Compositor struct {
	root       *ContainerLayer
	caps       Capabilities
	clock      func() time.Time
	background color.RGBA
	dc         *gg.Context
	stats      *FrameStats

	mu     sync.Mutex
	posted []func()
}

// NewCompositor creates a compositor with an empty root layer.
func NewCompositor(opts ...CompositorOption) *Compositor {
	c := &Compositor{
		root:  NewContainerLayer(image.Rectangle{}),
		caps:  DefaultCapabilities(),
		clock: time.Now,
		stats: NewFrameStats(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capabilities returns the capabilities resolved at construction.
func (c *Compositor) Capabilities() Capabilities { return c.caps }

// Now returns the current time from the compositor's clock.
func (c *Compositor) Now() time.Time { return c.clock() }

// Stats returns the rasterization statistics.
func (c *Compositor) Stats() *FrameStats { return c.stats }

// Root returns the root layer.
func (c *Compositor) Root() Layer { return c.root }

// AddLayer attaches l to the root layer.
func (c *Compositor) AddLayer(l Layer) { c.root.AddSublayer(l) }

// Layers returns the root's direct sublayers.
func (c *Compositor) Layers() []Layer { return c.root.Sublayers() }

// Post queues fn to run at the start of the next Tick. Safe for concurrent use.
func (c *Compositor) Post(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.posted = append(c.posted, fn)
	c.mu.Unlock()
}

// Tick runs posted work, steps every animation to now and then delivers
// completion callbacks in order. Callbacks may add or remove animations;
// those take effect from the next Tick.
func (c *Compositor) Tick(now time.Time) {
	c.mu.Lock()
	posted := c.posted
	c.posted = nil
	c.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	var done []completion
	walkAll(c.root, func(l Layer) {
		if a, ok := l.(animator); ok {
			done = append(done, a.advance(now)...)
		}
	})
	for _, cb := range done {
		cb.deliver()
	}
}

// Advance is Tick at the compositor clock's current time.
func (c *Compositor) Advance() { c.Tick(c.clock()) }

// Render draws the visible layer tree into a width x height image.
// The returned image is owned by the caller.
func (c *Compositor) Render(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	begin := time.Now()
	defer func() {
		end := time.Now()
		c.stats.RecordFrame(end.Sub(begin), end)
	}()

	if c.dc == nil {
		c.dc = gg.NewContext(width, height)
	} else if err := c.dc.Resize(width, height); err != nil {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	c.dc.ClearWithColor(toGG(c.background))
	walk(c.root, func(l Layer) { l.Draw(c.dc) })

	src := c.dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

// Flush waits for background rasterization in every layer.
func (c *Compositor) Flush() {
	walkAll(c.root, func(l Layer) {
		if g, ok := l.(*GradientLayer); ok {
			g.Flush()
		}
	})
}

// Close releases the drawing context.
func (c *Compositor) Close() error {
	c.Flush()
	if c.dc == nil {
		return nil
	}
	err := c.dc.Close()
	c.dc = nil
	return err
}
