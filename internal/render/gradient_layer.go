package render

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gg"

	"github.com/opd-ai/go-gradient/internal/gradient"
)

// gradientState is the set of animatable gradient properties.
type gradientState struct {
	colors     []color.RGBA
	locations  []float64
	startPoint gradient.Point
	endPoint   gradient.Point
}

func (s gradientState) clone() gradientState {
	return gradientState{
		colors:     cloneColors(s.colors),
		locations:  cloneFloats(s.locations),
		startPoint: s.startPoint,
		endPoint:   s.endPoint,
	}
}

// GradientLayer paints its bounds with a multi-stop gradient.
//
// Setters change the model value immediately. In-flight animations override
// the model while they run; when an animation is removed or finishes the
// layer shows the model value again, so callers commit final values
// themselves on completion.
type GradientLayer struct {
	layerNode

	model      gradientState
	kind       gradient.Type
	animations []*activeAnimation
	pending    []completion

	drawsAsync bool
	raster     asyncRaster
}

// NewGradientLayer creates a gradient layer. Colors and locations are copied.
func NewGradientLayer(bounds image.Rectangle, colors []color.RGBA, locations []float64) *GradientLayer {
	l := &GradientLayer{}
	l.SetBounds(bounds)
	l.model.colors = cloneColors(colors)
	l.model.locations = cloneFloats(locations)
	l.model.startPoint, l.model.endPoint = gradient.DirectionUp.Anchors()
	return l
}

// Colors returns the model color stops.
func (l *GradientLayer) Colors() []color.RGBA { return cloneColors(l.model.colors) }

// SetColors replaces the model color stops without animation.
func (l *GradientLayer) SetColors(c []color.RGBA) {
	l.model.colors = cloneColors(c)
	l.raster.invalidate()
}

// Locations returns the model stop locations.
func (l *GradientLayer) Locations() []float64 { return cloneFloats(l.model.locations) }

// SetLocations replaces the model stop locations without animation.
func (l *GradientLayer) SetLocations(locs []float64) {
	l.model.locations = cloneFloats(locs)
	l.raster.invalidate()
}

// StartPoint returns the model start anchor.
func (l *GradientLayer) StartPoint() gradient.Point { return l.model.startPoint }

// SetStartPoint moves the model start anchor without animation.
func (l *GradientLayer) SetStartPoint(p gradient.Point) {
	l.model.startPoint = p
	l.raster.invalidate()
}

// EndPoint returns the model end anchor.
func (l *GradientLayer) EndPoint() gradient.Point { return l.model.endPoint }

// SetEndPoint moves the model end anchor without animation.
func (l *GradientLayer) SetEndPoint(p gradient.Point) {
	l.model.endPoint = p
	l.raster.invalidate()
}

// Type returns the gradient geometry.
func (l *GradientLayer) Type() gradient.Type { return l.kind }

// SetType changes the gradient geometry.
func (l *GradientLayer) SetType(t gradient.Type) {
	l.kind = t
	l.raster.invalidate()
}

// SetBounds resizes the layer in place.
func (l *GradientLayer) SetBounds(r image.Rectangle) {
	l.layerNode.SetBounds(r)
	l.raster.invalidate()
}

// DrawsAsynchronously reports whether rasterization runs off the draw goroutine.
func (l *GradientLayer) DrawsAsynchronously() bool { return l.drawsAsync }

// SetDrawsAsynchronously toggles background rasterization.
func (l *GradientLayer) SetDrawsAsynchronously(async bool) {
	l.drawsAsync = async
	l.raster.invalidate()
}

// AddAnimation starts group under key, replacing any animation already
// running under that key. The replaced animation completes with
// finished=false on the next compositor tick.
func (l *GradientLayer) AddAnimation(group AnimationGroup, key string) error {
	if err := group.validate(); err != nil {
		return err
	}
	l.RemoveAnimation(key)

	g := group
	g.Animations = make([]BasicAnimation, len(group.Animations))
	copy(g.Animations, group.Animations)
	l.animations = append(l.animations, &activeAnimation{key: key, group: g})
	l.raster.invalidate()
	return nil
}

// AnimationKeys returns the keys of animations currently in flight.
func (l *GradientLayer) AnimationKeys() []string {
	keys := make([]string, 0, len(l.animations))
	for _, a := range l.animations {
		keys = append(keys, a.key)
	}
	return keys
}

// Animating reports whether any animation is in flight.
func (l *GradientLayer) Animating() bool { return len(l.animations) > 0 }

// RemoveAnimation cancels the animation under key, if any.
func (l *GradientLayer) RemoveAnimation(key string) {
	for i, a := range l.animations {
		if a.key == key {
			l.animations = append(l.animations[:i], l.animations[i+1:]...)
			l.pending = append(l.pending, completion{fn: a.group.OnComplete, finished: false})
			l.raster.invalidate()
			return
		}
	}
}

// RemoveAllAnimations cancels every in-flight animation.
func (l *GradientLayer) RemoveAllAnimations() {
	for _, a := range l.animations {
		l.pending = append(l.pending, completion{fn: a.group.OnComplete, finished: false})
	}
	if len(l.animations) > 0 {
		l.raster.invalidate()
	}
	l.animations = nil
}

// advance steps every animation to now and returns the completions to
// deliver: cancellations first, then natural completions in start order.
func (l *GradientLayer) advance(now time.Time) []completion {
	out := l.pending
	l.pending = nil

	if len(l.animations) == 0 {
		return out
	}

	remaining := l.animations[:0]
	for _, a := range l.animations {
		if a.step(now) {
			out = append(out, completion{fn: a.group.OnComplete, finished: true})
			continue
		}
		remaining = append(remaining, a)
	}
	l.animations = remaining
	l.raster.invalidate()
	return out
}

// Presentation returns the colors, locations and anchors as currently
// displayed, with in-flight animations applied over the model.
func (l *GradientLayer) Presentation() (colors []color.RGBA, locations []float64, start, end gradient.Point) {
	s := l.presentation()
	return s.colors, s.locations, s.startPoint, s.endPoint
}

func (l *GradientLayer) presentation() gradientState {
	s := l.model.clone()
	for _, a := range l.animations {
		t := a.progress
		for _, ba := range a.group.Animations {
			switch ba.KeyPath {
			case KeyColors:
				s.colors = gradient.LerpColors(ba.From.([]color.RGBA), ba.To.([]color.RGBA), t)
			case KeyLocations:
				s.locations = gradient.LerpLocations(ba.From.([]float64), ba.To.([]float64), t)
			case KeyStartPoint:
				s.startPoint = gradient.LerpPoint(ba.From.(gradient.Point), ba.To.(gradient.Point), t)
			case KeyEndPoint:
				s.endPoint = gradient.LerpPoint(ba.From.(gradient.Point), ba.To.(gradient.Point), t)
			}
		}
	}
	return s
}

// Draw paints the presentation state into dc.
func (l *GradientLayer) Draw(dc *gg.Context) {
	b := l.Bounds()
	if b.Empty() {
		return
	}
	if l.drawsAsync {
		if img := l.raster.request(b, l.kind, l.presentation()); img != nil {
			dc.DrawImage(img, float64(b.Min.X), float64(b.Min.Y))
			return
		}
	}
	paintGradient(dc, b, l.kind, l.presentation())
}

// Flush waits for any background rasterization to finish.
func (l *GradientLayer) Flush() {
	l.raster.wait()
}

// paintGradient fills bounds in dc with a gg gradient brush for s.
func paintGradient(dc *gg.Context, bounds image.Rectangle, kind gradient.Type, s gradientState) {
	x, y := float64(bounds.Min.X), float64(bounds.Min.Y)
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	sx, sy := x+s.startPoint.X*w, y+s.startPoint.Y*h
	ex, ey := x+s.endPoint.X*w, y+s.endPoint.Y*h

	colors, locs := s.colors, s.locations
	if len(colors) == 0 {
		colors = gradient.DefaultColors
	}
	if len(locs) != len(colors) {
		locs = gradient.Locations(len(colors))
	}

	var brush gg.Brush
	switch kind {
	case gradient.TypeRadial:
		rb := gg.NewRadialGradientBrush(sx, sy, 0, math.Hypot(ex-sx, ey-sy))
		for i, c := range colors {
			rb.AddColorStop(locs[i], toGG(c))
		}
		brush = rb
	case gradient.TypeConic:
		cb := gg.NewSweepGradientBrush(sx, sy, math.Atan2(ey-sy, ex-sx))
		for i, c := range colors {
			cb.AddColorStop(locs[i], toGG(c))
		}
		brush = cb
	default:
		lb := gg.NewLinearGradientBrush(sx, sy, ex, ey)
		for i, c := range colors {
			lb.AddColorStop(locs[i], toGG(c))
		}
		brush = lb
	}

	dc.SetFillBrush(brush)
	dc.DrawRectangle(x, y, w, h)
	_ = dc.Fill()
}

// toGG converts a straight-alpha color.RGBA to gg's float color.
func toGG(c color.RGBA) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// asyncRaster rasterizes a gradient layer on a background goroutine into
// its own gg.Context and hands back the last completed image.
type asyncRaster struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	dc      *gg.Context
	front   *gg.ImageBuf
	dirty   bool
	running bool
}

func (r *asyncRaster) invalidate() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
}

// request returns the latest completed raster and, if the layer changed
// since, starts a new rasterization of s. It returns nil until the first
// raster exists so the caller can paint synchronously.
func (r *asyncRaster) request(bounds image.Rectangle, kind gradient.Type, s gradientState) *gg.ImageBuf {
	r.mu.Lock()
	defer r.mu.Unlock()

	if (r.dirty || r.front == nil) && !r.running {
		r.dirty = false
		r.running = true
		r.wg.Add(1)
		go r.rasterize(bounds, kind, s.clone())
	}
	return r.front
}

func (r *asyncRaster) rasterize(bounds image.Rectangle, kind gradient.Type, s gradientState) {
	defer r.wg.Done()

	w, h := bounds.Dx(), bounds.Dy()
	r.mu.Lock()
	dc := r.dc
	r.mu.Unlock()
	if dc == nil {
		dc = gg.NewContext(w, h)
	} else if err := dc.Resize(w, h); err != nil {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		return
	}

	dc.Clear()
	paintGradient(dc, image.Rect(0, 0, w, h), kind, s)
	img := gg.ImageBufFromImage(dc.Image())

	r.mu.Lock()
	r.dc = dc
	r.front = img
	r.running = false
	r.mu.Unlock()
}

func (r *asyncRaster) wait() {
	r.wg.Wait()
}
