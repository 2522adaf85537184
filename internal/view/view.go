// Package view implements the animated gradient view: a single gradient
// layer that cycles through a sequence of frames with linear cross-fades.
//
// All methods must be called from the goroutine that ticks the compositor.
package view

import (
	"image"
	"image/color"
	"time"

	"github.com/opd-ai/go-gradient/internal/gradient"
	"github.com/opd-ai/go-gradient/internal/render"
)

// DefaultDuration is the length of one cross-fade.
const DefaultDuration = 5 * time.Second

// AnimationKey is the key the view's transition is registered under.
const AnimationKey = "gradient"

// Logger receives diagnostic messages from the view.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Observer is notified about cycle boundaries.
type Observer interface {
	// CycleStarted is called when a transition to the frame at index begins.
	CycleStarted(index int)
	// CycleCompleted is called when that transition ends; finished is false
	// if it was cancelled.
	CycleCompleted(index int, finished bool)
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the view's logger.
func WithLogger(l Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithObserver registers a cycle observer.
func WithObserver(o Observer) Option {
	return func(v *View) { v.observer = o }
}

// entry is one resolved step of the rotation.
type entry struct {
	colors    []color.RGBA
	direction gradient.Direction
	kind      gradient.Type
}

// View is the animated gradient view.
type View struct {
	comp     *render.Compositor
	logger   Logger
	observer Observer

	// conic is resolved once from the compositor's capabilities.
	conic bool

	frames      []gradient.Frame
	frameColors [][]color.RGBA
	palette     [][]color.RGBA

	autoAnimate bool
	autoRepeat  bool
	duration    time.Duration
	direction   gradient.Direction
	kind        gradient.Type
	drawsAsync  bool

	gridColor     color.RGBA
	gridOpacity   float64
	gridDivisions int
	grid          []*render.ShapeLayer

	bounds     image.Rectangle
	laidOut    bool
	layer      *render.GradientLayer
	state      State
	index      int
	generation uint64
}

// New creates a view that draws into comp. The view has no layer until the
// first Layout.
func New(comp *render.Compositor, opts ...Option) *View {
	v := &View{
		comp:        comp,
		logger:      nopLogger{},
		conic:       comp.Capabilities().Conic,
		autoAnimate: true,
		autoRepeat:  true,
		duration:    DefaultDuration,
		direction:   gradient.DirectionUp,
		kind:        gradient.TypeLinear,
		gridColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		gridOpacity: 0.25,
	}
	for _, opt := range opts {
		opt(v)
	}
	if !v.conic {
		v.logger.Info("conic gradients unsupported by compositor, drawing radial instead")
	}
	return v
}

// Frames returns a copy of the frame list.
func (v *View) Frames() []gradient.Frame {
	out := make([]gradient.Frame, len(v.frames))
	copy(out, v.frames)
	return out
}

// SetFrames replaces the frame list and resolves every frame's color names.
// Names that cannot be resolved are dropped. A non-empty list takes
// precedence over the palette.
func (v *View) SetFrames(frames []gradient.Frame) {
	v.frames = make([]gradient.Frame, len(frames))
	copy(v.frames, frames)

	v.frameColors = make([][]color.RGBA, len(frames))
	for i, f := range frames {
		v.frameColors[i] = v.resolve(f.Colors(), "frame", i)
	}
}

// Palette returns a copy of the resolved palette rows.
func (v *View) Palette() [][]color.RGBA {
	out := make([][]color.RGBA, len(v.palette))
	for i, row := range v.palette {
		out[i] = append([]color.RGBA(nil), row...)
	}
	return out
}

// SetPalette resolves named color rows into the palette. It is only used
// when no frames are set.
func (v *View) SetPalette(rows [][]string) {
	v.palette = make([][]color.RGBA, len(rows))
	for i, row := range rows {
		v.palette[i] = v.resolve(row, "palette", i)
	}
}

// SetPaletteColors sets the palette from concrete colors.
func (v *View) SetPaletteColors(rows [][]color.RGBA) {
	v.palette = make([][]color.RGBA, len(rows))
	for i, row := range rows {
		v.palette[i] = append([]color.RGBA(nil), row...)
	}
}

func (v *View) resolve(names []string, source string, i int) []color.RGBA {
	colors, rejected := render.ResolveColors(names)
	if len(rejected) > 0 {
		v.logger.Debug("dropped unresolvable colors", "source", source, "index", i, "colors", rejected)
	}
	return colors
}

// AutoAnimate reports whether the first layout starts the animation.
func (v *View) AutoAnimate() bool { return v.autoAnimate }

// SetAutoAnimate sets whether the first layout starts the animation.
func (v *View) SetAutoAnimate(on bool) { v.autoAnimate = on }

// AutoRepeat reports whether a finished cycle starts the next one.
func (v *View) AutoRepeat() bool { return v.autoRepeat }

// SetAutoRepeat sets whether a finished cycle starts the next one. Turning
// it off lets the cycle in flight finish and commit, then the view idles.
func (v *View) SetAutoRepeat(on bool) { v.autoRepeat = on }

// Duration returns the length of one cross-fade.
func (v *View) Duration() time.Duration { return v.duration }

// SetDuration sets the cross-fade length used from the next cycle on.
// Non-positive values restore DefaultDuration.
func (v *View) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	v.duration = d
}

// Direction returns the view-level direction used by palette rows.
func (v *View) Direction() gradient.Direction { return v.direction }

// SetDirection sets the view-level direction and re-points the live
// layer's anchors without animating.
func (v *View) SetDirection(d gradient.Direction) {
	v.direction = d
	v.repoint()
}

// Type returns the view-level gradient type used by palette rows.
func (v *View) Type() gradient.Type { return v.kind }

// SetType sets the view-level gradient type and re-points the live layer.
func (v *View) SetType(t gradient.Type) {
	v.kind = t
	if v.layer != nil {
		v.layer.SetType(v.effectiveType(t))
	}
	v.repoint()
}

func (v *View) repoint() {
	if v.layer == nil {
		return
	}
	start, end := gradient.AnchorsFor(v.direction, v.effectiveType(v.kind))
	v.layer.SetStartPoint(start)
	v.layer.SetEndPoint(end)
}

// effectiveType maps conic to radial when the compositor cannot draw conic.
func (v *View) effectiveType(t gradient.Type) gradient.Type {
	if t == gradient.TypeConic && !v.conic {
		return gradient.TypeRadial
	}
	return t
}

// DrawsAsynchronously reports whether the layer rasterizes off the UI goroutine.
func (v *View) DrawsAsynchronously() bool { return v.drawsAsync }

// SetDrawsAsynchronously is passed through to the layer.
func (v *View) SetDrawsAsynchronously(async bool) {
	v.drawsAsync = async
	if v.layer != nil {
		v.layer.SetDrawsAsynchronously(async)
	}
}

// Layer returns the gradient layer, or nil before the first Layout.
func (v *View) Layer() *render.GradientLayer { return v.layer }

// Bounds returns the last laid out bounds.
func (v *View) Bounds() image.Rectangle { return v.bounds }

// entries returns the active rotation: the frames when set, otherwise the
// palette rows, otherwise the default gradient.
func (v *View) entries() []entry {
	if len(v.frames) > 0 {
		out := make([]entry, len(v.frames))
		for i, f := range v.frames {
			out[i] = entry{colors: v.frameColors[i], direction: f.Direction(), kind: f.Type()}
		}
		return out
	}
	if len(v.palette) > 0 {
		out := make([]entry, len(v.palette))
		for i, row := range v.palette {
			out[i] = entry{colors: row, direction: v.direction, kind: v.kind}
		}
		return out
	}
	return []entry{{colors: gradient.DefaultColors, direction: v.direction, kind: v.kind}}
}

// stopCount is the longest stop count across the rotation.
func stopCount(entries []entry) int {
	counts := make([]int, len(entries))
	for i, e := range entries {
		counts[i] = len(e.colors)
	}
	return gradient.LongestStopCount(counts...)
}

// target is everything one transition animates to.
type target struct {
	index     int
	colors    []color.RGBA
	locations []float64
	start     gradient.Point
	end       gradient.Point
	kind      gradient.Type
}

// targetAt computes the padded stops and anchors of the entry at index.
func (v *View) targetAt(index int) target {
	entries := v.entries()
	e := entries[mod(index, len(entries))]
	n := stopCount(entries)

	colors, locs := gradient.Stops(e.colors, n)
	kind := v.effectiveType(e.kind)
	start, end := gradient.AnchorsFor(e.direction, kind)
	return target{index: index, colors: colors, locations: locs, start: start, end: end, kind: kind}
}

// CurrentStops returns the padded colors and locations of the frame the
// cycle index currently points at.
func (v *View) CurrentStops() ([]color.RGBA, []float64) {
	t := v.targetAt(v.index)
	return t.colors, t.locations
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
