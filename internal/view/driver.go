package view

import (
	"image"
	"image/color"

	"github.com/opd-ai/go-gradient/internal/gradient"
	"github.com/opd-ai/go-gradient/internal/render"
)

// State is the animation driver state.
type State int

const (
	// Idle means no transition is in flight.
	Idle State = iota
	// Animating means exactly one transition is in flight.
	Animating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Animating:
		return "animating"
	default:
		return "idle"
	}
}

// State returns the driver state.
func (v *View) State() State { return v.state }

// Index returns the cycle index. It only moves forward.
func (v *View) Index() int { return v.index }

// Layout creates the gradient layer on first use and resizes it in place
// afterwards. The first layout starts the animation when auto-animate is on.
func (v *View) Layout(bounds image.Rectangle) {
	v.bounds = bounds
	v.ensureLayer()
	v.layer.SetBounds(bounds)
	v.layoutGrid()

	first := !v.laidOut
	v.laidOut = true
	if first && v.autoAnimate && v.state == Idle {
		v.StartAnimating()
	}
}

// ensureLayer creates the layer with the current frame's stops so nothing
// blank is ever shown before the first transition.
func (v *View) ensureLayer() {
	if v.layer != nil {
		return
	}
	t := v.targetAt(v.index)
	v.layer = render.NewGradientLayer(v.bounds, t.colors, t.locations)
	v.layer.SetStartPoint(t.start)
	v.layer.SetEndPoint(t.end)
	v.layer.SetType(t.kind)
	v.layer.SetDrawsAsynchronously(v.drawsAsync)
	v.comp.AddLayer(v.layer)
}

// StartAnimating cancels any transition in flight and starts a transition
// to the next frame.
func (v *View) StartAnimating() {
	v.ensureLayer()
	if v.state == Animating {
		v.cancel()
	}
	v.next()
}

// StopAnimating cancels the transition in flight. The layer snaps back to
// the last committed frame and the cycle index is left unchanged.
func (v *View) StopAnimating() {
	if v.state == Animating {
		v.cancel()
	}
	v.state = Idle
}

// Toggle starts the animation when idle and stops it otherwise.
func (v *View) Toggle() {
	if v.state == Animating {
		v.StopAnimating()
		return
	}
	v.StartAnimating()
}

// cancel removes the in-flight transition. Its completion callback still
// arrives on the next tick but is ignored because the generation moved on.
func (v *View) cancel() {
	v.generation++
	if v.layer != nil {
		v.layer.RemoveAnimation(AnimationKey)
	}
	if v.observer != nil {
		v.observer.CycleCompleted(v.index, false)
	}
}

// next advances the index and submits one transition to the layer.
func (v *View) next() {
	v.index++
	t := v.targetAt(v.index)
	n := len(t.colors)

	fromColors := fitColors(v.layer.Colors(), n)
	fromLocs := v.layer.Locations()
	if len(fromLocs) != n {
		fromLocs = gradient.DedupeLocations(gradient.Locations(n), min(len(v.layer.Locations()), n))
	}

	v.generation++
	gen := v.generation
	group := render.AnimationGroup{
		Animations: []render.BasicAnimation{
			render.AnimateColors(fromColors, t.colors),
			render.AnimateLocations(fromLocs, t.locations),
			render.AnimateStartPoint(v.layer.StartPoint(), t.start),
			render.AnimateEndPoint(v.layer.EndPoint(), t.end),
		},
		Duration:   v.duration,
		Timing:     render.Linear,
		OnComplete: func(finished bool) { v.complete(gen, t, finished) },
	}

	// Geometry type is not interpolated; the new frame's type applies for
	// the whole transition.
	v.layer.SetType(t.kind)
	if err := v.layer.AddAnimation(group, AnimationKey); err != nil {
		v.logger.Info("transition rejected by compositor", "index", t.index, "error", err)
		v.commit(t)
		v.state = Idle
		return
	}

	v.state = Animating
	v.logger.Debug("cycle started", "index", t.index, "stops", n, "start", t.start, "end", t.end, "type", t.kind)
	if v.observer != nil {
		v.observer.CycleStarted(t.index)
	}
}

// complete handles a transition's completion callback.
func (v *View) complete(gen uint64, t target, finished bool) {
	if gen != v.generation || !finished {
		return
	}
	v.commit(t)
	v.logger.Debug("cycle completed", "index", t.index)
	if v.observer != nil {
		v.observer.CycleCompleted(t.index, true)
	}

	if v.autoRepeat && v.state == Animating {
		v.next()
		return
	}
	v.state = Idle
}

// commit writes a transition's end values into the layer model.
func (v *View) commit(t target) {
	v.layer.SetColors(t.colors)
	v.layer.SetLocations(t.locations)
	v.layer.SetStartPoint(t.start)
	v.layer.SetEndPoint(t.end)
}

// Close cancels animation and detaches the layer and grid from the compositor.
func (v *View) Close() {
	v.generation++
	v.state = Idle
	v.clearGrid()
	if v.layer == nil {
		return
	}
	v.layer.RemoveAllAnimations()
	v.layer.RemoveFromSuperlayer()
	v.layer = nil
	v.laidOut = false
}

// fitColors pads or truncates c to exactly n entries.
func fitColors(c []color.RGBA, n int) []color.RGBA {
	if len(c) > n {
		return c[:n]
	}
	return gradient.PadColors(c, n)
}
