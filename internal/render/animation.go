package render

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/opd-ai/go-gradient/internal/gradient"
)

// ErrLengthMismatch is returned when an animation's color and location
// arrays do not all have the same length. Interpolating arrays of different
// lengths is undefined, so the compositor refuses them up front.
var ErrLengthMismatch = errors.New("animated array lengths differ")

// ErrInvalidAnimation is returned for animations with an unknown key path,
// a value of the wrong type, or a non-positive duration.
var ErrInvalidAnimation = errors.New("invalid animation")

// KeyPath names an animatable gradient layer property.
type KeyPath string

// Animatable gradient layer properties.
const (
	KeyColors     KeyPath = "colors"
	KeyLocations  KeyPath = "locations"
	KeyStartPoint KeyPath = "startPoint"
	KeyEndPoint   KeyPath = "endPoint"
)

// TimingFunction maps linear progress in [0, 1] to eased progress.
type TimingFunction func(t float64) float64

// Linear is the identity timing function.
func Linear(t float64) float64 { return t }

// BasicAnimation interpolates one property from From to To.
// Use the typed constructors; From and To must match the key path's type.
type BasicAnimation struct {
	KeyPath KeyPath
	From    any
	To      any
}

// AnimateColors builds a colors animation.
func AnimateColors(from, to []color.RGBA) BasicAnimation {
	return BasicAnimation{KeyPath: KeyColors, From: cloneColors(from), To: cloneColors(to)}
}

// AnimateLocations builds a locations animation.
func AnimateLocations(from, to []float64) BasicAnimation {
	return BasicAnimation{KeyPath: KeyLocations, From: cloneFloats(from), To: cloneFloats(to)}
}

// AnimateStartPoint builds a start anchor animation.
func AnimateStartPoint(from, to gradient.Point) BasicAnimation {
	return BasicAnimation{KeyPath: KeyStartPoint, From: from, To: to}
}

// AnimateEndPoint builds an end anchor animation.
func AnimateEndPoint(from, to gradient.Point) BasicAnimation {
	return BasicAnimation{KeyPath: KeyEndPoint, From: from, To: to}
}

// AnimationGroup runs several property animations with one shared duration,
// timing function and completion callback.
type AnimationGroup struct {
	Animations []BasicAnimation
	Duration   time.Duration
	// Timing defaults to Linear when nil.
	Timing TimingFunction
	// OnComplete is called on the compositor goroutine once the group ends.
	// finished is false when the group was removed before it completed.
	OnComplete func(finished bool)
}

// validate checks key paths, value types and array lengths.
func (g *AnimationGroup) validate() error {
	if g.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidAnimation, g.Duration)
	}

	colorsLen, locsLen := -1, -1
	for _, a := range g.Animations {
		switch a.KeyPath {
		case KeyColors:
			from, ok1 := a.From.([]color.RGBA)
			to, ok2 := a.To.([]color.RGBA)
			if !ok1 || !ok2 {
				return fmt.Errorf("%w: %s values must be []color.RGBA", ErrInvalidAnimation, a.KeyPath)
			}
			if len(from) != len(to) {
				return fmt.Errorf("%w: colors from %d to %d", ErrLengthMismatch, len(from), len(to))
			}
			colorsLen = len(to)
		case KeyLocations:
			from, ok1 := a.From.([]float64)
			to, ok2 := a.To.([]float64)
			if !ok1 || !ok2 {
				return fmt.Errorf("%w: %s values must be []float64", ErrInvalidAnimation, a.KeyPath)
			}
			if len(from) != len(to) {
				return fmt.Errorf("%w: locations from %d to %d", ErrLengthMismatch, len(from), len(to))
			}
			locsLen = len(to)
		case KeyStartPoint, KeyEndPoint:
			_, ok1 := a.From.(gradient.Point)
			_, ok2 := a.To.(gradient.Point)
			if !ok1 || !ok2 {
				return fmt.Errorf("%w: %s values must be gradient.Point", ErrInvalidAnimation, a.KeyPath)
			}
		default:
			return fmt.Errorf("%w: unknown key path %q", ErrInvalidAnimation, a.KeyPath)
		}
	}

	if colorsLen >= 0 && locsLen >= 0 && colorsLen != locsLen {
		return fmt.Errorf("%w: %d colors but %d locations", ErrLengthMismatch, colorsLen, locsLen)
	}
	return nil
}

// activeAnimation is an AnimationGroup in flight on a layer.
type activeAnimation struct {
	key      string
	group    AnimationGroup
	begin    time.Time
	progress float64
}

// step updates progress for now and reports whether the group is done.
// The begin time is latched on the first step after the group was added.
func (a *activeAnimation) step(now time.Time) bool {
	if a.begin.IsZero() {
		a.begin = now
	}
	elapsed := now.Sub(a.begin)
	if elapsed >= a.group.Duration {
		a.progress = 1
		return true
	}
	t := float64(elapsed) / float64(a.group.Duration)
	if a.group.Timing != nil {
		t = a.group.Timing(t)
	}
	a.progress = t
	return false
}

// completion is a queued OnComplete invocation.
type completion struct {
	fn       func(finished bool)
	finished bool
}

func (c completion) deliver() {
	if c.fn != nil {
		c.fn(c.finished)
	}
}

func cloneColors(c []color.RGBA) []color.RGBA {
	if c == nil {
		return nil
	}
	out := make([]color.RGBA, len(c))
	copy(out, c)
	return out
}

func cloneFloats(f []float64) []float64 {
	if f == nil {
		return nil
	}
	out := make([]float64, len(f))
	copy(out, f)
	return out
}
