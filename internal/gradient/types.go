// Package gradient provides the frame, direction and color-stop model for
// go-gradient. Everything here is pure: no layers, no clocks, no I/O.
package gradient

import (
	"fmt"
	"strings"
)

// Point is a normalized anchor point inside the unit square.
// (0, 0) is the top-left corner and (1, 1) the bottom-right corner.
type Point struct {
	X, Y float64
}

// Center is the middle of the unit square.
var Center = Point{X: 0.5, Y: 0.5}

// Direction specifies the compass direction a linear gradient flows in.
type Direction int

const (
	// DirectionUp flows from the bottom edge to the top edge.
	DirectionUp Direction = iota
	// DirectionDown flows from the top edge to the bottom edge.
	DirectionDown
	// DirectionLeft flows from the right edge to the left edge.
	DirectionLeft
	// DirectionRight flows from the left edge to the right edge.
	DirectionRight
	// DirectionUpLeft flows from the bottom-right corner to the top-left corner.
	DirectionUpLeft
	// DirectionUpRight flows from the bottom-left corner to the top-right corner.
	DirectionUpRight
	// DirectionDownLeft flows from the top-right corner to the bottom-left corner.
	DirectionDownLeft
	// DirectionDownRight flows from the top-left corner to the bottom-right corner.
	DirectionDownRight
)

// Directions lists every Direction value in declaration order.
var Directions = []Direction{
	DirectionUp, DirectionDown, DirectionLeft, DirectionRight,
	DirectionUpLeft, DirectionUpRight, DirectionDownLeft, DirectionDownRight,
}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUpLeft:
		return "up_left"
	case DirectionUpRight:
		return "up_right"
	case DirectionDownLeft:
		return "down_left"
	case DirectionDownRight:
		return "down_right"
	default:
		return "unknown"
	}
}

// ParseDirection parses a string into a Direction.
// Accepts snake_case, kebab-case, camelCase and short forms ("ul", "dr", ...).
func ParseDirection(s string) (Direction, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	switch norm {
	case "up", "u", "":
		return DirectionUp, nil
	case "down", "d":
		return DirectionDown, nil
	case "left", "l":
		return DirectionLeft, nil
	case "right", "r":
		return DirectionRight, nil
	case "upleft", "ul":
		return DirectionUpLeft, nil
	case "upright", "ur":
		return DirectionUpRight, nil
	case "downleft", "dl":
		return DirectionDownLeft, nil
	case "downright", "dr":
		return DirectionDownRight, nil
	default:
		return DirectionUp, fmt.Errorf("unknown gradient direction: %s", s)
	}
}

// Anchors returns the start and end anchor points for a linear gradient
// flowing in direction d. Unknown values map to DirectionUp.
func (d Direction) Anchors() (start, end Point) {
	switch d {
	case DirectionDown:
		return Point{0.5, 0}, Point{0.5, 1}
	case DirectionLeft:
		return Point{1, 0.5}, Point{0, 0.5}
	case DirectionRight:
		return Point{0, 0.5}, Point{1, 0.5}
	case DirectionUpLeft:
		return Point{1, 1}, Point{0, 0}
	case DirectionUpRight:
		return Point{0, 1}, Point{1, 0}
	case DirectionDownLeft:
		return Point{1, 0}, Point{0, 1}
	case DirectionDownRight:
		return Point{0, 0}, Point{1, 1}
	default:
		return Point{0.5, 1}, Point{0.5, 0}
	}
}

// Type specifies the gradient geometry.
type Type int

const (
	// TypeLinear interpolates along the line between the anchor points.
	TypeLinear Type = iota
	// TypeRadial interpolates outward from the start anchor.
	TypeRadial
	// TypeConic sweeps around the start anchor.
	TypeConic
)

// String returns the string representation of a Type.
func (t Type) String() string {
	switch t {
	case TypeLinear:
		return "linear"
	case TypeRadial:
		return "radial"
	case TypeConic:
		return "conic"
	default:
		return "unknown"
	}
}

// ParseType parses a string into a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "axial", "":
		return TypeLinear, nil
	case "radial":
		return TypeRadial, nil
	case "conic", "sweep", "angular":
		return TypeConic, nil
	default:
		return TypeLinear, fmt.Errorf("unknown gradient type: %s", s)
	}
}

// radialEnd is the end anchor used by radial and conic gradients. Together
// with Center it gives a radius that reaches the corners of the bounds.
var radialEnd = Point{X: 1, Y: 1}

// AnchorsFor returns the start and end anchor points for a gradient of type t.
// Linear gradients follow the direction; radial and conic gradients are
// always anchored at the center regardless of direction.
func AnchorsFor(d Direction, t Type) (start, end Point) {
	switch t {
	case TypeRadial, TypeConic:
		return Center, radialEnd
	default:
		return d.Anchors()
	}
}

// Frame is one gradient configuration consumed in rotation: an ordered list
// of color names, a direction and a gradient type. Frames are immutable.
type Frame struct {
	colors    []string
	direction Direction
	kind      Type
}

// NewFrame creates a Frame. The colors slice is copied.
func NewFrame(colors []string, direction Direction, kind Type) Frame {
	c := make([]string, len(colors))
	copy(c, colors)
	return Frame{colors: c, direction: direction, kind: kind}
}

// Colors returns a copy of the frame's color names.
func (f Frame) Colors() []string {
	c := make([]string, len(f.colors))
	copy(c, f.colors)
	return c
}

// Direction returns the frame's direction.
func (f Frame) Direction() Direction {
	return f.direction
}

// Type returns the frame's gradient type.
func (f Frame) Type() Type {
	return f.kind
}

// String returns a compact description such as "linear up [red blue]".
func (f Frame) String() string {
	return fmt.Sprintf("%s %s [%s]", f.kind, f.direction, strings.Join(f.colors, " "))
}
