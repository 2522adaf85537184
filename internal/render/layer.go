package render

import (
	"image"
	"time"

	"github.com/gogpu/gg"
)

// Layer is a node in the compositor's retained layer tree.
// Layers draw themselves in bounds coordinates of the render target;
// sublayers are drawn after (on top of) their parent in insertion order.
type Layer interface {
	// Bounds returns the layer's frame in target pixels.
	Bounds() image.Rectangle
	// SetBounds moves or resizes the layer in place.
	SetBounds(r image.Rectangle)
	// Hidden reports whether the layer and its sublayers are skipped.
	Hidden() bool
	// SetHidden toggles visibility.
	SetHidden(hidden bool)
	// Sublayers returns a copy of the child list.
	Sublayers() []Layer
	// AddSublayer appends child, detaching it from any previous parent.
	AddSublayer(child Layer)
	// RemoveFromSuperlayer detaches the layer from its parent.
	RemoveFromSuperlayer()
	// Draw renders this layer only (not its sublayers).
	Draw(dc *gg.Context)

	node() *layerNode
}

// animator is implemented by layers that carry property animations.
type animator interface {
	advance(now time.Time) []completion
}

// layerNode holds the tree bookkeeping shared by all layer types.
type layerNode struct {
	parent    *layerNode
	sublayers []Layer
	bounds    image.Rectangle
	hidden    bool
}

func (n *layerNode) node() *layerNode { return n }

// Bounds returns the layer's frame in target pixels.
func (n *layerNode) Bounds() image.Rectangle { return n.bounds }

// SetBounds moves or resizes the layer in place.
func (n *layerNode) SetBounds(r image.Rectangle) { n.bounds = r.Canon() }

// Hidden reports whether the layer is skipped when drawing.
func (n *layerNode) Hidden() bool { return n.hidden }

// SetHidden toggles visibility.
func (n *layerNode) SetHidden(hidden bool) { n.hidden = hidden }

// Sublayers returns a copy of the child list.
func (n *layerNode) Sublayers() []Layer {
	out := make([]Layer, len(n.sublayers))
	copy(out, n.sublayers)
	return out
}

// AddSublayer appends child, detaching it from any previous parent.
func (n *layerNode) AddSublayer(child Layer) {
	if child == nil {
		return
	}
	cn := child.node()
	if cn == n {
		return
	}
	cn.RemoveFromSuperlayer()
	cn.parent = n
	n.sublayers = append(n.sublayers, child)
}

// RemoveFromSuperlayer detaches the layer from its parent.
func (n *layerNode) RemoveFromSuperlayer() {
	p := n.parent
	if p == nil {
		return
	}
	for i, l := range p.sublayers {
		if l.node() == n {
			p.sublayers = append(p.sublayers[:i], p.sublayers[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// ContainerLayer draws nothing itself; it only groups sublayers.
type ContainerLayer struct {
	layerNode
}

// NewContainerLayer creates an empty grouping layer with the given bounds.
func NewContainerLayer(bounds image.Rectangle) *ContainerLayer {
	l := &ContainerLayer{}
	l.SetBounds(bounds)
	return l
}

// Draw is a no-op for containers.
func (l *ContainerLayer) Draw(dc *gg.Context) {}

// walk calls fn for l and every visible descendant in draw order.
func walk(l Layer, fn func(Layer)) {
	if l == nil || l.Hidden() {
		return
	}
	fn(l)
	for _, child := range l.node().sublayers {
		walk(child, fn)
	}
}

// walkAll calls fn for l and every descendant, hidden or not.
func walkAll(l Layer, fn func(Layer)) {
	if l == nil {
		return
	}
	fn(l)
	for _, child := range l.node().sublayers {
		walkAll(child, fn)
	}
}
