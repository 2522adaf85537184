package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// ShapeLayer strokes a single line segment in target pixel coordinates.
type ShapeLayer struct {
	layerNode

	from, to    image.Point
	strokeColor color.RGBA
	opacity     float64
	lineWidth   float64
}

// NewLine creates a one-pixel line layer from from to to.
// Its bounds are the segment's bounding box.
func NewLine(from, to image.Point, stroke color.RGBA, opacity float64) *ShapeLayer {
	l := &ShapeLayer{
		from:        from,
		to:          to,
		strokeColor: stroke,
		opacity:     clampUnit(opacity),
		lineWidth:   1,
	}
	l.SetBounds(image.Rectangle{Min: from, Max: to})
	return l
}

// Endpoints returns the segment's start and end points.
func (l *ShapeLayer) Endpoints() (from, to image.Point) { return l.from, l.to }

// StrokeColor returns the line color before opacity is applied.
func (l *ShapeLayer) StrokeColor() color.RGBA { return l.strokeColor }

// SetStrokeColor changes the line color.
func (l *ShapeLayer) SetStrokeColor(c color.RGBA) { l.strokeColor = c }

// Opacity returns the layer opacity in [0, 1].
func (l *ShapeLayer) Opacity() float64 { return l.opacity }

// SetOpacity changes the layer opacity; values are clamped to [0, 1].
func (l *ShapeLayer) SetOpacity(o float64) { l.opacity = clampUnit(o) }

// LineWidth returns the stroke width in pixels.
func (l *ShapeLayer) LineWidth() float64 { return l.lineWidth }

// SetLineWidth changes the stroke width. Non-positive widths hide the line.
func (l *ShapeLayer) SetLineWidth(w float64) { l.lineWidth = w }

// Draw strokes the segment.
func (l *ShapeLayer) Draw(dc *gg.Context) {
	if l.lineWidth <= 0 || l.opacity == 0 {
		return
	}
	c := toGG(l.strokeColor)
	c.A *= l.opacity

	dc.SetStrokeBrush(gg.Solid(c))
	dc.SetLineWidth(l.lineWidth)
	dc.DrawLine(float64(l.from.X), float64(l.from.Y), float64(l.to.X), float64(l.to.Y))
	_ = dc.Stroke()
}
