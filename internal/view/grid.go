package view

import (
	"image"
	"image/color"

	"github.com/opd-ai/go-gradient/internal/render"
)

// GridLineColor returns the stroke color used for grid lines.
func (v *View) GridLineColor() color.RGBA { return v.gridColor }

// SetGridLineColor changes the grid line color, including lines already shown.
func (v *View) SetGridLineColor(c color.RGBA) {
	v.gridColor = c
	for _, l := range v.grid {
		l.SetStrokeColor(c)
	}
}

// GridLineOpacity returns the grid line opacity in [0, 1].
func (v *View) GridLineOpacity() float64 { return v.gridOpacity }

// SetGridLineOpacity changes the grid line opacity, including lines already shown.
func (v *View) SetGridLineOpacity(o float64) {
	v.gridOpacity = o
	for _, l := range v.grid {
		l.SetOpacity(o)
	}
}

// GridLine builds a straight line from from to to in the grid style.
// It has no effect on the view until added to a layer.
func (v *View) GridLine(from, to image.Point) *render.ShapeLayer {
	return render.NewLine(from, to, v.gridColor, v.gridOpacity)
}

// GridDivisions returns the number of cells per axis of the overlay grid.
func (v *View) GridDivisions() int { return v.gridDivisions }

// ShowGrid overlays divisions-1 evenly spaced vertical and horizontal lines
// on the gradient. Zero or one removes the overlay.
func (v *View) ShowGrid(divisions int) {
	if divisions < 0 {
		divisions = 0
	}
	v.gridDivisions = divisions
	v.layoutGrid()
}

// GridLines returns the overlay lines currently shown.
func (v *View) GridLines() []*render.ShapeLayer {
	return append([]*render.ShapeLayer(nil), v.grid...)
}

func (v *View) layoutGrid() {
	v.clearGrid()
	if v.layer == nil || v.gridDivisions < 2 || v.bounds.Empty() {
		return
	}

	b := v.bounds
	for i := 1; i < v.gridDivisions; i++ {
		x := b.Min.X + i*b.Dx()/v.gridDivisions
		y := b.Min.Y + i*b.Dy()/v.gridDivisions
		v.grid = append(v.grid,
			v.GridLine(image.Pt(x, b.Min.Y), image.Pt(x, b.Max.Y)),
			v.GridLine(image.Pt(b.Min.X, y), image.Pt(b.Max.X, y)),
		)
	}
	for _, l := range v.grid {
		v.layer.AddSublayer(l)
	}
}

func (v *View) clearGrid() {
	for _, l := range v.grid {
		l.RemoveFromSuperlayer()
	}
	v.grid = nil
}
