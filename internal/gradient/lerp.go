package gradient

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Lerp linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = clamp01(t)
	return a + (b-a)*t
}

// LerpPoint linearly interpolates between two anchor points.
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpLocations interpolates two equal-length location arrays element-wise.
// It returns nil when the lengths differ.
func LerpLocations(a, b []float64, t float64) []float64 {
	if len(a) != len(b) {
		return nil
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = Lerp(a[i], b[i], t)
	}
	return out
}

// LerpColor blends two colors in linear-light RGB, the same curve the
// rasterizer uses between stops. Alpha is interpolated separately because
// colorful.Color carries no alpha channel.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	ca := toColorful(a)
	cb := toColorful(b)
	r, g, bl := ca.BlendLinearRgb(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: uint8(Lerp(float64(a.A), float64(b.A), t) + 0.5)}
}

// LerpColors blends two equal-length color arrays element-wise.
// It returns nil when the lengths differ.
func LerpColors(a, b []color.RGBA, t float64) []color.RGBA {
	if len(a) != len(b) {
		return nil
	}
	out := make([]color.RGBA, len(a))
	for i := range a {
		out[i] = LerpColor(a[i], b[i], t)
	}
	return out
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
