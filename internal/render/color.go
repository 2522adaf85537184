// Package render provides the layer compositor for go-gradient.
// This file implements color parsing for configuration values: CSS/X11
// color names, hex notation and rgb()/rgba() functions.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/opd-ai/go-gradient/internal/gradient"
)

// ParseColor parses a color string and returns an RGBA color.
// Supported formats:
//   - Named colors: "red", "cornflowerblue", "transparent", ...
//   - Hex formats: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA"
//   - Hex without #: "RGB", "RGBA", "RRGGBB", "RRGGBBAA"
//   - RGB function: "rgb(255, 0, 0)"
//   - RGBA function: "rgba(255, 0, 0, 0.5)" or "rgba(255, 0, 0, 128)"
//
// Returns an error if the color string cannot be parsed.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	lower := strings.ToLower(s)
	if lower == "transparent" || lower == "clear" {
		return color.RGBA{}, nil
	}
	if clr, ok := colornames.Map[strings.NewReplacer(" ", "", "_", "").Replace(lower)]; ok {
		return clr, nil
	}

	if strings.HasPrefix(s, "#") || isHexString(s) {
		return parseHexColor(s)
	}

	if strings.HasPrefix(lower, "rgba(") {
		return parseColorFunc(s, "rgba(", 4)
	}
	if strings.HasPrefix(lower, "rgb(") {
		return parseColorFunc(s, "rgb(", 3)
	}

	return color.RGBA{}, fmt.Errorf("unrecognized color format: %q", s)
}

// MustParseColor parses a color string and panics if parsing fails.
// Use this only for known-good color values in initialization code.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ResolveColors parses every name in names. Names that cannot be parsed are
// dropped from the result and returned in rejected; this is not an error.
func ResolveColors(names []string) (resolved []color.RGBA, rejected []string) {
	resolved = make([]color.RGBA, 0, len(names))
	for _, name := range names {
		c, err := ParseColor(name)
		if err != nil {
			rejected = append(rejected, name)
			continue
		}
		resolved = append(resolved, c)
	}
	return resolved, rejected
}

// isHexString checks if the string looks like a hex color (without #).
func isHexString(s string) bool {
	if len(s) != 3 && len(s) != 4 && len(s) != 6 && len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

// parseHexColor parses a hex color string. Opaque forms go through
// colorful.Hex; forms with an alpha digit pair are split off first.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")

	var alpha uint8 = 255
	switch len(s) {
	case 3, 6:
	case 4:
		a, err := parseHexByte(s[3:4] + s[3:4])
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha component: %w", err)
		}
		alpha, s = a, s[:3]
	case 8:
		a, err := parseHexByte(s[6:8])
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha component: %w", err)
		}
		alpha, s = a, s[:6]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseHexByte(s string) (uint8, error) {
	val, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// parseColorFunc parses "rgb(r, g, b)" and "rgba(r, g, b, a)" strings.
func parseColorFunc(s, prefix string, want int) (color.RGBA, error) {
	if !strings.HasSuffix(s, ")") {
		return color.RGBA{}, fmt.Errorf("invalid %s) format: %q", prefix, s)
	}

	parts := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("%s) requires exactly %d values, got %d", prefix, want, len(parts))
	}

	var channels [3]uint8
	names := [3]string{"red", "green", "blue"}
	for i := range channels {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s value: %w", names[i], err)
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if want == 4 {
		a, err := parseAlphaComponent(strings.TrimSpace(parts[3]))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha value: %w", err)
		}
		alpha = a
	}

	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// parseAlphaComponent parses an alpha value.
// Accepts both 0-255 integer and 0.0-1.0 float formats.
func parseAlphaComponent(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return uint8(clampUnit(val)*255 + 0.5), nil
	}

	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// ToHex converts a color to a hex string with # prefix.
// Format: #RRGGBB or #RRGGBBAA if alpha is not 255.
func ToHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// WithOpacity returns a new color with the specified opacity (0.0-1.0).
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(clampUnit(opacity)*255 + 0.5)}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Blend mixes a and b in linear-light RGB; t is clamped to [0, 1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	return gradient.LerpColor(a, b, t)
}
