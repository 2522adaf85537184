package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Config holds the window configuration for the Ebiten host.
type Config struct {
	// Width is the initial window width in pixels.
	Width int
	// Height is the initial window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Transparent enables a transparent window background.
	// Requires a compositing window manager on X11.
	Transparent bool
	// Background is the color drawn behind the layer tree.
	Background color.RGBA
	// TPS is the number of ticks per second. Zero keeps Ebiten's default of 60.
	TPS int
	// Hints are X11 EWMH window manager hints applied once the window exists.
	Hints WindowHints
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     300,
		Title:      "gradient-go",
		Background: color.RGBA{A: 255},
		TPS:        60,
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.TPS < 0 {
		return fmt.Errorf("tps must not be negative, got %d", c.TPS)
	}
	return nil
}

// WindowHints selects EWMH _NET_WM_STATE flags for the window.
type WindowHints struct {
	SkipTaskbar bool
	SkipPager   bool
	Below       bool
	Sticky      bool
}

// Any reports whether at least one hint is set.
func (h WindowHints) Any() bool {
	return h.SkipTaskbar || h.SkipPager || h.Below || h.Sticky
}

// states returns the _NET_WM_STATE atom names for the set hints.
func (h WindowHints) states() []string {
	var out []string
	if h.SkipTaskbar {
		out = append(out, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if h.SkipPager {
		out = append(out, "_NET_WM_STATE_SKIP_PAGER")
	}
	if h.Below {
		out = append(out, "_NET_WM_STATE_BELOW")
	}
	if h.Sticky {
		out = append(out, "_NET_WM_STATE_STICKY")
	}
	return out
}

// ParseWindowHints parses hint names such as "below,sticky".
// Names are case-insensitive; "skip_taskbar" and "skip_pager" are accepted.
func ParseWindowHints(names []string) (WindowHints, error) {
	var h WindowHints
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "":
			case "skip_taskbar":
				h.SkipTaskbar = true
			case "skip_pager":
				h.SkipPager = true
			case "below":
				h.Below = true
			case "sticky":
				h.Sticky = true
			default:
				return h, fmt.Errorf("unknown window hint %q", name)
			}
		}
	}
	return h, nil
}
