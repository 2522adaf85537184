// Package config provides configuration data structures for gradient-go.
// It defines the window, animation and grid settings plus the frame list
// and palette, and parses them from Lua or YAML sources.
package config

import (
	"fmt"
	"time"

	"github.com/opd-ai/go-gradient/internal/gradient"
	"github.com/opd-ai/go-gradient/internal/render"
)

// Config represents the complete gradient-go configuration.
type Config struct {
	// Window contains window-related configuration options.
	Window WindowConfig
	// Animation contains the cycling behaviour.
	Animation AnimationConfig
	// Grid contains the overlay grid settings.
	Grid GridConfig
	// Frames is the rotation. When non-empty it takes precedence over Palette.
	Frames []FrameConfig
	// Palette lists color rows drawn with the animation-level direction and type.
	Palette [][]string
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Transparent requests an ARGB window. Requires a compositing manager on X11.
	Transparent bool
	// Background is the color drawn behind the gradient.
	Background string
	// Hints contains window manager hints (skip_taskbar, skip_pager, below, sticky).
	Hints []string
	// FPS is the tick rate of the host loop.
	FPS int
}

// AnimationConfig holds the cycling behaviour of the view.
type AnimationConfig struct {
	// Duration is the length of one cross-fade.
	Duration time.Duration
	// AutoAnimate starts the animation on the first layout.
	AutoAnimate bool
	// AutoRepeat starts the next cycle when one finishes.
	AutoRepeat bool
	// Direction applies to palette rows.
	Direction string
	// Type applies to palette rows.
	Type string
	// DrawsAsynchronously rasterizes the gradient off the UI goroutine.
	DrawsAsynchronously bool
}

// GridConfig holds the overlay grid settings.
type GridConfig struct {
	// Divisions is the number of cells per axis. Zero or one disables the grid.
	Divisions int
	// Color is the grid line color.
	Color string
	// Opacity is the grid line opacity in [0, 1].
	Opacity float64
}

// FrameConfig is one entry of the rotation as written in a configuration.
type FrameConfig struct {
	Colors    []string `yaml:"colors"`
	Direction string   `yaml:"direction"`
	Type      string   `yaml:"type"`
}

// Frame converts the entry to a gradient.Frame. Empty direction and type
// strings select up and linear.
func (f FrameConfig) Frame() (gradient.Frame, error) {
	d, err := gradient.ParseDirection(f.Direction)
	if err != nil {
		return gradient.Frame{}, err
	}
	t, err := gradient.ParseType(f.Type)
	if err != nil {
		return gradient.Frame{}, err
	}
	return gradient.NewFrame(f.Colors, d, t), nil
}

// GradientFrames converts every configured frame.
func (c *Config) GradientFrames() ([]gradient.Frame, error) {
	frames := make([]gradient.Frame, 0, len(c.Frames))
	for i, fc := range c.Frames {
		f, err := fc.Frame()
		if err != nil {
			return nil, fmt.Errorf("frames[%d]: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// ParsedDirection parses the animation-level direction.
func (a AnimationConfig) ParsedDirection() (gradient.Direction, error) {
	return gradient.ParseDirection(a.Direction)
}

// ParsedType parses the animation-level gradient type.
func (a AnimationConfig) ParsedType() (gradient.Type, error) {
	return gradient.ParseType(a.Type)
}

// RenderConfig converts the window settings into the host window config.
func (c *Config) RenderConfig() (render.Config, error) {
	rc := render.DefaultConfig()
	rc.Width = c.Window.Width
	rc.Height = c.Window.Height
	rc.Title = c.Window.Title
	rc.Transparent = c.Window.Transparent
	rc.TPS = c.Window.FPS

	if c.Window.Background != "" {
		bg, err := render.ParseColor(c.Window.Background)
		if err != nil {
			return rc, fmt.Errorf("background: %w", err)
		}
		rc.Background = bg
	}

	hints, err := render.ParseWindowHints(c.Window.Hints)
	if err != nil {
		return rc, err
	}
	rc.Hints = hints
	return rc, nil
}

// Validate checks the configuration and returns an error if it is invalid.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}
