package config

import "time"

// Default values for configuration options.
const (
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 400
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 300
	// DefaultTitle is the default window title.
	DefaultTitle = "gradient-go"
	// DefaultFPS is the default host tick rate.
	DefaultFPS = 60
	// DefaultDuration is the default cross-fade length.
	DefaultDuration = 5 * time.Second
	// MaxDuration is the longest cross-fade a configuration may ask for.
	MaxDuration = 24 * time.Hour
	// DefaultBackground is drawn behind the gradient.
	DefaultBackground = "black"
	// DefaultGridColor is the default grid line color.
	DefaultGridColor = "white"
	// DefaultGridOpacity is the default grid line opacity.
	DefaultGridOpacity = 0.25
)

// DefaultConfig returns a Config with sensible default values: a single
// window showing the default gradient cycling every five seconds.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Title:      DefaultTitle,
			Background: DefaultBackground,
			FPS:        DefaultFPS,
		},
		Animation: AnimationConfig{
			Duration:    DefaultDuration,
			AutoAnimate: true,
			AutoRepeat:  true,
			Direction:   "up",
			Type:        "linear",
		},
		Grid: GridConfig{
			Color:   DefaultGridColor,
			Opacity: DefaultGridOpacity,
		},
	}
}
