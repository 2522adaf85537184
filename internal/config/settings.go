package config

import (
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// settings is the flat key set shared by the Lua and YAML formats. A nil
// field means the key was absent and the default stays in place.
type settings struct {
	Width               *int      `yaml:"width"`
	Height              *int      `yaml:"height"`
	Title               *string   `yaml:"title"`
	Transparent         *bool     `yaml:"transparent"`
	Background          *string   `yaml:"background"`
	WindowHints         *hintList `yaml:"window_hints"`
	FPS                 *int      `yaml:"fps"`
	Duration            *float64  `yaml:"duration"`
	AutoAnimate         *bool     `yaml:"auto_animate"`
	AutoRepeat          *bool     `yaml:"auto_repeat"`
	Direction           *string   `yaml:"direction"`
	Type                *string   `yaml:"type"`
	DrawsAsynchronously *bool     `yaml:"draws_asynchronously"`
	GridDivisions       *int      `yaml:"grid_divisions"`
	GridColor           *string   `yaml:"grid_color"`
	GridOpacity         *float64  `yaml:"grid_opacity"`
}

// apply copies every present key into cfg.
func (s *settings) apply(cfg *Config) {
	setIf(&cfg.Window.Width, s.Width)
	setIf(&cfg.Window.Height, s.Height)
	setIf(&cfg.Window.Title, s.Title)
	setIf(&cfg.Window.Transparent, s.Transparent)
	setIf(&cfg.Window.Background, s.Background)
	if s.WindowHints != nil {
		cfg.Window.Hints = []string(*s.WindowHints)
	}
	setIf(&cfg.Window.FPS, s.FPS)

	if s.Duration != nil {
		cfg.Animation.Duration = secondsToDuration(*s.Duration)
	}
	setIf(&cfg.Animation.AutoAnimate, s.AutoAnimate)
	setIf(&cfg.Animation.AutoRepeat, s.AutoRepeat)
	setIf(&cfg.Animation.Direction, s.Direction)
	setIf(&cfg.Animation.Type, s.Type)
	setIf(&cfg.Animation.DrawsAsynchronously, s.DrawsAsynchronously)

	setIf(&cfg.Grid.Divisions, s.GridDivisions)
	setIf(&cfg.Grid.Color, s.GridColor)
	setIf(&cfg.Grid.Opacity, s.GridOpacity)
}

// secondsToDuration converts a configured number of seconds, saturating at
// the int64 limits instead of overflowing. NaN becomes -1ns so validation
// rejects it.
func secondsToDuration(sec float64) time.Duration {
	ns := sec * float64(time.Second)
	switch {
	case math.IsNaN(ns):
		return -1
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(ns)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// hintList accepts window hints either as a comma-separated string or as a
// list of names.
type hintList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *hintList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*h = splitHints(node.Value)
		return nil
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return err
	}
	*h = hintList(trimAll(names))
	return nil
}

// splitHints splits a comma-separated hint string, dropping empty entries.
func splitHints(s string) hintList {
	return hintList(trimAll(strings.Split(s, ",")))
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseBool accepts the usual spellings of a boolean setting.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	default:
		return false
	}
}
