package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidationResult(t *testing.T) {
	var vr ValidationResult
	if !vr.IsValid() || vr.Error() != nil {
		t.Fatal("empty result should be valid")
	}

	vr.AddWarning("grid.color", "odd")
	if !vr.IsValid() {
		t.Error("warnings must not invalidate the result")
	}

	vr.AddError("window.width", "must be positive")
	vr.Merge(&ValidationResult{Errors: []ValidationError{{Field: "window.fps", Message: "bad"}}})
	vr.Merge(nil)

	err := vr.Error()
	if err == nil {
		t.Fatal("Error() = nil, want error")
	}
	for _, want := range []string{"window.width: must be positive", "window.fps: bad"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, missing %q", err, want)
		}
	}
}

func TestValidatorErrors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window.width"},
		{"negative height", func(c *Config) { c.Window.Height = -5 }, "window.height"},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }, "window.fps"},
		{"bad background", func(c *Config) { c.Window.Background = "plaid" }, "window.background"},
		{"bad hint", func(c *Config) { c.Window.Hints = []string{"below", "undecorated"} }, "window.window_hints"},
		{"negative duration", func(c *Config) { c.Animation.Duration = -time.Second }, "animation.duration"},
		{"duration too long", func(c *Config) { c.Animation.Duration = MaxDuration + time.Second }, "animation.duration"},
		{"unknown direction", func(c *Config) { c.Animation.Direction = "north" }, "animation.direction"},
		{"unknown type", func(c *Config) { c.Animation.Type = "diamond" }, "animation.type"},
		{"negative divisions", func(c *Config) { c.Grid.Divisions = -1 }, "grid.divisions"},
		{"opacity above one", func(c *Config) { c.Grid.Opacity = 1.5 }, "grid.opacity"},
		{"bad grid color", func(c *Config) { c.Grid.Color = "plaid" }, "grid.color"},
		{
			"frame direction",
			func(c *Config) { c.Frames = []FrameConfig{{Colors: []string{"red"}, Direction: "north"}} },
			"frames[0].direction",
		},
		{
			"frame type",
			func(c *Config) {
				c.Frames = []FrameConfig{{Colors: []string{"red"}}, {Colors: []string{"red"}, Type: "diamond"}}
			},
			"frames[1].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			result := NewValidator().Validate(&cfg)
			if result.IsValid() {
				t.Fatal("Validate() reported no errors")
			}
			if !hasField(result.Errors, tt.wantField) {
				t.Errorf("Validate() errors = %v, want one for %s", result.Errors, tt.wantField)
			}
		})
	}
}

func TestValidatorWarnings(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"huge width", func(c *Config) { c.Window.Width = 20000 }, "window.width"},
		{"empty frame", func(c *Config) { c.Frames = []FrameConfig{{Direction: "down"}} }, "frames[0].colors"},
		{
			"unresolvable frame color",
			func(c *Config) { c.Frames = []FrameConfig{{Colors: []string{"red", "notacolor"}}} },
			"frames[0].colors",
		},
		{
			"unresolvable palette row",
			func(c *Config) { c.Palette = [][]string{{"red"}, {"nope", "nada"}} },
			"palette[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			result := NewValidator().Validate(&cfg)
			if !result.IsValid() {
				t.Fatalf("Validate() errors = %v, want warnings only", result.Errors)
			}
			if !hasField(result.Warnings, tt.wantField) {
				t.Errorf("Validate() warnings = %v, want one for %s", result.Warnings, tt.wantField)
			}

			if err := ValidateConfig(&cfg); err != nil {
				t.Errorf("ValidateConfig() = %v, want nil", err)
			}
			if err := ValidateConfigStrict(&cfg); err == nil {
				t.Error("ValidateConfigStrict() = nil, want warnings promoted to errors")
			}
		})
	}
}

func TestValidatorValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Hints = []string{"skip_taskbar,skip_pager"}
	cfg.Animation.Duration = 0
	cfg.Grid.Divisions = 4
	cfg.Frames = []FrameConfig{
		{Colors: []string{"red", "blue"}, Direction: "down"},
		{Colors: []string{"#008000", "rgb(255, 255, 0)"}, Type: "conic"},
	}
	cfg.Palette = [][]string{{"orange", "pink"}}

	result := NewValidator().WithStrictMode(true).Validate(&cfg)
	if !result.IsValid() || len(result.Warnings) != 0 {
		t.Errorf("Validate() = %+v, want clean", result)
	}
}

func hasField(list []ValidationError, field string) bool {
	for _, e := range list {
		if e.Field == field {
			return true
		}
	}
	return false
}
