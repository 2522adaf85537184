package config

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestLuaParser(t *testing.T) *LuaConfigParser {
	t.Helper()
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewLuaConfigParser(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	if p == nil {
		t.Error("NewLuaConfigParser returned nil")
	}
}

func TestLuaConfigParserParseBasic(t *testing.T) {
	p := newTestLuaParser(t)

	content := `
gradient.config = {
    width = 640,
    height = 480,
    title = 'Desk',
    transparent = true,
    background = '#101010',
    fps = 30,
    duration = 2.5,
    auto_animate = false,
    auto_repeat = 'no',
    direction = 'down_right',
    type = 'radial',
    draws_asynchronously = true,
    grid_divisions = 4,
    grid_color = 'gray',
    grid_opacity = 0.5,
}
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Desk" {
		t.Errorf("Title = %q, want %q", cfg.Window.Title, "Desk")
	}
	if !cfg.Window.Transparent {
		t.Error("Transparent = false, want true")
	}
	if cfg.Window.Background != "#101010" {
		t.Errorf("Background = %q, want %q", cfg.Window.Background, "#101010")
	}
	if cfg.Window.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.Window.FPS)
	}
	if cfg.Animation.Duration != 2500*time.Millisecond {
		t.Errorf("Duration = %v, want 2.5s", cfg.Animation.Duration)
	}
	if cfg.Animation.AutoAnimate {
		t.Error("AutoAnimate = true, want false")
	}
	if cfg.Animation.AutoRepeat {
		t.Error("AutoRepeat = true, want false for 'no'")
	}
	if cfg.Animation.Direction != "down_right" || cfg.Animation.Type != "radial" {
		t.Errorf("Direction/Type = %q/%q, want down_right/radial", cfg.Animation.Direction, cfg.Animation.Type)
	}
	if !cfg.Animation.DrawsAsynchronously {
		t.Error("DrawsAsynchronously = false, want true")
	}
	if cfg.Grid.Divisions != 4 || cfg.Grid.Color != "gray" || cfg.Grid.Opacity != 0.5 {
		t.Errorf("Grid = %+v, want {4 gray 0.5}", cfg.Grid)
	}
}

func TestLuaConfigParserDefaults(t *testing.T) {
	p := newTestLuaParser(t)

	cfg, err := p.Parse([]byte(`gradient.config = {}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := DefaultConfig()
	if !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Parse(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLuaConfigParserIntegerDuration(t *testing.T) {
	p := newTestLuaParser(t)

	cfg, err := p.Parse([]byte(`gradient.config = { duration = 3 }`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Animation.Duration != 3*time.Second {
		t.Errorf("Duration = %v, want 3s", cfg.Animation.Duration)
	}
}

func TestLuaConfigParserPrintOutput(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewLuaConfigParserWithOutput(&buf)
	if err != nil {
		t.Fatalf("NewLuaConfigParserWithOutput failed: %v", err)
	}
	defer p.Close()

	if _, err := p.Parse([]byte("print(\"loading gradient\")\ngradient.config = {}")); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.Contains(buf.String(), "loading gradient") {
		t.Errorf("print output = %q, want it to contain %q", buf.String(), "loading gradient")
	}
}

func TestLuaConfigParserWindowHints(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "comma separated",
			content: `gradient.config = { window_hints = 'below, sticky,' }`,
			want:    []string{"below", "sticky"},
		},
		{
			name:    "table",
			content: `gradient.config = { window_hints = { 'skip_taskbar', 'skip_pager' } }`,
			want:    []string{"skip_taskbar", "skip_pager"},
		},
		{
			name:    "absent",
			content: `gradient.config = {}`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLuaParser(t)
			cfg, err := p.Parse([]byte(tt.content))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(cfg.Window.Hints, tt.want) {
				t.Errorf("Hints = %q, want %q", cfg.Window.Hints, tt.want)
			}
		})
	}
}

func TestLuaConfigParserFramesAndPalette(t *testing.T) {
	p := newTestLuaParser(t)

	content := `
local accent = 'purple'

gradient.frames = {
    { colors = { 'red', 'blue' }, direction = 'down' },
    { colors = { '#008000', 'yellow', accent }, type = 'conic' },
    { },
}

gradient.palette = {
    { 'orange', 'pink' },
    { 'black', 'white' },
}
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantFrames := []FrameConfig{
		{Colors: []string{"red", "blue"}, Direction: "down"},
		{Colors: []string{"#008000", "yellow", "purple"}, Type: "conic"},
		{},
	}
	if !reflect.DeepEqual(cfg.Frames, wantFrames) {
		t.Errorf("Frames = %+v, want %+v", cfg.Frames, wantFrames)
	}

	wantPalette := [][]string{{"orange", "pink"}, {"black", "white"}}
	if !reflect.DeepEqual(cfg.Palette, wantPalette) {
		t.Errorf("Palette = %q, want %q", cfg.Palette, wantPalette)
	}
}

func TestLuaConfigParserGeneratedFrames(t *testing.T) {
	p := newTestLuaParser(t)

	content := `
local hues = { 'red', 'orange', 'yellow', 'green', 'blue' }
for i = 1, #hues - 1 do
    gradient.frames[i] = { colors = { hues[i], hues[i + 1] } }
end
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cfg.Frames) != 4 {
		t.Fatalf("len(Frames) = %d, want 4", len(cfg.Frames))
	}
	if got := cfg.Frames[3].Colors; !reflect.DeepEqual(got, []string{"green", "blue"}) {
		t.Errorf("Frames[3].Colors = %q, want [green blue]", got)
	}
}

func TestLuaConfigParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", `gradient.config = {`, "compile"},
		{"runtime error", `error('boom')`, "execute"},
		{"gradient replaced", `gradient = 5`, "gradient is not a table"},
		{"frames not a table", `gradient.frames = 'red'`, "gradient.frames is not a table"},
		{"frame not a table", `gradient.frames = { 'red' }`, "gradient.frames[1] is not a table"},
		{"palette row not a table", `gradient.palette = { 'red' }`, "gradient.palette[1] is not a table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLuaParser(t)
			_, err := p.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLuaConfigParserGlobalRemoved(t *testing.T) {
	p := newTestLuaParser(t)

	cfg, err := p.Parse([]byte(`gradient = nil`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("Width = %d, want default %d", cfg.Window.Width, DefaultWidth)
	}
}

func TestLuaConfigParserReuse(t *testing.T) {
	p := newTestLuaParser(t)

	if _, err := p.Parse([]byte(`gradient.frames = { { colors = { 'red' } } }`)); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	cfg, err := p.Parse([]byte(`gradient.config = { width = 10 }`))
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if len(cfg.Frames) != 0 {
		t.Errorf("second Parse saw %d frames from the first run", len(cfg.Frames))
	}
}

func TestLuaConfigParserClose(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"TRUE", true},
		{" on ", true},
		{"1", true},
		{"no", false},
		{"false", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
