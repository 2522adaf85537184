package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const testLuaConfig = `-- desk gradient
gradient.config = { width = 320, title = '${GRADIENT_PARSER_TITLE:-Desk}' }
gradient.frames = { { colors = { 'red', 'blue' } } }
`

const testYAMLConfig = `# desk gradient
config:
  width: 320
  title: ${GRADIENT_PARSER_TITLE:-Desk}
frames:
  - colors: [red, blue]
`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestIsLuaConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"config table", "gradient.config = {}", true},
		{"frames only", "gradient.frames={}", true},
		{"indented palette", "  gradient.palette = {}", true},
		{"yaml", "config:\n  width: 10\n", false},
		{"commented out", "-- see gradient.config\n", false},
		{"other field", "gradient.text = ''", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLuaConfig([]byte(tt.content)); got != tt.want {
				t.Errorf("isLuaConfig(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestParserParseDetectsFormat(t *testing.T) {
	p := newTestParser(t)

	for name, content := range map[string]string{"lua": testLuaConfig, "yaml": testYAMLConfig} {
		t.Run(name, func(t *testing.T) {
			cfg, err := p.Parse([]byte(content))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if cfg.Window.Width != 320 {
				t.Errorf("Width = %d, want 320", cfg.Window.Width)
			}
			if len(cfg.Frames) != 1 || len(cfg.Frames[0].Colors) != 2 {
				t.Errorf("Frames = %+v, want one two-color frame", cfg.Frames)
			}
		})
	}
}

func TestParserExpandsEnvironment(t *testing.T) {
	t.Setenv("GRADIENT_PARSER_TITLE", "From Env")
	p := newTestParser(t)

	for name, content := range map[string]string{"lua": testLuaConfig, "yaml": testYAMLConfig} {
		t.Run(name, func(t *testing.T) {
			cfg, err := p.Parse([]byte(content))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if cfg.Window.Title != "From Env" {
				t.Errorf("Title = %q, want %q", cfg.Window.Title, "From Env")
			}
		})
	}
}

func TestParserEnvironmentDefault(t *testing.T) {
	p := newTestParser(t)

	cfg, err := p.Parse([]byte(testYAMLConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Window.Title != "Desk" {
		t.Errorf("Title = %q, want %q", cfg.Window.Title, "Desk")
	}
}

func TestParserParseFile(t *testing.T) {
	p := newTestParser(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "gradient.lua")
	if err := os.WriteFile(path, []byte(testLuaConfig), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if cfg.Window.Width != 320 {
		t.Errorf("Width = %d, want 320", cfg.Window.Width)
	}

	if _, err := p.ParseFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("ParseFile(missing) error = nil, want error")
	}
}

func TestParserParseFromFS(t *testing.T) {
	p := newTestParser(t)
	fsys := fstest.MapFS{
		"configs/desk.yaml": {Data: []byte(testYAMLConfig)},
	}

	cfg, err := p.ParseFromFS(fsys, "configs/desk.yaml")
	if err != nil {
		t.Fatalf("ParseFromFS failed: %v", err)
	}
	if cfg.Window.Width != 320 {
		t.Errorf("Width = %d, want 320", cfg.Window.Width)
	}

	if _, err := p.ParseFromFS(fsys, "configs/missing.yaml"); err == nil {
		t.Error("ParseFromFS(missing) error = nil, want error")
	}
}

func TestParserParseReader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		wantErr bool
	}{
		{"lua", testLuaConfig, FormatLua, false},
		{"yaml", testYAMLConfig, FormatYAML, false},
		{"lua as yaml", testLuaConfig, FormatYAML, true},
		{"unknown format", testYAMLConfig, "toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t)
			cfg, err := p.ParseReader(strings.NewReader(tt.content), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Window.Width != 320 {
				t.Errorf("Width = %d, want 320", cfg.Window.Width)
			}
		})
	}
}
