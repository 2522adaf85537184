package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-gradient/internal/config"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-v) = %d, want 0", code)
	}
	if want := "gradient-go version " + Version; !strings.Contains(stdout.String(), want) {
		t.Errorf("run(-v) output = %q, want it to contain %q", stdout.String(), want)
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-bogus"}, 2},
		{"missing config", []string{"-headless", "-c", "/nonexistent/gradient.yaml"}, 1},
		{"list missing config", []string{"-list", "-c", "/nonexistent/gradient.yaml"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d (stderr: %s)", tt.args, got, tt.want, stderr.String())
			}
		})
	}
}

func TestListBuiltIn(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-list"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-list) = %d, want 0 (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"built-in", "frame 0", "frame 3", "#4A90E2", "radial", "conic", "down_right"} {
		if !strings.Contains(out, want) {
			t.Errorf("run(-list) output missing %q:\n%s", want, out)
		}
	}
}

func TestListPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	content := `config:
  direction: right
palette:
  - [red, blue]
  - [black, white]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-list", "-c", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-list -c) = %d, want 0 (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"palette 0", "palette 1", "#FF0000 #0000FF", "right", "(0.0,0.5) -> (1.0,0.5)"} {
		if !strings.Contains(out, want) {
			t.Errorf("run(-list -c) output missing %q:\n%s", want, out)
		}
	}
}

func TestFrameTablePadsToLongest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Frames = []config.FrameConfig{
		{Colors: []string{"red", "blue"}, Direction: "down"},
		{Colors: []string{"#008000", "yellow", "orange"}, Direction: "right"},
	}

	table, err := frameTable(&cfg)
	if err != nil {
		t.Fatalf("frameTable() error = %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"padded colors", "#FF0000 #0000FF #0000FF"},
		{"deduped locations", "0.000 1.000 1.000"},
		{"full locations", "0.000 0.500 1.000"},
		{"longest colors", "#008000 #FFFF00 #FFA500"},
		{"down anchors", "(0.5,0.0) -> (0.5,1.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(table, tt.want) {
				t.Errorf("frameTable() missing %q:\n%s", tt.want, table)
			}
		})
	}
}

func TestFrameTableRejectsBadDirection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Frames = []config.FrameConfig{{Colors: []string{"red"}, Direction: "sideways"}}

	if _, err := frameTable(&cfg); err == nil {
		t.Error("frameTable() with an unknown direction should fail")
	}
}

func TestConfigLabel(t *testing.T) {
	if got := configLabel(""); got != "built-in" {
		t.Errorf("configLabel(\"\") = %q, want %q", got, "built-in")
	}
	if got := configLabel("a.yaml"); got != "a.yaml" {
		t.Errorf("configLabel(\"a.yaml\") = %q, want %q", got, "a.yaml")
	}
}
