package config

import (
	"os"
	"reflect"
	"sync"
	"testing"
	"time"
)

// TestConfigSuiteRealWorldConfigs parses the sample configurations in
// test/configs and checks the values a user would rely on.
func TestConfigSuiteRealWorldConfigs(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		isLua        bool
		wantWidth    int
		wantDuration time.Duration
		wantFrames   int
		wantPalette  int
		wantGrid     int
	}{
		{"basic Lua", "../../test/configs/basic.lua", true, 400, DefaultDuration, 2, 0, 0},
		{"basic YAML", "../../test/configs/basic.yaml", false, 400, DefaultDuration, 2, 0, 0},
		{"sunset Lua", "../../test/configs/sunset.lua", true, 1280, 8 * time.Second, 4, 0, 4},
		{"sunset YAML", "../../test/configs/sunset.yaml", false, 1280, 8 * time.Second, 4, 0, 4},
		{"palette YAML", "../../test/configs/palette.yaml", false, DefaultWidth, 3 * time.Second, 0, 3, 0},
		{"minimal YAML", "../../test/configs/minimal.yaml", false, DefaultWidth, DefaultDuration, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := NewParser()
			if err != nil {
				t.Fatalf("NewParser failed: %v", err)
			}
			defer parser.Close()

			cfg, err := parser.ParseFile(tt.path)
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}

			content, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatalf("Failed to read file: %v", err)
			}
			if isLuaConfig(content) != tt.isLua {
				t.Errorf("Format detection mismatch: expected isLua=%v", tt.isLua)
			}

			if cfg.Window.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", cfg.Window.Width, tt.wantWidth)
			}
			if cfg.Animation.Duration != tt.wantDuration {
				t.Errorf("Duration = %v, want %v", cfg.Animation.Duration, tt.wantDuration)
			}
			if len(cfg.Frames) != tt.wantFrames {
				t.Errorf("len(Frames) = %d, want %d", len(cfg.Frames), tt.wantFrames)
			}
			if len(cfg.Palette) != tt.wantPalette {
				t.Errorf("len(Palette) = %d, want %d", len(cfg.Palette), tt.wantPalette)
			}
			if cfg.Grid.Divisions != tt.wantGrid {
				t.Errorf("Grid.Divisions = %d, want %d", cfg.Grid.Divisions, tt.wantGrid)
			}

			if err := ValidateConfigStrict(cfg); err != nil {
				t.Errorf("ValidateConfigStrict failed: %v", err)
			}
			if _, err := cfg.RenderConfig(); err != nil {
				t.Errorf("RenderConfig failed: %v", err)
			}
			if _, err := cfg.GradientFrames(); err != nil {
				t.Errorf("GradientFrames failed: %v", err)
			}
		})
	}
}

// TestConfigSuiteFormatCompatibility verifies that equivalent Lua and YAML
// configs produce the same Config.
func TestConfigSuiteFormatCompatibility(t *testing.T) {
	compatTests := []struct {
		name     string
		luaPath  string
		yamlPath string
	}{
		{"basic configs", "../../test/configs/basic.lua", "../../test/configs/basic.yaml"},
		{"sunset configs", "../../test/configs/sunset.lua", "../../test/configs/sunset.yaml"},
	}

	for _, tt := range compatTests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := NewParser()
			if err != nil {
				t.Fatalf("NewParser failed: %v", err)
			}
			defer parser.Close()

			luaCfg, err := parser.ParseFile(tt.luaPath)
			if err != nil {
				t.Fatalf("Parse Lua failed: %v", err)
			}
			yamlCfg, err := parser.ParseFile(tt.yamlPath)
			if err != nil {
				t.Fatalf("Parse YAML failed: %v", err)
			}

			if !reflect.DeepEqual(luaCfg, yamlCfg) {
				t.Errorf("configs differ:\nlua  = %+v\nyaml = %+v", luaCfg, yamlCfg)
			}
		})
	}
}

// TestConfigSuiteConcurrentParsing checks that one Parser can be shared by
// goroutines, as the hot-reload watcher does.
func TestConfigSuiteConcurrentParsing(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer parser.Close()

	paths := []string{
		"../../test/configs/basic.lua",
		"../../test/configs/sunset.yaml",
		"../../test/configs/sunset.lua",
		"../../test/configs/palette.yaml",
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(paths)*4)
	for i := 0; i < 4; i++ {
		for _, p := range paths {
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				if _, err := parser.ParseFile(path); err != nil {
					errs <- err
				}
			}(p)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent ParseFile failed: %v", err)
	}
}
