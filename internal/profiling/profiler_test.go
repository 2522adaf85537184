package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"none", Config{}, false},
		{"cpu", Config{CPUProfilePath: "cpu.prof"}, true},
		{"mem", Config{MemProfilePath: "mem.prof"}, true},
		{"both", Config{CPUProfilePath: "cpu.prof", MemProfilePath: "mem.prof"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfilerStartStop(t *testing.T) {
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.prof")
	memPath := filepath.Join(dir, "mem.prof")

	p := New(Config{CPUProfilePath: cpuPath, MemProfilePath: memPath})
	if p.IsRunning() {
		t.Error("new profiler should not be running")
	}

	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !p.IsRunning() {
		t.Error("IsRunning() should return true after Start()")
	}
	if err := p.Start(); err == nil {
		t.Error("Start() should fail when already running")
	}

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning() should return false after Stop()")
	}
	if err := p.Stop(); err == nil {
		t.Error("Stop() should fail when not running")
	}

	for _, path := range []string{cpuPath, memPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("profile %s not written: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", path)
		}
	}
}

func TestProfilerMemoryOnly(t *testing.T) {
	memPath := filepath.Join(t.TempDir(), "mem.prof")
	p := New(Config{MemProfilePath: memPath})

	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if _, err := os.Stat(memPath); err != nil {
		t.Errorf("memory profile not written: %v", err)
	}
}

func TestProfilerBadPaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "x.prof")

	p := New(Config{CPUProfilePath: missing})
	if err := p.Start(); err == nil {
		t.Error("Start() with an unwritable CPU path should fail")
	}
	if p.IsRunning() {
		t.Error("profiler should not run after a failed Start()")
	}

	if err := WriteHeapProfile(missing); err == nil {
		t.Error("WriteHeapProfile() with an unwritable path should fail")
	}
}
