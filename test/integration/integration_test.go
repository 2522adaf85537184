//go:build integration

// Package integration provides end-to-end tests for gradient-go.
// Every sample configuration in test/configs is loaded through the public
// API and animated headless until cycles complete.
package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/opd-ai/go-gradient/pkg/gradient"
)

// getTestConfigsDir returns the path to the test configs directory.
// It calls t.Fatal if runtime.Caller fails.
func getTestConfigsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed to get current file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "configs")
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// TestSampleConfigsAnimate runs each sample headless with a short duration
// and checks that cycles complete and a frame of the configured size renders.
func TestSampleConfigsAnimate(t *testing.T) {
	dir := getTestConfigsDir(t)

	tests := []struct {
		file          string
		width, height int
	}{
		{"basic.lua", 400, 300},
		{"basic.yaml", 400, 300},
		{"sunset.lua", 1280, 720},
		{"sunset.yaml", 1280, 720},
		{"palette.yaml", 400, 300},
		{"minimal.yaml", 400, 300},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			metrics := gradient.NewMetrics()
			a, err := gradient.New(filepath.Join(dir, tt.file), &gradient.Options{
				Headless: true,
				Duration: 20 * time.Millisecond,
				Metrics:  metrics,
			})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := a.Start(); err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			defer a.Stop()

			waitFor(t, 5*time.Second, "two completed cycles", func() bool {
				return metrics.Snapshot().CyclesCompleted >= 2
			})

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			img, err := a.Snapshot(ctx)
			if err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}
			if got := img.Bounds().Size(); got.X != tt.width || got.Y != tt.height {
				t.Errorf("Snapshot size = %v, want %dx%d", got, tt.width, tt.height)
			}

			if h := a.Health(); !h.IsHealthy() {
				t.Errorf("Health() = %v, want healthy", h.Status)
			}
			if err := a.Stop(); err != nil {
				t.Errorf("Stop failed: %v", err)
			}
			if a.IsRunning() {
				t.Error("IsRunning() should be false after Stop()")
			}
		})
	}
}

// TestReloadKeepsCycling reloads a running animator and checks the
// animation carries on with the reloaded configuration.
func TestReloadKeepsCycling(t *testing.T) {
	dir := getTestConfigsDir(t)
	metrics := gradient.NewMetrics()

	a, err := gradient.New(filepath.Join(dir, "basic.yaml"), &gradient.Options{
		Headless: true,
		Duration: 20 * time.Millisecond,
		Metrics:  metrics,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer a.Stop()

	if err := a.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if got := metrics.Snapshot().ConfigReloads; got != 1 {
		t.Errorf("ConfigReloads = %d, want 1", got)
	}

	before := metrics.Snapshot().CyclesCompleted
	waitFor(t, 5*time.Second, "cycles after reload", func() bool {
		return metrics.Snapshot().CyclesCompleted > before
	})
}
