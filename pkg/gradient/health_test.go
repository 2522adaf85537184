package gradient

import (
	"errors"
	"testing"
)

func TestHealthCheckPredicates(t *testing.T) {
	tests := []struct {
		status                       HealthStatus
		healthy, degraded, unhealthy bool
	}{
		{HealthOK, true, false, false},
		{HealthDegraded, false, true, false},
		{HealthUnhealthy, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			h := HealthCheck{Status: tt.status}
			if h.IsHealthy() != tt.healthy || h.IsDegraded() != tt.degraded || h.IsUnhealthy() != tt.unhealthy {
				t.Errorf("predicates for %s = %v %v %v, want %v %v %v", tt.status,
					h.IsHealthy(), h.IsDegraded(), h.IsUnhealthy(), tt.healthy, tt.degraded, tt.unhealthy)
			}
		})
	}
}

func TestHealth_NotRunning(t *testing.T) {
	a, _ := newHeadless(t, fastYAML)

	h := a.Health()
	if !h.IsUnhealthy() {
		t.Errorf("Status = %v, want unhealthy", h.Status)
	}
	if h.Uptime != 0 {
		t.Errorf("Uptime = %v, want 0", h.Uptime)
	}
	if h.Components["host"].Status != HealthUnhealthy {
		t.Errorf("host = %v, want unhealthy before the first Start", h.Components["host"])
	}
	if _, ok := h.Components["watcher"]; ok {
		t.Error("watcher component reported without WatchConfig")
	}
}

func TestHealth_Running(t *testing.T) {
	a, _ := newHeadless(t, fastYAML)
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer a.Stop()

	h := a.Health()
	if !h.IsHealthy() {
		t.Errorf("Status = %v (%s), want ok", h.Status, h.Message)
	}
	for _, name := range []string{"instance", "host", "animation", "errors"} {
		if c, ok := h.Components[name]; !ok || c.Status != HealthOK {
			t.Errorf("component %s = %+v, want ok", name, c)
		}
	}

	a.notifyError(ErrorCategoryRender, errors.New("frame dropped"))
	if h := a.Health(); !h.IsDegraded() || h.Components["errors"].Status != HealthDegraded {
		t.Errorf("Status after error = %v, want degraded", h.Status)
	}
}

func TestHealth_AfterStop(t *testing.T) {
	a, _ := newHeadless(t, fastYAML)
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := a.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	h := a.Health()
	if !h.IsUnhealthy() {
		t.Errorf("Status = %v, want unhealthy", h.Status)
	}
	if h.Components["host"].Status != HealthDegraded {
		t.Errorf("host = %v, want degraded after Stop", h.Components["host"])
	}
	if _, ok := h.Components["animation"]; ok {
		t.Error("animation component reported while stopped")
	}
}
