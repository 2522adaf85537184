package gradient

import "time"

// HealthStatus grades the animator or one of its parts.
type HealthStatus string

const (
	HealthOK        HealthStatus = "ok"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// healthErrorWindow is how far back recent errors degrade health.
const healthErrorWindow = time.Minute

// HealthCheck is a point-in-time report from Animator.Health. Status is
// unhealthy while stopped and degraded after errors in the last minute.
type HealthCheck struct {
	Status     HealthStatus
	Timestamp  time.Time
	Uptime     time.Duration // zero while stopped
	Components map[string]ComponentHealth
	Message    string
}

// ComponentHealth reports one part: instance, host, animation, watcher or
// errors.
type ComponentHealth struct {
	Status      HealthStatus
	Message     string
	LastUpdated time.Time
}

func (h HealthCheck) IsHealthy() bool   { return h.Status == HealthOK }
func (h HealthCheck) IsDegraded() bool  { return h.Status == HealthDegraded }
func (h HealthCheck) IsUnhealthy() bool { return h.Status == HealthUnhealthy }
