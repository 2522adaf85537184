package gradient

import (
	"expvar"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-gradient/internal/render"
)

// Metrics collects animator counters and exposes them through expvar, so
// they appear at /debug/vars once an HTTP server imports expvar.
//
// Thread-safe for concurrent use.
//
//	metrics := gradient.NewMetrics()
//	metrics.RegisterExpvar()
//	a, _ := gradient.New("sunset.yaml", &gradient.Options{Metrics: metrics})
type Metrics struct {
	// Counters
	starts          atomic.Int64
	stops           atomic.Int64
	restarts        atomic.Int64
	configReloads   atomic.Int64
	cyclesStarted   atomic.Int64
	cyclesCompleted atomic.Int64
	cyclesCancelled atomic.Int64
	errorsTotal     atomic.Int64
	eventsEmitted   atomic.Int64

	// Gauges
	currentlyRunning atomic.Int32
	animating        atomic.Int32

	// frames is the rasterization counter of the running compositor.
	frames atomic.Pointer[render.FrameStats]

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics under gradient_* names.
// Safe to call multiple times; subsequent calls are no-ops. expvar names are
// process-wide, so only one Metrics instance may be registered.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	expvar.Publish("gradient_starts_total", expvar.Func(func() any { return m.starts.Load() }))
	expvar.Publish("gradient_stops_total", expvar.Func(func() any { return m.stops.Load() }))
	expvar.Publish("gradient_restarts_total", expvar.Func(func() any { return m.restarts.Load() }))
	expvar.Publish("gradient_config_reloads_total", expvar.Func(func() any { return m.configReloads.Load() }))
	expvar.Publish("gradient_cycles_started_total", expvar.Func(func() any { return m.cyclesStarted.Load() }))
	expvar.Publish("gradient_cycles_completed_total", expvar.Func(func() any { return m.cyclesCompleted.Load() }))
	expvar.Publish("gradient_cycles_cancelled_total", expvar.Func(func() any { return m.cyclesCancelled.Load() }))
	expvar.Publish("gradient_errors_total", expvar.Func(func() any { return m.errorsTotal.Load() }))
	expvar.Publish("gradient_events_emitted_total", expvar.Func(func() any { return m.eventsEmitted.Load() }))

	expvar.Publish("gradient_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("gradient_animating", expvar.Func(func() any { return m.animating.Load() }))

	expvar.Publish("gradient_frames_total", expvar.Func(func() any { return m.Snapshot().Frames }))
	expvar.Publish("gradient_fps", expvar.Func(func() any { return m.Snapshot().FPS }))
	expvar.Publish("gradient_frame_time_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().FrameTimeAvg) / 1e6
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	// Counters
	Starts          int64
	Stops           int64
	Restarts        int64
	ConfigReloads   int64
	CyclesStarted   int64
	CyclesCompleted int64
	CyclesCancelled int64
	ErrorsTotal     int64
	EventsEmitted   int64

	// Gauges
	Running   bool
	Animating bool

	// Rasterization, zero while no compositor is attached.
	Frames       int64
	FPS          float64
	FrameTimeAvg time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Starts:          m.starts.Load(),
		Stops:           m.stops.Load(),
		Restarts:        m.restarts.Load(),
		ConfigReloads:   m.configReloads.Load(),
		CyclesStarted:   m.cyclesStarted.Load(),
		CyclesCompleted: m.cyclesCompleted.Load(),
		CyclesCancelled: m.cyclesCancelled.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		EventsEmitted:   m.eventsEmitted.Load(),

		Running:   m.currentlyRunning.Load() > 0,
		Animating: m.animating.Load() > 0,
	}
	if fs := m.frames.Load(); fs != nil {
		s.Frames = fs.Frames()
		s.FPS = fs.FPS()
		s.FrameTimeAvg = fs.AverageFrameTime()
	}
	return s
}

// IncrementStarts records a start operation.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop operation.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementRestarts records a restart operation.
func (m *Metrics) IncrementRestarts() { m.restarts.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementCyclesStarted records the start of a cross-fade.
func (m *Metrics) IncrementCyclesStarted() { m.cyclesStarted.Add(1) }

// IncrementCyclesCompleted records a cross-fade that ran to the end.
func (m *Metrics) IncrementCyclesCompleted() { m.cyclesCompleted.Add(1) }

// IncrementCyclesCancelled records a cross-fade cut short by a stop or restart.
func (m *Metrics) IncrementCyclesCancelled() { m.cyclesCancelled.Add(1) }

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	m.currentlyRunning.Store(boolGauge(running))
}

// SetAnimating updates the animating gauge.
func (m *Metrics) SetAnimating(animating bool) {
	m.animating.Store(boolGauge(animating))
}

// SetFrameStats attaches the rasterization counters of a compositor.
// Nil detaches them.
func (m *Metrics) SetFrameStats(fs *render.FrameStats) {
	m.frames.Store(fs)
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.starts.Store(0)
	m.stops.Store(0)
	m.restarts.Store(0)
	m.configReloads.Store(0)
	m.cyclesStarted.Store(0)
	m.cyclesCompleted.Store(0)
	m.cyclesCancelled.Store(0)
	m.errorsTotal.Store(0)
	m.eventsEmitted.Store(0)

	m.currentlyRunning.Store(0)
	m.animating.Store(0)
	m.frames.Store(nil)
}

func boolGauge(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// defaultMetrics is a global metrics instance for convenience.
var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
