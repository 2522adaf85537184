package gradient

import "time"

// Status is a snapshot of an Animator taken by Animator.Status.
type Status struct {
	Running bool
	// StartTime is the last successful Start; zero before the first one.
	StartTime time.Time
	// Animating reports whether a cross-fade is in flight.
	Animating bool
	// Cycle is the index of the most recently started cycle.
	Cycle int
	// FramesRendered counts rasterized frames since the last start.
	FramesRendered int64
	// LastError is the newest error passed to the ErrorHandler.
	LastError error
	// ConfigSource is the file path, "embedded:<path>" or "reader".
	ConfigSource string
}

// ErrorHandler receives runtime errors, each a *CategorizedError. It runs
// on its own goroutine; panics are recovered.
type ErrorHandler func(err error)

// EventHandler receives lifecycle events on its own goroutine. Panics are
// recovered and reported to the ErrorHandler.
type EventHandler func(event Event)

// Event is one lifecycle transition.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType identifies a lifecycle event. Compare against the constants;
// the numeric values are not stable.
type EventType int

const (
	EventStarted EventType = iota
	// EventStopped follows both Stop and the host exiting on its own, for
	// example when the window is closed.
	EventStopped
	EventRestarted
	EventConfigReloaded
	EventError
)

// String returns the snake_case event name.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventRestarted:
		return "restarted"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
