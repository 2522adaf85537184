package gradient

import "time"

// DefaultShutdownTimeout bounds how long Stop waits for the host to exit.
const DefaultShutdownTimeout = 5 * time.Second

// Options tune how an Animator hosts its view. The zero value opens a
// window, logs nothing and records into DefaultMetrics.
type Options struct {
	// Headless ticks the view without drawing anywhere. Wins over Terminal.
	Headless bool
	// Terminal draws into the controlling terminal with half-block cells.
	Terminal bool

	// WindowTitle replaces the configured title when non-empty.
	WindowTitle string
	// Duration replaces the configured cross-fade length when positive.
	Duration time.Duration

	// ShutdownTimeout bounds Stop; zero selects DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger receives lifecycle and view logs. Nil discards them.
	Logger Logger
	// Metrics collects counters; nil selects DefaultMetrics().
	Metrics *Metrics

	// WatchConfig reloads the view whenever the file passed to New changes.
	WatchConfig bool
	// WatchDebounce coalesces bursts of file events; zero selects
	// DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns the zero Options.
func DefaultOptions() Options {
	return Options{}
}
