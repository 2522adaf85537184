package render

import (
	"sync/atomic"
	"time"
)

// FrameStats tracks how long the compositor spends rasterizing frames and
// the resulting frame rate. All methods are safe for concurrent use, so
// metrics exporters can read while the UI goroutine records.
type FrameStats struct {
	frames       atomic.Int64
	windowFrames atomic.Int64
	lastFPS      atomic.Int64 // FPS * 1000
	lastFrame    atomic.Int64 // nanoseconds
	maxFrame     atomic.Int64 // nanoseconds
	totalTime    atomic.Int64 // nanoseconds
	windowStart  atomic.Int64 // unix nanoseconds
	period       time.Duration
}

// NewFrameStats creates a FrameStats that recomputes FPS every period
// (one second when period is not positive).
func NewFrameStats(period time.Duration) *FrameStats {
	if period <= 0 {
		period = time.Second
	}
	return &FrameStats{period: period}
}

// RecordFrame records one frame that took d and finished at end.
func (fs *FrameStats) RecordFrame(d time.Duration, end time.Time) {
	n := d.Nanoseconds()
	fs.frames.Add(1)
	fs.lastFrame.Store(n)
	fs.totalTime.Add(n)
	for {
		cur := fs.maxFrame.Load()
		if n <= cur || fs.maxFrame.CompareAndSwap(cur, n) {
			break
		}
	}

	frames := fs.windowFrames.Add(1)
	start := fs.windowStart.Load()
	if start == 0 {
		fs.windowStart.CompareAndSwap(0, end.UnixNano())
		return
	}
	elapsed := time.Duration(end.UnixNano() - start)
	if elapsed >= fs.period && fs.windowStart.CompareAndSwap(start, end.UnixNano()) {
		fs.windowFrames.Add(-frames)
		fs.lastFPS.Store(int64(float64(frames) / elapsed.Seconds() * 1000))
	}
}

// Frames returns the number of frames recorded.
func (fs *FrameStats) Frames() int64 { return fs.frames.Load() }

// FPS returns the frame rate measured over the last complete period.
func (fs *FrameStats) FPS() float64 { return float64(fs.lastFPS.Load()) / 1000 }

// LastFrameTime returns the duration of the most recent frame.
func (fs *FrameStats) LastFrameTime() time.Duration { return time.Duration(fs.lastFrame.Load()) }

// MaxFrameTime returns the slowest frame recorded.
func (fs *FrameStats) MaxFrameTime() time.Duration { return time.Duration(fs.maxFrame.Load()) }

// AverageFrameTime returns the mean frame duration.
func (fs *FrameStats) AverageFrameTime() time.Duration {
	n := fs.frames.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(fs.totalTime.Load() / n)
}

// Reset clears all counters.
func (fs *FrameStats) Reset() {
	fs.frames.Store(0)
	fs.windowFrames.Store(0)
	fs.lastFPS.Store(0)
	fs.lastFrame.Store(0)
	fs.maxFrame.Store(0)
	fs.totalTime.Store(0)
	fs.windowStart.Store(0)
}
