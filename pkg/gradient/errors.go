package gradient

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotRunning is returned by operations that need a started animator.
var ErrNotRunning = errors.New("animator not running")

// ErrorCategory tells which part of the animator an error came from.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for configuration parsing and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryRender is for window, terminal and rasterization errors.
	ErrorCategoryRender
	// ErrorCategoryWatch is for file watcher errors.
	ErrorCategoryWatch
	// ErrorCategoryHandler is for panics recovered from user callbacks.
	ErrorCategoryHandler
	// ErrorCategoryLifecycle is for start, stop and restart failures.
	ErrorCategoryLifecycle
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryRender:
		return "render"
	case ErrorCategoryWatch:
		return "watch"
	case ErrorCategoryHandler:
		return "handler"
	case ErrorCategoryLifecycle:
		return "lifecycle"
	default:
		return "unknown"
	}
}

// CategorizedError is the error type passed to ErrorHandler.
// Use errors.As to recover the category.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the error.
	Category ErrorCategory
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] (no error)", e.Category)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a CategorizedError stamped with the current time.
func NewCategorizedError(err error, category ErrorCategory) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// defaultErrorRetention bounds how long recorded errors count toward health.
const defaultErrorRetention = 5 * time.Minute

// maxTrackedErrors caps the error history.
const maxTrackedErrors = 100

// errorTracker keeps a bounded, time-limited history of errors.
type errorTracker struct {
	mu        sync.Mutex
	errors    []CategorizedError
	retention time.Duration
	now       func() time.Time
}

func newErrorTracker() *errorTracker {
	return &errorTracker{retention: defaultErrorRetention, now: time.Now}
}

// Record stores err, pruning expired and excess entries.
func (t *errorTracker) Record(err *CategorizedError) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, *err)
	t.pruneLocked()
	if len(t.errors) > maxTrackedErrors {
		t.errors = t.errors[len(t.errors)-maxTrackedErrors:]
	}
}

func (t *errorTracker) pruneLocked() {
	cutoff := t.now().Add(-t.retention)
	i := 0
	for i < len(t.errors) && t.errors[i].Timestamp.Before(cutoff) {
		i++
	}
	t.errors = t.errors[i:]
}

// CountSince returns how many errors were recorded within window.
func (t *errorTracker) CountSince(window time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-window)
	n := 0
	for _, e := range t.errors {
		if !e.Timestamp.Before(cutoff) {
			n++
		}
	}
	return n
}

// ByCategory counts the retained errors per category.
func (t *errorTracker) ByCategory() map[ErrorCategory]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()
	out := make(map[ErrorCategory]int)
	for _, e := range t.errors {
		out[e.Category]++
	}
	return out
}

// Clear drops the history.
func (t *errorTracker) Clear() {
	t.mu.Lock()
	t.errors = nil
	t.mu.Unlock()
}
