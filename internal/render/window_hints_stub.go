//go:build !linux

package render

// ApplyWindowHints does nothing outside Linux; _NET_WM_STATE is an X11
// concept and other window systems ignore the hints.
func ApplyWindowHints(WindowHints) error { return nil }

// CloseWindowHints does nothing outside Linux.
func CloseWindowHints() {}
