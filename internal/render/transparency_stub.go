//go:build !linux

package render

// DetectCompositor returns CompositorActive on non-Linux platforms,
// where the desktop always composites.
func DetectCompositor() CompositorStatus {
	return CompositorActive
}

// IsWayland returns false on non-Linux platforms.
func IsWayland() bool {
	return false
}
