package render

// CompositorStatus is the detected state of the desktop's compositing
// manager, which a transparent window depends on.
type CompositorStatus int

const (
	// CompositorUnknown means detection failed.
	CompositorUnknown CompositorStatus = iota
	// CompositorActive means a compositing manager is running.
	CompositorActive
	// CompositorInactive means no compositing manager was found.
	CompositorInactive
)

// String returns a human-readable compositor status.
func (cs CompositorStatus) String() string {
	switch cs {
	case CompositorActive:
		return "active"
	case CompositorInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// CheckTransparencySupport returns a warning when a transparent window was
// requested but will probably render opaque, or "" otherwise.
func CheckTransparencySupport(transparent bool) string {
	if !transparent {
		return ""
	}
	return transparencyWarning(DetectCompositor())
}

func transparencyWarning(status CompositorStatus) string {
	switch status {
	case CompositorActive:
		return ""
	case CompositorInactive:
		return "no compositing manager detected; the transparent window will render opaque"
	default:
		return "could not detect a compositing manager; window transparency may not work"
	}
}
