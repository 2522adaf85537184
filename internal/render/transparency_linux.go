//go:build linux

package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DetectCompositor reports whether a compositing manager is running.
// Wayland sessions always composite. On X11 the owner of the
// _NET_WM_CM_S<screen> selection is the running compositor.
func DetectCompositor() CompositorStatus {
	if IsWayland() {
		return CompositorActive
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return CompositorUnknown
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		return CompositorUnknown
	}

	name := fmt.Sprintf("_NET_WM_CM_S%d", conn.DefaultScreen)
	atom, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil || atom == nil {
		return CompositorUnknown
	}

	owner, err := xproto.GetSelectionOwner(conn, atom.Atom).Reply()
	if err != nil {
		return CompositorUnknown
	}
	if owner.Owner == xproto.WindowNone {
		return CompositorInactive
	}
	return CompositorActive
}

// IsWayland checks if the current session is running on Wayland.
func IsWayland() bool {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}
