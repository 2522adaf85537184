//go:build linux

package render

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ewmhClient sets _NET_WM_STATE flags over a lazily opened X11 connection.
// Atoms are interned once per connection.
type ewmhClient struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	atoms map[string]xproto.Atom
}

var hintClient = &ewmhClient{}

// ApplyWindowHints merges the requested flags into the active window's
// _NET_WM_STATE. Call it once the window is mapped. Without an X server, or
// on Wayland, it does nothing.
func ApplyWindowHints(hints WindowHints) error {
	if !hints.Any() {
		return nil
	}
	return hintClient.apply(hints.states())
}

// CloseWindowHints drops the X11 connection used for hints.
func CloseWindowHints() {
	hintClient.close()
}

func (c *ewmhClient) apply(states []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return nil
		}
		c.conn, c.atoms = conn, make(map[string]xproto.Atom)
	}

	win := c.activeWindow()
	if win == xproto.WindowNone {
		return nil
	}
	wmState, ok := c.atom("_NET_WM_STATE")
	if !ok {
		return nil
	}

	merged := c.windowState(win, wmState)
	present := make(map[xproto.Atom]bool, len(merged))
	for _, a := range merged {
		present[a] = true
	}
	added := false
	for _, name := range states {
		if a, ok := c.atom(name); ok && !present[a] {
			present[a] = true
			merged = append(merged, a)
			added = true
		}
	}
	if !added {
		return nil
	}

	buf := make([]byte, 4*len(merged))
	for i, a := range merged {
		xgb.Put32(buf[4*i:], uint32(a))
	}
	return xproto.ChangePropertyChecked(c.conn, xproto.PropModeReplace, win,
		wmState, xproto.AtomAtom, 32, uint32(len(merged)), buf).Check()
}

func (c *ewmhClient) atom(name string) (xproto.Atom, bool) {
	if a, ok := c.atoms[name]; ok {
		return a, true
	}
	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil || reply == nil {
		return 0, false
	}
	c.atoms[name] = reply.Atom
	return reply.Atom, true
}

// activeWindow prefers _NET_ACTIVE_WINDOW on the root and falls back to the
// input focus.
func (c *ewmhClient) activeWindow() xproto.Window {
	roots := xproto.Setup(c.conn).Roots
	if len(roots) == 0 {
		return xproto.WindowNone
	}
	if active, ok := c.atom("_NET_ACTIVE_WINDOW"); ok {
		reply, err := xproto.GetProperty(c.conn, false, roots[0].Root, active,
			xproto.AtomWindow, 0, 1).Reply()
		if err == nil && reply != nil && len(reply.Value) >= 4 {
			return xproto.Window(xgb.Get32(reply.Value))
		}
	}
	focus, err := xproto.GetInputFocus(c.conn).Reply()
	if err != nil || focus == nil {
		return xproto.WindowNone
	}
	return focus.Focus
}

func (c *ewmhClient) windowState(win xproto.Window, wmState xproto.Atom) []xproto.Atom {
	reply, err := xproto.GetProperty(c.conn, false, win, wmState,
		xproto.AtomAtom, 0, 256).Reply()
	if err != nil || reply == nil {
		return nil
	}
	out := make([]xproto.Atom, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		out = append(out, xproto.Atom(xgb.Get32(reply.Value[i:])))
	}
	return out
}

func (c *ewmhClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn, c.atoms = nil, nil
}
