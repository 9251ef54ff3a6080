package sampler

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11 reads _NET_ACTIVE_WINDOW and _NET_WM_PID from the root window. The
// connection is opened lazily and dropped after any protocol error so that
// the next sample reconnects.
type X11 struct {
	client *x11Client
	mu     sync.Mutex
}

type x11Client struct {
	conn         *xgb.Conn
	activeWindow xproto.Atom
	wmPID        xproto.Atom
	root         xproto.Window
}

func newX11Client() (*x11Client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	c := &x11Client{
		conn: conn,
		root: xproto.Setup(conn).DefaultScreen(conn).Root,
	}

	c.activeWindow, err = c.internAtom("_NET_ACTIVE_WINDOW")
	if err != nil {
		conn.Close()
		return nil, err
	}

	c.wmPID, err = c.internAtom("_NET_WM_PID")
	if err != nil {
		conn.Close()
		return nil, err
	}

	return c, nil
}

func (c *x11Client) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}

	return reply.Atom, nil
}

// cardinal reads the first 32-bit value of a property.
func (c *x11Client) cardinal(win xproto.Window, atom, atomType xproto.Atom) (uint32, error) {
	reply, err := xproto.GetProperty(c.conn, false, win, atom, atomType, 0, 1).Reply()
	if err != nil {
		return 0, err
	}

	if len(reply.Value) < 4 {
		return 0, nil
	}

	return binary.LittleEndian.Uint32(reply.Value), nil
}

func (x *X11) Sample(_ context.Context) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.client == nil {
		c, err := newX11Client()
		if err != nil {
			return "", err
		}

		x.client = c
	}

	pid, err := x.activePID()
	if err != nil {
		x.client.conn.Close()
		x.client = nil

		return "", err
	}

	if pid == 0 {
		return "", ErrNoForeground
	}

	return processName(pid)
}

func (x *X11) activePID() (uint32, error) {
	c := x.client

	win, err := c.cardinal(c.root, c.activeWindow, xproto.AtomWindow)
	if err != nil {
		return 0, err
	}

	if win == 0 {
		return 0, nil
	}

	return c.cardinal(xproto.Window(win), c.wmPID, xproto.AtomCardinal)
}
