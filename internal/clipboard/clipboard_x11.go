//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Backend owns the CLIPBOARD selection through a hidden window and answers
// conversion requests from its own event loop. Without cgo this is the only
// way to reach the X server.
type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms

	mu  sync.RWMutex
	png []byte
}

type x11Atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func newBackend() (backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	b := &x11Backend{conn: conn, window: window}
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD":           &b.atoms.clipboard,
		"TARGETS":             &b.atoms.targets,
		"image/png":           &b.atoms.png,
		"SKETCHPAD_SELECTION": &b.atoms.property,
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	go b.serve()
	return b, nil
}

func (b *x11Backend) writePNG(data []byte) error {
	b.mu.Lock()
	b.png = append([]byte(nil), data...)
	b.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.png = nil
			b.mu.Unlock()
		}
	}
}

func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	b.mu.RLock()
	data := b.png
	b.mu.RUnlock()

	switch {
	case e.Target == b.atoms.targets:
		targets := []xproto.Atom{b.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, b.atoms.png)
		}
		buf := make([]byte, 4*len(targets))
		for i, a := range targets {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), buf)
	case e.Target == b.atoms.png && len(data) > 0:
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property, b.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(b.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// readPNG converts the selection on a private connection so the owner loop
// above can answer when we own the selection ourselves.
func (b *x11Backend) readPNG() ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, b.atoms.clipboard, b.atoms.png, b.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
