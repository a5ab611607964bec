//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served by owning the X11 CLIPBOARD selection
// from a hidden window.

func newBackend() (backend, error) {
	if err := requireDisplay(); err != nil {
		return nil, err
	}
	o, err := newSelectionOwner()
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (o *selectionOwner) write(f format, data []byte) error {
	if f == formatPNG {
		return o.own(nil, data)
	}
	return o.own(data, nil)
}

func (o *selectionOwner) read(f format) ([]byte, error) {
	if f == formatPNG {
		return o.request(o.atoms[atomPNG])
	}
	data, err := o.request(o.atoms[atomUTF8])
	if err != nil {
		return o.request(xproto.AtomString)
	}
	return data, nil
}

const (
	atomClipboard = iota
	atomTargets
	atomUTF8
	atomTextPlain
	atomPNG
	atomProperty
	atomCount
)

var atomNames = [atomCount]string{
	"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "GRIDPAINT_CLIPBOARD",
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  [atomCount]xproto.Atom

	mu    sync.RWMutex
	text  []byte
	image []byte
}

func newSelectionOwner() (*selectionOwner, error) {
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
	o := &selectionOwner{conn: conn, window: window}
	for i, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, fmt.Errorf("intern %s: %w", name, err)
		}
		o.atoms[i] = reply.Atom
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) own(text, img []byte) error {
	o.mu.Lock()
	o.text = bytes.Clone(text)
	o.image = bytes.Clone(img)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms[atomClipboard], xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.text, o.image = nil, nil
			o.mu.Unlock()
		}
	}
}

// answer replies to a paste request with the data held for the requested
// target, or refuses it with AtomNone.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	text, img := o.text, o.image
	o.mu.RUnlock()

	var (
		typ     xproto.Atom
		format  byte = 8
		payload []byte
	)
	switch e.Target {
	case o.atoms[atomTargets]:
		targets := []xproto.Atom{o.atoms[atomTargets]}
		if len(text) > 0 {
			targets = append(targets, o.atoms[atomUTF8], xproto.AtomString, o.atoms[atomTextPlain])
		}
		if len(img) > 0 {
			targets = append(targets, o.atoms[atomPNG])
		}
		payload = make([]byte, 4*len(targets))
		for i, a := range targets {
			xgb.Put32(payload[4*i:], uint32(a))
		}
		typ, format = xproto.AtomAtom, 32
	case o.atoms[atomUTF8], xproto.AtomString, o.atoms[atomTextPlain]:
		payload, typ = text, o.atoms[atomUTF8]
	case o.atoms[atomPNG]:
		payload, typ = img, o.atoms[atomPNG]
	}
	if len(payload) == 0 {
		property = xproto.AtomNone
	} else {
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format,
			uint32(len(payload)/int(format/8)), payload)
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the clipboard selection to target on a short lived
// connection and waits for the owner to deliver it.
func (o *selectionOwner) request(target xproto.Atom) ([]byte, error) {
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

	prop := o.atoms[atomProperty]
	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms[atomClipboard], target, prop, xproto.TimeCurrentTime).Check(); err != nil {
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
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		if e.Property != prop {
			continue
		}
		reply, err := xproto.GetProperty(conn, true, window, prop, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return bytes.Clone(reply.Value), nil
	}
}
