// Package render turns paintings into pixels, documents and text.
//
// A cell (x, y) always covers the block starting at (x*cellWidth,
// y*cellHeight); transparent cells are skipped so whatever lies underneath
// shows through.
package render

import (
	"bytes"
	"errors"
	"io"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

// ErrRenderContextUnavailable is returned when a drawing surface cannot be
// obtained.
var ErrRenderContextUnavailable = errors.New("render context unavailable")

// Default cell size in pixels, matching the size paintings are published at.
const (
	DefaultCellWidth  = 16
	DefaultCellHeight = 24
)

// Renderer is told about every visible change to a painting.
type Renderer interface {
	Redraw(snap grid.Snapshot, pal palette.Palette) error
	// Resized reports new painting dimensions in cells.
	Resized(width, height int)
}

// Nop discards redraws.
type Nop struct{}

func (Nop) Redraw(grid.Snapshot, palette.Palette) error { return nil }
func (Nop) Resized(int, int)                            {}

// Encoder writes a painting in some output format.
type Encoder interface {
	Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error
	// Ext is the conventional file extension, including the dot.
	Ext() string
}

// Result is the outcome of an asynchronous export.
type Result struct {
	Data []byte
	Ext  string
	Err  error
}

// EncodeBytes runs enc into memory.
func EncodeBytes(enc Encoder, snap grid.Snapshot, pal palette.Palette) Result {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, snap, pal); err != nil {
		return Result{Ext: enc.Ext(), Err: err}
	}
	return Result{Data: buf.Bytes(), Ext: enc.Ext()}
}

// ForFormat returns the encoder registered for a format name.
func ForFormat(name string) (Encoder, bool) {
	switch name {
	case "png", "":
		return PNG{}, true
	case "preview":
		return Preview{Grid: true}, true
	case "pdf":
		return PDF{}, true
	case "ansi", "term", "terminal":
		return Terminal{}, true
	case "irc":
		return IRC{}, true
	}
	return nil, false
}

// Formats lists the names accepted by ForFormat.
func Formats() []string { return []string{"png", "preview", "pdf", "ansi", "irc"} }
