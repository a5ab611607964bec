// Package paint drives a painting: it holds the transient input state of one
// editing session and dispatches pointer and keyboard gestures to the
// tracer, the flood fill and the history.
package paint

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/history"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/render"
	"github.com/example/gridpaint/internal/trace"
	"github.com/example/gridpaint/internal/wire"
)

// DefaultColor is the drawing colour of a new session, black in the
// extended palette.
const DefaultColor grid.ColorIndex = 1

// Session is one painting being edited. Its methods may be called from
// several goroutines but mutations are applied one at a time.
type Session struct {
	mu  sync.Mutex
	id  uuid.UUID
	log *slog.Logger

	width, height int
	depth         int

	grid   *grid.Grid
	pal    palette.Palette
	color  grid.ColorIndex
	tool   Tool
	cursor image.Point
	points trace.ControlPoints

	engaged bool
	gesture grid.Snapshot

	hist     *history.History
	renderer render.Renderer
	redraw   chan struct{}
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithSize sets the dimensions of the blank painting a session starts with.
func WithSize(width, height int) Option {
	return func(s *Session) { s.width, s.height = width, height }
}

// WithPalette sets the palette. Its default colour pads new and resized
// paintings.
func WithPalette(p palette.Palette) Option { return func(s *Session) { s.pal = p } }

// WithColor sets the initial drawing colour.
func WithColor(c grid.ColorIndex) Option { return func(s *Session) { s.color = c } }

// WithHistoryDepth limits the undo stack.
func WithHistoryDepth(n int) Option { return func(s *Session) { s.depth = n } }

// WithRenderer attaches the renderer told about redraws and size changes.
func WithRenderer(r render.Renderer) Option { return func(s *Session) { s.renderer = r } }

// WithLogger overrides the package logger for this session.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

// WithGrid starts the session from a copy of g instead of a blank painting.
func WithGrid(g *grid.Grid) Option {
	return func(s *Session) {
		if g != nil {
			s.grid = g.Clone()
		}
	}
}

// New creates a Session with the provided options.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		id:       uuid.New(),
		width:    wire.Default.Width,
		height:   wire.Default.Height,
		depth:    history.DefaultDepth,
		pal:      palette.Extended(),
		color:    DefaultColor,
		tool:     Pencil,
		cursor:   grid.Unset,
		points:   trace.NewControlPoints(),
		renderer: render.Nop{},
		redraw:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = Logger()
	}
	if s.renderer == nil {
		s.renderer = render.Nop{}
	}
	if !s.pal.Valid(s.color) {
		return nil, fmt.Errorf("color %d outside palette of %d", s.color, s.pal.Len())
	}
	if s.grid == nil {
		g, err := grid.New(s.width, s.height, s.pal.Default())
		if err != nil {
			return nil, err
		}
		s.grid = g
	}
	s.hist = history.New(s.depth)
	s.log = s.log.With("session", s.id.String())
	s.log.Debug("session created", "width", s.grid.Width(), "height", s.grid.Height())
	return s, nil
}

// ID identifies the session.
func (s *Session) ID() uuid.UUID { return s.id }

// Snapshot returns an immutable copy of the painting.
func (s *Session) Snapshot() grid.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot()
}

// Size returns the painting dimensions in cells.
func (s *Session) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Width(), s.grid.Height()
}

// Palette returns the session palette.
func (s *Session) Palette() palette.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pal
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// Color returns the drawing colour.
func (s *Session) Color() grid.ColorIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// SetColor changes the drawing colour.
func (s *Session) SetColor(c grid.ColorIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pal.Valid(c) {
		return fmt.Errorf("color %d outside palette of %d", c, s.pal.Len())
	}
	s.color = c
	s.invalidate()
	return nil
}

// Cursor returns the last pointer position, grid.Unset before any move.
func (s *Session) Cursor() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Pending returns the control points of the line or curve being composed.
func (s *Session) Pending() trace.ControlPoints {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// Approx returns the cells the next commit at the cursor would paint, for
// drawing a preview. It is empty while the cursor is off the painting.
func (s *Session) Approx() []image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.grid.In(s.cursor) {
		return nil
	}
	return s.points.Approx(s.cursor)
}

// CanUndo reports whether Undo would change the painting.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether Redo would change the painting.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// HistoryLen returns the number of undo and redo entries.
func (s *Session) HistoryLen() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.UndoLen(), s.hist.RedoLen()
}

// Encode returns the wire form of the painting.
func (s *Session) Encode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wire.Encode(s.grid)
}

// Load replaces the painting with a decoded wire string.
func (s *Session) Load(data string) error {
	g, err := wire.Decode(data)
	if err != nil {
		return err
	}
	return s.ReplacePainting(g)
}
