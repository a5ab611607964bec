package paint

import (
	"fmt"
	"image"

	"github.com/example/gridpaint/internal/fill"
	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/trace"
)

// SelectTool makes t the active tool. Any pending line or curve is dropped
// without painting.
func (s *Session) SelectTool(t Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	s.points.Clear()
	if s.tool != t {
		s.log.Debug("tool selected", "tool", t.String())
	}
	s.tool = t
	s.invalidate()
}

// SelectToolByName resolves name with ParseTool and selects it.
func (s *Session) SelectToolByName(name string) error {
	t, err := ParseTool(name)
	if err != nil {
		return err
	}
	s.SelectTool(t)
	return nil
}

// PointerMove records the cursor and, while the pointer is down, re-applies
// the pencil or bucket at the new position.
func (s *Session) PointerMove(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = image.Pt(x, y)
	if s.engaged {
		s.apply(true)
	}
	s.invalidate()
}

// PointerDown starts a gesture and applies the active tool once. For the
// line and curve tools this is the discrete click that places or commits
// control points.
func (s *Session) PointerDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engaged {
		s.engaged = true
		s.gesture = s.grid.Snapshot()
	}
	s.apply(false)
	s.invalidate()
}

// PointerUp ends the gesture and records it in the history if it changed the
// painting.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
}

// CommitLineOrCurve advances the line/curve composition at the cursor
// regardless of the active tool, as a keyboard shortcut would.
func (s *Session) CommitLineOrCurve(useCurve bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prior := s.grid.Snapshot()
	s.commitOrAdvance(useCurve)
	if !s.engaged {
		s.record(prior)
	}
	s.invalidate()
}

// CancelPending drops any pending control points.
func (s *Session) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points.Clear()
	s.invalidate()
}

func (s *Session) apply(move bool) {
	switch s.tool {
	case Pencil:
		s.grid.Set(s.cursor.X, s.cursor.Y, s.color)
	case Bucket:
		fill.Flood(s.grid, s.cursor, s.color)
	case Line:
		if !move {
			s.commitOrAdvance(false)
		}
	case Bezier:
		if !move {
			s.commitOrAdvance(true)
		}
	}
}

func (s *Session) commitOrAdvance(wantsCurve bool) {
	switch s.points.State() {
	case trace.Unset:
		s.points[0] = s.cursor
	case trace.PendingLine:
		if wantsCurve {
			s.points[1] = s.cursor
			return
		}
		s.plot(trace.Line(s.points[0], s.cursor))
		s.points.Clear()
	case trace.PendingCurve:
		s.plot(trace.Quad(s.points[0], s.points[1], s.cursor))
		s.points.Clear()
	}
}

func (s *Session) plot(pts []image.Point) {
	for _, p := range pts {
		s.grid.Set(p.X, p.Y, s.color)
	}
}

func (s *Session) endGesture() {
	if !s.engaged {
		return
	}
	s.engaged = false
	s.record(s.gesture)
	s.gesture = grid.Snapshot{}
}

func (s *Session) record(prior grid.Snapshot) {
	if s.hist.RecordIfChanged(prior, s.grid) {
		s.log.Debug("change recorded", "undo", s.hist.UndoLen())
	}
}

// Undo restores the painting as it was before the last recorded change.
// It reports whether there was anything to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	s.points.Clear()
	g, ok := s.hist.Undo(s.grid)
	if !ok {
		return false
	}
	s.install(g)
	return true
}

// Redo reapplies the change most recently undone.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	s.points.Clear()
	g, ok := s.hist.Redo(s.grid)
	if !ok {
		return false
	}
	s.install(g)
	return true
}

// ClearAll paints every cell with c.
func (s *Session) ClearAll(c grid.ColorIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAll(c)
}

// clearAll runs with s.mu held.
func (s *Session) clearAll(c grid.ColorIndex) error {
	if !s.pal.Valid(c) {
		return fmt.Errorf("color %d outside palette of %d", c, s.pal.Len())
	}
	s.endGesture()
	s.points.Clear()
	prior := s.grid.Snapshot()
	s.grid.Fill(c)
	s.record(prior)
	s.invalidate()
	return nil
}

// ClearWith paints every cell with the drawing colour.
func (s *Session) ClearWith() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAll(s.color)
}

// Clear paints every cell with the palette default.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAll(s.pal.Default())
}

// Replace recolours every old cell to repl.
func (s *Session) Replace(old, repl grid.ColorIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pal.Valid(old) || !s.pal.Valid(repl) {
		return fmt.Errorf("replace %d with %d: color outside palette of %d", old, repl, s.pal.Len())
	}
	s.endGesture()
	s.points.Clear()
	prior := s.grid.Snapshot()
	if fill.Replace(s.grid, old, repl) {
		s.record(prior)
		s.invalidate()
	}
	return nil
}

// Fill flood fills from p with the drawing colour as a single change,
// without moving the cursor or touching the active tool.
func (s *Session) Fill(p image.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	prior := s.grid.Snapshot()
	if !fill.Flood(s.grid, p, s.color) {
		return false
	}
	s.record(prior)
	s.invalidate()
	return true
}

// Action runs a meta action by name.
func (s *Session) Action(name string) error {
	switch name {
	case ActionUndo:
		s.Undo()
	case ActionRedo:
		s.Redo()
	case ActionClear:
		return s.Clear()
	case ActionClearWith:
		return s.ClearWith()
	default:
		return fmt.Errorf("%w: action %q", ErrUnknownTool, name)
	}
	return nil
}
