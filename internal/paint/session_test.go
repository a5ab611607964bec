package paint

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/render"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func click(s *Session, x, y int) {
	s.PointerMove(x, y)
	s.PointerDown()
	s.PointerUp()
}

func cell(t *testing.T, s *Session, x, y int) grid.ColorIndex {
	t.Helper()
	c, ok := s.Snapshot().At(x, y)
	if !ok {
		t.Fatalf("(%d,%d) out of bounds", x, y)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	s := newSession(t)
	if w, h := s.Size(); w != 26 || h != 15 {
		t.Fatalf("size %dx%d, want 26x15", w, h)
	}
	if c := cell(t, s, 0, 0); c != grid.Transparent {
		t.Fatalf("new painting cell %d, want transparent", c)
	}
	if s.Tool() != Pencil || s.Cursor() != grid.Unset {
		t.Fatalf("unexpected initial tool %v cursor %v", s.Tool(), s.Cursor())
	}
	other := newSession(t)
	if s.ID() == other.ID() {
		t.Fatalf("sessions share an id")
	}
}

func TestNewInvalid(t *testing.T) {
	if _, err := New(WithSize(0, 3)); !errors.Is(err, grid.ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
	if _, err := New(WithColor(120)); err == nil {
		t.Fatalf("expected error for colour outside palette")
	}
}

func TestPencilStrokeIsOneChange(t *testing.T) {
	s := newSession(t, WithSize(4, 4))
	s.PointerMove(0, 0)
	s.PointerDown()
	s.PointerMove(1, 0)
	s.PointerMove(2, 0)
	s.PointerUp()
	for x := 0; x < 3; x++ {
		if c := cell(t, s, x, 0); c != DefaultColor {
			t.Errorf("(%d,0) = %d", x, c)
		}
	}
	if u, _ := s.HistoryLen(); u != 1 {
		t.Fatalf("undo entries %d, want 1", u)
	}
	// Moving without the pointer down paints nothing.
	s.PointerMove(3, 3)
	if c := cell(t, s, 3, 3); c != grid.Transparent {
		t.Fatalf("hover painted (3,3)")
	}
}

func TestNoopPencilDoesNotRecord(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	click(s, 1, 1)
	click(s, 1, 1)
	if u, _ := s.HistoryLen(); u != 1 {
		t.Fatalf("undo entries %d, want 1", u)
	}
}

func TestPencilOffGridIgnored(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	before := s.Snapshot()
	click(s, -1, -1)
	click(s, 3, 0)
	if !before.Equal(s.Snapshot().Grid()) {
		t.Fatalf("off-grid pencil changed the painting")
	}
	if s.CanUndo() {
		t.Fatalf("off-grid pencil recorded history")
	}
}

func TestLineTool(t *testing.T) {
	s := newSession(t, WithSize(5, 5))
	s.SelectTool(Line)
	click(s, 0, 0)
	if s.Pending()[0] != image.Pt(0, 0) {
		t.Fatalf("first click did not store p0: %v", s.Pending())
	}
	if c := cell(t, s, 0, 0); c != grid.Transparent {
		t.Fatalf("first click painted")
	}
	click(s, 3, 0)
	for x := 0; x <= 3; x++ {
		if c := cell(t, s, x, 0); c != DefaultColor {
			t.Errorf("(%d,0) = %d", x, c)
		}
	}
	if s.Pending().State() != 0 {
		t.Fatalf("points not cleared after commit")
	}
	if u, _ := s.HistoryLen(); u != 1 {
		t.Fatalf("undo entries %d, want 1", u)
	}
}

func TestBezierTool(t *testing.T) {
	s := newSession(t, WithSize(11, 11))
	s.SelectTool(Bezier)
	click(s, 0, 0)
	click(s, 5, 10)
	if got := s.Pending().State().String(); got != "curve" {
		t.Fatalf("state %q after two clicks, want curve", got)
	}
	click(s, 10, 0)
	if c := cell(t, s, 5, 5); c != DefaultColor {
		t.Fatalf("curve midpoint not painted")
	}
	if c := cell(t, s, 5, 10); c != grid.Transparent {
		t.Fatalf("control point painted")
	}
}

func TestCommitLineOrCurveOutsideGesture(t *testing.T) {
	s := newSession(t, WithSize(4, 4))
	s.PointerMove(0, 3)
	s.CommitLineOrCurve(false)
	s.PointerMove(3, 3)
	s.CommitLineOrCurve(false)
	for x := 0; x < 4; x++ {
		if c := cell(t, s, x, 3); c != DefaultColor {
			t.Errorf("(%d,3) = %d", x, c)
		}
	}
	if !s.CanUndo() {
		t.Fatalf("committed line not recorded")
	}
}

func TestSwitchToolCancelsPendingLine(t *testing.T) {
	s := newSession(t, WithSize(5, 5))
	s.SelectTool(Line)
	click(s, 0, 0)
	before := s.Snapshot()
	s.SelectTool(Pencil)
	if s.Pending().State() != 0 {
		t.Fatalf("pending points survived tool switch")
	}
	if !before.Equal(s.Snapshot().Grid()) {
		t.Fatalf("tool switch painted")
	}
	s.SelectTool(Line)
	click(s, 4, 4)
	if c := cell(t, s, 0, 0); c != grid.Transparent {
		t.Fatalf("old p0 was reused")
	}
}

func TestCancelPending(t *testing.T) {
	s := newSession(t, WithSize(5, 5))
	s.SelectTool(Bezier)
	click(s, 0, 0)
	click(s, 1, 1)
	s.CancelPending()
	if s.Pending().State() != 0 {
		t.Fatalf("points not cleared")
	}
	if s.CanUndo() {
		t.Fatalf("cancel recorded history")
	}
}

func TestBucketFill(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	s.SelectTool(Bucket)
	click(s, 1, 1)
	snap := s.Snapshot()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c, _ := snap.At(x, y); c != DefaultColor {
				t.Fatalf("(%d,%d) = %d", x, y, c)
			}
		}
	}
	click(s, 1, 1)
	if u, _ := s.HistoryLen(); u != 1 {
		t.Fatalf("repeat fill recorded history: %d entries", u)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	g0 := s.Snapshot()
	click(s, 0, 0)
	g1 := s.Snapshot()
	if !s.Undo() {
		t.Fatalf("Undo reported nothing")
	}
	if !g0.Equal(s.Snapshot().Grid()) {
		t.Fatalf("undo did not restore G0")
	}
	if !s.Redo() {
		t.Fatalf("Redo reported nothing")
	}
	if !g1.Equal(s.Snapshot().Grid()) {
		t.Fatalf("redo did not restore G1")
	}
	s.Undo()
	click(s, 2, 2)
	if s.CanRedo() {
		t.Fatalf("new change kept the redo branch")
	}
}

func TestHistoryBound(t *testing.T) {
	s := newSession(t, WithSize(10, 10))
	for i := 0; i < 70; i++ {
		click(s, i%10, i/10)
	}
	if u, _ := s.HistoryLen(); u != 64 {
		t.Fatalf("undo entries %d, want 64", u)
	}
	for s.Undo() {
	}
	// The six oldest strokes can no longer be undone.
	for i := 0; i < 6; i++ {
		if c := cell(t, s, i%10, i/10); c != DefaultColor {
			t.Fatalf("stroke %d was undone past the bound", i)
		}
	}
	if c := cell(t, s, 6, 0); c != grid.Transparent {
		t.Fatalf("stroke 6 not undone")
	}
}

func TestHistoryDepthOption(t *testing.T) {
	s := newSession(t, WithSize(4, 4), WithHistoryDepth(2))
	for i := 0; i < 4; i++ {
		click(s, i, 0)
	}
	if u, _ := s.HistoryLen(); u != 2 {
		t.Fatalf("undo entries %d, want 2", u)
	}
}

func TestClearActions(t *testing.T) {
	s := newSession(t, WithSize(2, 2), WithColor(4))
	if err := s.Action(ActionClearWith); err != nil {
		t.Fatalf("clear-with: %v", err)
	}
	if c := cell(t, s, 1, 1); c != 4 {
		t.Fatalf("clear-with left %d", c)
	}
	if err := s.Action(ActionClear); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if c := cell(t, s, 1, 1); c != grid.Transparent {
		t.Fatalf("clear left %d", c)
	}
	if err := s.Action(ActionUndo); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if c := cell(t, s, 0, 0); c != 4 {
		t.Fatalf("undo of clear left %d", c)
	}
	if err := s.Action("explode"); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if err := s.ClearAll(150); err == nil {
		t.Fatalf("expected error for colour outside palette")
	}
}

func TestMetaActionCancelsPending(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	s.SelectTool(Line)
	click(s, 0, 0)
	s.Undo()
	if s.Pending().State() != 0 {
		t.Fatalf("undo left pending points")
	}
}

func TestReplace(t *testing.T) {
	s := newSession(t, WithSize(3, 1))
	click(s, 0, 0)
	click(s, 2, 0)
	if err := s.Replace(DefaultColor, 4); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if c := cell(t, s, 2, 0); c != 4 {
		t.Fatalf("(2,0) = %d", c)
	}
	if c := cell(t, s, 1, 0); c != grid.Transparent {
		t.Fatalf("(1,0) = %d", c)
	}
	u, _ := s.HistoryLen()
	if err := s.Replace(4, 4); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, _ := s.HistoryLen(); got != u {
		t.Fatalf("no-op replace recorded history")
	}
}

type recorder struct {
	redraws int
	sizes   []image.Point
}

func (r *recorder) Redraw(grid.Snapshot, palette.Palette) error { r.redraws++; return nil }
func (r *recorder) Resized(w, h int)                            { r.sizes = append(r.sizes, image.Pt(w, h)) }

func TestResizeCentres(t *testing.T) {
	g, _ := grid.New(2, 2, 3)
	rec := &recorder{}
	s := newSession(t, WithGrid(g), WithRenderer(rec))
	click(s, 0, 0)
	if err := s.ResizePainting(4, 4, 5); err != nil {
		t.Fatalf("ResizePainting: %v", err)
	}
	snap := s.Snapshot()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, _ := snap.At(x, y)
			inner := x >= 1 && x <= 2 && y >= 1 && y <= 2
			switch {
			case x == 1 && y == 1:
				if c != DefaultColor {
					t.Errorf("(1,1) = %d, want painted cell", c)
				}
			case inner && c != 3:
				t.Errorf("(%d,%d) = %d, want 3", x, y, c)
			case !inner && c != 5:
				t.Errorf("(%d,%d) = %d, want fill 5", x, y, c)
			}
		}
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("resize kept history")
	}
	if len(rec.sizes) != 1 || rec.sizes[0] != image.Pt(4, 4) {
		t.Fatalf("renderer sizes %v", rec.sizes)
	}
}

func TestResizeShrinkFloorsOffset(t *testing.T) {
	g, _ := grid.FromRows([][]grid.ColorIndex{{0, 1, 2}})
	s := newSession(t, WithGrid(g))
	if err := s.ResizePainting(2, 1, grid.Transparent); err != nil {
		t.Fatalf("ResizePainting: %v", err)
	}
	// offset floor((2-3)/2) = -1 keeps cells 1 and 2.
	if c := cell(t, s, 0, 0); c != 1 {
		t.Fatalf("(0,0) = %d, want 1", c)
	}
	if c := cell(t, s, 1, 0); c != 2 {
		t.Fatalf("(1,0) = %d, want 2", c)
	}
}

func TestResizeInvalidLeavesState(t *testing.T) {
	s := newSession(t, WithSize(3, 3))
	click(s, 1, 1)
	before := s.Snapshot()
	if err := s.ResizePainting(0, 5, 0); !errors.Is(err, grid.ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
	if !before.Equal(s.Snapshot().Grid()) || !s.CanUndo() {
		t.Fatalf("failed resize changed the session")
	}
}

func TestUndoAdoptsDimensions(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, WithSize(3, 3), WithRenderer(rec))
	click(s, 0, 0)
	if err := s.ReplacePainting(mustGrid(t, 5, 5)); err != nil {
		t.Fatalf("ReplacePainting: %v", err)
	}
	if s.CanUndo() {
		t.Fatalf("replace painting kept history")
	}
	click(s, 4, 4)
	s.Undo()
	if w, h := s.Size(); w != 5 || h != 5 {
		t.Fatalf("size %dx%d", w, h)
	}
	if len(rec.sizes) != 1 {
		t.Fatalf("renderer told about %d size changes, want 1", len(rec.sizes))
	}
}

func mustGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, grid.Transparent)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLoadAndEncode(t *testing.T) {
	s := newSession(t)
	click(s, 2, 3)
	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	other := newSession(t, WithSize(4, 4))
	if err := other.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Snapshot().Equal(other.Snapshot().Grid()) {
		t.Fatalf("loaded painting differs")
	}
	if err := other.Load("AAAA"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRedrawsCoalesce(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, WithSize(3, 3), WithRenderer(rec))
	for i := 0; i < 10; i++ {
		s.PointerMove(i%3, 0)
	}
	select {
	case <-s.Redraws():
	default:
		t.Fatalf("no redraw pending")
	}
	select {
	case <-s.Redraws():
		t.Fatalf("redraws were not coalesced")
	default:
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.redraws != 1 {
		t.Fatalf("renderer redraws %d", rec.redraws)
	}
}

// chanRenderer reports each Redraw on a channel so another goroutine can
// observe the renderer loop.
type chanRenderer struct {
	mu      sync.Mutex
	redraws int
	seen    chan grid.Snapshot
}

func (r *chanRenderer) Redraw(snap grid.Snapshot, _ palette.Palette) error {
	r.mu.Lock()
	r.redraws++
	r.mu.Unlock()
	r.seen <- snap
	return nil
}

func (r *chanRenderer) Resized(int, int) {}

func (r *chanRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redraws
}

func TestRunRendererCoalescesAndStops(t *testing.T) {
	rec := &chanRenderer{seen: make(chan grid.Snapshot)}
	s := newSession(t, WithSize(3, 3), WithRenderer(rec))
	for x := 0; x < 3; x++ {
		click(s, x, 0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunRenderer(ctx)
		close(done)
	}()

	select {
	case snap := <-rec.seen:
		if c, _ := snap.At(2, 0); c != DefaultColor {
			t.Fatalf("renderer saw stale painting, (2,0) = %d", c)
		}
	case <-time.After(time.Second):
		t.Fatal("renderer never redrawn")
	}
	select {
	case <-rec.seen:
		t.Fatal("coalesced mutations redrawn twice")
	case <-time.After(50 * time.Millisecond):
	}

	if err := s.ClearAll(5); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	select {
	case snap := <-rec.seen:
		if c, _ := snap.At(1, 1); c != 5 {
			t.Fatalf("renderer saw (1,1) = %d after clear", c)
		}
	case <-time.After(time.Second):
		t.Fatal("later mutation not redrawn")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunRenderer did not return after cancel")
	}
	if n := rec.count(); n != 2 {
		t.Fatalf("renderer redraws %d, want 2", n)
	}
}

func TestClearWithUsesColourAtCall(t *testing.T) {
	s := newSession(t, WithSize(4, 4), WithColor(2))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.SetColor(grid.ColorIndex(2 + i%2))
		}
	}()
	for i := 0; i < 50; i++ {
		if err := s.ClearWith(); err != nil {
			t.Fatalf("ClearWith: %v", err)
		}
		snap := s.Snapshot()
		first, _ := snap.At(0, 0)
		if first != 2 && first != 3 {
			t.Fatalf("cleared with %d", first)
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if c, _ := snap.At(x, y); c != first {
					t.Fatalf("clear left mixed colours: (%d,%d) = %d, (0,0) = %d", x, y, c, first)
				}
			}
		}
	}
	wg.Wait()
}

func TestExportUsesSnapshot(t *testing.T) {
	s := newSession(t)
	ch := s.Export(context.Background(), render.IRC{})
	click(s, 0, 0)
	select {
	case res := <-ch:
		if res.Err != nil {
			t.Fatalf("export: %v", res.Err)
		}
		if string(res.Data) != "\x03 \n" {
			t.Fatalf("export saw a later edit: %q", res.Data)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("export timed out")
	}
}

func TestExportCancelled(t *testing.T) {
	s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-s.Export(ctx, render.PNG{})
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", res.Err)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool, got, err)
		}
	}
	if got, _ := ParseTool("curve"); got != Bezier {
		t.Errorf("curve alias = %v", got)
	}
	if _, err := ParseTool("lasso"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}
