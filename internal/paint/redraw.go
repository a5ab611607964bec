package paint

import (
	"context"

	"github.com/example/gridpaint/internal/render"
)

func (s *Session) invalidate() {
	select {
	case s.redraw <- struct{}{}:
	default:
	}
}

// Invalidate requests a redraw. Requests made before the renderer catches up
// are merged into one.
func (s *Session) Invalidate() { s.invalidate() }

// Redraws delivers a value whenever a redraw is pending.
func (s *Session) Redraws() <-chan struct{} { return s.redraw }

// Flush hands the current painting to the renderer.
func (s *Session) Flush() error {
	s.mu.Lock()
	snap, pal, r := s.grid.Snapshot(), s.pal, s.renderer
	s.mu.Unlock()
	return r.Redraw(snap, pal)
}

// RunRenderer flushes every coalesced redraw until ctx is done. Render
// errors are logged and do not stop the loop.
func (s *Session) RunRenderer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.redraw:
			if err := s.Flush(); err != nil {
				s.log.Warn("redraw failed", "error", err)
			}
		}
	}
}

// Export encodes the painting as it is now with enc. The snapshot is taken
// before Export returns, so later edits never reach the result. Exactly one
// Result is delivered on the returned channel.
func (s *Session) Export(ctx context.Context, enc render.Encoder) <-chan render.Result {
	out := make(chan render.Result, 1)
	s.mu.Lock()
	snap, pal := s.grid.Snapshot(), s.pal
	s.mu.Unlock()
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- render.Result{Ext: enc.Ext(), Err: err}
			return
		}
		res := render.EncodeBytes(enc, snap, pal)
		if res.Err != nil {
			s.log.Warn("export failed", "ext", res.Ext, "error", res.Err)
		}
		out <- res
	}()
	return out
}
