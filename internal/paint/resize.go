package paint

import (
	"fmt"

	"github.com/example/gridpaint/internal/grid"
)

// ResizePainting changes the painting to width x height cells, keeping the
// old content centred and padding with fill. The history is discarded.
// Invalid sizes or colours leave the session untouched.
func (s *Session) ResizePainting(width, height int, fill grid.ColorIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pal.Valid(fill) {
		return fmt.Errorf("resize fill color %d outside palette of %d", fill, s.pal.Len())
	}
	ng, err := grid.New(width, height, fill)
	if err != nil {
		return err
	}
	s.endGesture()
	s.points.Clear()

	ox := floorHalf(width - s.grid.Width())
	oy := floorHalf(height - s.grid.Height())
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			c, _ := s.grid.Get(x, y)
			ng.Set(x+ox, y+oy, c)
		}
	}
	s.log.Debug("painting resized", "from", fmt.Sprintf("%dx%d", s.grid.Width(), s.grid.Height()), "to", fmt.Sprintf("%dx%d", width, height))
	s.install(ng)
	s.hist.Reset()
	return nil
}

// ReplacePainting installs a copy of g wholesale, adopting its size, and
// discards the history.
func (s *Session) ReplacePainting(g *grid.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: no painting", grid.ErrInvalidDimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	s.points.Clear()
	s.install(g.Clone())
	s.hist.Reset()
	return nil
}

// install swaps in g and tells the renderer when the dimensions change.
func (s *Session) install(g *grid.Grid) {
	resized := g.Width() != s.grid.Width() || g.Height() != s.grid.Height()
	s.grid = g
	if resized {
		s.renderer.Resized(g.Width(), g.Height())
	}
	s.invalidate()
}

// floorHalf is floor(n/2) for negative n as well.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}
