// Package fill recolours regions of a grid.
package fill

import (
	"image"

	"github.com/example/gridpaint/internal/grid"
)

var neighbours = [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Flood repaints the 4-connected region of same-coloured cells containing
// start with target. It reports whether anything changed; starting outside
// the grid or on a cell already coloured target is a no-op.
func Flood(g *grid.Grid, start image.Point, target grid.ColorIndex) bool {
	origin, ok := g.Get(start.X, start.Y)
	if !ok || origin == target {
		return false
	}
	// A painted cell can no longer match origin, so the write doubles as the
	// visited mark and each cell is pushed at most four times.
	stack := []image.Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c, ok := g.Get(p.X, p.Y); !ok || c != origin {
			continue
		}
		g.Set(p.X, p.Y, target)
		for _, d := range neighbours {
			stack = append(stack, p.Add(d))
		}
	}
	return true
}

// Replace recolours every cell holding old with repl and reports whether any
// cell changed.
func Replace(g *grid.Grid, old, repl grid.ColorIndex) bool {
	if old == repl {
		return false
	}
	changed := false
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if c, _ := g.Get(x, y); c == old {
				g.Set(x, y, repl)
				changed = true
			}
		}
	}
	return changed
}
