package grid

// Snapshot is a read-only copy of a grid. It is safe to hand to another
// goroutine while the source grid keeps changing.
type Snapshot struct {
	g *Grid
}

// Width returns the snapshot width, or 0 for the zero Snapshot.
func (s Snapshot) Width() int {
	if s.g == nil {
		return 0
	}
	return s.g.width
}

// Height returns the snapshot height, or 0 for the zero Snapshot.
func (s Snapshot) Height() int {
	if s.g == nil {
		return 0
	}
	return s.g.height
}

// At returns the color at (x, y) and whether the coordinate was in range.
func (s Snapshot) At(x, y int) (ColorIndex, bool) {
	if s.g == nil {
		return 0, false
	}
	return s.g.Get(x, y)
}

// Row returns a copy of row y.
func (s Snapshot) Row(y int) []ColorIndex {
	if s.g == nil || y < 0 || y >= s.g.height {
		return nil
	}
	return append([]ColorIndex(nil), s.g.cells[y]...)
}

// Grid returns a mutable copy of the snapshot.
func (s Snapshot) Grid() *Grid {
	if s.g == nil {
		return nil
	}
	return s.g.Clone()
}

// Equal reports whether the snapshot matches g cell for cell.
func (s Snapshot) Equal(g *Grid) bool { return s.g.Equal(g) }

// IsZero reports whether the snapshot holds no grid.
func (s Snapshot) IsZero() bool { return s.g == nil }
