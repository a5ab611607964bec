// Package grid holds the painting: a rectangular array of palette indices.
package grid

import (
	"errors"
	"fmt"
	"image"
)

// ColorIndex references an entry of the active palette.
type ColorIndex uint8

// Transparent marks a cell with no pixel. It is never looked up in a palette.
const Transparent ColorIndex = 99

// ErrInvalidDimension is returned when a width or height is not positive.
var ErrInvalidDimension = errors.New("invalid dimension")

// Unset is the cursor and control point value meaning "no position".
var Unset = image.Pt(-1, -1)

// Grid is a painting of Width x Height cells stored row-major as cells[y][x].
type Grid struct {
	width  int
	height int
	cells  [][]ColorIndex
}

// New creates a grid filled with c.
func New(width, height int, c ColorIndex) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	g := &Grid{width: width, height: height, cells: make([][]ColorIndex, height)}
	for y := range g.cells {
		row := make([]ColorIndex, width)
		for x := range row {
			row[x] = c
		}
		g.cells[y] = row
	}
	return g, nil
}

// FromRows builds a grid from a copy of rows. Every row must have the same
// non-zero length.
func FromRows(rows [][]ColorIndex) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty painting", ErrInvalidDimension)
	}
	width := len(rows[0])
	g := &Grid{width: width, height: len(rows), cells: make([][]ColorIndex, len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimension, y, len(row), width)
		}
		g.cells[y] = append([]ColorIndex(nil), row...)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Bounds returns the grid rectangle in cell coordinates.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

// In reports whether p addresses a cell.
func (g *Grid) In(p image.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get returns the color at (x, y). The boolean is false when the coordinate
// is outside the grid.
func (g *Grid) Get(x, y int) (ColorIndex, bool) {
	if !g.In(image.Pt(x, y)) {
		return 0, false
	}
	return g.cells[y][x], true
}

// Set writes c at (x, y). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, c ColorIndex) {
	if !g.In(image.Pt(x, y)) {
		return
	}
	g.cells[y][x] = c
}

// Fill rewrites every cell with c.
func (g *Grid) Fill(c ColorIndex) {
	for _, row := range g.cells {
		for x := range row {
			row[x] = c
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([][]ColorIndex, g.height)}
	for y, row := range g.cells {
		out.cells[y] = append([]ColorIndex(nil), row...)
	}
	return out
}

// Rows returns a deep copy of the cells.
func (g *Grid) Rows() [][]ColorIndex { return g.Clone().cells }

// Equal reports whether g and o have the same shape and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for y, row := range g.cells {
		orow := o.cells[y]
		for x, c := range row {
			if orow[x] != c {
				return false
			}
		}
	}
	return true
}

// Snapshot captures the current contents.
func (g *Grid) Snapshot() Snapshot { return Snapshot{g: g.Clone()} }
