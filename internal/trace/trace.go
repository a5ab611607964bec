// Package trace samples the cells covered by straight lines and quadratic
// curves. It never looks at a grid, so callers are responsible for clipping.
package trace

import (
	"image"
	"math"
)

// BezierStep is the parameter increment used when sampling curves.
const BezierStep = 0.005

// Line returns the Bresenham cells from p0 to p1, both ends included.
func Line(p0, p1 image.Point) []image.Point {
	dx := abs(p1.X - p0.X)
	dy := abs(p1.Y - p0.Y)
	sx := -1
	if p0.X < p1.X {
		sx = 1
	}
	sy := -1
	if p0.Y < p1.Y {
		sy = 1
	}
	err := dx - dy
	x, y := p0.X, p0.Y
	pts := make([]image.Point, 0, max(dx, dy)+1)
	for {
		pts = append(pts, image.Pt(x, y))
		if x == p1.X && y == p1.Y {
			return pts
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Quad samples the quadratic bezier from p0 through control ctrl to p1.
// Consecutive samples may land on the same cell.
func Quad(p0, ctrl, p1 image.Point) []image.Point {
	pts := make([]image.Point, 0, int(1/BezierStep)+1)
	for t := 0.0; t <= 1.0; t += BezierStep {
		mt := 1 - t
		a, b, c := mt*mt, 2*mt*t, t*t
		x := a*float64(p0.X) + b*float64(ctrl.X) + c*float64(p1.X)
		y := a*float64(p0.Y) + b*float64(ctrl.Y) + c*float64(p1.Y)
		pts = append(pts, image.Pt(int(math.Round(x)), int(math.Round(y))))
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
