package trace

import "image"

// State describes how many control points are pending.
type State int

const (
	// Unset has no control point.
	Unset State = iota
	// PendingLine has a start point.
	PendingLine
	// PendingCurve has a start point and a curve control point.
	PendingCurve
)

func (s State) String() string {
	switch s {
	case PendingLine:
		return "line"
	case PendingCurve:
		return "curve"
	default:
		return "unset"
	}
}

// unset mirrors grid.Unset; trace stays free of the grid package.
var unset = image.Pt(-1, -1)

// ControlPoints holds the anchors of a line or curve being composed.
// Empty slots are (-1,-1).
type ControlPoints [2]image.Point

// NewControlPoints returns an empty pair.
func NewControlPoints() ControlPoints { return ControlPoints{unset, unset} }

// State reports which stage of composition the points describe.
func (cp ControlPoints) State() State {
	switch {
	case cp[0] == unset:
		return Unset
	case cp[1] == unset:
		return PendingLine
	default:
		return PendingCurve
	}
}

// Clear empties both slots.
func (cp *ControlPoints) Clear() { *cp = NewControlPoints() }

// Approx returns the cells that committing at cursor would paint. With no
// pending point only the cursor itself is returned.
func (cp ControlPoints) Approx(cursor image.Point) []image.Point {
	switch cp.State() {
	case PendingLine:
		return Line(cp[0], cursor)
	case PendingCurve:
		return Quad(cp[0], cp[1], cursor)
	default:
		return []image.Point{cursor}
	}
}
