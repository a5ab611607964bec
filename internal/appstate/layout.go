package appstate

import (
	"image"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/paint"
)

const (
	toolbarWidth  = 100
	bottomHeight  = 24
	buttonHeight  = 20
	swatchSize    = 12
	swatchSpacing = 14
	minCell       = 4
)

// button is a clickable toolbar entry. Exactly one of tool, action or key is
// meaningful.
type button struct {
	label  string
	tool   paint.Tool
	isTool bool
	action string
	rect   image.Rectangle
}

// swatch is a palette entry in the toolbar.
type swatch struct {
	color grid.ColorIndex
	rect  image.Rectangle
}

// layout is where everything sits for one window size and painting size.
type layout struct {
	width, height int
	buttons       []button
	swatches      []swatch
	canvas        image.Rectangle
	cell          int
	status        image.Rectangle
}

func newLayout(width, height, cols, rows, paletteLen int) layout {
	l := layout{width: width, height: height}
	y := 4
	for _, t := range paint.Tools() {
		l.buttons = append(l.buttons, button{label: toolLabel(t), tool: t, isTool: true, rect: image.Rect(4, y, toolbarWidth-4, y+buttonHeight)})
		y += buttonHeight + 2
	}
	y += 4
	for _, a := range paint.Actions() {
		l.buttons = append(l.buttons, button{label: actionLabel(a), action: a, rect: image.Rect(4, y, toolbarWidth-4, y+buttonHeight)})
		y += buttonHeight + 2
	}
	y += 4
	x := 4
	add := func(c grid.ColorIndex) {
		l.swatches = append(l.swatches, swatch{color: c, rect: image.Rect(x, y, x+swatchSize, y+swatchSize)})
		x += swatchSpacing
		if x+swatchSize > toolbarWidth-2 {
			x = 4
			y += swatchSpacing
		}
	}
	for i := 0; i < paletteLen; i++ {
		add(grid.ColorIndex(i))
	}
	add(grid.Transparent)

	l.status = image.Rect(0, height-bottomHeight, width, height)
	availW := width - toolbarWidth - 8
	availH := height - bottomHeight - 8
	if cols > 0 && rows > 0 {
		l.cell = max(min(availW/cols, availH/rows), minCell)
	}
	l.canvas = image.Rect(toolbarWidth+4, 4, toolbarWidth+4+cols*l.cell, 4+rows*l.cell)
	return l
}

// cellAt maps a window position to a painting cell. Positions outside the
// canvas map outside the painting.
func (l layout) cellAt(p image.Point) image.Point {
	if l.cell <= 0 || !p.In(l.canvas) {
		return grid.Unset
	}
	d := p.Sub(l.canvas.Min)
	return image.Pt(d.X/l.cell, d.Y/l.cell)
}

// cellRect is the window rectangle covering cell c.
func (l layout) cellRect(c image.Point) image.Rectangle {
	origin := l.canvas.Min.Add(c.Mul(l.cell))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(l.cell, l.cell))}
}

func (l layout) buttonAt(p image.Point) (button, bool) {
	for _, b := range l.buttons {
		if p.In(b.rect) {
			return b, true
		}
	}
	return button{}, false
}

func (l layout) swatchAt(p image.Point) (grid.ColorIndex, bool) {
	for _, s := range l.swatches {
		if p.In(s.rect) {
			return s.color, true
		}
	}
	return 0, false
}

// preferredSize is the window size that shows cols x rows cells at cell
// pixels each next to the toolbar.
func preferredSize(cols, rows, cell, paletteLen int) (int, int) {
	probe := newLayout(toolbarWidth, 0, 0, 0, paletteLen)
	toolbarH := 0
	if n := len(probe.swatches); n > 0 {
		toolbarH = probe.swatches[n-1].rect.Max.Y + 4
	}
	w := toolbarWidth + 8 + cols*cell
	h := max(rows*cell+8, toolbarH) + bottomHeight
	return w, h
}

func toolLabel(t paint.Tool) string {
	switch t {
	case paint.Pencil:
		return "P:Pencil"
	case paint.Line:
		return "L:Line"
	case paint.Bezier:
		return "B:Curve"
	case paint.Bucket:
		return "F:Fill"
	}
	return t.String()
}

func actionLabel(a string) string {
	switch a {
	case paint.ActionUndo:
		return "U:Undo"
	case paint.ActionRedo:
		return "R:Redo"
	case paint.ActionClear:
		return "C:Clear"
	case paint.ActionClearWith:
		return "W:Clear with"
	}
	return a
}
