package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/render"
	"github.com/example/gridpaint/internal/theme"
	"github.com/example/gridpaint/internal/trace"
)

// paintState is everything drawFrame needs, captured on the event loop.
type paintState struct {
	layout  layout
	snap    grid.Snapshot
	pal     palette.Palette
	theme   *theme.Theme
	tool    paint.Tool
	color   grid.ColorIndex
	cursor  image.Point
	pending trace.ControlPoints
	approx  []image.Point
	grid    bool

	message      string
	messageUntil time.Time
	now          time.Time
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outlineRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func drawLabel(dst *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(text)
}

// drawFrame composes one window frame into dst.
func drawFrame(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	fillRect(dst, dst.Bounds(), th.Background)

	drawCanvas(dst, st)
	drawToolbar(dst, st)

	fillRect(dst, l.status, th.ToolbarBackground)
	drawLabel(dst, 4, l.status.Min.Y+16, statusLine(st), th.Foreground)

	if st.message != "" && st.now.Before(st.messageUntil) {
		d := &font.Drawer{Face: basicfont.Face7x13}
		w := d.MeasureString(st.message).Ceil()
		x := l.canvas.Min.X + (l.canvas.Dx()-w)/2
		y := l.canvas.Min.Y + l.canvas.Dy()/2
		box := image.Rect(x-8, y-16, x+w+8, y+8)
		fillRect(dst, box, th.ToolbarBackground)
		outlineRect(dst, box, th.ButtonBorder)
		drawLabel(dst, x, y, st.message, th.Foreground)
	}
}

func drawCanvas(dst *image.RGBA, st paintState) {
	th, l := st.theme, st.layout
	if st.snap.IsZero() || l.cell <= 0 {
		return
	}
	drawCheckerboard(dst, l.canvas, max(l.cell/2, 1), th.CheckerLight, th.CheckerDark)

	img, err := render.Rasterize(st.snap, st.pal, 1, 1)
	if err == nil {
		xdraw.NearestNeighbor.Scale(dst, l.canvas, img, img.Bounds(), draw.Over, nil)
	}

	if st.grid && l.cell >= minCell*2 {
		for x := 0; x <= st.snap.Width(); x++ {
			px := l.canvas.Min.X + x*l.cell
			fillRect(dst, image.Rect(px, l.canvas.Min.Y, px+1, l.canvas.Max.Y), th.GridLine)
		}
		for y := 0; y <= st.snap.Height(); y++ {
			py := l.canvas.Min.Y + y*l.cell
			fillRect(dst, image.Rect(l.canvas.Min.X, py, l.canvas.Max.X, py+1), th.GridLine)
		}
	}

	// Preview of the line or curve a commit at the cursor would paint.
	if c, ok := st.pal.Color(st.color); ok && len(st.approx) > 1 {
		c.A = 160
		for _, p := range st.approx {
			r := l.cellRect(p).Intersect(l.canvas)
			draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
		}
	}
	for _, p := range st.pending {
		if p != grid.Unset {
			outlineRect(dst, l.cellRect(p).Inset(1), th.Pending)
		}
	}
	if st.cursor != grid.Unset {
		outlineRect(dst, l.cellRect(st.cursor), th.Cursor)
	}
}

func drawToolbar(dst *image.RGBA, st paintState) {
	th, l := st.theme, st.layout
	fillRect(dst, image.Rect(0, 0, toolbarWidth, l.status.Min.Y), th.ToolbarBackground)
	for _, b := range l.buttons {
		bg := th.ToolbarBackground
		if b.isTool && b.tool == st.tool {
			bg = th.ToolActive
		}
		fillRect(dst, b.rect, bg)
		outlineRect(dst, b.rect, th.ButtonBorder)
		drawLabel(dst, b.rect.Min.X+4, b.rect.Min.Y+14, b.label, th.Foreground)
	}
	for _, s := range l.swatches {
		if c, ok := st.pal.Color(s.color); ok {
			fillRect(dst, s.rect, c)
		} else {
			drawCheckerboard(dst, s.rect, swatchSize/2, th.CheckerLight, th.CheckerDark)
		}
		if s.color == st.color {
			outlineRect(dst, s.rect.Inset(-1), th.Cursor)
			outlineRect(dst, s.rect.Inset(-2), th.ButtonBorder)
		}
	}
}

func statusLine(st paintState) string {
	name := "transparent"
	if st.color != grid.Transparent {
		if entries := st.pal.Entries(); int(st.color) < len(entries) {
			name = entries[st.color].Name
		}
	}
	s := fmt.Sprintf("%s  colour %d (%s)  %dx%d", st.tool, st.color, name, st.snap.Width(), st.snap.Height())
	if st.cursor != grid.Unset {
		s += fmt.Sprintf("  @%d,%d", st.cursor.X, st.cursor.Y)
	}
	if state := st.pending.State(); state != trace.Unset {
		s += "  pending " + state.String()
	}
	return s
}
