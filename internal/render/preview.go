package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/gogpu/gg"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/theme"
)

// Preview draws a painting the way the editor shows it: a checkerboard behind
// transparent cells and, optionally, lines between cells.
type Preview struct {
	// Cell is the square cell size in pixels; zero means DefaultCellWidth.
	Cell  int
	Grid  bool
	Theme *theme.Theme
}

func (Preview) Ext() string { return ".png" }

// Render returns the preview image.
func (p Preview) Render(snap grid.Snapshot, pal palette.Palette) (*image.RGBA, error) {
	cell := p.Cell
	if cell == 0 {
		cell = DefaultCellWidth
	}
	if cell < 0 || snap.IsZero() {
		return nil, fmt.Errorf("%w: %dx%d cells of %dpx", ErrRenderContextUnavailable, snap.Width(), snap.Height(), cell)
	}
	th := p.Theme
	if th == nil {
		th = theme.Default()
	}
	w, h := snap.Width()*cell, snap.Height()*cell

	dc := gg.NewContext(w, h)
	defer dc.Close()

	half := max(cell/2, 1)
	dc.SetColor(th.CheckerLight)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderContextUnavailable, err)
	}
	dc.SetColor(th.CheckerDark)
	for y := 0; y < h; y += half {
		for x := 0; x < w; x += half {
			if (x/half+y/half)%2 == 1 {
				dc.DrawRectangle(float64(x), float64(y), float64(half), float64(half))
			}
		}
	}
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderContextUnavailable, err)
	}

	for y := 0; y < snap.Height(); y++ {
		for x, idx := range snap.Row(y) {
			c, ok := pal.Color(idx)
			if !ok {
				continue
			}
			dc.SetColor(c)
			dc.DrawRectangle(float64(x*cell), float64(y*cell), float64(cell), float64(cell))
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrRenderContextUnavailable, err)
			}
		}
	}

	if p.Grid {
		dc.SetColor(th.GridLine)
		dc.SetLineWidth(1)
		for x := 0; x <= snap.Width(); x++ {
			dc.MoveTo(float64(x*cell)+0.5, 0)
			dc.LineTo(float64(x*cell)+0.5, float64(h))
		}
		for y := 0; y <= snap.Height(); y++ {
			dc.MoveTo(0, float64(y*cell)+0.5)
			dc.LineTo(float64(w), float64(y*cell)+0.5)
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRenderContextUnavailable, err)
		}
	}

	src := dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}

func (p Preview) Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error {
	img, err := p.Render(snap, pal)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
