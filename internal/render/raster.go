package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

// Rasterize paints snap onto a transparent RGBA image using cells of cw x ch
// pixels.
func Rasterize(snap grid.Snapshot, pal palette.Palette, cw, ch int) (*image.RGBA, error) {
	if cw <= 0 || ch <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", grid.ErrInvalidDimension, cw, ch)
	}
	if snap.IsZero() {
		return nil, fmt.Errorf("%w: empty painting", ErrRenderContextUnavailable)
	}
	img := image.NewRGBA(image.Rect(0, 0, snap.Width()*cw, snap.Height()*ch))
	for y := 0; y < snap.Height(); y++ {
		for x, idx := range snap.Row(y) {
			c, ok := pal.Color(idx)
			if !ok {
				continue
			}
			r := image.Rect(x*cw, y*ch, (x+1)*cw, (y+1)*ch)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// Trim drops fully transparent rows from the top and bottom and the widest
// transparent margin shared by every remaining row on the left and right.
// A painting with no opaque cell trims to a single transparent cell.
func Trim(snap grid.Snapshot) grid.Snapshot {
	top, bottom := 0, snap.Height()
	for top < bottom && transparentRow(snap.Row(top)) {
		top++
	}
	for bottom > top && transparentRow(snap.Row(bottom-1)) {
		bottom--
	}
	if top == bottom {
		g, _ := grid.New(1, 1, grid.Transparent)
		return g.Snapshot()
	}
	left, right := snap.Width(), snap.Width()
	for y := top; y < bottom; y++ {
		row := snap.Row(y)
		l := 0
		for l < len(row) && row[l] == grid.Transparent {
			l++
		}
		r := 0
		for r < len(row) && row[len(row)-1-r] == grid.Transparent {
			r++
		}
		left = min(left, l)
		right = min(right, r)
	}
	rows := make([][]grid.ColorIndex, 0, bottom-top)
	for y := top; y < bottom; y++ {
		row := snap.Row(y)
		rows = append(rows, row[left:len(row)-right])
	}
	g, err := grid.FromRows(rows)
	if err != nil {
		return snap
	}
	return g.Snapshot()
}

func transparentRow(row []grid.ColorIndex) bool {
	for _, c := range row {
		if c != grid.Transparent {
			return false
		}
	}
	return true
}
