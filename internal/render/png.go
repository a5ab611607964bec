package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

// PNG encodes a paletted PNG. Zero cell sizes select DefaultCellWidth and
// DefaultCellHeight.
type PNG struct {
	CellWidth  int
	CellHeight int
	// Trim removes the transparent border first.
	Trim bool
}

func (PNG) Ext() string { return ".png" }

// Image builds the paletted image. Palette slot 0 is fully transparent and
// entry i of pal is slot i+1.
func (p PNG) Image(snap grid.Snapshot, pal palette.Palette) (*image.Paletted, error) {
	cw, ch := p.CellWidth, p.CellHeight
	if cw == 0 {
		cw = DefaultCellWidth
	}
	if ch == 0 {
		ch = DefaultCellHeight
	}
	if p.Trim {
		snap = Trim(snap)
	}
	if cw < 0 || ch < 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", grid.ErrInvalidDimension, cw, ch)
	}
	if snap.IsZero() {
		return nil, fmt.Errorf("%w: empty painting", ErrRenderContextUnavailable)
	}
	cp := color.Palette{color.RGBA{}}
	for _, e := range pal.Entries() {
		cp = append(cp, e.Color)
	}
	img := image.NewPaletted(image.Rect(0, 0, snap.Width()*cw, snap.Height()*ch), cp)
	for y := 0; y < snap.Height(); y++ {
		for x, idx := range snap.Row(y) {
			if _, ok := pal.Color(idx); !ok {
				continue
			}
			slot := uint8(idx) + 1
			for py := y * ch; py < (y+1)*ch; py++ {
				row := img.Pix[py*img.Stride:]
				for px := x * cw; px < (x+1)*cw; px++ {
					row[px] = slot
				}
			}
		}
	}
	return img, nil
}

func (p PNG) Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error {
	img, err := p.Image(snap, pal)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
