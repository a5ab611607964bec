package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

const (
	pdfMargin     = 10.0
	pdfPageWidth  = 210.0
	pdfPageHeight = 297.0
)

// PDF places the painting on a single A4 page with one filled rectangle per
// opaque cell. Cells keep the 2:3 aspect of the pixel output.
type PDF struct {
	// CellMM is the cell width in millimetres. Zero fits the page.
	CellMM float64
}

func (PDF) Ext() string { return ".pdf" }

func (p PDF) cellSize(snap grid.Snapshot) (float64, float64) {
	aspect := float64(DefaultCellHeight) / float64(DefaultCellWidth)
	cw := p.CellMM
	if cw <= 0 {
		cw = min((pdfPageWidth-2*pdfMargin)/float64(snap.Width()),
			(pdfPageHeight-2*pdfMargin)/(float64(snap.Height())*aspect))
	}
	return cw, cw * aspect
}

func (p PDF) Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error {
	if snap.IsZero() {
		return fmt.Errorf("%w: empty painting", ErrRenderContextUnavailable)
	}
	cw, ch := p.cellSize(snap)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("gridpaint", true)
	doc.AddPage()
	for y := 0; y < snap.Height(); y++ {
		for x, idx := range snap.Row(y) {
			c, ok := pal.Color(idx)
			if !ok {
				continue
			}
			doc.SetFillColor(int(c.R), int(c.G), int(c.B))
			doc.Rect(pdfMargin+float64(x)*cw, pdfMargin+float64(y)*ch, cw, ch, "F")
		}
	}
	if err := doc.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return doc.Output(w)
}
