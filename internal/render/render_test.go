package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

func painting(t *testing.T, w, h int, cells map[[2]int]grid.ColorIndex) grid.Snapshot {
	t.Helper()
	g, err := grid.New(w, h, grid.Transparent)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for p, c := range cells {
		g.Set(p[0], p[1], c)
	}
	return g.Snapshot()
}

func TestRasterizeSkipsTransparent(t *testing.T) {
	snap := painting(t, 2, 1, map[[2]int]grid.ColorIndex{{0, 0}: 4})
	img, err := Rasterize(snap, palette.Extended(), 3, 2)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 2 {
		t.Fatalf("bounds %v", b)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("cell (0,0) block pixel = %v, want red", got)
	}
	if got := img.RGBAAt(3, 0); got.A != 0 {
		t.Errorf("transparent cell painted %v", got)
	}
}

func TestRasterizeRejectsBadCell(t *testing.T) {
	snap := painting(t, 1, 1, nil)
	if _, err := Rasterize(snap, palette.Extended(), 0, 4); !errors.Is(err, grid.ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestTrim(t *testing.T) {
	snap := painting(t, 5, 4, map[[2]int]grid.ColorIndex{{1, 1}: 2, {3, 2}: 5})
	got := Trim(snap)
	if got.Width() != 3 || got.Height() != 2 {
		t.Fatalf("trimmed to %dx%d, want 3x2", got.Width(), got.Height())
	}
	if c, _ := got.At(0, 0); c != 2 {
		t.Errorf("top-left %d, want 2", c)
	}
	if c, _ := got.At(2, 1); c != 5 {
		t.Errorf("bottom-right %d, want 5", c)
	}
}

func TestTrimAllTransparent(t *testing.T) {
	got := Trim(painting(t, 4, 4, nil))
	if got.Width() != 1 || got.Height() != 1 {
		t.Fatalf("trimmed to %dx%d, want 1x1", got.Width(), got.Height())
	}
	if c, _ := got.At(0, 0); c != grid.Transparent {
		t.Fatalf("cell %d, want transparent", c)
	}
}

func TestPNGEncode(t *testing.T) {
	snap := painting(t, 2, 2, map[[2]int]grid.ColorIndex{{1, 1}: 1})
	var buf bytes.Buffer
	if err := (PNG{}).Encode(&buf, snap, palette.Extended()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2*DefaultCellWidth || b.Dy() != 2*DefaultCellHeight {
		t.Fatalf("bounds %v", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("transparent cell has alpha %d", a)
	}
	r, g, b, a := img.At(DefaultCellWidth, DefaultCellHeight).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("black cell = %d,%d,%d,%d", r, g, b, a)
	}
}

func TestPNGTrim(t *testing.T) {
	snap := painting(t, 4, 4, map[[2]int]grid.ColorIndex{{2, 2}: 1})
	img, err := PNG{CellWidth: 1, CellHeight: 1, Trim: true}.Image(snap, palette.Extended())
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("bounds %v, want 1x1", b)
	}
}

func TestPreviewUnavailable(t *testing.T) {
	if _, err := (Preview{}).Render(grid.Snapshot{}, palette.Extended()); !errors.Is(err, ErrRenderContextUnavailable) {
		t.Fatalf("expected ErrRenderContextUnavailable, got %v", err)
	}
	snap := painting(t, 1, 1, nil)
	if _, err := (Preview{Cell: -1}).Render(snap, palette.Extended()); !errors.Is(err, ErrRenderContextUnavailable) {
		t.Fatalf("expected ErrRenderContextUnavailable, got %v", err)
	}
}

func TestPDFEncode(t *testing.T) {
	snap := painting(t, 26, 15, map[[2]int]grid.ColorIndex{{0, 0}: 4})
	var buf bytes.Buffer
	if err := (PDF{}).Encode(&buf, snap, palette.Extended()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestIRCEncode(t *testing.T) {
	snap := painting(t, 4, 3, map[[2]int]grid.ColorIndex{{1, 1}: 4, {2, 1}: 4})
	var buf bytes.Buffer
	if err := (IRC{}).Encode(&buf, snap, palette.Extended()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := buf.String(), "\x034,4@@\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTerminalEncode(t *testing.T) {
	snap := painting(t, 3, 1, map[[2]int]grid.ColorIndex{{0, 0}: 4, {2, 0}: 4})
	var buf bytes.Buffer
	if err := (Terminal{}).Encode(&buf, snap, palette.Extended()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\x1b[48;2;255;0;0m \x1b[0m \x1b[48;2;255;0;0m \x1b[0m \n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		enc, ok := ForFormat(name)
		if !ok {
			t.Errorf("ForFormat(%q) missing", name)
			continue
		}
		if !strings.HasPrefix(enc.Ext(), ".") {
			t.Errorf("%s ext %q", name, enc.Ext())
		}
	}
	if _, ok := ForFormat("bmp"); ok {
		t.Errorf("unexpected encoder for bmp")
	}
}
