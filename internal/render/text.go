package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/palette"
)

// noColor never matches a cell, forcing a colour code at the start of a row.
const noColor = grid.ColorIndex(100)

// Terminal writes the trimmed painting as 24-bit ANSI background colours,
// one space per cell.
type Terminal struct{}

func (Terminal) Ext() string { return ".ans" }

func (Terminal) Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error {
	snap = Trim(snap)
	bw := bufio.NewWriter(w)
	for y := 0; y < snap.Height(); y++ {
		last := noColor
		for _, idx := range snap.Row(y) {
			if idx == last {
				bw.WriteByte(' ')
				continue
			}
			last = idx
			writeTermCell(bw, pal, idx)
		}
		writeTermCell(bw, pal, grid.Transparent)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeTermCell(w *bufio.Writer, pal palette.Palette, idx grid.ColorIndex) {
	c, ok := pal.Color(idx)
	if !ok {
		w.WriteString("\x1b[0m ")
		return
	}
	fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm ", c.R, c.G, c.B)
}

// IRC writes the trimmed painting with mIRC colour codes. The codes address
// the extended IRC table directly, so the palette is only used to decide
// which cells are transparent.
type IRC struct{}

func (IRC) Ext() string { return ".irc" }

func (IRC) Encode(w io.Writer, snap grid.Snapshot, pal palette.Palette) error {
	snap = Trim(snap)
	bw := bufio.NewWriter(w)
	for y := 0; y < snap.Height(); y++ {
		last := noColor
		for _, idx := range snap.Row(y) {
			_, opaque := pal.Color(idx)
			if !opaque {
				idx = grid.Transparent
			}
			switch {
			case idx == last && opaque:
				bw.WriteByte('@')
			case idx == last:
				bw.WriteByte(' ')
			case !opaque:
				bw.WriteString("\x03 ")
			default:
				fmt.Fprintf(bw, "\x03%d,%d@", idx, idx)
			}
			last = idx
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
