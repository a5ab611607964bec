// Package wire converts paintings to and from their compact transport form:
// one byte per cell, row-major, base64 encoded, with the dimensions implied
// by the cell count.
package wire

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/gridpaint/internal/grid"
)

var (
	// ErrDecode is returned for payloads that are not valid paintings.
	ErrDecode = errors.New("decode painting")
	// ErrUnsupportedSize is returned when encoding a grid whose size has no
	// entry in the size table.
	ErrUnsupportedSize = errors.New("unsupported painting size")
)

// Size is a supported painting size.
type Size struct {
	Name   string
	Width  int
	Height int
}

// Cells returns Width*Height.
func (s Size) Cells() int { return s.Width * s.Height }

func (s Size) String() string { return fmt.Sprintf("%s (%dx%d)", s.Name, s.Width, s.Height) }

var (
	// Default is the standard painting size.
	Default = Size{Name: "default", Width: 26, Height: 15}
	// HD is the large painting size.
	HD = Size{Name: "hd", Width: 36, Height: 22}
)

var sizes = map[int]Size{
	Default.Cells(): Default,
	HD.Cells():      HD,
}

// Sizes lists the supported sizes, smallest first.
func Sizes() []Size {
	out := make([]Size, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cells() < out[j].Cells() })
	return out
}

// SizeFor returns the size registered under name.
func SizeFor(name string) (Size, bool) {
	for _, s := range sizes {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Size{}, false
}

// SizeOf returns the table entry matching the grid's dimensions.
func SizeOf(g *grid.Grid) (Size, bool) {
	s, ok := sizes[g.Width()*g.Height()]
	if !ok || s.Width != g.Width() || s.Height != g.Height() {
		return Size{}, false
	}
	return s, true
}

// EncodeRaw returns the row-major cell bytes of g.
func EncodeRaw(g *grid.Grid) ([]byte, error) {
	if _, ok := SizeOf(g); !ok {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedSize, g.Width(), g.Height())
	}
	out := make([]byte, 0, g.Width()*g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, _ := g.Get(x, y)
			out = append(out, byte(c))
		}
	}
	return out, nil
}

// DecodeRaw builds a grid from row-major cell bytes.
func DecodeRaw(data []byte) (*grid.Grid, error) {
	size, ok := sizes[len(data)]
	if !ok {
		return nil, fmt.Errorf("%w: %d cells matches no known size", ErrDecode, len(data))
	}
	rows := make([][]grid.ColorIndex, size.Height)
	for y := range rows {
		row := make([]grid.ColorIndex, size.Width)
		for x := range row {
			b := data[y*size.Width+x]
			if b > byte(grid.Transparent) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds invalid colour %d", ErrDecode, x, y, b)
			}
			row[x] = grid.ColorIndex(b)
		}
		rows[y] = row
	}
	return grid.FromRows(rows)
}

// Encode returns the base64 transport form of g.
func Encode(g *grid.Grid) (string, error) {
	raw, err := EncodeRaw(g)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses the base64 transport form.
func Decode(s string) (*grid.Grid, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return DecodeRaw(raw)
}
