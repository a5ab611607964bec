// Package palette maps grid colour indices to renderable colours.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/gridpaint/internal/grid"
)

// PaletteColor is a named palette entry.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// Palette is an ordered list of colours addressed by grid.ColorIndex.
type Palette struct {
	entries []PaletteColor
	def     grid.ColorIndex
}

// New builds a palette. def is the background used to initialise and pad
// paintings; it may be grid.Transparent.
func New(entries []PaletteColor, def grid.ColorIndex) (Palette, error) {
	if len(entries) == 0 {
		return Palette{}, fmt.Errorf("palette has no colours")
	}
	if len(entries) > int(grid.Transparent) {
		return Palette{}, fmt.Errorf("palette has %d colours, at most %d are addressable", len(entries), grid.Transparent)
	}
	if def != grid.Transparent && int(def) >= len(entries) {
		return Palette{}, fmt.Errorf("default colour %d outside palette of %d", def, len(entries))
	}
	return Palette{entries: append([]PaletteColor(nil), entries...), def: def}, nil
}

// Len returns the number of colours.
func (p Palette) Len() int { return len(p.entries) }

// Default returns the background index.
func (p Palette) Default() grid.ColorIndex { return p.def }

// WithDefault returns a copy of p using idx as the background.
func (p Palette) WithDefault(idx grid.ColorIndex) (Palette, error) {
	return New(p.entries, idx)
}

// Valid reports whether idx may be stored in a grid painted with p.
func (p Palette) Valid(idx grid.ColorIndex) bool {
	return idx == grid.Transparent || int(idx) < len(p.entries)
}

// Color returns the colour for idx. The boolean is false for the transparent
// sentinel and for indices past the end of the palette.
func (p Palette) Color(idx grid.ColorIndex) (color.RGBA, bool) {
	if idx == grid.Transparent || int(idx) >= len(p.entries) {
		return color.RGBA{}, false
	}
	return p.entries[idx].Color, true
}

// Entries returns a copy of the palette entries.
func (p Palette) Entries() []PaletteColor {
	return append([]PaletteColor(nil), p.entries...)
}

// Lookup resolves spec to a palette index. It accepts a decimal index,
// "transparent", a palette entry name, a CSS colour name or a #RRGGBB value;
// names and hex values resolve to the nearest palette entry.
func (p Palette) Lookup(spec string) (grid.ColorIndex, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return 0, fmt.Errorf("color cannot be empty")
	}
	if s == "transparent" || s == "none" {
		return grid.Transparent, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 || !p.Valid(grid.ColorIndex(n)) {
			return 0, fmt.Errorf("color index %d outside palette of %d", n, len(p.entries))
		}
		return grid.ColorIndex(n), nil
	}
	for i, e := range p.entries {
		if strings.EqualFold(e.Name, s) {
			return grid.ColorIndex(i), nil
		}
	}
	c, err := ParseColor(s)
	if err != nil {
		return 0, err
	}
	return p.Nearest(c), nil
}

// Nearest returns the palette entry closest to c by squared RGB distance.
func (p Palette) Nearest(c color.RGBA) grid.ColorIndex {
	best, bestDist := 0, -1
	for i, e := range p.entries {
		dr := int(e.Color.R) - int(c.R)
		dg := int(e.Color.G) - int(c.G)
		db := int(e.Color.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return grid.ColorIndex(best)
}

// ParseColor parses a CSS colour name or a #RRGGBB / #RRGGBBAA value.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	hex := spec[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

// Hex formats c as #RRGGBB, appending alpha when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
