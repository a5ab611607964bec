package palette

import (
	"fmt"
	"image/color"

	"github.com/example/gridpaint/internal/grid"
)

// extendedHex is the 99 colour extended IRC table. Index 99 is left for
// grid.Transparent.
var extendedHex = [...]uint32{
	0xffffff, 0x000000, 0x000080, 0x008000, 0xff0000, 0xa52a2a, 0x800080, 0x808000,
	0xffff00, 0x00ff00, 0x008080, 0x00ffff, 0x0000ff, 0xff00ff, 0x808080, 0xd3d3d3,
	0x470000, 0x472100, 0x474700, 0x324700, 0x004700, 0x00472c, 0x004747, 0x002747,
	0x000047, 0x2e0047, 0x470047, 0x47002a, 0x740000, 0x743a00, 0x747400, 0x517400,
	0x007400, 0x007449, 0x007474, 0x004074, 0x000074, 0x4b0074, 0x740074, 0x740045,
	0xb50000, 0xb56300, 0xb5b500, 0x7db500, 0x00b500, 0x00b571, 0x00b5b5, 0x0063b5,
	0x0000b5, 0x7500b5, 0xb500b5, 0xb5006b, 0xff0000, 0xff8c00, 0xffff00, 0xb2ff00,
	0x00ff00, 0x00ffa0, 0x00ffff, 0x008cff, 0x0000ff, 0xa500ff, 0xff00ff, 0xff0098,
	0xff5959, 0xffb459, 0xffff71, 0xcfff60, 0x6fff6f, 0x65ffc9, 0x6dffff, 0x59b4ff,
	0x5959ff, 0xc459ff, 0xff66ff, 0xff59bc, 0xff9c9c, 0xffd39c, 0xffff9c, 0xe2ff9c,
	0x9cff9c, 0x9cffdb, 0x9cffff, 0x9cd3ff, 0x9c9cff, 0xdc9cff, 0xff9cff, 0xff94d3,
	0x000000, 0x131313, 0x282828, 0x363636, 0x4d4d4d, 0x656565, 0x818181, 0x9f9f9f,
	0xbcbcbc, 0xe2e2e2, 0xffffff,
}

var extendedNames = [...]string{
	"white", "black", "navy", "green", "red", "brown", "purple", "olive",
	"yellow", "lime", "teal", "cyan", "blue", "fuchsia", "grey", "lightgrey",
}

// Extended returns the extended IRC palette with the transparent sentinel
// as its background.
func Extended() Palette {
	entries := make([]PaletteColor, len(extendedHex))
	for i, v := range extendedHex {
		name := fmt.Sprintf("c%02d", i)
		if i < len(extendedNames) {
			name = extendedNames[i]
		}
		entries[i] = PaletteColor{
			Name:  name,
			Color: color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255},
		}
	}
	return Palette{entries: entries, def: grid.Transparent}
}
