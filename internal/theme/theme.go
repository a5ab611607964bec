package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colours used around the painting: the checkerboard shown
// through transparent cells, grid lines and the editor chrome.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Status and toolbar text

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	GridLine     color.RGBA
	Cursor       color.RGBA // Outline of the hovered cell
	Pending      color.RGBA // Marker drawn on pending line/curve anchors

	// Toolbar
	ToolbarBackground color.RGBA
	ToolActive        color.RGBA
	ButtonBorder      color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		CheckerLight:      color.RGBA{0x99, 0x99, 0x99, 255},
		CheckerDark:       color.RGBA{0x66, 0x66, 0x66, 255},
		GridLine:          color.RGBA{0, 0, 0, 255},
		Cursor:            color.RGBA{255, 255, 255, 255},
		Pending:           color.RGBA{255, 0, 255, 255},
		ToolbarBackground: color.RGBA{200, 200, 200, 255},
		ToolActive:        color.RGBA{150, 150, 150, 255},
		ButtonBorder:      color.RGBA{0, 0, 0, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:              "Dark",
		Background:        color.RGBA{32, 32, 32, 255},
		Foreground:        color.RGBA{230, 230, 230, 255},
		CheckerLight:      color.RGBA{0x44, 0x44, 0x44, 255},
		CheckerDark:       color.RGBA{0x2a, 0x2a, 0x2a, 255},
		GridLine:          color.RGBA{90, 90, 90, 255},
		Cursor:            color.RGBA{255, 255, 0, 255},
		Pending:           color.RGBA{0, 255, 255, 255},
		ToolbarBackground: color.RGBA{48, 48, 48, 255},
		ToolActive:        color.RGBA{80, 80, 80, 255},
		ButtonBorder:      color.RGBA{120, 120, 120, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"dark":    Dark,
}

// Builtin returns the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
