package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/theme"
)

// Paint holds defaults for new editing sessions.
type Paint struct {
	Size           string // wire size name, "default" or "hd"
	Color          string // initial drawing colour
	PaletteDefault string // background colour; empty keeps the palette's own
	HistoryDepth   int
}

// Export holds defaults for exported files.
type Export struct {
	Format     string
	CellWidth  int
	CellHeight int
	OutputDir  string
	Trim       bool
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Save   bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Paint  Paint
	Export Export
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Paint: Paint{
			Size:         "default",
			HistoryDepth: 64,
		},
		Export: Export{
			Format:     "png",
			CellWidth:  16,
			CellHeight: 24,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// LookupTheme resolves the configured theme: a [theme.NAME] section first,
// then the theme loader.
func (c *Config) LookupTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[paint]\n")
	fmt.Fprintf(&sb, "size = %s\n", c.Paint.Size)
	if c.Paint.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Paint.Color)
	}
	if c.Paint.PaletteDefault != "" {
		fmt.Fprintf(&sb, "palette_default = %s\n", c.Paint.PaletteDefault)
	}
	fmt.Fprintf(&sb, "history_depth = %d\n", c.Paint.HistoryDepth)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "cell_width = %d\n", c.Export.CellWidth)
	fmt.Fprintf(&sb, "cell_height = %d\n", c.Export.CellHeight)
	if c.Export.OutputDir != "" {
		fmt.Fprintf(&sb, "output_dir = %s\n", c.Export.OutputDir)
	}
	fmt.Fprintf(&sb, "trim = %v\n", c.Export.Trim)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, palette.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
