package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/gridpaint/internal/clipboard"
	"github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/render"
)

// exportCmd renders a painting file with one of the encoders.
type exportCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	output      string
	format      string
	cellWidth   int
	cellHeight  int
	trim        bool
	grid        bool
	toClipboard bool
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

// writeImageToClipboard is swapped in tests.
var writeImageToClipboard = clipboard.WriteImage

var writeTextToClipboard = clipboard.WriteText

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	cfg := r.configOrDefault()
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "painting file (\"-\" for stdin)")
	fs.StringVar(&e.output, "output", "", "output file; \"-\" writes to stdout")
	fs.StringVar(&e.format, "format", cfg.Export.Format, "output format ("+strings.Join(render.Formats(), ", ")+")")
	fs.IntVar(&e.cellWidth, "cell-width", cfg.Export.CellWidth, "cell width in pixels for png")
	fs.IntVar(&e.cellHeight, "cell-height", cfg.Export.CellHeight, "cell height in pixels for png")
	fs.BoolVar(&e.trim, "trim", cfg.Export.Trim, "drop the transparent border for png")
	fs.BoolVar(&e.grid, "grid", true, "draw lines between cells for preview")
	fs.BoolVar(&e.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&e.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" && fs.NArg() == 1 {
		e.file = fs.Arg(0)
	}
	if e.file == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

// encoder builds the configured encoder for the chosen format.
func (e *exportCmd) encoder() (render.Encoder, error) {
	enc, ok := render.ForFormat(strings.ToLower(e.format))
	if !ok {
		return nil, fmt.Errorf("unknown format %q", e.format)
	}
	switch v := enc.(type) {
	case render.PNG:
		v.CellWidth, v.CellHeight, v.Trim = e.cellWidth, e.cellHeight, e.trim
		return v, nil
	case render.Preview:
		v.Cell, v.Grid = e.cellWidth, e.grid
		if e.root != nil {
			v.Theme = e.root.activeTheme
		}
		return v, nil
	}
	return enc, nil
}

// outputPath names the export after the painting in the configured output
// directory.
func (e *exportCmd) outputPath(ext string) string {
	if e.output != "" {
		return e.output
	}
	base := "painting"
	if e.file != "-" {
		base = strings.TrimSuffix(filepath.Base(e.file), filepath.Ext(e.file))
	}
	name := base + ext
	if dir := e.root.configOrDefault().Export.OutputDir; dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}

func (e *exportCmd) Run() error {
	g, err := readPainting(e.file)
	if err != nil {
		return err
	}
	enc, err := e.encoder()
	if err != nil {
		return err
	}
	opts, err := sessionOptions(e.root.configOrDefault(), "", "")
	if err != nil {
		return err
	}
	s, err := paint.New(append(opts, paint.WithGrid(g))...)
	if err != nil {
		return err
	}
	res := <-s.Export(context.Background(), enc)
	if res.Err != nil {
		return fmt.Errorf("export %s: %w", e.format, res.Err)
	}

	path := e.outputPath(res.Ext)
	if path == "-" {
		if _, err := os.Stdout.Write(res.Data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path, res.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if img, err := render.Rasterize(s.Snapshot(), s.Palette(), 4, 4); err == nil {
			e.root.notifyExport(path, img)
		} else {
			e.root.notifyExport(path, nil)
		}
	}

	if e.toClipboard {
		if err := e.copyResult(s, res); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		e.root.notifyCopy(e.format)
	}
	return nil
}

// copyResult puts images on the clipboard as images and text formats as text.
func (e *exportCmd) copyResult(s *paint.Session, res render.Result) error {
	switch res.Ext {
	case ".png":
		img, err := render.Rasterize(s.Snapshot(), s.Palette(), e.cellWidth, e.cellHeight)
		if err != nil {
			return err
		}
		return writeImageToClipboard(img)
	case ".ans", ".irc":
		return writeTextToClipboard(string(res.Data))
	}
	return errors.New(e.format + " cannot be copied to the clipboard")
}
