package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/gridpaint/internal/appstate"
	"github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/render"
)

// editCmd opens the editor window.
type editCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	size   string
	color  string
	cell   int
	noGrid bool
	format string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	cfg := r.configOrDefault()
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "painting file to edit and save to")
	fs.StringVar(&e.size, "size", "", "size of a new painting (default or hd)")
	fs.StringVar(&e.color, "color", "", "initial drawing colour")
	fs.IntVar(&e.cell, "cell", 24, "on-screen cell size in pixels")
	fs.BoolVar(&e.noGrid, "no-grid", false, "hide lines between cells")
	fs.StringVar(&e.format, "format", cfg.Export.Format, "format used by the export key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" && fs.NArg() == 1 {
		e.file = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

// options assembles the editor configuration, loading the painting when the
// file exists.
func (e *editCmd) options() ([]appstate.Option, error) {
	sessOpts, err := sessionOptions(e.root.configOrDefault(), e.color, e.size)
	if err != nil {
		return nil, err
	}
	if e.file != "" {
		g, err := readPainting(e.file)
		switch {
		case err == nil:
			sessOpts = append(sessOpts, paint.WithGrid(g))
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	enc, ok := render.ForFormat(e.format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", e.format)
	}
	opts := []appstate.Option{
		appstate.WithSessionOptions(sessOpts...),
		appstate.WithOutput(e.file),
		appstate.WithCellSize(e.cell),
		appstate.WithGrid(!e.noGrid),
		appstate.WithExporter(enc),
	}
	if e.root != nil {
		opts = append(opts, appstate.WithTheme(e.root.activeTheme), appstate.WithNotifier(e.root.notifier))
	}
	return opts, nil
}

func (e *editCmd) Run() error {
	opts, err := e.options()
	if err != nil {
		return err
	}
	st, err := appstate.New(opts...)
	if err != nil {
		return err
	}
	st.Run()
	return nil
}
