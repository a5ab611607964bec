package main

import (
	"flag"
	"fmt"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/wire"
)

// newCmd writes a blank painting.
type newCmd struct {
	*root
	fs     *flag.FlagSet
	size   string
	fill   string
	output string
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	n := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(n)
	defSize := wire.Default.Name
	if r != nil && r.config != nil && r.config.Paint.Size != "" {
		defSize = r.config.Paint.Size
	}
	fs.StringVar(&n.size, "size", defSize, "painting size (default or hd)")
	fs.StringVar(&n.fill, "color", "", "fill colour (defaults to the palette background)")
	fs.StringVar(&n.output, "output", "", "output file; \"-\" writes to stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if n.output == "" && fs.NArg() == 1 {
		n.output = fs.Arg(0)
	}
	if n.output == "" {
		return nil, &UsageError{of: n}
	}
	return n, nil
}

func (n *newCmd) Run() error {
	sz, ok := wire.SizeFor(n.size)
	if !ok {
		return fmt.Errorf("unknown size %q", n.size)
	}
	cfg := n.root.configOrDefault()
	pal, err := paletteFor(cfg)
	if err != nil {
		return err
	}
	fill := pal.Default()
	if n.fill != "" {
		if fill, err = pal.Lookup(n.fill); err != nil {
			return err
		}
	}
	g, err := grid.New(sz.Width, sz.Height, fill)
	if err != nil {
		return err
	}
	if err := writePainting(n.output, g); err != nil {
		return err
	}
	if n.output != "-" {
		n.root.notifySave(n.output)
	}
	return nil
}
