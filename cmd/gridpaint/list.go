package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/wire"
)

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	c := &colorsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *colorsCmd) Run() error {
	pal, err := paletteFor(c.root.configOrDefault())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tHEX")
	for i, e := range pal.Entries() {
		mark := ""
		if i == int(pal.Default()) {
			mark = " (background)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s%s\n", i, e.Name, palette.Hex(e.Color), mark)
	}
	fmt.Fprintf(tw, "%d\ttransparent\t-\n", 99)
	return tw.Flush()
}

type sizesCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (s *sizesCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSizesCmd(args []string, r *root) (*sizesCmd, error) {
	fs := flag.NewFlagSet("sizes", flag.ExitOnError)
	s := &sizesCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sizesCmd) Run() error {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tWIDTH\tHEIGHT\tBYTES")
	for _, sz := range wire.Sizes() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", sz.Name, sz.Width, sz.Height, sz.Cells())
	}
	return tw.Flush()
}
