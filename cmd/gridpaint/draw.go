package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/example/gridpaint/internal/paint"
)

// drawCmd applies one tool invocation to a painting file.
type drawCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	color  string
	op     string
	args   []string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "painting file (\"-\" for stdin)")
	fs.StringVar(&d.output, "output", "", "output file (defaults to -file)")
	fs.StringVar(&d.color, "color", "", "drawing colour: index, name or #rrggbb")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if d.file == "" {
		return nil, errors.New("draw requires -file")
	}
	if d.output == "" {
		d.output = d.file
	}
	d.op = strings.ToLower(positionals[0])
	d.args = positionals[1:]
	return d, nil
}

// splitDrawArgs separates flags from the operation and its operands so that
// negative coordinates are not mistaken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags, rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(rest) > 0 || !strings.HasPrefix(a, "-") || a == "-" {
			rest = append(rest, a)
			continue
		}
		if a == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}
		flags = append(flags, a)
		if !strings.Contains(a, "=") {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag %s needs a value", a)
			}
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, rest, nil
}

func (d *drawCmd) Run() error {
	g, err := readPainting(d.file)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(d.root.configOrDefault(), d.color, "")
	if err != nil {
		return err
	}
	s, err := paint.New(append(opts, paint.WithGrid(g))...)
	if err != nil {
		return err
	}
	if err := applyOp(s, d.op, d.args); err != nil {
		return err
	}
	if err := writePainting(d.output, s.Snapshot().Grid()); err != nil {
		return err
	}
	if d.output != "-" {
		d.root.notifySave(d.output)
	}
	return nil
}
