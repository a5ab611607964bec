package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/gridpaint/internal/config"
	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/wire"
)

// rawExt marks painting files holding the unencoded row-major bytes.
const rawExt = ".gpr"

var errNoFile = errors.New("painting file is required")

// readPainting loads a painting from path, or stdin for "-". Files ending in
// rawExt hold raw bytes, anything else the base64 wire form.
func readPainting(path string) (*grid.Grid, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, errNoFile
	case "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), rawExt) {
		return wire.DecodeRaw(data)
	}
	return wire.Decode(string(bytes.TrimSpace(data)))
}

// writePainting stores g at path, or stdout for "-", in the form readPainting
// expects.
func writePainting(path string, g *grid.Grid) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), rawExt) {
		data, err = wire.EncodeRaw(g)
	} else {
		var s string
		s, err = wire.Encode(g)
		data = []byte(s + "\n")
	}
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// paletteFor applies the configured background colour to the extended palette.
func paletteFor(cfg *config.Config) (palette.Palette, error) {
	pal := palette.Extended()
	if cfg == nil || cfg.Paint.PaletteDefault == "" {
		return pal, nil
	}
	idx, err := pal.Lookup(cfg.Paint.PaletteDefault)
	if err != nil {
		return pal, fmt.Errorf("palette_default: %w", err)
	}
	return pal.WithDefault(idx)
}

// sessionOptions turns configuration into session options. colorSpec and
// sizeName override the configured values when set.
func sessionOptions(cfg *config.Config, colorSpec, sizeName string) ([]paint.Option, error) {
	if cfg == nil {
		cfg = config.New()
	}
	pal, err := paletteFor(cfg)
	if err != nil {
		return nil, err
	}
	opts := []paint.Option{paint.WithPalette(pal)}
	if cfg.Paint.HistoryDepth > 0 {
		opts = append(opts, paint.WithHistoryDepth(cfg.Paint.HistoryDepth))
	}
	if sizeName == "" {
		sizeName = cfg.Paint.Size
	}
	if sizeName != "" {
		sz, ok := wire.SizeFor(sizeName)
		if !ok {
			return nil, fmt.Errorf("unknown size %q", sizeName)
		}
		opts = append(opts, paint.WithSize(sz.Width, sz.Height))
	}
	if colorSpec == "" {
		colorSpec = cfg.Paint.Color
	}
	if colorSpec != "" {
		c, err := pal.Lookup(colorSpec)
		if err != nil {
			return nil, err
		}
		opts = append(opts, paint.WithColor(c))
	}
	return opts, nil
}

func parseInts(args []string, n int, op string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s expects %d numbers, got %d", op, n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", op, a)
		}
		out[i] = v
	}
	return out, nil
}

func click(s *paint.Session, x, y int) {
	s.PointerMove(x, y)
	s.PointerDown()
	s.PointerUp()
}

// applyOp runs one headless tool invocation against s.
func applyOp(s *paint.Session, op string, args []string) error {
	switch op {
	case "pencil", "pen", "bucket", "fill":
		xy, err := parseInts(args, 2, op)
		if err != nil {
			return err
		}
		if err := s.SelectToolByName(op); err != nil {
			return err
		}
		click(s, xy[0], xy[1])
	case "line":
		v, err := parseInts(args, 4, op)
		if err != nil {
			return err
		}
		s.SelectTool(paint.Line)
		click(s, v[0], v[1])
		click(s, v[2], v[3])
	case "curve", "bezier":
		v, err := parseInts(args, 6, op)
		if err != nil {
			return err
		}
		s.SelectTool(paint.Bezier)
		click(s, v[0], v[1])
		click(s, v[2], v[3])
		click(s, v[4], v[5])
	case "replace":
		if len(args) != 2 {
			return fmt.Errorf("replace expects OLD NEW")
		}
		pal := s.Palette()
		old, err := pal.Lookup(args[0])
		if err != nil {
			return err
		}
		repl, err := pal.Lookup(args[1])
		if err != nil {
			return err
		}
		return s.Replace(old, repl)
	case "clear":
		switch len(args) {
		case 0:
			return s.Clear()
		case 1:
			c, err := s.Palette().Lookup(args[0])
			if err != nil {
				return err
			}
			return s.ClearAll(c)
		}
		return fmt.Errorf("clear expects at most one colour")
	case "resize":
		v, err := parseInts(args, 2, op)
		if err != nil {
			return err
		}
		return s.ResizePainting(v[0], v[1], s.Palette().Default())
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}
