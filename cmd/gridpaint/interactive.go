package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/render"
	"github.com/example/gridpaint/internal/wire"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives one painting session from a prompt.
type interactiveCmd struct {
	r     *root
	fs    *flag.FlagSet
	execs commandList
	file  string
	size  string

	session *paint.Session
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Program() string {
	if i.r == nil {
		return "interactive"
	}
	return i.r.Program() + " interactive"
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{r: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command and exit (may be specified multiple times)")
	fs.StringVar(&i.file, "file", "", "painting to start from")
	fs.StringVar(&i.size, "size", "", "size of a new painting (default or hd)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) start() error {
	opts, err := sessionOptions(i.r.configOrDefault(), "", i.size)
	if err != nil {
		return err
	}
	if i.file != "" {
		g, err := readPainting(i.file)
		if err != nil {
			return err
		}
		opts = append(opts, paint.WithGrid(g))
	}
	i.session, err = paint.New(opts...)
	return err
}

func (i *interactiveCmd) Run() error {
	if err := i.start(); err != nil {
		return err
	}
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. done reports a request to leave.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	s := i.session
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "undo":
		if !s.Undo() {
			fmt.Fprintln(i.stdout, "nothing to undo")
		}
	case "redo":
		if !s.Redo() {
			fmt.Fprintln(i.stdout, "nothing to redo")
		}
	case "color", "colour":
		if len(args) != 1 {
			return false, fmt.Errorf("color expects one argument")
		}
		c, err := s.Palette().Lookup(args[0])
		if err != nil {
			return false, err
		}
		return false, s.SetColor(c)
	case "size":
		w, h := s.Size()
		undo, redo := s.HistoryLen()
		fmt.Fprintf(i.stdout, "%dx%d undo=%d redo=%d\n", w, h, undo, redo)
	case "show":
		if err := (render.Terminal{}).Encode(i.stdout, s.Snapshot(), s.Palette()); err != nil {
			return false, err
		}
	case "encode":
		data, err := s.Encode()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(i.stdout, data)
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("load expects a file or wire string")
		}
		g, err := readPainting(args[0])
		if err != nil {
			if g, err = wire.Decode(args[0]); err != nil {
				return false, err
			}
		}
		return false, s.ReplacePainting(g)
	case "save":
		if len(args) != 1 {
			return false, fmt.Errorf("save expects a file")
		}
		if err := writePainting(args[0], s.Snapshot().Grid()); err != nil {
			return false, err
		}
		i.r.notifySave(args[0])
	case "export":
		if len(args) != 2 {
			return false, fmt.Errorf("export expects FORMAT FILE")
		}
		enc, ok := render.ForFormat(args[0])
		if !ok {
			return false, fmt.Errorf("unknown format %q", args[0])
		}
		res := <-s.Export(context.Background(), enc)
		if res.Err != nil {
			return false, res.Err
		}
		if err := os.WriteFile(args[1], res.Data, 0o644); err != nil {
			return false, err
		}
		i.r.notifyExport(args[1], nil)
	default:
		if err := applyOp(s, cmd, args); err != nil {
			return false, err
		}
	}
	return false, nil
}
