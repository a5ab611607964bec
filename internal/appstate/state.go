// Package appstate hosts the editor window: it turns shiny mouse and key
// events into Session calls and draws the painting with its toolbar.
package appstate

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/gridpaint/internal/clipboard"
	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/notify"
	gpaint "github.com/example/gridpaint/internal/paint"
	"github.com/example/gridpaint/internal/palette"
	"github.com/example/gridpaint/internal/render"
	"github.com/example/gridpaint/internal/theme"
	"github.com/example/gridpaint/internal/wire"
)

const messageDuration = 2 * time.Second

// AppState holds application configuration for the UI.
type AppState struct {
	Output   string
	Theme    *theme.Theme
	Cell     int
	Grid     bool
	Exporter render.Encoder
	Notifier *notify.Notifier

	session     *gpaint.Session
	sessionOpts []gpaint.Option

	updateCh chan struct{}
	sizeMu   sync.Mutex
	resized  bool

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSessionOptions configures the painting session the window edits.
func WithSessionOptions(opts ...gpaint.Option) Option {
	return func(a *AppState) { a.sessionOpts = append(a.sessionOpts, opts...) }
}

// WithOutput sets the file the painting is saved to in wire form.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithCellSize sets the initial on-screen cell size in pixels.
func WithCellSize(px int) Option { return func(a *AppState) { a.Cell = px } }

// WithGrid toggles grid lines between cells.
func WithGrid(on bool) Option { return func(a *AppState) { a.Grid = on } }

// WithExporter sets the encoder used by the export command.
func WithExporter(enc render.Encoder) Option { return func(a *AppState) { a.Exporter = enc } }

// WithNotifier sets the notifier told about saves, exports and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState and the session it edits. The AppState is the
// session's renderer.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{
		Theme:    theme.Default(),
		Cell:     24,
		Grid:     true,
		Exporter: render.PNG{},
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	s, err := gpaint.New(append(a.sessionOpts, gpaint.WithRenderer(a))...)
	if err != nil {
		return nil, err
	}
	a.session = s
	return a, nil
}

// Session returns the session shown in the window.
func (a *AppState) Session() *gpaint.Session { return a.session }

// Redraw implements render.Renderer by requesting a repaint.
func (a *AppState) Redraw(grid.Snapshot, palette.Palette) error {
	a.NotifyImageChanged()
	return nil
}

// Resized implements render.Renderer. The next frame refits the canvas.
func (a *AppState) Resized(int, int) {
	a.sizeMu.Lock()
	a.resized = true
	a.sizeMu.Unlock()
	a.NotifyImageChanged()
}

func (a *AppState) takeResized() bool {
	a.sizeMu.Lock()
	defer a.sizeMu.Unlock()
	r := a.resized
	a.resized = false
	return r
}

// NotifyImageChanged requests a repaint of the UI when the painting mutates.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// statusEvent carries a message from a background task to the event loop.
type statusEvent struct{ text string }

// Main runs the window until it is closed.
func (a *AppState) Main(s screen.Screen) {
	sess := a.session
	pal := sess.Palette()
	cols, rows := sess.Size()
	width, height := preferredSize(cols, rows, a.Cell, pal.Len())

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: windowTitle(a.Output)})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.RunRenderer(ctx)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-ctx.Done():
				return
			}
		}
	}()

	l := newLayout(width, height, cols, rows, pal.Len())
	showGrid := a.Grid
	var message string
	var messageUntil time.Time
	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		messageUntil = time.Now().Add(messageDuration)
		w.Send(paint.Event{})
	}

	run := func(cmd string) bool {
		switch cmd {
		case "":
			return false
		case cmdQuit:
			return true
		case cmdCommitLine:
			sess.CommitLineOrCurve(false)
		case cmdCommitCurve:
			sess.CommitLineOrCurve(true)
		case cmdCancel:
			sess.CancelPending()
		case cmdNextColor, cmdPrevColor:
			step := 1
			if cmd == cmdPrevColor {
				step = -1
			}
			if err := sess.SetColor(cycleColor(sess.Color(), step, pal.Len())); err != nil {
				say("%v", err)
			}
		case cmdGrid:
			showGrid = !showGrid
			w.Send(paint.Event{})
		case cmdToggleSize:
			next := wire.HD
			if c, r := sess.Size(); c == wire.HD.Width && r == wire.HD.Height {
				next = wire.Default
			}
			if err := sess.ResizePainting(next.Width, next.Height, pal.Default()); err != nil {
				say("resize: %v", err)
			} else {
				say("resized to %s", next)
			}
		case cmdSave:
			if err := a.save(); err != nil {
				say("save: %v", err)
			} else {
				say("saved %s", a.Output)
			}
		case cmdExport:
			a.export(ctx, w)
		case cmdCopy:
			if err := clipboard.WritePainting(sess.Snapshot().Grid()); err != nil {
				say("copy: %v", err)
			} else {
				a.Notifier.Copy("painting")
				say("copied painting")
			}
		case cmdCopyImage:
			img, err := render.Rasterize(sess.Snapshot(), pal, render.DefaultCellWidth, render.DefaultCellHeight)
			if err == nil {
				err = clipboard.WriteImage(img)
			}
			if err != nil {
				say("copy image: %v", err)
			} else {
				a.Notifier.Copy("image")
				say("copied image")
			}
		case cmdPaste:
			g, err := clipboard.ReadPainting()
			if err == nil {
				err = sess.ReplacePainting(g)
			}
			if err != nil {
				say("paste: %v", err)
			}
		default:
			if t, err := gpaint.ParseTool(cmd); err == nil {
				sess.SelectTool(t)
			} else if err := sess.Action(cmd); err != nil {
				say("%v", err)
			}
		}
		return false
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			cols, rows = sess.Size()
			l = newLayout(width, height, cols, rows, pal.Len())
			w.Send(paint.Event{})
		case statusEvent:
			say("%s", e.text)
		case paint.Event:
			if a.takeResized() {
				cols, rows = sess.Size()
				l = newLayout(width, height, cols, rows, pal.Len())
			}
			a.paintFrame(s, w, paintState{
				layout:       l,
				snap:         sess.Snapshot(),
				pal:          pal,
				theme:        a.Theme,
				tool:         sess.Tool(),
				color:        sess.Color(),
				cursor:       visibleCursor(l, sess.Cursor()),
				pending:      sess.Pending(),
				approx:       sess.Approx(),
				grid:         showGrid,
				message:      message,
				messageUntil: messageUntil,
				now:          time.Now(),
			})
		case mouse.Event:
			action, err := handleMouse(l, sess, e)
			if err != nil {
				say("%v", err)
			}
			run(action)
		case key.Event:
			if run(keyCommand(e)) {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// handleMouse feeds a mouse event to the session. A left release always ends
// the gesture, wherever it lands. It returns the meta action of a toolbar
// button that was clicked, if any.
func handleMouse(l layout, sess *gpaint.Session, e mouse.Event) (string, error) {
	p := image.Pt(int(e.X), int(e.Y))
	onToolbar := p.X < toolbarWidth
	left := e.Button == mouse.ButtonLeft

	if left && e.Direction == mouse.DirRelease {
		if !onToolbar {
			c := l.cellAt(p)
			sess.PointerMove(c.X, c.Y)
		}
		sess.PointerUp()
		return "", nil
	}
	if onToolbar {
		if !left || e.Direction != mouse.DirPress {
			return "", nil
		}
		if b, ok := l.buttonAt(p); ok {
			if b.isTool {
				sess.SelectTool(b.tool)
				return "", nil
			}
			return b.action, nil
		}
		if c, ok := l.swatchAt(p); ok {
			return "", sess.SetColor(c)
		}
		return "", nil
	}

	c := l.cellAt(p)
	sess.PointerMove(c.X, c.Y)
	switch {
	case left && e.Direction == mouse.DirPress:
		sess.PointerDown()
	case e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress:
		sess.CommitLineOrCurve(true)
	}
	return "", nil
}

func (a *AppState) paintFrame(s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.layout.width, st.layout.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	drawFrame(b.RGBA(), st)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// save writes the wire form of the painting to Output.
func (a *AppState) save() error {
	if a.Output == "" {
		return fmt.Errorf("no output file")
	}
	data, err := a.session.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.Output, []byte(data+"\n"), 0o644); err != nil {
		return err
	}
	a.Notifier.Save(a.Output)
	return nil
}

// exportPath derives the export file name from Output.
func (a *AppState) exportPath() string {
	base := a.Output
	if base == "" {
		base = "painting"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + a.Exporter.Ext()
}

// export encodes in the background and reports back through the event loop.
func (a *AppState) export(ctx context.Context, w screen.Window) {
	path := a.exportPath()
	snap, pal := a.session.Snapshot(), a.session.Palette()
	results := a.session.Export(ctx, a.Exporter)
	go func() {
		res := <-results
		if res.Err == nil {
			res.Err = os.WriteFile(path, res.Data, 0o644)
		}
		if res.Err != nil {
			w.Send(statusEvent{fmt.Sprintf("export: %v", res.Err)})
			return
		}
		if img, err := render.Rasterize(snap, pal, 4, 4); err == nil {
			a.Notifier.Export(path, img)
		}
		w.Send(statusEvent{"exported " + path})
	}()
}

func visibleCursor(l layout, c image.Point) image.Point {
	if c.X < 0 || c.Y < 0 || l.cellRect(c).Max.X > l.canvas.Max.X || l.cellRect(c).Max.Y > l.canvas.Max.Y {
		return grid.Unset
	}
	return c
}

// cycleColor steps through the palette and the transparent sentinel.
func cycleColor(c grid.ColorIndex, step, n int) grid.ColorIndex {
	pos := int(c)
	if c == grid.Transparent {
		pos = n
	}
	pos = ((pos+step)%(n+1) + n + 1) % (n + 1)
	if pos == n {
		return grid.Transparent
	}
	return grid.ColorIndex(pos)
}

func windowTitle(output string) string {
	if output == "" {
		return "GridPaint"
	}
	return "GridPaint - " + filepath.Base(output)
}

// Snapshot renders a frame of the editor without a window, for previews and
// tests.
func (a *AppState) Snapshot(width, height int) *image.RGBA {
	sess := a.session
	cols, rows := sess.Size()
	pal := sess.Palette()
	l := newLayout(width, height, cols, rows, pal.Len())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	drawFrame(dst, paintState{
		layout:  l,
		snap:    sess.Snapshot(),
		pal:     pal,
		theme:   a.Theme,
		tool:    sess.Tool(),
		color:   sess.Color(),
		cursor:  visibleCursor(l, sess.Cursor()),
		pending: sess.Pending(),
		approx:  sess.Approx(),
		grid:    a.Grid,
		now:     time.Now(),
	})
	return dst
}
