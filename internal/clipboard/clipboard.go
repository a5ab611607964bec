// Package clipboard copies paintings and exported images to the system
// clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"

	"github.com/example/gridpaint/internal/grid"
	"github.com/example/gridpaint/internal/wire"
)

type format int

const (
	formatText format = iota
	formatPNG
)

// backend moves raw bytes to and from the platform clipboard.
type backend interface {
	write(f format, data []byte) error
	read(f format) ([]byte, error)
}

var (
	initOnce     sync.Once
	initErr      error
	active       backend
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func requireDisplay() error {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return errNoDisplay
	}
	return nil
}

func ensureInit() (backend, error) {
	initOnce.Do(func() {
		active, initErr = newBackend()
	})
	return active, initErr
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	b, err := ensureInit()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return b.write(formatPNG, buf.Bytes())
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	b, err := ensureInit()
	if err != nil {
		return nil, err
	}
	data, err := b.read(formatPNG)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	b, err := ensureInit()
	if err != nil {
		return err
	}
	return b.write(formatText, []byte(text))
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	b, err := ensureInit()
	if err != nil {
		return "", err
	}
	data, err := b.read(formatText)
	if err != nil {
		return "", err
	}
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	return string(data), nil
}

// WritePainting publishes the wire form of g as text so it can be pasted
// into another session or a chat message.
func WritePainting(g *grid.Grid) error {
	s, err := wire.Encode(g)
	if err != nil {
		return err
	}
	return WriteText(s)
}

// ReadPainting decodes a painting from clipboard text.
func ReadPainting() (*grid.Grid, error) {
	text, err := ReadText()
	if err != nil {
		return nil, err
	}
	g, err := wire.Decode(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return g, nil
}
