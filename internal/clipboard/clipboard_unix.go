//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

// designBackend uses golang.design/x/clipboard, which needs cgo.
type designBackend struct{}

func newBackend() (backend, error) {
	if err := requireDisplay(); err != nil {
		return nil, err
	}
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return designBackend{}, nil
}

func designFormat(f format) clipboard.Format {
	if f == formatPNG {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func (designBackend) write(f format, data []byte) error {
	clipboard.Write(designFormat(f), data)
	return nil
}

func (designBackend) read(f format) ([]byte, error) {
	return clipboard.Read(designFormat(f)), nil
}
