package wire

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/example/gridpaint/internal/grid"
)

func TestRoundTrip(t *testing.T) {
	for _, size := range Sizes() {
		g, err := grid.New(size.Width, size.Height, grid.Transparent)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		g.Set(0, 0, 4)
		g.Set(size.Width-1, size.Height-1, 98)
		g.Set(3, 2, 0)
		s, err := Encode(g)
		if err != nil {
			t.Fatalf("Encode %s: %v", size, err)
		}
		back, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode %s: %v", size, err)
		}
		if !back.Equal(g) {
			t.Fatalf("round trip of %s changed the painting", size)
		}
	}
}

func TestDecodeUnsupportedLength(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(make([]byte, 100))
	if _, err := Decode(payload); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	if _, err := Decode("!!not base64!!"); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestDecodeRejectsOutOfRangeColour(t *testing.T) {
	raw := make([]byte, Default.Cells())
	raw[5] = 200
	if _, err := DecodeRaw(raw); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestEncodeUnsupportedSize(t *testing.T) {
	g, _ := grid.New(4, 4, 0)
	if _, err := Encode(g); !errors.Is(err, ErrUnsupportedSize) {
		t.Fatalf("expected ErrUnsupportedSize, got %v", err)
	}
	// Same cell count as Default but transposed.
	g, _ = grid.New(15, 26, 0)
	if _, err := Encode(g); !errors.Is(err, ErrUnsupportedSize) {
		t.Fatalf("expected ErrUnsupportedSize for transposed size, got %v", err)
	}
}

func TestSizeFor(t *testing.T) {
	if s, ok := SizeFor("HD"); !ok || s != HD {
		t.Fatalf("SizeFor(HD) = %v,%v", s, ok)
	}
	if _, ok := SizeFor("huge"); ok {
		t.Fatalf("unexpected size for unknown name")
	}
}
