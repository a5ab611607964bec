package palette

import (
	"image/color"
	"testing"

	"github.com/example/gridpaint/internal/grid"
)

func TestExtendedLayout(t *testing.T) {
	p := Extended()
	if p.Len() != 99 {
		t.Fatalf("extended palette has %d colours, want 99", p.Len())
	}
	if p.Default() != grid.Transparent {
		t.Fatalf("default %d, want transparent", p.Default())
	}
	if _, ok := p.Color(grid.Transparent); ok {
		t.Fatalf("transparent resolved to a colour")
	}
	if c, ok := p.Color(4); !ok || c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("index 4 = %v,%v want red", c, ok)
	}
}

func TestLookup(t *testing.T) {
	p := Extended()
	tests := []struct {
		spec string
		want grid.ColorIndex
	}{
		{"0", 0},
		{"98", 98},
		{"transparent", grid.Transparent},
		{"Red", 4},
		{"#000080", 2},
		{"navy", 2},
	}
	for _, tc := range tests {
		got, err := p.Lookup(tc.spec)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tc.spec, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%q) = %d, want %d", tc.spec, got, tc.want)
		}
	}
	for _, bad := range []string{"", "101", "-1", "#12", "notacolour"} {
		if _, err := p.Lookup(bad); err == nil {
			t.Errorf("Lookup(%q) succeeded", bad)
		}
	}
}

func TestNewValidatesDefault(t *testing.T) {
	entries := []PaletteColor{{Name: "a", Color: color.RGBA{A: 255}}}
	if _, err := New(entries, 1); err == nil {
		t.Fatalf("expected error for default past the end")
	}
	if _, err := New(entries, grid.Transparent); err != nil {
		t.Fatalf("transparent default rejected: %v", err)
	}
	if _, err := New(nil, 0); err == nil {
		t.Fatalf("expected error for empty palette")
	}
}
