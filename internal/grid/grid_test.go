package grid

import (
	"errors"
	"testing"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 1}, {1, 0}, {-3, 4}, {2, -1}} {
		if _, err := New(tc.w, tc.h, 0); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("New(%d,%d): expected ErrInvalidDimension, got %v", tc.w, tc.h, err)
		}
	}
}

func TestSetThenGet(t *testing.T) {
	g, err := New(4, 3, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := ColorIndex(x + y*4)
			g.Set(x, y, c)
			if got, ok := g.Get(x, y); !ok || got != c {
				t.Fatalf("Get(%d,%d) = %d,%v want %d", x, y, got, ok, c)
			}
		}
	}
}

func TestSetOutOfBoundsIsIgnored(t *testing.T) {
	g, _ := New(3, 3, 7)
	before := g.Clone()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}, {-1, -1}} {
		g.Set(p[0], p[1], 2)
		if _, ok := g.Get(p[0], p[1]); ok {
			t.Errorf("Get(%d,%d) reported in bounds", p[0], p[1])
		}
	}
	if !g.Equal(before) {
		t.Fatalf("out of bounds writes changed the grid")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g, _ := New(2, 2, 0)
	c := g.Clone()
	g.Set(1, 1, 5)
	if v, _ := c.Get(1, 1); v != 0 {
		t.Fatalf("clone observed write, got %d", v)
	}
	snap := g.Snapshot()
	g.Fill(9)
	if v, _ := snap.At(1, 1); v != 5 {
		t.Fatalf("snapshot observed fill, got %d", v)
	}
}

func TestEqualDimensionMismatch(t *testing.T) {
	a, _ := New(2, 3, 0)
	b, _ := New(3, 2, 0)
	if a.Equal(b) {
		t.Fatalf("grids of different shape compared equal")
	}
	c, _ := New(2, 3, 0)
	if !a.Equal(c) {
		t.Fatalf("identical grids compared unequal")
	}
}

func TestFromRowsValidatesShape(t *testing.T) {
	if _, err := FromRows([][]ColorIndex{{1, 2}, {3}}); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension for ragged rows, got %v", err)
	}
	rows := [][]ColorIndex{{1, 2}, {3, 4}}
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	rows[0][0] = 9
	if v, _ := g.Get(0, 0); v != 1 {
		t.Fatalf("FromRows kept a reference to the input")
	}
}
