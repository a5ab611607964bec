package trace

import (
	"image"
	"reflect"
	"testing"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 image.Point
		want   []image.Point
	}{
		{"horizontal", image.Pt(0, 0), image.Pt(3, 0), []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"single", image.Pt(0, 0), image.Pt(0, 0), []image.Point{{0, 0}}},
		{"reverse vertical", image.Pt(2, 3), image.Pt(2, 0), []image.Point{{2, 3}, {2, 2}, {2, 1}, {2, 0}}},
		{"diagonal", image.Pt(0, 0), image.Pt(2, 2), []image.Point{{0, 0}, {1, 1}, {2, 2}}},
		{"shallow", image.Pt(0, 0), image.Pt(4, 2), []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Line(tc.p0, tc.p1)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Line(%v,%v) = %v, want %v", tc.p0, tc.p1, got, tc.want)
			}
		})
	}
}

func TestLineIsConnected(t *testing.T) {
	pts := Line(image.Pt(-3, 7), image.Pt(11, -2))
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		if abs(d.X) > 1 || abs(d.Y) > 1 {
			t.Fatalf("gap between %v and %v", pts[i-1], pts[i])
		}
	}
	if pts[len(pts)-1] != image.Pt(11, -2) {
		t.Fatalf("line does not end at target: %v", pts[len(pts)-1])
	}
}

func TestQuadEndpoints(t *testing.T) {
	p0, ctrl, p1 := image.Pt(0, 0), image.Pt(5, 10), image.Pt(10, 0)
	pts := Quad(p0, ctrl, p1)
	if len(pts) < 200 || len(pts) > 201 {
		t.Fatalf("expected about 201 samples, got %d", len(pts))
	}
	if pts[0] != p0 {
		t.Fatalf("first sample %v, want %v", pts[0], p0)
	}
	// The accumulated step may stop just short of t=1, which still rounds to p1.
	if last := pts[len(pts)-1]; last != p1 {
		t.Fatalf("last sample %v, want %v", last, p1)
	}
	mid := pts[100]
	if mid != image.Pt(5, 5) {
		t.Fatalf("midpoint %v, want (5,5)", mid)
	}
}

func TestControlPointsState(t *testing.T) {
	cp := NewControlPoints()
	if cp.State() != Unset {
		t.Fatalf("new control points state %v", cp.State())
	}
	if got := cp.Approx(image.Pt(4, 4)); !reflect.DeepEqual(got, []image.Point{{4, 4}}) {
		t.Fatalf("unset approx = %v", got)
	}
	cp[0] = image.Pt(0, 0)
	if cp.State() != PendingLine {
		t.Fatalf("expected PendingLine, got %v", cp.State())
	}
	cp[1] = image.Pt(1, 1)
	if cp.State() != PendingCurve {
		t.Fatalf("expected PendingCurve, got %v", cp.State())
	}
	cp.Clear()
	if cp.State() != Unset {
		t.Fatalf("Clear left state %v", cp.State())
	}
}
