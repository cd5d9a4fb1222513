package geometry

import (
	"math"
	"reflect"
	"testing"
)

const eps = 1e-9

func TestRegularPolygonVertices(t *testing.T) {
	for _, n := range []int{3, 5, 6, 8, 12} {
		cx, cy, r := 40.0, -12.5, 17.0
		pts := RegularPolygonVertices(cx, cy, r, r, n)
		if len(pts) != n {
			t.Fatalf("sides %d: got %d points", n, len(pts))
		}
		step := 2 * math.Pi / float64(n)
		for i, p := range pts {
			d := math.Hypot(p.X-cx, p.Y-cy)
			if math.Abs(d-r) > eps {
				t.Fatalf("sides %d point %d: distance %v want %v", n, i, d, r)
			}
			angle := math.Atan2(p.Y-cy, p.X-cx)
			want := float64(i)*step - math.Pi/2
			diff := math.Remainder(angle-want, 2*math.Pi)
			if math.Abs(diff) > 1e-9 {
				t.Fatalf("sides %d point %d: angle %v want %v", n, i, angle, want)
			}
		}
		if math.Abs(pts[0].X-cx) > eps || math.Abs(pts[0].Y-(cy-r)) > eps {
			t.Fatalf("first vertex should be at the top, got %+v", pts[0])
		}
	}
}

func TestRegularPolygonVerticesDegenerate(t *testing.T) {
	if pts := RegularPolygonVertices(0, 0, 1, 1, 0); pts != nil {
		t.Fatalf("expected nil for zero sides, got %v", pts)
	}
}

func TestStarOutlineAlternatesRadius(t *testing.T) {
	p := StarOutline(50, 50, 48, 48)
	if got := len(p); got != 11 {
		t.Fatalf("expected 10 vertices plus close, got %d segments", got)
	}
	if p[len(p)-1].Op != OpClose {
		t.Fatalf("star should be closed")
	}
	for i, s := range p[:10] {
		d := math.Hypot(s.Pts[0].X-50, s.Pts[0].Y-50)
		want := 48.0
		if i%2 == 1 {
			want = 48 * 0.4
		}
		if math.Abs(d-want) > eps {
			t.Fatalf("vertex %d: radius %v want %v", i, d, want)
		}
	}
}

func TestHeartOutlineScales(t *testing.T) {
	unit := HeartOutline(0, 0, 1, 1)
	scaled := HeartOutline(2, 4, 96, 92)
	if !reflect.DeepEqual(unit.Transform(96, 92, 2, 4), scaled) {
		t.Fatalf("heart outline should be an affine image of the unit heart")
	}
	if got, want := scaled.String(), HeartOutline(2, 4, 96, 92).String(); got != want {
		t.Fatalf("heart outline not deterministic: %q vs %q", got, want)
	}
	if start := scaled[0].Pts[0]; math.Abs(start.X-50) > eps || math.Abs(start.Y-36.2) > 1e-6 {
		t.Fatalf("unexpected heart start %+v", scaled[0].Pts[0])
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	var p Path
	p.MoveTo(1.26, 2)
	p.LineTo(-0.04, 3.16)
	p.CubicTo(1, 2, 3, 4, 5, 6)
	p.Close()
	s := p.String()
	want := "M1.3,2.0 L0.0,3.2 C1.0,2.0 3.0,4.0 5.0,6.0 Z"
	if s != want {
		t.Fatalf("String() = %q, want %q", s, want)
	}
	back, err := ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if back.String() != s {
		t.Fatalf("round trip mismatch: %q vs %q", back.String(), s)
	}
}

func TestParsePathImplicitLines(t *testing.T) {
	p, err := ParsePath("M0,0 10,0 10 10Z")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if len(p) != 4 || p[1].Op != OpLine || p[2].Op != OpLine || p[3].Op != OpClose {
		t.Fatalf("unexpected segments %+v", p)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, d := range []string{"L", "M1", "10,10", "m1,1", "M1,1 Q1,1 2,2", "M1,#"} {
		if _, err := ParsePath(d); err == nil {
			t.Errorf("expected error for %q", d)
		}
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := RectOutline(3, 4, 10, 20).Bounds()
	if !ok || min != (Point{3, 4}) || max != (Point{13, 24}) {
		t.Fatalf("unexpected bounds %v %v %v", min, max, ok)
	}
	if _, _, ok := (Path{}).Bounds(); ok {
		t.Fatalf("empty path should have no bounds")
	}
}

func TestCrossOutlineHasTwelvePoints(t *testing.T) {
	p := CrossOutline(0, 0, 90, 60, 30, 20)
	if len(p) != 13 {
		t.Fatalf("expected 12 vertices plus close, got %d", len(p))
	}
}

func TestRoundedRectClampsRadius(t *testing.T) {
	p := RoundedRectOutline(0, 0, 10, 40, 50)
	min, max, _ := p.Bounds()
	if min != (Point{0, 0}) || max != (Point{10, 40}) {
		t.Fatalf("rounded rect escaped its box: %v %v", min, max)
	}
}
