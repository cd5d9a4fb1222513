package geometry

import "math"

// starInnerRatio is the inner radius of a star relative to its outer radius.
const starInnerRatio = 0.4

// RegularPolygonVertices returns sides points spaced evenly on the ellipse with
// radii (rx, ry) centred at (cx, cy). The first vertex is at the top and the
// rest follow clockwise in screen coordinates.
func RegularPolygonVertices(cx, cy, rx, ry float64, sides int) []Point {
	if sides <= 0 {
		return nil
	}
	pts := make([]Point, sides)
	for i := 0; i < sides; i++ {
		angle := float64(i)*2*math.Pi/float64(sides) - math.Pi/2
		pts[i] = Point{cx + rx*math.Cos(angle), cy + ry*math.Sin(angle)}
	}
	return pts
}

// StarOutline returns a closed five-pointed star alternating between the outer
// radii and 0.4 of them.
func StarOutline(cx, cy, rx, ry float64) Path {
	irx := rx * starInnerRatio
	iry := ry * starInnerRatio
	pts := make([]Point, 10)
	for i := range pts {
		angle := float64(i)*math.Pi/5 - math.Pi/2
		ex, ey := rx, ry
		if i%2 == 1 {
			ex, ey = irx, iry
		}
		pts[i] = Point{cx + ex*math.Cos(angle), cy + ey*math.Sin(angle)}
	}
	return Polygon(pts)
}

// heartCurve is the heart outline in a unit box. The first point starts the
// path; each following entry is either a line end (one point) or a cubic
// (control, control, end).
var heartCurve = [][]Point{
	{{0.5, 0.35}},
	{{0.5, 0.2}, {0.3, 0.15}, {0.2, 0.25}},
	{{0.1, 0.35}, {0.12, 0.48}, {0.25, 0.58}},
	{{0.5, 0.82}},
	{{0.75, 0.58}},
	{{0.88, 0.48}, {0.9, 0.35}, {0.8, 0.25}},
	{{0.7, 0.15}, {0.5, 0.2}, {0.5, 0.35}},
}

// HeartOutline returns the heart outline scaled to (w, h) with its box at (x, y).
func HeartOutline(x, y, w, h float64) Path {
	X := func(t float64) float64 { return x + t*w }
	Y := func(t float64) float64 { return y + t*h }
	var p Path
	for i, seg := range heartCurve {
		switch {
		case i == 0:
			p.MoveTo(X(seg[0].X), Y(seg[0].Y))
		case len(seg) == 1:
			p.LineTo(X(seg[0].X), Y(seg[0].Y))
		default:
			p.CubicTo(X(seg[0].X), Y(seg[0].Y), X(seg[1].X), Y(seg[1].Y), X(seg[2].X), Y(seg[2].Y))
		}
	}
	p.Close()
	return p
}

// kappa places cubic control points so four segments approximate a quarter
// ellipse each.
const kappa = 0.5522847498

// EllipseOutline returns a closed ellipse built from four cubic segments.
func EllipseOutline(cx, cy, rx, ry float64) Path {
	ox, oy := rx*kappa, ry*kappa
	var p Path
	p.MoveTo(cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.Close()
	return p
}

// RectOutline returns a closed axis aligned rectangle.
func RectOutline(x, y, w, h float64) Path {
	return Polygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
}

// RoundedRectOutline returns a rectangle with corner radius r, clamped to half
// the shorter side.
func RoundedRectOutline(x, y, w, h, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		return RectOutline(x, y, w, h)
	}
	o := r * kappa
	var p Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+o, y, x+w, y+r-o, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+o, x+w-r+o, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-o, y+h, x, y+h-r+o, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-o, x+r-o, y, x+r, y)
	p.Close()
	return p
}

// CrossOutline returns the 12 point plus sign filling the box, with arm
// thickness tx horizontally and ty vertically.
func CrossOutline(x, y, w, h, tx, ty float64) Path {
	return Polygon([]Point{
		{x + tx, y},
		{x + w - tx, y},
		{x + w - tx, y + ty},
		{x + w, y + ty},
		{x + w, y + h - ty},
		{x + w - tx, y + h - ty},
		{x + w - tx, y + h},
		{x + tx, y + h},
		{x + tx, y + h - ty},
		{x, y + h - ty},
		{x, y + ty},
		{x + tx, y + ty},
	})
}
