package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Op identifies a path segment kind.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// Segment is one path instruction. Move and Line carry one point, Cubic
// carries two control points followed by the end point, Close carries none.
type Segment struct {
	Op  Op
	Pts []Point
}

// Path is an ordered list of segments describing one or more subpaths.
type Path []Segment

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, Segment{Op: OpMove, Pts: []Point{{x, y}}})
}

// LineTo appends a straight segment.
func (p *Path) LineTo(x, y float64) {
	*p = append(*p, Segment{Op: OpLine, Pts: []Point{{x, y}}})
}

// CubicTo appends a cubic Bézier segment.
func (p *Path) CubicTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, Segment{Op: OpCubic, Pts: []Point{{x1, y1}, {x2, y2}, {x, y}}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	*p = append(*p, Segment{Op: OpClose})
}

// Polygon returns a closed path through pts.
func Polygon(pts []Point) Path {
	var p Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// Points returns every point of the path in order, control points included.
func (p Path) Points() []Point {
	var out []Point
	for _, s := range p {
		out = append(out, s.Pts...)
	}
	return out
}

// Transform returns a copy of p with every point mapped through
// (x*sx+dx, y*sy+dy).
func (p Path) Transform(sx, sy, dx, dy float64) Path {
	out := make(Path, len(p))
	for i, s := range p {
		pts := make([]Point, len(s.Pts))
		for j, pt := range s.Pts {
			pts[j] = Point{pt.X*sx + dx, pt.Y*sy + dy}
		}
		out[i] = Segment{Op: s.Op, Pts: pts}
	}
	return out
}

// Translate returns p shifted by (dx, dy).
func (p Path) Translate(dx, dy float64) Path { return p.Transform(1, 1, dx, dy) }

// Bounds returns the bounding box of all points, including control points.
// ok is false for an empty path.
func (p Path) Bounds() (min, max Point, ok bool) {
	pts := p.Points()
	if len(pts) == 0 {
		return Point{}, Point{}, false
	}
	min, max = pts[0], pts[0]
	for _, pt := range pts[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max, true
}

// String encodes the path as SVG path data with one decimal per coordinate.
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, s := range p {
		switch s.Op {
		case OpMove:
			parts = append(parts, "M"+FormatPoint(s.Pts[0]))
		case OpLine:
			parts = append(parts, "L"+FormatPoint(s.Pts[0]))
		case OpCubic:
			parts = append(parts, "C"+FormatPoint(s.Pts[0])+" "+FormatPoint(s.Pts[1])+" "+FormatPoint(s.Pts[2]))
		case OpClose:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

// FormatPoint renders p as "x,y" with one decimal.
func FormatPoint(p Point) string {
	return FormatCoord(p.X) + "," + FormatCoord(p.Y)
}

// FormatCoord renders v rounded to one decimal place.
func FormatCoord(v float64) string {
	r := Round1(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParsePath decodes absolute SVG path data using the M, L, C and Z commands.
// Coordinates following a command may repeat, as in "M0,0 L1,1 2,2".
func ParsePath(d string) (Path, error) {
	toks, err := tokenize(d)
	if err != nil {
		return nil, err
	}
	var p Path
	var cmd byte
	i := 0
	num := func() (float64, error) {
		if i >= len(toks) || toks[i].cmd != 0 {
			return 0, fmt.Errorf("path data: expected number after %q", string(cmd))
		}
		v := toks[i].val
		i++
		return v, nil
	}
	for i < len(toks) {
		if toks[i].cmd != 0 {
			cmd = toks[i].cmd
			i++
			if cmd == 'Z' {
				p.Close()
				continue
			}
		} else if cmd == 0 || cmd == 'Z' {
			return nil, fmt.Errorf("path data: number without command")
		}
		switch cmd {
		case 'M', 'L':
			x, err := num()
			if err != nil {
				return nil, err
			}
			y, err := num()
			if err != nil {
				return nil, err
			}
			if cmd == 'M' {
				p.MoveTo(x, y)
				cmd = 'L'
			} else {
				p.LineTo(x, y)
			}
		case 'C':
			var v [6]float64
			for k := range v {
				if v[k], err = num(); err != nil {
					return nil, err
				}
			}
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		default:
			return nil, fmt.Errorf("path data: unsupported command %q", string(cmd))
		}
	}
	return p, nil
}

type token struct {
	cmd byte
	val float64
}

func tokenize(d string) ([]token, error) {
	var toks []token
	rs := []rune(d)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r) || r == ',':
			i++
		case unicode.IsLetter(r):
			toks = append(toks, token{cmd: byte(unicode.ToUpper(r))})
			if unicode.IsLower(r) {
				return nil, fmt.Errorf("path data: relative command %q not supported", string(r))
			}
			i++
		default:
			j := i
			if rs[j] == '-' || rs[j] == '+' {
				j++
			}
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(string(rs[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("path data: bad number %q: %w", string(rs[i:j]), err)
			}
			toks = append(toks, token{val: v})
			i = j
		}
	}
	return toks, nil
}
