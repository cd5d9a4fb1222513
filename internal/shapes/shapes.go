// Package shapes builds the vector outlines for placed shapes and the
// silhouettes used to clip image overlays.
package shapes

import (
	"math"

	"github.com/example/snapedit/internal/geometry"
	"github.com/example/snapedit/internal/scene"
)

// Element is one stroked path of a drawing. Fillable elements also take the
// shape's fill colour when it is filled.
type Element struct {
	Path     geometry.Path
	Fillable bool
	// Round asks for round caps and joins.
	Round bool
}

// Drawing is a shape laid out in its own view. Width and Height are the view
// size, Pad the inset of the shape box from the view's top-left.
type Drawing struct {
	Width, Height float64
	Pad           float64
	Elements      []Element
}

// Pad returns the margin kept around a shape so its stroke is never clipped.
func Pad(strokeWidth float64) float64 {
	return math.Ceil(strokeWidth/2) + 4
}

// ArrowHead returns the arrow head length for a stroke width.
func ArrowHead(strokeWidth float64) float64 {
	return math.Max(16, strokeWidth*4)
}

// ShapeHeight returns the height a shape of the given box is displayed at.
// Line kinds ignore h and derive their height from the stroke; other kinds are
// floored to the minimum shape height.
func ShapeHeight(kind scene.ShapeKind, h, strokeWidth float64) float64 {
	if kind.IsLine() {
		return strokeWidth + 24
	}
	return math.Max(h, scene.MinShapeHeight)
}

// ShapeWidth floors w to the minimum shape width.
func ShapeWidth(w float64) float64 {
	return math.Max(w, scene.MinShapeWidth)
}

// Outline lays out kind at size w by h with the given stroke width.
func Outline(kind scene.ShapeKind, w, h, sw float64) Drawing {
	pad := Pad(sw)
	d := Drawing{Width: w + 2*pad, Height: h + 2*pad, Pad: pad}
	cx, cy := pad+w/2, pad+h/2
	fill := func(p geometry.Path) {
		d.Elements = append(d.Elements, Element{Path: p, Fillable: true, Round: true})
	}
	switch kind {
	case scene.Rectangle:
		fill(geometry.RectOutline(pad, pad, w, h))
	case scene.RoundedRect:
		fill(geometry.RoundedRectOutline(pad, pad, w, h, math.Min(w, h)*0.2))
	case scene.Oval:
		fill(geometry.EllipseOutline(cx, cy, w/2, h/2))
	case scene.Line:
		d.Height = sw + 8
		mid := d.Height / 2
		var p geometry.Path
		p.MoveTo(pad, mid)
		p.LineTo(w+pad, mid)
		d.Elements = []Element{{Path: p, Round: true}}
	case scene.Arrow:
		hl := ArrowHead(sw)
		d.Height = hl + sw + 4
		mid := d.Height / 2
		end := w + pad
		var shaft, head geometry.Path
		shaft.MoveTo(pad, mid)
		shaft.LineTo(end, mid)
		head.MoveTo(end-hl*0.7, mid-hl*0.5)
		head.LineTo(end, mid)
		head.LineTo(end-hl*0.7, mid+hl*0.5)
		d.Elements = []Element{{Path: shaft, Round: true}, {Path: head, Round: true}}
	case scene.Triangle:
		fill(geometry.Polygon([]geometry.Point{{X: cx, Y: pad}, {X: pad, Y: pad + h}, {X: pad + w, Y: pad + h}}))
	case scene.Diamond:
		fill(geometry.Polygon([]geometry.Point{{X: cx, Y: pad}, {X: pad + w, Y: cy}, {X: cx, Y: pad + h}, {X: pad, Y: cy}}))
	case scene.Star:
		fill(geometry.StarOutline(cx, cy, w/2, h/2))
	case scene.Heart:
		fill(geometry.HeartOutline(pad, pad, w, h))
	case scene.Pentagon:
		fill(geometry.Polygon(geometry.RegularPolygonVertices(cx, cy, w/2, h/2, 5)))
	case scene.Hexagon:
		fill(geometry.Polygon(geometry.RegularPolygonVertices(cx, cy, w/2, h/2, 6)))
	case scene.Octagon:
		fill(geometry.Polygon(geometry.RegularPolygonVertices(cx, cy, w/2, h/2, 8)))
	case scene.Cross:
		fill(geometry.CrossOutline(pad, pad, w, h, w/3, h/3))
	case scene.Parallelogram:
		skew := w * 0.2
		fill(geometry.Polygon([]geometry.Point{
			{X: pad + skew, Y: pad},
			{X: pad + w, Y: pad},
			{X: pad + w - skew, Y: pad + h},
			{X: pad, Y: pad + h},
		}))
	}
	return d
}

// Layout returns the drawing for a shape entity together with the canvas
// position of the drawing's top-left corner.
func Layout(s scene.ShapeItem) (d Drawing, x, y float64) {
	bx, by, bw, bh := s.Box()
	w := ShapeWidth(bw)
	h := ShapeHeight(s.Kind, bh, s.StrokeWidth)
	d = Outline(s.Kind, w, h, s.StrokeWidth)
	return d, bx - d.Pad, by - d.Pad
}

// ClipOutline returns the silhouette for clip in a 0-100 box. ok is false for
// ClipNone.
func ClipOutline(clip scene.ClipShape) (p geometry.Path, ok bool) {
	kind, set := clip.Kind()
	if !set {
		return nil, false
	}
	switch kind {
	case scene.Rectangle:
		return geometry.RectOutline(0, 0, 100, 100), true
	case scene.RoundedRect:
		return geometry.RoundedRectOutline(0, 0, 100, 100, 20), true
	case scene.Oval:
		return geometry.EllipseOutline(50, 50, 50, 50), true
	case scene.Triangle:
		return geometry.Polygon([]geometry.Point{{X: 50, Y: 2}, {X: 2, Y: 98}, {X: 98, Y: 98}}), true
	case scene.Diamond:
		return geometry.Polygon([]geometry.Point{{X: 50, Y: 2}, {X: 98, Y: 50}, {X: 50, Y: 98}, {X: 2, Y: 50}}), true
	case scene.Star:
		return geometry.StarOutline(50, 50, 48, 48), true
	case scene.Heart:
		return geometry.HeartOutline(2, 4, 96, 92), true
	case scene.Pentagon:
		return geometry.Polygon(geometry.RegularPolygonVertices(50, 54, 48, 46, 5)), true
	case scene.Hexagon:
		return geometry.Polygon(geometry.RegularPolygonVertices(50, 50, 48, 48, 6)), true
	case scene.Octagon:
		return geometry.Polygon(geometry.RegularPolygonVertices(50, 50, 48, 48, 8)), true
	case scene.Cross:
		return geometry.CrossOutline(0, 0, 100, 100, 33, 33), true
	case scene.Parallelogram:
		return geometry.Polygon([]geometry.Point{{X: 20, Y: 0}, {X: 100, Y: 0}, {X: 80, Y: 100}, {X: 0, Y: 100}}), true
	}
	return nil, false
}
