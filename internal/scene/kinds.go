package scene

import "fmt"

// ShapeKind is one of the fourteen placeable shapes.
type ShapeKind int

const (
	Rectangle ShapeKind = iota
	RoundedRect
	Oval
	Triangle
	Diamond
	Star
	Heart
	Pentagon
	Hexagon
	Octagon
	Cross
	Parallelogram
	Line
	Arrow
)

var shapeNames = [...]string{
	Rectangle:     "rectangle",
	RoundedRect:   "rounded-rect",
	Oval:          "oval",
	Triangle:      "triangle",
	Diamond:       "diamond",
	Star:          "star",
	Heart:         "heart",
	Pentagon:      "pentagon",
	Hexagon:       "hexagon",
	Octagon:       "octagon",
	Cross:         "cross",
	Parallelogram: "parallelogram",
	Line:          "line",
	Arrow:         "arrow",
}

// ShapeKinds lists every kind in shape panel order.
func ShapeKinds() []ShapeKind {
	out := make([]ShapeKind, len(shapeNames))
	for i := range out {
		out[i] = ShapeKind(i)
	}
	return out
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return shapeNames[k]
}

// Valid reports whether k is a known kind.
func (k ShapeKind) Valid() bool { return k >= 0 && int(k) < len(shapeNames) }

// IsLine reports whether k is drawn as a stroke with no height of its own.
func (k ShapeKind) IsLine() bool { return k == Line || k == Arrow }

// ParseShapeKind returns the kind named s.
func ParseShapeKind(s string) (ShapeKind, error) {
	for i, n := range shapeNames {
		if n == s {
			return ShapeKind(i), nil
		}
	}
	switch s {
	case "rect":
		return Rectangle, nil
	case "rounded-rectangle", "roundedrect":
		return RoundedRect, nil
	case "ellipse", "circle":
		return Oval, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// ClipShape masks an image overlay. The zero value leaves it unmasked.
type ClipShape struct {
	kind ShapeKind
	set  bool
}

// ClipNone is the unmasked clip.
var ClipNone = ClipShape{}

// ClipTo returns the clip for kind. Line kinds have no silhouette and give
// ClipNone.
func ClipTo(kind ShapeKind) ClipShape {
	if !kind.Valid() || kind.IsLine() {
		return ClipNone
	}
	return ClipShape{kind: kind, set: true}
}

// Kind returns the silhouette kind and whether a mask is set.
func (c ClipShape) Kind() (ShapeKind, bool) { return c.kind, c.set }

func (c ClipShape) String() string {
	if !c.set {
		return "none"
	}
	return c.kind.String()
}

// ClipShapes lists the selectable clips, ClipNone first.
func ClipShapes() []ClipShape {
	out := []ClipShape{ClipNone}
	for _, k := range ShapeKinds() {
		if !k.IsLine() {
			out = append(out, ClipTo(k))
		}
	}
	return out
}

// ParseClipShape accepts "none" or a non-line shape name.
func ParseClipShape(s string) (ClipShape, error) {
	if s == "none" || s == "" {
		return ClipNone, nil
	}
	k, err := ParseShapeKind(s)
	if err != nil {
		return ClipNone, err
	}
	if k.IsLine() {
		return ClipNone, fmt.Errorf("%s cannot clip an image", k)
	}
	return ClipTo(k), nil
}
