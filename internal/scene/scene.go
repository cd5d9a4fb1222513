// Package scene holds the annotation entities placed over a base photo and the
// value types shared by the editor: style, selection, crop box and snapshots.
package scene

import (
	"image/color"

	"github.com/google/uuid"
)

const (
	// DefaultCanvasSize is the side of the square compositing surface.
	DefaultCanvasSize = 375
	// MinOverlaySize is the smallest width or height an image overlay resizes to.
	MinOverlaySize = 60
	// InitialOverlaySize is the side of a freshly picked image overlay.
	InitialOverlaySize = 160
	// MinShapeWidth and MinShapeHeight floor shape resizes.
	MinShapeWidth  = 30
	MinShapeHeight = 20
	// MinCropSize is the smallest side the crop box resizes to.
	MinCropSize = 60
	// HandleHitSize is the square hit area of a resize handle.
	HandleHitSize = 32
)

// NewID returns a fresh entity identifier.
func NewID() string { return uuid.NewString() }

// TextItem is a text label on the canvas.
type TextItem struct {
	ID       string
	Text     string
	X, Y     float64
	Color    color.RGBA
	FontSize float64
	Bold     bool
	Italic   bool
}

// ImageOverlay is a secondary image placed over the base photo, optionally
// masked to a shape silhouette.
type ImageOverlay struct {
	ID            string
	URI           string
	X, Y          float64
	Width, Height float64
	Clip          ClipShape
}

// DrawPath is a committed freehand stroke. Data holds path data in canvas
// coordinates.
type DrawPath struct {
	ID          string
	Data        string
	Color       color.RGBA
	StrokeWidth float64
}

// ShapeItem is a vector shape spanning the box (X1,Y1)-(X2,Y2).
type ShapeItem struct {
	ID          string
	Kind        ShapeKind
	X1, Y1      float64
	X2, Y2      float64
	Color       color.RGBA
	StrokeWidth float64
	Filled      bool
	FillColor   color.RGBA
}

// Box returns the normalised top-left corner and size of the shape's bounding
// box.
func (s ShapeItem) Box() (x, y, w, h float64) {
	x, y = min(s.X1, s.X2), min(s.Y1, s.Y2)
	w, h = max(s.X1, s.X2)-x, max(s.Y1, s.Y2)-y
	return x, y, w, h
}

// Collections groups the four entity lists of a scene.
type Collections struct {
	Texts    []TextItem
	Overlays []ImageOverlay
	Paths    []DrawPath
	Shapes   []ShapeItem
}

// Clone returns a copy sharing no slices with c.
func (c Collections) Clone() Collections {
	return Collections{
		Texts:    append([]TextItem(nil), c.Texts...),
		Overlays: append([]ImageOverlay(nil), c.Overlays...),
		Paths:    append([]DrawPath(nil), c.Paths...),
		Shapes:   append([]ShapeItem(nil), c.Shapes...),
	}
}

// Len returns the total number of entities.
func (c Collections) Len() int {
	return len(c.Texts) + len(c.Overlays) + len(c.Paths) + len(c.Shapes)
}

// Text returns the text with id and its index, or -1.
func (c Collections) Text(id string) (TextItem, int) {
	for i, t := range c.Texts {
		if t.ID == id {
			return t, i
		}
	}
	return TextItem{}, -1
}

// Overlay returns the overlay with id and its index, or -1.
func (c Collections) Overlay(id string) (ImageOverlay, int) {
	for i, o := range c.Overlays {
		if o.ID == id {
			return o, i
		}
	}
	return ImageOverlay{}, -1
}

// Shape returns the shape with id and its index, or -1.
func (c Collections) Shape(id string) (ShapeItem, int) {
	for i, s := range c.Shapes {
		if s.ID == id {
			return s, i
		}
	}
	return ShapeItem{}, -1
}

// Remove deletes the entity referenced by sel. It reports whether anything
// was removed.
func (c *Collections) Remove(sel Selection) bool {
	switch sel.Kind {
	case SelectText:
		if _, i := c.Text(sel.ID); i >= 0 {
			c.Texts = append(c.Texts[:i:i], c.Texts[i+1:]...)
			return true
		}
	case SelectOverlay:
		if _, i := c.Overlay(sel.ID); i >= 0 {
			c.Overlays = append(c.Overlays[:i:i], c.Overlays[i+1:]...)
			return true
		}
	case SelectShape:
		if _, i := c.Shape(sel.ID); i >= 0 {
			c.Shapes = append(c.Shapes[:i:i], c.Shapes[i+1:]...)
			return true
		}
	}
	return false
}

// BaseLayer is the photo under the annotations plus its whole-image
// transforms. Rotation is in degrees, one of 0, 90, 180, 270.
type BaseLayer struct {
	URI      string
	Rotation int
	FlipH    bool
	FlipV    bool
}

// Rotate turns the base layer a further 90 degrees clockwise.
func (b BaseLayer) Rotate() BaseLayer {
	b.Rotation = (b.Rotation + 90) % 360
	return b
}

// Snapshot is an immutable copy of the scene used for undo.
type Snapshot struct {
	Items Collections
	Base  BaseLayer
}

// SelectKind names the collection a selection points into.
type SelectKind int

const (
	SelectNone SelectKind = iota
	SelectText
	SelectOverlay
	SelectShape
)

func (k SelectKind) String() string {
	switch k {
	case SelectText:
		return "text"
	case SelectOverlay:
		return "overlay"
	case SelectShape:
		return "shape"
	}
	return "none"
}

// ParseSelectKind maps "text", "overlay" or "shape" to its kind.
func ParseSelectKind(s string) (SelectKind, bool) {
	switch s {
	case "text":
		return SelectText, true
	case "overlay", "image":
		return SelectOverlay, true
	case "shape":
		return SelectShape, true
	}
	return SelectNone, false
}

// Selection identifies at most one selected entity.
type Selection struct {
	Kind SelectKind
	ID   string
}

// None reports whether nothing is selected.
func (s Selection) None() bool { return s.Kind == SelectNone || s.ID == "" }

// Is reports whether s selects the entity id of kind k.
func (s Selection) Is(k SelectKind, id string) bool { return s.Kind == k && s.ID == id }
