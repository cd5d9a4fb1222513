package interaction

import (
	"time"

	"github.com/example/snapedit/internal/geometry"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/shapes"
)

// TextBehavior moves one text item and watches for double taps.
type TextBehavior struct {
	item scene.TextItem
	drag Drag
	taps TapDetector

	// OnSelect runs on every grab.
	OnSelect func(id string)
	// OnEdit runs when a grab completes a double tap.
	OnEdit func(id string)
	// OnCommit receives the item at its new resting position. Only its
	// geometry is meant to be written back.
	OnCommit func(scene.TextItem)
}

// NewTextBehavior wraps item. now may be nil.
func NewTextBehavior(item scene.TextItem, now func() time.Time) *TextBehavior {
	return &TextBehavior{
		item: item,
		drag: NewDrag(geometry.Pt(item.X, item.Y)),
		taps: TapDetector{Now: now},
	}
}

// Sync replaces the wrapped item after an outside change. While a gesture is
// in progress only the style is taken and the live position stays.
func (b *TextBehavior) Sync(item scene.TextItem) {
	b.item = item
	if !b.drag.Active() {
		b.drag = NewDrag(geometry.Pt(item.X, item.Y))
	}
}

// Item returns the item at its live position.
func (b *TextBehavior) Item() scene.TextItem {
	it := b.item
	p := b.drag.Position()
	it.X, it.Y = p.X, p.Y
	return it
}

// Grab starts a move.
func (b *TextBehavior) Grab() {
	if b.taps.Tap() && b.OnEdit != nil {
		b.OnEdit(b.item.ID)
	}
	b.drag.Grab()
	if b.OnSelect != nil {
		b.OnSelect(b.item.ID)
	}
}

// Move applies the delta accumulated since Grab.
func (b *TextBehavior) Move(dx, dy float64) { b.drag.Move(dx, dy) }

// Translate moves the item by (dx, dy) as one gesture without counting a tap
// or selecting it.
func (b *TextBehavior) Translate(dx, dy float64) {
	b.drag.Grab()
	b.drag.Move(dx, dy)
	b.Release()
}

// Release commits the new position.
func (b *TextBehavior) Release() {
	if !b.drag.Active() {
		return
	}
	b.drag.Release()
	b.item = b.Item()
	if b.OnCommit != nil {
		b.OnCommit(b.item)
	}
}

// OverlayBehavior moves and resizes one image overlay.
type OverlayBehavior struct {
	item   scene.ImageOverlay
	drag   Drag
	resize Resize

	OnSelect func(id string)
	OnCommit func(scene.ImageOverlay)
}

// NewOverlayBehavior wraps item.
func NewOverlayBehavior(item scene.ImageOverlay) *OverlayBehavior {
	b := &OverlayBehavior{}
	b.reset(item)
	return b
}

func (b *OverlayBehavior) reset(item scene.ImageOverlay) {
	b.item = item
	b.drag = NewDrag(geometry.Pt(item.X, item.Y))
	b.resize = NewResize(Size{item.Width, item.Height}, Size{scene.MinOverlaySize, scene.MinOverlaySize}, false)
}

// Sync replaces the wrapped item. While a gesture is in progress the live
// geometry stays.
func (b *OverlayBehavior) Sync(item scene.ImageOverlay) {
	if b.drag.Active() || b.resize.Active() {
		b.item = item
		return
	}
	b.reset(item)
}

// Item returns the overlay with its live geometry.
func (b *OverlayBehavior) Item() scene.ImageOverlay {
	it := b.item
	p := b.drag.Position()
	s := b.resize.Size()
	it.X, it.Y = p.X, p.Y
	it.Width, it.Height = s.W, s.H
	return it
}

// Grab starts a move and selects the overlay.
func (b *OverlayBehavior) Grab() {
	b.drag.Grab()
	if b.OnSelect != nil {
		b.OnSelect(b.item.ID)
	}
}

// Move applies the delta accumulated since Grab.
func (b *OverlayBehavior) Move(dx, dy float64) { b.drag.Move(dx, dy) }

// Release commits the new position.
func (b *OverlayBehavior) Release() {
	if !b.drag.Active() {
		return
	}
	b.drag.Release()
	b.commit()
}

// GrabHandle starts a resize from the current size.
func (b *OverlayBehavior) GrabHandle() { b.resize.Grab() }

// MoveHandle applies the delta accumulated since GrabHandle.
func (b *OverlayBehavior) MoveHandle(dx, dy float64) { b.resize.Move(dx, dy) }

// ReleaseHandle commits the new size.
func (b *OverlayBehavior) ReleaseHandle() {
	if !b.resize.Active() {
		return
	}
	b.resize.Release()
	b.commit()
}

func (b *OverlayBehavior) commit() {
	b.item = b.Item()
	if b.OnCommit != nil {
		b.OnCommit(b.item)
	}
}

// ShapeBehavior moves and resizes one shape. Resizing grows the box from its
// top-left corner; line kinds only change length.
type ShapeBehavior struct {
	item   scene.ShapeItem
	drag   Drag
	resize Resize

	OnSelect func(id string)
	OnCommit func(scene.ShapeItem)
}

// NewShapeBehavior wraps item.
func NewShapeBehavior(item scene.ShapeItem) *ShapeBehavior {
	b := &ShapeBehavior{}
	b.reset(item)
	return b
}

func (b *ShapeBehavior) reset(item scene.ShapeItem) {
	b.item = item
	x, y, w, h := item.Box()
	b.drag = NewDrag(geometry.Pt(x, y))
	size := Size{shapes.ShapeWidth(w), shapes.ShapeHeight(item.Kind, h, item.StrokeWidth)}
	b.resize = NewResize(size, Size{scene.MinShapeWidth, scene.MinShapeHeight}, item.Kind.IsLine())
}

// Sync replaces the wrapped item. While a gesture is in progress the live
// geometry stays.
func (b *ShapeBehavior) Sync(item scene.ShapeItem) {
	if b.drag.Active() || b.resize.Active() {
		b.item = item
		return
	}
	b.reset(item)
}

// Size returns the live displayed size.
func (b *ShapeBehavior) Size() Size { return b.resize.Size() }

// Item returns the shape with its live geometry.
func (b *ShapeBehavior) Item() scene.ShapeItem {
	it := b.item
	_, _, _, h := it.Box()
	p := b.drag.Position()
	s := b.resize.Size()
	it.X1, it.Y1 = p.X, p.Y
	it.X2 = p.X + s.W
	if it.Kind.IsLine() {
		it.Y2 = p.Y + h
	} else {
		it.Y2 = p.Y + s.H
	}
	return it
}

// Grab starts a move and selects the shape.
func (b *ShapeBehavior) Grab() {
	b.drag.Grab()
	if b.OnSelect != nil {
		b.OnSelect(b.item.ID)
	}
}

// Move applies the delta accumulated since Grab.
func (b *ShapeBehavior) Move(dx, dy float64) { b.drag.Move(dx, dy) }

// Release commits the new position.
func (b *ShapeBehavior) Release() {
	if !b.drag.Active() {
		return
	}
	b.drag.Release()
	b.commit()
}

// GrabHandle starts a resize from the current size.
func (b *ShapeBehavior) GrabHandle() { b.resize.Grab() }

// MoveHandle applies the delta accumulated since GrabHandle.
func (b *ShapeBehavior) MoveHandle(dx, dy float64) { b.resize.Move(dx, dy) }

// ReleaseHandle commits the new size.
func (b *ShapeBehavior) ReleaseHandle() {
	if !b.resize.Active() {
		return
	}
	b.resize.Release()
	b.commit()
}

func (b *ShapeBehavior) commit() {
	b.item = b.Item()
	if b.OnCommit != nil {
		b.OnCommit(b.item)
	}
}
