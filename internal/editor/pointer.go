package editor

import (
	"github.com/example/snapedit/internal/interaction"
	"github.com/example/snapedit/internal/render"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/shapes"
)

type gestureTarget int

const (
	targetNone gestureTarget = iota
	targetPen
	targetCrop
	targetItem
	targetHandle
)

// gesture is the pointer interaction in progress.
type gesture struct {
	target gestureTarget
	kind   scene.SelectKind
	id     string
	startX float64
	startY float64
}

// PointerDown starts a gesture at canvas position (x, y). In draw mode it
// begins a stroke; in crop mode it grabs the crop handle or box; otherwise it
// grabs the resize handle of the selected item or the topmost item under the
// pointer. A press on empty canvas clears the selection.
func (e *Editor) PointerDown(x, y float64) {
	e.gesture = gesture{startX: x, startY: y}
	switch e.tool {
	case ToolDraw:
		e.pen.Start(x, y)
		e.gesture.target = targetPen
	case ToolCrop:
		switch {
		case e.crop.HandleAt(x, y):
			e.crop.GrabHandle()
		case e.crop.Box().Contains(x, y):
			e.crop.Grab()
		default:
			return
		}
		e.gesture.target = targetCrop
	default:
		if e.grabHandle(x, y) {
			break
		}
		kind, id, ok := e.hit(x, y)
		if !ok {
			e.Deselect()
			return
		}
		e.gesture.target = targetItem
		e.gesture.kind = kind
		e.gesture.id = id
		switch kind {
		case scene.SelectText:
			if b := e.textBehavior(id); b != nil {
				b.Grab()
			}
		case scene.SelectOverlay:
			if b := e.overlayBehavior(id); b != nil {
				b.Grab()
			}
		case scene.SelectShape:
			if b := e.shapeBehavior(id); b != nil {
				b.Grab()
			}
		}
	}
	e.changed()
}

// PointerMove continues the gesture with the pointer at (x, y).
func (e *Editor) PointerMove(x, y float64) {
	dx, dy := x-e.gesture.startX, y-e.gesture.startY
	switch e.gesture.target {
	case targetPen:
		e.pen.Extend(x, y)
	case targetCrop:
		e.crop.Move(dx, dy)
	case targetItem:
		switch e.gesture.kind {
		case scene.SelectText:
			if b := e.textBehavior(e.gesture.id); b != nil {
				b.Move(dx, dy)
			}
		case scene.SelectOverlay:
			if b := e.overlayBehavior(e.gesture.id); b != nil {
				b.Move(dx, dy)
			}
		case scene.SelectShape:
			if b := e.shapeBehavior(e.gesture.id); b != nil {
				b.Move(dx, dy)
			}
		}
	case targetHandle:
		switch e.gesture.kind {
		case scene.SelectOverlay:
			if b := e.overlayBehavior(e.gesture.id); b != nil {
				b.MoveHandle(dx, dy)
			}
		case scene.SelectShape:
			if b := e.shapeBehavior(e.gesture.id); b != nil {
				b.MoveHandle(dx, dy)
			}
		}
	default:
		return
	}
	e.changed()
}

// PointerUp ends the gesture. A finished stroke becomes a path with the
// current stroke colour and width.
func (e *Editor) PointerUp() {
	g := e.gesture
	e.gesture = gesture{}
	switch g.target {
	case targetPen:
		data, ok := e.pen.Finish()
		if !ok {
			return
		}
		e.pushSnapshot()
		e.items.Paths = append(e.items.Paths, scene.DrawPath{
			ID:          scene.NewID(),
			Data:        data,
			Color:       e.style.StrokeColor,
			StrokeWidth: e.style.StrokeWidth,
		})
	case targetCrop:
		e.crop.Release()
	case targetItem:
		switch g.kind {
		case scene.SelectText:
			if b := e.textBehavior(g.id); b != nil {
				b.Release()
			}
		case scene.SelectOverlay:
			if b := e.overlayBehavior(g.id); b != nil {
				b.Release()
			}
		case scene.SelectShape:
			if b := e.shapeBehavior(g.id); b != nil {
				b.Release()
			}
		}
	case targetHandle:
		switch g.kind {
		case scene.SelectOverlay:
			if b := e.overlayBehavior(g.id); b != nil {
				b.ReleaseHandle()
			}
		case scene.SelectShape:
			if b := e.shapeBehavior(g.id); b != nil {
				b.ReleaseHandle()
			}
		}
	default:
		return
	}
	e.changed()
}

// MoveCrop drags the crop box by (dx, dy) in one gesture.
func (e *Editor) MoveCrop(dx, dy float64) scene.CropBox {
	e.crop.Grab()
	box := e.crop.Move(dx, dy)
	e.crop.Release()
	e.changed()
	return box
}

// ResizeCrop grows the crop box by (dw, dh) from its bottom-right corner in
// one gesture.
func (e *Editor) ResizeCrop(dw, dh float64) scene.CropBox {
	e.crop.GrabHandle()
	box := e.crop.Move(dw, dh)
	e.crop.Release()
	e.changed()
	return box
}

func (e *Editor) grabHandle(x, y float64) bool {
	if e.sel.Kind != scene.SelectOverlay && e.sel.Kind != scene.SelectShape {
		return false
	}
	r, ok := e.selectionRect()
	if !ok || !scene.HandleHit(r.X+r.W, r.Y+r.H, x, y) {
		return false
	}
	if e.sel.Kind == scene.SelectOverlay {
		b := e.overlayBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.GrabHandle()
	} else {
		b := e.shapeBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.GrabHandle()
	}
	e.gesture.target = targetHandle
	e.gesture.kind = e.sel.Kind
	e.gesture.id = e.sel.ID
	return true
}

// hit finds the topmost item under (x, y). Texts sit above shapes, which sit
// above overlays.
func (e *Editor) hit(x, y float64) (scene.SelectKind, string, bool) {
	items := e.Items()
	inside := func(r render.Rect) bool {
		return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
	}
	for i := len(items.Texts) - 1; i >= 0; i-- {
		if inside(e.textRect(items.Texts[i])) {
			return scene.SelectText, items.Texts[i].ID, true
		}
	}
	for i := len(items.Shapes) - 1; i >= 0; i-- {
		if inside(shapeRect(items.Shapes[i])) {
			return scene.SelectShape, items.Shapes[i].ID, true
		}
	}
	for i := len(items.Overlays) - 1; i >= 0; i-- {
		if inside(overlayRect(items.Overlays[i])) {
			return scene.SelectOverlay, items.Overlays[i].ID, true
		}
	}
	return scene.SelectNone, "", false
}

func (e *Editor) selectionRect() (render.Rect, bool) {
	items := e.Items()
	switch e.sel.Kind {
	case scene.SelectText:
		if t, i := items.Text(e.sel.ID); i >= 0 {
			return e.textRect(t), true
		}
	case scene.SelectOverlay:
		if o, i := items.Overlay(e.sel.ID); i >= 0 {
			return overlayRect(o), true
		}
	case scene.SelectShape:
		if s, i := items.Shape(e.sel.ID); i >= 0 {
			return shapeRect(s), true
		}
	}
	return render.Rect{}, false
}

func (e *Editor) textRect(t scene.TextItem) render.Rect {
	w, h := e.renderer.Fonts.MeasureText(t.Text, t.FontSize, t.Bold, t.Italic)
	return render.Rect{X: t.X, Y: t.Y, W: w, H: h}
}

func overlayRect(o scene.ImageOverlay) render.Rect {
	return render.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

func shapeRect(s scene.ShapeItem) render.Rect {
	x, y, w, h := s.Box()
	return render.Rect{X: x, Y: y, W: shapes.ShapeWidth(w), H: shapes.ShapeHeight(s.Kind, h, s.StrokeWidth)}
}

// textBehavior returns the behaviour for a text item, creating it on first
// use. It returns nil when no such item exists.
func (e *Editor) textBehavior(id string) *interaction.TextBehavior {
	if b, ok := e.texts[id]; ok {
		return b
	}
	t, i := e.items.Text(id)
	if i < 0 {
		return nil
	}
	b := interaction.NewTextBehavior(t, e.now)
	b.OnSelect = func(id string) { e.selectItem(scene.SelectText, id) }
	b.OnEdit = e.EditText
	b.OnCommit = func(t scene.TextItem) {
		if _, i := e.items.Text(t.ID); i >= 0 {
			e.items.Texts[i].X, e.items.Texts[i].Y = t.X, t.Y
		}
	}
	e.texts[id] = b
	return b
}

func (e *Editor) overlayBehavior(id string) *interaction.OverlayBehavior {
	if b, ok := e.overlays[id]; ok {
		return b
	}
	o, i := e.items.Overlay(id)
	if i < 0 {
		return nil
	}
	b := interaction.NewOverlayBehavior(o)
	b.OnSelect = func(id string) { e.selectItem(scene.SelectOverlay, id) }
	b.OnCommit = func(o scene.ImageOverlay) {
		if _, i := e.items.Overlay(o.ID); i >= 0 {
			cur := &e.items.Overlays[i]
			cur.X, cur.Y = o.X, o.Y
			cur.Width, cur.Height = o.Width, o.Height
		}
	}
	e.overlays[id] = b
	return b
}

func (e *Editor) shapeBehavior(id string) *interaction.ShapeBehavior {
	if b, ok := e.shapes[id]; ok {
		return b
	}
	s, i := e.items.Shape(id)
	if i < 0 {
		return nil
	}
	b := interaction.NewShapeBehavior(s)
	b.OnSelect = func(id string) { e.selectItem(scene.SelectShape, id) }
	b.OnCommit = func(s scene.ShapeItem) {
		if _, i := e.items.Shape(s.ID); i >= 0 {
			cur := &e.items.Shapes[i]
			cur.X1, cur.Y1, cur.X2, cur.Y2 = s.X1, s.Y1, s.X2, s.Y2
		}
	}
	e.shapes[id] = b
	return b
}

// syncBehaviors refreshes behaviours from the committed items and drops those
// whose item is gone.
func (e *Editor) syncBehaviors() {
	for id, b := range e.texts {
		if t, i := e.items.Text(id); i >= 0 {
			b.Sync(t)
		} else {
			delete(e.texts, id)
		}
	}
	for id, b := range e.overlays {
		if o, i := e.items.Overlay(id); i >= 0 {
			b.Sync(o)
		} else {
			delete(e.overlays, id)
		}
	}
	for id, b := range e.shapes {
		if s, i := e.items.Shape(id); i >= 0 {
			b.Sync(s)
		} else {
			delete(e.shapes, id)
		}
	}
}

func (e *Editor) dropBehaviors() {
	e.cancelGesture()
	clear(e.texts)
	clear(e.overlays)
	clear(e.shapes)
}

// cancelGesture abandons the gesture in progress. A stroke is discarded and a
// dragged item falls back to its committed geometry.
func (e *Editor) cancelGesture() {
	g := e.gesture
	e.gesture = gesture{}
	switch g.target {
	case targetPen:
		e.pen.Cancel()
	case targetCrop:
		e.crop.Release()
	case targetItem, targetHandle:
		switch g.kind {
		case scene.SelectText:
			delete(e.texts, g.id)
		case scene.SelectOverlay:
			delete(e.overlays, g.id)
		case scene.SelectShape:
			delete(e.shapes, g.id)
		}
	}
}

// DragSelected moves the selected item by (dx, dy) as one gesture. It reports
// false without a selection.
func (e *Editor) DragSelected(dx, dy float64) bool {
	switch e.sel.Kind {
	case scene.SelectText:
		b := e.textBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.Translate(dx, dy)
	case scene.SelectOverlay:
		b := e.overlayBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.Grab()
		b.Move(dx, dy)
		b.Release()
	case scene.SelectShape:
		b := e.shapeBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.Grab()
		b.Move(dx, dy)
		b.Release()
	default:
		return false
	}
	e.changed()
	return true
}

// ResizeSelected drags the resize handle of the selected overlay or shape by
// (dw, dh) as one gesture. Texts have no handle.
func (e *Editor) ResizeSelected(dw, dh float64) bool {
	switch e.sel.Kind {
	case scene.SelectOverlay:
		b := e.overlayBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.GrabHandle()
		b.MoveHandle(dw, dh)
		b.ReleaseHandle()
	case scene.SelectShape:
		b := e.shapeBehavior(e.sel.ID)
		if b == nil {
			return false
		}
		b.GrabHandle()
		b.MoveHandle(dw, dh)
		b.ReleaseHandle()
	default:
		return false
	}
	e.changed()
	return true
}
