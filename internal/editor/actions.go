package editor

import (
	"context"
	"image/color"
	"strings"

	"github.com/example/snapedit/internal/scene"
)

// SelectTool switches tools. Choosing the active tool again returns to
// ToolNone. Every switch abandons the gesture in progress and clears the
// selection; entering crop resets the crop box and entering text opens the
// text modal. ToolImage only opens the picker.
func (e *Editor) SelectTool(t Tool) {
	if t == ToolImage {
		e.PickImage(context.Background())
		return
	}
	e.cancelGesture()
	e.deselect()
	next := t
	if e.tool == t {
		next = ToolNone
	}
	e.tool = next
	e.panel = next == ToolShape
	switch next {
	case ToolCrop:
		e.crop.Reset()
	case ToolText:
		e.OpenTextModal()
	}
	e.pen.Cancel()
	e.changed()
}

// TextModal is the state of the text entry dialog.
type TextModal struct {
	Open  bool
	Input string
	// Editing holds the id of the text being edited, empty when adding.
	Editing string
}

// TextModal returns the text entry dialog state.
func (e *Editor) TextModal() TextModal { return e.modal }

// OpenTextModal opens the dialog for a new text item.
func (e *Editor) OpenTextModal() {
	e.modal = TextModal{Open: true}
	e.changed()
}

// EditText opens the dialog on an existing item and loads its style into the
// current style.
func (e *Editor) EditText(id string) {
	t, i := e.items.Text(id)
	if i < 0 {
		return
	}
	e.style.StrokeColor = t.Color
	e.style.FontSize = t.FontSize
	e.style.Bold = t.Bold
	e.style.Italic = t.Italic
	e.modal = TextModal{Open: true, Input: t.Text, Editing: id}
	e.changed()
}

// SetTextInput replaces the dialog's input.
func (e *Editor) SetTextInput(s string) { e.modal.Input = s }

// ToggleBold flips bold for new and edited text.
func (e *Editor) ToggleBold() {
	e.style.Bold = !e.style.Bold
	e.changed()
}

// ToggleItalic flips italic for new and edited text.
func (e *Editor) ToggleItalic() {
	e.style.Italic = !e.style.Italic
	e.changed()
}

// ConfirmText adds or updates a text item from the dialog. Blank input is
// ignored and leaves the dialog open.
func (e *Editor) ConfirmText() {
	content := strings.TrimSpace(e.modal.Input)
	if content == "" {
		return
	}
	e.pushSnapshot()
	if id := e.modal.Editing; id != "" {
		if _, i := e.items.Text(id); i >= 0 {
			t := &e.items.Texts[i]
			t.Text = content
			t.Color = e.style.StrokeColor
			t.FontSize = e.style.FontSize
			t.Bold = e.style.Bold
			t.Italic = e.style.Italic
		}
	} else {
		half := float64(e.size) / 2
		t := scene.TextItem{
			ID:       scene.NewID(),
			Text:     content,
			X:        half - 60,
			Y:        half - 20,
			Color:    e.style.StrokeColor,
			FontSize: e.style.FontSize,
			Bold:     e.style.Bold,
			Italic:   e.style.Italic,
		}
		e.items.Texts = append(e.items.Texts, t)
		e.sel = scene.Selection{Kind: scene.SelectText, ID: t.ID}
	}
	e.modal = TextModal{}
	e.syncBehaviors()
	e.changed()
}

// CancelText closes the dialog without changes.
func (e *Editor) CancelText() {
	e.modal = TextModal{}
	e.changed()
}

// SetStrokeColor changes the current colour and recolours the selected text
// or shape.
func (e *Editor) SetStrokeColor(c color.RGBA) {
	e.style.StrokeColor = c
	switch e.sel.Kind {
	case scene.SelectText:
		if _, i := e.items.Text(e.sel.ID); i >= 0 {
			e.pushSnapshot()
			e.items.Texts[i].Color = c
		}
	case scene.SelectShape:
		if _, i := e.items.Shape(e.sel.ID); i >= 0 {
			e.pushSnapshot()
			e.items.Shapes[i].Color = c
		}
	}
	e.syncBehaviors()
	e.changed()
}

// AdjustStrokeWidth changes the current stroke width by delta within its
// range and applies it to the selected shape.
func (e *Editor) AdjustStrokeWidth(delta float64) {
	next := scene.ClampStrokeWidth(e.style.StrokeWidth + delta)
	e.style.StrokeWidth = next
	if e.sel.Kind == scene.SelectShape {
		if _, i := e.items.Shape(e.sel.ID); i >= 0 {
			e.pushSnapshot()
			e.items.Shapes[i].StrokeWidth = next
		}
	}
	e.syncBehaviors()
	e.changed()
}

// AdjustFontSize changes the current font size by delta within its range and
// applies it to the selected text.
func (e *Editor) AdjustFontSize(delta float64) {
	next := scene.ClampFontSize(e.style.FontSize + delta)
	e.style.FontSize = next
	if e.sel.Kind == scene.SelectText {
		if _, i := e.items.Text(e.sel.ID); i >= 0 {
			e.pushSnapshot()
			e.items.Texts[i].FontSize = next
		}
	}
	e.syncBehaviors()
	e.changed()
}

// AdjustSize steps the font size in text mode and the stroke width otherwise,
// matching the single size control of the toolbar.
func (e *Editor) AdjustSize(steps int) {
	if e.tool == ToolText {
		e.AdjustFontSize(float64(steps * scene.FontSizeStep))
		return
	}
	e.AdjustStrokeWidth(float64(steps))
}

// SetFilled sets whether new shapes are filled.
func (e *Editor) SetFilled(filled bool) {
	e.style.Filled = filled
	e.changed()
}

// SetFillColor sets the fill colour for new shapes.
func (e *Editor) SetFillColor(c color.RGBA) {
	e.style.FillColor = c
	e.changed()
}

// SetClipShape masks the selected overlay. It does nothing without an
// overlay selected.
func (e *Editor) SetClipShape(c scene.ClipShape) {
	if e.sel.Kind != scene.SelectOverlay {
		return
	}
	_, i := e.items.Overlay(e.sel.ID)
	if i < 0 {
		return
	}
	e.pushSnapshot()
	e.items.Overlays[i].Clip = c
	e.syncBehaviors()
	e.changed()
}

// AddShape places a shape of kind in the top-right corner with the current
// style and selects it.
func (e *Editor) AddShape(kind scene.ShapeKind) scene.ShapeItem {
	const margin, w = 20, 120
	h := 80.0
	if kind.IsLine() {
		h = 0
	}
	x1 := float64(e.size) - margin - w
	s := scene.ShapeItem{
		ID:          scene.NewID(),
		Kind:        kind,
		X1:          x1,
		Y1:          margin,
		X2:          x1 + w,
		Y2:          margin + h,
		Color:       e.style.StrokeColor,
		StrokeWidth: e.style.StrokeWidth,
		Filled:      e.style.Filled,
		FillColor:   e.style.FillColor,
	}
	e.pushSnapshot()
	e.items.Shapes = append(e.items.Shapes, s)
	e.selectItem(scene.SelectShape, s.ID)
	return s
}

// DeleteSelected removes the selected item.
func (e *Editor) DeleteSelected() {
	if e.sel.None() {
		return
	}
	e.cancelGesture()
	e.pushSnapshot()
	e.items.Remove(e.sel)
	e.deselect()
	e.syncBehaviors()
	e.changed()
}

// ClearAll removes every entity.
func (e *Editor) ClearAll() {
	e.pushSnapshot()
	e.items = scene.Collections{}
	e.deselect()
	e.dropBehaviors()
	e.changed()
}

// Rotate turns the base photo 90 degrees clockwise.
func (e *Editor) Rotate() {
	e.pushSnapshot()
	e.base = e.base.Rotate()
	e.changed()
}

// FlipH mirrors the base photo horizontally.
func (e *Editor) FlipH() {
	e.pushSnapshot()
	e.base.FlipH = !e.base.FlipH
	e.changed()
}

// FlipV mirrors the base photo vertically.
func (e *Editor) FlipV() {
	e.pushSnapshot()
	e.base.FlipV = !e.base.FlipV
	e.changed()
}
