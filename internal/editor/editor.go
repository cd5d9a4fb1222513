// Package editor is the annotation editor shell. It owns the scene, the
// current style, the active tool and the selection, and runs the crop and
// export pipelines against the picker and rasterizer collaborators.
//
// An Editor is driven from one goroutine and is not safe for concurrent use.
package editor

import (
	"errors"
	"time"

	"github.com/example/snapedit/internal/history"
	"github.com/example/snapedit/internal/interaction"
	"github.com/example/snapedit/internal/picker"
	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/render"
	"github.com/example/snapedit/internal/scene"
)

// ErrBusy is returned when a crop or save is requested while one is running.
var ErrBusy = errors.New("editor is busy")

// Editor is the editing session for one base photo.
type Editor struct {
	size    int
	items   scene.Collections
	base    scene.BaseLayer
	sel     scene.Selection
	tool    Tool
	style   scene.Style
	panel   bool
	history *history.Stack
	crop    *interaction.Crop
	pen     interaction.Freehand
	modal   TextModal
	busy    bool
	staged  string
	gesture gesture

	texts    map[string]*interaction.TextBehavior
	overlays map[string]*interaction.OverlayBehavior
	shapes   map[string]*interaction.ShapeBehavior

	historyLimit int
	picker       picker.Picker
	rasterizer   rasterizer.Rasterizer
	settler      rasterizer.Settler
	alerter      Alerter
	renderer     *render.Renderer
	export       rasterizer.Options
	now          func() time.Time
	onSave       func(ref string)
	onCrop       func(uri string)
	onClose      func()
	onChange     func()
}

// Option configures an Editor.
type Option func(*Editor)

// WithImage sets the initial base photo.
func WithImage(uri string) Option { return func(e *Editor) { e.base.URI = uri } }

// WithCanvasSize sets the side of the square canvas in pixels.
func WithCanvasSize(size int) Option {
	return func(e *Editor) {
		if size > 0 {
			e.size = size
		}
	}
}

// WithStyle sets the initial current style.
func WithStyle(s scene.Style) Option { return func(e *Editor) { e.style = s } }

// WithHistoryLimit bounds the undo stack.
func WithHistoryLimit(n int) Option { return func(e *Editor) { e.historyLimit = n } }

// WithPicker sets the image source used by PickImage.
func WithPicker(p picker.Picker) Option { return func(e *Editor) { e.picker = p } }

// WithRasterizer sets the collaborator that writes captures.
func WithRasterizer(r rasterizer.Rasterizer) Option { return func(e *Editor) { e.rasterizer = r } }

// WithSettler sets how the editor waits before each capture.
func WithSettler(s rasterizer.Settler) Option { return func(e *Editor) { e.settler = s } }

// WithAlerter sets where user facing errors are shown.
func WithAlerter(a Alerter) Option { return func(e *Editor) { e.alerter = a } }

// WithRenderer shares a renderer, and its image cache, with the host.
func WithRenderer(r *render.Renderer) Option { return func(e *Editor) { e.renderer = r } }

// WithExport sets the format and quality of saved images.
func WithExport(o rasterizer.Options) Option { return func(e *Editor) { e.export = o } }

// WithClock replaces the time source used for double tap detection.
func WithClock(now func() time.Time) Option { return func(e *Editor) { e.now = now } }

// WithOnSave is called with the exported image reference.
func WithOnSave(fn func(ref string)) Option { return func(e *Editor) { e.onSave = fn } }

// WithOnCrop is called with the new base photo after a crop is applied.
func WithOnCrop(fn func(uri string)) Option { return func(e *Editor) { e.onCrop = fn } }

// WithOnClose is called when the editor should be dismissed.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// WithOnChange is called after every state change that affects the canvas.
func WithOnChange(fn func()) Option { return func(e *Editor) { e.onChange = fn } }

// New creates an editor. Without options it has an empty canvas of
// scene.DefaultCanvasSize, writes captures to the temp directory and logs
// alerts.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		size:         scene.DefaultCanvasSize,
		style:        scene.DefaultStyle(),
		historyLimit: history.DefaultLimit,
		rasterizer:   rasterizer.FileRasterizer{},
		settler:      rasterizer.Immediate{},
		alerter:      LogAlerter{},
		export:       rasterizer.Options{Format: rasterizer.JPEG, Quality: 0.95},
		picker:       picker.DialogPicker{},
		texts:        map[string]*interaction.TextBehavior{},
		overlays:     map[string]*interaction.OverlayBehavior{},
		shapes:       map[string]*interaction.ShapeBehavior{},
	}
	for _, o := range opts {
		o(e)
	}
	if e.renderer == nil {
		r, err := render.NewRenderer()
		if err != nil {
			return nil, err
		}
		e.renderer = r
	}
	e.history = history.New(e.historyLimit)
	e.crop = interaction.NewCrop(float64(e.size))
	return e, nil
}

// Size returns the canvas side in pixels.
func (e *Editor) Size() int { return e.size }

// Items returns a copy of the entity collections with live gesture geometry.
func (e *Editor) Items() scene.Collections {
	items := e.items.Clone()
	for i, t := range items.Texts {
		if b, ok := e.texts[t.ID]; ok {
			items.Texts[i] = b.Item()
		}
	}
	for i, o := range items.Overlays {
		if b, ok := e.overlays[o.ID]; ok {
			items.Overlays[i] = b.Item()
		}
	}
	for i, s := range items.Shapes {
		if b, ok := e.shapes[s.ID]; ok {
			items.Shapes[i] = b.Item()
		}
	}
	return items
}

// Base returns the base photo layer.
func (e *Editor) Base() scene.BaseLayer { return e.base }

// Selection returns the selected item, if any.
func (e *Editor) Selection() scene.Selection { return e.sel }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Style returns the current style.
func (e *Editor) Style() scene.Style { return e.style }

// ShapePanel reports whether the shape kind panel is showing.
func (e *Editor) ShapePanel() bool { return e.panel }

// CropBox returns the crop box.
func (e *Editor) CropBox() scene.CropBox { return e.crop.Box() }

// Busy reports whether a crop or save is running.
func (e *Editor) Busy() bool { return e.busy }

// CanUndo reports whether a snapshot is available.
func (e *Editor) CanUndo() bool { return e.history.Len() > 0 }

// HistoryLen returns the number of stored snapshots.
func (e *Editor) HistoryLen() int { return e.history.Len() }

// Renderer returns the renderer used for captures.
func (e *Editor) Renderer() *render.Renderer { return e.renderer }

// Layers returns what the canvas shows, including a stroke being drawn.
func (e *Editor) Layers() render.Layers {
	l := render.Layers{Size: e.size, Base: e.base, Items: e.Items()}
	if e.pen.Recording() {
		l.Live = &scene.DrawPath{Data: e.pen.Live(), Color: e.style.StrokeColor, StrokeWidth: e.style.StrokeWidth}
	}
	return l
}

// Decorations returns the selection and crop chrome for the current state.
func (e *Editor) Decorations() render.Decorations {
	d := render.Decorations{Size: e.size}
	if e.tool == ToolCrop {
		box := e.crop.Box()
		d.Crop = &box
		return d
	}
	if r, ok := e.selectionRect(); ok {
		d.Selection = &r
		d.Dashed = e.sel.Kind != scene.SelectOverlay
		d.Handle = e.sel.Kind != scene.SelectText
	}
	return d
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Editor) pushSnapshot() {
	e.history.Push(scene.Snapshot{Items: e.items, Base: e.base})
}

// Undo restores the most recent snapshot and clears the selection. It does
// nothing when no snapshot is stored.
func (e *Editor) Undo() {
	snap, ok := e.history.Pop()
	if !ok {
		return
	}
	e.items = snap.Items
	e.base = snap.Base
	e.deselect()
	e.dropBehaviors()
	e.changed()
}

func (e *Editor) selectItem(kind scene.SelectKind, id string) {
	e.sel = scene.Selection{Kind: kind, ID: id}
	e.changed()
}

func (e *Editor) deselect() { e.sel = scene.Selection{} }

// Deselect clears the selection.
func (e *Editor) Deselect() {
	e.deselect()
	e.changed()
}

// Select selects the item with id in the collection named by kind.
func (e *Editor) Select(kind scene.SelectKind, id string) bool {
	found := false
	switch kind {
	case scene.SelectText:
		_, i := e.items.Text(id)
		found = i >= 0
	case scene.SelectOverlay:
		_, i := e.items.Overlay(id)
		found = i >= 0
	case scene.SelectShape:
		_, i := e.items.Shape(id)
		found = i >= 0
	}
	if !found {
		return false
	}
	e.selectItem(kind, id)
	return true
}
