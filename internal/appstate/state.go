// Package appstate is the desktop window host for the editor: a shiny window
// with a toolbar, a scaled canvas and a shortcut bar. Pointer and keyboard
// events are translated into editor operations.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapedit/internal/capture"
	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/notify"
	"github.com/example/snapedit/internal/render"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/theme"
)

// AppState holds the window host around one editor.
type AppState struct {
	Editor   *editor.Editor
	Theme    *theme.Theme
	Notifier *notify.Notifier
	// TempDir receives pasted and captured images. Empty means the system
	// temp directory.
	TempDir string
	Capture capture.Options

	ctx           context.Context
	width, height int
	zoom          float64
	canvas        image.Rectangle
	toolButtons   []*CacheButton
	toolbar       []widget
	shortcuts     []widget
	hoverToolbar  int
	hoverShortcut int
	dragging      bool
	keys          map[KeyShortcut]string
	actions       map[string]func()
	confirmClear  bool
	message       string
	messageUntil  time.Time
	closed        bool

	updateCh chan struct{}
	sendMu   sync.Mutex
	send     func(event any)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets where copy notifications go.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithTempDir sets where pasted and captured images are written.
func WithTempDir(dir string) Option { return func(a *AppState) { a.TempDir = dir } }

// WithCapture sets the options used for screenshot overlays.
func WithCapture(o capture.Options) Option { return func(a *AppState) { a.Capture = o } }

// WithContext sets the context passed to pickers and captures.
func WithContext(ctx context.Context) Option { return func(a *AppState) { a.ctx = ctx } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState for ed. Wire NotifyImageChanged to the editor's
// change callback and Close to its close callback.
func New(ed *editor.Editor, opts ...Option) *AppState {
	a := &AppState{
		Editor:        ed,
		Theme:         theme.Default(),
		ctx:           context.Background(),
		hoverToolbar:  -1,
		hoverShortcut: -1,
		updateCh:      make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	a.registerActions()
	var labels []string
	for _, b := range toolDefs {
		labels = append(labels, b.label)
	}
	for _, k := range scene.ShapeKinds() {
		labels = append(labels, k.String())
	}
	measureToolbar(labels)
	side := ed.Size() + 2*margin
	a.resize(side+toolbarWidth, side+titleHeight+bottomHeight)
	return a
}

// NotifyImageChanged requests a repaint of the UI when the editor changes.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

type closeEvent struct{}

// Close dismisses the window.
func (a *AppState) Close() {
	a.closed = true
	a.sendMu.Lock()
	send := a.send
	a.sendMu.Unlock()
	if send != nil {
		send(closeEvent{})
	}
}

func (a *AppState) setSender(fn func(any)) {
	a.sendMu.Lock()
	a.send = fn
	a.sendMu.Unlock()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setSender(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: "SnapEdit"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	a.setSender(func(ev any) { w.Send(ev) })

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	for {
		if a.closed {
			return
		}
		e := w.NextEvent()
		switch e := e.(type) {
		case closeEvent:
			return
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.frame()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.handleKey(e) {
				w.Send(paint.Event{})
			}
		}
	}
}

// resize lays the window out for a new size.
func (a *AppState) resize(w, h int) {
	a.width, a.height = w, h
	area := canvasArea(w, h)
	a.zoom = fitZoom(a.Editor.Size(), area)
	a.canvas = canvasRect(a.Editor.Size(), area, a.zoom)
	a.toolButtons = a.toolButtons[:0]
	y := titleHeight + 4
	for _, def := range toolDefs {
		tool := def.tool
		b := &LabelButton{label: def.label, theme: a.Theme, onSelect: func() { a.Editor.SelectTool(tool) }}
		b.SetRect(image.Rect(2, y, toolbarWidth-2, y+buttonHeight))
		a.toolButtons = append(a.toolButtons, &CacheButton{Button: b})
		y += buttonHeight + 2
	}
	a.layout()
}

type toolDef struct {
	label string
	tool  editor.Tool
}

var toolDefs = []toolDef{
	{"D:Draw", editor.ToolDraw},
	{"T:Text", editor.ToolText},
	{"S:Shape", editor.ToolShape},
	{"I:Image", editor.ToolImage},
	{"R:Crop", editor.ToolCrop},
}

// layout rebuilds the toolbar and shortcut bar for the current editor state.
func (a *AppState) layout() {
	ed := a.Editor
	a.toolbar = a.toolbar[:0]
	y := titleHeight + 4
	for i, cb := range a.toolButtons {
		a.toolbar = append(a.toolbar, widget{Button: cb, pressed: toolDefs[i].tool == ed.Tool()})
		y = cb.Rect().Max.Y + 2
	}

	// palette
	y += 4
	x := 4
	style := ed.Style()
	for _, c := range Palette {
		c := c
		sw := &SwatchButton{color: c, theme: a.Theme, onSelect: func() { ed.SetStrokeColor(c) }}
		sw.SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
		a.toolbar = append(a.toolbar, widget{Button: sw, pressed: c == style.StrokeColor})
		x += swatchSize + 2
		if x+swatchSize > toolbarWidth {
			x = 4
			y += swatchSize + 2
		}
	}
	if x != 4 {
		y += swatchSize + 2
	}

	// size stepper
	y += 4
	half := toolbarWidth / 2
	a.addButton(fmt.Sprintf("- %g", a.sizeValue()), image.Rect(2, y, half-1, y+buttonHeight), false, func() { ed.AdjustSize(-1) })
	a.addButton("+", image.Rect(half+1, y, toolbarWidth-2, y+buttonHeight), false, func() { ed.AdjustSize(1) })
	y += buttonHeight + 6

	sel := ed.Selection()
	switch {
	case ed.Tool() == editor.ToolText:
		a.addButton("^B:Bold", a.row(y), style.Bold, ed.ToggleBold)
		y += buttonHeight + 2
		a.addButton("^I:Italic", a.row(y), style.Italic, ed.ToggleItalic)
	case ed.ShapePanel():
		a.addButton("F:Fill", a.row(y), style.Filled, func() { ed.SetFilled(!ed.Style().Filled) })
		y += buttonHeight + 4
		for _, k := range scene.ShapeKinds() {
			kind := k
			a.addButton(k.String(), a.row(y), false, func() { ed.AddShape(kind) })
			y += buttonHeight + 2
		}
	case sel.Kind == scene.SelectOverlay:
		var current scene.ClipShape
		if o, i := ed.Items().Overlay(sel.ID); i >= 0 {
			current = o.Clip
		}
		for _, c := range scene.ClipShapes() {
			clip := c
			a.addButton("clip "+c.String(), a.row(y), c == current, func() { ed.SetClipShape(clip) })
			y += buttonHeight + 2
		}
	}

	a.layoutShortcuts()
}

func (a *AppState) row(y int) image.Rectangle {
	return image.Rect(2, y, toolbarWidth-2, y+buttonHeight)
}

func (a *AppState) addButton(label string, r image.Rectangle, pressed bool, fn func()) {
	b := &LabelButton{label: label, theme: a.Theme, onSelect: fn}
	b.SetRect(r)
	a.toolbar = append(a.toolbar, widget{Button: b, pressed: pressed})
}

func (a *AppState) sizeValue() float64 {
	if a.Editor.Tool() == editor.ToolText {
		return a.Editor.Style().FontSize
	}
	return a.Editor.Style().StrokeWidth
}

type shortcutDef struct {
	label  string
	action string
}

func (a *AppState) shortcutDefs() []shortcutDef {
	ed := a.Editor
	if ed.TextModal().Open {
		return []shortcutDef{{"Enter:add", "text-confirm"}, {"Esc:cancel", "cancel"}}
	}
	if ed.Tool() == editor.ToolCrop {
		return []shortcutDef{{"Enter:crop", "crop-apply"}, {"Esc:cancel", "cancel"}, {"^Z:undo", "undo"}}
	}
	defs := []shortcutDef{
		{"^Z:undo", "undo"},
		{"O:rotate", "rotate"},
		{"H:flip", "flip-h"},
		{"V:flip", "flip-v"},
		{"^V:paste", "paste"},
		{"^N:screenshot", "screenshot"},
		{"^C:copy", "copy"},
		{"^S:save", "save"},
		{"Q:quit", "quit"},
	}
	if !ed.Selection().None() {
		defs = append([]shortcutDef{{"Del:delete", "delete"}}, defs...)
	}
	return defs
}

func (a *AppState) layoutShortcuts() {
	a.shortcuts = a.shortcuts[:0]
	x := 4
	y := a.height - bottomHeight + 2
	for _, def := range a.shortcutDefs() {
		action := def.action
		b := &LabelButton{label: def.label, theme: a.Theme, onSelect: func() { a.trigger(action) }}
		w := len(def.label)*7 + 8
		b.SetRect(image.Rect(x, y, x+w, y+bottomHeight-4))
		a.shortcuts = append(a.shortcuts, widget{Button: b})
		x += w + 4
	}
}

// toCanvas maps a window position to canvas coordinates.
func (a *AppState) toCanvas(x, y float32) (float64, float64) {
	return float64(x-float32(a.canvas.Min.X)) / a.zoom, float64(y-float32(a.canvas.Min.Y)) / a.zoom
}

func (a *AppState) flash(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	log.Print(a.message)
	a.messageUntil = time.Now().Add(2 * time.Second)
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && time.Now().Before(a.messageUntil)
}

// handleMouse applies e and reports whether a repaint is needed.
func (a *AppState) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	ed := a.Editor
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if a.messageVisible() {
			a.messageUntil = time.Time{}
			return true
		}
		for _, wd := range a.shortcuts {
			if p.In(wd.Rect()) {
				wd.Activate()
				a.layout()
				return true
			}
		}
		for _, wd := range a.toolbar {
			if p.In(wd.Rect()) {
				wd.Activate()
				a.layout()
				return true
			}
		}
		if ed.TextModal().Open || !p.In(a.canvas) {
			return false
		}
		x, y := a.toCanvas(e.X, e.Y)
		ed.PointerDown(x, y)
		a.dragging = true
		a.layout()
		return true
	case mouse.DirRelease:
		if !a.dragging {
			return false
		}
		a.dragging = false
		ed.PointerUp()
		a.layout()
		return true
	case mouse.DirNone:
		if a.dragging {
			x, y := a.toCanvas(e.X, e.Y)
			ed.PointerMove(x, y)
			return true
		}
		return a.updateHover(p)
	}
	return false
}

func (a *AppState) updateHover(p image.Point) bool {
	hoverToolbar, hoverShortcut := -1, -1
	for i, wd := range a.toolbar {
		if p.In(wd.Rect()) {
			hoverToolbar = i
		}
	}
	for i, wd := range a.shortcuts {
		if p.In(wd.Rect()) {
			hoverShortcut = i
		}
	}
	changed := hoverToolbar != a.hoverToolbar || hoverShortcut != a.hoverShortcut
	a.hoverToolbar, a.hoverShortcut = hoverToolbar, hoverShortcut
	return changed
}

// handleKey applies e and reports whether a repaint is needed.
func (a *AppState) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	defer a.layout()
	ed := a.Editor
	if ed.TextModal().Open {
		return a.handleTextKey(e)
	}
	ks := KeyShortcut{Rune: lower(e.Rune), Modifiers: e.Modifiers}
	action, ok := a.keys[ks]
	if !ok {
		action, ok = a.keys[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	}
	if ok {
		if action != "clear" {
			a.confirmClear = false
		}
		a.trigger(action)
		return true
	}
	a.confirmClear = false
	if e.Modifiers == 0 && e.Rune >= '1' && e.Rune <= '9' {
		if i := int(e.Rune - '1'); i < len(Palette) {
			ed.SetStrokeColor(Palette[i])
			return true
		}
	}
	step := 1.0
	if e.Modifiers&key.ModShift != 0 {
		step = 10
	}
	switch e.Code {
	case key.CodeLeftArrow:
		return ed.DragSelected(-step, 0)
	case key.CodeRightArrow:
		return ed.DragSelected(step, 0)
	case key.CodeUpArrow:
		return ed.DragSelected(0, -step)
	case key.CodeDownArrow:
		return ed.DragSelected(0, step)
	}
	return false
}

func (a *AppState) handleTextKey(e key.Event) bool {
	ed := a.Editor
	modal := ed.TextModal()
	switch {
	case e.Code == key.CodeReturnEnter:
		a.trigger("text-confirm")
	case e.Code == key.CodeEscape:
		ed.CancelText()
	case e.Code == key.CodeDeleteBackspace:
		if r := []rune(modal.Input); len(r) > 0 {
			ed.SetTextInput(string(r[:len(r)-1]))
		}
	case e.Modifiers&key.ModControl != 0 && lower(e.Rune) == 'b':
		ed.ToggleBold()
	case e.Modifiers&key.ModControl != 0 && lower(e.Rune) == 'i':
		ed.ToggleItalic()
	case e.Rune >= ' ':
		ed.SetTextInput(modal.Input + string(e.Rune))
	default:
		return false
	}
	return true
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

func (a *AppState) trigger(action string) {
	if fn, ok := a.actions[action]; ok {
		fn()
	}
}

// frame renders the canvas and captures everything the paint goroutine
// draws.
func (a *AppState) frame() paintState {
	ed := a.Editor
	st := paintState{
		width:         a.width,
		height:        a.height,
		theme:         a.Theme,
		canvasRect:    a.canvas,
		toolbar:       append([]widget(nil), a.toolbar...),
		shortcuts:     append([]widget(nil), a.shortcuts...),
		hoverToolbar:  a.hoverToolbar,
		hoverShortcut: a.hoverShortcut,
		status:        a.status(),
		modal:         ed.TextModal(),
		message:       a.message,
		messageUntil:  a.messageUntil,
	}
	img, err := ed.Renderer().Compose(ed.Layers())
	if err != nil {
		log.Printf("compose: %v", err)
		return st
	}
	render.DrawChrome(gg.NewContextForRGBA(img), a.Theme.Chrome(), ed.Decorations())
	st.canvas = img
	return st
}

func (a *AppState) status() string {
	ed := a.Editor
	parts := []string{"tool " + ed.Tool().String()}
	if sel := ed.Selection(); !sel.None() {
		parts = append(parts, "selected "+sel.Kind.String())
	}
	if ed.Busy() {
		parts = append(parts, "working")
	}
	parts = append(parts, fmt.Sprintf("undo %d", ed.HistoryLen()))
	return strings.Join(parts, "  ")
}
