package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"

	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/theme"
)

const (
	titleHeight  = 24
	bottomHeight = 24
	buttonHeight = 20
	swatchSize   = 16
	margin       = 8
)

var toolbarWidth = 48

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// Palette is the swatch row of the toolbar. Keys 1-9 pick the first nine.
var Palette = []color.RGBA{
	{0xFF, 0xFF, 0xFF, 0xFF},
	{0x1F, 0x1F, 0x1F, 0xFF},
	{0xFF, 0x41, 0x05, 0xFF},
	{0x37, 0x5D, 0xFB, 0xFF},
	{0xFF, 0xB4, 0x00, 0xFF},
	{0x4C, 0xC7, 0x7B, 0xFF},
	{0xFF, 0x00, 0x66, 0xFF},
	{0x00, 0xCF, 0xFF, 0xFF},
	{0xA8, 0x55, 0xF7, 0xFF},
	{0xF9, 0x73, 0x16, 0xFF},
	{0xEF, 0x44, 0x44, 0xFF},
	{0xEC, 0x48, 0x99, 0xFF},
	{0x8B, 0x5C, 0xF6, 0xFF},
	{0x63, 0x66, 0xF1, 0xFF},
	{0x3B, 0x82, 0xF6, 0xFF},
	{0x06, 0xB6, 0xD4, 0xFF},
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// LabelButton is a toolbar or shortcut bar button drawn as text on a themed
// background.
type LabelButton struct {
	label    string
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func()
}

func (lb *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := lb.theme.ButtonBackground, lb.theme.ButtonText
	switch state {
	case StateHover:
		bg = lb.theme.ButtonBackgroundHover
	case StatePressed:
		bg, fg = lb.theme.ButtonBackgroundPress, lb.theme.ButtonTextPress
	}
	draw.Draw(dst, lb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, lb.rect, lb.theme.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(lb.rect.Min.X+4, lb.rect.Min.Y+(lb.rect.Dy()+9)/2)}
	d.DrawString(lb.label)
}

func (lb *LabelButton) Rect() image.Rectangle { return lb.rect }

func (lb *LabelButton) SetRect(r image.Rectangle) { lb.rect = r }

func (lb *LabelButton) Activate() {
	if lb.onSelect != nil {
		lb.onSelect()
	}
}

// SwatchButton picks a palette colour.
type SwatchButton struct {
	color    color.RGBA
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func()
}

func (sb *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, sb.rect, &image.Uniform{sb.color}, image.Point{}, draw.Src)
	switch state {
	case StateHover:
		draw.Draw(dst, sb.rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		drawRect(dst, sb.rect, sb.theme.ButtonBorder, 1)
	case StatePressed:
		drawRect(dst, sb.rect, sb.theme.Selection, 2)
	default:
		drawRect(dst, sb.rect, sb.theme.ButtonBorder, 1)
	}
}

func (sb *SwatchButton) Rect() image.Rectangle { return sb.rect }

func (sb *SwatchButton) SetRect(r image.Rectangle) { sb.rect = r }

func (sb *SwatchButton) Activate() {
	if sb.onSelect != nil {
		sb.onSelect()
	}
}

// widget is a button placed for one frame together with how it should look.
type widget struct {
	Button
	pressed bool
}

// measureToolbar widens the toolbar to fit the title and every label.
func measureToolbar(labels []string) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	widest := d.MeasureString("SnapEdit").Ceil() + 8 // padding
	for _, lbl := range labels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > widest {
			widest = w
		}
	}
	if widest > toolbarWidth {
		toolbarWidth = widest
	}
}

// canvasArea is the part of the window left for the canvas.
func canvasArea(winW, winH int) image.Rectangle {
	return image.Rect(toolbarWidth, titleHeight, winW, winH-bottomHeight)
}

// fitZoom scales a canvas of side size to fit inside area, at most 2x.
func fitZoom(size int, area image.Rectangle) float64 {
	if size <= 0 || area.Empty() {
		return 1
	}
	zx := float64(area.Dx()-2*margin) / float64(size)
	zy := float64(area.Dy()-2*margin) / float64(size)
	z := min(zx, zy, 2)
	if z <= 0 {
		return 1
	}
	return z
}

// canvasRect centres the scaled canvas in area.
func canvasRect(size int, area image.Rectangle, zoom float64) image.Rectangle {
	side := int(float64(size) * zoom)
	x := area.Min.X + (area.Dx()-side)/2
	y := area.Min.Y + (area.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	src := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), src, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y+thick, rect.Min.X+thick, rect.Max.Y-thick), src, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y+thick, rect.Max.X, rect.Max.Y-thick), src, image.Point{}, draw.Over)
}

// paintState is everything drawFrame needs. It is built on the event
// goroutine and never touched by it again.
type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA
	canvasRect    image.Rectangle
	toolbar       []widget
	shortcuts     []widget
	hoverToolbar  int
	hoverShortcut int
	status        string
	modal         editor.TextModal
	message       string
	messageUntil  time.Time
}

// renderFrame draws st into dst. It stops early when ctx is cancelled.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if st.canvas != nil {
		xdraw.ApproxBiLinear.Scale(dst, st.canvasRect, st.canvas, st.canvas.Bounds(), draw.Src, nil)
	}
	if ctx.Err() != nil {
		return
	}

	// title bar
	draw.Draw(dst, image.Rect(0, 0, st.width, titleHeight), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	fg := image.NewUniform(th.Foreground)
	title := &font.Drawer{Dst: dst, Src: fg, Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	title.DrawString("SnapEdit")
	status := &font.Drawer{Dst: dst, Src: fg, Face: basicfont.Face7x13, Dot: fixed.P(toolbarWidth+4, 16)}
	status.DrawString(st.status)

	// toolbar
	draw.Draw(dst, image.Rect(0, titleHeight, toolbarWidth, st.height-bottomHeight), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, wd := range st.toolbar {
		wd.Draw(dst, stateOf(wd, i, st.hoverToolbar))
	}
	if ctx.Err() != nil {
		return
	}

	// shortcut bar
	draw.Draw(dst, image.Rect(0, st.height-bottomHeight, st.width, st.height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, wd := range st.shortcuts {
		wd.Draw(dst, stateOf(wd, i, st.hoverShortcut))
	}
	if ctx.Err() != nil {
		return
	}

	if st.modal.Open {
		drawModal(dst, st)
	}
	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st)
	}
}

func stateOf(wd widget, i, hover int) ButtonState {
	switch {
	case wd.pressed:
		return StatePressed
	case i == hover:
		return StateHover
	}
	return StateDefault
}

func drawModal(dst *image.RGBA, st paintState) {
	label := "Add text"
	if st.modal.Editing != "" {
		label = "Edit text"
	}
	r := image.Rect(st.canvasRect.Min.X+margin, st.canvasRect.Min.Y+margin, st.canvasRect.Max.X-margin, st.canvasRect.Min.Y+margin+56)
	draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 235}}, image.Point{}, draw.Over)
	drawRect(dst, r, st.theme.Selection, 2)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(r.Min.X+8, r.Min.Y+18)}
	d.DrawString(label + " (Enter to confirm, Esc to cancel)")
	d.Dot = fixed.P(r.Min.X+8, r.Min.Y+40)
	d.DrawString(st.modal.Input + "|")
}

func drawMessage(dst *image.RGBA, st paintState) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13}
	wmsg := d.MeasureString(st.message).Ceil()
	metrics := basicfont.Face7x13.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	px := (st.width - wmsg) / 2
	py := (st.height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	drawRect(dst, rect, color.Black, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	renderFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
