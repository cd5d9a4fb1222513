package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"
	"strings"

	"github.com/example/snapedit/internal/picker"
	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/scene"
)

// Pick failures. Each has been alerted by the time PickImage returns it.
var (
	ErrPickFailed = errors.New("image picker failed")
	ErrNoAssets   = errors.New("picker returned no images")
	ErrNoURI      = errors.New("picked image has no uri")
)

// PickImage asks the picker for an image and adds it as a centred overlay of
// scene.InitialOverlaySize. A cancelled pick does nothing. Other outcomes are
// alerted and returned as errors.
func (e *Editor) PickImage(ctx context.Context) error {
	return e.PickImageFrom(ctx, e.picker)
}

// PickImageFrom is PickImage with a one-off picker.
func (e *Editor) PickImageFrom(ctx context.Context, p picker.Picker) error {
	resp, err := p.Pick(ctx)
	if err != nil {
		log.Printf("pick image: %v", err)
		e.alerter.Alert("Gallery Error", "Failed to open gallery. Please check app permissions and try again.")
		return fmt.Errorf("%w: %v", ErrPickFailed, err)
	}
	if resp.DidCancel {
		return nil
	}
	if resp.ErrorCode != "" {
		msg := resp.ErrorMessage
		if msg == "" {
			msg = "Unknown error"
		}
		log.Printf("pick image: %s: %s", resp.ErrorCode, msg)
		e.alerter.Alert("Error", "Failed to open gallery: "+msg)
		return fmt.Errorf("%w: %s: %s", ErrPickFailed, resp.ErrorCode, msg)
	}
	if len(resp.Assets) == 0 {
		e.alerter.Alert("No Images", "No images found in gallery. Please select a different app.")
		return ErrNoAssets
	}
	asset := resp.Assets[0]
	if asset == nil {
		e.alerter.Alert("Error", "Invalid image format. Please try again.")
		return ErrNoURI
	}
	if strings.TrimSpace(asset.URI) == "" {
		e.alerter.Alert("Error", "Selected image has no URI. Please try again.")
		return ErrNoURI
	}
	e.AddOverlay(asset.URI)
	return nil
}

// AddOverlay places the image at uri centred on the canvas and selects it.
func (e *Editor) AddOverlay(uri string) scene.ImageOverlay {
	pos := float64(e.size)/2 - scene.InitialOverlaySize/2
	o := scene.ImageOverlay{
		ID:     scene.NewID(),
		URI:    uri,
		X:      pos,
		Y:      pos,
		Width:  scene.InitialOverlaySize,
		Height: scene.InitialOverlaySize,
		Clip:   scene.ClipNone,
	}
	e.pushSnapshot()
	e.items.Overlays = append(e.items.Overlays, o)
	e.selectItem(scene.SelectOverlay, o.ID)
	return o
}

// CanvasView renders the composed canvas without editing chrome.
func (e *Editor) CanvasView() rasterizer.View {
	return rasterizer.ViewFunc{W: e.size, H: e.size, Fn: func() (image.Image, error) {
		return e.renderer.Compose(e.Layers())
	}}
}

// stageView shows the capture at uri shifted so box's top-left is the
// origin, clipped to box's size.
func (e *Editor) stageView(uri string, box scene.CropBox) rasterizer.View {
	w, h := int(math.Round(box.Width)), int(math.Round(box.Height))
	return rasterizer.ViewFunc{W: w, H: h, Fn: func() (image.Image, error) {
		full, err := e.renderer.Images.Load(uri)
		if err != nil {
			return nil, fmt.Errorf("staged capture: %w", err)
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		off := image.Pt(int(math.Round(box.X)), int(math.Round(box.Y)))
		draw.Draw(dst, dst.Bounds(), full, full.Bounds().Min.Add(off), draw.Src)
		return dst, nil
	}}
}

// prepareCapture hides the selection and tool chrome before a capture.
func (e *Editor) prepareCapture() {
	e.deselect()
	e.tool = ToolNone
	e.panel = false
	e.pen.Cancel()
	e.changed()
}

func (e *Editor) fail(op string, err error) error {
	log.Printf("%s: %v", strings.ToLower(op), err)
	e.alerter.Alert("Error", fmt.Sprintf("%s failed: %v", op, err))
	return err
}

// ApplyCrop flattens the canvas and replaces the base photo with the part
// inside the crop box. All entities are discarded and the base transforms
// reset; the previous scene stays reachable through Undo. On failure the
// scene is left as it was.
func (e *Editor) ApplyCrop(ctx context.Context) error {
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	defer func() {
		e.busy = false
		if e.staged != "" {
			e.renderer.Images.Forget(e.staged)
			e.staged = ""
		}
		e.changed()
	}()

	box := e.crop.Box()
	e.prepareCapture()
	if err := e.settler.Settle(ctx, rasterizer.BeforeCapture); err != nil {
		return e.fail("Crop", err)
	}
	full, err := e.rasterizer.Capture(ctx, e.CanvasView(), rasterizer.Options{Format: rasterizer.PNG, Quality: 1})
	if err != nil {
		return e.fail("Crop", err)
	}
	e.staged = full
	if err := e.settler.Settle(ctx, rasterizer.BeforeStage); err != nil {
		return e.fail("Crop", err)
	}
	cropped, err := e.rasterizer.Capture(ctx, e.stageView(full, box), rasterizer.Options{Format: rasterizer.JPEG, Quality: 1})
	if err != nil {
		return e.fail("Crop", err)
	}

	e.pushSnapshot()
	e.base = scene.BaseLayer{URI: cropped}
	e.items = scene.Collections{}
	e.dropBehaviors()
	e.crop.Reset()
	if e.onCrop != nil {
		e.onCrop(cropped)
	}
	return nil
}

// CancelCrop leaves crop mode without touching the scene.
func (e *Editor) CancelCrop() {
	if e.tool != ToolCrop {
		return
	}
	e.SelectTool(ToolCrop)
}

// Save exports the canvas, hands the reference to the save callback and
// closes the editor. On failure the editor stays open.
func (e *Editor) Save(ctx context.Context) (string, error) {
	if e.busy {
		return "", ErrBusy
	}
	e.busy = true
	defer func() {
		e.busy = false
		e.changed()
	}()

	e.prepareCapture()
	if err := e.settler.Settle(ctx, rasterizer.BeforeCapture); err != nil {
		return "", e.fail("Save", err)
	}
	ref, err := e.rasterizer.Capture(ctx, e.CanvasView(), e.export)
	if err != nil {
		return "", e.fail("Save", err)
	}
	if e.onSave != nil {
		e.onSave(ref)
	}
	e.Close()
	return ref, nil
}

// Close asks the host to dismiss the editor.
func (e *Editor) Close() {
	if e.onClose != nil {
		e.onClose()
	}
}
