package interaction

import (
	"math"

	"github.com/example/snapedit/internal/scene"
)

type cropAction int

const (
	cropNone cropAction = iota
	cropMove
	cropResizeBR
)

// Crop manipulates the crop box. Every gesture keeps the box inside the
// canvas and no smaller than scene.MinCropSize.
type Crop struct {
	box    scene.CropBox
	canvas float64
	start  scene.CropBox
	action cropAction
}

// NewCrop returns a manipulator holding the default box for canvas.
func NewCrop(canvas float64) *Crop {
	c := &Crop{canvas: canvas}
	c.Reset()
	return c
}

// Reset discards any gesture and restores the default box.
func (c *Crop) Reset() {
	c.box = scene.DefaultCropBox(c.canvas)
	c.action = cropNone
}

// Box returns the current crop box.
func (c *Crop) Box() scene.CropBox { return c.box }

// HandleAt reports whether (x, y) hits the bottom-right resize handle.
func (c *Crop) HandleAt(x, y float64) bool {
	return scene.HandleHit(c.box.X+c.box.Width, c.box.Y+c.box.Height, x, y)
}

// Grab starts moving the box.
func (c *Crop) Grab() {
	c.start = c.box
	c.action = cropMove
}

// GrabHandle starts resizing the box from its bottom-right corner.
func (c *Crop) GrabHandle() {
	c.start = c.box
	c.action = cropResizeBR
}

// Move applies the delta accumulated since the last grab.
func (c *Crop) Move(dx, dy float64) scene.CropBox {
	switch c.action {
	case cropMove:
		c.box.X = math.Max(0, math.Min(c.canvas-c.box.Width, c.start.X+dx))
		c.box.Y = math.Max(0, math.Min(c.canvas-c.box.Height, c.start.Y+dy))
	case cropResizeBR:
		minSide := math.Min(scene.MinCropSize, c.canvas)
		c.box.Width = math.Max(minSide, math.Min(c.canvas-c.box.X, c.start.Width+dx))
		c.box.Height = math.Max(minSide, math.Min(c.canvas-c.box.Y, c.start.Height+dy))
	}
	return c.box
}

// Release ends the gesture.
func (c *Crop) Release() { c.action = cropNone }

// Active reports whether a gesture is in progress.
func (c *Crop) Active() bool { return c.action != cropNone }
