package scene

import "math"

// CropBox is the pending crop region in canvas coordinates.
type CropBox struct {
	X, Y          float64
	Width, Height float64
}

// DefaultCropBox returns the box inset 10% from each edge of a canvas of side
// size.
func DefaultCropBox(size float64) CropBox {
	return CropBox{X: size * 0.1, Y: size * 0.1, Width: size * 0.8, Height: size * 0.8}
}

// Clamp returns b with its size floored to MinCropSize, capped at the canvas,
// and its position kept inside the canvas.
func (b CropBox) Clamp(size float64) CropBox {
	minSide := math.Min(MinCropSize, size)
	b.Width = math.Max(minSide, math.Min(b.Width, size))
	b.Height = math.Max(minSide, math.Min(b.Height, size))
	b.X = math.Max(0, math.Min(b.X, size-b.Width))
	b.Y = math.Max(0, math.Min(b.Y, size-b.Height))
	return b
}

// Contains reports whether (x, y) falls inside the box.
func (b CropBox) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// Inside reports whether the box lies entirely within a canvas of side size.
func (b CropBox) Inside(size float64) bool {
	return b.X >= 0 && b.Y >= 0 && b.X+b.Width <= size && b.Y+b.Height <= size
}

// HandleHit reports whether (x, y) falls within the hit area of a resize
// handle sitting on the corner (cx, cy).
func HandleHit(cx, cy, x, y float64) bool {
	half := float64(HandleHitSize) / 2
	return math.Abs(x-cx) <= half && math.Abs(y-cy) <= half
}
