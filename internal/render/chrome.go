package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/example/snapedit/internal/scene"
)

// Chrome holds the colours of the editing decorations.
type Chrome struct {
	Selection  color.Color
	Handle     color.Color
	HandleRing color.Color
	CropDim    color.Color
	CropBorder color.Color
}

// DefaultChrome mirrors the default theme.
func DefaultChrome() Chrome {
	return Chrome{
		Selection:  color.RGBA{0x1E, 0x88, 0xE5, 0xFF},
		Handle:     color.RGBA{0x1E, 0x88, 0xE5, 0xFF},
		HandleRing: color.White,
		CropDim:    color.RGBA{0, 0, 0, 140},
		CropBorder: color.White,
	}
}

// Rect is an axis aligned box in canvas coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Decorations describes the chrome for one frame.
type Decorations struct {
	// Selection outlines the selected item when non-nil.
	Selection *Rect
	// Dashed draws the selection outline dashed, as for text and shapes.
	Dashed bool
	// Handle adds a resize handle to the selection's bottom-right corner.
	Handle bool
	// Crop dims everything outside the box when non-nil.
	Crop *scene.CropBox
	Size int
}

const handleRadius = 12

// DrawChrome paints d over an already composed canvas.
func DrawChrome(dc *gg.Context, c Chrome, d Decorations) {
	if s := d.Selection; s != nil {
		dc.Push()
		dc.SetColor(c.Selection)
		dc.SetLineWidth(1.5)
		if d.Dashed {
			dc.SetDash(4, 3)
		}
		dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		dc.Stroke()
		dc.Pop()
		if d.Handle {
			drawHandle(dc, c, s.X+s.W, s.Y+s.H)
		}
	}
	if b := d.Crop; b != nil {
		size := float64(d.Size)
		dc.SetColor(c.CropDim)
		dc.DrawRectangle(0, 0, size, b.Y)
		dc.DrawRectangle(0, b.Y+b.Height, size, size-b.Y-b.Height)
		dc.DrawRectangle(0, b.Y, b.X, b.Height)
		dc.DrawRectangle(b.X+b.Width, b.Y, size-b.X-b.Width, b.Height)
		dc.Fill()

		dc.SetColor(c.CropBorder)
		dc.SetLineWidth(1.5)
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Stroke()
		drawCorners(dc, c, *b)
		drawHandle(dc, c, b.X+b.Width, b.Y+b.Height)
	}
}

func drawHandle(dc *gg.Context, c Chrome, x, y float64) {
	dc.DrawCircle(x, y, handleRadius)
	dc.SetColor(c.Handle)
	dc.FillPreserve()
	dc.SetColor(c.HandleRing)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawCorners(dc *gg.Context, c Chrome, b scene.CropBox) {
	const arm = 18
	dc.SetColor(c.CropBorder)
	dc.SetLineWidth(3)
	corners := []struct{ x, y, dx, dy float64 }{
		{b.X, b.Y, 1, 1},
		{b.X + b.Width, b.Y, -1, 1},
		{b.X, b.Y + b.Height, 1, -1},
	}
	for _, k := range corners {
		dc.MoveTo(k.x+k.dx*arm, k.y)
		dc.LineTo(k.x, k.y)
		dc.LineTo(k.x, k.y+k.dy*arm)
		dc.Stroke()
	}
}
