// Package render rasterizes a scene: the base photo, freehand strokes, image
// overlays, shapes and text, plus the selection and crop chrome shown while
// editing.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/fogleman/gg"

	"github.com/example/snapedit/internal/geometry"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/shapes"
)

// Layers is everything drawn onto the canvas.
type Layers struct {
	Size  int
	Base  scene.BaseLayer
	Items scene.Collections
	// Live is the freehand stroke still being drawn, if any.
	Live *scene.DrawPath
}

// Renderer composes scenes. It is not safe for concurrent use.
type Renderer struct {
	Images     *Images
	Fonts      *Fonts
	Background color.Color
}

// NewRenderer returns a renderer with a fresh image cache and the bundled
// fonts over a white background.
func NewRenderer() (*Renderer, error) {
	fonts, err := NewFonts()
	if err != nil {
		return nil, err
	}
	return &Renderer{Images: NewImages(), Fonts: fonts, Background: color.White}, nil
}

// Compose draws l into a new image of l.Size pixels square. Overlays whose
// image cannot be loaded are skipped; a base image that cannot be loaded is
// an error.
func (r *Renderer) Compose(l Layers) (*image.RGBA, error) {
	dc := gg.NewContext(l.Size, l.Size)
	if err := r.Draw(dc, l); err != nil {
		return nil, err
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected image type %T", dc.Image())
	}
	return img, nil
}

// Draw paints l onto dc in canvas coordinates.
func (r *Renderer) Draw(dc *gg.Context, l Layers) error {
	dc.SetColor(r.Background)
	dc.Clear()
	if l.Base.URI != "" {
		if err := r.drawBase(dc, l.Base, l.Size); err != nil {
			return err
		}
	}
	for _, p := range l.Items.Paths {
		r.drawPath(dc, p)
	}
	if l.Live != nil {
		r.drawPath(dc, *l.Live)
	}
	for _, o := range l.Items.Overlays {
		if err := r.drawOverlay(dc, o); err != nil {
			log.Printf("overlay %s: %v", o.ID, err)
		}
	}
	for _, s := range l.Items.Shapes {
		DrawShape(dc, s)
	}
	for _, t := range l.Items.Texts {
		r.drawText(dc, t)
	}
	return nil
}

func (r *Renderer) drawBase(dc *gg.Context, b scene.BaseLayer, size int) error {
	img, err := r.Images.Load(b.URI)
	if err != nil {
		return fmt.Errorf("base image: %w", err)
	}
	cover := Cover(img, size, size)
	c := float64(size) / 2
	sx, sy := 1.0, 1.0
	if b.FlipH {
		sx = -1
	}
	if b.FlipV {
		sy = -1
	}
	dc.Push()
	dc.RotateAbout(gg.Radians(float64(b.Rotation)), c, c)
	dc.ScaleAbout(sx, sy, c, c)
	dc.DrawImage(cover, 0, 0)
	dc.Pop()
	return nil
}

func (r *Renderer) drawOverlay(dc *gg.Context, o scene.ImageOverlay) error {
	img, err := r.Images.Load(o.URI)
	if err != nil {
		return err
	}
	w, h := int(math.Round(o.Width)), int(math.Round(o.Height))
	if w <= 0 || h <= 0 {
		return nil
	}
	cover := Cover(img, w, h)
	clip, ok := shapes.ClipOutline(o.Clip)
	if !ok {
		clip = geometry.RectOutline(0, 0, 100, 100)
	}
	dc.Push()
	tracePath(dc, clip.Transform(o.Width/100, o.Height/100, o.X, o.Y))
	dc.Clip()
	dc.DrawImage(cover, int(math.Round(o.X)), int(math.Round(o.Y)))
	dc.ResetClip()
	dc.Pop()
	return nil
}

func (r *Renderer) drawPath(dc *gg.Context, p scene.DrawPath) {
	path, err := geometry.ParsePath(p.Data)
	if err != nil {
		log.Printf("path %s: %v", p.ID, err)
		return
	}
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineWidth(p.StrokeWidth)
	dc.SetColor(p.Color)
	tracePath(dc, path)
	dc.Stroke()
}

func (r *Renderer) drawText(dc *gg.Context, t scene.TextItem) {
	face := r.Fonts.Face(t.FontSize, t.Bold, t.Italic)
	dc.SetFontFace(face)
	dc.SetColor(t.Color)
	ascent := float64(face.Metrics().Ascent) / 64
	dc.DrawString(t.Text, t.X+TextPadding, t.Y+TextPadding+ascent)
}

// DrawShape strokes, and fills when requested, one shape entity.
func DrawShape(dc *gg.Context, s scene.ShapeItem) {
	d, x, y := shapes.Layout(s)
	for _, e := range d.Elements {
		dc.SetLineWidth(s.StrokeWidth)
		if e.Round {
			dc.SetLineCap(gg.LineCapRound)
			dc.SetLineJoin(gg.LineJoinRound)
		} else {
			dc.SetLineCap(gg.LineCapButt)
			dc.SetLineJoin(gg.LineJoinBevel)
		}
		tracePath(dc, e.Path.Translate(x, y))
		if e.Fillable && s.Filled {
			dc.SetColor(s.FillColor)
			dc.FillPreserve()
		}
		dc.SetColor(s.Color)
		dc.Stroke()
	}
}

func tracePath(dc *gg.Context, p geometry.Path) {
	dc.NewSubPath()
	for _, s := range p {
		switch s.Op {
		case geometry.OpMove:
			dc.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case geometry.OpLine:
			dc.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case geometry.OpCubic:
			dc.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case geometry.OpClose:
			dc.ClosePath()
		}
	}
}
