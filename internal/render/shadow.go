package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// Shadow is a blurred drop shadow added around an exported image.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow is the shadow used when exports ask for one without details.
func DefaultShadow() Shadow {
	return Shadow{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// Enabled reports whether the shadow draws anything.
func (s Shadow) Enabled() bool { return s.Opacity > 0 }

// String renders s in the form accepted by ParseShadow.
func (s Shadow) String() string {
	if !s.Enabled() {
		return "off"
	}
	return fmt.Sprintf("%d,%d,%d,%s", s.Radius, s.Offset.X, s.Offset.Y, strconv.FormatFloat(s.Opacity, 'f', -1, 64))
}

// ParseShadow accepts "off", "on" for the default shadow, or
// "radius,dx,dy,opacity".
func ParseShadow(v string) (Shadow, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "off", "false", "no":
		return Shadow{}, nil
	case "on", "true", "yes", "default":
		return DefaultShadow(), nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return Shadow{}, fmt.Errorf("shadow %q: want radius,dx,dy,opacity", v)
	}
	var ints [3]int
	for i := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Shadow{}, fmt.Errorf("shadow %q: %w", v, err)
		}
		ints[i] = n
	}
	op, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return Shadow{}, fmt.Errorf("shadow %q: %w", v, err)
	}
	return Shadow{Radius: max(ints[0], 0), Offset: image.Pt(ints[1], ints[2]), Opacity: min(op, 1)}, nil
}

// Apply returns img on a canvas grown to fit its shadow, with the shadow
// underneath. The result has a zero origin. A disabled shadow returns img
// copied to RGBA.
func (s Shadow) Apply(img image.Image) *image.RGBA {
	src := toRGBA(img)
	sb := src.Bounds()
	if sb.Empty() || !s.Enabled() {
		return src
	}
	padded := sb.Inset(-s.Radius)
	shadowAt := padded.Add(s.Offset)
	all := sb.Union(shadowAt)

	mask := image.NewAlpha(padded.Sub(padded.Min))
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			if a := src.RGBAAt(x, y).A; a != 0 {
				mask.SetAlpha(x-padded.Min.X, y-padded.Min.Y, color.Alpha{A: a})
			}
		}
	}
	blurAlpha(mask, s.Radius)

	dst := image.NewRGBA(all.Sub(all.Min))
	shade := image.NewUniform(color.RGBA{A: uint8(s.Opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(shadowAt.Min.Sub(all.Min)), shade, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, sb.Sub(all.Min), src, sb.Min, draw.Over)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// blurAlpha applies a box blur of the given radius in place, one axis at a
// time.
func blurAlpha(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		boxBlur(row, line[:w], radius)
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = m.Pix[y*m.Stride+x]
		}
		boxBlur(col, line[:h], radius)
		for y := 0; y < h; y++ {
			m.Pix[y*m.Stride+x] = col[y]
		}
	}
}

// boxBlur averages each entry of v with its neighbours within radius, using
// scratch as temporary storage.
func boxBlur(v, scratch []uint8, radius int) {
	n := len(v)
	prefix := make([]int, n+1)
	for i, a := range v {
		prefix[i+1] = prefix[i] + int(a)
	}
	for i := range v {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		scratch[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
	copy(v, scratch)
}
