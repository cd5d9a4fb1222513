package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// TextPadding is the inset of a text label inside its box.
const TextPadding = 4

type faceKey struct {
	size         float64
	bold, italic bool
}

// Fonts hands out font faces for text items.
type Fonts struct {
	fonts [4]*truetype.Font
	faces map[faceKey]font.Face
}

// NewFonts parses the bundled Go fonts.
func NewFonts() (*Fonts, error) {
	f := &Fonts{faces: map[faceKey]font.Face{}}
	for i, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		ttf, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		f.fonts[i] = ttf
	}
	return f, nil
}

// Face returns the face for the given size and style.
func (f *Fonts) Face(size float64, bold, italic bool) font.Face {
	k := faceKey{size, bold, italic}
	if face, ok := f.faces[k]; ok {
		return face
	}
	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	face := truetype.NewFace(f.fonts[idx], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[k] = face
	return face
}

// MeasureText returns the size of a text item's box, padding included.
func (f *Fonts) MeasureText(text string, size float64, bold, italic bool) (w, h float64) {
	face := f.Face(size, bold, italic)
	adv := font.MeasureString(face, text)
	m := face.Metrics()
	w = float64(adv) / 64
	h = float64(m.Ascent+m.Descent) / 64
	return w + 2*TextPadding, h + 2*TextPadding
}
