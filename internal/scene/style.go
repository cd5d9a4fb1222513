package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const (
	DefaultStrokeWidth = 4
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 20

	DefaultFontSize = 24
	MinFontSize     = 12
	MaxFontSize     = 72
	FontSizeStep    = 2
)

// White is the default stroke and fill colour.
var White = color.RGBA{255, 255, 255, 255}

// Style is the one current style record read by every creation path: freehand
// strokes, shapes and text all take their colour from it.
type Style struct {
	StrokeColor color.RGBA
	StrokeWidth float64
	FontSize    float64
	Bold        bool
	Italic      bool
	Filled      bool
	FillColor   color.RGBA
}

// DefaultStyle returns white strokes of width 4 and 24 point text.
func DefaultStyle() Style {
	return Style{
		StrokeColor: White,
		StrokeWidth: DefaultStrokeWidth,
		FontSize:    DefaultFontSize,
		FillColor:   White,
	}
}

// ClampStrokeWidth limits w to the stroke width range.
func ClampStrokeWidth(w float64) float64 {
	return math.Max(MinStrokeWidth, math.Min(MaxStrokeWidth, w))
}

// ClampFontSize limits s to the font size range.
func ClampFontSize(s float64) float64 {
	return math.Max(MinFontSize, math.Min(MaxFontSize, s))
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty colour")
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
