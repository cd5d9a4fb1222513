package scene

import (
	"image/color"
	"testing"
)

func TestCollectionsCloneIsDeep(t *testing.T) {
	c := Collections{
		Texts:  []TextItem{{ID: "a", Text: "Hi"}},
		Shapes: []ShapeItem{{ID: "s", Kind: Star}},
	}
	cp := c.Clone()
	cp.Texts[0].Text = "changed"
	cp.Shapes = append(cp.Shapes, ShapeItem{ID: "t"})
	if c.Texts[0].Text != "Hi" {
		t.Fatalf("clone shares text storage")
	}
	if len(c.Shapes) != 1 {
		t.Fatalf("clone shares shape slice")
	}
}

func TestCollectionsRemove(t *testing.T) {
	c := Collections{
		Texts:    []TextItem{{ID: "a"}, {ID: "b"}},
		Overlays: []ImageOverlay{{ID: "o"}},
	}
	snap := c.Clone()
	if !c.Remove(Selection{Kind: SelectText, ID: "a"}) {
		t.Fatalf("expected text removal")
	}
	if len(c.Texts) != 1 || c.Texts[0].ID != "b" {
		t.Fatalf("unexpected texts %+v", c.Texts)
	}
	if len(snap.Texts) != 2 || snap.Texts[0].ID != "a" {
		t.Fatalf("removal leaked into earlier clone: %+v", snap.Texts)
	}
	if c.Remove(Selection{Kind: SelectShape, ID: "o"}) {
		t.Fatalf("kind mismatch should not remove")
	}
	if c.Remove(Selection{}) {
		t.Fatalf("empty selection should not remove")
	}
}

func TestShapeKindNames(t *testing.T) {
	kinds := ShapeKinds()
	if len(kinds) != 14 {
		t.Fatalf("expected 14 kinds, got %d", len(kinds))
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		name := k.String()
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
		back, err := ParseShapeKind(name)
		if err != nil || back != k {
			t.Fatalf("ParseShapeKind(%q) = %v, %v", name, back, err)
		}
	}
	if _, err := ParseShapeKind("blob"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if !Line.IsLine() || !Arrow.IsLine() || Rectangle.IsLine() {
		t.Fatalf("IsLine misreports")
	}
}

func TestClipShapes(t *testing.T) {
	clips := ClipShapes()
	if len(clips) != 13 {
		t.Fatalf("expected none plus 12 silhouettes, got %d", len(clips))
	}
	if clips[0] != ClipNone {
		t.Fatalf("first clip should be none")
	}
	if ClipTo(Line) != ClipNone {
		t.Fatalf("line cannot clip")
	}
	c, err := ParseClipShape("heart")
	if err != nil {
		t.Fatalf("ParseClipShape: %v", err)
	}
	if k, ok := c.Kind(); !ok || k != Heart {
		t.Fatalf("unexpected clip %v", c)
	}
	if _, err := ParseClipShape("arrow"); err == nil {
		t.Fatalf("arrow clip should be rejected")
	}
	if c, err := ParseClipShape("none"); err != nil || c != ClipNone {
		t.Fatalf("none should parse to ClipNone")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FFFFFF", color.RGBA{255, 255, 255, 255}},
		{"#ff000080", color.RGBA{255, 0, 0, 128}},
		{"#0f0", color.RGBA{0, 255, 0, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"Black", color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "notacolour"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if got := FormatColor(color.RGBA{255, 0, 16, 255}); got != "#FF0010" {
		t.Fatalf("FormatColor = %q", got)
	}
}

func TestStyleClamps(t *testing.T) {
	if ClampStrokeWidth(0) != MinStrokeWidth || ClampStrokeWidth(99) != MaxStrokeWidth {
		t.Fatalf("stroke width not clamped")
	}
	if ClampFontSize(2) != MinFontSize || ClampFontSize(100) != MaxFontSize {
		t.Fatalf("font size not clamped")
	}
	s := DefaultStyle()
	if s.StrokeColor != White || s.StrokeWidth != 4 || s.FontSize != 24 {
		t.Fatalf("unexpected default style %+v", s)
	}
}

func TestCropBoxDefaultAndClamp(t *testing.T) {
	b := DefaultCropBox(375)
	if b.X != 37.5 || b.Y != 37.5 || b.Width != 300 || b.Height != 300 {
		t.Fatalf("unexpected default crop box %+v", b)
	}
	c := CropBox{X: 350, Y: -20, Width: 10, Height: 500}.Clamp(375)
	if c.Width != MinCropSize || c.Height != 375 {
		t.Fatalf("size not clamped: %+v", c)
	}
	if !c.Inside(375) {
		t.Fatalf("clamped box escaped canvas: %+v", c)
	}
}

func TestShapeBoxNormalises(t *testing.T) {
	s := ShapeItem{X1: 100, Y1: 50, X2: 20, Y2: 10}
	x, y, w, h := s.Box()
	if x != 20 || y != 10 || w != 80 || h != 40 {
		t.Fatalf("unexpected box %v %v %v %v", x, y, w, h)
	}
}

func TestBaseLayerRotateWraps(t *testing.T) {
	b := BaseLayer{}
	for i := 0; i < 4; i++ {
		b = b.Rotate()
	}
	if b.Rotation != 0 {
		t.Fatalf("rotation should wrap, got %d", b.Rotation)
	}
}
