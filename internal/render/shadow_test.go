package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	s := Shadow{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := s.Apply(img)
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	shadowPt := subject.Add(s.Offset)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got.R != 255 || got.A != 255 {
		t.Fatalf("subject pixel lost: %+v", got)
	}
}

func TestShadowDisabledKeepsImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out := Shadow{Radius: 12, Offset: image.Pt(20, 10)}.Apply(img)
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Bounds(), img.Bounds())
	}
	if got := out.RGBAAt(2, 2); got != fill {
		t.Fatalf("pixel mismatch: got %+v want %+v", got, fill)
	}
}

func TestShadowBlurSpreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	s := Shadow{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}
	out := s.Apply(img)
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	// the canvas grows upward by the radius, so the source pixel lands at (0,2)
	base := image.Pt(3, 2)
	if out.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if out.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatal("expected blurred alpha to reach neighbour")
	}
}

func TestParseShadow(t *testing.T) {
	tests := []struct {
		in   string
		want Shadow
	}{
		{"off", Shadow{}},
		{"on", DefaultShadow()},
		{"8,2,3,0.25", Shadow{Radius: 8, Offset: image.Pt(2, 3), Opacity: 0.25}},
		{"-1,0,0,4", Shadow{Radius: 0, Opacity: 1}},
	}
	for _, tt := range tests {
		got, err := ParseShadow(tt.in)
		if err != nil {
			t.Fatalf("ParseShadow(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseShadow(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if back, err := ParseShadow(got.String()); err != nil || back != got {
			t.Errorf("round trip of %q gave %+v, %v", tt.in, back, err)
		}
	}
	for _, bad := range []string{"1,2", "a,b,c,d", "1,2,3,x"} {
		if _, err := ParseShadow(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
