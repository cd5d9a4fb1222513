package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBackend struct {
	monitors []MonitorInfo
	root     *image.RGBA
	rootErr  error
	rootHits int
}

func (f *fakeBackend) Monitors() ([]MonitorInfo, error) {
	if len(f.monitors) == 0 {
		return nil, errNoMonitors
	}
	return f.monitors, nil
}

func (f *fakeBackend) Root() (*image.RGBA, error) {
	f.rootHits++
	return f.root, f.rootErr
}

func swapCapture(t *testing.T, b platformBackend, fn func(context.Context, Options) (*image.RGBA, error)) {
	t.Helper()
	prevBackend, prevPortal := backend, portalShotFn
	backend, portalShotFn = b, fn
	t.Cleanup(func() {
		backend, portalShotFn = prevBackend, prevPortal
	})
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestScreenshotUsesPortal(t *testing.T) {
	fb := &fakeBackend{}
	want := solid(4, 4, color.RGBA{R: 255, A: 255})
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) { return want, nil })

	got, err := Screenshot(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if got != want {
		t.Fatalf("expected portal image")
	}
	if fb.rootHits != 0 {
		t.Fatalf("root capture should not run, ran %d times", fb.rootHits)
	}
}

func TestScreenshotFallsBackToRoot(t *testing.T) {
	fb := &fakeBackend{root: solid(8, 8, color.RGBA{G: 255, A: 255})}
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) {
		return nil, dbus.NewError("org.freedesktop.portal.Error.NotSupported", nil)
	})

	got, err := Screenshot(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if got.Bounds().Dx() != 8 || fb.rootHits != 1 {
		t.Fatalf("expected root fallback, bounds %v hits %d", got.Bounds(), fb.rootHits)
	}
}

func TestScreenshotNoSessionBusFallsBack(t *testing.T) {
	fb := &fakeBackend{root: solid(2, 2, color.RGBA{A: 255})}
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) {
		return nil, errNoSessionBus
	})
	if _, err := Screenshot(context.Background(), Options{}); err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
}

func TestScreenshotInteractiveDoesNotFallBack(t *testing.T) {
	fb := &fakeBackend{root: solid(2, 2, color.RGBA{A: 255})}
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) {
		return nil, errNoSessionBus
	})
	if _, err := Screenshot(context.Background(), Options{Interactive: true}); !errors.Is(err, errNoSessionBus) {
		t.Fatalf("expected session bus error, got %v", err)
	}
	if fb.rootHits != 0 {
		t.Fatalf("root capture ran for interactive request")
	}
}

func TestScreenshotOtherPortalErrorsSurface(t *testing.T) {
	boom := errors.New("boom")
	fb := &fakeBackend{}
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) { return nil, boom })
	if _, err := Screenshot(context.Background(), Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestScreenshotCropsToDisplay(t *testing.T) {
	img := solid(200, 100, color.RGBA{B: 255, A: 255})
	img.SetRGBA(150, 50, color.RGBA{R: 255, A: 255})
	fb := &fakeBackend{monitors: []MonitorInfo{
		{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 100, 100)},
		{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 200, 100), Primary: true},
	}}
	swapCapture(t, fb, func(context.Context, Options) (*image.RGBA, error) { return img, nil })

	got, err := Screenshot(context.Background(), Options{Display: "primary"})
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
	if c := got.RGBAAt(50, 50); c.R != 255 {
		t.Fatalf("expected marker pixel, got %v", c)
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "eDP-1"},
		{Index: 1, Name: "HDMI-1", Primary: true},
	}
	tests := []struct {
		sel     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"primary", 1, false},
		{"1", 1, false},
		{"#0", 0, false},
		{"hdmi", 1, false},
		{"5", 0, true},
		{"dp-9", 0, true},
	}
	for _, tt := range tests {
		got, err := FindMonitor(monitors, tt.sel)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("FindMonitor(%q): expected error", tt.sel)
			}
			continue
		}
		if err != nil {
			t.Fatalf("FindMonitor(%q): %v", tt.sel, err)
		}
		if got.Index != tt.want {
			t.Fatalf("FindMonitor(%q) = %d, want %d", tt.sel, got.Index, tt.want)
		}
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}

func TestCropToRectOutside(t *testing.T) {
	if _, err := cropToRect(solid(10, 10, color.RGBA{}), image.Rect(20, 20, 30, 30)); err == nil {
		t.Fatalf("expected error for region outside image")
	}
}
