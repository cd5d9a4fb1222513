package rasterizer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func solid(w, h int) View {
	return ViewFunc{W: w, H: h, Fn: func() (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
		return img, nil
	}}
}

func TestFileRasterizerWritesFormats(t *testing.T) {
	dir := t.TempDir()
	r := FileRasterizer{Dir: dir}
	for _, f := range []Format{PNG, JPEG} {
		ref, err := r.Capture(context.Background(), solid(12, 8), Options{Format: f, Quality: 0.95})
		if err != nil {
			t.Fatalf("Capture(%s): %v", f, err)
		}
		if filepath.Dir(ref) != dir || !strings.HasSuffix(ref, "."+string(f)) {
			t.Fatalf("unexpected reference %q", ref)
		}
		fh, err := os.Open(ref)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		cfg, _, err := image.DecodeConfig(fh)
		fh.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", ref, err)
		}
		if cfg.Width != 12 || cfg.Height != 8 {
			t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
		}
	}
}

func TestFileRasterizerUniqueNames(t *testing.T) {
	r := FileRasterizer{Dir: t.TempDir()}
	a, err := r.Capture(context.Background(), solid(2, 2), Options{Format: PNG})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Capture(context.Background(), solid(2, 2), Options{Format: PNG})
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("captures share a name: %s", a)
	}
}

func TestFileRasterizerErrors(t *testing.T) {
	r := FileRasterizer{Dir: t.TempDir()}
	if _, err := r.Capture(context.Background(), solid(0, 5), Options{}); !errors.Is(err, ErrEmptyView) {
		t.Fatalf("expected ErrEmptyView, got %v", err)
	}
	boom := errors.New("boom")
	v := ViewFunc{W: 1, H: 1, Fn: func() (image.Image, error) { return nil, boom }}
	if _, err := r.Capture(context.Background(), v, Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Capture(ctx, solid(1, 1), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, "JPG": JPEG, "jpeg": JPEG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for gif")
	}
}

func TestDelaySettler(t *testing.T) {
	d := DelaySettler{Capture: time.Millisecond, Stage: time.Hour}
	if err := d.Settle(context.Background(), BeforeCapture); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := d.Settle(ctx, BeforeStage); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
	if got := DefaultDelays(); got.Capture != 200*time.Millisecond || got.Stage != 300*time.Millisecond {
		t.Fatalf("unexpected default delays %+v", got)
	}
}

func TestImmediate(t *testing.T) {
	if err := (Immediate{}).Settle(context.Background(), BeforeStage); err != nil {
		t.Fatalf("Settle: %v", err)
	}
}
