//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "snapedit-test" }
	t.Cleanup(func() { portalHandleToken = prev })

	opts := portalOptions(Options{Interactive: true, IncludeCursor: true})
	if v, _ := opts["handle_token"].Value().(string); v != "snapedit-test" {
		t.Fatalf("unexpected handle token %q", v)
	}
	if v, _ := opts["interactive"].Value().(bool); !v {
		t.Fatalf("interactive not forwarded")
	}
	if v, _ := opts["cursor_mode"].Value().(string); v != "embedded" {
		t.Fatalf("unexpected cursor mode %q", v)
	}
}

func TestPortalResultLoadsAndRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := portalResult([]interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file://" + path)}})
	if err != nil {
		t.Fatalf("portalResult: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.RGBAAt(1, 1).R != 200 {
		t.Fatalf("unexpected image %v", img.Bounds())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temporary file removed, stat err %v", err)
	}
}

func TestPortalResultCancelled(t *testing.T) {
	if _, err := portalResult([]interface{}{uint32(1), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected error for cancelled request")
	}
	if _, err := portalResult([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("expected error for malformed response")
	}
}
