//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func testSetup() *xproto.SetupInfo {
	return &xproto.SetupInfo{PixmapFormats: []xproto.Format{
		{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
		{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
		{Depth: 32, BitsPerPixel: 32, ScanlinePad: 32},
	}}
}

func TestDecodeRootSwapsChannels(t *testing.T) {
	// Two pixels per row plus four bytes of padding; the fourth byte is junk
	// at depth 24.
	data := []byte{
		10, 20, 30, 0, 40, 50, 60, 7, 0, 0, 0, 0,
		1, 2, 3, 0, 4, 5, 6, 0, 0, 0, 0, 0,
	}
	img, err := decodeRoot(testSetup(), &xproto.GetImageReply{Depth: 24, Data: data}, 2, 2)
	if err != nil {
		t.Fatalf("decodeRoot: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{30, 20, 10, 255}) {
		t.Fatalf("pixel (0,0) = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{60, 50, 40, 255}) {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{6, 5, 4, 255}) {
		t.Fatalf("pixel (1,1) = %v", got)
	}
}

func TestDecodeRootKeepsAlphaAtDepth32(t *testing.T) {
	data := []byte{10, 20, 30, 128}
	img, err := decodeRoot(testSetup(), &xproto.GetImageReply{Depth: 32, Data: data}, 1, 1)
	if err != nil {
		t.Fatalf("decodeRoot: %v", err)
	}
	if got := img.RGBAAt(0, 0); got.A != 128 {
		t.Fatalf("alpha %d", got.A)
	}
}

func TestDecodeRootRejects(t *testing.T) {
	setup := testSetup()
	if _, err := decodeRoot(setup, nil, 1, 1); !errors.Is(err, errNoPixels) {
		t.Fatalf("nil reply: %v", err)
	}
	if _, err := decodeRoot(setup, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 4)}, 0, 1); err == nil {
		t.Fatalf("empty geometry should fail")
	}
	if _, err := decodeRoot(setup, &xproto.GetImageReply{Depth: 1, Data: make([]byte, 4)}, 1, 1); err == nil {
		t.Fatalf("1 bpp should fail")
	}
	if _, err := decodeRoot(setup, &xproto.GetImageReply{Depth: 16, Data: make([]byte, 4)}, 1, 1); err == nil {
		t.Fatalf("unknown depth should fail")
	}
	if _, err := decodeRoot(setup, &xproto.GetImageReply{Depth: 24, Data: make([]byte, 6)}, 2, 1); err == nil {
		t.Fatalf("short row should fail")
	}
}
