//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

var errNoPixels = errors.New("root pixels: empty reply")

// pixelBytes returns how many bytes one pixel of the given depth takes in a
// ZPixmap reply.
func pixelBytes(setup *xproto.SetupInfo, depth byte) (int, error) {
	for _, f := range setup.PixmapFormats {
		if f.Depth != depth {
			continue
		}
		if f.BitsPerPixel < 24 {
			return 0, fmt.Errorf("root pixels: %d bpp is not a true colour format", f.BitsPerPixel)
		}
		return int(f.BitsPerPixel) / 8, nil
	}
	return 0, fmt.Errorf("root pixels: no pixmap format for depth %d", depth)
}

// decodeRoot converts a BGR(A) ZPixmap of the root window into RGBA. Rows
// may carry padding past w pixels. Depths without an alpha byte come out
// opaque.
func decodeRoot(setup *xproto.SetupInfo, reply *xproto.GetImageReply, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("root pixels: empty geometry %dx%d", w, h)
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, errNoPixels
	}
	bpp, err := pixelBytes(setup, reply.Depth)
	if err != nil {
		return nil, err
	}
	stride := len(reply.Data) / h
	if stride*h != len(reply.Data) || stride < w*bpp {
		return nil, fmt.Errorf("root pixels: %d bytes do not fit %dx%d", len(reply.Data), w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := src[x*bpp:]
			d := dst[x*4 : x*4+4]
			d[0], d[1], d[2], d[3] = p[2], p[1], p[0], 0xFF
			if bpp == 4 && reply.Depth == 32 {
				d[3] = p[3]
			}
		}
	}
	return img, nil
}
