package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Images loads and caches the images referenced by the scene.
type Images struct {
	cache map[string]image.Image
}

// NewImages returns an empty cache.
func NewImages() *Images {
	return &Images{cache: map[string]image.Image{}}
}

// Path turns an image reference into a file path. Plain paths and file://
// URIs are accepted.
func Path(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported image reference %q", uri)
	}
	return u.Path, nil
}

// Load returns the decoded image for uri.
func (m *Images) Load(uri string) (image.Image, error) {
	if img, ok := m.cache[uri]; ok {
		return img, nil
	}
	img, err := Decode(uri)
	if err != nil {
		return nil, err
	}
	m.cache[uri] = img
	return img, nil
}

// Put stores img under uri, replacing any cached copy.
func (m *Images) Put(uri string, img image.Image) { m.cache[uri] = img }

// Forget drops uri from the cache.
func (m *Images) Forget(uri string) { delete(m.cache, uri) }

// Decode reads the image at uri without caching it.
func Decode(uri string) (image.Image, error) {
	p, err := Path(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return img, nil
}

// Cover scales src to fill a w by h box, keeping its aspect ratio and
// cropping the overflow evenly from both sides.
func Cover(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	if w <= 0 || h <= 0 || sb.Empty() {
		return dst
	}
	scale := max(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	cw := int(float64(w) / scale)
	ch := int(float64(h) / scale)
	cw = min(max(cw, 1), sb.Dx())
	ch = min(max(ch, 1), sb.Dy())
	x0 := sb.Min.X + (sb.Dx()-cw)/2
	y0 := sb.Min.Y + (sb.Dy()-ch)/2
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, image.Rect(x0, y0, x0+cw, y0+ch), xdraw.Src, nil)
	return dst
}
