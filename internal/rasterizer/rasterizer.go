// Package rasterizer turns renderable views into image files.
package rasterizer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyView is returned for views with no area.
var ErrEmptyView = errors.New("view has no area")

// View is something that can be drawn to an image of a known size.
type View interface {
	Size() image.Point
	Render() (image.Image, error)
}

// ViewFunc adapts a render function of a fixed size to View.
type ViewFunc struct {
	W, H int
	Fn   func() (image.Image, error)
}

func (v ViewFunc) Size() image.Point           { return image.Pt(v.W, v.H) }
func (v ViewFunc) Render() (image.Image, error) { return v.Fn() }

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
)

// ParseFormat accepts png, jpg or jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Options controls encoding. Quality runs from 0 to 1 and only affects JPEG.
type Options struct {
	Format  Format
	Quality float64
}

// Rasterizer renders a view and returns a reference to the written image.
type Rasterizer interface {
	Capture(ctx context.Context, v View, opts Options) (string, error)
}

// FileRasterizer writes captures as files into Dir, or the system temp
// directory when Dir is empty.
type FileRasterizer struct {
	Dir string
	// Prefix names the files. It defaults to "snapedit".
	Prefix string
}

// Capture renders v and writes it to a new file.
func (r FileRasterizer) Capture(ctx context.Context, v View, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if sz := v.Size(); sz.X <= 0 || sz.Y <= 0 {
		return "", ErrEmptyView
	}
	img, err := v.Render()
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	dir := r.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	prefix := r.Prefix
	if prefix == "" {
		prefix = "snapedit"
	}
	format := opts.Format
	if format == "" {
		format = PNG
	}
	name := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", prefix, uuid.NewString(), format))
	if err := WriteFile(name, img, Options{Format: format, Quality: opts.Quality}); err != nil {
		return "", err
	}
	return name, nil
}

// WriteFile encodes img to path.
func WriteFile(path string, img image.Image, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Encode writes img in the requested format.
func Encode(w io.Writer, img image.Image, opts Options) error {
	switch opts.Format {
	case JPEG:
		q := int(opts.Quality*100 + 0.5)
		q = min(max(q, 1), 100)
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: q}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	case PNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	default:
		return fmt.Errorf("unknown image format %q", opts.Format)
	}
	return nil
}
