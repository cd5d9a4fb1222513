// Package picker chooses an image to place into the editor. Sources include a
// native file chooser, the clipboard and a screen capture.
package picker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sqweek/dialog"

	"github.com/example/snapedit/internal/capture"
	"github.com/example/snapedit/internal/clipboard"
	"github.com/example/snapedit/internal/rasterizer"
)

// ErrNoImage is returned by sources that found nothing to offer.
var ErrNoImage = errors.New("no image available")

// Asset is one chosen image. URI may be empty when the source returned an
// incomplete record.
type Asset struct {
	URI string
}

// Response is the result of one pick. Exactly one of DidCancel, ErrorCode or
// Assets is meaningful.
type Response struct {
	DidCancel    bool
	ErrorCode    string
	ErrorMessage string
	Assets       []*Asset
}

// Picker asks the user for an image. A non-nil error means the source itself
// failed rather than reporting an error code.
type Picker interface {
	Pick(ctx context.Context) (Response, error)
}

// Func adapts a function to Picker.
type Func func(ctx context.Context) (Response, error)

func (f Func) Pick(ctx context.Context) (Response, error) { return f(ctx) }

// Selected wraps uri in a single asset response.
func Selected(uri string) Response {
	return Response{Assets: []*Asset{{URI: uri}}}
}

// DialogPicker opens the native file chooser.
type DialogPicker struct {
	Title string
	// StartDir is where the chooser opens. Empty uses the chooser's default.
	StartDir string
}

var loadFile = func(title, dir string) (string, error) {
	b := dialog.File().Title(title).Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "tiff", "webp")
	if dir != "" {
		b = b.SetStartDir(dir)
	}
	return b.Load()
}

func (p DialogPicker) Pick(ctx context.Context) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	title := p.Title
	if title == "" {
		title = "Choose a photo"
	}
	path, err := loadFile(title, p.StartDir)
	if errors.Is(err, dialog.ErrCancelled) {
		return Response{DidCancel: true}, nil
	}
	if err != nil {
		return Response{ErrorCode: "dialog", ErrorMessage: err.Error()}, nil
	}
	return Selected(path), nil
}

// FilePicker always picks Path. Missing files are reported as an error code.
type FilePicker struct {
	Path string
}

func (p FilePicker) Pick(ctx context.Context) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if p.Path == "" {
		return Response{}, nil
	}
	if _, err := os.Stat(p.Path); err != nil {
		return Response{ErrorCode: "not_found", ErrorMessage: err.Error()}, nil
	}
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return Response{}, err
	}
	return Selected(abs), nil
}

// ClipboardPicker offers the clipboard image, written to a PNG in Dir.
type ClipboardPicker struct {
	Dir string
}

var readClipboard = clipboard.ReadImage

func (p ClipboardPicker) Pick(ctx context.Context) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	img, err := readClipboard()
	if errors.Is(err, clipboard.ErrNoImage) {
		return Response{}, nil
	}
	if err != nil {
		return Response{ErrorCode: "clipboard", ErrorMessage: err.Error()}, nil
	}
	path, err := stash(p.Dir, "clipboard", img)
	if err != nil {
		return Response{}, err
	}
	return Selected(path), nil
}

// ScreenPicker offers a screenshot of the desktop.
type ScreenPicker struct {
	Dir     string
	Capture capture.Options
}

var screenshot = capture.Screenshot

func (p ScreenPicker) Pick(ctx context.Context) (Response, error) {
	img, err := screenshot(ctx, p.Capture)
	if errors.Is(err, context.Canceled) {
		return Response{DidCancel: true}, nil
	}
	if err != nil {
		return Response{ErrorCode: "capture", ErrorMessage: err.Error()}, nil
	}
	path, err := stash(p.Dir, "screen", img)
	if err != nil {
		return Response{}, err
	}
	return Selected(path), nil
}

func stash(dir, prefix string, img image.Image) (string, error) {
	if img == nil {
		return "", ErrNoImage
	}
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("snapedit-%s-%s.png", prefix, uuid.NewString()))
	if err := rasterizer.WriteFile(path, img, rasterizer.Options{Format: rasterizer.PNG}); err != nil {
		return "", err
	}
	return path, nil
}
