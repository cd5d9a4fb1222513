// Package clipboard moves images between the editor and the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrNoImage is returned when the clipboard holds no image data.
var ErrNoImage = errors.New("clipboard does not contain image data")

// system is the platform clipboard. Tests replace it.
var system interface {
	readImage() ([]byte, error)
	writeImage([]byte) error
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("clipboard: nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard encode: %w", err)
	}
	return system.writeImage(buf.Bytes())
}

// ReadImage decodes the image currently held by the clipboard.
func ReadImage() (image.Image, error) {
	data, err := system.readImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard decode: %w", err)
	}
	return img, nil
}
