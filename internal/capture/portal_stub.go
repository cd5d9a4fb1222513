//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"errors"
	"image"
)

var errNoSessionBus = errors.New("no session bus")

func portalScreenshot(context.Context, Options) (*image.RGBA, error) {
	return nil, errors.New("portal screenshot is not supported on this platform")
}
