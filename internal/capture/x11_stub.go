//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

type unsupportedBackend struct{}

func newBackend() platformBackend { return unsupportedBackend{} }

func (unsupportedBackend) Monitors() ([]MonitorInfo, error) {
	return nil, errors.New("monitor listing is not supported on this platform")
}

func (unsupportedBackend) Root() (*image.RGBA, error) {
	return nil, errors.New("screen capture is not supported on this platform")
}
