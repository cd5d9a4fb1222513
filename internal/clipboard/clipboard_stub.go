//go:build !((linux || freebsd || openbsd || netbsd || dragonfly) && cgo)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard image operations are not supported on this platform")

func init() { system = unsupported{} }

type unsupported struct{}

func (unsupported) readImage() ([]byte, error) { return nil, errUnsupported }
func (unsupported) writeImage([]byte) error    { return errUnsupported }
