// Package capture grabs the screen so a screenshot can be placed into the
// editor. It asks the desktop portal first and falls back to reading the X11
// root window.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Options selects what to capture.
type Options struct {
	// Interactive lets the user pick a region through the portal. It never
	// falls back to X11.
	Interactive bool
	// Display crops the result to one monitor: an index, "primary" or part of
	// an output name.
	Display string
	// IncludeCursor embeds the pointer when the portal supports it.
	IncludeCursor bool
}

// MonitorInfo describes one monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type platformBackend interface {
	Monitors() ([]MonitorInfo, error)
	Root() (*image.RGBA, error)
}

var (
	backend      = newBackend()
	portalShotFn = portalScreenshot
)

var errNoMonitors = errors.New("no monitors available")

// Screenshot captures the desktop.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := portalShotFn(ctx, opts)
	if err != nil {
		if opts.Interactive || !portalUnavailable(err) {
			return nil, err
		}
		root, rootErr := backend.Root()
		if rootErr != nil {
			return nil, fmt.Errorf("portal screenshot: %v; x11 fallback: %w", err, rootErr)
		}
		img = root
	}
	if opts.Display == "" || opts.Interactive {
		return img, nil
	}
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, err
	}
	mon, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

// ListMonitors returns the connected monitors.
func ListMonitors() ([]MonitorInfo, error) { return backend.Monitors() }

func portalUnavailable(err error) bool {
	var name string
	var ptrErr *dbus.Error
	var valErr dbus.Error
	switch {
	case errors.As(err, &ptrErr):
		name = ptrErr.Name
	case errors.As(err, &valErr):
		name = valErr.Name
	default:
		return errors.Is(err, errNoSessionBus)
	}
	switch name {
	case "org.freedesktop.portal.Error.NotSupported",
		"org.freedesktop.DBus.Error.ServiceUnknown",
		"org.freedesktop.DBus.Error.UnknownMethod",
		"org.freedesktop.DBus.Error.Disconnected":
		return true
	}
	return false
}

// FindMonitor resolves a monitor selector against monitors.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
