// Package interaction implements the direct-manipulation gestures applied to
// canvas items: moving, resizing, double taps, freehand strokes and the crop
// box.
package interaction

import (
	"math"
	"time"

	"github.com/example/snapedit/internal/geometry"
)

// Drag moves a resting position by raw pointer deltas. Positions are never
// checked against the canvas.
type Drag struct {
	rest   geometry.Point
	offset geometry.Point
	active bool
}

// NewDrag returns a drag resting at p.
func NewDrag(p geometry.Point) Drag { return Drag{rest: p} }

// Grab starts a gesture from the current resting position.
func (d *Drag) Grab() {
	d.offset = geometry.Point{}
	d.active = true
}

// Move sets the accumulated delta since Grab and returns the live position.
func (d *Drag) Move(dx, dy float64) geometry.Point {
	if !d.active {
		return d.rest
	}
	d.offset = geometry.Point{X: dx, Y: dy}
	return d.Position()
}

// Release folds the gesture into the resting position and returns it.
func (d *Drag) Release() geometry.Point {
	if d.active {
		d.rest = d.rest.Add(d.offset)
		d.offset = geometry.Point{}
		d.active = false
	}
	return d.rest
}

// Position is the live position, including any uncommitted delta.
func (d *Drag) Position() geometry.Point { return d.rest.Add(d.offset) }

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool { return d.active }

// Size is a width and height pair.
type Size struct {
	W, H float64
}

// Resize grows or shrinks from a baseline captured at grab, never going below
// its floor. A locked height keeps the baseline height.
type Resize struct {
	size       Size
	base       Size
	min        Size
	lockHeight bool
	active     bool
}

// NewResize returns a resize starting at size s with floor min.
func NewResize(s, min Size, lockHeight bool) Resize {
	return Resize{size: s, min: min, lockHeight: lockHeight}
}

// Grab captures the current size as the baseline.
func (r *Resize) Grab() {
	r.base = r.size
	r.active = true
}

// Move applies the accumulated delta since Grab.
func (r *Resize) Move(dx, dy float64) Size {
	if !r.active {
		return r.size
	}
	r.size.W = math.Max(r.min.W, r.base.W+dx)
	if !r.lockHeight {
		r.size.H = math.Max(r.min.H, r.base.H+dy)
	}
	return r.size
}

// Release ends the gesture and returns the final size.
func (r *Resize) Release() Size {
	r.active = false
	return r.size
}

// Size returns the latest computed size.
func (r *Resize) Size() Size { return r.size }

// Active reports whether a resize is in progress.
func (r *Resize) Active() bool { return r.active }

// DoubleTapWindow is the longest gap between two taps counted as a double tap.
const DoubleTapWindow = 300 * time.Millisecond

// TapDetector recognises two grabs in quick succession.
type TapDetector struct {
	// Now defaults to time.Now.
	Now  func() time.Time
	last time.Time
}

// Tap records a grab and reports whether it completes a double tap.
func (t *TapDetector) Tap() bool {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	n := now()
	double := !t.last.IsZero() && n.Sub(t.last) < DoubleTapWindow
	t.last = n
	return double
}
