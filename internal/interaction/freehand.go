package interaction

import (
	"strings"

	"github.com/example/snapedit/internal/geometry"
)

// Freehand records a stroke as path data while the pointer is down.
type Freehand struct {
	b      strings.Builder
	points int
}

// Start begins a new stroke at (x, y), discarding any unfinished one.
func (f *Freehand) Start(x, y float64) {
	f.b.Reset()
	f.b.WriteString("M" + geometry.FormatPoint(geometry.Pt(x, y)))
	f.points = 1
}

// Extend appends a line to (x, y). It does nothing before Start.
func (f *Freehand) Extend(x, y float64) {
	if f.points == 0 {
		return
	}
	f.b.WriteString(" L" + geometry.FormatPoint(geometry.Pt(x, y)))
	f.points++
}

// Cancel drops an unfinished stroke.
func (f *Freehand) Cancel() {
	f.b.Reset()
	f.points = 0
}

// Live returns the path data recorded so far.
func (f *Freehand) Live() string { return f.b.String() }

// Recording reports whether a stroke is in progress.
func (f *Freehand) Recording() bool { return f.points > 0 }

// Finish ends the stroke and returns its data. ok is false when nothing was
// recorded.
func (f *Freehand) Finish() (data string, ok bool) {
	if f.points == 0 {
		return "", false
	}
	data = f.b.String()
	f.b.Reset()
	f.points = 0
	return data, true
}
