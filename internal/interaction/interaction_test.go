package interaction

import (
	"math/rand"
	"testing"
	"time"

	"github.com/example/snapedit/internal/geometry"
	"github.com/example/snapedit/internal/scene"
)

func pt(x, y float64) geometry.Point { return geometry.Pt(x, y) }

func TestDragAccumulatesUnbounded(t *testing.T) {
	d := NewDrag(pt(10, 10))
	d.Grab()
	d.Move(5, 5)
	if p := d.Move(-500, 900); p != pt(-490, 910) {
		t.Fatalf("live position %v", p)
	}
	if p := d.Release(); p != pt(-490, 910) {
		t.Fatalf("rest position %v", p)
	}
	d.Grab()
	d.Move(1, 1)
	if p := d.Release(); p != pt(-489, 911) {
		t.Fatalf("second drag should start from rest, got %v", p)
	}
}

func TestDragMoveWithoutGrab(t *testing.T) {
	d := NewDrag(pt(3, 4))
	if p := d.Move(10, 10); p != pt(3, 4) {
		t.Fatalf("move without grab changed position: %v", p)
	}
}

func TestResizeFloors(t *testing.T) {
	r := NewResize(Size{160, 160}, Size{60, 60}, false)
	r.Grab()
	if s := r.Move(-1000, -5); s != (Size{60, 155}) {
		t.Fatalf("unexpected size %v", s)
	}
	r.Move(40, 20)
	if s := r.Release(); s != (Size{200, 180}) {
		t.Fatalf("size should be baseline plus delta, got %v", s)
	}
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	min := Size{scene.MinShapeWidth, scene.MinShapeHeight}
	r := NewResize(Size{120, 80}, min, false)
	for i := 0; i < 500; i++ {
		r.Grab()
		for j := 0; j < 5; j++ {
			s := r.Move(rng.Float64()*800-600, rng.Float64()*800-600)
			if s.W < min.W || s.H < min.H {
				t.Fatalf("size %v below floor", s)
			}
		}
		r.Release()
	}
}

func TestResizeLockedHeight(t *testing.T) {
	r := NewResize(Size{120, 28}, Size{30, 20}, true)
	r.Grab()
	if s := r.Move(30, 400); s != (Size{150, 28}) {
		t.Fatalf("locked height changed: %v", s)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTapDetector(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	td := TapDetector{Now: clk.Now}
	if td.Tap() {
		t.Fatalf("first tap is never double")
	}
	clk.Advance(299 * time.Millisecond)
	if !td.Tap() {
		t.Fatalf("expected double tap inside window")
	}
	clk.Advance(300 * time.Millisecond)
	if td.Tap() {
		t.Fatalf("tap at window edge should be single")
	}
}

func TestTextBehaviorDoubleTap(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	b := NewTextBehavior(scene.TextItem{ID: "t1", Text: "Hi", X: 10, Y: 20}, clk.Now)
	var selected, edited []string
	var committed []scene.TextItem
	b.OnSelect = func(id string) { selected = append(selected, id) }
	b.OnEdit = func(id string) { edited = append(edited, id) }
	b.OnCommit = func(it scene.TextItem) { committed = append(committed, it) }

	b.Grab()
	b.Move(5, -5)
	b.Release()
	clk.Advance(100 * time.Millisecond)
	b.Grab()
	b.Release()

	if len(selected) != 2 || len(edited) != 1 || edited[0] != "t1" {
		t.Fatalf("selected %v edited %v", selected, edited)
	}
	if len(committed) != 2 || committed[0].X != 15 || committed[0].Y != 15 {
		t.Fatalf("unexpected commits %+v", committed)
	}
}

func TestOverlayBehaviorResizeCommit(t *testing.T) {
	b := NewOverlayBehavior(scene.ImageOverlay{ID: "o", X: 100, Y: 100, Width: 160, Height: 160})
	var got scene.ImageOverlay
	b.OnCommit = func(o scene.ImageOverlay) { got = o }
	b.GrabHandle()
	b.MoveHandle(-500, 40)
	b.ReleaseHandle()
	if got.Width != scene.MinOverlaySize || got.Height != 200 {
		t.Fatalf("unexpected committed size %vx%v", got.Width, got.Height)
	}
	if got.X != 100 || got.Y != 100 {
		t.Fatalf("resize should not move overlay")
	}
}

func TestShapeBehaviorCommitsBox(t *testing.T) {
	b := NewShapeBehavior(scene.ShapeItem{ID: "s", Kind: scene.Rectangle, X1: 215, Y1: 20, X2: 335, Y2: 100, StrokeWidth: 4})
	var got scene.ShapeItem
	b.OnCommit = func(s scene.ShapeItem) { got = s }
	b.Grab()
	b.Move(-15, 30)
	b.Release()
	if got.X1 != 200 || got.Y1 != 50 || got.X2 != 320 || got.Y2 != 130 {
		t.Fatalf("drag commit %+v", got)
	}
	b.GrabHandle()
	b.MoveHandle(-200, -200)
	b.ReleaseHandle()
	if got.X2-got.X1 != scene.MinShapeWidth || got.Y2-got.Y1 != scene.MinShapeHeight {
		t.Fatalf("resize commit %+v", got)
	}
}

func TestShapeBehaviorSyncMidDrag(t *testing.T) {
	item := scene.ShapeItem{ID: "s", Kind: scene.Rectangle, X1: 215, Y1: 20, X2: 335, Y2: 100, StrokeWidth: 4}
	b := NewShapeBehavior(item)
	b.Grab()
	b.Move(10, 10)

	restyled := item
	restyled.StrokeWidth = 9
	b.Sync(restyled)
	if got := b.Item(); got.StrokeWidth != 9 || got.X1 != 225 || got.Y1 != 30 {
		t.Fatalf("sync during drag %+v", got)
	}
	b.Move(20, 0)
	b.Release()
	if got := b.Item(); got.StrokeWidth != 9 || got.X1 != 235 || got.Y1 != 20 {
		t.Fatalf("after release %+v", got)
	}
}

func TestShapeBehaviorLineKeepsHeight(t *testing.T) {
	b := NewShapeBehavior(scene.ShapeItem{ID: "l", Kind: scene.Arrow, X1: 215, Y1: 20, X2: 335, Y2: 20, StrokeWidth: 4})
	var got scene.ShapeItem
	b.OnCommit = func(s scene.ShapeItem) { got = s }
	b.GrabHandle()
	b.MoveHandle(20, 300)
	b.ReleaseHandle()
	if got.X2-got.X1 != 140 || got.Y2 != got.Y1 {
		t.Fatalf("line resize %+v", got)
	}
	if b.Size().H != 28 {
		t.Fatalf("line displayed height %v", b.Size().H)
	}
}

func TestFreehand(t *testing.T) {
	var f Freehand
	if _, ok := f.Finish(); ok {
		t.Fatalf("finish without start should report nothing")
	}
	f.Extend(1, 1)
	if f.Recording() {
		t.Fatalf("extend before start should not record")
	}
	f.Start(10.04, 20.06)
	f.Extend(11.56, 21)
	if got := f.Live(); got != "M10.0,20.1 L11.6,21.0" {
		t.Fatalf("live path %q", got)
	}
	data, ok := f.Finish()
	if !ok || data != "M10.0,20.1 L11.6,21.0" {
		t.Fatalf("finish = %q, %v", data, ok)
	}
	if f.Recording() || f.Live() != "" {
		t.Fatalf("finish should clear the live path")
	}
}

func TestCropMoveClamped(t *testing.T) {
	c := NewCrop(375)
	start := c.Box()
	c.Grab()
	b := c.Move(20, 15)
	if b.X != start.X+20 || b.Y != start.Y+15 {
		t.Fatalf("unexpected box %+v", b)
	}
	b = c.Move(1000, -1000)
	if b.X != 375-b.Width || b.Y != 0 {
		t.Fatalf("box not clamped: %+v", b)
	}
	c.Release()
}

func TestCropStaysInsideCanvas(t *testing.T) {
	const canvas = 375
	rng := rand.New(rand.NewSource(42))
	c := NewCrop(canvas)
	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			c.Grab()
		} else {
			c.GrabHandle()
		}
		for j := 0; j < 4; j++ {
			b := c.Move(rng.Float64()*900-450, rng.Float64()*900-450)
			if b.X < 0 || b.Y < 0 || b.X+b.Width > canvas+1e-9 || b.Y+b.Height > canvas+1e-9 {
				t.Fatalf("box %+v escapes canvas", b)
			}
			if b.Width < scene.MinCropSize || b.Height < scene.MinCropSize {
				t.Fatalf("box %+v below minimum", b)
			}
		}
		c.Release()
	}
}

func TestCropHandleAndReset(t *testing.T) {
	c := NewCrop(375)
	b := c.Box()
	if !c.HandleAt(b.X+b.Width-5, b.Y+b.Height+5) {
		t.Fatalf("expected handle hit")
	}
	if c.HandleAt(b.X, b.Y) {
		t.Fatalf("top-left is not the handle")
	}
	c.Grab()
	c.Move(-30, -30)
	c.Reset()
	if c.Box() != scene.DefaultCropBox(375) || c.Active() {
		t.Fatalf("reset should restore the default box")
	}
}
