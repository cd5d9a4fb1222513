package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/scene"
)

type fakeRasterizer struct{ calls int }

func (f *fakeRasterizer) Capture(ctx context.Context, v rasterizer.View, opts rasterizer.Options) (string, error) {
	f.calls++
	return fmt.Sprintf("capture-%d.%s", f.calls, opts.Format), nil
}

type quietAlerts struct{ titles []string }

func (q *quietAlerts) Alert(title, _ string) { q.titles = append(q.titles, title) }

func newRunner(t *testing.T, opts ...editor.Option) (*Runner, *editor.Editor, *bytes.Buffer) {
	t.Helper()
	opts = append([]editor.Option{editor.WithAlerter(&quietAlerts{}), editor.WithRasterizer(&fakeRasterizer{})}, opts...)
	ed, err := editor.New(opts...)
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	var out bytes.Buffer
	return NewRunner(ed, &out), ed, &out
}

func run(t *testing.T, r *Runner, src string) error {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return r.Run(context.Background(), cmds)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		name string
		args []string
		ok   bool
	}{
		{"", "", nil, false},
		{"   # only a comment", "", nil, false},
		{"Shape star", "shape", []string{"star"}, true},
		{"drag 10 -5 # nudge", "drag", []string{"10", "-5"}, true},
		{"text  hello   world", "text", []string{"hello", "world"}, true},
	}
	for _, tt := range tests {
		cmd, ok := ParseLine(tt.in)
		if ok != tt.ok {
			t.Fatalf("%q: ok %v want %v", tt.in, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if cmd.Name != tt.name || strings.Join(cmd.Args, ",") != strings.Join(tt.args, ",") {
			t.Fatalf("%q: got %+v", tt.in, cmd)
		}
	}
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Parse(strings.NewReader("undo\n\nexplode now\n"))
	var le *LineError
	if !errors.As(err, &le) || le.Line != 3 {
		t.Fatalf("expected line 3 error, got %v", err)
	}
}

func TestParseKeepsLineNumbers(t *testing.T) {
	cmds, err := Parse(strings.NewReader("# header\nshape circle\n\nundo\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cmds) != 2 || cmds[0].Line != 2 || cmds[1].Line != 4 {
		t.Fatalf("unexpected commands %+v", cmds)
	}
	if cmds[0].String() != "shape circle" {
		t.Fatalf("String() = %q", cmds[0].String())
	}
}

func TestTextAndStyle(t *testing.T) {
	r, ed, _ := newRunner(t)
	err := run(t, r, `
color red
font +4
bold
text Hello there
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	texts := ed.Items().Texts
	if len(texts) != 1 {
		t.Fatalf("expected one text, got %d", len(texts))
	}
	got := texts[0]
	if got.Text != "Hello there" || !got.Bold || got.FontSize != scene.DefaultFontSize+4 {
		t.Fatalf("unexpected text %+v", got)
	}
	if got.Color != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("unexpected colour %v", got.Color)
	}
}

func TestEditText(t *testing.T) {
	r, ed, _ := newRunner(t)
	if err := run(t, r, "text first\nedit-text 0 second\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	texts := ed.Items().Texts
	if len(texts) != 1 || texts[0].Text != "second" {
		t.Fatalf("unexpected texts %+v", texts)
	}
	if ed.HistoryLen() != 2 {
		t.Fatalf("expected two snapshots, got %d", ed.HistoryLen())
	}
}

func TestShapeSelectDragResize(t *testing.T) {
	r, ed, _ := newRunner(t)
	err := run(t, r, `
width +2
shape rectangle
deselect
select shape 0
drag -10 30
resize 40 -200
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := ed.Items().Shapes[0]
	if s.X1 != 375-140-10 || s.Y1 != 50 {
		t.Fatalf("unexpected position %+v", s)
	}
	if s.X2-s.X1 != 160 || s.Y2-s.Y1 != scene.MinShapeHeight {
		t.Fatalf("unexpected size %+v", s)
	}
	if s.StrokeWidth != scene.DefaultStrokeWidth+2 {
		t.Fatalf("unexpected stroke width %v", s.StrokeWidth)
	}
}

func TestStrokeNeedsDrawTool(t *testing.T) {
	r, ed, _ := newRunner(t)
	err := run(t, r, "stroke 10 10 20 20\n")
	var le *LineError
	if !errors.As(err, &le) || le.Line != 1 {
		t.Fatalf("expected line error, got %v", err)
	}
	if err := run(t, r, "tool draw\nstroke 10 10 20 20 30 25\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	paths := ed.Items().Paths
	if len(paths) != 1 || !strings.HasPrefix(paths[0].Data, "M10,10") {
		t.Fatalf("unexpected paths %+v", paths)
	}
}

func TestPickAndClip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sticker.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	r, ed, _ := newRunner(t)
	if err := run(t, r, "pick "+path+"\nclip heart\nresize -500 -500\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	o := ed.Items().Overlays
	if len(o) != 1 {
		t.Fatalf("expected one overlay, got %d", len(o))
	}
	if k, ok := o[0].Clip.Kind(); !ok || k != scene.Heart {
		t.Fatalf("unexpected clip %v", o[0].Clip)
	}
	if o[0].Width != scene.MinOverlaySize || o[0].Height != scene.MinOverlaySize {
		t.Fatalf("overlay not floored: %+v", o[0])
	}
}

func TestPickMissingFileFails(t *testing.T) {
	r, ed, _ := newRunner(t)
	if err := run(t, r, "pick "+filepath.Join(t.TempDir(), "nope.png")+"\n"); err == nil {
		t.Fatalf("expected an error")
	}
	if len(ed.Items().Overlays) != 0 {
		t.Fatalf("nothing should be added")
	}
}

func TestClipNeedsOverlay(t *testing.T) {
	r, _, _ := newRunner(t)
	if err := run(t, r, "shape circle\nclip circle\n"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestCropApplyAndUndo(t *testing.T) {
	r, ed, _ := newRunner(t)
	err := run(t, r, `
shape star
tool crop
crop-move 10 10
crop-resize -50 -50
crop apply
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ed.Base().URI != "capture-2.jpg" {
		t.Fatalf("unexpected base %q", ed.Base().URI)
	}
	if ed.Items().Len() != 0 {
		t.Fatalf("crop should discard entities")
	}
	if err := run(t, r, "undo\n"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(ed.Items().Shapes) != 1 || ed.Base().URI != "" {
		t.Fatalf("undo should restore the pre crop scene")
	}
}

func TestBaseTransforms(t *testing.T) {
	r, ed, _ := newRunner(t, editor.WithImage("photo.jpg"))
	if err := run(t, r, "rotate\nrotate\nflip h\nflip v\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	b := ed.Base()
	if b.Rotation != 180 || !b.FlipH || !b.FlipV {
		t.Fatalf("unexpected base %+v", b)
	}
	if err := run(t, r, "flip sideways\n"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestSaveWritesReference(t *testing.T) {
	var saved string
	r, _, out := newRunner(t, editor.WithOnSave(func(ref string) { saved = ref }))
	if err := run(t, r, "shape oval\nsave\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if saved != "capture-1.jpg" {
		t.Fatalf("unexpected saved %q", saved)
	}
	if !strings.Contains(out.String(), "saved capture-1.jpg") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestQuitStopsRun(t *testing.T) {
	r, ed, _ := newRunner(t)
	if err := run(t, r, "shape oval\nquit\nshape star\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(ed.Items().Shapes) != 1 {
		t.Fatalf("commands after quit should not run")
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []string{
		"drag 1",
		"drag a b",
		"select text 0",
		"select blob 0",
		"fill maybe",
		"crop later",
		"tool hammer",
		"color notacolour",
		"stroke 1 2 3",
	}
	for _, src := range tests {
		r, _, _ := newRunner(t)
		if err := run(t, r, src+"\n"); err == nil {
			t.Fatalf("%q: expected an error", src)
		}
	}
}

func TestStatus(t *testing.T) {
	r, _, out := newRunner(t)
	if err := run(t, r, "shape line\ntool crop\nstatus\n"); err != nil {
		t.Fatalf("run: %v", err)
	}
	s := out.String()
	for _, want := range []string{"tool crop", "shapes 1", "crop 37.5,37.5 300x300"} {
		if !strings.Contains(s, want) {
			t.Fatalf("status missing %q:\n%s", want, s)
		}
	}
}

func TestUsageCoversEveryCommand(t *testing.T) {
	if len(Usage()) != len(handlers) {
		t.Fatalf("usage lists %d commands, %d registered", len(Usage()), len(handlers))
	}
}
