// Package script drives an editor from a line oriented command language, one
// command per line with # comments. It backs the apply and interactive
// commands.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/picker"
	"github.com/example/snapedit/internal/scene"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Command is one parsed script line.
type Command struct {
	Line int
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// LineError reports the script line a failure came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// ParseLine splits one line into a command. Blank and comment lines give ok
// false.
func ParseLine(line string) (cmd Command, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		cmd, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		if _, known := handlers[cmd.Name]; !known {
			return nil, &LineError{Line: n, Err: fmt.Errorf("unknown command %q", cmd.Name)}
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// Runner executes commands against one editor.
type Runner struct {
	ed  *editor.Editor
	out io.Writer
}

// NewRunner returns a runner for ed. Status output goes to out, which may be
// nil.
func NewRunner(ed *editor.Editor, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{ed: ed, out: out}
}

// Run executes cmds in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(ctx, c); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return &LineError{Line: c.Line, Err: err}
		}
	}
	return nil
}

// Exec executes one command.
func (r *Runner) Exec(ctx context.Context, c Command) error {
	h, ok := handlers[c.Name]
	if !ok {
		return fmt.Errorf("unknown command %q", c.Name)
	}
	if len(c.Args) < h.min || (h.max >= 0 && len(c.Args) > h.max) {
		return fmt.Errorf("usage: %s", h.usage)
	}
	return h.fn(ctx, r, c.Args)
}

type handler struct {
	usage    string
	min, max int
	fn       func(ctx context.Context, r *Runner, args []string) error
}

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"tool":        {"tool <none|draw|text|shape|image|crop>", 1, 1, cmdTool},
		"color":       {"color <name|#rrggbb>", 1, 1, cmdColor},
		"fill-color":  {"fill-color <name|#rrggbb>", 1, 1, cmdFillColor},
		"width":       {"width <+n|-n>", 1, 1, cmdWidth},
		"font":        {"font <+n|-n>", 1, 1, cmdFont},
		"bold":        {"bold", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.ToggleBold(); return nil }},
		"italic":      {"italic", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.ToggleItalic(); return nil }},
		"fill":        {"fill <on|off>", 1, 1, cmdFill},
		"text":        {"text <content...>", 1, -1, cmdText},
		"edit-text":   {"edit-text <index> <content...>", 2, -1, cmdEditText},
		"shape":       {"shape <kind>", 1, 1, cmdShape},
		"pick":        {"pick [path]", 0, 1, cmdPick},
		"clip":        {"clip <kind|none>", 1, 1, cmdClip},
		"select":      {"select <text|overlay|shape> <index>", 2, 2, cmdSelect},
		"deselect":    {"deselect", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.Deselect(); return nil }},
		"drag":        {"drag <dx> <dy>", 2, 2, cmdDrag},
		"resize":      {"resize <dw> <dh>", 2, 2, cmdResize},
		"stroke":      {"stroke <x y> [x y...]", 2, -1, cmdStroke},
		"crop-move":   {"crop-move <dx> <dy>", 2, 2, cmdCropMove},
		"crop-resize": {"crop-resize <dw> <dh>", 2, 2, cmdCropResize},
		"crop":        {"crop <apply|cancel>", 1, 1, cmdCrop},
		"rotate":      {"rotate", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.Rotate(); return nil }},
		"flip":        {"flip <h|v>", 1, 1, cmdFlip},
		"delete":      {"delete", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.DeleteSelected(); return nil }},
		"clear":       {"clear", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.ClearAll(); return nil }},
		"undo":        {"undo", 0, 0, func(_ context.Context, r *Runner, _ []string) error { r.ed.Undo(); return nil }},
		"save":        {"save", 0, 0, cmdSave},
		"status":      {"status", 0, 0, cmdStatus},
		"quit":        {"quit", 0, 0, func(context.Context, *Runner, []string) error { return ErrQuit }},
	}
}

// Usage lists every command's synopsis.
func Usage() []string {
	out := make([]string, 0, len(handlers))
	for _, name := range commandOrder {
		out = append(out, handlers[name].usage)
	}
	return out
}

var commandOrder = []string{
	"tool", "color", "fill-color", "width", "font", "bold", "italic", "fill",
	"text", "edit-text", "shape", "pick", "clip", "select", "deselect", "drag",
	"resize", "stroke", "crop-move", "crop-resize", "crop", "rotate", "flip",
	"delete", "clear", "undo", "save", "status", "quit",
}

func cmdTool(_ context.Context, r *Runner, args []string) error {
	t, err := editor.ParseTool(args[0])
	if err != nil {
		return err
	}
	r.ed.SelectTool(t)
	return nil
}

func cmdColor(_ context.Context, r *Runner, args []string) error {
	c, err := scene.ParseColor(args[0])
	if err != nil {
		return err
	}
	r.ed.SetStrokeColor(c)
	return nil
}

func cmdFillColor(_ context.Context, r *Runner, args []string) error {
	c, err := scene.ParseColor(args[0])
	if err != nil {
		return err
	}
	r.ed.SetFillColor(c)
	return nil
}

func cmdWidth(_ context.Context, r *Runner, args []string) error {
	d, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	r.ed.AdjustStrokeWidth(d)
	return nil
}

func cmdFont(_ context.Context, r *Runner, args []string) error {
	d, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	r.ed.AdjustFontSize(d)
	return nil
}

func cmdFill(_ context.Context, r *Runner, args []string) error {
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		r.ed.SetFilled(true)
	case "off", "false", "no":
		r.ed.SetFilled(false)
	default:
		return fmt.Errorf("fill expects on or off, got %q", args[0])
	}
	return nil
}

func cmdText(_ context.Context, r *Runner, args []string) error {
	r.ed.OpenTextModal()
	r.ed.SetTextInput(strings.Join(args, " "))
	r.ed.ConfirmText()
	return nil
}

func cmdEditText(_ context.Context, r *Runner, args []string) error {
	idx, err := parseIndex(args[0], len(r.ed.Items().Texts))
	if err != nil {
		return err
	}
	r.ed.EditText(r.ed.Items().Texts[idx].ID)
	r.ed.SetTextInput(strings.Join(args[1:], " "))
	r.ed.ConfirmText()
	return nil
}

func cmdShape(_ context.Context, r *Runner, args []string) error {
	k, err := scene.ParseShapeKind(args[0])
	if err != nil {
		return err
	}
	r.ed.AddShape(k)
	return nil
}

func cmdPick(ctx context.Context, r *Runner, args []string) error {
	if len(args) == 1 {
		return r.ed.PickImageFrom(ctx, picker.FilePicker{Path: args[0]})
	}
	return r.ed.PickImage(ctx)
}

func cmdClip(_ context.Context, r *Runner, args []string) error {
	c, err := scene.ParseClipShape(args[0])
	if err != nil {
		return err
	}
	if r.ed.Selection().Kind != scene.SelectOverlay {
		return fmt.Errorf("clip needs a selected overlay")
	}
	r.ed.SetClipShape(c)
	return nil
}

func cmdSelect(_ context.Context, r *Runner, args []string) error {
	kind, ok := scene.ParseSelectKind(strings.ToLower(args[0]))
	if !ok {
		return fmt.Errorf("unknown item kind %q", args[0])
	}
	items := r.ed.Items()
	var ids []string
	switch kind {
	case scene.SelectText:
		for _, t := range items.Texts {
			ids = append(ids, t.ID)
		}
	case scene.SelectOverlay:
		for _, o := range items.Overlays {
			ids = append(ids, o.ID)
		}
	case scene.SelectShape:
		for _, s := range items.Shapes {
			ids = append(ids, s.ID)
		}
	}
	idx, err := parseIndex(args[1], len(ids))
	if err != nil {
		return err
	}
	r.ed.Select(kind, ids[idx])
	return nil
}

func cmdDrag(_ context.Context, r *Runner, args []string) error {
	dx, dy, err := parsePair(args)
	if err != nil {
		return err
	}
	if !r.ed.DragSelected(dx, dy) {
		return fmt.Errorf("drag needs a selected item")
	}
	return nil
}

func cmdResize(_ context.Context, r *Runner, args []string) error {
	dw, dh, err := parsePair(args)
	if err != nil {
		return err
	}
	if !r.ed.ResizeSelected(dw, dh) {
		return fmt.Errorf("resize needs a selected overlay or shape")
	}
	return nil
}

func cmdStroke(_ context.Context, r *Runner, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("stroke needs x y pairs")
	}
	if r.ed.Tool() != editor.ToolDraw {
		return fmt.Errorf("stroke needs the draw tool")
	}
	pts := make([]float64, len(args))
	for i, a := range args {
		v, err := parseFloat(a)
		if err != nil {
			return err
		}
		pts[i] = v
	}
	r.ed.PointerDown(pts[0], pts[1])
	for i := 2; i < len(pts); i += 2 {
		r.ed.PointerMove(pts[i], pts[i+1])
	}
	r.ed.PointerUp()
	return nil
}

func cmdCropMove(_ context.Context, r *Runner, args []string) error {
	dx, dy, err := parsePair(args)
	if err != nil {
		return err
	}
	r.ed.MoveCrop(dx, dy)
	return nil
}

func cmdCropResize(_ context.Context, r *Runner, args []string) error {
	dw, dh, err := parsePair(args)
	if err != nil {
		return err
	}
	r.ed.ResizeCrop(dw, dh)
	return nil
}

func cmdCrop(ctx context.Context, r *Runner, args []string) error {
	switch strings.ToLower(args[0]) {
	case "apply":
		return r.ed.ApplyCrop(ctx)
	case "cancel":
		r.ed.CancelCrop()
		return nil
	}
	return fmt.Errorf("crop expects apply or cancel, got %q", args[0])
}

func cmdFlip(_ context.Context, r *Runner, args []string) error {
	switch strings.ToLower(args[0]) {
	case "h", "horizontal":
		r.ed.FlipH()
	case "v", "vertical":
		r.ed.FlipV()
	default:
		return fmt.Errorf("flip expects h or v, got %q", args[0])
	}
	return nil
}

func cmdSave(ctx context.Context, r *Runner, _ []string) error {
	ref, err := r.ed.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "saved %s\n", ref)
	return nil
}

func cmdStatus(_ context.Context, r *Runner, _ []string) error {
	items := r.ed.Items()
	st := r.ed.Style()
	fmt.Fprintf(r.out, "tool %s, selected %s, history %d\n", r.ed.Tool(), r.ed.Selection().Kind, r.ed.HistoryLen())
	fmt.Fprintf(r.out, "texts %d, overlays %d, paths %d, shapes %d\n",
		len(items.Texts), len(items.Overlays), len(items.Paths), len(items.Shapes))
	fmt.Fprintf(r.out, "color %s, width %g, font %g\n", scene.FormatColor(st.StrokeColor), st.StrokeWidth, st.FontSize)
	if r.ed.Tool() == editor.ToolCrop {
		b := r.ed.CropBox()
		fmt.Fprintf(r.out, "crop %g,%g %gx%g\n", b.X, b.Y, b.Width, b.Height)
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parsePair(args []string) (a, b float64, err error) {
	if a, err = parseFloat(args[0]); err != nil {
		return 0, 0, err
	}
	if b, err = parseFloat(args[1]); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range (have %d)", idx, n)
	}
	return idx, nil
}
