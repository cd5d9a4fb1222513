package appstate

import (
	"errors"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapedit/internal/clipboard"
	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/picker"
	"github.com/example/snapedit/internal/scene"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteImage

func (a *AppState) register(name string, keys KeyboardShortcuts, fn func()) {
	a.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			a.keys[sc] = name
		}
	}
}

func (a *AppState) registerActions() {
	a.actions = map[string]func(){}
	a.keys = map[KeyShortcut]string{}
	ed := a.Editor

	a.register("draw", shortcutList{{Rune: 'd'}}, func() { ed.SelectTool(editor.ToolDraw) })
	a.register("text", shortcutList{{Rune: 't'}}, func() { ed.SelectTool(editor.ToolText) })
	a.register("shape", shortcutList{{Rune: 's'}}, func() { ed.SelectTool(editor.ToolShape) })
	a.register("image", shortcutList{{Rune: 'i'}, {Rune: 'o', Modifiers: key.ModControl}}, func() { ed.SelectTool(editor.ToolImage) })
	a.register("crop", shortcutList{{Rune: 'r'}}, func() { ed.SelectTool(editor.ToolCrop) })

	a.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, ed.Undo)
	a.register("rotate", shortcutList{{Rune: 'o'}}, ed.Rotate)
	a.register("flip-h", shortcutList{{Rune: 'h'}}, ed.FlipH)
	a.register("flip-v", shortcutList{{Rune: 'v'}}, ed.FlipV)
	a.register("fill", shortcutList{{Rune: 'f'}}, func() { ed.SetFilled(!ed.Style().Filled) })
	a.register("bigger", shortcutList{{Rune: ']'}, {Rune: '+'}, {Rune: '='}}, func() { ed.AdjustSize(1) })
	a.register("smaller", shortcutList{{Rune: '['}, {Rune: '-'}}, func() { ed.AdjustSize(-1) })
	a.register("edit", shortcutList{{Rune: 'e'}}, func() {
		if sel := ed.Selection(); sel.Kind == scene.SelectText {
			ed.EditText(sel.ID)
		}
	})
	a.register("delete", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, ed.DeleteSelected)
	a.register("clear", shortcutList{{Code: key.CodeDeleteForward, Modifiers: key.ModShift}}, func() {
		if !a.confirmClear {
			a.confirmClear = true
			a.flash("press Shift+Delete again to clear everything")
			return
		}
		a.confirmClear = false
		ed.ClearAll()
	})

	a.register("text-confirm", nil, func() {
		ed.ConfirmText()
		if ed.TextModal().Open {
			a.flash("text is empty")
		}
	})
	a.register("crop-apply", shortcutList{{Code: key.CodeReturnEnter}}, func() {
		if ed.Tool() != editor.ToolCrop {
			return
		}
		if err := ed.ApplyCrop(a.ctx); err == nil {
			a.flash("cropped")
		}
	})
	a.register("cancel", shortcutList{{Code: key.CodeEscape}}, func() {
		switch {
		case ed.TextModal().Open:
			ed.CancelText()
		case ed.Tool() == editor.ToolCrop:
			ed.CancelCrop()
		case !ed.Selection().None():
			ed.Deselect()
		case ed.Tool() != editor.ToolNone:
			ed.SelectTool(ed.Tool())
		}
	})

	a.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		img, err := ed.Renderer().Compose(ed.Layers())
		if err == nil {
			err = writeClipboard(img)
		}
		if err != nil {
			a.flash("copy failed: %v", err)
			return
		}
		a.Notifier.Copy("canvas")
		a.flash("image copied to clipboard")
	})
	a.register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		a.pickOverlay(picker.ClipboardPicker{Dir: a.TempDir}, "pasted image")
	})
	a.register("screenshot", shortcutList{{Rune: 'n', Modifiers: key.ModControl}}, func() {
		a.pickOverlay(picker.ScreenPicker{Dir: a.TempDir, Capture: a.Capture}, "captured screenshot")
	})
	a.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		ref, err := ed.Save(a.ctx)
		if errors.Is(err, editor.ErrBusy) {
			a.flash("busy")
			return
		}
		if err == nil {
			a.flash("saved %s", ref)
		}
	})
	a.register("quit", shortcutList{{Rune: 'q'}}, a.Close)
}

// pickOverlay adds an overlay from p. Failures have already been alerted by
// the editor.
func (a *AppState) pickOverlay(p picker.Picker, done string) {
	before := len(a.Editor.Items().Overlays)
	if err := a.Editor.PickImageFrom(a.ctx, p); err != nil {
		return
	}
	if len(a.Editor.Items().Overlays) > before {
		a.flash("%s", done)
	}
}
