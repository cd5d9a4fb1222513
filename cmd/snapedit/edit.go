package main

import (
	"flag"
	"fmt"

	"github.com/example/snapedit/internal/appstate"
	"github.com/example/snapedit/internal/capture"
	"github.com/example/snapedit/internal/editor"
)

// runWindow is swapped out in tests.
var runWindow = (*appstate.AppState).Run

// editCmd opens the editor window.
type editCmd struct {
	*root
	fs      *flag.FlagSet
	file    string
	output  string
	display string
}

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func (e *editCmd) Program() string { return e.subProgram("edit") }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "photo to edit")
	fs.StringVar(&e.output, "output", "", "also write the saved image to this path")
	fs.StringVar(&e.display, "display", "", "monitor for screenshot stickers (index, primary or name)")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	s := &session{r: e.root, file: e.file, output: e.output}
	var app *appstate.AppState
	ed, err := s.newEditor(
		editor.WithAlerter(appstate.DialogAlerter{}),
		editor.WithOnChange(func() {
			if app != nil {
				app.NotifyImageChanged()
			}
		}),
		editor.WithOnClose(func() {
			if app != nil {
				app.Close()
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	app = appstate.New(ed,
		appstate.WithTheme(e.activeTheme),
		appstate.WithNotifier(e.notifier),
		appstate.WithCapture(capture.Options{Display: e.display}),
	)
	runWindow(app)
	if s.err != nil {
		return fmt.Errorf("edit: %w", s.err)
	}
	if s.saved != "" {
		fmt.Fprintln(e.stdout, s.saved)
	}
	return nil
}
