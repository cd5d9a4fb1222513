package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/picker"
	"github.com/example/snapedit/internal/script"
)

// applyCmd runs an editing script without a window.
type applyCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	script string
	output string
}

func (a *applyCmd) FlagSet() *flag.FlagSet { return a.fs }

func (a *applyCmd) Program() string { return a.subProgram("apply") }

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	a := &applyCmd{root: r, fs: fs}
	fs.StringVar(&a.file, "file", "", "photo to edit")
	fs.StringVar(&a.script, "script", "", "script file, or - for standard input")
	fs.StringVar(&a.output, "output", "", "write the result to this path")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.script == "" || fs.NArg() > 0 {
		return nil, &UsageError{of: a}
	}
	return a, nil
}

// headlessPicker fails "pick" without a path, since there is nobody to
// answer a dialog.
var headlessPicker = picker.Func(func(context.Context) (picker.Response, error) {
	return picker.Response{ErrorCode: "headless", ErrorMessage: "pick needs a path when running a script"}, nil
})

func (a *applyCmd) Run() error {
	cmds, err := a.readScript()
	if err != nil {
		return fmt.Errorf("apply %s: %w", a.script, err)
	}
	s := &session{r: a.root, file: a.file, output: a.output}
	ed, err := s.newEditor(editor.WithAlerter(editor.LogAlerter{}), editor.WithPicker(headlessPicker))
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := script.NewRunner(ed, a.stdout).Run(ctx, cmds); err != nil {
		return fmt.Errorf("apply %s: %w", a.script, err)
	}
	if s.saved == "" && s.err == nil {
		if _, err := ed.Save(ctx); err != nil {
			return fmt.Errorf("apply save: %w", err)
		}
	}
	if s.err != nil {
		return fmt.Errorf("apply save: %w", s.err)
	}
	fmt.Fprintf(a.stdout, "wrote %s\n", s.saved)
	return nil
}

func (a *applyCmd) readScript() ([]script.Command, error) {
	var src io.Reader = a.stdin
	if a.script != "-" {
		f, err := os.Open(a.script)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	return script.Parse(src)
}
