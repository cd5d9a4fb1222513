package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/script"
)

// interactiveCmd reads script lines from standard input against one editor.
type interactiveCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet { return i.fs }

func (i *interactiveCmd) Program() string { return i.subProgram("interactive") }

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs}
	fs.StringVar(&i.file, "file", "", "photo to edit")
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	s := &session{r: i.root, file: i.file}
	closed := false
	ed, err := s.newEditor(editor.WithOnClose(func() { closed = true }))
	if err != nil {
		return fmt.Errorf("interactive: %w", err)
	}
	runner := script.NewRunner(ed, i.stdout)
	ctx := context.Background()

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'quit' to exit)")
	scanner := bufio.NewScanner(i.stdin)
	for !closed {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		cmd, ok := script.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		switch cmd.Name {
		case "help":
			for _, u := range script.Usage() {
				fmt.Fprintln(i.stdout, u)
			}
			continue
		case "exit":
			return scanner.Err()
		}
		err := runner.Exec(ctx, cmd)
		if errors.Is(err, script.ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
	}
	if s.err != nil {
		return fmt.Errorf("interactive: %w", s.err)
	}
	if s.saved != "" {
		fmt.Fprintf(i.stdout, "wrote %s\n", s.saved)
	}
	return scanner.Err()
}
