package main

import (
	"flag"
	"fmt"

	"github.com/example/snapedit/internal/scene"
)

// shapesCmd lists shape kinds or clip shapes.
type shapesCmd struct {
	*root
	fs   *flag.FlagSet
	clip bool
}

func (s *shapesCmd) FlagSet() *flag.FlagSet { return s.fs }

func (s *shapesCmd) Program() string { return s.subProgram("shapes") }

func parseShapesCmd(args []string, r *root) (*shapesCmd, error) {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	s := &shapesCmd{root: r, fs: fs}
	fs.BoolVar(&s.clip, "clip", false, "list clip shapes for image stickers")
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shapesCmd) Run() error {
	if s.clip {
		for _, c := range scene.ClipShapes() {
			fmt.Fprintln(s.stdout, c)
		}
		return nil
	}
	for _, k := range scene.ShapeKinds() {
		fmt.Fprintln(s.stdout, k)
	}
	return nil
}
