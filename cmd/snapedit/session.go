package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/snapedit/internal/clipboard"
	"github.com/example/snapedit/internal/editor"
	"github.com/example/snapedit/internal/notify"
	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/render"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteImage

// session wires one editor to the configuration, the notifier and an
// optional output path.
type session struct {
	r      *root
	file   string
	output string

	// saved is the final path of the last export; err is its failure.
	saved string
	err   error
}

func (s *session) newEditor(extra ...editor.Option) (*editor.Editor, error) {
	cfg := s.r.config
	rend, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if s.r.activeTheme != nil {
		rend.Background = s.r.activeTheme.CanvasBackground
	}
	opts := []editor.Option{
		editor.WithCanvasSize(cfg.CanvasSize),
		editor.WithStyle(cfg.Style),
		editor.WithHistoryLimit(cfg.HistoryLimit),
		editor.WithExport(cfg.Export.Options()),
		editor.WithSettler(cfg.Export.Settler()),
		editor.WithRasterizer(rasterizer.FileRasterizer{Dir: cfg.SaveDir}),
		editor.WithRenderer(rend),
		editor.WithOnSave(s.onSave),
		editor.WithOnCrop(s.onCrop),
	}
	if s.file != "" {
		abs, err := filepath.Abs(s.file)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("open %s: %w", s.file, err)
		}
		opts = append(opts, editor.WithImage(abs))
	}
	return editor.New(append(opts, extra...)...)
}

func (s *session) onSave(ref string) {
	path, img, err := s.export(ref)
	if err != nil {
		log.Printf("save: %v", err)
		s.err = err
		return
	}
	s.saved, s.err = path, nil
	s.r.notifier.Save(path)
	if !s.r.config.Export.Copy {
		return
	}
	if err := writeClipboard(img); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	s.r.notifier.Copy("saved image")
}

// export applies the configured shadow and writes the result to the output
// path, or over ref when there is none. The format follows the output file's
// extension when it names one.
func (s *session) export(ref string) (string, image.Image, error) {
	exp := s.r.config.Export
	img, err := render.Decode(ref)
	if err != nil {
		return "", nil, err
	}
	if s.output == "" && !exp.Shadow.Enabled() {
		return ref, img, nil
	}
	out := s.output
	if out == "" {
		out = ref
	}
	opts := exp.Options()
	if f, err := rasterizer.ParseFormat(strings.TrimPrefix(filepath.Ext(out), ".")); err == nil {
		opts.Format = f
	}
	if exp.Shadow.Enabled() {
		img = exp.Shadow.Apply(img)
	}
	if err := rasterizer.WriteFile(out, img, opts); err != nil {
		return "", nil, err
	}
	return out, img, nil
}

func (s *session) onCrop(uri string) {
	if !s.r.notifier.Enabled(notify.EventCrop) {
		return
	}
	img, err := render.Decode(uri)
	if err != nil {
		log.Printf("crop notification: %v", err)
		return
	}
	s.r.notifier.Crop(img)
}
