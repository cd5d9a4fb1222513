package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/snapedit/internal/history"
	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/render"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Crop bool
}

// Export holds how saved images are written.
type Export struct {
	Format  rasterizer.Format
	Quality float64
	// Settle and StageSettle are the waits before a capture and before
	// reading a staged capture.
	Settle      time.Duration
	StageSettle time.Duration
	Shadow      render.Shadow
	// Copy also places the saved image on the clipboard.
	Copy bool
}

// Options returns the rasterizer options for a save.
func (e Export) Options() rasterizer.Options {
	return rasterizer.Options{Format: e.Format, Quality: e.Quality}
}

// Settler returns the capture waits as a settler.
func (e Export) Settler() rasterizer.Settler {
	if e.Settle <= 0 && e.StageSettle <= 0 {
		return rasterizer.Immediate{}
	}
	return rasterizer.DelaySettler{Capture: e.Settle, Stage: e.StageSettle}
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	CanvasSize   int
	HistoryLimit int
	Style        scene.Style
	Export       Export
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Default to empty to allow fallback to Env/Default
		CanvasSize:   scene.DefaultCanvasSize,
		HistoryLimit: history.DefaultLimit,
		Style:        scene.DefaultStyle(),
		Export: Export{
			Format:  rasterizer.JPEG,
			Quality: 0.95,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "canvas_size = %d\n", c.CanvasSize)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	fmt.Fprintf(&sb, "stroke_color = %s\n", scene.FormatColor(c.Style.StrokeColor))
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Style.StrokeWidth)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Style.FontSize)
	fmt.Fprintf(&sb, "filled = %v\n", c.Style.Filled)
	fmt.Fprintf(&sb, "fill_color = %s\n", scene.FormatColor(c.Style.FillColor))
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "quality = %g\n", c.Export.Quality)
	fmt.Fprintf(&sb, "settle = %s\n", c.Export.Settle)
	fmt.Fprintf(&sb, "stage_settle = %s\n", c.Export.StageSettle)
	fmt.Fprintf(&sb, "shadow = %s\n", c.Export.Shadow)
	fmt.Fprintf(&sb, "copy = %v\n", c.Export.Copy)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "crop = %v\n", c.Notify.Crop)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		c.Themes[name].Encode(&sb)
		sb.WriteString("\n")
	}

	return sb.String()
}
