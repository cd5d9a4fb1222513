package theme

import (
	"image/color"

	"github.com/example/snapedit/internal/render"
)

// Theme defines the colours of the editor window and its editing chrome.
type Theme struct {
	Name string

	// General
	Background       color.RGBA // Window background around the canvas
	Foreground       color.RGBA // Status text
	CanvasBackground color.RGBA // Shown where no base photo is loaded

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA // Active tool
	ButtonText            color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Editing chrome
	Selection  color.RGBA
	Handle     color.RGBA
	HandleRing color.RGBA
	CropDim    color.RGBA
	CropBorder color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		CanvasBackground:      color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		Selection:             color.RGBA{0x1E, 0x88, 0xE5, 255},
		Handle:                color.RGBA{0x1E, 0x88, 0xE5, 255},
		HandleRing:            color.RGBA{255, 255, 255, 255},
		CropDim:               color.RGBA{0, 0, 0, 140},
		CropBorder:            color.RGBA{255, 255, 255, 255},
	}
}

// Chrome returns the decoration colours drawn over the canvas.
func (t *Theme) Chrome() render.Chrome {
	return render.Chrome{
		Selection:  t.Selection,
		Handle:     t.Handle,
		HandleRing: t.HandleRing,
		CropDim:    t.CropDim,
		CropBorder: t.CropBorder,
	}
}
