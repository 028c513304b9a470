package theme

import (
	"image/color"
)

// Theme defines the colors of the window chrome around the drawing surface.
// The drawing surface itself is never themed.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area outside the surface
	Foreground color.RGBA // Status line text
	Error      color.RGBA // Status line text for failures

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA // Active tool, fill toggle when on
	ButtonText            color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Palette swatches and width options
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA

	// Surface frame and the image overlay handle
	SurfaceBorder color.RGBA
	OverlayHandle color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		Error:                 color.RGBA{176, 0, 32, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		SwatchBorder:          color.RGBA{80, 80, 80, 255},
		SwatchSelected:        color.RGBA{0, 120, 215, 255},
		SurfaceBorder:         color.RGBA{120, 120, 120, 255},
		OverlayHandle:         color.RGBA{0, 120, 215, 255},
	}
}
