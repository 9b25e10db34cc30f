package theme

import (
	"image/color"
)

// Theme defines the color palette for the viewer.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the page
	Foreground color.RGBA // Main text color

	// Drawer
	DrawerBackground color.RGBA
	DrawerBorder     color.RGBA
	ThumbnailActive  color.RGBA // Outline of the selected page's thumbnail

	// Buttons
	ButtonBackground color.RGBA
	ButtonText       color.RGBA
	ButtonBorder     color.RGBA

	// Info overlay
	InfoBackground color.RGBA
	InfoText       color.RGBA

	// Placeholder pages
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{242, 242, 247, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		DrawerBackground: color.RGBA{255, 255, 255, 230},
		DrawerBorder:     color.RGBA{200, 200, 200, 255},
		ThumbnailActive:  color.RGBA{0, 122, 255, 255},
		ButtonBackground: color.RGBA{220, 220, 220, 255},
		ButtonText:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:     color.RGBA{150, 150, 150, 255},
		InfoBackground:   color.RGBA{0, 0, 0, 160},
		InfoText:         color.RGBA{255, 255, 255, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
	}
}
