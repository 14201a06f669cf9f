package gui

import "image/color"

// Visuals are the colors used to paint widgets.
type Visuals struct {
	Dark         bool
	PanelFill    color.RGBA
	Separator    color.RGBA
	Text         color.RGBA
	StrongText   color.RGBA
	ButtonFill   color.RGBA
	ButtonHover  color.RGBA
	ButtonActive color.RGBA
}

// DarkVisuals returns the dark theme.
func DarkVisuals() Visuals {
	return Visuals{
		Dark:         true,
		PanelFill:    color.RGBA{R: 27, G: 27, B: 27, A: 255},
		Separator:    color.RGBA{R: 60, G: 60, B: 60, A: 255},
		Text:         color.RGBA{R: 180, G: 180, B: 180, A: 255},
		StrongText:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		ButtonFill:   color.RGBA{R: 60, G: 60, B: 60, A: 255},
		ButtonHover:  color.RGBA{R: 70, G: 70, B: 70, A: 255},
		ButtonActive: color.RGBA{R: 55, G: 55, B: 55, A: 255},
	}
}

// LightVisuals returns the light theme.
func LightVisuals() Visuals {
	return Visuals{
		Dark:         false,
		PanelFill:    color.RGBA{R: 248, G: 248, B: 248, A: 255},
		Separator:    color.RGBA{R: 190, G: 190, B: 190, A: 255},
		Text:         color.RGBA{R: 80, G: 80, B: 80, A: 255},
		StrongText:   color.RGBA{R: 0, G: 0, B: 0, A: 255},
		ButtonFill:   color.RGBA{R: 230, G: 230, B: 230, A: 255},
		ButtonHover:  color.RGBA{R: 220, G: 220, B: 220, A: 255},
		ButtonActive: color.RGBA{R: 165, G: 165, B: 165, A: 255},
	}
}
