package main

import "image/color"

var (
	ColorText        = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	ColorTitle       = color.NRGBA{R: 0, G: 64, B: 160, A: 255}
	ColorError       = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
	ColorNotice      = color.NRGBA{R: 0, G: 110, B: 0, A: 255}
	ColorPanel       = color.NRGBA{R: 250, G: 250, B: 250, A: 235}
	ColorPanelBorder = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	ColorCursor      = color.NRGBA{R: 255, G: 200, B: 0, A: 200}
	ColorStatusBar   = color.NRGBA{R: 240, G: 240, B: 240, A: 220}
)
