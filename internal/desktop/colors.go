package desktop

import "image/color"

// palette maps the CSS color names used by the game tuning to colors.
var palette = map[string]color.RGBA{
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"blue":   {R: 0, G: 0, B: 255, A: 255},
	"green":  {R: 0, G: 128, B: 0, A: 255},
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"purple": {R: 128, G: 0, B: 128, A: 255},
	"pink":   {R: 255, G: 192, B: 203, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"brown":  {R: 165, G: 42, B: 42, A: 255},
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"navy":   {R: 0, G: 0, B: 128, A: 255},
	"teal":   {R: 0, G: 128, B: 128, A: 255},
	"maroon": {R: 128, G: 0, B: 0, A: 255},
	"silver": {R: 192, G: 192, B: 192, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"lime":   {R: 0, G: 255, B: 0, A: 255},
}

var (
	backgroundColor = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	cardBackColor   = color.RGBA{R: 40, G: 58, B: 40, A: 255}
	promptColor     = color.RGBA{R: 0, G: 90, B: 0, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 220}
)

// colorOf returns the color with the given CSS name, gray if unknown.
func colorOf(name string) color.RGBA {
	if c, found := palette[name]; found {
		return c
	}
	return palette["gray"]
}
