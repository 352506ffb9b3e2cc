package view

import (
	"fmt"
	"math"
)

// Palette saturation/lightness are fixed; only the hue varies.
const (
	paletteSaturation = 0.70
	paletteLightness  = 0.60
)

// PaletteHues returns n hues evenly spaced around the color wheel:
// i*360/n degrees for i in [0, n).
func PaletteHues(n int) []float64 {
	if n <= 0 {
		return nil
	}
	hues := make([]float64, n)
	for i := range hues {
		hues[i] = math.Mod(float64(i)*360/float64(n), 360)
	}
	return hues
}

// HuePalette returns n category colors as hex strings. len(result) is
// always exactly n, so a palette never runs short of its categories.
func HuePalette(n int) []string {
	hues := PaletteHues(n)
	colors := make([]string, len(hues))
	for i, h := range hues {
		colors[i] = hslToHex(h, paletteSaturation, paletteLightness)
	}
	return colors
}

func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round((r+m)*255)),
		int(math.Round((g+m)*255)),
		int(math.Round((b+m)*255)))
}
