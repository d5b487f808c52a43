package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// goldenAngle spaces hues so neighboring instance colors stay visually
// distinct for any palette size
const goldenAngle = 137.50776405003785

// Palette returns n distinct colors for painting instance contours.  The
// palette is deterministic, the same n always yields the same colors
func Palette(n int) []color.RGBA {

	out := make([]color.RGBA, n)

	for i := 0; i < n; i++ {

		h := float64(i) * goldenAngle

		for h >= 360 {
			h -= 360
		}

		c := colorful.Hsv(h, 0.85, 0.95)
		r, g, b := c.RGB255()

		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return out
}
