package backend

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n colors of equal lightness whose hues step around the
// color wheel by the golden ratio, so neighbouring columns stay distinct.
func Palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		hue := math.Mod(float64(i+1)*math.Phi*2*math.Pi, 1) * 360
		r, g, b := colorful.Hcl(hue, .55, .7).Clamped().RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}
