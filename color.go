package main

import (
	"image/color"

	"gioui.org/widget/material"
	"github.com/lucasb-eyer/go-colorful"
)

var errorColor = color.NRGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}

// nrgba converts a go-colorful color to an opaque NRGBA.
func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// applyTheme gives th a dark palette around the default chart background.
func applyTheme(th *material.Theme) {
	bg := colorful.Hcl(250, .02, .25)
	th.Palette = material.Palette{
		Bg:         nrgba(bg),
		Fg:         nrgba(colorful.Hcl(250, .02, .92)),
		ContrastBg: nrgba(colorful.Hcl(250, .35, .45)),
		ContrastFg: nrgba(colorful.Hcl(250, .02, .98)),
	}
}
