package main

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const paletteSize = 20

// colors spaces data set hues by the golden angle so that neighbouring
// sets stay distinguishable.
var colors = func() []color.NRGBA {
	out := make([]color.NRGBA, 0, paletteSize)
	for i := 0; i < paletteSize; i++ {
		hue := math.Mod(float64(i+1)*math.Phi*360, 360)
		r, g, b := colorful.Hcl(hue, 0.6, 0.55).Clamped().RGB255()
		out = append(out, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}()

// paletteColor returns the colour of the i-th data set.
func paletteColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return colors[i%len(colors)]
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
