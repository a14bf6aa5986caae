package chart

import (
	"fmt"
	"math"
)

// qualitative is the default plotly palette.
var qualitative = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

const goldenAngle = 137.50776405003785

// Color returns the color for the i-th series. The first colors come from a
// fixed palette; later ones walk the hue circle by the golden angle and vary
// lightness per lap so they do not repeat.
func Color(i int) string {
	if i < 0 {
		i = 0
	}
	if i < len(qualitative) {
		return qualitative[i]
	}
	n := i - len(qualitative)
	hue := math.Mod(float64(n)*goldenAngle+15, 360)
	lightness := 0.42 + 0.08*float64((n/7)%3)
	r, g, b := hslToRGB(hue, 0.68, lightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
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

	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return to8(r), to8(g), to8(b)
}
