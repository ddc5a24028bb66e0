package style

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ColorMap maps a normalised value t in [0,1] to a colour.
type ColorMap interface {
	At(t float64) color.Color
}

type paletteMap struct {
	cm palette.ColorMap
}

func (m paletteMap) At(t float64) color.Color {
	c, err := m.cm.At(clamp01(t))
	if err != nil {
		return Black
	}
	return c
}

// Diverging is a smooth blue-white-red map (the RdBu_r family).
func Diverging() ColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)
	return paletteMap{cm: cm}
}

// Heat is a black-body map, used where the figures show a single intensity channel.
func Heat() ColorMap {
	cm := moreland.BlackBody()
	cm.SetMin(0)
	cm.SetMax(1)
	return paletteMap{cm: cm}
}

// Gradient interpolates between stops in Lab space.
type Gradient []color.Color

func (g Gradient) At(t float64) color.Color {
	switch len(g) {
	case 0:
		return Black
	case 1:
		return g[0]
	}
	t = clamp01(t)
	seg := t * float64(len(g)-1)
	i := int(seg)
	if i >= len(g)-1 {
		return opaque(g[len(g)-1])
	}
	if seg == float64(i) {
		return opaque(g[i])
	}
	a, _ := colorful.MakeColor(opaque(g[i]))
	b, _ := colorful.MakeColor(opaque(g[i+1]))
	r, gg, bb := a.BlendLab(b, seg-float64(i)).Clamped().RGB255()
	return color.NRGBA{R: r, G: gg, B: bb, A: 255}
}

func opaque(c color.Color) color.Color {
	n := toNRGBA(c)
	n.A = 255
	return n
}

// YlOrRd approximates the matplotlib sequential map of the same name.
func YlOrRd() ColorMap {
	return Gradient{
		MustParse("#FFFFCC"), MustParse("#FED976"), MustParse("#FD8D3C"),
		MustParse("#E31A1C"), MustParse("#800026"),
	}
}

// Sample returns n evenly spaced colours from m.
func Sample(m ColorMap, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = m.At(t)
	}
	return out
}
