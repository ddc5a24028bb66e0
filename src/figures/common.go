package figures

import (
	"image/color"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

var num = message.NewPrinter(language.English)

// thousands formats n with digit grouping, e.g. 847,250.
func thousands(n int) string { return num.Sprintf("%d", n) }

func seq(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, float64(v))
	}
	return out
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func shift(xs []float64, d float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x + d
	}
	return out
}

func add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func scale(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * k
	}
	return out
}

func colors(cs ...color.Color) []color.Color { return cs }

func fade(c color.Color, a float64) color.NRGBA { return style.WithAlpha(c, a) }

func patch(label string, c color.Color) scene.LegendEntry {
	return scene.LegendEntry{Label: label, Color: c, Kind: scene.LegendPatch}
}

func line(label string, c color.Color, dashed bool) scene.LegendEntry {
	return scene.LegendEntry{Label: label, Color: c, Kind: scene.LegendLine, Dashed: dashed}
}

func marker(label string, c color.Color, m scene.Marker) scene.LegendEntry {
	return scene.LegendEntry{Label: label, Color: c, Kind: scene.LegendMarker, Marker: m}
}

// note is a small boxed annotation in axes coordinates.
func note(x, y float64, s string, h scene.HAlign, v scene.VAlign, bg color.Color) *scene.Text {
	return scene.AxesLabel(x, y, s, 8).At(h, v).Boxed(bg, style.Black)
}

var paletteDefaults = map[string]color.NRGBA{
	"blue":   style.Blue,
	"orange": style.Orange,
	"green":  style.Green,
	"red":    style.Red,
	"purple": style.Purple,
	"brown":  style.Brown,
}

// paletteColor resolves a palette key through the theme, falling back to the
// built-in colour-blind palette and then to black.
func paletteColor(th style.Theme, key string) color.NRGBA {
	def, ok := paletteDefaults[key]
	if !ok {
		def = style.Black
	}
	return th.C(key, def)
}
