package render

import (
	"image/color"
	"math"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/contact-shreyas/ALPS/src/scene"
)

// typeface is the sans-serif family bundled with gonum/plot.
var typeface = font.Font{Typeface: "Liberation", Variant: "Sans"}

func init() {
	font.DefaultCache.Add(sansFaces())
}

// sansFont names each weight and style of the sans family as its own variant
// with a regular weight and style. vgpdf registers every face with an empty
// style and selects "B" or "I" from the weight, so a styled descriptor would not
// resolve in the PDF.
func sansFont(bold, italic bool) font.Font {
	f := typeface
	if bold {
		f.Variant += "Bold"
	}
	if italic {
		f.Variant += "Italic"
	}
	return f
}

// sansFaces re-registers the Liberation Sans faces under the sansFont names.
func sansFaces() font.Collection {
	var out font.Collection
	for _, face := range liberation.Collection() {
		if face.Font.Typeface != typeface.Typeface || face.Font.Variant != typeface.Variant {
			continue
		}
		bold, italic := face.Font.Weight == xfont.WeightBold, face.Font.Style == xfont.StyleItalic
		if !bold && !italic {
			continue
		}
		face.Font = sansFont(bold, italic)
		out = append(out, face)
	}
	return out
}

func textStyle(size float64, bold, italic bool, col color.Color) text.Style {
	f := sansFont(bold, italic)
	f.Size = vg.Points(size)
	if col == nil {
		col = color.Black
	}
	return text.Style{
		Color:   col,
		Font:    f,
		Handler: plot.DefaultTextHandler,
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
	}
}

func xalign(a scene.HAlign) text.XAlignment {
	switch a {
	case scene.AlignLeft:
		return draw.XLeft
	case scene.AlignRight:
		return draw.XRight
	}
	return draw.XCenter
}

func yalign(a scene.VAlign) text.YAlignment {
	switch a {
	case scene.AlignTop:
		return draw.YTop
	case scene.AlignBottom:
		return draw.YBottom
	}
	return draw.YCenter
}

// wrap breaks s into lines no wider than maxW in sty. Existing newlines are kept.
func wrap(s string, sty text.Style, maxW vg.Length) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if sty.Width(next) > maxW {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// drawLabel draws a text layer at pt, with its optional background box.
func drawLabel(c draw.Canvas, t *scene.Text, pt vg.Point) {
	if t.Text == "" {
		return
	}
	size := t.Size
	if size <= 0 {
		size = 8
	}
	sty := textStyle(size, t.Bold, t.Italic, t.Color)
	sty.XAlign = xalign(t.HAlign)
	sty.YAlign = yalign(t.VAlign)
	sty.Rotation = t.Rotation * math.Pi / 180

	if (t.Background != nil || t.Border != nil) && t.Rotation == 0 {
		rect := sty.Rectangle(t.Text)
		pad := vg.Points(t.Pad)
		lo := vg.Point{X: pt.X + rect.Min.X - pad, Y: pt.Y + rect.Min.Y - pad}
		hi := vg.Point{X: pt.X + rect.Max.X + pad, Y: pt.Y + rect.Max.Y + pad}
		pth := roundedRect(lo, hi, pad)
		if t.Background != nil {
			c.SetColor(t.Background)
			c.Fill(pth)
		}
		if t.Border != nil {
			c.SetLineStyle(draw.LineStyle{Color: t.Border, Width: vg.Points(0.8)})
			c.Stroke(pth)
		}
	}
	c.FillText(sty, pt, t.Text)
}
