package scene

import "image/color"

// Label returns black centred text at a data position.
func Label(x, y float64, s string, size float64) *Text {
	return &Text{X: x, Y: y, Text: s, Size: size, Color: color.Black}
}

// AxesLabel is Label in axes-fraction coordinates.
func AxesLabel(x, y float64, s string, size float64) *Text {
	t := Label(x, y, s, size)
	t.Coord = CoordAxes
	return t
}

func (t *Text) B() *Text              { t.Bold = true; return t }
func (t *Text) I() *Text              { t.Italic = true; return t }
func (t *Text) In(c color.Color) *Text { t.Color = c; return t }

// At sets the anchor alignment.
func (t *Text) At(h HAlign, v VAlign) *Text {
	t.HAlign, t.VAlign = h, v
	return t
}

// Boxed draws the text on a filled box with a border.
func (t *Text) Boxed(fill, border color.Color) *Text {
	t.Background, t.Border = fill, border
	if t.Pad == 0 {
		t.Pad = 3
	}
	return t
}

func (t *Text) Rotate(deg float64) *Text { t.Rotation = deg; return t }

// Rect returns a square-cornered box.
func Rect(x, y, w, h float64, fill color.Color, edge Stroke) *Box {
	return &Box{X: x, Y: y, W: w, H: h, Fill: fill, Stroke: edge}
}

// RoundRect returns a box with rounded corners of radius r points.
func RoundRect(x, y, w, h, r float64, fill color.Color, edge Stroke) *Box {
	b := Rect(x, y, w, h, fill, edge)
	b.Radius = r
	return b
}

// Pen is a solid stroke.
func Pen(c color.Color, w float64) Stroke { return Stroke{Color: c, Width: w} }

// DashedPen is a dashed stroke.
func DashedPen(c color.Color, w float64) Stroke { return Stroke{Color: c, Width: w, Dash: Dashed} }

// DottedPen is a dotted stroke.
func DottedPen(c color.Color, w float64) Stroke { return Stroke{Color: c, Width: w, Dash: Dotted} }

// Seg is a two-point line, the usual connector in diagrams.
func Seg(x1, y1, x2, y2 float64, s Stroke) *Line {
	return &Line{X: []float64{x1, x2}, Y: []float64{y1, y2}, Stroke: s}
}

// Ticks builds labelled ticks at the given values.
func Ticks(values []float64, labels []string) []Tick {
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Value: v}
		if i < len(labels) {
			out[i].Label = labels[i]
		}
	}
	return out
}
