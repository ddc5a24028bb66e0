package scene

import (
	"image/color"
	"math"

	"github.com/contact-shreyas/ALPS/src/style"
)

// Layer is anything drawn inside a panel, in order.
type Layer interface {
	Kind() string
}

// Bounded layers contribute to auto-scaled axis ranges.
type Bounded interface {
	Layer
	Bounds() (xmin, xmax, ymin, ymax float64, ok bool)
}

// Dash patterns.
type Dash int

const (
	Solid Dash = iota
	Dashed
	Dotted
	DashDot
)

// Stroke describes a line. Width is in points; a nil Color or zero Width draws nothing.
type Stroke struct {
	Color color.Color
	Width float64
	Dash  Dash
}

func (s Stroke) Visible() bool { return s.Color != nil && s.Width > 0 }

type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
	MarkerSquare
	MarkerTriangle
	MarkerTriangleDown
	MarkerDiamond
	MarkerStar
)

// Coord selects how a layer's positions are interpreted.
type Coord int

const (
	// CoordData positions in axis units.
	CoordData Coord = iota
	// CoordAxes positions as fractions of the data area, (0,0) bottom left.
	CoordAxes
)

type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// Line is a polyline through (X[i], Y[i]), optionally marked.
type Line struct {
	Name       string
	X, Y       []float64
	Stroke     Stroke
	Marker     Marker
	MarkerSize float64
	// MarkEvery marks every n-th point; zero marks all.
	MarkEvery int
}

func (*Line) Kind() string { return "line" }
func (l *Line) Bounds() (float64, float64, float64, float64, bool) {
	return bounds2(l.X, l.Y)
}

// Scatter draws one glyph per point. Colors and Sizes override Color and Size per point.
type Scatter struct {
	Name   string
	X, Y   []float64
	Color  color.Color
	Colors []color.Color
	// Size is the glyph radius in points.
	Size   float64
	Sizes  []float64
	Marker Marker
	Edge   Stroke
}

func (*Scatter) Kind() string { return "scatter" }
func (s *Scatter) Bounds() (float64, float64, float64, float64, bool) {
	return bounds2(s.X, s.Y)
}

// Bars draws one rectangle per value at Pos, from Base (zero if nil) to Base+Value.
type Bars struct {
	Name       string
	Pos        []float64
	Values     []float64
	Base       []float64
	Width      float64
	Horizontal bool
	Color      color.Color
	Colors     []color.Color
	Edge       Stroke
	// Err draws symmetric whiskers of the given half-length.
	Err []float64
}

func (*Bars) Kind() string { return "bars" }
func (b *Bars) Bounds() (float64, float64, float64, float64, bool) {
	var lo, hi []float64
	for i, v := range b.Values {
		base := 0.0
		if i < len(b.Base) {
			base = b.Base[i]
		}
		e := 0.0
		if i < len(b.Err) {
			e = b.Err[i]
		}
		lo = append(lo, math.Min(base, base+v-e))
		hi = append(hi, math.Max(base, base+v+e))
	}
	pmin, pmax, ok := minMax(b.Pos)
	if !ok {
		return 0, 0, 0, 0, false
	}
	pmin -= b.Width / 2
	pmax += b.Width / 2
	vmin, _, ok1 := minMax(lo)
	_, vmax, ok2 := minMax(hi)
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, false
	}
	if b.Horizontal {
		return vmin, vmax, pmin, pmax, true
	}
	return pmin, pmax, vmin, vmax, true
}

// ErrorBars draws vertical whiskers from Y-Low to Y+High with caps.
type ErrorBars struct {
	Name      string
	X, Y      []float64
	Low, High []float64
	Stroke    Stroke
	// Cap is the cap half-width in points.
	Cap float64
}

func (*ErrorBars) Kind() string { return "errorbars" }
func (e *ErrorBars) Bounds() (float64, float64, float64, float64, bool) {
	lo := make([]float64, len(e.Y))
	hi := make([]float64, len(e.Y))
	for i, y := range e.Y {
		lo[i], hi[i] = y, y
		if i < len(e.Low) {
			lo[i] = y - e.Low[i]
		}
		if i < len(e.High) {
			hi[i] = y + e.High[i]
		}
	}
	xmin, xmax, ok := minMax(e.X)
	ymin, _, ok1 := minMax(lo)
	_, ymax, ok2 := minMax(hi)
	return xmin, xmax, ymin, ymax, ok && ok1 && ok2
}

// Band fills between Lower and Upper along X.
type Band struct {
	Name         string
	X            []float64
	Lower, Upper []float64
	Fill         color.Color
	Edge         Stroke
}

func (*Band) Kind() string { return "band" }
func (b *Band) Bounds() (float64, float64, float64, float64, bool) {
	xmin, xmax, ok := minMax(b.X)
	lmin, _, ok1 := minMax(b.Lower)
	_, umax, ok2 := minMax(b.Upper)
	return xmin, xmax, lmin, umax, ok && ok1 && ok2
}

// RefLine is a horizontal (or, with Vertical, vertical) line across the whole panel.
type RefLine struct {
	Name     string
	Vertical bool
	At       float64
	Stroke   Stroke
}

func (*RefLine) Kind() string { return "refline" }

// Span shades a horizontal band of y values, or with Vertical a band of x values.
type Span struct {
	Name     string
	Vertical bool
	From, To float64
	Fill     color.Color
}

func (*Span) Kind() string { return "span" }

// Polygon is a closed outline in data coordinates.
type Polygon struct {
	Name   string
	X, Y   []float64
	Fill   color.Color
	Stroke Stroke
}

func (*Polygon) Kind() string { return "polygon" }
func (p *Polygon) Bounds() (float64, float64, float64, float64, bool) {
	return bounds2(p.X, p.Y)
}

// Box is an axis-aligned rectangle anchored at its lower-left corner.
type Box struct {
	X, Y, W, H float64
	// Radius rounds corners, in points.
	Radius float64
	Fill   color.Color
	Stroke Stroke
	Coord  Coord
}

func (*Box) Kind() string { return "box" }

// Circle has a radius in x data units; on unequal axes it is drawn as the
// matching ellipse, as a data-space circle would be.
type Circle struct {
	X, Y, R float64
	Fill    color.Color
	Stroke  Stroke
}

func (*Circle) Kind() string { return "circle" }

// Wedge is a circular sector from From to To degrees, counter-clockwise from +x.
// Inner is the hole radius as a fraction of R; zero draws a pie slice.
type Wedge struct {
	X, Y, R  float64
	From, To float64
	Inner    float64
	Fill     color.Color
	Stroke   Stroke
}

func (*Wedge) Kind() string { return "wedge" }

// Arrow runs from (X1,Y1) to (X2,Y2) with a head at the end.
type Arrow struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
	// Head is the head length in points; zero uses a default.
	Head   float64
	Double bool
	Coord  Coord
}

func (*Arrow) Kind() string { return "arrow" }

// Text is a label. Newlines split lines.
type Text struct {
	X, Y     float64
	Text     string
	Size     float64
	Bold     bool
	Italic   bool
	Color    color.Color
	HAlign   HAlign
	VAlign   VAlign
	Coord    Coord
	Rotation float64
	// Background and Border draw a box behind the text; Pad is in points.
	Background color.Color
	Border     color.Color
	Pad        float64
}

func (*Text) Kind() string { return "text" }

// Heatmap is a grid of values; Values[r][c] sits at (X0+c*CellW, Y0+r*CellH).
type Heatmap struct {
	Name         string
	Values       [][]float64
	X0, Y0       float64
	CellW, CellH float64
	Min, Max     float64
	Map          style.ColorMap
	// LabelFormat prints each value in its cell when set (e.g. "%.2f").
	LabelFormat string
	LabelSize   float64
	Edge        Stroke
}

func (*Heatmap) Kind() string { return "heatmap" }
func (h *Heatmap) Bounds() (float64, float64, float64, float64, bool) {
	if len(h.Values) == 0 || len(h.Values[0]) == 0 {
		return 0, 0, 0, 0, false
	}
	rows, cols := float64(len(h.Values)), float64(len(h.Values[0]))
	x0, x1 := h.X0-h.CellW/2, h.X0+(cols-0.5)*h.CellW
	y0, y1 := h.Y0-h.CellH/2, h.Y0+(rows-0.5)*h.CellH
	return math.Min(x0, x1), math.Max(x0, x1), math.Min(y0, y1), math.Max(y0, y1), true
}

// ColorBar draws the colour scale of a map as a vertical strip inside the panel,
// positioned in axes fractions.
type ColorBar struct {
	Map          style.ColorMap
	Min, Max     float64
	Label        string
	Ticks        []float64
	X0, X1       float64
	Y0, Y1       float64
	TickFormat   string
	LabelsOnLeft bool
}

func (*ColorBar) Kind() string { return "colorbar" }

func minMax(v []float64) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi, lo <= hi
}

func bounds2(x, y []float64) (float64, float64, float64, float64, bool) {
	x0, x1, ok1 := minMax(x)
	y0, y1, ok2 := minMax(y)
	return x0, x1, y0, y1, ok1 && ok2
}
