package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/contact-shreyas/ALPS/src/scene"
)

func lineStyle(s scene.Stroke) draw.LineStyle {
	if !s.Visible() {
		return draw.LineStyle{}
	}
	w := vg.Points(s.Width)
	u := math.Max(s.Width, 1)
	ls := draw.LineStyle{Color: s.Color, Width: w}
	switch s.Dash {
	case scene.Dashed:
		ls.Dashes = []vg.Length{vg.Points(3.7 * u), vg.Points(1.6 * u)}
	case scene.Dotted:
		ls.Dashes = []vg.Length{vg.Points(1 * u), vg.Points(1.65 * u)}
	case scene.DashDot:
		ls.Dashes = []vg.Length{vg.Points(6.4 * u), vg.Points(1.6 * u), vg.Points(1 * u), vg.Points(1.6 * u)}
	}
	return ls
}

func visible(ls draw.LineStyle) bool { return ls.Color != nil && ls.Width > 0 }

func polyPath(pts []vg.Point) vg.Path {
	var p vg.Path
	for i, pt := range pts {
		if i == 0 {
			p.Move(pt)
			continue
		}
		p.Line(pt)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// regular returns n vertices on a circle of radius r, the first at angle a0.
func regular(c vg.Point, n int, r vg.Length, a0 float64) []vg.Point {
	pts := make([]vg.Point, n)
	for i := range pts {
		a := a0 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = vg.Point{X: c.X + r*vg.Length(math.Cos(a)), Y: c.Y + r*vg.Length(math.Sin(a))}
	}
	return pts
}

func markerPath(m scene.Marker, c vg.Point, r vg.Length) vg.Path {
	switch m {
	case scene.MarkerSquare:
		return polyPath(regular(c, 4, r*1.25, math.Pi/4))
	case scene.MarkerTriangle:
		return polyPath(regular(c, 3, r*1.3, math.Pi/2))
	case scene.MarkerTriangleDown:
		return polyPath(regular(c, 3, r*1.3, -math.Pi/2))
	case scene.MarkerDiamond:
		return polyPath(regular(c, 4, r*1.3, math.Pi/2))
	case scene.MarkerStar:
		outer := regular(c, 5, r*1.5, math.Pi/2)
		inner := regular(c, 5, r*0.6, math.Pi/2+math.Pi/5)
		pts := make([]vg.Point, 0, 10)
		for i := range outer {
			pts = append(pts, outer[i], inner[i])
		}
		return polyPath(pts)
	}
	var p vg.Path
	p.Move(vg.Point{X: c.X + r, Y: c.Y})
	p.Arc(c, r, 0, 2*math.Pi)
	p.Close()
	return p
}

func drawMarker(c draw.Canvas, m scene.Marker, pt vg.Point, r vg.Length, fill color.Color, edge draw.LineStyle) {
	if m == scene.MarkerNone || r <= 0 {
		return
	}
	pth := markerPath(m, pt, r)
	if fill != nil {
		c.SetColor(fill)
		c.Fill(pth)
	}
	if visible(edge) {
		c.SetLineStyle(edge)
		c.Stroke(pth)
	}
}

// roundedRect is the rectangle lo..hi with corner radius r, clamped to fit.
func roundedRect(lo, hi vg.Point, r vg.Length) vg.Path {
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if w < 0 {
		lo.X, hi.X, w = hi.X, lo.X, -w
	}
	if h < 0 {
		lo.Y, hi.Y, h = hi.Y, lo.Y, -h
	}
	if lim := vg.Length(math.Min(float64(w), float64(h))) / 2; r > lim {
		r = lim
	}
	var p vg.Path
	if r <= 0 {
		return polyPath([]vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}})
	}
	p.Move(vg.Point{X: lo.X + r, Y: lo.Y})
	p.Line(vg.Point{X: hi.X - r, Y: lo.Y})
	p.Arc(vg.Point{X: hi.X - r, Y: lo.Y + r}, r, -math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: hi.X, Y: hi.Y - r})
	p.Arc(vg.Point{X: hi.X - r, Y: hi.Y - r}, r, 0, math.Pi/2)
	p.Line(vg.Point{X: lo.X + r, Y: hi.Y})
	p.Arc(vg.Point{X: lo.X + r, Y: hi.Y - r}, r, math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: lo.X, Y: lo.Y + r})
	p.Arc(vg.Point{X: lo.X + r, Y: lo.Y + r}, r, math.Pi, math.Pi/2)
	p.Close()
	return p
}

// arcPoints samples an elliptical arc from a0 to a1 radians.
func arcPoints(c vg.Point, rx, ry vg.Length, a0, a1 float64) []vg.Point {
	n := int(math.Ceil(math.Abs(a1-a0)/(2*math.Pi)*72)) + 1
	if n < 2 {
		n = 2
	}
	pts := make([]vg.Point, n)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n-1)
		pts[i] = vg.Point{X: c.X + rx*vg.Length(math.Cos(a)), Y: c.Y + ry*vg.Length(math.Sin(a))}
	}
	return pts
}

func ellipse(c vg.Point, rx, ry vg.Length) []vg.Point {
	pts := arcPoints(c, rx, ry, 0, 2*math.Pi)
	return pts[:len(pts)-1]
}

// wedge returns the outline of a sector, annular when inner > 0.
func wedge(c vg.Point, rx, ry vg.Length, inner, fromDeg, toDeg float64) []vg.Point {
	a0, a1 := fromDeg*math.Pi/180, toDeg*math.Pi/180
	pts := arcPoints(c, rx, ry, a0, a1)
	if inner <= 0 {
		return append(pts, c)
	}
	back := arcPoints(c, rx*vg.Length(inner), ry*vg.Length(inner), a1, a0)
	return append(pts, back...)
}

// arrowHead returns the triangle pointing at tip from the direction of tail.
func arrowHead(tail, tip vg.Point, length vg.Length) []vg.Point {
	dx, dy := float64(tip.X-tail.X), float64(tip.Y-tail.Y)
	d := math.Hypot(dx, dy)
	if d == 0 {
		return nil
	}
	ux, uy := dx/d, dy/d
	l := float64(length)
	back := vg.Point{X: tip.X - vg.Length(ux*l), Y: tip.Y - vg.Length(uy*l)}
	hw := l * 0.45
	return []vg.Point{
		tip,
		{X: back.X - vg.Length(uy*hw), Y: back.Y + vg.Length(ux*hw)},
		{X: back.X + vg.Length(uy*hw), Y: back.Y - vg.Length(ux*hw)},
	}
}

// shorten moves tip toward tail by l so a stroke does not poke through the head.
func shorten(tail, tip vg.Point, l vg.Length) vg.Point {
	dx, dy := float64(tip.X-tail.X), float64(tip.Y-tail.Y)
	d := math.Hypot(dx, dy)
	if d <= float64(l) || d == 0 {
		return tip
	}
	f := (d - float64(l)) / d
	return vg.Point{X: tail.X + vg.Length(dx*f), Y: tail.Y + vg.Length(dy*f)}
}
