package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/contact-shreyas/ALPS/src/scene"
)

// space maps layer coordinates onto the data canvas of one panel.
type space struct {
	c    draw.Canvas
	x, y func(float64) vg.Length
}

func (s space) pt(coord scene.Coord, x, y float64) vg.Point {
	if coord == scene.CoordAxes {
		return vg.Point{
			X: s.c.Min.X + vg.Length(x)*(s.c.Max.X-s.c.Min.X),
			Y: s.c.Min.Y + vg.Length(y)*(s.c.Max.Y-s.c.Min.Y),
		}
	}
	return vg.Point{X: s.x(x), Y: s.y(y)}
}

// layerPlotter adapts any scene layer to plot.Plotter.
type layerPlotter struct {
	layer scene.Layer
}

// rangedPlotter also reports a data range so the axes can auto-scale.
type rangedPlotter struct {
	layerPlotter
	b scene.Bounded
}

func (rp rangedPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax, ok := rp.b.Bounds()
	if !ok {
		return math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	}
	return xmin, xmax, ymin, ymax
}

func newPlotter(l scene.Layer) plot.Plotter {
	lp := layerPlotter{layer: l}
	if b, ok := l.(scene.Bounded); ok {
		return rangedPlotter{layerPlotter: lp, b: b}
	}
	return lp
}

func (lp layerPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	s := space{c: c, x: trX, y: trY}
	switch v := lp.layer.(type) {
	case *scene.Line:
		plotLine(s, v)
	case *scene.Scatter:
		plotScatter(s, v)
	case *scene.Bars:
		plotBars(s, v)
	case *scene.ErrorBars:
		plotErrorBars(s, v)
	case *scene.Band:
		plotBand(s, v)
	case *scene.RefLine:
		plotRefLine(s, v)
	case *scene.Span:
		plotSpan(s, v)
	case *scene.Polygon:
		plotPolygon(s, v)
	case *scene.Box:
		plotBox(s, v)
	case *scene.Circle:
		plotCircle(s, v)
	case *scene.Wedge:
		plotWedge(s, v)
	case *scene.Arrow:
		plotArrow(s, v)
	case *scene.Text:
		drawLabel(s.c, v, s.pt(v.Coord, v.X, v.Y))
	case *scene.Heatmap:
		plotHeatmap(s, v)
	case *scene.ColorBar:
		plotColorBar(s, v)
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func fillClipped(c draw.Canvas, col color.Color, pts []vg.Point) {
	if col == nil || len(pts) < 3 {
		return
	}
	clipped := c.ClipPolygonXY(pts)
	if len(clipped) < 3 {
		return
	}
	c.FillPolygon(col, clipped)
}

func strokeClipped(c draw.Canvas, ls draw.LineStyle, lines ...[]vg.Point) {
	if !visible(ls) {
		return
	}
	c.StrokeLines(ls, c.ClipLinesXY(lines...)...)
}

func closed(pts []vg.Point) []vg.Point {
	if len(pts) == 0 {
		return pts
	}
	return append(append([]vg.Point(nil), pts...), pts[0])
}

func plotLine(s space, l *scene.Line) {
	var segs [][]vg.Point
	var cur []vg.Point
	for i := range l.X {
		if !finite(l.X[i], l.Y[i]) {
			if len(cur) > 1 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, vg.Point{X: s.x(l.X[i]), Y: s.y(l.Y[i])})
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	strokeClipped(s.c, lineStyle(l.Stroke), segs...)
	if l.Marker == scene.MarkerNone {
		return
	}
	r := vg.Points(l.MarkerSize)
	if r <= 0 {
		r = vg.Points(3)
	}
	for i := range l.X {
		if l.MarkEvery > 1 && i%l.MarkEvery != 0 {
			continue
		}
		if !finite(l.X[i], l.Y[i]) {
			continue
		}
		pt := vg.Point{X: s.x(l.X[i]), Y: s.y(l.Y[i])}
		if s.c.Contains(pt) {
			drawMarker(s.c, l.Marker, pt, r, l.Stroke.Color, draw.LineStyle{Color: color.White, Width: vg.Points(0.5)})
		}
	}
}

func plotScatter(s space, sc *scene.Scatter) {
	m := sc.Marker
	if m == scene.MarkerNone {
		m = scene.MarkerCircle
	}
	edge := lineStyle(sc.Edge)
	for i := range sc.X {
		if !finite(sc.X[i], sc.Y[i]) {
			continue
		}
		pt := vg.Point{X: s.x(sc.X[i]), Y: s.y(sc.Y[i])}
		if !s.c.Contains(pt) {
			continue
		}
		col := sc.Color
		if i < len(sc.Colors) {
			col = sc.Colors[i]
		}
		size := sc.Size
		if i < len(sc.Sizes) {
			size = sc.Sizes[i]
		}
		if size <= 0 {
			size = 3
		}
		drawMarker(s.c, m, pt, vg.Points(size), col, edge)
	}
}

func barRect(s space, b *scene.Bars, pos, lo, hi float64) []vg.Point {
	w := b.Width / 2
	if b.Horizontal {
		return []vg.Point{
			{X: s.x(lo), Y: s.y(pos - w)}, {X: s.x(hi), Y: s.y(pos - w)},
			{X: s.x(hi), Y: s.y(pos + w)}, {X: s.x(lo), Y: s.y(pos + w)},
		}
	}
	return []vg.Point{
		{X: s.x(pos - w), Y: s.y(lo)}, {X: s.x(pos + w), Y: s.y(lo)},
		{X: s.x(pos + w), Y: s.y(hi)}, {X: s.x(pos - w), Y: s.y(hi)},
	}
}

func plotBars(s space, b *scene.Bars) {
	edge := lineStyle(b.Edge)
	whisker := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	for i, v := range b.Values {
		if !finite(v) {
			continue
		}
		base := 0.0
		if i < len(b.Base) {
			base = b.Base[i]
		}
		col := b.Color
		if i < len(b.Colors) && b.Colors[i] != nil {
			col = b.Colors[i]
		}
		pts := barRect(s, b, b.Pos[i], base, base+v)
		fillClipped(s.c, col, pts)
		strokeClipped(s.c, edge, closed(pts))
		if i >= len(b.Err) || b.Err[i] <= 0 {
			continue
		}
		top, e, capW := base+v, b.Err[i], b.Width*0.15
		if b.Horizontal {
			strokeClipped(s.c, whisker,
				[]vg.Point{{X: s.x(top - e), Y: s.y(b.Pos[i])}, {X: s.x(top + e), Y: s.y(b.Pos[i])}},
				[]vg.Point{{X: s.x(top - e), Y: s.y(b.Pos[i] - capW)}, {X: s.x(top - e), Y: s.y(b.Pos[i] + capW)}},
				[]vg.Point{{X: s.x(top + e), Y: s.y(b.Pos[i] - capW)}, {X: s.x(top + e), Y: s.y(b.Pos[i] + capW)}},
			)
			continue
		}
		strokeClipped(s.c, whisker,
			[]vg.Point{{X: s.x(b.Pos[i]), Y: s.y(top - e)}, {X: s.x(b.Pos[i]), Y: s.y(top + e)}},
			[]vg.Point{{X: s.x(b.Pos[i] - capW), Y: s.y(top - e)}, {X: s.x(b.Pos[i] + capW), Y: s.y(top - e)}},
			[]vg.Point{{X: s.x(b.Pos[i] - capW), Y: s.y(top + e)}, {X: s.x(b.Pos[i] + capW), Y: s.y(top + e)}},
		)
	}
}

func plotErrorBars(s space, e *scene.ErrorBars) {
	ls := lineStyle(e.Stroke)
	if !visible(ls) {
		ls = draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	}
	capW := vg.Points(e.Cap)
	for i := range e.X {
		if !finite(e.X[i], e.Y[i]) {
			continue
		}
		x := s.x(e.X[i])
		lo, hi := s.y(e.Y[i]-e.Low[i]), s.y(e.Y[i]+e.High[i])
		lines := [][]vg.Point{{{X: x, Y: lo}, {X: x, Y: hi}}}
		if capW > 0 {
			lines = append(lines,
				[]vg.Point{{X: x - capW, Y: lo}, {X: x + capW, Y: lo}},
				[]vg.Point{{X: x - capW, Y: hi}, {X: x + capW, Y: hi}},
			)
		}
		strokeClipped(s.c, ls, lines...)
	}
}

func plotBand(s space, b *scene.Band) {
	n := len(b.X)
	if n < 2 {
		return
	}
	pts := make([]vg.Point, 0, 2*n)
	upper := make([]vg.Point, 0, n)
	lower := make([]vg.Point, 0, n)
	for i := 0; i < n; i++ {
		upper = append(upper, vg.Point{X: s.x(b.X[i]), Y: s.y(b.Upper[i])})
		lower = append(lower, vg.Point{X: s.x(b.X[i]), Y: s.y(b.Lower[i])})
	}
	pts = append(pts, upper...)
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, lower[i])
	}
	fillClipped(s.c, b.Fill, pts)
	strokeClipped(s.c, lineStyle(b.Edge), upper, lower)
}

func plotRefLine(s space, r *scene.RefLine) {
	ls := lineStyle(r.Stroke)
	if !visible(ls) {
		return
	}
	if r.Vertical {
		x := s.x(r.At)
		if x >= s.c.Min.X && x <= s.c.Max.X {
			s.c.StrokeLine2(ls, x, s.c.Min.Y, x, s.c.Max.Y)
		}
		return
	}
	y := s.y(r.At)
	if y >= s.c.Min.Y && y <= s.c.Max.Y {
		s.c.StrokeLine2(ls, s.c.Min.X, y, s.c.Max.X, y)
	}
}

func plotSpan(s space, sp *scene.Span) {
	var lo, hi vg.Point
	if sp.Vertical {
		lo = vg.Point{X: s.x(sp.From), Y: s.c.Min.Y}
		hi = vg.Point{X: s.x(sp.To), Y: s.c.Max.Y}
	} else {
		lo = vg.Point{X: s.c.Min.X, Y: s.y(sp.From)}
		hi = vg.Point{X: s.c.Max.X, Y: s.y(sp.To)}
	}
	fillClipped(s.c, sp.Fill, []vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}})
}

func plotPolygon(s space, pg *scene.Polygon) {
	pts := make([]vg.Point, 0, len(pg.X))
	for i := range pg.X {
		if finite(pg.X[i], pg.Y[i]) {
			pts = append(pts, vg.Point{X: s.x(pg.X[i]), Y: s.y(pg.Y[i])})
		}
	}
	fillClipped(s.c, pg.Fill, pts)
	strokeClipped(s.c, lineStyle(pg.Stroke), closed(pts))
}

func plotBox(s space, b *scene.Box) {
	lo := s.pt(b.Coord, b.X, b.Y)
	hi := s.pt(b.Coord, b.X+b.W, b.Y+b.H)
	pth := roundedRect(lo, hi, vg.Points(b.Radius))
	if b.Fill != nil {
		s.c.SetColor(b.Fill)
		s.c.Fill(pth)
	}
	if ls := lineStyle(b.Stroke); visible(ls) {
		s.c.SetLineStyle(ls)
		s.c.Stroke(pth)
	}
}

func radii(s space, x, y, r float64) (vg.Length, vg.Length) {
	return s.x(x+r) - s.x(x), s.y(y+r) - s.y(y)
}

func plotCircle(s space, ci *scene.Circle) {
	c := vg.Point{X: s.x(ci.X), Y: s.y(ci.Y)}
	rx, ry := radii(s, ci.X, ci.Y, ci.R)
	pts := ellipse(c, rx, ry)
	if ci.Fill != nil {
		s.c.FillPolygon(ci.Fill, pts)
	}
	if ls := lineStyle(ci.Stroke); visible(ls) {
		s.c.StrokeLines(ls, closed(pts))
	}
}

func plotWedge(s space, w *scene.Wedge) {
	c := vg.Point{X: s.x(w.X), Y: s.y(w.Y)}
	rx, ry := radii(s, w.X, w.Y, w.R)
	pts := wedge(c, rx, ry, w.Inner, w.From, w.To)
	if w.Fill != nil {
		s.c.FillPolygon(w.Fill, pts)
	}
	if ls := lineStyle(w.Stroke); visible(ls) {
		s.c.StrokeLines(ls, closed(pts))
	}
}

func plotArrow(s space, a *scene.Arrow) {
	ls := lineStyle(a.Stroke)
	if !visible(ls) {
		ls = draw.LineStyle{Color: color.Black, Width: vg.Points(1.5)}
	}
	head := vg.Points(a.Head)
	if head <= 0 {
		head = vg.Points(6 + 1.5*float64(ls.Width/vg.Points(1)))
	}
	tail := s.pt(a.Coord, a.X1, a.Y1)
	tip := s.pt(a.Coord, a.X2, a.Y2)
	from, to := tail, shorten(tail, tip, head*0.8)
	if a.Double {
		from = shorten(tip, tail, head*0.8)
	}
	s.c.StrokeLines(ls, []vg.Point{from, to})
	if h := arrowHead(tail, tip, head); h != nil {
		s.c.FillPolygon(ls.Color, h)
	}
	if a.Double {
		if h := arrowHead(tip, tail, head); h != nil {
			s.c.FillPolygon(ls.Color, h)
		}
	}
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535
}

func norm(v, lo, hi float64) float64 { return (v - lo) / (hi - lo) }

func plotHeatmap(s space, h *scene.Heatmap) {
	edge := lineStyle(h.Edge)
	size := h.LabelSize
	if size <= 0 {
		size = 8
	}
	for r, row := range h.Values {
		for c, v := range row {
			cx := h.X0 + float64(c)*h.CellW
			cy := h.Y0 + float64(r)*h.CellH
			lo := vg.Point{X: s.x(cx - h.CellW/2), Y: s.y(cy - h.CellH/2)}
			hi := vg.Point{X: s.x(cx + h.CellW/2), Y: s.y(cy + h.CellH/2)}
			rect := []vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}
			col := h.Map.At(norm(v, h.Min, h.Max))
			fillClipped(s.c, col, rect)
			strokeClipped(s.c, edge, closed(rect))
			if h.LabelFormat == "" || !finite(v) {
				continue
			}
			fg := color.Color(color.Black)
			if luminance(col) < 0.45 {
				fg = color.White
			}
			t := &scene.Text{Text: fmt.Sprintf(h.LabelFormat, v), Size: size, Bold: true, Color: fg}
			drawLabel(s.c, t, vg.Point{X: s.x(cx), Y: s.y(cy)})
		}
	}
}

func plotColorBar(s space, cb *scene.ColorBar) {
	lo := s.pt(scene.CoordAxes, cb.X0, cb.Y0)
	hi := s.pt(scene.CoordAxes, cb.X1, cb.Y1)
	const steps = 64
	dy := (hi.Y - lo.Y) / steps
	for i := 0; i < steps; i++ {
		y0 := lo.Y + dy*vg.Length(i)
		col := cb.Map.At((float64(i) + 0.5) / steps)
		s.c.FillPolygon(col, []vg.Point{{X: lo.X, Y: y0}, {X: hi.X, Y: y0}, {X: hi.X, Y: y0 + dy}, {X: lo.X, Y: y0 + dy}})
	}
	frame := draw.LineStyle{Color: color.Black, Width: vg.Points(0.6)}
	s.c.StrokeLines(frame, closed([]vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}))
	format := cb.TickFormat
	if format == "" {
		format = "%.1f"
	}
	tickLen := vg.Points(3)
	var labelEdge vg.Length
	for _, tv := range cb.Ticks {
		y := lo.Y + vg.Length(norm(tv, cb.Min, cb.Max))*(hi.Y-lo.Y)
		t := &scene.Text{Text: fmt.Sprintf(format, tv), Size: 7, Color: color.Black, VAlign: scene.AlignMiddle}
		if cb.LabelsOnLeft {
			s.c.StrokeLine2(frame, lo.X-tickLen, y, lo.X, y)
			t.HAlign = scene.AlignRight
			drawLabel(s.c, t, vg.Point{X: lo.X - tickLen - vg.Points(1), Y: y})
			continue
		}
		s.c.StrokeLine2(frame, hi.X, y, hi.X+tickLen, y)
		t.HAlign = scene.AlignLeft
		drawLabel(s.c, t, vg.Point{X: hi.X + tickLen + vg.Points(1), Y: y})
		if w := textStyle(7, false, false, nil).Width(t.Text); w > labelEdge {
			labelEdge = w
		}
	}
	if cb.Label == "" {
		return
	}
	lt := &scene.Text{Text: cb.Label, Size: 8, Color: color.Black, Rotation: 90}
	x := hi.X + tickLen + labelEdge + vg.Points(8)
	if cb.LabelsOnLeft {
		x = lo.X - vg.Points(28)
	}
	drawLabel(s.c, lt, vg.Point{X: x, Y: (lo.Y + hi.Y) / 2})
}
