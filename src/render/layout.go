package render

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func (r *Renderer) draw(ctx context.Context, fig *scene.Figure, dc draw.Canvas) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render panic: %v", rec)
		}
	}()
	bg := fig.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Fill(dc.Rectangle.Path())

	margin := vg.Points(8)
	width := dc.Max.X - dc.Min.X - 2*margin
	cx := (dc.Min.X + dc.Max.X) / 2

	top := dc.Max.Y - margin
	if fig.Title != "" {
		top = r.stack(dc, fig.Title, textStyle(r.Theme.Sized(r.Theme.TitleSize+2), true, false, color.Black), cx, top, width)
	}
	if fig.Subtitle != "" {
		top = r.stack(dc, fig.Subtitle, textStyle(r.Theme.Sized(r.Theme.FontSize), false, true, style.Flat), cx, top-vg.Points(2), width)
	}
	if fig.Title != "" || fig.Subtitle != "" {
		top -= vg.Points(4)
	}

	bottom := dc.Min.Y + margin/2
	if fig.Caption != "" {
		capSty := textStyle(r.Theme.Sized(r.Theme.CaptionSize), false, true, color.Black)
		lines := wrap(fig.Caption, capSty, width)
		lh := lineHeight(capSty)
		h := lh * vg.Length(len(lines))
		r.stack(dc, fig.Caption, capSty, cx, bottom+h, width)
		bottom += h + vg.Points(4)
	}

	body := draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: dc.Min.X, Y: bottom},
			Max: vg.Point{X: dc.Max.X, Y: top},
		},
	}

	plots := make([][]*plot.Plot, fig.Rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, fig.Cols)
	}
	for i, pn := range fig.Panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		plots[i/fig.Cols][i%fig.Cols] = r.plot(pn)
	}
	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      vg.Points(16),
		PadY:      vg.Points(16),
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(10),
	}
	canvases := plot.Align(plots, tiles, body)
	for j := range plots {
		for i, p := range plots[j] {
			if p == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Draw(canvases[j][i])
		}
	}
	return nil
}

func lineHeight(sty text.Style) vg.Length {
	return sty.Height("Ag") * 1.15
}

// stack draws wrapped lines downward from top and returns the new top.
func (r *Renderer) stack(dc draw.Canvas, s string, sty text.Style, cx, top, width vg.Length) vg.Length {
	sty.YAlign = draw.YTop
	lh := lineHeight(sty)
	for _, line := range wrap(s, sty, width) {
		dc.FillText(sty, vg.Point{X: cx, Y: top}, line)
		top -= lh
	}
	return top
}

func (r *Renderer) plot(pn *scene.Panel) *plot.Plot {
	p := plot.New()
	th := r.Theme

	if pn.Title != "" {
		p.Title.Text = pn.Title
		p.Title.TextStyle = textStyle(th.Sized(11), true, false, color.Black)
		p.Title.Padding = vg.Points(4)
	}
	r.axis(&p.X, pn.X)
	r.axis(&p.Y, pn.Y)

	if pn.Grid != scene.GridNone {
		g := plotter.NewGrid()
		ls := draw.LineStyle{
			Color:  style.WithAlpha(color.Gray{Y: 0x80}, th.GridAlpha),
			Width:  vg.Points(0.5),
			Dashes: []vg.Length{vg.Points(1), vg.Points(1.65)},
		}
		g.Vertical, g.Horizontal = ls, ls
		switch pn.Grid {
		case scene.GridX:
			g.Horizontal.Color = nil
		case scene.GridY:
			g.Vertical.Color = nil
		}
		p.Add(g)
	}

	for _, l := range pn.Layers {
		p.Add(newPlotter(l))
	}

	r.legend(p, pn)

	fitAxis(&p.X, pn.X)
	fitAxis(&p.Y, pn.Y)
	if pn.HideAxes {
		p.HideAxes()
	}
	if pn.X.Hidden {
		p.HideX()
	}
	if pn.Y.Hidden {
		p.HideY()
	}
	return p
}

func (r *Renderer) axis(a *plot.Axis, ax scene.Axis) {
	a.Label.Text = ax.Label
	a.Label.TextStyle.Font = textStyle(r.Theme.Sized(10), false, false, nil).Font
	a.Tick.Label.Font = textStyle(r.Theme.Sized(8.5), false, false, nil).Font
	if len(ax.Ticks) > 0 {
		ticks := make([]plot.Tick, len(ax.Ticks))
		for i, t := range ax.Ticks {
			ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
		}
		a.Tick.Marker = plot.ConstantTicks(ticks)
	}
	if ax.TickRotation != 0 {
		a.Tick.Label.Rotation = ax.TickRotation * math.Pi / 180
		a.Tick.Label.XAlign = draw.XRight
		a.Tick.Label.YAlign = draw.YCenter
	}
}

// fitAxis applies an explicit range, or pads the data range by 5% on each side.
func fitAxis(a *plot.Axis, ax scene.Axis) {
	if ax.Fixed() {
		a.Min, a.Max = ax.Min, ax.Max
		return
	}
	if math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) || a.Min > a.Max {
		a.Min, a.Max = 0, 1
		return
	}
	span := a.Max - a.Min
	if span == 0 {
		span = math.Max(math.Abs(a.Min), 1)
	}
	a.Min -= span * 0.05
	a.Max += span * 0.05
}

func (r *Renderer) legend(p *plot.Plot, pn *scene.Panel) {
	lg := pn.Legend
	if lg == nil {
		return
	}
	size := lg.FontSize
	if size <= 0 {
		size = 8
	}
	p.Legend.TextStyle = textStyle(r.Theme.Sized(size), false, false, color.Black)
	p.Legend.TextStyle.XAlign = draw.XLeft
	// Rows step by the label rectangle's top edge plus Padding, so pad the
	// step out to a full line.
	p.Legend.TextStyle.YAlign = draw.YBottom
	p.Legend.ThumbnailWidth = vg.Points(16)
	p.Legend.Padding = legendPadding(p.Legend.TextStyle)
	p.Legend.Top = lg.Position == scene.UpperLeft || lg.Position == scene.UpperRight
	p.Legend.Left = lg.Position == scene.UpperLeft || lg.Position == scene.LowerLeft
	p.Legend.XOffs = vg.Points(-6)
	if p.Legend.Left {
		p.Legend.XOffs = vg.Points(6)
	}
	p.Legend.YOffs = vg.Points(-4)
	if !p.Legend.Top {
		p.Legend.YOffs = vg.Points(4)
	}
	if lg.Auto {
		for _, l := range pn.Layers {
			if e, ok := autoEntry(l); ok {
				p.Legend.Add(e.Label, thumb{e})
			}
		}
	}
	for _, e := range lg.Entries {
		p.Legend.Add(e.Label, thumb{e})
	}
}

func legendPadding(sty text.Style) vg.Length {
	return lineHeight(sty) - sty.Rectangle("Ag").Max.Y
}

func firstColor(c color.Color, cs []color.Color) color.Color {
	if c != nil || len(cs) == 0 {
		return c
	}
	return cs[0]
}

func autoEntry(l scene.Layer) (scene.LegendEntry, bool) {
	switch v := l.(type) {
	case *scene.Line:
		return scene.LegendEntry{Label: v.Name, Color: v.Stroke.Color, Kind: scene.LegendLine, Dashed: v.Stroke.Dash != scene.Solid, Marker: v.Marker}, v.Name != ""
	case *scene.Scatter:
		m := v.Marker
		if m == scene.MarkerNone {
			m = scene.MarkerCircle
		}
		return scene.LegendEntry{Label: v.Name, Color: firstColor(v.Color, v.Colors), Kind: scene.LegendMarker, Marker: m}, v.Name != ""
	case *scene.Bars:
		return scene.LegendEntry{Label: v.Name, Color: firstColor(v.Color, v.Colors), Kind: scene.LegendPatch}, v.Name != ""
	case *scene.Band:
		return scene.LegendEntry{Label: v.Name, Color: v.Fill, Kind: scene.LegendPatch}, v.Name != ""
	case *scene.RefLine:
		return scene.LegendEntry{Label: v.Name, Color: v.Stroke.Color, Kind: scene.LegendLine, Dashed: v.Stroke.Dash != scene.Solid}, v.Name != ""
	case *scene.Span:
		return scene.LegendEntry{Label: v.Name, Color: v.Fill, Kind: scene.LegendPatch}, v.Name != ""
	case *scene.Polygon:
		return scene.LegendEntry{Label: v.Name, Color: firstColor(v.Fill, []color.Color{v.Stroke.Color}), Kind: scene.LegendPatch}, v.Name != ""
	case *scene.ErrorBars:
		return scene.LegendEntry{Label: v.Name, Color: v.Stroke.Color, Kind: scene.LegendLine}, v.Name != ""
	}
	return scene.LegendEntry{}, false
}

// thumb is a legend thumbnail for one entry.
type thumb struct {
	e scene.LegendEntry
}

func (t thumb) Thumbnail(c *draw.Canvas) {
	col := t.e.Color
	if col == nil {
		col = color.Black
	}
	mid := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	switch t.e.Kind {
	case scene.LegendLine:
		ls := draw.LineStyle{Color: col, Width: vg.Points(1.5)}
		if t.e.Dashed {
			ls.Dashes = []vg.Length{vg.Points(3), vg.Points(1.5)}
		}
		c.StrokeLine2(ls, c.Min.X, mid.Y, c.Max.X, mid.Y)
		if t.e.Marker != scene.MarkerNone {
			drawMarker(*c, t.e.Marker, mid, vg.Points(2.5), col, draw.LineStyle{})
		}
	case scene.LegendMarker:
		m := t.e.Marker
		if m == scene.MarkerNone {
			m = scene.MarkerCircle
		}
		drawMarker(*c, m, mid, vg.Points(3), col, draw.LineStyle{})
	default:
		pts := []vg.Point{
			{X: c.Min.X, Y: c.Min.Y}, {X: c.Max.X, Y: c.Min.Y},
			{X: c.Max.X, Y: c.Max.Y}, {X: c.Min.X, Y: c.Max.Y},
		}
		c.FillPolygon(col, pts)
	}
}
