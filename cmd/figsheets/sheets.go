package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/logging"
	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

// sheet is one written preview.
type sheet struct {
	Path    string
	Series  int
	Skipped int
}

// RunSheets renders every XY panel of the selected figures as a PNG under outDir.
// Diagram panels (hidden axes) are left out; an XY panel with no plottable layer
// gets a blank placeholder sheet so panel numbering stays contiguous.
func RunSheets(ctx context.Context, entries []figures.Entry, th style.Theme, outDir string, hints bool) ([]sheet, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	var out []sheet
	for _, e := range entries {
		fig, err := e.Build(th)
		if err != nil {
			return out, fmt.Errorf("build %s: %w", e.Name, err)
		}
		for pi, p := range fig.Panels {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			if p == nil || p.HideAxes {
				continue
			}
			ch, skipped := panelChart(fig, p)
			var img image.Image
			if len(ch.Series) == 0 {
				logging.Debugf("%s panel %d: nothing to plot (%d layers skipped)", fig.Name, pi, skipped)
				img = drawHint(blank(ch.Width, ch.Height), fmt.Sprintf("%s panel %d: no plottable layers", fig.Name, pi))
			} else {
				img, err = renderChart(ch)
				if err != nil {
					return out, fmt.Errorf("%s panel %d: %w", fig.Name, pi, err)
				}
				if hints {
					img = drawHint(img, fig.Caption)
				}
			}
			path := filepath.Join(outDir, fmt.Sprintf("%s_%d.png", fig.Name, pi))
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return out, fmt.Errorf("png encode %s: %w", path, err)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return out, fmt.Errorf("write %s: %w", path, err)
			}
			out = append(out, sheet{Path: path, Series: len(ch.Series), Skipped: skipped})
		}
	}
	return out, nil
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

type extent struct{ xmin, xmax, ymin, ymax float64 }

func (e *extent) add(xmin, xmax, ymin, ymax float64) {
	e.xmin, e.xmax = math.Min(e.xmin, xmin), math.Max(e.xmax, xmax)
	e.ymin, e.ymax = math.Min(e.ymin, ymin), math.Max(e.ymax, ymax)
}

func panelExtent(p *scene.Panel) extent {
	e := extent{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, l := range p.Layers {
		if b, ok := l.(scene.Bounded); ok {
			if x0, x1, y0, y1, ok := b.Bounds(); ok {
				e.add(x0, x1, y0, y1)
			}
		}
	}
	if math.IsInf(e.xmin, 0) {
		e = extent{0, 1, 0, 1}
	}
	if p.X.Fixed() {
		e.xmin, e.xmax = p.X.Min, p.X.Max
	} else {
		e.xmin, e.xmax = niceAxisBounds(e.xmin, e.xmax)
	}
	if p.Y.Fixed() {
		e.ymin, e.ymax = p.Y.Min, p.Y.Max
	} else {
		e.ymin, e.ymax = niceAxisBounds(e.ymin, e.ymax)
	}
	return e
}

func axisTicks(a scene.Axis, lo, hi float64) []chart.Tick {
	if len(a.Ticks) == 0 {
		return niceTicks(lo, hi, 6)
	}
	var out []chart.Tick
	for _, t := range a.Ticks {
		if t.Value < lo || t.Value > hi {
			continue
		}
		out = append(out, chart.Tick{Value: t.Value, Label: strings.ReplaceAll(t.Label, "\n", " ")})
	}
	if len(out) < 2 {
		return niceTicks(lo, hi, 6)
	}
	return out
}

func dashArray(d scene.Dash) []float64 {
	switch d {
	case scene.Dashed:
		return []float64{6, 4}
	case scene.Dotted:
		return []float64{2, 3}
	case scene.DashDot:
		return []float64{6, 3, 2, 3}
	}
	return nil
}

func lineStyle(s scene.Stroke) chart.Style {
	return chart.Style{
		StrokeColor:     chartColor(s.Color),
		StrokeWidth:     math.Max(s.Width, 1),
		StrokeDashArray: dashArray(s.Dash),
	}
}

// continuous pads single points so go-chart has an x range to work with.
func continuous(name string, xs, ys []float64, st chart.Style) chart.ContinuousSeries {
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1e-9}
		ys = []float64{ys[0], ys[0]}
	}
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: st}
}

func oneLine(s string) string { return strings.Join(strings.Fields(s), " ") }

// panelChart maps the panel's data layers onto go-chart series. Annotation layers
// have no go-chart counterpart and are counted as skipped.
func panelChart(fig *scene.Figure, p *scene.Panel) (chart.Chart, int) {
	e := panelExtent(p)
	var series []chart.Series
	skipped := 0
	for _, l := range p.Layers {
		switch v := l.(type) {
		case *scene.Line:
			if len(v.X) == 0 {
				continue
			}
			st := lineStyle(v.Stroke)
			if v.Marker != scene.MarkerNone {
				st.DotColor = st.StrokeColor
				st.DotWidth = 3
			}
			series = append(series, continuous(v.Name, v.X, v.Y, st))
		case *scene.Scatter:
			if len(v.X) == 0 {
				continue
			}
			col := v.Color
			if col == nil && len(v.Colors) > 0 {
				col = v.Colors[0]
			}
			st := pointStyle(chartColor(col))
			if v.Size > 0 {
				st.DotWidth = math.Min(math.Max(v.Size, 1.5), 6)
			}
			if len(v.Colors) > 0 {
				cols := v.Colors
				st.DotColorProvider = func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return chartColor(cols[index%len(cols)])
				}
			}
			series = append(series, continuous(v.Name, v.X, v.Y, st))
		case *scene.Bars:
			if v.Horizontal || len(v.Pos) == 0 {
				skipped++
				continue
			}
			series = append(series, barSteps(v))
		case *scene.ErrorBars:
			if len(v.X) == 0 {
				continue
			}
			series = append(series, continuous(v.Name, v.X, v.Y, pointStyle(chartColor(v.Stroke.Color))))
		case *scene.Band:
			if len(v.X) < 2 {
				skipped++
				continue
			}
			st := chart.Style{StrokeColor: chartColor(v.Fill), StrokeWidth: 1, StrokeDashArray: []float64{2, 2}}
			series = append(series,
				continuous(v.Name, v.X, v.Upper, st),
				continuous("", v.X, v.Lower, st))
		case *scene.RefLine:
			st := lineStyle(v.Stroke)
			if v.Vertical {
				series = append(series, continuous(v.Name, []float64{v.At, v.At}, []float64{e.ymin, e.ymax}, st))
			} else {
				series = append(series, continuous(v.Name, []float64{e.xmin, e.xmax}, []float64{v.At, v.At}, st))
			}
		default:
			skipped++
		}
	}

	title := p.Title
	if title == "" {
		title = fig.Title
	}
	w, h := chartSize(fig.Rows, fig.Cols)
	ch := chart.Chart{
		Title:      oneLine(title),
		TitleStyle: chart.Style{FontSize: 11},
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  oneLine(p.X.Label),
			Range: &chart.ContinuousRange{Min: e.xmin, Max: e.xmax},
			Ticks: axisTicks(p.X, e.xmin, e.xmax),
		},
		YAxis: chart.YAxis{
			Name:  oneLine(p.Y.Label),
			Range: &chart.ContinuousRange{Min: e.ymin, Max: e.ymax},
			Ticks: axisTicks(p.Y, e.ymin, e.ymax),
		},
		Series: series,
	}
	if p.Legend != nil && slices.ContainsFunc(series, func(s chart.Series) bool { return s.GetName() != "" }) {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch, skipped
}

// barSteps outlines vertical bars as one step series ordered by position. Bars on
// a zero base are filled down to the axis floor; stacked bars keep only the outline.
func barSteps(b *scene.Bars) chart.ContinuousSeries {
	idx := make([]int, len(b.Pos))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(i, j int) int {
		switch {
		case b.Pos[i] < b.Pos[j]:
			return -1
		case b.Pos[i] > b.Pos[j]:
			return 1
		}
		return 0
	})
	var xs, ys []float64
	stacked := false
	for _, i := range idx {
		base := 0.0
		if i < len(b.Base) {
			base = b.Base[i]
			stacked = stacked || base != 0
		}
		x0, x1 := b.Pos[i]-b.Width/2, b.Pos[i]+b.Width/2
		top := base + b.Values[i]
		xs = append(xs, x0, x0, x1, x1)
		ys = append(ys, base, top, top, base)
	}
	col := b.Color
	if col == nil && len(b.Colors) > 0 {
		col = b.Colors[0]
	}
	c := chartColor(col)
	st := chart.Style{StrokeColor: c, StrokeWidth: 1}
	if !stacked {
		st.FillColor = c.WithAlpha(120)
	}
	return chart.ContinuousSeries{Name: b.Name, XValues: xs, YValues: ys, Style: st}
}
