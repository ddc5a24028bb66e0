package render

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func TestSansFont_DistinctNamePerStyle(t *testing.T) {
	seen := map[string]bool{}
	for _, bold := range []bool{false, true} {
		for _, italic := range []bool{false, true} {
			f := sansFont(bold, italic)
			require.Zero(t, f.Weight, "weight must stay regular for the PDF backend")
			require.Zero(t, f.Style, "style must stay regular for the PDF backend")
			require.False(t, seen[f.Name()], "duplicate font name %s", f.Name())
			seen[f.Name()] = true
			require.True(t, font.DefaultCache.Has(f), "%s not registered", f.Name())
		}
	}
	require.Len(t, sansFaces(), 3)
}

func TestRender_PDFWithStyledText(t *testing.T) {
	f := scene.NewFigure("styled_text", 4, 3, 1, 1)
	f.Title = "Bold title"
	f.Subtitle = "Italic subtitle"
	f.Panels[0].Add(
		&scene.Line{X: []float64{0, 1}, Y: []float64{0, 1}, Stroke: scene.Pen(style.Blue, 1)},
		scene.Label(0.5, 0.5, "bold italic", 9).B().I(),
	)
	var buf bytes.Buffer
	require.NoError(t, New(testTheme()).Render(context.Background(), f, PDF, &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRender_EveryCatalogFigureAsPDF(t *testing.T) {
	r := New(testTheme())
	for _, e := range figures.Catalog() {
		t.Run(e.Name, func(t *testing.T) {
			fig, err := e.Build(r.Theme)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, r.Render(context.Background(), fig, PDF, &buf))
			require.Positive(t, buf.Len())
		})
	}
}

func TestLegend_RowsDoNotOverlap(t *testing.T) {
	labels := []string{"alpha", "bravo ± 2σ", "charlie (2019)", "delta"}
	for _, pos := range []scene.LegendPos{scene.UpperLeft, scene.LowerLeft, scene.UpperRight} {
		f := scene.NewFigure("legend_rows", 6, 4, 1, 1)
		p := f.Panels[0]
		p.X = scene.Axis{Min: 0, Max: 1}
		p.Y = scene.Axis{Min: 0, Max: 1}
		p.Add(&scene.Line{X: []float64{0, 1}, Y: []float64{0, 1}, Stroke: scene.Pen(style.Blue, 1)})
		lg := &scene.Legend{Position: pos, FontSize: 8}
		for _, l := range labels {
			lg.Entries = append(lg.Entries, scene.LegendEntry{Label: l, Color: style.Orange})
		}
		p.Legend = lg

		r := New(testTheme())
		rec := &recorder.Canvas{}
		require.NoError(t, r.draw(context.Background(), f, draw.NewCanvas(rec, 6*vg.Inch, 4*vg.Inch)))

		want := map[string]bool{}
		for _, l := range labels {
			want[l] = true
		}
		var ys []vg.Length
		for _, a := range rec.Actions {
			if fs, ok := a.(*recorder.FillString); ok && want[fs.String] {
				ys = append(ys, fs.Point.Y)
			}
		}
		require.Len(t, ys, len(labels))
		sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })

		// Each row's ink spans descent below to ascent above its baseline.
		sty := textStyle(r.Theme.Sized(8), false, false, nil)
		ext := sty.FontExtents()
		rowH := ext.Ascent + ext.Descent
		for i := 1; i < len(ys); i++ {
			require.GreaterOrEqual(t, float64(ys[i]-ys[i-1]), float64(rowH), "legend rows %d and %d overlap at %v", i-1, i, pos)
		}
	}
}
