package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func testTheme() style.Theme {
	th := style.DefaultTheme()
	th.DPI = 50
	return th
}

// sampleFigure exercises every layer kind on a two-panel grid.
func sampleFigure() *scene.Figure {
	f := scene.NewFigure("render_sample", 6, 4, 1, 2)
	f.Title = "Sample"
	f.Subtitle = "every layer kind"
	f.Caption = "A caption long enough to wrap across the bottom strip of a six inch wide canvas when set at eight points in italics."
	a := f.Panels[0]
	a.Title = "(a) data"
	a.X.Label, a.Y.Label = "x", "y"
	a.Grid = scene.GridBoth
	a.Legend = &scene.Legend{Auto: true, Entries: []scene.LegendEntry{{Label: "extra", Color: style.Green}}}
	a.Add(
		&scene.Span{Vertical: true, From: 1, To: 2, Fill: style.WithAlpha(style.Blue, 0.1)},
		&scene.Band{Name: "band", X: []float64{0, 1, 2, 3}, Lower: []float64{0, 1, 1, 2}, Upper: []float64{2, 3, 3, 4}, Fill: style.WithAlpha(style.Orange, 0.2)},
		&scene.Line{Name: "line", X: []float64{0, 1, 2, 3}, Y: []float64{1, 2, 2, 3}, Stroke: scene.Pen(style.Blue, 1.5), Marker: scene.MarkerSquare},
		&scene.Scatter{Name: "pts", X: []float64{0.5, 1.5, 2.5}, Y: []float64{1, 2, 3}, Colors: []color.Color{style.Red, style.Green, style.Purple}, Marker: scene.MarkerStar},
		&scene.ErrorBars{X: []float64{1, 2}, Y: []float64{2, 2}, Low: []float64{0.5, 0.5}, High: []float64{0.5, 0.5}, Cap: 2},
		&scene.RefLine{Name: "ref", At: 2.5, Stroke: scene.DashedPen(style.FlatRed, 1)},
		&scene.Polygon{X: []float64{0, 1, 0.5}, Y: []float64{3, 3, 4}, Fill: style.Cloud, Stroke: scene.Pen(style.Midnight, 1)},
		&scene.Arrow{X1: 0, Y1: 0, X2: 2, Y2: 1, Double: true},
		scene.AxesLabel(0.02, 0.98, "boxed\nnote", 7).At(scene.AlignLeft, scene.AlignTop).Boxed(style.White, style.Midnight),
	)
	b := f.Panels[1]
	b.X = scene.Axis{Min: 0, Max: 10, Ticks: scene.Ticks([]float64{0, 5, 10}, []string{"lo", "mid", "hi"}), TickRotation: 45}
	b.Y = scene.Axis{Min: 0, Max: 10}
	b.Add(
		&scene.Heatmap{Values: [][]float64{{0.1, 0.9}, {0.5, 0.3}}, X0: 2, Y0: 2, CellW: 2, CellH: 2, Min: 0, Max: 1, Map: style.YlOrRd(), LabelFormat: "%.1f"},
		&scene.ColorBar{Map: style.Diverging(), Min: -1, Max: 1, Ticks: []float64{-1, 0, 1}, X0: 0.9, X1: 0.95, Y0: 0.1, Y1: 0.9, Label: "r"},
		&scene.Bars{Pos: []float64{6, 7}, Values: []float64{3, 12}, Width: 0.6, Colors: []color.Color{style.Blue, style.Orange}, Err: []float64{0.5, 1}},
		&scene.Bars{Pos: []float64{8}, Values: []float64{2}, Base: []float64{1}, Width: 0.6, Horizontal: true, Color: style.Green},
		scene.RoundRect(1, 7, 3, 2, 4, style.Lighten(style.FlatBlue, 0.7), scene.Pen(style.FlatBlue, 1.5)),
		&scene.Circle{X: 8, Y: 8, R: 1, Fill: style.Cloud, Stroke: scene.DottedPen(style.Asbestos, 1)},
		&scene.Wedge{X: 8, Y: 8, R: 1, From: 0, To: 240, Inner: 0.6, Fill: style.FlatGreen},
		scene.Label(5, 9.5, "rotated", 8).Rotate(90).B().I(),
	)
	return f
}

func TestRender_AllFormatsNonEmpty(t *testing.T) {
	r := New(testTheme())
	for _, f := range []Format{PDF, PNG, SVG, EPS} {
		var buf bytes.Buffer
		if err := r.Render(context.Background(), sampleFigure(), f, &buf); err != nil {
			t.Fatalf("render %s: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("render %s produced no bytes", f)
		}
	}
}

func TestRender_PNGSizeFollowsInchesAndDPI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(testTheme()).Render(context.Background(), sampleFigure(), PNG, &buf))
	img, _, err := image.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	if b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("png size = %dx%d, want 300x200", b.Dx(), b.Dy())
	}
}

func TestRender_RejectsInvalidFigure(t *testing.T) {
	f := sampleFigure()
	f.Name = ""
	err := New(testTheme()).Render(context.Background(), f, PDF, &bytes.Buffer{})
	require.ErrorIs(t, err, scene.ErrInvalid)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(testTheme()).Render(ctx, sampleFigure(), PNG, &bytes.Buffer{})
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRenderFile_WritesEachFormatAtomically(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "figures")
	files, err := New(testTheme()).RenderFile(context.Background(), sampleFigure(), dir, []Format{PDF, PNG})
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, w := range files {
		st, err := os.Stat(w.Path)
		require.NoError(t, err)
		require.Equal(t, st.Size(), w.Bytes)
		require.Positive(t, w.Bytes)
	}
	require.Equal(t, filepath.Join(dir, "render_sample.pdf"), files[0].Path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	require.Len(t, entries, 2)
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" PDF, png,pdf ,svg")
	require.NoError(t, err)
	require.Equal(t, []Format{PDF, PNG, SVG}, got)

	_, err = ParseFormats("pdf,gif")
	require.ErrorIs(t, err, ErrUnknownFormat)
	_, err = ParseFormats(" , ")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWrap(t *testing.T) {
	sty := textStyle(8, false, true, nil)
	lines := wrap("one two three four five six seven eight nine ten", sty, sty.Width("one two three"))
	if len(lines) < 3 {
		t.Fatalf("expected wrapping into several lines, got %q", lines)
	}
	for _, l := range lines {
		if sty.Width(l) > sty.Width("one two three") {
			t.Fatalf("line %q wider than limit", l)
		}
	}
	require.Equal(t, []string{"a", "", "b"}, wrap("a\n\nb", sty, 1000))
}
