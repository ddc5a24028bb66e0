package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/contact-shreyas/ALPS/src/figures"
	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

// TestSheetWidths_SameForEveryPanel ensures each sheet of a figure shares the configured width.
func TestSheetWidths_SameForEveryPanel(t *testing.T) {
	sheetWidthOverride = 900
	defer func() { sheetWidthOverride = 0 }()

	entries, err := figures.Select([]string{"fig2", "fig6"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	outDir := t.TempDir()
	sheets, err := RunSheets(context.Background(), entries, style.DefaultTheme(), outDir, true)
	if err != nil {
		t.Fatalf("RunSheets: %v", err)
	}
	if len(sheets) < 4 {
		t.Fatalf("expected a sheet per panel, got %d", len(sheets))
	}
	for _, s := range sheets {
		w, _ := decodeSize(t, s.Path)
		if w != 900 {
			t.Fatalf("%s: width %d, want 900", s.Path, w)
		}
		if !strings.HasPrefix(filepath.Base(s.Path), "figure2_") && !strings.HasPrefix(filepath.Base(s.Path), "figure6_") {
			t.Fatalf("unexpected sheet name %s", s.Path)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "figure2_temporal_trends_0.png")); err != nil {
		t.Fatalf("expected first panel sheet: %v", err)
	}
}

func TestRunSheets_SkipsDiagrams(t *testing.T) {
	entries, err := figures.Select([]string{"fig3"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	sheets, err := RunSheets(context.Background(), entries, style.DefaultTheme(), t.TempDir(), false)
	if err != nil {
		t.Fatalf("RunSheets: %v", err)
	}
	if len(sheets) != 0 {
		t.Fatalf("framework diagram has no XY panels, got %d sheets", len(sheets))
	}
}

func TestRunSheets_PlaceholderForEmptyPanel(t *testing.T) {
	entry := figures.Entry{Name: "figure_notes", Build: func(style.Theme) (*scene.Figure, error) {
		f := scene.NewFigure("figure_notes", 6, 4, 1, 2)
		f.Panels[0].Add(&scene.Line{X: []float64{0, 1}, Y: []float64{0, 1}, Stroke: scene.Pen(style.Blue, 1)})
		f.Panels[1].Add(scene.Label(0.5, 0.5, "annotation only", 8))
		return f, nil
	}}
	sheets, err := RunSheets(context.Background(), []figures.Entry{entry}, style.DefaultTheme(), t.TempDir(), false)
	if err != nil {
		t.Fatalf("RunSheets: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("expected a sheet per XY panel, got %d", len(sheets))
	}
	ph := sheets[1]
	if ph.Series != 0 || ph.Skipped != 1 || filepath.Base(ph.Path) != "figure_notes_1.png" {
		t.Fatalf("unexpected placeholder sheet %+v", ph)
	}
	w, h := decodeSize(t, ph.Path)
	ww, hh := decodeSize(t, sheets[0].Path)
	if w != ww || h != hh {
		t.Fatalf("placeholder %dx%d, chart sheet %dx%d", w, h, ww, hh)
	}
}

func TestPanelChart_CountsSkippedLayers(t *testing.T) {
	f := scene.NewFigure("figure_sheet", 6, 4, 1, 1)
	p := f.Panels[0]
	p.Add(
		&scene.Line{Name: "trend", X: []float64{0, 1, 2}, Y: []float64{1, 3, 2}, Stroke: scene.Pen(style.Blue, 2)},
		&scene.Bars{Name: "counts", Pos: []float64{2, 0, 1}, Values: []float64{1, 2, 3}, Width: 0.5, Color: style.Orange},
		&scene.RefLine{At: 2.5, Stroke: scene.DashedPen(style.Red, 1)},
		scene.Label(1, 1, "note", 8),
		&scene.Box{X: 0, Y: 0, W: 1, H: 1},
	)
	ch, skipped := panelChart(f, p)
	if len(ch.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(ch.Series))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped layers, got %d", skipped)
	}
	bars := ch.Series[1].(chart.ContinuousSeries)
	if bars.XValues[0] != -0.25 || bars.XValues[len(bars.XValues)-1] != 2.25 {
		t.Fatalf("bar steps not sorted by position: %v", bars.XValues)
	}
	if _, err := renderChart(ch); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestNiceTicksWithinBounds(t *testing.T) {
	ticks := niceTicks(0.3, 9.7, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %v", ticks)
	}
	for _, tk := range ticks {
		if tk.Value < 0.3 || tk.Value > 9.7 {
			t.Fatalf("tick %v outside range", tk.Value)
		}
	}
	lo, hi := niceAxisBounds(12, 87)
	if lo > 12 || hi < 87 {
		t.Fatalf("bounds [%v,%v] do not cover data", lo, hi)
	}
	if formatTick(0) != "0" || formatTick(1500) != "1500" || formatTick(2.5) != "2.50" {
		t.Fatalf("unexpected tick formatting")
	}
}

func TestDrawHintTruncatesLongText(t *testing.T) {
	img := blank(120, 40)
	out := drawHint(img, strings.Repeat("caption ", 40))
	if out.Bounds() != img.Bounds() {
		t.Fatalf("hint changed image bounds")
	}
	// The hint background darkens the bottom-left corner.
	if c := color.RGBAModel.Convert(out.At(4, 36)).(color.RGBA); c.R > 18 {
		t.Fatalf("expected hint background at bottom-left, got %v", c)
	}
	if drawHint(img, "   ") != img {
		t.Fatalf("blank hint should return the input image")
	}
}

func TestCommandUnknownFigure(t *testing.T) {
	cmd := newCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--out", t.TempDir(), "fig99"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected unknown figure error")
	}
	// main prints the error once; cobra stays quiet.
	if strings.Contains(out.String(), "Error:") {
		t.Fatalf("command printed the error itself: %q", out.String())
	}
}
