package figures

import (
	"fmt"
	"image/color"
	"math"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
	"gonum.org/v1/gonum/floats"
)

// ModelPerformance is figure 8: normalized radar, efficiency trade-off and migration R².
func ModelPerformance(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure8_model_performance", 18, 5, 1, 3)
	f.Title = "Machine Learning Model Performance Benchmarking"

	models := []string{"SVM", "ANN", "XGBoost", "LightGBM"}
	r2 := []float64{0.847, 0.912, 0.945, 0.952}
	rmse := []float64{0.179, 0.134, 0.105, 0.095}
	mape := []float64{8.4, 5.7, 4.2, 3.8}
	train := []float64{45.2, 127.8, 89.3, 56.7}
	migration := []float64{0.792, 0.856, 0.918, 0.934}
	cols := []color.Color{paletteColor(th, "blue"), paletteColor(th, "orange"), paletteColor(th, "green"), paletteColor(th, "red")}

	inverse := func(xs []float64) []float64 {
		m := floats.Max(xs)
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = 1 - v/m
		}
		return out
	}
	categories := []string{"R²", "Speed", "Low Error", "Precision"}
	metrics := [][]float64{r2, inverse(train), inverse(mape), inverse(rmse)}

	a := f.Panels[0]
	a.Title = "(a) Normalized Performance Radar"
	a.X = scene.Axis{Min: -1.35, Max: 1.35}
	a.Y = scene.Axis{Min: -1.35, Max: 1.35}
	a.HideAxes = true
	radar(a, categories, metrics, models, cols)

	b := f.Panels[1]
	b.Title = "(b) Efficiency-Accuracy Trade-off\n(bubble size = MAPE)"
	b.X = scene.Axis{Label: "Training Time (seconds)", Min: 30, Max: 140}
	b.Y = scene.Axis{Label: "R² Score", Min: 0.82, Max: 0.96}
	b.Grid = scene.GridBoth
	last := len(models) - 1
	sizes := make([]float64, last)
	for i := range sizes {
		sizes[i] = math.Sqrt(mape[i]*50) / 2
	}
	b.Add(
		&scene.Scatter{Name: "models", X: train[:last], Y: r2[:last], Sizes: sizes,
			Colors: []color.Color{fade(cols[0], 0.6), fade(cols[1], 0.6), fade(cols[2], 0.6)},
			Edge: scene.Pen(style.Black, 1.5)},
		&scene.Scatter{Name: "LightGBM (Optimal)", X: train[last:], Y: r2[last:], Size: math.Sqrt(mape[last]*50) / 2,
			Color: fade(cols[last], 0.8), Marker: scene.MarkerStar, Edge: scene.Pen(style.Black, 2)},
	)
	for i, m := range models {
		t := scene.Label(train[i]+2, r2[i]+0.003, m, 9).At(scene.AlignLeft, scene.AlignBottom)
		if i == last {
			t.B()
		}
		b.Add(t)
	}
	b.Legend = &scene.Legend{Entries: []scene.LegendEntry{marker("LightGBM (Optimal)", cols[last], scene.MarkerStar)}, FontSize: 9}

	xm := seq(0, len(models)-1)
	c := f.Panels[2]
	c.Title = "(c) Generalization Performance"
	c.X = scene.Axis{Min: -0.6, Max: 3.6, Ticks: scene.Ticks(xm, models)}
	c.Y = scene.Axis{Label: "Migration R² (Cross-Region)", Min: 0.75, Max: 0.95}
	c.Grid = scene.GridY
	barCols := make([]color.Color, len(cols))
	for i, col := range cols {
		barCols[i] = fade(col, 0.7)
	}
	c.Add(
		&scene.Bars{Name: "migration_r2", Pos: xm, Values: migration, Width: 0.8, Colors: barCols},
		&scene.RefLine{Name: "Target: 93% retention", At: 0.93, Stroke: scene.DashedPen(fade(style.Named("red"), 0.7), 2)},
	)
	for i, v := range migration {
		c.Add(scene.Label(xm[i], v, fmt.Sprintf("%.3f", v), 9).B().At(scene.AlignCenter, scene.AlignBottom))
	}
	c.Legend = &scene.Legend{Auto: true, FontSize: 9}
	return f, nil
}

// radar draws a polar chart on a unit-radius Cartesian panel. Axis k starts at
// east and proceeds counter-clockwise.
func radar(p *scene.Panel, categories []string, metrics [][]float64, names []string, cols []color.Color) {
	n := len(categories)
	angle := func(k int) float64 { return 2 * math.Pi * float64(k) / float64(n) }
	grid := scene.DottedPen(fade(style.Named("gray"), 0.5), 0.8)
	for _, r := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		p.Add(&scene.Circle{R: r, Stroke: grid})
	}
	for k, cat := range categories {
		th := angle(k)
		p.Add(scene.Seg(0, 0, math.Cos(th), math.Sin(th), grid))
		h := scene.AlignCenter
		switch c := math.Cos(th); {
		case c > 0.1:
			h = scene.AlignLeft
		case c < -0.1:
			h = scene.AlignRight
		}
		p.Add(scene.Label(1.12*math.Cos(th), 1.12*math.Sin(th), cat, 10).At(h, scene.AlignMiddle))
	}
	entries := make([]scene.LegendEntry, len(names))
	for i, name := range names {
		xs := make([]float64, n+1)
		ys := make([]float64, n+1)
		for k := 0; k <= n; k++ {
			v := metrics[k%n][i]
			xs[k] = v * math.Cos(angle(k%n))
			ys[k] = v * math.Sin(angle(k%n))
		}
		p.Add(
			&scene.Polygon{Name: name + "_area", X: xs[:n], Y: ys[:n], Fill: fade(cols[i], 0.15)},
			&scene.Line{Name: name, X: xs, Y: ys, Stroke: scene.Pen(cols[i], 2), Marker: scene.MarkerCircle, MarkerSize: 3},
		)
		entries[i] = line(name, cols[i], false)
	}
	p.Legend = &scene.Legend{Entries: entries, Position: scene.UpperRight, FontSize: 9}
}
