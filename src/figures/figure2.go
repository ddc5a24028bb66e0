package figures

import (
	"fmt"
	"image/color"
	"math"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/stats"
	"github.com/contact-shreyas/ALPS/src/style"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// TemporalTrends is figure 2: radiance growth, seasonality, hotspot growth and regional rates.
func TemporalTrends(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure2_temporal_trends", 14, 10, 2, 2)
	f.Title = "Temporal Trends in Light Pollution Intensity (2014-2025)"
	blue, green := th.C("blue", style.Blue), th.C("green", style.Green)
	orange, red := th.C("orange", style.Orange), th.C("red", style.Red)

	years := seq(2014, 2025)
	radiance := []float64{15.20, 15.52, 15.84, 16.16, 16.48, 16.80, 17.12, 17.44, 17.76, 18.08, 18.40, 18.72}
	sd := []float64{0.45, 0.48, 0.51, 0.53, 0.56, 0.58, 0.60, 0.62, 0.64, 0.66, 0.68, 0.70}

	a := f.Panels[0]
	a.Title = "(a) Annual Average Radiance Progression"
	a.X = scene.Axis{Label: "Year"}
	a.Y = scene.Axis{Label: "Radiance (nW/cm²/sr)", Min: 14, Max: 20}
	a.Grid = scene.GridBoth
	a.Add(
		&scene.ErrorBars{X: years, Y: radiance, Low: scale(sd, 2), High: scale(sd, 2), Stroke: scene.Pen(blue, 1.5), Cap: 5},
		&scene.Line{Name: "Mean Radiance ± 2σ", X: years, Y: radiance, Stroke: scene.Pen(blue, 2), Marker: scene.MarkerCircle, MarkerSize: 3},
		&scene.RefLine{Name: "LED Policy (2019)", Vertical: true, At: 2019, Stroke: scene.DashedPen(fade(red, 0.8), 2)},
		scene.Label(2020, 18.5, fmt.Sprintf("%+.1f%% growth", stats.GrowthPct(radiance[0], radiance[len(radiance)-1])), 9).
			At(scene.AlignLeft, scene.AlignBottom).Boxed(fade(style.Named("yellow"), 0.3), nil),
	)
	a.Legend = &scene.Legend{Auto: true, Position: scene.UpperLeft, FontSize: 9}

	mean := []float64{19.2, 19.5, 18.8, 17.5, 16.8, 14.2, 13.8, 14.0, 14.5, 16.0, 17.8, 18.9}
	iqr := []float64{1.2, 1.3, 1.1, 0.9, 0.8, 0.7, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2}
	xm := seq(0, 11)
	b := f.Panels[1]
	b.Title = "(b) Monthly Seasonality Patterns"
	b.X = scene.Axis{Label: "Month", Min: -0.6, Max: 11.6, Ticks: scene.Ticks(xm, monthNames)}
	b.Y = scene.Axis{Label: "Radiance (nW/cm²/sr)"}
	b.Grid = scene.GridBoth
	b.Add(
		&scene.Span{Name: "Winter Peak", Vertical: true, From: -0.5, To: 1.5, Fill: fade(style.Named("blue"), 0.15)},
		&scene.Span{Name: "Monsoon Dip", Vertical: true, From: 5.5, To: 8.5, Fill: fade(style.MustParse("#00FFFF"), 0.15)},
		&scene.Band{Name: "IQR", X: xm, Lower: add(mean, scale(iqr, -1)), Upper: add(mean, iqr), Fill: fade(green, 0.3)},
		&scene.Line{Name: "Mean Radiance", X: xm, Y: mean, Stroke: scene.Pen(green, 2), Marker: scene.MarkerCircle, MarkerSize: 3},
		&scene.RefLine{Name: "Annual Mean", At: 17, Stroke: scene.DashedPen(fade(style.Named("gray"), 0.5), 1)},
	)
	b.Legend = &scene.Legend{Auto: true, Position: scene.UpperRight, FontSize: 9}

	hotspots := []float64{12450, 12690, 12930, 13170, 13410, 13650, 13890, 14130, 14370, 14610, 14850, 15090}
	idx := seq(0, 11)
	ea, eb, err := stats.ExpFit(idx, hotspots)
	if err != nil {
		return nil, fmt.Errorf("hotspot fit: %w", err)
	}
	fit := stats.Map(idx, func(x float64) float64 { return ea * math.Exp(eb*x) })
	c := f.Panels[2]
	c.Title = "(c) Cumulative Hotspot Evolution"
	c.X = scene.Axis{Label: "Year"}
	c.Y = scene.Axis{Label: "Cumulative Hotspot Count"}
	c.Grid = scene.GridBoth
	c.Add(
		&scene.Scatter{Name: "Observed Hotspots", X: years, Y: hotspots, Color: orange, Size: 4},
		&scene.Line{Name: fmt.Sprintf("Exponential Fit (R² = %.3f)", stats.RSquared(hotspots, fit)), X: years, Y: fit, Stroke: scene.Pen(red, 2)},
	)
	c.Legend = &scene.Legend{Auto: true, Position: scene.UpperLeft, FontSize: 9}

	states := []string{"Maharashtra", "Gujarat", "Karnataka", "Tamil Nadu", "UP",
		"MP", "Rajasthan", "West Bengal", "Bihar", "Andhra Pradesh"}
	rates := []float64{35.2, 33.8, 31.5, 29.2, 27.1, 18.5, 16.8, 15.2, 13.9, 12.4}
	bands := make([]color.Color, len(rates))
	for i, g := range rates {
		name := "lightgreen"
		switch {
		case g > 30:
			name = "darkred"
		case g > 20:
			name = "orange"
		case g > 15:
			name = "yellow"
		}
		bands[i] = fade(style.Named(name), 0.8)
	}
	ys := seq(0, len(states)-1)
	d := f.Panels[3]
	d.Title = "(d) Regional Growth Rate Variation"
	d.X = scene.Axis{Label: "Radiance Growth Rate (%)", Min: 0, Max: 38}
	d.Y = scene.Axis{Min: -0.6, Max: 9.6, Ticks: scene.Ticks(ys, states)}
	d.Grid = scene.GridX
	d.Add(
		&scene.Bars{Name: "growth", Pos: ys, Values: rates, Width: 0.8, Horizontal: true, Colors: bands},
		&scene.RefLine{Vertical: true, At: 30, Stroke: scene.DashedPen(fade(style.Named("red"), 0.5), 1)},
		scene.Label(31, 8, "Industrial States", 8).In(style.Named("darkred")).At(scene.AlignLeft, scene.AlignBottom),
		scene.Label(16, 2, "Agricultural States", 8).In(style.Named("green")).At(scene.AlignLeft, scene.AlignBottom),
	)
	return f, nil
}
