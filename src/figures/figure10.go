package figures

import (
	"fmt"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/stats"
	"github.com/contact-shreyas/ALPS/src/style"
)

// annualFactors is the 2014-2025 table the correlation matrix is computed from.
var annualFactors = []struct {
	name string
	vals []float64
}{
	{"Avg Radiance", []float64{15.20, 15.52, 15.84, 16.16, 16.48, 16.80, 17.12, 17.44, 17.76, 18.08, 18.40, 18.72}},
	{"Total Hotspots", []float64{12450, 12690, 12930, 13170, 13410, 13650, 13890, 14130, 14370, 14610, 14850, 15090}},
	{"Temperature", []float64{24.7, 23.3, 23.6, 25.4, 27.0, 26.9, 25.3, 23.6, 23.3, 24.8, 26.7, 27.1}},
	{"Humidity", []float64{57.2, 62.4, 70.0, 73.0, 68.6, 61.0, 57.0, 60.4, 68.0, 72.9, 70.5, 63.1}},
	{"Cloud Cover", []float64{56.9, 54.8, 50.2, 44.4, 38.7, 34.6, 33.0, 34.3, 38.3, 43.9, 49.8, 54.5}},
	{"Pop Density", stats.Arange(400, 566, 15)},
	{"Energy Usage", stats.Arange(1200, 2136, 85)},
}

// CorrelationMatrix is figure 10: Pearson correlations between the annual factors.
func CorrelationMatrix(th style.Theme) (*scene.Figure, error) {
	cols := make([][]float64, len(annualFactors))
	names := make([]string, len(annualFactors))
	for i, fc := range annualFactors {
		cols[i], names[i] = fc.vals, fc.name
	}
	corr, err := stats.CorrelationMatrix(cols)
	if err != nil {
		return nil, fmt.Errorf("correlation matrix: %w", err)
	}

	n := len(names)
	f := scene.NewFigure("figure10_correlation_matrix", 10, 8, 1, 1)
	p := f.Panels[0]
	p.Title = "Correlation Matrix: Light Pollution and Environmental/Socioeconomic Factors\n(2014-2025, n=12 years)"
	xt := seq(0, n-1)
	yt := make([]scene.Tick, n)
	for r, name := range names {
		yt[r] = scene.Tick{Value: float64(n - 1 - r), Label: name}
	}
	p.X = scene.Axis{Min: -0.5, Max: float64(n) + 0.7, Ticks: scene.Ticks(xt, names), TickRotation: 45}
	p.Y = scene.Axis{Min: -0.5, Max: float64(n) - 0.5, Ticks: yt}

	cmap := style.Diverging()
	p.Add(
		&scene.Heatmap{Name: "pearson_r", Values: corr, X0: 0, Y0: float64(n - 1), CellW: 1, CellH: -1,
			Min: -1, Max: 1, Map: cmap, LabelFormat: "%.3f", LabelSize: 9, Edge: scene.Pen(style.White, 1.5)},
		&scene.ColorBar{Map: cmap, Min: -1, Max: 1, Ticks: []float64{-1, -0.5, 0, 0.5, 1}, TickFormat: "%.1f",
			Label: "Pearson Correlation (r)", X0: 0.89, X1: 0.92, Y0: 0.1, Y1: 0.9},
	)
	return f, nil
}
