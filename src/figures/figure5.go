package figures

import (
	"fmt"
	"image/color"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/stats"
	"github.com/contact-shreyas/ALPS/src/style"
)

var shapFeatures = []string{"Population Density", "Energy Consumption", "Urban Area Index",
	"Cloud Cover", "Industrial Activity", "Road Lighting Density",
	"Traffic Density", "Temperature", "Humidity", "Seasonal Patterns"}

var shapMeans = []float64{0.309, 0.273, 0.243, 0.214, 0.208, 0.206, 0.189, 0.181, 0.153, 0.099}

const shapSamples = 1000

// ShapSummary is figure 5: jittered SHAP distributions coloured by feature value.
func ShapSummary(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure5_shap_summary", 10, 8, 1, 1)
	p := f.Panels[0]
	p.Title = "SHAP Feature Importance Summary (2016-2025)"
	p.X = scene.Axis{Label: "SHAP Value (Impact on Light Pollution Index)", Min: -0.1, Max: 0.75}
	p.Grid = scene.GridX

	s := stats.NewSampler(stats.DefaultSeed)
	shap := make([][]float64, len(shapMeans))
	value := make([][]float64, len(shapMeans))
	for i, m := range shapMeans {
		shap[i] = s.Normal(m, m*0.3, shapSamples)
		value[i] = s.Beta(2, 2, shapSamples)
	}

	cmap := style.Diverging()
	n := len(shapFeatures)
	ticks := make([]scene.Tick, n)
	p.Add(&scene.RefLine{Vertical: true, At: 0, Stroke: scene.Pen(fade(style.Black, 0.5), 1)})
	for row := 0; row < n; row++ {
		idx := n - 1 - row
		jitter := s.Normal(float64(row), 0.15, shapSamples)
		cols := make([]color.Color, shapSamples)
		for k, v := range value[idx] {
			cols[k] = fade(cmap.At(v), 0.6)
		}
		p.Add(&scene.Scatter{Name: shapFeatures[idx], X: shap[idx], Y: jitter, Colors: cols, Size: 1.6})
		ticks[row] = scene.Tick{Value: float64(row), Label: shapFeatures[idx]}
	}
	for row := 0; row < n; row++ {
		idx := n - 1 - row
		p.Add(scene.Label(0.32, float64(row), fmt.Sprintf("%.3f", shapMeans[idx]), 8).
			At(scene.AlignLeft, scene.AlignMiddle).Boxed(fade(style.White, 0.7), nil))
	}
	p.Y = scene.Axis{Min: -0.8, Max: float64(n) - 0.2, Ticks: ticks}
	p.Add(&scene.ColorBar{Map: cmap, Min: 0, Max: 1, Ticks: []float64{0, 0.5, 1}, TickFormat: "%.1f",
		Label: "Feature Value\n(Low → High)", X0: 0.92, X1: 0.95, Y0: 0.1, Y1: 0.9, LabelsOnLeft: true})
	return f, nil
}
