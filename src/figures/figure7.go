package figures

import (
	"fmt"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/stats"
	"github.com/contact-shreyas/ALPS/src/style"
)

// UrbanizationBurden is figure 7: exposure by LPI zone, sensitive-site exceedances and factor shares.
func UrbanizationBurden(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure7_urbanization_burden", 18, 5, 1, 3)
	f.Title = "Effect of Urbanization on Light Pollution Burden"

	years := seq(2016, 2025)
	low := []float64{62.5, 59.8, 57.2, 55.1, 52.8, 50.5, 48.2, 45.9, 43.6, 41.3}
	med := []float64{19.3, 19.9, 20.4, 21.6, 21.8, 22.0, 22.2, 22.4, 22.6, 22.8}
	lowMed := add(low, med)

	a := f.Panels[0]
	a.Title = "(a) Population Exposure by LPI Zone"
	a.X = scene.Axis{Label: "Year", Min: 2016, Max: 2025}
	a.Y = scene.Axis{Label: "Population Percentage (%)", Min: 0, Max: 100}
	a.Grid = scene.GridY
	a.Add(
		&scene.Band{Name: "Low LPI (<15)", X: years, Lower: fill(len(years), 0), Upper: low, Fill: fade(style.FlatGreen, 0.7)},
		&scene.Band{Name: "Medium LPI (15-25)", X: years, Lower: low, Upper: lowMed, Fill: fade(style.FlatOrng, 0.7)},
		&scene.Band{Name: "High LPI (>25)", X: years, Lower: lowMed, Upper: fill(len(years), 100), Fill: fade(style.FlatRed, 0.7)},
		&scene.Arrow{X1: 2021.6, Y1: 77, X2: 2025, Y2: 85, Stroke: scene.Pen(style.Named("red"), 1.5)},
		scene.Label(2021, 75, "35.9% in high-LPI zones\n(47.2M residents)", 8).Boxed(fade(style.Named("yellow"), 0.5), nil),
	)
	a.Legend = &scene.Legend{Auto: true, Position: scene.LowerLeft, FontSize: 9}

	yb := seq(2022, 2025)
	hospitals := []float64{22.3, 15.9, 12.7, 9.5}
	b := f.Panels[1]
	b.Title = "(b) Exceedances Near Sensitive Sites"
	b.X = scene.Axis{Label: "Year", Min: 2021.8, Max: 2025.2, Ticks: scene.Ticks(yb, []string{"2022", "2023", "2024", "2025"})}
	b.Y = scene.Axis{Label: "Exceedance Rate (%)"}
	b.Grid = scene.GridBoth
	for _, s := range []struct {
		name string
		vals []float64
		m    scene.Marker
		key  string
	}{
		{"Residential", []float64{34.3, 27.5, 24.7, 21.9}, scene.MarkerCircle, "blue"},
		{"Hospitals", hospitals, scene.MarkerSquare, "red"},
		{"Schools", []float64{27.9, 22.2, 20.1, 18.0}, scene.MarkerTriangle, "green"},
		{"Wildlife Zones", []float64{63.0, 56.1, 51.6, 47.1}, scene.MarkerDiamond, "orange"},
		{"Elderly (65+)", []float64{14.4, 11.2, 10.0, 8.8}, scene.MarkerTriangleDown, "purple"},
	} {
		b.Add(&scene.Line{Name: s.name, X: yb, Y: s.vals, Stroke: scene.Pen(paletteColor(th, s.key), 2), Marker: s.m, MarkerSize: 3})
	}
	improvement := -stats.GrowthPct(hospitals[0], hospitals[len(hospitals)-1])
	b.Add(
		&scene.Arrow{X1: 2024.6, Y1: 6.6, X2: 2025, Y2: hospitals[len(hospitals)-1], Stroke: scene.Pen(style.Named("red"), 1)},
		scene.Label(2024.5, 6, fmt.Sprintf("-%.1f%%", improvement), 8).B().In(style.Named("red")).At(scene.AlignLeft, scene.AlignTop),
	)
	b.Legend = &scene.Legend{Auto: true, Position: scene.UpperRight, FontSize: 9}

	env := []float64{28.1, 26.1, 26.1}
	anth := []float64{67.5, 69.2, 69.2}
	inter := []float64{4.4, 4.7, 4.7}
	xc := seq(0, 2)
	c := f.Panels[2]
	c.Title = "(c) Factor Decomposition Analysis"
	c.X = scene.Axis{Label: "Year", Min: -0.5, Max: 2.5, Ticks: scene.Ticks(xc, []string{"2023", "2024", "2025"})}
	c.Y = scene.Axis{Label: "Contribution (%)", Min: 0, Max: 100}
	c.Grid = scene.GridY
	c.Add(
		&scene.Bars{Name: "Environmental (A)", Pos: xc, Values: env, Width: 0.6, Color: fade(paletteColor(th, "blue"), 0.8)},
		&scene.Bars{Name: "Anthropogenic (F)", Pos: xc, Values: anth, Base: env, Width: 0.6, Color: fade(paletteColor(th, "orange"), 0.8)},
		&scene.Bars{Name: "Interaction (0.5×I_E,H)", Pos: xc, Values: inter, Base: add(env, anth), Width: 0.6, Color: fade(paletteColor(th, "green"), 0.8)},
	)
	for i := range xc {
		c.Add(
			scene.Label(xc[i], env[i]/2, fmt.Sprintf("%.1f%%", env[i]), 9).B(),
			scene.Label(xc[i], env[i]+anth[i]/2, fmt.Sprintf("%.1f%%", anth[i]), 9).B().In(style.White),
		)
	}
	c.Legend = &scene.Legend{Auto: true, Position: scene.UpperLeft, FontSize: 9}
	return f, nil
}
