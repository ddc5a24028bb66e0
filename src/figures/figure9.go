package figures

import (
	"fmt"
	"image/color"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/stats"
	"github.com/contact-shreyas/ALPS/src/style"
)

var (
	uiBorder = style.Silver
	uiMuted  = style.Asbestos
	uiYellow = style.MustParse("#f1c40f")
	uiCarrot = style.MustParse("#e67e22")
	uiMint   = style.MustParse("#d5f4e6")
	uiPanel  = style.MustParse("#e8f5e9")
)

// Dashboard is figure 9: a mock of the monitoring UI with map, health, loop and alert panes.
func Dashboard(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure9_dashboard_interface", 18, 12, 1, 1)
	f.Title = "Figure 9: ALPS Dashboard User Interface and Real-Time Analytics"
	f.Subtitle = "Production monitoring system interface showing: (a) Interactive Leaflet map with district hotspot visualization, " +
		"(b) System health metrics (87/100) with component breakdowns, (c) Live autonomous loop status for all four phases, " +
		"(d) Recent alerts panel with severity-based priority routing. Dashboard processes 847,250 observations with 94.2% accuracy."
	f.Caption = "Figure 9. ALPS Dashboard User Interface and Real-Time Analytics. Screenshot of the production monitoring system " +
		"displaying: (a) Interactive Leaflet map with district-level hotspot visualization (red markers indicate high-severity " +
		"pollution events, orange = medium, yellow = low), (b) MetricsPanel showing system health score (87/100) calculated from " +
		"detection precision (92%), recall (89%), and district coverage (91.6%), (c) Autonomous Loop status indicators for " +
		"SENSE-REASON-ACT-LEARN phases with live processing timestamps showing real-time pipeline execution, (d) Recent alerts " +
		"panel featuring severity-sorted notifications with automated priority routing and delivery confirmation (sent). " +
		"Dashboard processes 847,250 satellite observations with 94.2% alert accuracy and provides 18-36 hour predictive warnings " +
		"for intervention planning. All components update in real-time via WebSocket connections. Five most recent alerts shown " +
		"with alert IDs, district names, LPI values, and timestamps for operational transparency."

	p := f.Panels[0]
	p.HideAxes = true
	p.X = scene.Axis{Min: 0, Max: 18}
	p.Y = scene.Axis{Min: 0, Max: 12}
	p.Add(scene.Rect(0, 0, 18, 12, style.Named("whitesmoke"), scene.Stroke{}))

	navbar(p, th)
	hotspotMap(p, th)
	healthPane(p, th)
	loopPane(p, th)
	alertsPane(p, th)

	p.Add(scene.Rect(0, 0, 18, 0.4, style.Flat, scene.Stroke{}))
	for i, item := range []string{"System Online", "Last Update: 2025-10-11 14:23:15", thousands(742) + " Districts Monitored", "Version 1.0.0"} {
		p.Add(scene.Label(0.5+4.5*float64(i), 0.2, item, 8).In(style.White).At(scene.AlignLeft, scene.AlignMiddle))
	}
	return f, nil
}

// pane draws a white card with a coloured title strip.
func pane(p *scene.Panel, x, y, w, h float64, title string, col color.Color) {
	p.Add(
		scene.RoundRect(x-0.1, y-0.1, w+0.2, h+0.2, 6, style.White, scene.Pen(uiBorder, 2)),
		scene.Rect(x, y+h-0.2, w, 0.4, col, scene.Stroke{}),
		scene.Label(x+w/2, y+h, title, 11).B().In(style.White),
	)
}

func navbar(p *scene.Panel, th style.Theme) {
	p.Add(
		scene.Rect(0, 11, 18, 1, style.Midnight, scene.Stroke{}),
		scene.Label(0.5, 11.5, "ALPS", 24).B().In(style.White).At(scene.AlignLeft, scene.AlignMiddle),
		scene.Label(1.5, 11.5, "Autonomous Light Pollution Sentinel", 11).I().In(style.Cloud).At(scene.AlignLeft, scene.AlignMiddle),
	)
	x := 10.0
	for _, item := range []string{"Dashboard", "Analytics", "Alerts", "Settings"} {
		active := item == "Dashboard"
		bg := style.Flat
		if active {
			bg = th.C("sense", style.FlatBlue)
		}
		t := scene.Label(x+0.75, 11.5, item, 10).In(style.White)
		if active {
			t.B()
		}
		p.Add(scene.RoundRect(x, 11.15, 1.5, 0.7, 4, bg, scene.Stroke{}), t)
		x += 1.7
	}
	p.Add(scene.Label(17.5, 11.5, "Admin", 10).B().In(style.White).At(scene.AlignRight, scene.AlignMiddle))
}

func hotspotMap(p *scene.Panel, th style.Theme) {
	pane(p, 0.3, 6.5, 8.5, 4.2, "(a) Interactive District-Level Hotspot Map", th.C("sense", style.FlatBlue))

	xs := stats.Map(indiaX, func(v float64) float64 { return 0.8 + (v-68)/(97-68)*7.5 })
	ys := stats.Map(indiaY, func(v float64) float64 { return 7.0 + (v-8)/(35-8)*3.2 })
	p.Add(
		&scene.Polygon{Name: "outline", X: xs, Y: ys, Fill: fade(uiPanel, 0.5), Stroke: scene.Pen(style.Black, 1.5)},
	)

	type severity struct {
		col   color.NRGBA
		alpha float64
		edge  color.Color
	}
	levels := []severity{
		{style.FlatRed, 0.9, style.Named("darkred")},
		{style.FlatOrng, 0.7, style.Black},
		{uiYellow, 0.6, style.Black},
	}
	s := stats.NewSampler(stats.DefaultSeed)
	for range 15 {
		x := s.Between(1.5, 7.5)
		y := s.Between(7.2, 10.0)
		lv := levels[s.Choice([]float64{0.3, 0.5, 0.2}, 1)[0]]
		p.Add(&scene.Circle{X: x, Y: y, R: 0.15, Fill: fade(lv.col, lv.alpha), Stroke: scene.Pen(lv.edge, 1.5)})
	}

	for i, lg := range []struct {
		label string
		r     float64
	}{{"High Severity", 5}, {"Medium", 4}, {"Low", 3}} {
		// Bottom-right of the pane, clear of the outline and the pane border.
		y := 7.25 - 0.27*float64(i)
		p.Add(
			&scene.Scatter{Name: "legend_" + lg.label, X: []float64{6.6}, Y: []float64{y}, Color: levels[i].col, Size: lg.r},
			scene.Label(6.85, y, lg.label, 8).At(scene.AlignLeft, scene.AlignMiddle),
		)
	}

	for _, z := range []struct {
		y float64
		s string
	}{{9.8, "+"}, {9.4, "−"}} {
		p.Add(
			&scene.Circle{X: 8.3, Y: z.y, R: 0.15, Fill: style.White, Stroke: scene.Pen(style.Midnight, 1.5)},
			scene.Label(8.3, z.y, z.s, 14).B(),
		)
	}
}

func healthPane(p *scene.Panel, th style.Theme) {
	green := th.C("act", style.FlatGreen)
	pane(p, 9.2, 6.5, 8.5, 4.2, "(b) System Health & Performance Metrics", green)

	const score = 87
	const gx, gy, gr = 11.3, 9.25, 0.75
	p.Add(
		&scene.Circle{X: gx, Y: gy, R: gr, Fill: style.Cloud},
		&scene.Wedge{X: gx, Y: gy, R: gr, From: 0, To: score / 100.0 * 360, Fill: green},
		&scene.Circle{X: gx, Y: gy, R: gr * 0.65, Fill: style.White},
		scene.Label(gx, gy+0.15, fmt.Sprint(score), 24).B().In(green),
		scene.Label(gx, gy-0.2, "/100", 11).In(uiMuted),
		scene.Label(gx, gy-gr-0.2, "Health Score", 10).B(),
	)

	for i, st := range []string{
		"Observations Processed: " + thousands(847250),
		"Alert Accuracy: 94.2%",
		"Predictive Lead Time: 18-36 hours",
		"Alerts Generated (2024-2025): 419",
	} {
		p.Add(scene.Label(14.9, 9.95-0.42*float64(i), st, 9).B().Boxed(style.Cloud, uiBorder))
	}

	y := 7.85
	for _, m := range []struct {
		label string
		pct   float64
		col   color.Color
	}{
		{"Detection Precision", 92, th.C("sense", style.FlatBlue)},
		{"Detection Recall", 89, style.FlatPurp},
		{"District Coverage", 91.6, uiCarrot},
	} {
		p.Add(
			scene.Rect(10.0, y, 7.0, 0.35, style.Cloud, scene.Pen(uiBorder, 1)),
			scene.Rect(10.0, y, 7.0*m.pct/100, 0.35, m.col, scene.Stroke{}),
			scene.Label(10.1, y+0.175, m.label, 9).B().In(style.White).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(16.8, y+0.175, fmt.Sprintf("%g%%", m.pct), 9).B().In(style.White).At(scene.AlignRight, scene.AlignMiddle),
		)
		y -= 0.5
	}
}

func loopPane(p *scene.Panel, th style.Theme) {
	pane(p, 0.3, 0.5, 8.5, 5.7, "(c) Autonomous Loop Status - Live Processing", style.FlatPurp)
	phases := []struct {
		name, sub, status, stamp, icon string
		col                            color.NRGBA
		y                              float64
	}{
		{"SENSE", "Satellite Data Ingestion", "Active", "2025-10-11 14:23:15", "SAT", th.C("sense", style.FlatBlue), 5.2},
		{"REASON", "ML Analysis & Prediction", "Processing", "2025-10-11 14:23:18", "AI", th.C("reason", style.FlatRed), 4.0},
		{"ACT", "Alert Generation", "Standby", "2025-10-11 14:20:42", "ACT", th.C("act", style.FlatGreen), 2.8},
		{"LEARN", "Model Adaptation", "Scheduled", "Next: 2025-11-01", "ML", th.C("learn", style.FlatOrng), 1.6},
	}
	statusColor := map[string]color.NRGBA{
		"Active":     style.FlatGreen,
		"Processing": style.FlatOrng,
		"Standby":    style.Concrete,
		"Scheduled":  style.FlatBlue,
	}
	for _, ph := range phases {
		sc := statusColor[ph.status]
		dot := &scene.Scatter{Name: "status_" + ph.name, X: []float64{6.55}, Y: []float64{ph.y + 0.1}, Color: sc, Size: 3.5}
		if ph.status == "Standby" {
			dot.Color = style.White
			dot.Edge = scene.Pen(sc, 1.5)
		}
		p.Add(
			scene.RoundRect(0.8, ph.y-0.4, 7.5, 0.9, 6, style.White, scene.Pen(ph.col, 2)),
			scene.Label(1.1, ph.y, ph.icon, 8).B().In(style.White).Boxed(ph.col, nil),
			scene.Label(1.6, ph.y+0.15, ph.name, 11).B().In(ph.col).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(1.6, ph.y-0.15, ph.sub, 8).I().In(uiMuted).At(scene.AlignLeft, scene.AlignMiddle),
			dot,
			scene.Label(6.75, ph.y+0.1, ph.status, 9).B().In(sc).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(6.5, ph.y-0.2, ph.stamp, 7).I().In(uiMuted).At(scene.AlignLeft, scene.AlignMiddle),
		)
	}
}

func alertsPane(p *scene.Panel, th style.Theme) {
	pane(p, 9.2, 0.5, 8.5, 5.7, "(d) Recent Alerts - Severity-Sorted Notifications", th.C("reason", style.FlatRed))
	alerts := []struct {
		id, district, severity, stamp string
		lpi                           float64
	}{
		{"ALT-2471", "New Delhi Central", "HIGH", "2025-10-11 14:15:03", 97.8},
		{"ALT-2470", "Mumbai Suburban", "HIGH", "2025-10-11 13:42:17", 95.2},
		{"ALT-2469", "Bangalore Urban", "MEDIUM", "2025-10-11 12:30:56", 78.4},
		{"ALT-2468", "Hyderabad", "MEDIUM", "2025-10-11 11:18:23", 76.1},
		{"ALT-2467", "Chennai Metro", "LOW", "2025-10-11 09:45:12", 64.3},
	}
	sevColor := map[string]color.NRGBA{"HIGH": style.FlatRed, "MEDIUM": style.FlatOrng, "LOW": uiYellow}
	y := 5.4
	for _, a := range alerts {
		col := sevColor[a.severity]
		p.Add(
			scene.RoundRect(9.6, y-0.5, 7.7, 0.85, 5, style.White, scene.Pen(col, 2)),
			scene.Rect(9.7, y-0.15, 1.2, 0.3, col, scene.Stroke{}),
			scene.Label(10.3, y, a.severity, 7).B().In(style.White),
			scene.Label(11.1, y+0.15, a.id, 8).B().In(style.Midnight).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(11.1, y-0.1, a.district, 8).In(uiMuted).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(15.0, y, fmt.Sprintf("LPI: %.1f", a.lpi), 8).B().In(col).At(scene.AlignLeft, scene.AlignMiddle),
			scene.Label(9.7, y-0.35, a.stamp, 7).I().In(style.Concrete).At(scene.AlignLeft, scene.AlignMiddle),
			scene.RoundRect(16.45, y-0.15, 0.8, 0.25, 3, uiMint, scene.Pen(style.FlatGreen, 1)),
			scene.Label(16.85, y-0.025, "Sent", 7).B().In(style.FlatGreen),
		)
		y -= 1.0
	}
}
