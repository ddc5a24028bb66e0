package figures

import (
	"image/color"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

type phase struct {
	name, role, cadence string
	items               []string
	x, y                float64
	col                 color.NRGBA
	icon                string
}

// Framework is figure 3: the sense-reason-act-learn loop with its KPIs.
func Framework(th style.Theme) (*scene.Figure, error) {
	f := scene.NewFigure("figure3_framework", 14, 10, 1, 1)
	f.Title = "ALPS Autonomous Sense-Reason-Act-Learn Framework"
	f.Subtitle = "Closed-loop policy system with continuous learning and adaptation. " +
		"Temporal scales range from hourly satellite ingestion to monthly model retraining. " +
		"Dashed feedback arrows indicate real-time performance optimization."
	f.Caption = "Figure 3. ALPS autonomous framework implementing a four-phase policy loop: (1) SENSE phase ingests hourly VIIRS satellite data " +
		"(847,250 observations), (2) REASON phase applies XGBoost ML model (R² = 0.952) for daily anomaly detection with 18-36 hour " +
		"predictive lead time, (3) ACT phase deploys real-time email alerts with 94.2% precision, and (4) LEARN phase performs monthly " +
		"model adaptation based on policy effectiveness metrics. Dashed feedback arrows indicate continuous performance optimization. " +
		"Central data hub manages 742 district time-series using PostgreSQL with PostGIS spatial extensions."

	sense := th.C("sense", style.FlatBlue)
	reason := th.C("reason", style.FlatRed)
	act := th.C("act", style.FlatGreen)
	learn := th.C("learn", style.FlatOrng)
	feedback := th.C("feedback", style.Concrete)
	hub := th.C("highlight", style.FlatPurp)

	p := f.Panels[0]
	p.HideAxes = true
	p.X = scene.Axis{Min: 0, Max: 10}
	p.Y = scene.Axis{Min: 0, Max: 10}

	phases := []phase{
		{"SENSE", "Satellite Data Ingestion", "Temporal: Hourly",
			[]string{"• VIIRS VNP46A1 ingestion", "• Atmospheric correction", "• Quality flags validation", "• 847,250 observations"},
			0.5, 7.5, sense, "SAT"},
		{"REASON", "ML Reasoning & Alerts", "Temporal: Daily",
			[]string{"• XGBoost prediction (R² = 0.952)", "• Anomaly detection", "• Alert generation (94.2%)", "• 18-36h lead time"},
			6.5, 7.5, reason, "AI"},
		{"ACT", "Intervention Deployment", "Temporal: Real-time",
			[]string{"• Email alerts to officials", "• Policy recommendations", "• Resource allocation", "• Stakeholder notification"},
			6.5, 4.0, act, "ACT"},
		{"LEARN", "Model Adaptation", "Temporal: Monthly",
			[]string{"• Policy effectiveness metrics", "• Model retraining", "• Parameter optimization", "• Performance feedback"},
			0.5, 4.0, learn, "ML"},
	}
	for _, ph := range phases {
		cx := ph.x + 1.25
		top := ph.y + 1.4
		p.Add(
			scene.RoundRect(ph.x-0.15, ph.y-0.15, 2.8, 2.1, 10, fade(ph.col, 0.2), scene.Pen(ph.col, 3)),
			scene.Label(cx, top, ph.name, 16).B().In(ph.col).At(scene.AlignCenter, scene.AlignBottom),
			scene.Label(cx, top-0.4, ph.role, 11).I().At(scene.AlignCenter, scene.AlignBottom),
			scene.Label(cx, top-0.8, ph.cadence, 9).B().At(scene.AlignCenter, scene.AlignBottom),
			scene.Label(ph.x+0.3, top+0.1, ph.icon, 8).B().In(style.White).Boxed(ph.col, style.Black),
		)
		for i, item := range ph.items {
			p.Add(scene.Label(cx, top-1.05-float64(i)*0.15, item, 8).At(scene.AlignCenter, scene.AlignMiddle))
		}
	}

	flow := scene.Pen(style.Black, 2.5)
	boxed := func(x, y float64, s string) *scene.Text {
		return scene.Label(x, y, s, 9).Boxed(style.White, style.Black)
	}
	p.Add(
		&scene.Arrow{X1: 3.1, Y1: 8.4, X2: 6.4, Y2: 8.4, Stroke: flow, Head: 10},
		boxed(4.75, 8.7, "Data Processing"),
		&scene.Arrow{X1: 7.75, Y1: 7.4, X2: 7.75, Y2: 5.9, Stroke: flow, Head: 10},
		boxed(8.4, 6.65, "Alert\nTrigger"),
		&scene.Arrow{X1: 6.4, Y1: 4.9, X2: 3.1, Y2: 4.9, Stroke: flow, Head: 10},
		boxed(4.75, 4.6, "Impact Assessment"),
		&scene.Arrow{X1: 1.75, Y1: 5.9, X2: 1.75, Y2: 7.4, Stroke: flow, Head: 10},
		boxed(1.0, 6.65, "Model\nUpdate"),
	)

	fb := scene.DashedPen(fade(feedback, 0.7), 2)
	fbText := func(x, y float64, s string) *scene.Text {
		return scene.Label(x, y, s, 7).I().In(feedback)
	}
	p.Add(
		&scene.Arrow{X1: 7.2, Y1: 5.8, X2: 7.2, Y2: 7.5, Stroke: fb, Head: 8},
		fbText(6.5, 6.65, "Effectiveness\nFeedback"),
		&scene.Arrow{X1: 6.9, Y1: 7.6, X2: 2.6, Y2: 5.7, Stroke: fb, Head: 8},
		fbText(4.75, 6.2, "Performance\nMetrics"),
		&scene.Arrow{X1: 2.6, Y1: 7.6, X2: 2.6, Y2: 5.7, Stroke: fb, Head: 8, Double: true},
		fbText(3.3, 6.65, "Parameter\nTuning"),
	)

	const hx, hy = 5.0, 6.65
	p.Add(
		&scene.Circle{X: hx, Y: hy, R: 0.8, Fill: fade(hub, 0.15), Stroke: scene.Pen(hub, 2.5)},
		scene.Label(hx, hy+0.35, "ALPS", 14).B().In(hub),
		scene.Label(hx, hy+0.05, "Data Hub", 10).I(),
		scene.Label(hx, hy-0.25, "742 Districts", 8),
		scene.Label(hx, hy-0.45, "PostgreSQL + PostGIS", 7),
	)

	p.Add(
		scene.RoundRect(0.35, 0.15, 8.8, 2.8, 10, fade(style.Cloud, 0.3), scene.Pen(style.Black, 2)),
		scene.Label(4.75, 2.5, "Key Performance Indicators (KPIs)", 13).B(),
	)
	kpis := []struct {
		label, value, icon string
		col                color.NRGBA
	}{
		{"Satellite Observations", thousands(847250), "SAT", sense},
		{"ML Model Accuracy", "R² = 0.952", "ML", reason},
		{"Alert Precision", "94.2%", "OK", act},
		{"Predictive Lead Time", "18-36 hours", "ETA", learn},
	}
	for i, k := range kpis {
		x, y := 1.5+2*float64(i), 1.5
		p.Add(
			scene.RoundRect(x-0.8, y-0.5, 1.6, 1.0, 6, style.White, scene.Pen(k.col, 2)),
			scene.Label(x-0.5, y+0.15, k.icon, 8).B().In(k.col),
			scene.Label(x+0.25, y+0.15, k.value, 11).B().In(k.col),
			scene.Label(x, y-0.25, k.label, 7).I().At(scene.AlignCenter, scene.AlignTop),
		)
	}
	p.Add(scene.Label(4.75, 0.7, "System Uptime: 99.7% | Data Latency: <2 hours | Alert Response Time: 15 minutes | Model Retraining Frequency: Monthly", 7).
		I().In(style.Midnight))

	const lx, ly = 0.7, 3.3
	p.Add(
		scene.Seg(lx, ly, lx+0.4, ly, flow),
		scene.Label(lx+0.5, ly, "Primary Flow", 8).At(scene.AlignLeft, scene.AlignMiddle),
		scene.Seg(lx, ly-0.25, lx+0.4, ly-0.25, scene.DashedPen(feedback, 2)),
		scene.Label(lx+0.5, ly-0.25, "Feedback Loop", 8).At(scene.AlignLeft, scene.AlignMiddle),
	)
	return f, nil
}
