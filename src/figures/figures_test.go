package figures

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

func TestCatalog_EveryFigureBuildsAndValidates(t *testing.T) {
	th := style.DefaultTheme()
	for _, e := range Catalog() {
		t.Run(e.Name, func(t *testing.T) {
			f, err := e.Build(th)
			require.NoError(t, err)
			require.NotNil(t, f)
			require.Equal(t, e.Name, f.Name, "figure name must match its catalog entry")
			require.NoError(t, scene.Validate(f))
			require.Len(t, f.Panels, f.Rows*f.Cols)
			for i, p := range f.Panels {
				require.NotEmpty(t, p.Layers, "panel %d has no layers", i)
			}
		})
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	th := style.DefaultTheme()
	for _, name := range []string{"figure1_study_area", "figure5_shap_summary", "figure11_spatial_autocorrelation"} {
		e, err := Lookup(name)
		require.NoError(t, err)
		a, err := e.Build(th)
		require.NoError(t, err)
		b, err := e.Build(th)
		require.NoError(t, err)
		if diff := cmp.Diff(scene.DataLayers(a), scene.DataLayers(b), cmpopts.EquateNaNs()); diff != "" {
			t.Fatalf("%s not reproducible (-first +second):\n%s", name, diff)
		}
	}
}

func TestCatalog_NamesUniqueAndOrdered(t *testing.T) {
	names := Names()
	require.Len(t, names, 13)
	require.Equal(t, "figure1_study_area", names[0])
	require.Equal(t, "figure12_policy_effectiveness_v2", names[len(names)-1])
	seen := map[string]bool{}
	for _, e := range Catalog() {
		require.False(t, seen[e.Name], "duplicate name %s", e.Name)
		require.False(t, seen[e.Alias], "duplicate alias %s", e.Alias)
		seen[e.Name], seen[e.Alias] = true, true
	}
}

func TestLookup(t *testing.T) {
	e, err := Lookup("fig12-v2")
	require.NoError(t, err)
	require.Equal(t, "figure12_policy_effectiveness_v2", e.Name)

	e, err = Lookup("  FIGURE10_Correlation_Matrix ")
	require.NoError(t, err)
	require.Equal(t, "fig10", e.Alias)

	_, err = Lookup("figure4_missing")
	require.True(t, errors.Is(err, ErrUnknownFigure))
	require.True(t, strings.Contains(err.Error(), "figure3_framework"), "error should list known names: %v", err)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	require.Len(t, all, len(Catalog()))

	got, err := Select([]string{"fig12", "fig1", "figure1_study_area"})
	require.NoError(t, err)
	require.Equal(t, []string{"figure1_study_area", "figure12_policy_effectiveness"}, entryNames(got))

	_, err = Select([]string{"fig1", "nope", "also-nope"})
	require.True(t, errors.Is(err, ErrUnknownFigure))
	require.Contains(t, err.Error(), "nope")
	require.Contains(t, err.Error(), "also-nope")
}

func TestThemeOverridesPalette(t *testing.T) {
	th := style.DefaultTheme()
	th.Palette = map[string]string{"blue": "#112233"}
	f, err := TemporalTrends(th)
	require.NoError(t, err)
	var found bool
	for _, l := range f.Panels[0].Layers {
		if ln, ok := l.(*scene.Line); ok && ln.Name == "Mean Radiance ± 2σ" {
			require.Equal(t, style.MustParse("#112233"), ln.Stroke.Color)
			found = true
		}
	}
	require.True(t, found)
}

func TestCorrelationMatrix_Diagonal(t *testing.T) {
	f, err := CorrelationMatrix(style.DefaultTheme())
	require.NoError(t, err)
	var hm *scene.Heatmap
	for _, l := range f.Panels[0].Layers {
		if h, ok := l.(*scene.Heatmap); ok {
			hm = h
		}
	}
	require.NotNil(t, hm)
	require.Len(t, hm.Values, len(annualFactors))
	for i := range hm.Values {
		require.InDelta(t, 1.0, hm.Values[i][i], 1e-9)
		for j := range hm.Values[i] {
			require.InDelta(t, hm.Values[i][j], hm.Values[j][i], 1e-12)
		}
	}
	// Population density and energy usage are both linear in the year.
	require.InDelta(t, 1.0, hm.Values[5][6], 1e-9)
}

func TestCumulativeImpact(t *testing.T) {
	require.Equal(t, 0.0, cumulativeImpact(2016))
	require.InDelta(t, -8.0, cumulativeImpact(2020), 1e-12)
	require.InDelta(t, -46.0, cumulativeImpact(2023), 1e-12)
	require.InDelta(t, -85.0, cumulativeImpact(2025), 1e-12)
	require.InDelta(t, 1.0, effectivenessX(2016), 1e-12)
	require.InDelta(t, 13.5, effectivenessX(2025), 1e-12)
}

func TestTwoLine(t *testing.T) {
	require.Equal(t, "ACT", twoLine("ACT"))
	require.Equal(t, "LED Retrofitting\nAcceleration", twoLine("LED Retrofitting Acceleration"))
}

func entryNames(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func TestPolicyTimelineV2_CardsClearAxisBand(t *testing.T) {
	f, err := PolicyEffectivenessV2(style.DefaultTheme())
	require.NoError(t, err)
	// The axis line, event dots and year labels occupy this band.
	const bandLo, bandHi = -0.65, 0.15
	cards := 0
	for _, l := range f.Panels[0].Layers {
		b, ok := l.(*scene.Box)
		if !ok || b.W != 1.6 {
			continue
		}
		cards++
		require.False(t, b.Y < bandHi && b.Y+b.H > bandLo,
			"card at x=%.1f spans y %.2f..%.2f over the year labels", b.X+b.W/2, b.Y, b.Y+b.H)
	}
	require.Equal(t, len(policyEvents), cards)
}

func TestDashboard_SeverityLegendInsideMapPane(t *testing.T) {
	f, err := Dashboard(style.DefaultTheme())
	require.NoError(t, err)
	// Map pane interior, inside its border.
	const xLo, xHi, yLo, yHi = 0.3, 8.8, 6.5, 10.5
	found := 0
	for _, l := range f.Panels[0].Layers {
		sc, ok := l.(*scene.Scatter)
		if !ok || !strings.HasPrefix(sc.Name, "legend_") {
			continue
		}
		found++
		for i := range sc.X {
			require.True(t, sc.X[i] > xLo && sc.X[i] < xHi && sc.Y[i]-0.1 > yLo && sc.Y[i] < yHi,
				"%s at (%.2f, %.2f) falls outside the map pane", sc.Name, sc.X[i], sc.Y[i])
		}
	}
	require.Equal(t, 3, found)
}
