// Package figures builds the manuscript figures as scenes from their hard-coded data.
package figures

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/contact-shreyas/ALPS/src/scene"
	"github.com/contact-shreyas/ALPS/src/style"
)

// ErrUnknownFigure is returned by Lookup for names outside the catalog.
var ErrUnknownFigure = errors.New("unknown figure")

// Builder produces one figure for a theme.
type Builder func(th style.Theme) (*scene.Figure, error)

// Entry is one catalog row.
type Entry struct {
	Name  string
	Alias string
	Title string
	Build Builder
}

var catalog = []Entry{
	{"figure1_study_area", "fig1", "Study area and monitoring infrastructure", StudyArea},
	{"figure2_temporal_trends", "fig2", "Temporal trends in artificial light at night", TemporalTrends},
	{"figure3_framework", "fig3", "Sense-Reason-Act-Learn framework", Framework},
	{"figure5_shap_summary", "fig5", "SHAP feature importance summary", ShapSummary},
	{"figure6_feature_evolution", "fig6", "Feature importance evolution and lag structure", FeatureEvolution},
	{"figure7_urbanization_burden", "fig7", "Urbanization and light pollution burden", UrbanizationBurden},
	{"figure8_model_performance", "fig8", "Model performance comparison", ModelPerformance},
	{"figure9_dashboard_interface", "fig9", "Decision-support dashboard", Dashboard},
	{"figure10_correlation_matrix", "fig10", "Correlation matrix of key variables", CorrelationMatrix},
	{"figure11_spatial_autocorrelation", "fig11", "Spatial autocorrelation analysis", SpatialAutocorrelation},
	{"figure12_policy_timeline", "fig12-timeline", "Policy intervention timeline", PolicyTimeline},
	{"figure12_policy_effectiveness", "fig12", "Policy intervention effectiveness", PolicyEffectiveness},
	{"figure12_policy_effectiveness_v2", "fig12-v2", "Policy intervention effectiveness (staggered layout)", PolicyEffectivenessV2},
}

// Catalog lists every figure in manuscript order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

// Names lists figure names in manuscript order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.Name
	}
	return out
}

// Lookup finds an entry by full name or alias, case-insensitively.
func Lookup(name string) (Entry, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, e := range catalog {
		if n == e.Name || n == e.Alias {
			return e, nil
		}
	}
	known := Names()
	sort.Strings(known)
	return Entry{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownFigure, name, strings.Join(known, ", "))
}

// Select resolves names to entries in manuscript order without duplicates;
// no names selects the whole catalog.
func Select(names []string) ([]Entry, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}
	want := map[string]bool{}
	var errs []error
	for _, n := range names {
		e, err := Lookup(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		want[e.Name] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	var out []Entry
	for _, e := range catalog {
		if want[e.Name] {
			out = append(out, e)
		}
	}
	return out, nil
}
