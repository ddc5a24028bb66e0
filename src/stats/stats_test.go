package stats

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestLinspaceAndArange(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	if d := cmp.Diff([]float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5), approx); d != "" {
		t.Fatalf("Linspace mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{2016, 2017, 2018}, Arange(2016, 2019, 1), approx); d != "" {
		t.Fatalf("Arange mismatch (-want +got):\n%s", d)
	}
	require.Nil(t, Arange(1, 0, 1))
	require.Equal(t, []float64{3}, Linspace(3, 9, 1))
}

func TestPolyFit_RecoversQuadratic(t *testing.T) {
	xs := Arange(0, 12, 1)
	ys := Map(xs, func(x float64) float64 { return 450 + 12*x + 1.5*x*x })
	c, err := PolyFit(xs, ys, 2)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{450, 12, 1.5}, c, 1e-6)
	require.InDelta(t, 450+12*3+1.5*9, PolyVal(c, 3), 1e-6)
}

func TestPolyFit_Errors(t *testing.T) {
	_, err := PolyFit([]float64{1, 2}, []float64{1}, 1)
	require.Error(t, err)
	_, err = PolyFit([]float64{1, 2}, []float64{1, 2}, 2)
	require.ErrorIs(t, err, ErrShortInput)
}

func TestExpFit_RecoversCoefficients(t *testing.T) {
	xs := Arange(0, 12, 1)
	ys := Map(xs, func(x float64) float64 { return 12000 * math.Exp(0.018*x) })
	a, b, err := ExpFit(xs, ys)
	require.NoError(t, err)
	require.InDelta(t, 12000, a, 1e-4)
	require.InDelta(t, 0.018, b, 1e-9)
	require.InDelta(t, 1.0, RSquared(ys, Map(xs, func(x float64) float64 { return a * math.Exp(b*x) })), 1e-9)
}

func TestExpFit_RejectsNonPositive(t *testing.T) {
	_, _, err := ExpFit([]float64{0, 1}, []float64{1, 0})
	require.Error(t, err)
}

func TestCorrelationMatrix(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	c := []float64{5, 4, 3, 2, 1}
	m, err := CorrelationMatrix([][]float64{a, b, c})
	require.NoError(t, err)
	for i := range m {
		require.InDelta(t, 1.0, m[i][i], 1e-12)
		for j := range m {
			require.InDelta(t, m[i][j], m[j][i], 1e-12)
		}
	}
	require.InDelta(t, 1.0, m[0][1], 1e-12)
	require.InDelta(t, -1.0, m[0][2], 1e-12)

	_, err = CorrelationMatrix([][]float64{a, {1, 2}})
	require.Error(t, err)
}

func TestSphericalVariogram(t *testing.T) {
	require.Equal(t, 0.0, SphericalVariogram(0, 0.05, 0.95, 450))
	require.InDelta(t, 0.05, SphericalVariogram(1e-9, 0.05, 0.95, 450), 1e-6)
	require.Equal(t, 0.95, SphericalVariogram(450, 0.05, 0.95, 450))
	require.Equal(t, 0.95, SphericalVariogram(900, 0.05, 0.95, 450))
	prev := -1.0
	for _, h := range Linspace(0, 450, 50) {
		v := SphericalVariogram(h, 0.05, 0.95, 450)
		if v < prev {
			t.Fatalf("variogram not monotone at h=%g: %g < %g", h, v, prev)
		}
		prev = v
	}
}

func TestGaussianAndGrowth(t *testing.T) {
	require.InDelta(t, 0.85, Gaussian(12.3, 12.3, 2.1, 0.85), 1e-12)
	require.InDelta(t, 0.85*math.Exp(-0.5), Gaussian(14.4, 12.3, 2.1, 0.85), 1e-12)
	require.InDelta(t, 64.888, GrowthPct(450, 742), 1e-3)
	require.True(t, math.IsNaN(GrowthPct(0, 1)))
}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(DefaultSeed)
	b := NewSampler(DefaultSeed)
	if d := cmp.Diff(a.Normal(0, 1, 20), b.Normal(0, 1, 20)); d != "" {
		t.Fatalf("same seed produced different draws:\n%s", d)
	}
	for _, v := range a.Beta(2, 5, 200) {
		if v < 0 || v > 1 {
			t.Fatalf("beta sample out of range: %g", v)
		}
	}
	for _, v := range a.Uniform(66, 99, 200) {
		if v < 66 || v >= 99 {
			t.Fatalf("uniform sample out of range: %g", v)
		}
	}
	counts := make([]int, 3)
	for _, i := range a.Choice([]float64{0.3, 0.5, 0.2}, 3000) {
		counts[i]++
	}
	if counts[1] < counts[0] || counts[0] < counts[2] {
		t.Fatalf("categorical weights not respected: %v", counts)
	}
}
