// Package stats holds the small numeric helpers the figures compute on the fly:
// fits, correlations and the spatial models drawn in figure 11.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrShortInput = errors.New("stats: not enough points")

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Arange returns lo, lo+step, ... strictly below hi.
func Arange(lo, hi, step float64) []float64 {
	if step == 0 || (hi-lo)/step <= 0 {
		return nil
	}
	n := int(math.Ceil((hi - lo) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// PolyFit fits y = c[0] + c[1]x + ... + c[deg]x^deg by least squares.
func PolyFit(x, y []float64, deg int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("polyfit: len(x)=%d len(y)=%d", len(x), len(y))
	}
	if deg < 0 || len(x) < deg+1 {
		return nil, fmt.Errorf("polyfit degree %d over %d points: %w", deg, len(x), ErrShortInput)
	}
	a := mat.NewDense(len(x), deg+1, nil)
	for i, xv := range x {
		p := 1.0
		for j := 0; j <= deg; j++ {
			a.Set(i, j, p)
			p *= xv
		}
	}
	b := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	var qr mat.QR
	qr.Factorize(a)
	var c mat.Dense
	if err := qr.SolveTo(&c, false, b); err != nil {
		return nil, fmt.Errorf("polyfit solve: %w", err)
	}
	return mat.Col(nil, 0, &c), nil
}

// PolyVal evaluates the coefficients returned by PolyFit at x.
func PolyVal(c []float64, x float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

// PolyValAll evaluates c at every x.
func PolyValAll(c []float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = PolyVal(c, x)
	}
	return out
}

// ExpFit fits y = a*exp(b*x). The log-linear regression seeds a Gauss-Newton
// refinement on the untransformed residuals.
func ExpFit(x, y []float64) (a, b float64, err error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("expfit: len(x)=%d len(y)=%d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, 0, fmt.Errorf("expfit: %w", ErrShortInput)
	}
	ly := make([]float64, len(y))
	for i, v := range y {
		if v <= 0 {
			return 0, 0, fmt.Errorf("expfit: y[%d]=%g must be positive", i, v)
		}
		ly[i] = math.Log(v)
	}
	alpha, beta := stat.LinearRegression(x, ly, nil, false)
	a, b = math.Exp(alpha), beta
	for iter := 0; iter < 50; iter++ {
		// Normal equations of the 2-parameter Jacobian.
		var jaa, jab, jbb, ra, rb float64
		for i, xv := range x {
			e := math.Exp(b * xv)
			da := e
			db := a * xv * e
			r := y[i] - a*e
			jaa += da * da
			jab += da * db
			jbb += db * db
			ra += da * r
			rb += db * r
		}
		det := jaa*jbb - jab*jab
		if det == 0 {
			break
		}
		stepA := (jbb*ra - jab*rb) / det
		stepB := (jaa*rb - jab*ra) / det
		a += stepA
		b += stepB
		if math.Abs(stepA) <= 1e-10*math.Abs(a) && math.Abs(stepB) <= 1e-12 {
			break
		}
	}
	return a, b, nil
}

// RSquared is the coefficient of determination of estimates against observed values.
func RSquared(observed, estimated []float64) float64 {
	return stat.RSquaredFrom(estimated, observed, nil)
}

// CorrelationMatrix returns the Pearson correlation between every pair of columns.
func CorrelationMatrix(columns [][]float64) ([][]float64, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("correlation: %w", ErrShortInput)
	}
	n := len(columns[0])
	if n < 2 {
		return nil, fmt.Errorf("correlation: %w", ErrShortInput)
	}
	data := mat.NewDense(n, len(columns), nil)
	for j, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("correlation: column %d has %d rows, want %d", j, len(col), n)
		}
		data.SetCol(j, col)
	}
	var sym mat.SymDense
	stat.CorrelationMatrix(&sym, data, nil)
	out := make([][]float64, len(columns))
	for i := range out {
		out[i] = make([]float64, len(columns))
		for j := range out[i] {
			out[i][j] = sym.At(i, j)
		}
	}
	return out, nil
}

// SphericalVariogram evaluates the spherical model at lag h. The nugget
// applies to every positive lag; γ(0) is zero.
func SphericalVariogram(h, nugget, sill, rng float64) float64 {
	if h <= 0 {
		return 0
	}
	if h >= rng {
		return sill
	}
	r := h / rng
	return nugget + (sill-nugget)*(1.5*r-0.5*r*r*r)
}

// Gaussian is amp*exp(-(x-mu)^2 / (2 sigma^2)).
func Gaussian(x, mu, sigma, amp float64) float64 {
	d := x - mu
	return amp * math.Exp(-d*d/(2*sigma*sigma))
}

// GrowthPct is the percentage change from first to last.
func GrowthPct(first, last float64) float64 {
	if first == 0 {
		return math.NaN()
	}
	return (last - first) / first * 100
}

// Map applies f to every element of xs.
func Map(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}
