package stats

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the seed every synthetic figure draws from.
const DefaultSeed = 42

// Sampler is a deterministic source of synthetic values. It is not safe for
// concurrent use; each figure builder owns one.
type Sampler struct {
	src *rand.PCG
	rng *rand.Rand
}

func NewSampler(seed uint64) *Sampler {
	src := rand.NewPCG(seed, seed)
	return &Sampler{src: src, rng: rand.New(src)}
}

// Normal draws n values from N(mu, sigma).
func (s *Sampler) Normal(mu, sigma float64, n int) []float64 {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}
	return draw(d.Rand, n)
}

// Uniform draws n values from U[lo, hi).
func (s *Sampler) Uniform(lo, hi float64, n int) []float64 {
	d := distuv.Uniform{Min: lo, Max: hi, Src: s.src}
	return draw(d.Rand, n)
}

// Beta draws n values from Beta(alpha, beta).
func (s *Sampler) Beta(alpha, beta float64, n int) []float64 {
	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.src}
	return draw(d.Rand, n)
}

// Choice draws n indices with the given relative weights.
func (s *Sampler) Choice(weights []float64, n int) []int {
	c := distuv.NewCategorical(weights, s.src)
	out := make([]int, n)
	for i := range out {
		out[i] = int(c.Rand())
	}
	return out
}

// Shuffle permutes xs in place.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Float64 returns a value in [0, 1).
func (s *Sampler) Float64() float64 { return s.rng.Float64() }

// Between returns one value in [lo, hi).
func (s *Sampler) Between(lo, hi float64) float64 { return lo + (hi-lo)*s.rng.Float64() }

// IntN returns a value in [0, n).
func (s *Sampler) IntN(n int) int { return s.rng.IntN(n) }

func draw(f func() float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f()
	}
	return out
}
