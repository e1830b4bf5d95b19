package grouping

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source yields uniformly distributed reals in [0, n).
type Source interface {
	Uniform(n int) float64
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n int) float64

// Uniform calls f(n).
func (f SourceFunc) Uniform(n int) float64 { return f(n) }

// pcgStream is the fixed PCG stream selector; only the seed varies.
const pcgStream = 0x9e3779b97f4a7c15

// UniformSource draws from a continuous uniform distribution backed by a
// seeded PCG generator. Not safe for concurrent use.
type UniformSource struct {
	seed uint64
	src  rand.Source
}

// NewUniformSource returns a deterministic source for seed.
func NewUniformSource(seed uint64) *UniformSource {
	return &UniformSource{seed: seed, src: rand.NewPCG(seed, pcgStream)}
}

// NewRandomSource returns a source with a freshly drawn seed. Seed reports
// it so a run can be reproduced.
func NewRandomSource() *UniformSource {
	return NewUniformSource(rand.Uint64())
}

// Seed returns the seed the source was built from.
func (s *UniformSource) Seed() uint64 { return s.seed }

// Uniform returns a value in [0, n). Non-positive n yields 0.
func (s *UniformSource) Uniform(n int) float64 {
	if n <= 0 {
		return 0
	}
	d := distuv.Uniform{Min: 0, Max: float64(n), Src: s.src}
	return d.Rand()
}
