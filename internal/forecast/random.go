package forecast

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source draws uniform values from [min, max)
type Source interface {
	Uniform(min, max float64) float64
}

// uniformSource draws through gonum's uniform distribution
type uniformSource struct {
	src rand.Source
}

// NewSource returns a Source backed by src. A nil src uses the
// process-wide non-deterministic generator.
func NewSource(src rand.Source) Source {
	return &uniformSource{src: src}
}

// NewSeededSource returns a reproducible Source for the given seed
func NewSeededSource(seed uint64) Source {
	return NewSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform implements Source
func (u *uniformSource) Uniform(min, max float64) float64 {
	if min == max {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: u.src}.Rand()
}
