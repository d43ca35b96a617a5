package match

import "math/rand"

// RNG is the single seeded pseudo-random source for a match. Every
// non-deterministic decision in the engine draws from it; reseeding mid-match
// is not permitted. Two matches constructed with the same seed and inputs
// draw the exact same sequence of values, which is what makes the engine's
// output byte-identical across runs (spec §8 determinism property).
type RNG struct {
	src *rand.Rand
}

// NewRNG creates a seeded RNG. Matches the teacher's deterministic-stream
// idiom in engine.go (rand.New(rand.NewSource(seed))) rather than any
// cryptographic or OS-entropy source.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// NextU64 returns the next raw 64-bit value from the stream.
func (r *RNG) NextU64() uint64 {
	return r.src.Uint64()
}

// NextFloat64 returns a value in [0, 1).
func (r *RNG) NextFloat64() float64 {
	return r.src.Float64()
}

// Uniform returns a value uniformly distributed in [low, high).
func (r *RNG) Uniform(low, high float64) float64 {
	if high <= low {
		return low
	}
	return low + r.src.Float64()*(high-low)
}

// Bernoulli returns true with probability p (clamped to [0,1]).
func (r *RNG) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.src.Float64() < p
}

// IntN returns a uniform value in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// WeightedChoice draws an index in [0, len(weights)) with probability
// proportional to each weight. Non-positive weights are treated as zero. If
// every weight is zero, the first index is returned so callers always get a
// valid selection (mirrors spec §4.8's "default to hold" fallback one level
// down, at the primitive).
func (r *RNG) WeightedChoice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	target := r.src.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
