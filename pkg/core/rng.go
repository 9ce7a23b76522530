package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding. Terraspiel holds exactly one RNG per world (spec §5: "a single
// per-world PRNG"); every stochastic roll in the tick pipeline goes through
// it so a fixed seed reproduces a fixed sequence of decisions.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed>>32)))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Uint8n returns a random uint8 in [0, n).
func (r *RNG) Uint8n(n uint8) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(r.r.IntN(int(n)))
}

// Chance reports true with probability p (p is clamped to [0, 1]).
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// IntRange returns a random integer in [min, max] inclusive.
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min+1)
}

// FloatRange returns a random float64 in [min, max).
func (r *RNG) FloatRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.r.Float64()*(max-min)
}

// Jitter returns v plus uniform noise in [-spread, spread].
func (r *RNG) Jitter(v, spread float64) float64 {
	return v + r.FloatRange(-spread, spread)
}

// Angle returns a uniformly random angle in radians, [0, 2*pi).
func (r *RNG) Angle() float64 {
	return r.r.Float64() * 2 * 3.141592653589793
}

// Sign returns -1 or 1 with equal probability.
func (r *RNG) Sign() float64 {
	if r.Bool() {
		return 1
	}
	return -1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
