package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// Its PCG state can be captured and restored, which keeps replays exact.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), 0)
	return &RNG{src: src, r: rand.New(src)}
}

// Seed resets the generator to the state NewRNG(seed) would produce.
func (r *RNG) Seed(seed int64) {
	r.src.Seed(uint64(seed), 0)
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// MarshalBinary captures the generator state.
func (r *RNG) MarshalBinary() ([]byte, error) {
	return r.src.MarshalBinary()
}

// UnmarshalBinary restores state captured by MarshalBinary.
func (r *RNG) UnmarshalBinary(data []byte) error {
	return r.src.UnmarshalBinary(data)
}
