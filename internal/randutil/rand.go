// Package randutil centralises how the engine builds random sources so that
// every table, shoe and bot can be replayed from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime seeds from the wall clock and returns the seed used, so
// interactive sessions can still be logged and replayed.
func NewFromTime() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

// Derive returns the seed for the n-th independent stream under a base
// seed. Streams for different n do not overlap in practice.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
