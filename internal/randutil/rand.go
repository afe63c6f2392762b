// Package randutil centralises deterministic seeding so every component
// that needs reproducible randomness derives it the same way.
package randutil

import "math/rand"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a generator seeded from a splitmix64 mix of the given seed,
// so nearby seeds still produce unrelated streams.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed)))))
}

// Derive returns the nth child generator of a seed. Hands each bot or table
// its own reproducible stream from one top-level seed.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(n)*goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
