// Package randutil derives reproducible random sources for shoes and
// simulated sessions.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent source for the given stream of a seeded run.
// Session i of a simulation uses Derive(seed, i) so sessions never share
// shuffles while the whole run stays reproducible from one seed.
func Derive(seed int64, stream int) *rand.Rand {
	u := mix(uint64(seed) ^ mix(uint64(stream)+1)*goldenRatio64)
	return rand.New(rand.NewPCG(u, mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
