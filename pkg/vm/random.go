package vm

// Random is the runner's linear congruential generator. Reproducing its
// exact sequence keeps seeded games and replays deterministic.
type Random struct {
	seed int32
}

// NewRandom creates a generator with the given seed.
func NewRandom(seed int32) *Random {
	return &Random{seed: seed}
}

// Seed returns the current seed.
func (r *Random) Seed() int32 { return r.seed }

// SetSeed replaces the seed.
func (r *Random) SetSeed(seed int32) { r.seed = seed }

func (r *Random) cycle() uint32 {
	r.seed = r.seed*0x8088405 + 1
	return uint32(r.seed)
}

// Next returns a real in [0, bound).
func (r *Random) Next(bound float64) float64 {
	return float64(r.cycle()) / 0x100000000 * bound
}

// NextInt returns an integer in [0, bound].
func (r *Random) NextInt(bound int32) int32 {
	return int32((uint64(r.cycle()) * uint64(uint32(bound)+1)) >> 32)
}
