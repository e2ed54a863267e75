package common

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Produces deterministic sequences so a lattice run can be replayed exactly.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// Reset rewinds the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Random generates the next random number using Mulberry32 algorithm.
// Returns a float64 between 0 (inclusive) and 1 (exclusive).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomFloat generates a random float in the specified range [min, max).
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// Stream identifies an independent random stream derived from one base seed.
type Stream uint32

const (
	StreamPhase Stream = iota + 1
	StreamFrequency
	StreamNoise
)

// StreamSeed derives a deterministic seed for a named stream, so initial
// phases, natural frequencies and integration noise never share a sequence.
func StreamSeed(baseSeed uint32, stream Stream) uint32 {
	seed := baseSeed ^ (uint32(stream) * 2654435761)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
