package chip8

import "math/rand/v2"

// RandSource supplies random bytes to the RND instruction.
type RandSource interface {
	Byte() byte
}

// NewRand returns a RandSource backed by a PCG generator. A zero seed
// selects a random seed; any other seed yields a repeatable sequence.
func NewRand(seed uint64) RandSource {
	if seed == 0 {
		return pcgSource{rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return pcgSource{rand.New(rand.NewPCG(seed, seed))}
}

type pcgSource struct{ r *rand.Rand }

func (s pcgSource) Byte() byte { return byte(s.r.Uint32()) }
