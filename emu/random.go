package emu

import "math/rand/v2"

// ByteSource supplies the random bytes consumed by RND.
type ByteSource interface {
	Byte() uint8
}

// randSource adapts math/rand/v2 to ByteSource.
type randSource struct {
	r *rand.Rand
}

func (s *randSource) Byte() uint8 {
	if s.r == nil {
		return uint8(rand.UintN(256))
	}
	return uint8(s.r.UintN(256))
}

// NewRandomSource returns a ByteSource backed by the global generator.
func NewRandomSource() ByteSource {
	return &randSource{}
}

// NewSeededSource returns a deterministic ByteSource.
func NewSeededSource(seed uint64) ByteSource {
	return &randSource{r: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}
