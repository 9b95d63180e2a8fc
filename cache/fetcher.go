package cache

import (
	"github.com/sarchlab/chip8sim/emu"
)

// InstructionFetcher serves emulator fetches from a Cache. It implements
// emu.Fetcher.
type InstructionFetcher struct {
	cache *Cache
}

// NewInstructionFetcher builds a cache over memory and registers a write
// hook so stores to memory invalidate the lines they touch.
func NewInstructionFetcher(config Config, memory *emu.Memory) (*InstructionFetcher, error) {
	c, err := New(config, NewMemoryBacking(memory))
	if err != nil {
		return nil, err
	}

	memory.OnWrite(c.Invalidate)

	return &InstructionFetcher{cache: c}, nil
}

// Fetch reads the big-endian instruction word at addr. A word that
// straddles two lines takes two accesses.
func (f *InstructionFetcher) Fetch(addr uint16) (uint16, error) {
	if int(addr)%f.cache.config.BlockSize+2 <= f.cache.config.BlockSize {
		result, err := f.cache.Read(addr, 2)
		if err != nil {
			return 0, err
		}
		return result.Data, nil
	}

	hi, err := f.cache.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	lo, err := f.cache.Read(addr+1, 1)
	if err != nil {
		return 0, err
	}
	return hi.Data<<8 | lo.Data, nil
}

// Cache returns the underlying cache.
func (f *InstructionFetcher) Cache() *Cache {
	return f.cache
}
