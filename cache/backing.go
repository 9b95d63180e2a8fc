package cache

import (
	"github.com/sarchlab/chip8sim/emu"
)

// BackingStore is the level a miss fills from.
type BackingStore interface {
	Read(addr uint16, size int) ([]byte, error)
}

// MemoryBacking wraps emu.Memory as a BackingStore.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches a block from the backing memory.
func (m *MemoryBacking) Read(addr uint16, size int) ([]byte, error) {
	return m.memory.ReadBlock(addr, size)
}
