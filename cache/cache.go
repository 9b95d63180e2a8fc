// Package cache provides a set-associative instruction fetch cache in front
// of emu.Memory, built on Akita's cache directory.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/chip8sim/emu"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int
	// Associativity (number of ways)
	Associativity int
	// BlockSize in bytes (cache line size)
	BlockSize int
}

// DefaultConfig returns a 512-byte, 2-way cache with 16-byte lines: eight
// instructions per line, one eighth of memory resident.
func DefaultConfig() Config {
	return Config{
		Size:          512,
		Associativity: 2,
		BlockSize:     16,
	}
}

// Validate checks that the geometry divides memory evenly.
func (c Config) Validate() error {
	if c.BlockSize < 2 || c.BlockSize&(c.BlockSize-1) != 0 {
		return fmt.Errorf("block size %d must be a power of two >= 2", c.BlockSize)
	}
	if emu.MemorySize%c.BlockSize != 0 {
		return fmt.Errorf("block size %d must divide memory size %d", c.BlockSize, emu.MemorySize)
	}
	if c.Associativity < 1 {
		return fmt.Errorf("associativity must be >= 1")
	}
	if c.Size <= 0 || c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("size %d must be a positive multiple of associativity*block size", c.Size)
	}
	if c.Size > emu.MemorySize {
		return fmt.Errorf("size %d exceeds memory size %d", c.Size, emu.MemorySize)
	}
	return nil
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Data is the value read, big-endian.
	Data uint16
	// Evicted is true if a valid block was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted block (if Evicted is true).
	EvictedAddr uint16
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads         uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
}

// HitRate returns hits over reads, or 0 before the first read.
func (s Statistics) HitRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Reads)
}

// Cache is a read-only cache. Stores go straight to memory and invalidate
// the affected line, so the cache never holds dirty data.
type Cache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Data storage - indexed by (setID * associativity + wayID)
	dataStore [][]byte

	stats   Statistics
	backing BackingStore
}

// New creates a new cache with the given configuration.
func New(config Config, backing BackingStore) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) blockAddr(addr uint16) uint64 {
	return uint64(addr) / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
}

// Read reads size bytes (1 or 2) within a single line.
func (c *Cache) Read(addr uint16, size int) (AccessResult, error) {
	offset := int(addr) % c.config.BlockSize
	if size < 1 || size > 2 || offset+size > c.config.BlockSize {
		return AccessResult{}, fmt.Errorf("read of %d bytes at 0x%03X crosses a line", size, addr)
	}
	if int(addr)+size > emu.MemorySize {
		return AccessResult{}, fmt.Errorf("%w: 0x%04X+%d", emu.ErrAddressOutOfRange, addr, size)
	}

	c.stats.Reads++

	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)

		return AccessResult{
			Hit:  true,
			Data: extractData(c.dataStore[c.blockIndex(block)], offset, size),
		}, nil
	}

	c.stats.Misses++
	return c.handleMiss(blockAddr, offset, size)
}

func (c *Cache) handleMiss(blockAddr uint64, offset, size int) (AccessResult, error) {
	result := AccessResult{}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result, fmt.Errorf("no victim for block 0x%03X", blockAddr)
	}

	victimData := c.dataStore[c.blockIndex(victim)]

	newData, err := c.backing.Read(uint16(blockAddr), c.config.BlockSize)
	if err != nil {
		return result, fmt.Errorf("fill block 0x%03X: %w", blockAddr, err)
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = uint16(victim.Tag)
	}

	copy(victimData, newData)
	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	result.Data = extractData(victimData, offset, size)
	return result, nil
}

// Invalidate drops the line holding addr, if resident.
func (c *Cache) Invalidate(addr uint16) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
		c.stats.Invalidations++
	}
}

// Resident reports whether the line holding addr is in the cache.
func (c *Cache) Resident(addr uint16) bool {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	return block != nil && block.IsValid
}

// ValidLines counts resident lines.
func (c *Cache) ValidLines() int {
	n := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid {
				n++
			}
		}
	}
	return n
}

// Reset invalidates all cache lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

// extractData reads a big-endian value of the given size.
func extractData(data []byte, offset, size int) uint16 {
	var result uint16
	for i := 0; i < size; i++ {
		result = result<<8 | uint16(data[offset+i])
	}
	return result
}
