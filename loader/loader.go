// Package loader reads CHIP-8 program images from disk.
package loader

import (
	"fmt"
	"os"

	"github.com/sarchlab/chip8sim/emu"
)

// MaxProgramSize is the largest image that fits between ProgramStart and the
// end of memory.
const MaxProgramSize = emu.MemorySize - emu.ProgramStart

// Program represents a raw program image ready for loading at 0x200.
type Program struct {
	// Path is the file the image was read from.
	Path string
	// Data contains the image bytes, copied verbatim into memory.
	Data []byte
}

// Load reads a raw program image and checks that it fits in memory.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	prog := &Program{Path: path, Data: data}
	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return prog, nil
}

// Validate checks the image size. An empty image is valid and leaves
// memory from 0x200 zeroed.
func (p *Program) Validate() error {
	if len(p.Data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d available",
			emu.ErrProgramTooLarge, len(p.Data), MaxProgramSize)
	}
	return nil
}

// Size returns the image length in bytes.
func (p *Program) Size() int {
	return len(p.Data)
}

// LoadInto copies the image into the emulator and points pc at it.
func (p *Program) LoadInto(e *emu.Emulator) error {
	return e.LoadProgram(p.Data)
}
