// Package emu provides functional CHIP-8 emulation.
package emu

import "fmt"

// Memory map.
const (
	MemorySize   = 4096
	ProgramStart = 0x200
	FontStart    = 0x000
	GlyphSize    = 5
)

// fontSet holds the hexadecimal digit glyphs 0-F, five rows each.
var fontSet = [16 * GlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontSet returns a copy of the built-in glyph table.
func FontSet() []uint8 {
	out := make([]uint8, len(fontSet))
	copy(out, fontSet[:])
	return out
}

// WriteHook is called after every successful store with the address written.
type WriteHook func(addr uint16)

// Memory is the 4 KiB CHIP-8 address space.
type Memory struct {
	data  [MemorySize]uint8
	hooks []WriteHook
}

// NewMemory creates a memory with the font glyphs loaded at FontStart.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], fontSet[:])
	return m
}

// OnWrite registers a hook that observes stores.
func (m *Memory) OnWrite(hook WriteHook) {
	m.hooks = append(m.hooks, hook)
}

func (m *Memory) checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%w: 0x%04X+%d", ErrAddressOutOfRange, addr, n)
	}
	return nil
}

// Read8 reads the byte at addr.
func (m *Memory) Read8(addr uint16) (uint8, error) {
	if err := m.checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// Read16 reads the big-endian word at [addr, addr+1].
func (m *Memory) Read16(addr uint16) (uint16, error) {
	if err := m.checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

// ReadBlock returns a copy of n bytes starting at addr.
func (m *Memory) ReadBlock(addr uint16, n int) ([]uint8, error) {
	if err := m.checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, m.data[addr:int(addr)+n])
	return out, nil
}

// Write8 stores value at addr.
func (m *Memory) Write8(addr uint16, value uint8) error {
	return m.WriteBlock(addr, []uint8{value})
}

// WriteBlock stores data starting at addr. Nothing is written if any part of
// the range falls outside memory.
func (m *Memory) WriteBlock(addr uint16, data []uint8) error {
	if err := m.checkRange(addr, len(data)); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	for i := range data {
		for _, hook := range m.hooks {
			hook(addr + uint16(i))
		}
	}
	return nil
}

// LoadProgram copies a program image into memory at ProgramStart.
func (m *Memory) LoadProgram(program []byte) error {
	if ProgramStart+len(program) > MemorySize {
		return fmt.Errorf("%w: %d bytes, %d available",
			ErrProgramTooLarge, len(program), MemorySize-ProgramStart)
	}
	return m.WriteBlock(ProgramStart, program)
}
