// Package emu provides functional CHIP-8 emulation.
package emu

import "fmt"

// LoadStoreUnit implements the CHIP-8 index register and memory block
// operations. Every memory range is checked before anything is written.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LDI performs I = nnn
func (lsu *LoadStoreUnit) LDI(nnn uint16) {
	lsu.regFile.I = nnn
}

// ADDI performs I = I + Vx. No flag is produced.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	lsu.regFile.I += uint16(lsu.regFile.ReadReg(x))
}

// LDF points I at the glyph for the digit in Vx.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	lsu.regFile.I = FontStart + uint16(lsu.regFile.ReadReg(x))*GlyphSize
}

// LDB stores the decimal digits of Vx at I, I+1 and I+2.
func (lsu *LoadStoreUnit) LDB(x uint8) error {
	v := lsu.regFile.ReadReg(x)
	digits := []uint8{v / 100, (v / 10) % 10, v % 10}
	if err := lsu.memory.WriteBlock(lsu.regFile.I, digits); err != nil {
		return fmt.Errorf("LD B, V%X: %w", x, err)
	}
	return nil
}

// Store copies V0..Vx inclusive to memory starting at I. I is unchanged.
func (lsu *LoadStoreUnit) Store(x uint8) error {
	n := int(x&0xF) + 1
	if err := lsu.memory.WriteBlock(lsu.regFile.I, lsu.regFile.V[:n]); err != nil {
		return fmt.Errorf("LD [I], V%X: %w", x, err)
	}
	return nil
}

// Load copies memory starting at I into V0..Vx inclusive. I is unchanged.
func (lsu *LoadStoreUnit) Load(x uint8) error {
	n := int(x&0xF) + 1
	data, err := lsu.memory.ReadBlock(lsu.regFile.I, n)
	if err != nil {
		return fmt.Errorf("LD V%X, [I]: %w", x, err)
	}
	copy(lsu.regFile.V[:n], data)
	return nil
}
