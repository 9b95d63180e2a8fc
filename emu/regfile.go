// Package emu provides functional CHIP-8 emulation.
package emu

// Register file geometry.
const (
	NumRegisters = 16
	StackDepth   = 16

	// FlagRegister is VF, the implicit output of carry, borrow, shift and
	// collision computations.
	FlagRegister = 0xF
)

// RegFile represents the CHIP-8 register file.
// It contains the sixteen 8-bit general-purpose registers (V0-VF),
// the index register, the program counter and the call stack.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// VF doubles as the flag register.
	V [NumRegisters]uint8

	// I is the index register. Only the low 12 bits address memory; the
	// value is not masked on write.
	I uint16

	// PC is the program counter.
	PC uint16

	// SP is the stack pointer. Slot 0 is never written by a call.
	SP uint8

	// Stack holds return addresses.
	Stack [StackDepth]uint16
}

// NewRegFile returns a register file in its power-on state.
func NewRegFile() *RegFile {
	return &RegFile{PC: ProgramStart}
}

// ReadReg reads Vx. Only the low nibble of reg is used.
func (r *RegFile) ReadReg(reg uint8) uint8 {
	return r.V[reg&0xF]
}

// WriteReg writes Vx. Only the low nibble of reg is used.
func (r *RegFile) WriteReg(reg uint8, value uint8) {
	r.V[reg&0xF] = value
}

// SetFlag writes VF as a boolean flag.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
		return
	}
	r.V[FlagRegister] = 0
}
