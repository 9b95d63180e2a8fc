// Package emu provides functional CHIP-8 emulation.
package emu

// ALU implements the CHIP-8 register arithmetic and logic operations.
// Flag-producing operations write VF; when x is F the write order below
// decides which value survives.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = kk
func (a *ALU) LDImm(x, kk uint8) {
	a.regFile.WriteReg(x, kk)
}

// ADDImm performs Vx = Vx + kk (mod 256), no flag.
func (a *ALU) ADDImm(x, kk uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+kk)
}

// LD performs Vx = Vy
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy, then VF = carry.
func (a *ALU) ADD(x, y uint8) {
	sum := uint16(a.regFile.ReadReg(x)) + uint16(a.regFile.ReadReg(y))
	a.regFile.WriteReg(x, uint8(sum))
	a.regFile.SetFlag(sum > 0xFF)
}

// SUB sets VF = Vx > Vy, then Vx = Vx - Vy. Both are computed from the
// operands before either write.
func (a *ALU) SUB(x, y uint8) {
	vx, vy := a.regFile.ReadReg(x), a.regFile.ReadReg(y)
	a.regFile.SetFlag(vx > vy)
	a.regFile.WriteReg(x, vx-vy)
}

// SUBN sets VF = Vy > Vx, then Vx = Vy - Vx.
func (a *ALU) SUBN(x, y uint8) {
	vx, vy := a.regFile.ReadReg(x), a.regFile.ReadReg(y)
	a.regFile.SetFlag(vy > vx)
	a.regFile.WriteReg(x, vy-vx)
}

// SHR sets VF to the low bit of Vx, then shifts Vx right by one.
// Vy is ignored.
func (a *ALU) SHR(x uint8) {
	a.regFile.SetFlag(a.regFile.ReadReg(x)&0x01 != 0)
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)>>1)
}

// SHL sets VF to the high bit of Vx, then shifts Vx left by one.
// Vy is ignored.
func (a *ALU) SHL(x uint8) {
	a.regFile.SetFlag(a.regFile.ReadReg(x)&0x80 != 0)
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)<<1)
}

// RND performs Vx = random & kk
func (a *ALU) RND(x, kk, random uint8) {
	a.regFile.WriteReg(x, random&kk)
}
