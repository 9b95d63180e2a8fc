// Package insts provides CHIP-8 instruction definitions and decoding.
package insts

// Op represents a CHIP-8 opcode.
type Op uint8

// CHIP-8 opcodes.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0nnn
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDKey      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDStore    // Fx55
	OpLDLoad     // Fx65
)

// Format represents which fields of the instruction word an opcode uses.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatNone           // no operands (CLS, RET)
	FormatAddr           // nnn
	FormatRegImm         // x, kk
	FormatRegReg         // x, y
	FormatReg            // x
	FormatDraw           // x, y, n
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Operand format

	Raw     uint16   // The instruction word as fetched
	Nibbles [4]uint8 // Nibbles, most significant first

	X   uint8  // Second nibble, register index
	Y   uint8  // Third nibble, register index
	N   uint8  // Low nibble, small count
	KK  uint8  // Low byte, immediate
	NNN uint16 // Low 12 bits, address
}

// Decoder decodes CHIP-8 instruction words.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode splits a 16-bit instruction word into its fields and classifies it.
// Every word decodes; words that match no opcode get OpUnknown.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Raw: word,
		Nibbles: [4]uint8{
			uint8(word>>12) & 0xF,
			uint8(word>>8) & 0xF,
			uint8(word>>4) & 0xF,
			uint8(word) & 0xF,
		},
		NNN: word & 0x0FFF,
		KK:  uint8(word),
	}
	inst.X = inst.Nibbles[1]
	inst.Y = inst.Nibbles[2]
	inst.N = inst.Nibbles[3]

	inst.Op, inst.Format = d.classify(inst.Nibbles)

	return inst
}

// classify matches the nibble pattern most-specific-first.
func (d *Decoder) classify(n [4]uint8) (Op, Format) {
	switch n[0] {
	case 0x0:
		switch {
		case n[1] == 0x0 && n[2] == 0xE && n[3] == 0x0:
			return OpCLS, FormatNone
		case n[1] == 0x0 && n[2] == 0xE && n[3] == 0xE:
			return OpRET, FormatNone
		default:
			return OpSYS, FormatAddr
		}
	case 0x1:
		return OpJP, FormatAddr
	case 0x2:
		return OpCALL, FormatAddr
	case 0x3:
		return OpSEImm, FormatRegImm
	case 0x4:
		return OpSNEImm, FormatRegImm
	case 0x5:
		if n[3] == 0x0 {
			return OpSEReg, FormatRegReg
		}
	case 0x6:
		return OpLDImm, FormatRegImm
	case 0x7:
		return OpADDImm, FormatRegImm
	case 0x8:
		return d.classifyALU(n[3])
	case 0x9:
		// The low nibble is not checked.
		return OpSNEReg, FormatRegReg
	case 0xA:
		return OpLDI, FormatAddr
	case 0xB:
		return OpJPV0, FormatAddr
	case 0xC:
		return OpRND, FormatRegImm
	case 0xD:
		return OpDRW, FormatDraw
	case 0xE:
		switch {
		case n[2] == 0x9 && n[3] == 0xE:
			return OpSKP, FormatReg
		case n[2] == 0xA && n[3] == 0x1:
			return OpSKNP, FormatReg
		}
	case 0xF:
		return d.classifyMisc(n[2]<<4 | n[3])
	}

	return OpUnknown, FormatUnknown
}

// classifyALU handles the 8xy? register-register group.
func (d *Decoder) classifyALU(sub uint8) (Op, Format) {
	switch sub {
	case 0x0:
		return OpLDReg, FormatRegReg
	case 0x1:
		return OpOR, FormatRegReg
	case 0x2:
		return OpAND, FormatRegReg
	case 0x3:
		return OpXOR, FormatRegReg
	case 0x4:
		return OpADDReg, FormatRegReg
	case 0x5:
		return OpSUB, FormatRegReg
	case 0x6:
		return OpSHR, FormatRegReg
	case 0x7:
		return OpSUBN, FormatRegReg
	case 0xE:
		return OpSHL, FormatRegReg
	}
	return OpUnknown, FormatUnknown
}

// classifyMisc handles the Fx?? group, keyed by the low byte.
func (d *Decoder) classifyMisc(kk uint8) (Op, Format) {
	switch kk {
	case 0x07:
		return OpLDVxDT, FormatReg
	case 0x0A:
		return OpLDKey, FormatReg
	case 0x15:
		return OpLDDTVx, FormatReg
	case 0x18:
		return OpLDSTVx, FormatReg
	case 0x1E:
		return OpADDI, FormatReg
	case 0x29:
		return OpLDF, FormatReg
	case 0x33:
		return OpLDB, FormatReg
	case 0x55:
		return OpLDStore, FormatReg
	case 0x65:
		return OpLDLoad, FormatReg
	}
	return OpUnknown, FormatUnknown
}
