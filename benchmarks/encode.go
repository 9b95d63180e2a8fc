package benchmarks

// Helper functions for building CHIP-8 programs

// BuildProgram assembles instruction words into a big-endian byte slice.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

// EncodeCLS encodes 00E0.
func EncodeCLS() uint16 { return 0x00E0 }

// EncodeRET encodes 00EE.
func EncodeRET() uint16 { return 0x00EE }

// EncodeJP encodes 1nnn.
func EncodeJP(nnn uint16) uint16 { return 0x1000 | nnn&0xFFF }

// EncodeCALL encodes 2nnn.
func EncodeCALL(nnn uint16) uint16 { return 0x2000 | nnn&0xFFF }

// EncodeSEImm encodes 3xkk.
func EncodeSEImm(x, kk uint8) uint16 { return regImm(0x3, x, kk) }

// EncodeLDImm encodes 6xkk.
func EncodeLDImm(x, kk uint8) uint16 { return regImm(0x6, x, kk) }

// EncodeADDImm encodes 7xkk.
func EncodeADDImm(x, kk uint8) uint16 { return regImm(0x7, x, kk) }

// EncodeALU encodes 8xy<op>.
func EncodeALU(x, y, op uint8) uint16 {
	return 0x8000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(op&0xF)
}

// EncodeLDI encodes Annn.
func EncodeLDI(nnn uint16) uint16 { return 0xA000 | nnn&0xFFF }

// EncodeRND encodes Cxkk.
func EncodeRND(x, kk uint8) uint16 { return regImm(0xC, x, kk) }

// EncodeDRW encodes Dxyn.
func EncodeDRW(x, y, n uint8) uint16 {
	return 0xD000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeMisc encodes Fx<kk>, e.g. EncodeMisc(x, 0x55) for a register store.
func EncodeMisc(x, kk uint8) uint16 { return regImm(0xF, x, kk) }

func regImm(group, x, kk uint8) uint16 {
	return uint16(group)<<12 | uint16(x&0xF)<<8 | uint16(kk)
}
