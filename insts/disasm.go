package insts

import "fmt"

var opNames = map[Op]string{
	OpUnknown: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpSYS:     "SYS",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDKey:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDStore: "LD",
	OpLDLoad:  "LD",
}

// String returns the mnemonic of the opcode.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// String renders the instruction in conventional CHIP-8 assembly syntax.
func (i *Instruction) String() string {
	name := i.Op.String()

	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf("DW $%04X", i.Raw)
	case OpCLS, OpRET:
		return name
	case OpSYS, OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case OpLDKey:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case OpLDStore:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case OpLDLoad:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}

	switch i.Format {
	case FormatRegImm:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case FormatRegReg:
		if i.Op == OpSHR || i.Op == OpSHL {
			return fmt.Sprintf("%s V%X", name, i.X)
		}
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case FormatReg:
		return fmt.Sprintf("%s V%X", name, i.X)
	case FormatDraw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	}

	return name
}
