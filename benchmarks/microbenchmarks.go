package benchmarks

import (
	"fmt"

	"github.com/sarchlab/chip8sim/emu"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each one
// stresses a different path through the step loop.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticLoop(),
		callReturn(),
		spriteDraw(),
		memoryCopy(),
		bcdCounter(),
		selfModifying(),
	}
}

// 1. Arithmetic Loop - ALU and a backward jump
func arithmeticLoop() Benchmark {
	return Benchmark{
		Name:        "arithmetic_loop",
		Description: "ADD V0, V1 in a tight loop",
		Program: BuildProgram(
			EncodeLDImm(0, 0),  // 200
			EncodeLDImm(1, 1),  // 202
			EncodeALU(0, 1, 4), // 204: ADD V0, V1
			EncodeJP(0x204),    // 206
		),
		Instructions: 2 + 2*5000,
		Verify: func(e *emu.Emulator) error {
			return expectReg(e, 0, uint8(5000%256))
		},
	}
}

// 2. Call/Return - stack push and pop every iteration
func callReturn() Benchmark {
	return Benchmark{
		Name:        "call_return",
		Description: "CALL a subroutine that immediately returns",
		Program: BuildProgram(
			EncodeCALL(0x206),  // 200
			EncodeADDImm(0, 1), // 202
			EncodeJP(0x200),    // 204
			EncodeRET(),        // 206
		),
		Instructions: 4 * 3000,
		Verify: func(e *emu.Emulator) error {
			if e.RegFile().SP != 0 {
				return fmt.Errorf("stack depth %d after balanced calls", e.RegFile().SP)
			}
			return expectReg(e, 0, uint8(3000%256))
		},
	}
}

// 3. Sprite Draw - random glyph positions
func spriteDraw() Benchmark {
	return Benchmark{
		Name:        "sprite_draw",
		Description: "DRW the 0 glyph at random coordinates",
		Program: BuildProgram(
			EncodeLDI(emu.FontStart), // 200
			EncodeRND(0, 0x3F),       // 202
			EncodeRND(1, 0x1F),       // 204
			EncodeDRW(0, 1, 5),       // 206
			EncodeJP(0x202),          // 208
		),
		Instructions: 1 + 4*2000,
		Verify: func(e *emu.Emulator) error {
			if vf := e.RegFile().V[emu.FlagRegister]; vf > 1 {
				return fmt.Errorf("collision flag %d", vf)
			}
			return nil
		},
	}
}

// 4. Memory Copy - whole register file loads and stores
func memoryCopy() Benchmark {
	return Benchmark{
		Name:        "memory_copy",
		Description: "LD V0..VF from 0x300 and store them to 0x400",
		Program: BuildProgram(
			EncodeLDI(0x300),      // 200
			EncodeMisc(0xF, 0x65), // 202
			EncodeLDI(0x400),      // 204
			EncodeMisc(0xF, 0x55), // 206
			EncodeJP(0x200),       // 208
		),
		Instructions: 5 * 2000,
		Verify: func(e *emu.Emulator) error {
			src, err := e.Memory().ReadBlock(0x300, emu.NumRegisters)
			if err != nil {
				return err
			}
			dst, err := e.Memory().ReadBlock(0x400, emu.NumRegisters)
			if err != nil {
				return err
			}
			if string(src) != string(dst) {
				return fmt.Errorf("copy mismatch: % X vs % X", src, dst)
			}
			return nil
		},
	}
}

// 5. BCD Counter - decimal conversion through memory
func bcdCounter() Benchmark {
	return Benchmark{
		Name:        "bcd_counter",
		Description: "Count in V5 and unpack its decimal digits",
		Program: BuildProgram(
			EncodeLDI(0x300),    // 200
			EncodeADDImm(5, 1),  // 202
			EncodeMisc(5, 0x33), // 204: LD B, V5
			EncodeMisc(2, 0x65), // 206: LD V2, [I]
			EncodeJP(0x202),     // 208
		),
		Instructions: 1 + 4*234,
		Verify: func(e *emu.Emulator) error {
			for i, want := range []uint8{2, 3, 4} {
				if err := expectReg(e, uint8(i), want); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// 6. Self Modifying - a store into the running line every iteration
func selfModifying() Benchmark {
	return Benchmark{
		Name:        "self_modifying",
		Description: "Rewrite the loop's own closing jump before reaching it",
		Program: BuildProgram(
			EncodeLDImm(0, 0x12), // 200
			EncodeLDImm(1, 0x00), // 202
			EncodeLDI(0x20A),     // 204
			EncodeMisc(1, 0x55),  // 206: writes JP $200 at 0x20A
			EncodeCLS(),          // 208
			0x0000,               // 20A
		),
		Instructions: 6 * 1000,
		Verify: func(e *emu.Emulator) error {
			word, err := e.Memory().Read16(0x20A)
			if err != nil {
				return err
			}
			if word != EncodeJP(0x200) {
				return fmt.Errorf("word at 0x20A is %04X", word)
			}
			if e.RegFile().PC != 0x200 {
				return fmt.Errorf("pc 0x%03X after whole iterations", e.RegFile().PC)
			}
			return nil
		},
	}
}

func expectReg(e *emu.Emulator, reg, want uint8) error {
	if got := e.RegFile().ReadReg(reg); got != want {
		return fmt.Errorf("V%X = %d, want %d", reg, got, want)
	}
	return nil
}
