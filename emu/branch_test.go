package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8sim/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = emu.NewRegFile()
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("PCAction", func() {
		It("should move pc by kind", func() {
			Expect(emu.ActionAdvance.Apply(0x200)).To(Equal(uint16(0x202)))
			Expect(emu.ActionSkip.Apply(0x200)).To(Equal(uint16(0x204)))
			Expect(emu.ActionWait.Apply(0x200)).To(Equal(uint16(0x200)))
			Expect(emu.JumpTo(0x345).Apply(0x200)).To(Equal(uint16(0x345)))
		})

		It("should describe itself", func() {
			Expect(emu.JumpTo(0x111).String()).To(Equal("Jump(0x111)"))
			Expect(emu.ActionWait.String()).To(Equal("Wait"))
		})
	})

	Describe("CALL", func() {
		It("should push the call site and jump", func() {
			action, err := branchUnit.CALL(0x300)
			Expect(err).NotTo(HaveOccurred())
			Expect(action).To(Equal(emu.JumpTo(0x300)))
			Expect(regFile.SP).To(Equal(uint8(1)))
			Expect(regFile.Stack[1]).To(Equal(uint16(0x200)))
			Expect(regFile.Stack[0]).To(BeZero())
		})

		It("should refuse to overflow the stack", func() {
			for i := 0; i < 15; i++ {
				_, err := branchUnit.CALL(0x300)
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := branchUnit.CALL(0x300)
			Expect(err).To(MatchError(emu.ErrStackOverflow))
			Expect(regFile.SP).To(Equal(uint8(15)))
		})
	})

	Describe("RET", func() {
		It("should fail on an empty stack", func() {
			_, err := branchUnit.RET()
			Expect(err).To(MatchError(emu.ErrStackUnderflow))
			Expect(regFile.PC).To(Equal(uint16(0x200)))
		})
	})
})

var _ = Describe("Control flow instructions", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	It("should jump (1nnn)", func() {
		e.Execute(0x1111)
		Expect(e.RegFile().PC).To(Equal(uint16(0x111)))

		e.Execute(0x1001)
		Expect(e.RegFile().PC).To(Equal(uint16(0x001)))
	})

	It("should call (2nnn) storing the call instruction's own address", func() {
		e.Execute(0x2111)
		Expect(e.RegFile().SP).To(Equal(uint8(1)))
		Expect(e.RegFile().Stack[0]).To(BeZero())
		Expect(e.RegFile().Stack[1]).To(Equal(uint16(0x200)))
		Expect(e.RegFile().PC).To(Equal(uint16(0x111)))
	})

	It("should return (00EE) to the instruction after the call", func() {
		e.Execute(0x2300)
		e.Execute(0x00EE)

		Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		Expect(e.RegFile().SP).To(BeZero())
	})

	It("should report a return with an empty stack as fatal", func() {
		e.Timers().Delay = 2

		result := e.Execute(0x00EE)

		Expect(result.Err).To(MatchError(emu.ErrStackUnderflow))
		Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
		Expect(e.Timers().Delay).To(Equal(uint8(2)))
	})

	It("should jump with offset (Bnnn)", func() {
		e.RegFile().V[0] = 4
		e.Execute(0xB300)
		Expect(e.RegFile().PC).To(Equal(uint16(0x304)))
	})

	Describe("Skips", func() {
		It("should not skip on SE Vx, byte mismatch", func() {
			e.Execute(0x3153)
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		})

		It("should skip on SE Vx, byte match (3xkk)", func() {
			e.RegFile().V[1] = 0x53
			e.Execute(0x3153)
			Expect(e.RegFile().PC).To(Equal(uint16(0x204)))

			e.RegFile().V[8] = 0x3
			e.Execute(0x3803)
			Expect(e.RegFile().PC).To(Equal(uint16(0x208)))
		})

		It("should skip on SNE Vx, byte (4xkk)", func() {
			e.Execute(0x4153)
			Expect(e.RegFile().PC).To(Equal(uint16(0x204)))

			e.Execute(0x4803)
			Expect(e.RegFile().PC).To(Equal(uint16(0x208)))

			e.RegFile().V[0xD] = 0xC
			e.Execute(0x4D0C)
			Expect(e.RegFile().PC).To(Equal(uint16(0x20A)))
		})

		It("should skip on SE Vx, Vy (5xy0)", func() {
			e.RegFile().V[0xC] = 0x1
			e.RegFile().V[0xD] = 0xE
			e.RegFile().V[0xE] = 0x1
			e.Execute(0x5CD0)
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))

			e.Execute(0x5CE0)
			Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
		})

		It("should skip on SNE Vx, Vy (9xy0)", func() {
			e.RegFile().V[0xA] = 1
			e.RegFile().V[0xE] = 1
			e.Execute(0x9AE0)
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))

			e.RegFile().V[0xA] = 8
			e.Execute(0x9AE0)
			Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
		})

		It("should ignore the low nibble of 9xyn", func() {
			e.RegFile().V[1] = 1
			e.Execute(0x9121)
			Expect(e.RegFile().PC).To(Equal(uint16(0x204)))
		})

		It("should skip on SKP when the key in Vx is down (Ex9E)", func() {
			e.RegFile().V[2] = 0xB
			e.Execute(0xE29E)
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))

			e.Keypad().Press(0xB)
			e.Execute(0xE29E)
			Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
		})

		It("should skip on SKNP when the key in Vx is up (ExA1)", func() {
			e.RegFile().V[2] = 0xB
			e.Execute(0xE2A1)
			Expect(e.RegFile().PC).To(Equal(uint16(0x204)))

			e.Keypad().Press(0xB)
			e.Execute(0xE2A1)
			Expect(e.RegFile().PC).To(Equal(uint16(0x206)))
		})

		It("should treat key indices above 0xF as released", func() {
			e.RegFile().V[2] = 0x1B
			e.Keypad().Press(0xB)
			e.Execute(0xE29E)
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		})
	})
})
