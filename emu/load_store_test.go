package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8sim/emu"
)

var _ = Describe("LoadStoreUnit", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	It("should load I (Annn)", func() {
		e.Execute(0xAFAF)
		Expect(e.RegFile().I).To(Equal(uint16(0xFAF)))

		e.Execute(0xA623)
		Expect(e.RegFile().I).To(Equal(uint16(0x623)))
	})

	It("should add Vx to I without touching VF (Fx1E)", func() {
		e.RegFile().I = 0xFFF
		e.RegFile().V[1] = 0x01
		e.RegFile().V[0xF] = 0

		e.Execute(0xF11E)

		Expect(e.RegFile().I).To(Equal(uint16(0x1000)))
		Expect(e.RegFile().V[0xF]).To(BeZero())
	})

	It("should point I at the glyph for the low digit (Fx29)", func() {
		e.RegFile().V[0] = 0xA
		e.Execute(0xF029)
		Expect(e.RegFile().I).To(Equal(uint16(50)))
	})

	It("should store BCD digits at I (Fx33)", func() {
		e.RegFile().V[0] = 234
		e.RegFile().I = 0x300

		e.Execute(0xF033)

		digits, err := e.Memory().ReadBlock(0x300, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(digits).To(Equal([]uint8{2, 3, 4}))
		Expect(e.RegFile().I).To(Equal(uint16(0x300)))
	})

	It("should store V0..Vx without moving I (Fx55)", func() {
		for i := range e.RegFile().V {
			e.RegFile().V[i] = uint8(i + 1)
		}
		e.RegFile().I = 0x400

		e.Execute(0xF255)

		data, err := e.Memory().ReadBlock(0x400, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]uint8{1, 2, 3, 0}))
		Expect(e.RegFile().I).To(Equal(uint16(0x400)))
	})

	It("should load V0..Vx from I (Fx65)", func() {
		Expect(e.Memory().WriteBlock(0x500, []uint8{9, 8, 7, 6})).To(Succeed())
		e.RegFile().I = 0x500

		e.Execute(0xF265)

		Expect(e.RegFile().V[0:4]).To(Equal([]uint8{9, 8, 7, 0}))
	})

	It("should reject a store that runs past the end of memory", func() {
		e.RegFile().I = 0xFFE
		e.RegFile().V[0] = 0xAA

		result := e.Execute(0xF355)

		Expect(result.Err).To(MatchError(emu.ErrAddressOutOfRange))
		Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
		Expect(e.Memory().Read8(0xFFE)).To(BeZero())
	})

	It("should reject BCD past the end of memory", func() {
		e.RegFile().I = 0xFFF
		result := e.Execute(0xF033)
		Expect(result.Err).To(MatchError(emu.ErrAddressOutOfRange))
	})
})
