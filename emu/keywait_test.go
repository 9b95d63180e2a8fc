package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8sim/emu"
)

var _ = Describe("Wait for key (Fx0A)", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
		Expect(e.LoadProgram([]byte{0xF3, 0x0A})).To(Succeed())
	})

	It("should hold pc while no key is down", func() {
		for i := 0; i < 3; i++ {
			result := e.Step()
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Waiting).To(BeTrue())
			Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
		}
		Expect(e.KeyWait().State()).To(Equal(emu.KeyWaitWaiting))
		Expect(e.KeyWait().Target()).To(Equal(uint8(3)))
	})

	It("should complete on the first cycle that sees a key", func() {
		e.Step()
		e.Keypad().Press(0x7)

		result := e.Step()

		Expect(result.Waiting).To(BeFalse())
		Expect(e.RegFile().V[3]).To(Equal(uint8(0x7)))
		Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		Expect(e.KeyWait().State()).To(Equal(emu.KeyWaitIdle))
	})

	It("should arm before sampling keys", func() {
		e.Keypad().Press(0x2)

		result := e.Step()
		Expect(result.Waiting).To(BeTrue())
		Expect(e.RegFile().PC).To(Equal(uint16(0x200)))

		e.Step()
		Expect(e.RegFile().V[3]).To(Equal(uint8(0x2)))
	})

	It("should write the key to the register of the resolving dispatch", func() {
		w := &emu.KeyWait{}
		keypad := &emu.Keypad{}
		regFile := emu.NewRegFile()

		Expect(w.Poll(3, keypad, regFile)).To(Equal(emu.ActionWait))
		Expect(w.Target()).To(Equal(uint8(3)))

		keypad.Press(0x5)
		Expect(w.Poll(4, keypad, regFile)).To(Equal(emu.ActionAdvance))
		Expect(regFile.V[4]).To(Equal(uint8(0x5)))
		Expect(regFile.V[3]).To(BeZero())
	})

	It("should pick the lowest pressed key", func() {
		e.Step()
		e.Keypad().Press(0xC)
		e.Keypad().Press(0x5)

		e.Step()
		Expect(e.RegFile().V[3]).To(Equal(uint8(0x5)))
	})

	It("should keep the timers running while waiting", func() {
		e.Timers().Delay = 5
		e.Timers().Sound = 2

		r1 := e.Step()
		r2 := e.Step()
		r3 := e.Step()

		Expect(e.Timers().Delay).To(Equal(uint8(2)))
		Expect(r1.SoundActive).To(BeTrue())
		Expect(r2.SoundActive).To(BeFalse())
		Expect(r3.SoundActive).To(BeFalse())
	})

	It("should be cleared by Reset", func() {
		w := &emu.KeyWait{}
		w.Poll(4, &emu.Keypad{}, emu.NewRegFile())
		Expect(w.Waiting()).To(BeTrue())

		w.Reset()
		Expect(w.State()).To(Equal(emu.KeyWaitIdle))
	})
})

var _ = Describe("Keypad", func() {
	It("should ignore keys outside 0..F", func() {
		k := &emu.Keypad{}
		k.Press(0x10)
		Expect(k.IsPressed(0x10)).To(BeFalse())
		_, ok := k.FirstPressed()
		Expect(ok).To(BeFalse())
	})

	It("should track presses and releases", func() {
		k := &emu.Keypad{}
		k.Press(0xA)
		Expect(k.IsPressed(0xA)).To(BeTrue())
		k.Release(0xA)
		Expect(k.IsPressed(0xA)).To(BeFalse())

		k.Set(0x1, true)
		k.Reset()
		Expect(k.IsPressed(0x1)).To(BeFalse())
	})
})
