package host_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8sim/emu"
	"github.com/sarchlab/chip8sim/host"
)

// scriptedInput presses keys on given ticks and quits after quitAfter polls.
type scriptedInput struct {
	polls     int
	quitAfter int
	presses   map[int]uint8
}

func (in *scriptedInput) Poll(keypad *emu.Keypad) bool {
	in.polls++
	if key, ok := in.presses[in.polls]; ok {
		keypad.Press(key)
	}
	return in.quitAfter > 0 && in.polls > in.quitAfter
}

type recordingSpeaker struct {
	changes []bool
}

// SetTone records transitions only.
func (s *recordingSpeaker) SetTone(on bool) {
	if len(s.changes) == 0 && !on {
		return
	}
	if len(s.changes) > 0 && s.changes[len(s.changes)-1] == on {
		return
	}
	s.changes = append(s.changes, on)
}

type failingDisplay struct{}

func (failingDisplay) Present(*emu.Framebuffer) error {
	return errors.New("window gone")
}

var _ = Describe("Session", func() {
	var (
		e       *emu.Emulator
		display *host.HeadlessDisplay
	)

	BeforeEach(func() {
		e = emu.NewEmulator(emu.WithLogger(GinkgoLogr))
		display = &host.HeadlessDisplay{}
	})

	Describe("Tick", func() {
		It("should present the first frame and then only changes", func() {
			Expect(e.LoadProgram([]byte{
				0x60, 0x01, // LD V0, $01
				0xD0, 0x05, // DRW V0, V0, $5
				0x12, 0x04, // JP $204
			})).To(Succeed())
			s := host.NewSession(e, display)

			running, err := s.RunCycles(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeTrue())
			Expect(s.Stats().Ticks).To(Equal(uint64(10)))
			Expect(s.Stats().Frames).To(Equal(uint64(2)))
			Expect(display.Frames()).To(Equal(uint64(2)))
			frame := display.Frame()
			Expect(frame.LitCount()).To(Equal(14))
		})

		It("should switch the tone on and off with the sound timer", func() {
			Expect(e.LoadProgram([]byte{
				0x60, 0x03, // LD V0, $03
				0xF0, 0x18, // LD ST, V0
				0x12, 0x04, // JP $204
			})).To(Succeed())
			speaker := &recordingSpeaker{}
			s := host.NewSession(e, display, host.WithSpeaker(speaker))

			_, err := s.RunCycles(6)

			Expect(err).NotTo(HaveOccurred())
			Expect(speaker.changes).To(Equal([]bool{true, false}))
			Expect(s.Stats().SoundTicks).To(Equal(uint64(2)))
		})

		It("should feed keys to a waiting program", func() {
			Expect(e.LoadProgram([]byte{
				0xF5, 0x0A, // LD V5, K
				0x12, 0x02, // JP $202
			})).To(Succeed())
			input := &scriptedInput{presses: map[int]uint8{4: 0xE}}
			s := host.NewSession(e, display, host.WithInput(input))

			_, err := s.RunCycles(6)

			Expect(err).NotTo(HaveOccurred())
			Expect(e.RegFile().V[5]).To(Equal(uint8(0xE)))
			Expect(s.Stats().WaitTicks).To(Equal(uint64(3)))
		})

		It("should stop when the input asks to quit", func() {
			Expect(e.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			s := host.NewSession(e, display, host.WithInput(&scriptedInput{quitAfter: 3}))

			running, err := s.RunCycles(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeFalse())
			Expect(s.Stats().Ticks).To(Equal(uint64(3)))
		})

		It("should abort on a fatal cycle", func() {
			Expect(e.LoadProgram([]byte{0x00, 0xEE})).To(Succeed())
			s := host.NewSession(e, display)

			_, err := s.RunCycles(5)

			Expect(err).To(MatchError(emu.ErrStackUnderflow))
			Expect(s.Stats().Ticks).To(BeZero())
		})

		It("should surface display failures", func() {
			Expect(e.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			s := host.NewSession(e, failingDisplay{})

			_, err := s.Tick()
			Expect(err).To(MatchError(ContainSubstring("window gone")))
		})
	})

	Describe("Run", func() {
		It("should return nil when the user quits", func() {
			Expect(e.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			s := host.NewSession(e, display,
				host.WithInput(&scriptedInput{quitAfter: 5}),
				host.WithLogger(GinkgoLogr))

			Expect(s.Run(context.Background())).To(Succeed())
			Expect(s.Stats().Ticks).To(Equal(uint64(5)))
		})

		It("should pace ticks at the fixed rate", func() {
			Expect(e.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			s := host.NewSession(e, display,
				host.WithInput(&scriptedInput{quitAfter: 36}))

			start := time.Now()
			Expect(s.Run(context.Background())).To(Succeed())

			// 36 ticks at 360 Hz take roughly 100 ms.
			Expect(time.Since(start)).To(BeNumerically(">=", 80*time.Millisecond))
		})

		It("should stop when the context is cancelled", func() {
			Expect(e.LoadProgram([]byte{0x12, 0x00})).To(Succeed())
			s := host.NewSession(e, display)
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			Expect(s.Run(ctx)).To(MatchError(context.DeadlineExceeded))
			Expect(s.Stats().Ticks).To(BeNumerically(">", 0))
		})

		It("should silence the speaker on exit", func() {
			Expect(e.LoadProgram([]byte{
				0x60, 0xFF, // LD V0, $FF
				0xF0, 0x18, // LD ST, V0
				0x12, 0x04, // JP $204
			})).To(Succeed())
			speaker := &recordingSpeaker{}
			s := host.NewSession(e, display,
				host.WithSpeaker(speaker),
				host.WithInput(&scriptedInput{quitAfter: 4}))

			Expect(s.Run(context.Background())).To(Succeed())
			Expect(speaker.changes).To(Equal([]bool{true, false}))
		})
	})
})
