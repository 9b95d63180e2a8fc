package host

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/chip8sim/emu"
)

// Stats holds counters for a session.
type Stats struct {
	// Ticks is the number of machine cycles run.
	Ticks uint64
	// Frames is the number of frames handed to the display.
	Frames uint64
	// WaitTicks counts cycles spent in a wait-for-key instruction.
	WaitTicks uint64
	// SoundTicks counts cycles with the buzzer on.
	SoundTicks uint64
	// Late counts ticks whose work took longer than one tick interval.
	Late uint64
}

// Session owns an emulator and drives it one cycle per tick.
type Session struct {
	emulator *emu.Emulator
	display  Display
	speaker  Speaker
	input    Input
	logger   logr.Logger

	stats     Stats
	lastFrame emu.Framebuffer
	presented bool
}

// SessionOption is a functional option for configuring the Session.
type SessionOption func(*Session)

// WithSpeaker sets the buzzer. The default is NopSpeaker.
func WithSpeaker(s Speaker) SessionOption {
	return func(sess *Session) {
		sess.speaker = s
	}
}

// WithInput sets the key source. The default is NopInput.
func WithInput(in Input) SessionOption {
	return func(sess *Session) {
		sess.input = in
	}
}

// WithLogger sets the logger used for lifecycle messages at V(1).
func WithLogger(logger logr.Logger) SessionOption {
	return func(sess *Session) {
		sess.logger = logger
	}
}

// NewSession creates a session that presents frames to display.
func NewSession(e *emu.Emulator, display Display, opts ...SessionOption) *Session {
	s := &Session{
		emulator: e,
		display:  display,
		speaker:  NopSpeaker{},
		input:    NopInput{},
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Emulator returns the driven emulator.
func (s *Session) Emulator() *emu.Emulator {
	return s.emulator
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Tick polls input, runs one machine cycle and forwards its output. It
// returns false when the user quit. A fatal cycle is returned as an error.
func (s *Session) Tick() (bool, error) {
	if s.input.Poll(s.emulator.Keypad()) {
		return false, nil
	}

	result := s.emulator.Step()
	if result.Err != nil {
		return false, result.Err
	}

	s.stats.Ticks++
	if result.Waiting {
		s.stats.WaitTicks++
	}
	if result.SoundActive {
		s.stats.SoundTicks++
	}

	if !s.presented || !s.lastFrame.Equal(&result.Frame) {
		if err := s.display.Present(&result.Frame); err != nil {
			return false, fmt.Errorf("present frame: %w", err)
		}
		s.lastFrame = result.Frame
		s.presented = true
		s.stats.Frames++
	}

	s.speaker.SetTone(result.SoundActive)

	return true, nil
}

// RunCycles runs up to n ticks without pacing. It returns false if the
// session ended early because the user quit.
func (s *Session) RunCycles(n uint64) (bool, error) {
	for i := uint64(0); i < n; i++ {
		running, err := s.Tick()
		if err != nil || !running {
			return running, err
		}
	}
	return true, nil
}

// Run ticks at DefaultTickRate until the user quits, a cycle fails or ctx
// is cancelled. Quitting returns nil.
func (s *Session) Run(ctx context.Context) error {
	interval := time.Second / DefaultTickRate
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.V(1).Info("session started", "tick_rate", DefaultTickRate)
	defer func() {
		s.speaker.SetTone(false)
		s.logger.V(1).Info("session ended",
			"ticks", s.stats.Ticks,
			"frames", s.stats.Frames,
			"late", s.stats.Late)
	}()

	for {
		start := time.Now()
		running, err := s.Tick()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		if time.Since(start) > interval {
			s.stats.Late++
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
