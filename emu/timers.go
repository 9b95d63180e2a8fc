package emu

// Timers holds the delay and sound countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive reports whether the tone should be playing.
func (t *Timers) SoundActive() bool {
	return t.Sound != 0
}
