// Package host runs an emulator against its output and input collaborators
// at a fixed tick rate.
package host

import (
	"github.com/sarchlab/chip8sim/emu"
)

// DefaultTickRate is the number of machine cycles per second. Timers count
// down once per cycle, so this is also the timer rate.
const DefaultTickRate = 360

// Display receives the framebuffer whenever it changes.
type Display interface {
	Present(fb *emu.Framebuffer) error
}

// Speaker is told every tick whether the buzzer should sound.
type Speaker interface {
	SetTone(on bool)
}

// Input writes host key state into the keypad. It returns true once the
// user has asked to quit.
type Input interface {
	Poll(keypad *emu.Keypad) (quit bool)
}

// NopSpeaker discards tone changes. It stands in when no audio device is
// available.
type NopSpeaker struct{}

// SetTone does nothing.
func (NopSpeaker) SetTone(bool) {}

// NopInput never presses a key and never quits.
type NopInput struct{}

// Poll does nothing.
func (NopInput) Poll(*emu.Keypad) bool { return false }

// HeadlessDisplay keeps the latest frame in memory.
type HeadlessDisplay struct {
	frame  emu.Framebuffer
	frames uint64
}

// Present records fb.
func (d *HeadlessDisplay) Present(fb *emu.Framebuffer) error {
	d.frame = fb.Snapshot()
	d.frames++
	return nil
}

// Frame returns the last presented frame.
func (d *HeadlessDisplay) Frame() emu.Framebuffer {
	return d.frame
}

// Frames returns how many frames were presented.
func (d *HeadlessDisplay) Frames() uint64 {
	return d.frames
}
