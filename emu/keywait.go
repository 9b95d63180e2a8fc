package emu

// KeyWaitState is the state of the wait-for-key instruction.
type KeyWaitState uint8

// Key wait states.
const (
	KeyWaitIdle KeyWaitState = iota
	KeyWaitWaiting
)

// KeyWait is the cooperative state machine behind Fx0A. The first dispatch
// only arms it; every later dispatch of the same instruction polls the
// keypad once. It never blocks.
type KeyWait struct {
	state  KeyWaitState
	target uint8
}

// State returns the current state.
func (w *KeyWait) State() KeyWaitState { return w.state }

// Waiting reports whether a key wait is in progress.
func (w *KeyWait) Waiting() bool { return w.state == KeyWaitWaiting }

// Target returns the register named by the Fx0A that armed the wait.
func (w *KeyWait) Target() uint8 { return w.target }

// Poll advances the state machine by one dispatch of Fx0A. The key goes to
// the x of the dispatch that resolves the wait.
func (w *KeyWait) Poll(x uint8, keypad *Keypad, regFile *RegFile) PCAction {
	if w.state == KeyWaitIdle {
		w.state = KeyWaitWaiting
		w.target = x
		return ActionWait
	}

	key, ok := keypad.FirstPressed()
	if !ok {
		return ActionWait
	}

	regFile.WriteReg(x, key)
	w.state = KeyWaitIdle
	return ActionAdvance
}

// Reset returns the state machine to idle.
func (w *KeyWait) Reset() {
	*w = KeyWait{}
}
